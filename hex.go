// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

const lowerhex = "0123456789abcdef"

// appendHex64 appends the 0x1.fffp±dd form of the value with raw
// mantissa field mant and biased exponent be. Subnormals are
// renormalized to a leading 1 bit, trailing zero nibbles are dropped,
// and the binary exponent is written in decimal with at least two
// digits.
func appendHex64(dst []byte, neg bool, mant uint64, be int) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if mant == 0 && be == 0 {
		return append(dst, "0x0p+00"...)
	}
	exp := be - 1023
	if be == 0 {
		exp = -1022
		for mant&(1<<52) == 0 {
			mant <<= 1
			exp--
		}
	}
	dst = append(dst, '0', 'x', '1')
	if frac := mant & (1<<52 - 1); frac != 0 {
		dst = append(dst, '.')
		for shift := 48; frac != 0; shift -= 4 {
			dst = append(dst, lowerhex[frac>>uint(shift)&0xf])
			frac &= 1<<uint(shift) - 1
		}
	}
	return appendHexExp(dst, exp)
}

// appendHex32 is the binary32 counterpart. The 23 mantissa bits are
// shifted up by one so the fraction is a whole number of nibbles.
func appendHex32(dst []byte, neg bool, mant uint32, be int) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if mant == 0 && be == 0 {
		return append(dst, "0x0p+00"...)
	}
	exp := be - 127
	if be == 0 {
		exp = -126
		for mant&(1<<23) == 0 {
			mant <<= 1
			exp--
		}
	}
	dst = append(dst, '0', 'x', '1')
	if frac := mant << 1 & (1<<24 - 1); frac != 0 {
		dst = append(dst, '.')
		for shift := 20; frac != 0; shift -= 4 {
			dst = append(dst, lowerhex[frac>>uint(shift)&0xf])
			frac &= 1<<uint(shift) - 1
		}
	}
	return appendHexExp(dst, exp)
}

func appendHexExp(dst []byte, exp int) []byte {
	dst = append(dst, 'p')
	if exp < 0 {
		dst = append(dst, '-')
		exp = -exp
	} else {
		dst = append(dst, '+')
	}
	switch {
	case exp < 100:
		dst = append(dst, radix100Table[exp*2], radix100Table[exp*2+1])
	case exp < 1000:
		dst = append(dst, byte('0'+exp/100))
		dst = append(dst, radix100Table[exp%100*2], radix100Table[exp%100*2+1])
	default:
		dst = append(dst, radix100Table[exp/100*2], radix100Table[exp/100*2+1])
		dst = append(dst, radix100Table[exp%100*2], radix100Table[exp%100*2+1])
	}
	return dst
}
