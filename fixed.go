// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

// Fixed notation has its own digit path: the significand is rendered
// densely and the decimal point placed by the value exponent, so no
// virtual-point bookkeeping is needed.

// appendFixed appends (-1)^neg * sig * 10^exp in plain decimal
// notation. prec < 0 means shortest: trailing fractional zeros are
// dropped and no bare decimal point survives. prec >= 0 pads the
// fraction with zeros to exactly prec digits; it must be at least the
// exact fraction width, since rounding below the shortest form is the
// caller's business.
func appendFixed(dst []byte, neg bool, sig uint64, exp, prec int) []byte {
	if neg {
		dst = append(dst, '-')
	}
	if sig == 0 {
		dst = append(dst, '0')
		if prec > 0 {
			dst = append(dst, '.')
			dst = appendZeros(dst, prec)
		}
		return dst
	}
	if prec < 0 {
		for sig%10 == 0 {
			sig /= 10
			exp++
		}
	}
	var tmp [20]byte
	digits := formatMantissa(&tmp, sig)
	nd := len(digits)
	dp := nd + exp // digit count left of the decimal point

	switch {
	case dp >= nd:
		dst = append(dst, digits...)
		dst = appendZeros(dst, dp-nd)
		if prec > 0 {
			dst = append(dst, '.')
			dst = appendZeros(dst, prec)
		}
	case dp > 0:
		dst = append(dst, digits[:dp]...)
		dst = append(dst, '.')
		dst = append(dst, digits[dp:]...)
		if prec > nd-dp {
			dst = appendZeros(dst, prec-(nd-dp))
		}
	default:
		dst = append(dst, '0', '.')
		dst = appendZeros(dst, -dp)
		dst = append(dst, digits...)
		if prec > nd-dp {
			dst = appendZeros(dst, prec-(nd-dp))
		}
	}
	return dst
}

// fixedInto renders into a caller-owned buffer, reporting ErrRange
// when the layout does not fit.
func fixedInto(buf []byte, neg bool, sig uint64, exp, prec int) (int, error) {
	n := fixedLen(neg, sig, exp, prec)
	if n > len(buf) {
		return len(buf), ErrRange
	}
	appendFixed(buf[:0], neg, sig, exp, prec)
	return n, nil
}

// fixedLen returns the byte length appendFixed will produce.
func fixedLen(neg bool, sig uint64, exp, prec int) int {
	n := bool2int(neg)
	if sig == 0 {
		if prec > 0 {
			return n + 2 + prec
		}
		return n + 1
	}
	if prec < 0 {
		for sig%10 == 0 {
			sig /= 10
			exp++
		}
	}
	nd := decimalLen(sig)
	dp := nd + exp
	frac := nd - dp
	if frac < 0 {
		frac = 0
	}
	if prec > frac {
		frac = prec
	}
	if dp > 0 {
		n += dp
	} else {
		n++ // leading "0"
	}
	if frac > 0 {
		n += 1 + frac
	}
	return n
}

// decimalLen returns the number of decimal digits of v, with at least
// one for v == 0.
func decimalLen(v uint64) int {
	n := 1
	for i := 1; i < len(uint64pow10); i++ {
		if v < uint64pow10[i] {
			break
		}
		n++
	}
	return n
}

var uint64pow10 = [...]uint64{
	1, 1e1, 1e2, 1e3, 1e4, 1e5, 1e6, 1e7, 1e8, 1e9,
	1e10, 1e11, 1e12, 1e13, 1e14, 1e15, 1e16, 1e17, 1e18, 1e19,
}

// formatMantissa renders v backwards into buf and returns the used
// tail, two digits per step through the radix-100 table.
func formatMantissa(buf *[20]byte, v uint64) []byte {
	i := len(buf)
	for v >= 100 {
		is := v % 100 * 2
		v /= 100
		i -= 2
		buf[i] = radix100Table[is]
		buf[i+1] = radix100Table[is+1]
	}
	if v >= 10 {
		i -= 2
		buf[i] = radix100Table[v*2]
		buf[i+1] = radix100Table[v*2+1]
	} else {
		i--
		buf[i] = byte('0' + v)
	}
	return buf[i:]
}

// appendZeros extends dst with n zero digits.
func appendZeros(dst []byte, n int) []byte {
	const zeros = "0000000000000000"
	for n >= len(zeros) {
		dst = append(dst, zeros...)
		n -= len(zeros)
	}
	return append(dst, zeros[:n]...)
}
