// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

// Digit generation works on 32-bit blocks using multiply-high
// approximations of division by powers of ten, in the style of
// James Anhalt's itoa: for an n-digit block, find y such that
// floor(10^k * y / 2^32) walks the digit pairs of the block.
// See https://jk-jeon.github.io/posts/2022/02/jeaiii-algorithm/.
//
// Trailing-zero removal is fused into the walk: after each pair the
// fractional remainder is compared against ceil(2^32 / 10^r), which
// tells whether the r remaining digits are all zero.

// radix100Table[2i:2i+2] is the zero-padded decimal representation of i,
// for i in [0, 99].
const radix100Table = "00010203040506070809" +
	"10111213141516171819" +
	"20212223242526272829" +
	"30313233343536373839" +
	"40414243444546474849" +
	"50515253545556575859" +
	"60616263646566676869" +
	"70717273747576777879" +
	"80818283848586878889" +
	"90919293949596979899"

// radix100HeadTable[2i] is the leading decimal digit of i and
// radix100HeadTable[2i+1] is a speculative decimal point.
// Writing a head pair lays down "D." in one copy; when more digits
// follow, the byte after the point is filled (and possibly overwritten)
// separately, so a one-digit result never pays a branch for the dot.
const radix100HeadTable = "0.1.2.3.4.5.6.7.8.9." +
	"1.1.1.1.1.1.1.1.1.1." +
	"2.2.2.2.2.2.2.2.2.2." +
	"3.3.3.3.3.3.3.3.3.3." +
	"4.4.4.4.4.4.4.4.4.4." +
	"5.5.5.5.5.5.5.5.5.5." +
	"6.6.6.6.6.6.6.6.6.6." +
	"7.7.7.7.7.7.7.7.7.7." +
	"8.8.8.8.8.8.8.8.8.8." +
	"9.9.9.9.9.9.9.9.9.9."

func print1Digit(buf []byte, n uint32) {
	buf[0] = byte('0' + n)
}

func print2Digits(buf []byte, n uint32) {
	buf[0] = radix100Table[2*n]
	buf[1] = radix100Table[2*n+1]
}

func bool2int(b bool) int {
	if b {
		return 1
	}
	return 0
}

// shortestDigits32 writes the significant digits of s32 into buf in the
// form D.DDDD (leading digit, decimal point, remaining digits), with
// trailing zeros removed and no decimal point when a single digit
// remains. It returns the number of bytes written and the scientific
// exponent of the leading digit, which is exp plus the digit count of
// s32 minus one.
//
// s32 must be in [1, 999999999]. A 9-digit s32 must not be a multiple
// of ten: the 9-digit path is dense and does not trim.
func shortestDigits32(buf []byte, s32 uint32, exp int) (int, int) {
	switch {
	case s32 >= 100000000:
		// 9 digits, no trailing zeros by precondition.
		// 1441151882 = ceil(2^57 / 10^8) + 1
		prod := uint64(s32) * 1441151882
		prod >>= 25
		copy(buf[0:2], radix100HeadTable[uint32(prod>>32)*2:])
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[2:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[4:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[6:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[8:], uint32(prod>>32))
		return 10, exp + 8

	case s32 >= 1000000:
		// 7 or 8 digits.
		// 281474978 = ceil(2^48 / 10^6) + 1
		prod := uint64(s32) * 281474978
		prod >>= 16
		head := uint32(prod >> 32)
		exp += 6 + bool2int(head >= 10)

		copy(buf[0:2], radix100HeadTable[head*2:])
		// Seeds the trimming decision; overwritten when more digits follow.
		buf[2] = radix100Table[head*2+1]

		if uint32(prod) <= (1<<32)/1000000 {
			// Remaining 6 digits are all zero: one byte when only the
			// leading digit is nonzero, three otherwise.
			if head >= 10 && buf[2] > '0' {
				return 3, exp
			}
			return 1, exp
		}
		n := bool2int(head >= 10)
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+2:], uint32(prod>>32))
		if uint32(prod) <= (1<<32)/10000 {
			return n + 3 + bool2int(buf[n+3] > '0'), exp
		}
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+4:], uint32(prod>>32))
		if uint32(prod) <= (1<<32)/100 {
			return n + 5 + bool2int(buf[n+5] > '0'), exp
		}
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+6:], uint32(prod>>32))
		return n + 7 + bool2int(buf[n+7] > '0'), exp

	case s32 >= 10000:
		// 5 or 6 digits.
		// 429497 = ceil(2^32 / 10^4)
		prod := uint64(s32) * 429497
		head := uint32(prod >> 32)
		exp += 4 + bool2int(head >= 10)

		copy(buf[0:2], radix100HeadTable[head*2:])
		buf[2] = radix100Table[head*2+1]

		if uint32(prod) <= (1<<32)/10000 {
			if head >= 10 && buf[2] > '0' {
				return 3, exp
			}
			return 1, exp
		}
		n := bool2int(head >= 10)
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+2:], uint32(prod>>32))
		if uint32(prod) <= (1<<32)/100 {
			return n + 3 + bool2int(buf[n+3] > '0'), exp
		}
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+4:], uint32(prod>>32))
		return n + 5 + bool2int(buf[n+5] > '0'), exp

	case s32 >= 100:
		// 3 or 4 digits.
		// 42949673 = ceil(2^32 / 100)
		prod := uint64(s32) * 42949673
		head := uint32(prod >> 32)
		exp += 2 + bool2int(head >= 10)

		copy(buf[0:2], radix100HeadTable[head*2:])
		buf[2] = radix100Table[head*2+1]

		if uint32(prod) <= (1<<32)/100 {
			if head >= 10 && buf[2] > '0' {
				return 3, exp
			}
			return 1, exp
		}
		n := bool2int(head >= 10)
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+2:], uint32(prod>>32))
		return n + 3 + bool2int(buf[n+3] > '0'), exp

	default:
		// 1 or 2 digits.
		exp += bool2int(s32 >= 10)
		copy(buf[0:2], radix100HeadTable[s32*2:])
		buf[2] = radix100Table[s32*2+1]
		if s32 >= 10 && buf[2] > '0' {
			return 3, exp
		}
		return 1, exp
	}
}

// shortestDigits64 is the 64-bit counterpart of shortestDigits32.
// The significand is split into a leading block of up to 9 digits and a
// trailing block of exactly 8. A zero trailing block is dropped and the
// leading block goes through shortestDigits32, which trims it. Otherwise
// the number's trailing zeros live entirely in the trailing block, so
// the leading block is emitted densely and only the trailing block runs
// the trimming ladder.
//
// sig must be in [1, 10^17-1]. A 17-digit sig must not be a multiple of
// ten.
func shortestDigits64(buf []byte, sig uint64, exp int) (int, int) {
	if sig < 100000000 {
		return shortestDigits32(buf, uint32(sig), exp)
	}
	first := uint32(sig / 100000000)
	second := uint32(sig) - first*100000000 // wraps; true remainder < 10^8
	exp += 8

	if second == 0 {
		return shortestDigits32(buf, first, exp)
	}

	if first >= 100000000 {
		// 17 digits, so no trailing zeros anywhere: both blocks dense.
		// 1441151882 = ceil(2^57 / 10^8) + 1
		prod := uint64(first) * 1441151882
		prod >>= 25
		copy(buf[0:2], radix100HeadTable[uint32(prod>>32)*2:])
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[2:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[4:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[6:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[8:], uint32(prod>>32))

		// 281474978 = ceil(2^48 / 10^6) + 1; the increment below repays
		// the multiplier's one-ulp excess over the exact scale.
		prod = uint64(second) * 281474978
		prod >>= 16
		prod++
		print2Digits(buf[10:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[12:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[14:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[16:], uint32(prod>>32))

		return 18, exp + 8
	}

	// Leading block of 1 to 8 digits, emitted densely at full band width.
	var n int
	switch {
	case first >= 1000000:
		// 7 or 8 digits.
		prod := uint64(first) * 281474978
		prod >>= 16
		head := uint32(prod >> 32)
		copy(buf[0:2], radix100HeadTable[head*2:])
		buf[2] = radix100Table[head*2+1]
		exp += 6 + bool2int(head >= 10)
		n = bool2int(head >= 10)
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+2:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+4:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+6:], uint32(prod>>32))
		n += 8
	case first >= 10000:
		// 5 or 6 digits.
		prod := uint64(first) * 429497
		head := uint32(prod >> 32)
		copy(buf[0:2], radix100HeadTable[head*2:])
		buf[2] = radix100Table[head*2+1]
		exp += 4 + bool2int(head >= 10)
		n = bool2int(head >= 10)
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+2:], uint32(prod>>32))
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+4:], uint32(prod>>32))
		n += 6
	case first >= 100:
		// 3 or 4 digits.
		prod := uint64(first) * 42949673
		head := uint32(prod >> 32)
		copy(buf[0:2], radix100HeadTable[head*2:])
		buf[2] = radix100Table[head*2+1]
		exp += 2 + bool2int(head >= 10)
		n = bool2int(head >= 10)
		prod = uint64(uint32(prod)) * 100
		print2Digits(buf[n+2:], uint32(prod>>32))
		n += 4
	default:
		// 1 or 2 digits.
		copy(buf[0:2], radix100HeadTable[first*2:])
		buf[2] = radix100Table[first*2+1]
		exp += bool2int(first >= 10)
		n = 2 + bool2int(first >= 10)
	}

	// Trailing block of 8 digits with trimming.
	prod := uint64(second) * 281474978
	prod >>= 16
	prod++
	print2Digits(buf[n:], uint32(prod>>32))
	if uint32(prod) <= (1<<32)/1000000 {
		return n + 1 + bool2int(buf[n+1] > '0'), exp
	}
	prod = uint64(uint32(prod)) * 100
	print2Digits(buf[n+2:], uint32(prod>>32))
	if uint32(prod) <= (1<<32)/10000 {
		return n + 3 + bool2int(buf[n+3] > '0'), exp
	}
	prod = uint64(uint32(prod)) * 100
	print2Digits(buf[n+4:], uint32(prod>>32))
	if uint32(prod) <= (1<<32)/100 {
		return n + 5 + bool2int(buf[n+5] > '0'), exp
	}
	prod = uint64(uint32(prod)) * 100
	print2Digits(buf[n+6:], uint32(prod>>32))
	return n + 7 + bool2int(buf[n+7] > '0'), exp
}
