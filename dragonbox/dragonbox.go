// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dragonbox computes shortest-roundtrip decimal decompositions
// of IEEE-754 binary32 and binary64 values using the Dragonbox
// algorithm by Junekey Jeon.
//
// Shortest32 and Shortest64 return an integer significand and a decimal
// exponent such that sig * 10^exp is the decimal of fewest significant
// digits that parses back to the input bit pattern under round to
// nearest, tie to even; among equals it is the one closest to the
// input, tie again to even.
//
// The paper: https://github.com/jk-jeon/dragonbox/blob/master/other_files/Dragonbox.pdf
// The reference implementation:
// https://github.com/jk-jeon/dragonbox/blob/master/subproject/simple/include/simple_dragonbox.h
package dragonbox

import "math/bits"

const (
	mantBits64 = 52
	mantBits32 = 23
)

// Shortest64 decomposes the binary64 value mant * 2^exp, where mant is
// the full 53-bit significand (implicit bit included for normal
// values) and exp the unbiased exponent of its lowest bit; denorm
// marks subnormal inputs. mant must be nonzero.
//
// The result has at most 17 digits. At most 15 trailing decimal zeros
// are cancelled into the exponent; a remaining factor of ten, which
// only a shorter significand can carry, is left for the caller's digit
// emitter to trim.
func Shortest64(mant uint64, exp int, denorm bool) (uint64, int) {
	if mant == 1<<mantBits64 && !denorm {
		// Shorter interval case: the gap below w is half the gap
		// above, so the interval endpoints need their own scaling.
		minusK0 := floorLog10Pow2MinusLog10_4Over3(exp)
		beta := exp + floorLog2Pow10(-minusK0)
		phi := getCache64(-minusK0)
		xi := computeLeftEndpoint64(phi, beta)
		zi := computeRightEndpoint64(phi, beta)

		// The left endpoint is attainable only for exp in [2, 3];
		// everywhere else the open bound bumps it by one.
		if !(2 <= exp && exp <= 3) {
			xi++
		}

		// A multiple of ten inside the interval is the unique shortest.
		q := zi / 10
		if xi <= q*10 {
			return removeTrailingZeros64(q, minusK0+1)
		}

		// Otherwise round y and keep the result inside the interval.
		// The fractional part of y is exactly one half only at
		// exp == -77, where the tie breaks to even.
		yru := computeRoundUp64(phi, beta)
		if exp == -77 && yru%2 != 0 {
			yru--
		} else if yru < xi {
			yru++
		}
		return yru, minusK0
	}

	// Normal interval case.
	const kappa = 2
	const bigDivisor = 1000  // 10^(kappa+1)
	const smallDivisor = 100 // 10^kappa

	minusK := floorLog10Pow2(exp) - kappa
	beta := exp + floorLog2Pow10(-minusK)
	phi := getCache64(-minusK)
	zi, zIsInt := computeMul64((mant*2+1)<<beta, phi)
	deltai := computeDelta64(phi, beta)

	s := zi / bigDivisor
	r := uint32(zi - bigDivisor*s)

	if r < deltai {
		// s*10^(kappa+1) lies in the interval unless it coincides with
		// the excluded right endpoint (odd mantissa, exact product).
		if r != 0 || !zIsInt || mant%2 == 0 {
			return removeTrailingZeros64(s, minusK+kappa+1)
		}
		s--
		r = bigDivisor
	} else if r == deltai {
		// Boundary: decide via the parity of the scaled left endpoint.
		xiParity, xIsInt := computeMulParity64(mant*2-1, phi, beta)
		if xiParity || (xIsInt && mant%2 == 0) {
			return removeTrailingZeros64(s, minusK+kappa+1)
		}
	}

	// No multiple of 10^(kappa+1) in the interval: round y/10^kappa.
	D := r + smallDivisor/2 - deltai/2
	t := D / smallDivisor
	rho := D - t*smallDivisor
	yru := 10*s + uint64(t)

	if rho == 0 {
		// The floor term loses one when the remainder was negative,
		// detected by comparing parities; an exact y of half-integer
		// scale instead ties to even.
		yiParity, yIsInt := computeMulParity64(mant*2, phi, beta)
		if yiParity != ((D-smallDivisor/2)%2 != 0) {
			yru--
		} else if yIsInt && yru%2 != 0 {
			yru--
		}
	}
	return yru, minusK + kappa
}

// Shortest32 is the binary32 counterpart of Shortest64: mant carries
// the full 24-bit significand, and the result has at most 9 digits and
// at most 7 cancelled zeros.
func Shortest32(mant uint32, exp int, denorm bool) (uint32, int) {
	if mant == 1<<mantBits32 && !denorm {
		minusK0 := floorLog10Pow2MinusLog10_4Over3(exp)
		beta := exp + floorLog2Pow10(-minusK0)
		phi := getCache32(-minusK0)
		xi := computeLeftEndpoint32(phi, beta)
		zi := computeRightEndpoint32(phi, beta)

		if !(2 <= exp && exp <= 3) {
			xi++
		}

		q := zi / 10
		if xi <= q*10 {
			return removeTrailingZeros32(q, minusK0+1)
		}

		// The half-integer tie sits at exp == -35 for binary32.
		yru := computeRoundUp32(phi, beta)
		if exp == -35 && yru%2 != 0 {
			yru--
		} else if yru < xi {
			yru++
		}
		return yru, minusK0
	}

	const kappa = 1
	const bigDivisor = 100
	const smallDivisor = 10

	minusK := floorLog10Pow2(exp) - kappa
	beta := exp + floorLog2Pow10(-minusK)
	phi := getCache32(-minusK)
	zi, zIsInt := computeMul32((mant*2+1)<<beta, phi)
	deltai := computeDelta32(phi, beta)

	s := zi / bigDivisor
	r := zi - bigDivisor*s

	if r < deltai {
		if r != 0 || !zIsInt || mant%2 == 0 {
			return removeTrailingZeros32(s, minusK+kappa+1)
		}
		s--
		r = bigDivisor
	} else if r == deltai {
		xiParity, xIsInt := computeMulParity32(mant*2-1, phi, beta)
		if xiParity || (xIsInt && mant%2 == 0) {
			return removeTrailingZeros32(s, minusK+kappa+1)
		}
	}

	D := r + smallDivisor/2 - deltai/2
	t := D / smallDivisor
	rho := D - t*smallDivisor
	yru := 10*s + t

	if rho == 0 {
		yiParity, yIsInt := computeMulParity32(mant*2, phi, beta)
		if yiParity != ((D-smallDivisor/2)%2 != 0) {
			yru--
		} else if yIsInt && yru%2 != 0 {
			yru--
		}
	}
	return yru, minusK + kappa
}

// A uint128 holds a 128-bit cache entry as high and low words.
type uint128 struct {
	hi, lo uint64
}

// computeMul64 returns the top 64 bits of the 192-bit product u*phi,
// and whether the following 64 bits are all zero.
func computeMul64(u uint64, phi uint128) (uint64, bool) {
	hi, mid := bits.Mul64(u, phi.hi)
	t, _ := bits.Mul64(u, phi.lo)
	mid, carry := bits.Add64(mid, t, 0)
	return hi + carry, mid == 0
}

// computeMul32 returns the top 32 bits of the 96-bit product u*phi,
// and whether the following 32 bits are all zero.
func computeMul32(u uint32, phi uint64) (uint32, bool) {
	hi, lo := bits.Mul64(uint64(u), phi)
	return uint32(hi), uint32(lo>>32) == 0
}

// computeMulParity64 reports the parity of bit beta below the top 64
// bits of mant2*phi, and whether everything below that bit is zero.
func computeMulParity64(mant2 uint64, phi uint128, beta int) (parity, isInt bool) {
	t1, t0 := bits.Mul64(mant2, phi.lo)
	h := mant2*phi.hi + t1
	parity = h>>(64-beta)&1 != 0
	isInt = h<<beta|t0>>(64-beta) == 0
	return
}

func computeMulParity32(mant2 uint32, phi uint64, beta int) (parity, isInt bool) {
	r := uint64(mant2) * phi
	parity = r>>(64-beta)&1 != 0
	isInt = uint32(r>>(32-beta)) == 0
	return
}

// computeDelta64 scales the interval width out of the cache entry.
func computeDelta64(phi uint128, beta int) uint32 {
	return uint32(phi.hi >> (64 - 1 - beta))
}

func computeDelta32(phi uint64, beta int) uint32 {
	return uint32(phi >> (64 - 1 - beta))
}

func computeLeftEndpoint64(phi uint128, beta int) uint64 {
	return (phi.hi - phi.hi>>(mantBits64+2)) >> (64 - mantBits64 - 1 - beta)
}

func computeRightEndpoint64(phi uint128, beta int) uint64 {
	return (phi.hi + phi.hi>>(mantBits64+1)) >> (64 - mantBits64 - 1 - beta)
}

func computeRoundUp64(phi uint128, beta int) uint64 {
	return (phi.hi>>(64-mantBits64-2-beta) + 1) / 2
}

func computeLeftEndpoint32(phi uint64, beta int) uint32 {
	return uint32((phi - phi>>(mantBits32+2)) >> (64 - mantBits32 - 1 - beta))
}

func computeRightEndpoint32(phi uint64, beta int) uint32 {
	return uint32((phi + phi>>(mantBits32+1)) >> (64 - mantBits32 - 1 - beta))
}

func computeRoundUp32(phi uint64, beta int) uint32 {
	return (uint32(phi>>(64-mantBits32-2-beta)) + 1) / 2
}

// floorLog10Pow2 returns floor(e * log10(2)) for |e| <= 2620.
func floorLog10Pow2(e int) int {
	return (e * 315653) >> 20
}

// floorLog2Pow10 returns floor(e * log2(10)) for |e| <= 1233.
func floorLog2Pow10(e int) int {
	return (e * 1741647) >> 19
}

// floorLog10Pow2MinusLog10_4Over3 returns floor(e*log10(2) - log10(4/3))
// for e in [-2985, 2936].
func floorLog10Pow2MinusLog10_4Over3(e int) int {
	return (e*631305 - 261663) >> 21
}

// removeTrailingZeros64 cancels decimal trailing zeros of mant into
// exp. Divisibility by 10^k is tested by multiplying with the modular
// inverse of 5^k and rotating the 2^k factor away; the rotated value
// is below ceil(2^64/10^k) exactly when mant was divisible, and then
// already holds the quotient. Checks 10^8, 10^4, 10^2, 10^1, removing
// up to 15 zeros.
func removeTrailingZeros64(mant uint64, exp int) (uint64, int) {
	r := bits.RotateLeft64(mant*28999941890838049, -8)
	s := 0
	if r < 184467440738 {
		s++
		mant = r
	}
	r = bits.RotateLeft64(mant*182622766329724561, -4)
	s *= 2
	if r < 1844674407370956 {
		s++
		mant = r
	}
	r = bits.RotateLeft64(mant*10330176681277348905, -2)
	s *= 2
	if r < 184467440737095517 {
		s++
		mant = r
	}
	r = bits.RotateLeft64(mant*14757395258967641293, -1)
	s *= 2
	if r < 1844674407370955162 {
		s++
		mant = r
	}
	return mant, exp + s
}

// removeTrailingZeros32 removes up to 7 zeros via 10^4, 10^2, 10^1.
func removeTrailingZeros32(mant uint32, exp int) (uint32, int) {
	r := bits.RotateLeft32(mant*184254097, -4)
	s := 0
	if r < 429497 {
		s++
		mant = r
	}
	r = bits.RotateLeft32(mant*42949673, -2)
	s *= 2
	if r < 42949673 {
		s++
		mant = r
	}
	r = bits.RotateLeft32(mant*1288490189, -1)
	s *= 2
	if r < 429496730 {
		s++
		mant = r
	}
	return mant, exp + s
}

const (
	cacheMinK64 = -292
	cacheMinK32 = -31
)

// getCache64 returns the 128-bit normalized ceiling of 10^k.
func getCache64(k int) uint128 {
	return cache64[k-cacheMinK64]
}

func getCache32(k int) uint64 {
	return cache32[k-cacheMinK32]
}
