// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

// formatFinite64 lays out sign, significand digits and exponent suffix
// for a finite binary64 value sig * 10^exp and returns the number of
// bytes written. buf must hold at least BufferMin bytes.
func formatFinite64(buf []byte, neg bool, sig uint64, exp int, format Format) int {
	n := 0
	if neg {
		buf[0] = '-'
		n = 1
	}
	if sig == 0 {
		buf[n] = '0'
		n++
		if format == Scientific {
			n += copy(buf[n:], "e+00")
		}
		return n
	}
	nd, exp := shortestDigits64(buf[n:], sig, exp)
	return writeExponent64(buf, n+nd, exp, format)
}

// formatFinite32 is the binary32 counterpart of formatFinite64.
// The exponent field is always two digits: binary32 scientific
// exponents stay below 100 in magnitude.
func formatFinite32(buf []byte, neg bool, sig uint32, exp int, format Format) int {
	n := 0
	if neg {
		buf[0] = '-'
		n = 1
	}
	if sig == 0 {
		buf[n] = '0'
		n++
		if format == Scientific {
			n += copy(buf[n:], "e+00")
		}
		return n
	}
	nd, exp := shortestDigits32(buf[n:], sig, exp)
	n += nd

	switch {
	case exp < 0:
		n += copy(buf[n:], "e-")
		exp = -exp
	case exp == 0:
		if format == Scientific {
			n += copy(buf[n:], "e+00")
		}
		return n
	default:
		n += copy(buf[n:], "e+")
	}
	print2Digits(buf[n:], uint32(exp))
	return n + 2
}

// writeExponent64 appends the e±NN or e±NNN suffix at buf[n:].
// Under General a zero exponent produces no suffix at all; under
// Scientific it produces e+00.
func writeExponent64(buf []byte, n, exp int, format Format) int {
	switch {
	case exp < 0:
		n += copy(buf[n:], "e-")
		exp = -exp
	case exp == 0:
		if format == Scientific {
			n += copy(buf[n:], "e+00")
		}
		return n
	default:
		n += copy(buf[n:], "e+")
	}
	if exp >= 100 {
		// d1 = exp/10, d2 = exp%10 without division.
		// 6554 = ceil(2^16 / 10)
		prod := uint32(exp) * 6554
		d1 := prod >> 16
		d2 := (prod & 0xffff) * 5 >> 15 // times 10, shifted 16
		print2Digits(buf[n:], d1)
		print1Digit(buf[n+2:], d2)
		return n + 3
	}
	print2Digits(buf[n:], uint32(exp))
	return n + 2
}

// FormatFinite64 writes the decimal rendering of the finite binary64
// value (-1)^neg * sig * 10^exp into buf and returns the number of
// bytes written. sig and exp are a shortest-roundtrip decomposition as
// produced by dragonbox.Shortest64; sig == 0 renders as "0" regardless
// of exp. Scientific always carries an exponent suffix, General omits
// it when the scientific exponent is zero, and Fixed lays the digits
// out in plain decimal notation.
//
// buf must hold at least BufferMin bytes or FormatFinite64 reports
// ErrRange; for Fixed the rendering itself may need more, in which case
// nothing useful is written and ErrRange is reported. Hex cannot be
// produced from a decimal decomposition; requesting it reports
// ErrInvalid (use ToChars64 instead).
func FormatFinite64(buf []byte, neg bool, sig uint64, exp int, format Format) (int, error) {
	if format >= Hex {
		return 0, ErrInvalid
	}
	if sig >= 100000000000000000 {
		return 0, ErrInvalid
	}
	if len(buf) < BufferMin {
		return 0, ErrRange
	}
	if format == Fixed {
		return fixedInto(buf, neg, sig, exp, -1)
	}
	return formatFinite64(buf, neg, sig, exp, format), nil
}

// FormatFinite32 is the binary32 counterpart of FormatFinite64.
// sig must be below 10^9.
func FormatFinite32(buf []byte, neg bool, sig uint32, exp int, format Format) (int, error) {
	if format >= Hex {
		return 0, ErrInvalid
	}
	if sig >= 1000000000 {
		return 0, ErrInvalid
	}
	if len(buf) < BufferMin {
		return 0, ErrRange
	}
	if format == Fixed {
		return fixedInto(buf, neg, uint64(sig), exp, -1)
	}
	return formatFinite32(buf, neg, sig, exp, format), nil
}
