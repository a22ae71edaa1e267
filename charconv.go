// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package charconv converts IEEE-754 binary32 and binary64 values to
// their shortest decimal text form: the fewest significant digits
// that parse back, under round-to-nearest-even, to the identical bit
// pattern. Output goes into a caller-owned buffer with no allocation.
//
// The decimal decomposition is computed by the dragonbox subpackage;
// this package turns the resulting (significand, exponent) pair into
// bytes: scientific notation with fused trailing-zero removal, plain
// fixed notation, or hexadecimal significand form.
package charconv

import (
	"errors"
	"math"

	"github.com/grisumbras/charconv/dragonbox"
)

// A Format selects the textual layout of a conversion.
type Format uint8

const (
	// Scientific is d.ddde±dd, always with an exponent field.
	Scientific Format = iota
	// Fixed is plain ddd.ddd notation.
	Fixed
	// General is Scientific with the e+00 suffix omitted when the
	// exponent is zero. Callers that want the usual %g switch between
	// fixed and scientific notation pick the format themselves from
	// the value's magnitude.
	General
	// Hex is the 0x1.fffp±dd significand form.
	Hex
)

var (
	// ErrRange reports a destination buffer too small for the result.
	ErrRange = errors.New("charconv: buffer too small")
	// ErrInvalid reports an argument outside its domain.
	ErrInvalid = errors.New("charconv: invalid argument")
)

// BufferMin is the smallest destination ToChars32 and ToChars64 accept
// for a finite value; an infinity or NaN is written into any buffer
// that holds its spelling. A scientific or hex conversion never needs more: the longest output
// is a sign, 17 digits, a point and a 5-byte exponent field. Fixed
// conversions of extreme exponents need more and report ErrRange when
// the buffer cannot hold them.
const BufferMin = 32

// ToChars64 writes the Format rendering of v into buf and returns the
// number of bytes written. No terminator is appended and bytes past
// the returned count are unspecified. buf must hold at least BufferMin
// bytes.
func ToChars64(buf []byte, v float64, format Format) (int, error) {
	if format > Hex {
		return 0, ErrInvalid
	}
	bits := math.Float64bits(v)
	neg := bits>>63 != 0
	be := int(bits>>52) & 0x7ff
	mant := bits & (1<<52 - 1)

	if be == 0x7ff {
		return nonfiniteInto(buf, neg, mant, 1<<51)
	}
	if len(buf) < BufferMin {
		return 0, ErrRange
	}
	if format == Hex {
		return len(appendHex64(buf[:0], neg, mant, be)), nil
	}
	if bits<<1 == 0 {
		if format == Fixed {
			return fixedInto(buf, neg, 0, 0, -1)
		}
		return formatFinite64(buf, neg, 0, 0, format), nil
	}
	denorm := be == 0
	if denorm {
		be = 1
	} else {
		mant |= 1 << 52
	}
	sig, exp := dragonbox.Shortest64(mant, be-1075, denorm)
	if format == Fixed {
		return fixedInto(buf, neg, sig, exp, -1)
	}
	return formatFinite64(buf, neg, sig, exp, format), nil
}

// ToChars32 is the binary32 counterpart of ToChars64.
func ToChars32(buf []byte, v float32, format Format) (int, error) {
	if format > Hex {
		return 0, ErrInvalid
	}
	bits := math.Float32bits(v)
	neg := bits>>31 != 0
	be := int(bits>>23) & 0xff
	mant := bits & (1<<23 - 1)

	if be == 0xff {
		return nonfiniteInto(buf, neg, uint64(mant), 1<<22)
	}
	if len(buf) < BufferMin {
		return 0, ErrRange
	}
	if format == Hex {
		return len(appendHex32(buf[:0], neg, mant, be)), nil
	}
	if bits<<1 == 0 {
		if format == Fixed {
			return fixedInto(buf, neg, 0, 0, -1)
		}
		return formatFinite32(buf, neg, 0, 0, format), nil
	}
	denorm := be == 0
	if denorm {
		be = 1
	} else {
		mant |= 1 << 23
	}
	sig, exp := dragonbox.Shortest32(mant, be-150, denorm)
	if format == Fixed {
		return fixedInto(buf, neg, uint64(sig), exp, -1)
	}
	return formatFinite32(buf, neg, sig, exp, format), nil
}

// AppendFloat64 appends the Format rendering of v to dst and returns
// the extended slice. Unlike ToChars64 it grows the destination as
// needed, so Fixed renderings of tiny or huge values cannot fail.
func AppendFloat64(dst []byte, v float64, format Format) []byte {
	if format > Hex {
		panic("charconv: unknown format")
	}
	if format == Fixed {
		bits := math.Float64bits(v)
		neg := bits>>63 != 0
		be := int(bits>>52) & 0x7ff
		mant := bits & (1<<52 - 1)
		if be == 0x7ff {
			var buf [16]byte
			n, _ := nonfiniteInto(buf[:], neg, mant, 1<<51)
			return append(dst, buf[:n]...)
		}
		if bits<<1 == 0 {
			return appendFixed(dst, neg, 0, 0, -1)
		}
		denorm := be == 0
		if denorm {
			be = 1
		} else {
			mant |= 1 << 52
		}
		sig, exp := dragonbox.Shortest64(mant, be-1075, denorm)
		return appendFixed(dst, neg, sig, exp, -1)
	}
	var buf [BufferMin]byte
	n, _ := ToChars64(buf[:], v, format)
	return append(dst, buf[:n]...)
}

// AppendFloat32 is the binary32 counterpart of AppendFloat64.
func AppendFloat32(dst []byte, v float32, format Format) []byte {
	if format > Hex {
		panic("charconv: unknown format")
	}
	if format == Fixed {
		bits := math.Float32bits(v)
		neg := bits>>31 != 0
		be := int(bits>>23) & 0xff
		mant := bits & (1<<23 - 1)
		if be == 0xff {
			var buf [16]byte
			n, _ := nonfiniteInto(buf[:], neg, uint64(mant), 1<<22)
			return append(dst, buf[:n]...)
		}
		if bits<<1 == 0 {
			return appendFixed(dst, neg, 0, 0, -1)
		}
		denorm := be == 0
		if denorm {
			be = 1
		} else {
			mant |= 1 << 23
		}
		sig, exp := dragonbox.Shortest32(mant, be-150, denorm)
		return appendFixed(dst, neg, uint64(sig), exp, -1)
	}
	var buf [BufferMin]byte
	n, _ := ToChars32(buf[:], v, format)
	return append(dst, buf[:n]...)
}
