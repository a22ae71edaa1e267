// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

// nonfiniteInto writes the text for an infinity or NaN whose raw
// mantissa field is mant; quiet is the mask of the quiet bit for the
// source width. A negative quiet NaN prints as -nan(ind), matching the
// indefinite spelling of the original charconv family; signaling NaNs
// keep an explicit tag.
func nonfiniteInto(buf []byte, neg bool, mant, quiet uint64) (int, error) {
	var s string
	switch {
	case mant == 0:
		if neg {
			s = "-inf"
		} else {
			s = "inf"
		}
	case mant&quiet != 0:
		if neg {
			s = "-nan(ind)"
		} else {
			s = "nan"
		}
	default:
		if neg {
			s = "-nan(snan)"
		} else {
			s = "nan(snan)"
		}
	}
	if len(buf) < len(s) {
		return 0, ErrRange
	}
	return copy(buf, s), nil
}
