// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

import (
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

// Each band multiplier approximates 2^shift'/10^m closely enough that
// the high word of the product is exactly the leading one or two
// digits across the whole band. Check both extremes and the
// neighborhood of every power of ten inside each band.
func TestBandMultipliers(t *testing.T) {
	bands := []struct {
		lo, hi  uint32
		mul     uint64
		shift   uint
		divisor uint32
	}{
		{100, 9999, 42949673, 0, 100},
		{10000, 999999, 429497, 0, 10000},
		{1000000, 99999999, 281474978, 16, 1000000},
		{100000000, 999999999, 1441151882, 25, 100000000},
	}
	for _, b := range bands {
		check := func(s uint32) {
			head := uint32(uint64(s) * b.mul >> b.shift >> 32)
			if want := s / b.divisor; head != want {
				t.Errorf("band [%d, %d]: head(%d) = %d, want %d", b.lo, b.hi, s, head, want)
			}
		}
		check(b.lo)
		check(b.hi)
		for p := b.lo; p <= b.hi/10; p *= 10 {
			check(p - 1)
			check(p)
			check(p + 1)
			check(10*p - 1)
		}
	}
}

// expectShortest renders sig through the digit engine and compares
// against the string form: leading digit, point, remaining digits,
// trailing zeros dropped.
func expectShortest(t *testing.T, render func([]byte) (int, int), sig uint64) {
	t.Helper()
	var buf [20]byte
	n, exp := render(buf[:])
	s := strconv.FormatUint(sig, 10)
	digits := strings.TrimRight(s, "0")
	want := digits[:1]
	if len(digits) > 1 {
		want = digits[:1] + "." + digits[1:]
	}
	if string(buf[:n]) != want || exp != len(s)-1 {
		t.Fatalf("shortestDigits(%d) = %q, %d, want %q, %d", sig, buf[:n], exp, want, len(s)-1)
	}
}

func TestShortestDigits32(t *testing.T) {
	check := func(sig uint32) {
		if sig >= 100000000 && sig%10 == 0 {
			// the dense 9-digit path assumes no trailing zeros
			return
		}
		expectShortest(t, func(buf []byte) (int, int) {
			return shortestDigits32(buf, sig, 0)
		}, uint64(sig))
	}
	for sig := uint32(1); sig < 10000; sig++ {
		check(sig)
	}
	// band boundaries and their neighborhoods
	for p := uint32(10000); p <= 100000000; p *= 10 {
		for d := uint32(0); d < 300; d++ {
			check(p - 1 - d)
			check(p + d)
		}
	}
	check(999999999)
	check(999999991)
	check(500000001)
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200000; i++ {
		check(uint32(r.Intn(999999999) + 1))
	}
}

func TestShortestDigits64(t *testing.T) {
	check := func(sig uint64) {
		if sig >= 1e16 && sig%10 == 0 {
			// the dense 17-digit path assumes no trailing zeros
			return
		}
		expectShortest(t, func(buf []byte) (int, int) {
			return shortestDigits64(buf, sig, 0)
		}, sig)
	}
	// block-splitter boundaries
	for _, sig := range []uint64{
		1, 99999999, 100000000, 100000001, 999999999, 1000000000,
		9999999999999999, 10000000000000001, 1e16 + 1, 1e17 - 1,
		12345678900000000 + 1, 10000000100000000, 99999999999999999,
		50000000000000003, 10000000000000000 - 1,
	} {
		check(sig)
	}
	// trailing zeros confined to the low block
	for z := uint64(10); z <= 10000000; z *= 10 {
		check(123456789 * z)
		check(987654321 * z)
	}
	r := rand.New(rand.NewSource(4))
	for i := 0; i < 400000; i++ {
		check(uint64(r.Int63n(1e17-1)) + 1)
	}
}

// The low block is emitted by the same multiplier as the 7-8 digit
// band plus a one-ulp correction; walk its boundaries densely.
func TestSecondBlock(t *testing.T) {
	check := func(second uint64) {
		sig := 9*100000000 + second
		expectShortest(t, func(buf []byte) (int, int) {
			return shortestDigits64(buf, sig, 0)
		}, sig)
	}
	for second := uint64(0); second < 3000; second++ {
		check(second)
	}
	for p := uint64(10); p <= 10000000; p *= 10 {
		for d := uint64(0); d < 100 && d < p; d++ {
			check(p + d)
			check(p - 1 - d)
		}
	}
	check(99999999)
	check(99999990)
	check(10000001)
}
