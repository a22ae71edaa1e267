// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dragonbox

import (
	"math"
	"math/big"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// A decomposition compares as significand with trailing zeros
// cancelled plus decimal exponent.
type decomposition struct {
	Sig uint64
	Exp int
}

func normalize(sig uint64, exp int) decomposition {
	for sig != 0 && sig%10 == 0 {
		sig /= 10
		exp++
	}
	return decomposition{sig, exp}
}

// refDecomp64 derives the expected shortest decomposition from the
// platform formatter.
func refDecomp64(t *testing.T, v float64, bitSize int) decomposition {
	t.Helper()
	s := strconv.FormatFloat(v, 'e', -1, bitSize)
	m, e, ok := strings.Cut(s, "e")
	if !ok {
		t.Fatalf("malformed reference %q", s)
	}
	m = strings.Replace(m, ".", "", 1)
	sig, err := strconv.ParseUint(m, 10, 64)
	if err != nil {
		t.Fatal(err)
	}
	exp, err := strconv.Atoi(e)
	if err != nil {
		t.Fatal(err)
	}
	return normalize(sig, exp-(len(m)-1))
}

func split64(v float64) (mant uint64, exp int, denorm bool) {
	bits := math.Float64bits(v)
	be := int(bits>>52) & 0x7ff
	mant = bits & (1<<52 - 1)
	if be == 0 {
		return mant, -1074, true
	}
	return mant | 1<<52, be - 1075, false
}

func split32(v float32) (mant uint32, exp int, denorm bool) {
	bits := math.Float32bits(v)
	be := int(bits>>23) & 0xff
	mant = bits & (1<<23 - 1)
	if be == 0 {
		return mant, -149, true
	}
	return mant | 1<<23, be - 150, false
}

func checkShortest64(t *testing.T, bits uint64) {
	t.Helper()
	v := math.Float64frombits(bits &^ (1 << 63))
	if v == 0 || math.IsInf(v, 0) || math.IsNaN(v) {
		return
	}
	sig, exp := Shortest64(split64(v))
	got := normalize(sig, exp)
	if diff := cmp.Diff(refDecomp64(t, v, 64), got); diff != "" {
		t.Fatalf("Shortest64(%#016x) mismatch (-want +got):\n%s", bits, diff)
	}
}

func checkShortest32(t *testing.T, bits uint32) {
	t.Helper()
	v := math.Float32frombits(bits &^ (1 << 31))
	if v == 0 || math.IsInf(float64(v), 0) || v != v {
		return
	}
	sig, exp := Shortest32(split32(v))
	got := normalize(uint64(sig), exp)
	if diff := cmp.Diff(refDecomp64(t, float64(v), 32), got); diff != "" {
		t.Fatalf("Shortest32(%#08x) mismatch (-want +got):\n%s", bits, diff)
	}
}

func TestShortest64(t *testing.T) {
	for _, v := range []float64{
		1, 1.5, math.Pi, 1e100, 1e-100, math.MaxFloat64,
		math.SmallestNonzeroFloat64, 2.2250738585072014e-308,
		9999999999999999, 123456789e10, 0.1, 1.0 / 3,
	} {
		checkShortest64(t, math.Float64bits(v))
	}
	r := rand.New(rand.NewSource(1))
	n := 500000
	if testing.Short() {
		n = 10000
	}
	for i := 0; i < n; i++ {
		checkShortest64(t, r.Uint64())
	}
	// shorter-interval inputs and subnormals
	for k := -1074; k < 1024; k++ {
		checkShortest64(t, math.Float64bits(math.Ldexp(1, k)))
	}
	for m := uint64(1); m < 3000; m++ {
		checkShortest64(t, m)         // lowest subnormals
		checkShortest64(t, 1<<52 - m) // highest subnormals
	}
}

func TestShortest32(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	n := 500000
	if testing.Short() {
		n = 10000
	}
	for i := 0; i < n; i++ {
		checkShortest32(t, uint32(r.Uint64()))
	}
	for k := -149; k < 128; k++ {
		checkShortest32(t, math.Float32bits(float32(math.Ldexp(1, k))))
	}
	for b := uint32(1); b < 30000; b++ {
		checkShortest32(t, b)
	}
}

func TestRemoveTrailingZeros(t *testing.T) {
	slow := func(m uint64, cap int) (uint64, int) {
		s := 0
		for m%10 == 0 && s < cap {
			m /= 10
			s++
		}
		return m, s
	}
	r := rand.New(rand.NewSource(3))
	for i := 0; i < 200000; i++ {
		m := uint64(r.Int63n(1e17-1)) + 1
		wantM, wantS := slow(m, 15)
		if gotM, gotE := removeTrailingZeros64(m, 0); gotM != wantM || gotE != wantS {
			t.Fatalf("removeTrailingZeros64(%d) = %d, %d, want %d, %d", m, gotM, gotE, wantM, wantS)
		}
	}
	for _, m := range []uint64{10, 100, 1000, 7e15, 1e15, 25000000} {
		wantM, wantS := slow(m, 15)
		if gotM, gotE := removeTrailingZeros64(m, 0); gotM != wantM || gotE != wantS {
			t.Fatalf("removeTrailingZeros64(%d) = %d, %d, want %d, %d", m, gotM, gotE, wantM, wantS)
		}
	}
	for i := 0; i < 200000; i++ {
		m := uint32(r.Int63n(1e9-1)) + 1
		wantM, wantS := slow(uint64(m), 7)
		if gotM, gotE := removeTrailingZeros32(m, 0); uint64(gotM) != wantM || gotE != wantS {
			t.Fatalf("removeTrailingZeros32(%d) = %d, %d, want %d, %d", m, gotM, gotE, wantM, wantS)
		}
	}
}

// Every cache entry must equal the normalized ceiling of its power of
// ten, computed exactly.
func TestCacheTables(t *testing.T) {
	ceilPow10 := func(k, width int) *big.Int {
		num := big.NewInt(1)
		den := big.NewInt(1)
		if k >= 0 {
			num.Exp(big.NewInt(10), big.NewInt(int64(k)), nil)
		} else {
			den.Exp(big.NewInt(10), big.NewInt(int64(-k)), nil)
		}
		// scale so the quotient lands in [2^(width-1), 2^width)
		e := floorLog2Pow10(k)
		shift := width - 1 - e
		if shift >= 0 {
			num.Lsh(num, uint(shift))
		} else {
			den.Lsh(den, uint(-shift))
		}
		q, r := new(big.Int).QuoRem(num, den, new(big.Int))
		if r.Sign() != 0 {
			q.Add(q, big.NewInt(1))
		}
		return q
	}
	for k := cacheMinK64; k < cacheMinK64+len(cache64); k++ {
		phi := getCache64(k)
		got := new(big.Int).Lsh(new(big.Int).SetUint64(phi.hi), 64)
		got.Or(got, new(big.Int).SetUint64(phi.lo))
		if want := ceilPow10(k, 128); got.Cmp(want) != 0 {
			t.Errorf("cache64[%d] = %x, want %x", k, got, want)
		}
	}
	for k := cacheMinK32; k < cacheMinK32+len(cache32); k++ {
		got := new(big.Int).SetUint64(getCache32(k))
		if want := ceilPow10(k, 64); got.Cmp(want) != 0 {
			t.Errorf("cache32[%d] = %x, want %x", k, got, want)
		}
	}
}
