// Copyright 2025 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package charconv

import (
	"bufio"
	"bytes"
	_ "embed"
	"math"
	"math/rand"
	"strconv"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
)

//go:embed testdata/floats64.txt.gz
var corpus64 []byte

//go:embed testdata/floats32.txt.gz
var corpus32 []byte

func corpusBits(t *testing.T, data []byte, bitSize int) []uint64 {
	t.Helper()
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	defer zr.Close()
	var out []uint64
	sc := bufio.NewScanner(zr)
	for sc.Scan() {
		u, err := strconv.ParseUint(strings.TrimSpace(sc.Text()), 16, bitSize)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, u)
	}
	if err := sc.Err(); err != nil {
		t.Fatal(err)
	}
	return out
}

var sci64Tests = []struct {
	v    float64
	want string
}{
	{0, "0e+00"},
	{math.Copysign(0, -1), "-0e+00"},
	{1, "1e+00"},
	{1.5, "1.5e+00"},
	{-2.5, "-2.5e+00"},
	{1234567, "1.234567e+06"},
	{1e100, "1e+100"},
	{1e8, "1e+08"},
	{math.Pi, "3.141592653589793e+00"},
	{math.MaxFloat64, "1.7976931348623157e+308"},
	{math.SmallestNonzeroFloat64, "5e-324"},
	{2.2250738585072014e-308, "2.2250738585072014e-308"},
	{9.9e99, "9.9e+99"},
	{1.1e-100, "1.1e-100"},
	{9999999999999999, "1e+16"},
}

func TestScientific64(t *testing.T) {
	for _, tt := range sci64Tests {
		if got := string(AppendFloat64(nil, tt.v, Scientific)); got != tt.want {
			t.Errorf("AppendFloat64(%v, Scientific) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

var general64Tests = []struct {
	v    float64
	want string
}{
	{0, "0"},
	{math.Copysign(0, -1), "-0"},
	{1, "1"},
	{1.5, "1.5"},
	{1234567, "1.234567e+06"},
	{0.001, "1e-03"},
	{9.109383713928296e-31, "9.109383713928296e-31"},
}

func TestGeneral64(t *testing.T) {
	for _, tt := range general64Tests {
		if got := string(AppendFloat64(nil, tt.v, General)); got != tt.want {
			t.Errorf("AppendFloat64(%v, General) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

var sci32Tests = []struct {
	v    float32
	want string
}{
	{0, "0e+00"},
	{float32(math.Copysign(0, -1)), "-0e+00"},
	{1, "1e+00"},
	{1.5, "1.5e+00"},
	{3.197633022e+38, "3.197633e+38"},
	{math.MaxFloat32, "3.4028235e+38"},
	{math.SmallestNonzeroFloat32, "1e-45"},
}

func TestScientific32(t *testing.T) {
	for _, tt := range sci32Tests {
		if got := string(AppendFloat32(nil, tt.v, Scientific)); got != tt.want {
			t.Errorf("AppendFloat32(%v, Scientific) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

// checkAgainstStrconv64 requires byte-for-byte agreement with the
// platform shortest formatter and a roundtrip back to the same bits.
func checkAgainstStrconv64(t *testing.T, bits uint64, format Format, verb byte) {
	t.Helper()
	v := math.Float64frombits(bits)
	got := string(AppendFloat64(nil, v, format))
	want := strconv.FormatFloat(v, verb, -1, 64)
	if got != want {
		t.Fatalf("AppendFloat64(%#016x) = %q, want %q", bits, got, want)
	}
	back, err := strconv.ParseFloat(got, 64)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", got, err)
	}
	if math.Float64bits(back) != bits {
		t.Fatalf("roundtrip %#016x -> %q -> %#016x", bits, got, math.Float64bits(back))
	}
}

func checkAgainstStrconv32(t *testing.T, bits uint32, format Format, verb byte) {
	t.Helper()
	v := math.Float32frombits(bits)
	got := string(AppendFloat32(nil, v, format))
	want := strconv.FormatFloat(float64(v), verb, -1, 32)
	if got != want {
		t.Fatalf("AppendFloat32(%#08x) = %q, want %q", bits, got, want)
	}
	back, err := strconv.ParseFloat(got, 32)
	if err != nil {
		t.Fatalf("ParseFloat(%q): %v", got, err)
	}
	if math.Float32bits(float32(back)) != bits {
		t.Fatalf("roundtrip %#08x -> %q -> %#08x", bits, got, math.Float32bits(float32(back)))
	}
}

func TestCorpus64(t *testing.T) {
	for _, bits := range corpusBits(t, corpus64, 64) {
		checkAgainstStrconv64(t, bits, Scientific, 'e')
		checkAgainstStrconv64(t, bits, Fixed, 'f')
		checkAgainstStrconv64(t, bits, Hex, 'x')
	}
}

func TestCorpus32(t *testing.T) {
	for _, bits := range corpusBits(t, corpus32, 32) {
		checkAgainstStrconv32(t, uint32(bits), Scientific, 'e')
		checkAgainstStrconv32(t, uint32(bits), Fixed, 'f')
		checkAgainstStrconv32(t, uint32(bits), Hex, 'x')
	}
}

func TestRandom64(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	n := 1000000
	if testing.Short() {
		n = 10000
	}
	for i := 0; i < n; i++ {
		bits := r.Uint64()
		if bits>>52&0x7ff == 0x7ff {
			continue
		}
		checkAgainstStrconv64(t, bits, Scientific, 'e')
	}
}

func TestRandom32(t *testing.T) {
	r := rand.New(rand.NewSource(2))
	n := 1000000
	if testing.Short() {
		n = 10000
	}
	for i := 0; i < n; i++ {
		bits := uint32(r.Uint64())
		if bits>>23&0xff == 0xff {
			continue
		}
		checkAgainstStrconv32(t, bits, Scientific, 'e')
	}
}

// Powers of two walk the shorter-interval path of the decomposition.
func TestPowersOfTwo(t *testing.T) {
	for k := -1074; k < 1024; k++ {
		checkAgainstStrconv64(t, math.Float64bits(math.Ldexp(1, k)), Scientific, 'e')
	}
	for k := -149; k < 128; k++ {
		checkAgainstStrconv32(t, math.Float32bits(float32(math.Ldexp(1, k))), Scientific, 'e')
	}
}

func TestNonfinite(t *testing.T) {
	tests := []struct {
		bits uint64
		want string
	}{
		{math.Float64bits(math.Inf(1)), "inf"},
		{math.Float64bits(math.Inf(-1)), "-inf"},
		{0x7ff8000000000000, "nan"},
		{0xfff8000000000000, "-nan(ind)"},
		{0x7ff0000000000001, "nan(snan)"},
		{0xfff0000000000001, "-nan(snan)"},
	}
	var buf [BufferMin]byte
	for _, tt := range tests {
		n, err := ToChars64(buf[:], math.Float64frombits(tt.bits), Scientific)
		if err != nil || string(buf[:n]) != tt.want {
			t.Errorf("ToChars64(%#016x) = %q, %v, want %q", tt.bits, buf[:n], err, tt.want)
		}
	}
	n, err := ToChars32(buf[:], float32(math.NaN()), General)
	if err != nil || string(buf[:n]) != "nan" {
		t.Errorf("ToChars32(NaN) = %q, %v", buf[:n], err)
	}
}

func TestFormatFinite(t *testing.T) {
	tests := []struct {
		neg    bool
		sig    uint64
		exp    int
		format Format
		want   string
	}{
		{false, 0, 0, Scientific, "0e+00"},
		{true, 0, 0, Scientific, "-0e+00"},
		{false, 0, 0, General, "0"},
		{false, 15, -1, Scientific, "1.5e+00"},
		{false, 1, 8, Scientific, "1e+08"},
		{false, 100000001, 0, Scientific, "1.00000001e+08"},
		{false, 9999999999999999, 0, Scientific, "9.999999999999999e+15"},
		{true, 17976931348623157, 292, Scientific, "-1.7976931348623157e+308"},
		{false, 5, -324, Scientific, "5e-324"},
		{false, 125, -2, Fixed, "1.25"},
		{false, 125, -2, General, "1.25"},
	}
	var buf [BufferMin]byte
	for _, tt := range tests {
		n, err := FormatFinite64(buf[:], tt.neg, tt.sig, tt.exp, tt.format)
		if err != nil || string(buf[:n]) != tt.want {
			t.Errorf("FormatFinite64(%v, %d, %d, %d) = %q, %v, want %q",
				tt.neg, tt.sig, tt.exp, tt.format, buf[:n], err, tt.want)
		}
	}
}

func TestErrors(t *testing.T) {
	var buf [BufferMin]byte
	var small [8]byte

	if _, err := ToChars64(small[:], 1.5, Scientific); err != ErrRange {
		t.Errorf("small buffer: err = %v, want ErrRange", err)
	}
	if _, err := ToChars64(buf[:], 1.5, Format(9)); err != ErrInvalid {
		t.Errorf("bad format: err = %v, want ErrInvalid", err)
	}
	if _, err := FormatFinite64(buf[:], false, 1e17, 0, Scientific); err != ErrInvalid {
		t.Errorf("oversized significand: err = %v, want ErrInvalid", err)
	}
	if _, err := FormatFinite64(buf[:], false, 1, 0, Hex); err != ErrInvalid {
		t.Errorf("hex from decimal decomposition: err = %v, want ErrInvalid", err)
	}
	if _, err := FormatFinite32(buf[:], false, 1e9, 0, Scientific); err != ErrInvalid {
		t.Errorf("oversized 32-bit significand: err = %v, want ErrInvalid", err)
	}
	// A fixed rendering of a tiny value overflows even a conforming
	// buffer and must report ErrRange rather than truncate.
	if _, err := ToChars64(buf[:], 5e-324, Fixed); err != ErrRange {
		t.Errorf("fixed underflow rendering: err = %v, want ErrRange", err)
	}
}

func TestAppendGrows(t *testing.T) {
	dst := []byte("x=")
	dst = AppendFloat64(dst, 5e-324, Fixed)
	want := "x=" + strconv.FormatFloat(5e-324, 'f', -1, 64)
	if string(dst) != want {
		t.Errorf("AppendFloat64(Fixed) = %q, want %q", dst, want)
	}
}

func TestAppendAllocs(t *testing.T) {
	var buf [BufferMin]byte
	v := 3.197633022e+38
	allocs := testing.AllocsPerRun(100, func() {
		AppendFloat64(buf[:0], v, Scientific)
	})
	if allocs != 0 {
		t.Errorf("AppendFloat64 allocates %v times per call", allocs)
	}
}

func BenchmarkAppendFloat64(b *testing.B) {
	benches := []struct {
		name string
		v    float64
	}{
		{"short", 1.5},
		{"typical", 3.141592653589793},
		{"max", math.MaxFloat64},
		{"denormal", 5e-324},
	}
	var buf [BufferMin]byte
	for _, bb := range benches {
		b.Run(bb.name, func(b *testing.B) {
			for i := 0; i < b.N; i++ {
				AppendFloat64(buf[:0], bb.v, Scientific)
			}
		})
	}
}

func BenchmarkStrconv(b *testing.B) {
	var buf [BufferMin]byte
	for i := 0; i < b.N; i++ {
		strconv.AppendFloat(buf[:0], 3.141592653589793, 'e', -1, 64)
	}
}
