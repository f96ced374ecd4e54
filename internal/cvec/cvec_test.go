package cvec

import (
	"math"
	"math/cmplx"
	"testing"
)

func TestFilterBoxKeepsInterior(t *testing.T) {
	vals := []complex128{1 + 1i, -2 + 0.5i, 3 - 1i, 0.5 + 2i}
	along := []complex128{10, 20, 30, 40}
	box := Box{MinRe: -1, MaxRe: 2, MinIm: 0, MaxIm: 3}

	got, gotAlong := FilterBox(vals, along, box)
	want := []complex128{1 + 1i, 0.5 + 2i}
	wantAlong := []complex128{10, 40}

	if len(got) != len(want) {
		t.Fatalf("kept %d values, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] || gotAlong[i] != wantAlong[i] {
			t.Fatalf("index %d: got (%v, %v), want (%v, %v)", i, got[i], gotAlong[i], want[i], wantAlong[i])
		}
	}
}

func TestFilterBoxNilCompanion(t *testing.T) {
	vals := []complex128{1i, -1i}
	got, along := FilterBox(vals, nil, UpperHalfPlane())
	if len(got) != 1 || got[0] != 1i {
		t.Fatalf("got %v, want [1i]", got)
	}
	if along != nil {
		t.Fatalf("companion should stay nil")
	}
}

func TestFilterBoxIdempotent(t *testing.T) {
	vals := []complex128{1 + 1i, 2 - 1i, -0.5 + 0.25i}
	once, _ := FilterBox(vals, nil, UpperHalfPlane())
	snapshot := append([]complex128(nil), once...)
	twice, _ := FilterBox(once, nil, UpperHalfPlane())
	if len(twice) != len(snapshot) {
		t.Fatalf("second filter changed count: %d != %d", len(twice), len(snapshot))
	}
	for i := range snapshot {
		if twice[i] != snapshot[i] {
			t.Fatalf("second filter changed value at %d", i)
		}
	}
}

func TestMergeCollapsesClusters(t *testing.T) {
	vals := []complex128{1 + 1i, 1.0000001 + 1i, 5 - 2i}
	got := Merge(vals, 1e-3)
	if len(got) != 2 {
		t.Fatalf("merged to %d values, want 2", len(got))
	}
	for i := 0; i < len(got); i++ {
		for j := i + 1; j < len(got); j++ {
			if cmplx.Abs(got[i]-got[j]) < 1e-3 {
				t.Fatalf("survivors %v and %v closer than tol", got[i], got[j])
			}
		}
	}
}

func TestMergeIdempotent(t *testing.T) {
	vals := []complex128{0, 1e-9i, 1, 1 + 2e-9i, 3i}
	once := Merge(vals, 1e-6)
	snapshot := append([]complex128(nil), once...)
	twice := Merge(once, 1e-6)
	if len(twice) != len(snapshot) {
		t.Fatalf("second merge changed count: %d != %d", len(twice), len(snapshot))
	}
	for i := range snapshot {
		if twice[i] != snapshot[i] {
			t.Fatalf("second merge changed value at %d", i)
		}
	}
}

func TestMergeZeroToleranceNoop(t *testing.T) {
	vals := []complex128{1, 1, 1}
	if got := Merge(vals, 0); len(got) != 3 {
		t.Fatalf("zero tolerance merged values: %d", len(got))
	}
}

func TestDecimate(t *testing.T) {
	q := []complex128{0, 1, 2, 3, 4, 5, 6, 7}
	got := Decimate(q, 4)
	want := []complex128{0, 4}
	if len(got) != len(want) {
		t.Fatalf("len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestDecimateStrideOneCopies(t *testing.T) {
	q := []complex128{1, 2}
	got := Decimate(q, 1)
	got[0] = 99
	if q[0] != 1 {
		t.Fatal("Decimate with stride 1 must not alias the input")
	}
}

func TestRelErr(t *testing.T) {
	exact := []complex128{1, 1i, -1}
	numer := []complex128{1.01, 1i, -1}
	got := RelErr(numer, exact)
	want := 0.01 / 3.0
	if math.Abs(got-want) > 1e-12 {
		t.Fatalf("RelErr = %v, want %v", got, want)
	}
}

func TestHausdorffDist(t *testing.T) {
	a := []complex128{0, 1}
	b := []complex128{0, 1 + 1i}
	if got := HausdorffDist(a, b); math.Abs(got-1) > 1e-12 {
		t.Fatalf("HausdorffDist = %v, want 1", got)
	}
	if got := HausdorffDist(a, a); got != 0 {
		t.Fatalf("self distance = %v, want 0", got)
	}
}

func TestL2Norm2(t *testing.T) {
	// Constant 1 over [0, 2]: squared norm is the interval length.
	z := []complex128{1, 1, 1, 1}
	got, err := L2Norm2(z, 0, 2)
	if err != nil {
		t.Fatalf("L2Norm2 returned error: %v", err)
	}
	// Trapezoid end weights: h*(0.5 + 1 + 1 + 0.5) with h = 0.5.
	if math.Abs(got-1.5) > 1e-12 {
		t.Fatalf("L2Norm2 = %v, want 1.5", got)
	}

	if _, err := L2Norm2(z, 2, 0); err == nil {
		t.Fatal("reversed interval must fail")
	}
	if _, err := L2Norm2(z[:1], 0, 1); err == nil {
		t.Fatal("single sample must fail")
	}
}

func TestSechSinch(t *testing.T) {
	if got := Sech(0); got != 1 {
		t.Fatalf("Sech(0) = %v, want 1", got)
	}
	if got := Sinch(0); got != 1 {
		t.Fatalf("Sinch(0) = %v, want 1", got)
	}

	z := complex(0.3, -0.7)
	if d := cmplx.Abs(Sech(z)*cmplx.Cosh(z) - 1); d > 1e-14 {
		t.Fatalf("Sech identity residual %v", d)
	}
	if d := cmplx.Abs(Sinch(z)*z - cmplx.Sinh(z)); d > 1e-14 {
		t.Fatalf("Sinch identity residual %v", d)
	}
	// Series branch continuity near the switch point.
	small := complex(5e-5, 5e-5)
	if d := cmplx.Abs(Sinch(small) - cmplx.Sinh(small)/small); d > 1e-12 {
		t.Fatalf("Sinch series residual %v", d)
	}
}

func TestMaxAbs(t *testing.T) {
	if got := MaxAbs(nil); got != 0 {
		t.Fatalf("MaxAbs(nil) = %v, want 0", got)
	}
	if got := MaxAbs([]complex128{1, -2, 1i}); got != 2 {
		t.Fatalf("MaxAbs = %v, want 2", got)
	}
}
