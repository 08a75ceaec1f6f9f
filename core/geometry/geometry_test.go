package geometry

import (
	"math"
	"testing"

	"bangler/internal/errors"
)

// TestCircumferenceIsPiTimesDiameter proves the table stores diameters
// and the conversion is applied, not assumed already-applied.
func TestCircumferenceIsPiTimesDiameter(t *testing.T) {
	for _, size := range ValidSizes() {
		d, err := InsideDiameterMm(size)
		if err != nil {
			t.Fatalf("InsideDiameterMm(%d): %v", size, err)
		}
		c, err := CircumferenceMm(size)
		if err != nil {
			t.Fatalf("CircumferenceMm(%d): %v", size, err)
		}
		if want := math.Pi * d; math.Abs(c-want) > 1e-9 {
			t.Errorf("size %d: circumference = %v, want pi*%v = %v", size, c, d, want)
		}
	}
}

func TestCircumferenceStrictlyIncreasing(t *testing.T) {
	sizes := ValidSizes()
	prev := 0.0
	for _, size := range sizes {
		c, err := CircumferenceMm(size)
		if err != nil {
			t.Fatalf("CircumferenceMm(%d): %v", size, err)
		}
		if c <= prev {
			t.Errorf("size %d: circumference %v not greater than previous %v", size, c, prev)
		}
		prev = c
	}
}

func TestValidSizesDomain(t *testing.T) {
	sizes := ValidSizes()
	if len(sizes) != 18 {
		t.Fatalf("expected 18 sizes, got %d", len(sizes))
	}
	if sizes[0] != 10 || sizes[len(sizes)-1] != 27 {
		t.Errorf("expected domain 10..27, got %d..%d", sizes[0], sizes[len(sizes)-1])
	}
}

func TestSize15Diameter(t *testing.T) {
	d, err := InsideDiameterMm(15)
	if err != nil {
		t.Fatalf("InsideDiameterMm(15): %v", err)
	}
	if d != 60.32 {
		t.Errorf("size 15 diameter = %v, want 60.32", d)
	}
}

func TestOutOfDomainSizesFail(t *testing.T) {
	for _, size := range []int{9, 28, 0, -1, 100} {
		_, err := CircumferenceMm(size)
		if err == nil {
			t.Errorf("CircumferenceMm(%d): expected error, got none", size)
			continue
		}
		if !errors.IsType(err, errors.TypeInvalidInput) {
			t.Errorf("CircumferenceMm(%d): expected INVALID_INPUT, got %v", size, err)
		}
	}
}

func TestCircumferenceInConversion(t *testing.T) {
	mm, _ := CircumferenceMm(15)
	in, err := CircumferenceIn(15)
	if err != nil {
		t.Fatalf("CircumferenceIn(15): %v", err)
	}
	if want := mm / 25.4; math.Abs(in-want) > 1e-9 {
		t.Errorf("CircumferenceIn(15) = %v, want %v", in, want)
	}
}
