package material

import (
	"math"
	"testing"

	"bangler/internal/errors"
)

// TestSize15Scenario walks the reference scenario: size 15 (60.32mm
// diameter), 1.5mm thickness, default config, lands on 7.75in.
func TestSize15Scenario(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	circumferenceMm := math.Pi * 60.32
	result, err := calc.ComputeLength(circumferenceMm, 1.5)
	if err != nil {
		t.Fatalf("ComputeLength: %v", err)
	}

	if math.Abs(result.CircumferenceIn-circumferenceMm/25.4) > 1e-9 {
		t.Errorf("CircumferenceIn = %v, want %v", result.CircumferenceIn, circumferenceMm/25.4)
	}

	// Inside diameter recovered from circumference
	idIn := result.CircumferenceIn / math.Pi
	if math.Abs(idIn-2.3748) > 0.001 {
		t.Errorf("inside diameter = %v in, want ~2.3748", idIn)
	}

	if result.RoundedLengthIn != 7.75 {
		t.Errorf("RoundedLengthIn = %v, want 7.75", result.RoundedLengthIn)
	}
	t.Logf("raw %.4f in -> rounded %.2f in", result.RawLengthIn, result.RoundedLengthIn)
}

func TestLengthMonotonicInThickness(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	circumference := 189.5

	prev := 0.0
	for _, thickness := range []float64{0.5, 0.75, 1.0, 1.25, 1.5, 2.0, 3.0} {
		result, err := calc.ComputeLength(circumference, thickness)
		if err != nil {
			t.Fatalf("thickness %v: %v", thickness, err)
		}
		if result.RawLengthIn < prev {
			t.Errorf("thickness %v: raw length %v decreased from %v", thickness, result.RawLengthIn, prev)
		}
		prev = result.RawLengthIn
	}
}

// TestRoundingIsAlwaysUpward proves the rounded result is never below
// the raw result and always an exact multiple of the increment.
func TestRoundingIsAlwaysUpward(t *testing.T) {
	calc := NewCalculator(DefaultConfig())

	for _, circ := range []float64{150, 175.3, 189.5, 200.01, 249.4} {
		for _, thickness := range []float64{0.75, 1.0, 1.5, 2.5} {
			result, err := calc.ComputeLength(circ, thickness)
			if err != nil {
				t.Fatalf("circ %v thickness %v: %v", circ, thickness, err)
			}
			if result.RoundedLengthIn < result.RawLengthIn {
				t.Errorf("circ %v thickness %v: rounded %v below raw %v",
					circ, thickness, result.RoundedLengthIn, result.RawLengthIn)
			}
			ratio := result.RoundedLengthIn / 0.25
			if math.Abs(ratio-math.Round(ratio)) > 1e-9 {
				t.Errorf("circ %v thickness %v: rounded %v is not a multiple of 0.25",
					circ, thickness, result.RoundedLengthIn)
			}
		}
	}
}

func TestCustomRoundIncrement(t *testing.T) {
	calc := NewCalculator(Config{KFactor: 0.5, SeamAllowanceIn: 0.04, RoundIncrementIn: 1.0})

	result, err := calc.ComputeLength(math.Pi*60.32, 1.5)
	if err != nil {
		t.Fatalf("ComputeLength: %v", err)
	}
	if result.RoundedLengthIn != 8.0 {
		t.Errorf("with 1in increment: rounded = %v, want 8.0", result.RoundedLengthIn)
	}
}

func TestParseThickness(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"1.5 Mm", 1.5},
		{"1 Mm", 1},
		{"0.75 Mm", 0.75},
		{"2mm", 2},
		{"3 MM", 3},
		{" 1.25 ", 1.25},
		{"4", 4},
	}
	for _, c := range cases {
		got, err := ParseThickness(c.in)
		if err != nil {
			t.Errorf("ParseThickness(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseThickness(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseThicknessRejectsNonNumeric(t *testing.T) {
	for _, in := range []string{"thick", "", "Mm", "1.5.5 Mm"} {
		_, err := ParseThickness(in)
		if err == nil {
			t.Errorf("ParseThickness(%q): expected INVALID_INPUT", in)
			continue
		}
		if !errors.IsType(err, errors.TypeInvalidInput) {
			t.Errorf("ParseThickness(%q): expected INVALID_INPUT, got %v", in, err)
		}
	}
}

func TestNonPositiveInputsFail(t *testing.T) {
	calc := NewCalculator(DefaultConfig())
	if _, err := calc.ComputeLength(0, 1.5); err == nil {
		t.Error("zero circumference: expected error")
	}
	if _, err := calc.ComputeLength(189.5, -1); err == nil {
		t.Error("negative thickness: expected error")
	}
}
