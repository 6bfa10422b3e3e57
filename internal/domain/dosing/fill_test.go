package dosing

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestParseDose(t *testing.T) {
	cases := []struct {
		text string
		want float64
	}{
		{"10", 10},
		{" 10 ", 10},
		{"2.5", 2.5},
		{"0.25", 0.25},
		{"10 mg", 10},
		{"2.5ml", 2.5},
		{"10.", 10},
		{"", 0},
		{"   ", 0},
		{"abc", 0},
		{"-5", 0},
		{"mg 10", 0},
	}

	for _, c := range cases {
		if got := ParseDose(c.text); !almostEqual(got, c.want) {
			t.Errorf("ParseDose(%q) = %v, want %v", c.text, got, c.want)
		}
	}
}

func TestFillAmount(t *testing.T) {
	cases := []struct {
		name string
		dose float64
		unit DoseUnit
		conc float64
		want float64
	}{
		{"mg reference case", 10, DoseUnitMG, 50, 0.20},
		{"mg full mL", 50, DoseUnitMG, 50, 1.0},
		{"mcg converts to mg", 500, DoseUnitMCG, 5, 0.1},
		{"ml passes through", 0.3, DoseUnitML, 50, 0.3},
		{"units on U-100 scale", 20, DoseUnitUnits, 50, 0.20},
		{"zero dose", 0, DoseUnitMG, 50, 0},
		{"negative dose", -1, DoseUnitMG, 50, 0},
		{"zero concentration", 10, DoseUnitMG, 0, 0},
		{"negative concentration", 10, DoseUnitMG, -10, 0},
		{"unknown unit", 10, DoseUnit("gal"), 50, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := FillAmount(c.dose, c.unit, c.conc); !almostEqual(got, c.want) {
				t.Fatalf("FillAmount(%v, %q, %v) = %v, want %v", c.dose, c.unit, c.conc, got, c.want)
			}
		})
	}
}

// Fill volume must grow with the dose and shrink as the solution gets
// stronger, for every positive concentration.
func TestFillAmount_Monotonic(t *testing.T) {
	doses := []float64{0, 0.5, 1, 2.5, 10, 50, 100}
	concs := []float64{1, 2.5, 10, 50, 200}

	for _, conc := range concs {
		prev := -1.0
		for _, dose := range doses {
			got := FillAmount(dose, DoseUnitMG, conc)
			if got < prev {
				t.Fatalf("fill decreased with dose: dose=%v conc=%v fill=%v prev=%v", dose, conc, got, prev)
			}
			prev = got
		}
	}

	for _, dose := range doses[1:] {
		prev := math.Inf(1)
		for _, conc := range concs {
			got := FillAmount(dose, DoseUnitMG, conc)
			if got > prev {
				t.Fatalf("fill increased with concentration: dose=%v conc=%v fill=%v prev=%v", dose, conc, got, prev)
			}
			prev = got
		}
	}
}

func TestFillText(t *testing.T) {
	cases := []struct {
		fill float64
		want string
	}{
		{0.20, "0.20 mL (20U)"},
		{1, "1.00 mL (100U)"},
		{0.255, "0.26 mL (26U)"},
		{0, ""},
		{-0.5, ""},
	}

	for _, c := range cases {
		if got := FillText(c.fill); got != c.want {
			t.Errorf("FillText(%v) = %q, want %q", c.fill, got, c.want)
		}
	}
}

func TestFillUnits(t *testing.T) {
	if got := FillUnits(0.20); !almostEqual(got, 20) {
		t.Fatalf("FillUnits(0.20) = %v, want 20", got)
	}
	if got := FillUnits(0); got != 0 {
		t.Fatalf("FillUnits(0) = %v, want 0", got)
	}
}

func TestParseDoseUnit(t *testing.T) {
	if u, ok := ParseDoseUnit(" MG "); !ok || u != DoseUnitMG {
		t.Fatalf("ParseDoseUnit(MG) = %q, %v", u, ok)
	}
	if _, ok := ParseDoseUnit("gallons"); ok {
		t.Fatal("expected gallons to be rejected")
	}
}

func TestParseFrequency(t *testing.T) {
	if f, ok := ParseFrequency("Weekly"); !ok || f != FrequencyWeekly {
		t.Fatalf("ParseFrequency(Weekly) = %q, %v", f, ok)
	}
	if _, ok := ParseFrequency("fortnightly"); ok {
		t.Fatal("expected fortnightly to be rejected")
	}
}
