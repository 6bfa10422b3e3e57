// Package dosing holds the dose math shared by labels, dispense records and
// the dashboard: fill volume for injectables and next-due-date advancement.
// Everything here is a pure function of its inputs; bad input degrades to a
// zero value instead of an error so display code never has to branch.
package dosing

import (
	"fmt"
	"strconv"
	"strings"
)

// unitsPerML matches U-100 syringes: 100 units drawn per mL.
const unitsPerML = 100.0

// ParseDose extracts the numeric dose from free-form dose text ("10",
// "2.5", "10 mg"). Unparsable or negative text yields 0 — the record keeps
// the raw text either way, so nothing is lost.
func ParseDose(text string) float64 {
	s := strings.TrimSpace(text)
	if s == "" {
		return 0
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		if v < 0 {
			return 0
		}
		return v
	}

	// Fall back to a leading numeric prefix so "10 mg" still reads as 10.
	end := 0
	dot := false
	for end < len(s) {
		c := s[end]
		if c >= '0' && c <= '9' {
			end++
			continue
		}
		if c == '.' && !dot {
			dot = true
			end++
			continue
		}
		break
	}
	if end == 0 {
		return 0
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s[:end], "."), 64)
	if err != nil || v < 0 {
		return 0
	}
	return v
}

// FillAmount converts a dose into the volume (mL) to draw from a vial.
// concentration is the mg-per-mL strength of the compounded solution.
// A dose or concentration of zero (or less) means "not computable" and
// yields 0, never a division error.
func FillAmount(dose float64, unit DoseUnit, concentration float64) float64 {
	if dose <= 0 || concentration <= 0 {
		return 0
	}
	switch unit {
	case DoseUnitMG:
		return dose / concentration
	case DoseUnitMCG:
		return dose / 1000 / concentration
	case DoseUnitML:
		// Dose is already a volume.
		return dose
	case DoseUnitUnits:
		return dose / unitsPerML
	default:
		return 0
	}
}

// FillUnits is the syringe-unit equivalent of a fill volume (U-100 scale).
func FillUnits(fill float64) float64 {
	if fill <= 0 {
		return 0
	}
	return fill * unitsPerML
}

// FillText formats a fill volume for labels and lists, e.g. "0.20 mL (20U)".
// A zero fill renders as the empty string: never show "0U" on a label.
func FillText(fill float64) string {
	if fill <= 0 {
		return ""
	}
	return fmt.Sprintf("%.2f mL (%.0fU)", fill, FillUnits(fill))
}
