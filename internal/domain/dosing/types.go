package dosing

import "strings"

// DoseUnit is the unit the prescribed dose is expressed in.
type DoseUnit string

const (
	DoseUnitMG    DoseUnit = "mg"
	DoseUnitMCG   DoseUnit = "mcg"
	DoseUnitML    DoseUnit = "ml"
	DoseUnitUnits DoseUnit = "units"
)

var validDoseUnits = map[DoseUnit]bool{
	DoseUnitMG:    true,
	DoseUnitMCG:   true,
	DoseUnitML:    true,
	DoseUnitUnits: true,
}

func (u DoseUnit) Valid() bool { return validDoseUnits[u] }

// ParseDoseUnit normalizes free-form unit text ("MG", " mL ") to a DoseUnit.
func ParseDoseUnit(s string) (DoseUnit, bool) {
	u := DoseUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", false
	}
	return u, true
}

// Frequency is how often a medication is administered.
type Frequency string

const (
	FrequencyDaily    Frequency = "daily"
	FrequencyWeekly   Frequency = "weekly"
	FrequencyBiweekly Frequency = "biweekly"
	FrequencyMonthly  Frequency = "monthly"

	// FrequencyCustom has no automatic interval; the next due date is
	// maintained by hand. NextDue reports it as not advanced.
	FrequencyCustom Frequency = "custom"
)

var validFrequencies = map[Frequency]bool{
	FrequencyDaily:    true,
	FrequencyWeekly:   true,
	FrequencyBiweekly: true,
	FrequencyMonthly:  true,
	FrequencyCustom:   true,
}

func (f Frequency) Valid() bool { return validFrequencies[f] }

func ParseFrequency(s string) (Frequency, bool) {
	f := Frequency(strings.ToLower(strings.TrimSpace(s)))
	if !f.Valid() {
		return "", false
	}
	return f, true
}
