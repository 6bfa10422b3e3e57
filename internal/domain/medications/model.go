package medications

import "time"

// Medication is a shared template keyed by name. Every dispense that names
// the same medication points at the same row, so editing concentration or
// pharmacy info updates it for all of them at once.
type Medication struct {
	ID string

	// Name is the natural key. Lookups trim and case-fold it.
	Name string

	Ingredient1Name          string
	Ingredient1Concentration float64 // mg/mL of the finished product
	Ingredient2Name          string
	Ingredient2Concentration float64

	PharmacyName string
	Injectable   bool

	// InfoURL is what the QR code on printed labels points at.
	InfoURL        string
	PrescribingURL string

	// QRPNG is the rendered code for InfoURL, regenerated when the URL
	// changes. Empty when InfoURL is empty.
	QRPNG []byte

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PrimaryConcentration is the concentration fill math works from: the first
// ingredient when present, otherwise the second. Zero means no ingredient
// carries one and fill volume cannot be derived.
func (m Medication) PrimaryConcentration() float64 {
	if m.Ingredient1Concentration > 0 {
		return m.Ingredient1Concentration
	}
	return m.Ingredient2Concentration
}
