// Package labels defines what goes on a printed dispense label and the
// contract for turning it into a document.
package labels

import (
	"context"
	"time"
)

// Data is everything a label shows. The dispense service assembles it;
// renderers only lay it out.
type Data struct {
	PatientName    string
	MedicationName string

	// DoseText is the prescribed dose as written ("10 mg"). FillText is the
	// derived draw-up amount for injectables ("0.20 mL (20U)"); empty for
	// non-injectables.
	DoseText string
	FillText string

	Sig          string
	Instructions string

	ProviderName string
	PharmacyName string

	Quantity  string // "1 syringe", "30 tablets"
	LotNumber string

	DispensedOn time.Time
	ExpiresOn   *time.Time

	// QRPNG links to patient-facing info about the medication. When empty
	// and InfoURL is set, renderers print the URL as text instead.
	QRPNG   []byte
	InfoURL string
}

// Renderer produces a printable document from label data.
type Renderer interface {
	Render(ctx context.Context, d Data) ([]byte, error)
}
