// Package pdf renders dispense labels as small PDF documents sized for a
// 4x2.25 inch label stock.
package pdf

import (
	"bytes"
	"context"
	"fmt"

	"clinic-dispense/internal/ports/labels"

	"github.com/go-pdf/fpdf"
)

// Label stock dimensions in millimeters.
const (
	labelWidth  = 101.6
	labelHeight = 57.2
	margin      = 3.5
	qrSide      = 16.0
)

type Renderer struct {
	clinicName string
}

// New returns a renderer that prints clinicName in the label header.
func New(clinicName string) *Renderer {
	return &Renderer{clinicName: clinicName}
}

func (r *Renderer) Render(ctx context.Context, d labels.Data) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	doc := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: labelWidth, Ht: labelHeight},
	})
	doc.SetMargins(margin, margin, margin)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	// Text narrows when a QR code occupies the right edge.
	textWidth := labelWidth - 2*margin
	hasQR := len(d.QRPNG) > 0
	if hasQR {
		textWidth -= qrSide + 2
	}

	if r.clinicName != "" {
		doc.SetFont("Helvetica", "I", 6.5)
		doc.CellFormat(textWidth, 3, r.clinicName, "", 1, "L", false, 0, "")
	}

	doc.SetFont("Helvetica", "B", 10)
	doc.CellFormat(textWidth, 4.5, d.PatientName, "", 1, "L", false, 0, "")

	med := d.MedicationName
	if d.DoseText != "" {
		med += "  " + d.DoseText
	}
	doc.SetFont("Helvetica", "B", 8.5)
	doc.CellFormat(textWidth, 4, med, "", 1, "L", false, 0, "")

	if d.FillText != "" {
		doc.SetFont("Helvetica", "", 8)
		doc.CellFormat(textWidth, 3.5, "Draw up "+d.FillText, "", 1, "L", false, 0, "")
	}

	if d.Sig != "" {
		doc.SetFont("Helvetica", "", 8)
		doc.MultiCell(textWidth, 3.5, d.Sig, "", "L", false)
	}
	if d.Instructions != "" {
		doc.SetFont("Helvetica", "I", 7)
		doc.MultiCell(textWidth, 3, d.Instructions, "", "L", false)
	}

	doc.SetFont("Helvetica", "", 7)
	if d.ProviderName != "" {
		doc.CellFormat(textWidth, 3, "Prescriber: "+d.ProviderName, "", 1, "L", false, 0, "")
	}
	if d.PharmacyName != "" {
		doc.CellFormat(textWidth, 3, d.PharmacyName, "", 1, "L", false, 0, "")
	}

	footer := fmt.Sprintf("Qty: %s    Dispensed: %s", d.Quantity, d.DispensedOn.Format("01/02/2006"))
	if d.LotNumber != "" {
		footer += "    Lot: " + d.LotNumber
	}
	if d.ExpiresOn != nil {
		footer += "    Exp: " + d.ExpiresOn.Format("01/02/2006")
	}
	doc.SetXY(margin, labelHeight-margin-3)
	doc.CellFormat(textWidth, 3, footer, "", 0, "L", false, 0, "")

	if hasQR {
		opts := fpdf.ImageOptions{ImageType: "PNG"}
		doc.RegisterImageOptionsReader("qr", opts, bytes.NewReader(d.QRPNG))
		doc.ImageOptions("qr", labelWidth-margin-qrSide, margin, qrSide, qrSide, false, opts, 0, "")
	} else if d.InfoURL != "" {
		// No bitmap available; fall back to the URL as text.
		doc.SetFont("Helvetica", "", 6)
		doc.SetXY(margin, labelHeight-margin-6.5)
		doc.CellFormat(textWidth, 3, d.InfoURL, "", 0, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf output: %w", err)
	}
	return buf.Bytes(), nil
}
