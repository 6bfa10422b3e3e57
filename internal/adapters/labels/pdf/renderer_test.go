package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/skip2/go-qrcode"

	"clinic-dispense/internal/ports/labels"
)

func sampleData() labels.Data {
	exp := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	return labels.Data{
		PatientName:    "Lopez, Maria",
		MedicationName: "Semaglutide",
		DoseText:       "0.5 mg",
		FillText:       "0.20 mL (20U)",
		Sig:            "Inject 0.20 mL (20U) weekly",
		Instructions:   "Store refrigerated.",
		ProviderName:   "Ana Reyes, MD",
		PharmacyName:   "Corner Pharmacy",
		Quantity:       "1 syringe",
		LotNumber:      "LOT-9",
		DispensedOn:    time.Date(2026, 3, 10, 9, 30, 0, 0, time.UTC),
		ExpiresOn:      &exp,
		InfoURL:        "https://info.example/sema",
	}
}

func TestRenderer_Render(t *testing.T) {
	r := New("Spring Street Clinic")

	doc, err := r.Render(context.Background(), sampleData())
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("expected a PDF document, got %q", doc[:min(len(doc), 8)])
	}
	if len(doc) < 500 {
		t.Fatalf("suspiciously small document: %d bytes", len(doc))
	}
}

func TestRenderer_RenderWithQR(t *testing.T) {
	r := New("Spring Street Clinic")

	png, err := qrcode.Encode("https://info.example/sema", qrcode.Medium, 128)
	if err != nil {
		t.Fatalf("qr encode error: %v", err)
	}
	d := sampleData()
	d.QRPNG = png

	doc, err := r.Render(context.Background(), d)
	if err != nil {
		t.Fatalf("Render error: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF")) {
		t.Fatalf("expected a PDF document")
	}
}

func TestRenderer_RenderCanceledContext(t *testing.T) {
	r := New("Spring Street Clinic")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := r.Render(ctx, sampleData()); err == nil {
		t.Fatalf("expected canceled context to fail")
	}
}
