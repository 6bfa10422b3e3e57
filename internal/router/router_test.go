package router_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"clinic-dispense/internal/adapters/labels/pdf"
	"clinic-dispense/internal/adapters/printing/spool"
	qradapter "clinic-dispense/internal/adapters/qr"
	"clinic-dispense/internal/domain/dashboard"
	"clinic-dispense/internal/platform/changefeed"
	"clinic-dispense/internal/router"
)

type dispenseResp struct {
	ID           string     `json:"id"`
	PatientID    string     `json:"patient_id"`
	DoseValue    float64    `json:"dose_value"`
	QuantityText string     `json:"quantity_text"`
	Active       bool       `json:"active"`
	NextDoseDue  *time.Time `json:"next_dose_due"`
	Sig          string     `json:"sig"`
}

type printResp struct {
	Dispense dispenseResp `json:"dispense"`
	Advanced bool         `json:"advanced"`
	Queued   bool         `json:"queued"`
	Printed  bool         `json:"printed"`
}

type dashboardResp struct {
	Weeks []struct {
		WeekStart time.Time `json:"week_start"`
		Patients  []struct {
			PatientID string    `json:"patient_id"`
			Due       time.Time `json:"due"`
		} `json:"patients"`
	} `json:"weeks"`
	Unscheduled []struct {
		PatientID string `json:"patient_id"`
	} `json:"unscheduled"`
}

func newTestServer(t *testing.T, spoolDir string) *httptest.Server {
	t.Helper()
	t.Setenv("DB_DSN", "")

	printer := spool.New(spoolDir, spool.Options{})
	if err := printer.Connect(context.Background()); err != nil {
		t.Fatalf("spool connect: %v", err)
	}
	t.Cleanup(func() { printer.Close() })

	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil, // dev path: identity from X-Debug-User-ID
		Feed:         changefeed.New(),
		Renderer:     pdf.New("Test Clinic"),
		Printer:      printer,
		QR:           qradapter.NewEncoder(),
		Dashboard: dashboard.Options{
			WeekStart: dashboard.WeekMonday,
			Order:     dashboard.OrderAsc,
			Location:  time.UTC,
		},
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestHTTP_EndToEnd_DispenseFlow(t *testing.T) {
	spoolDir := t.TempDir()
	ts := newTestServer(t, spoolDir)
	userID := "staff-1"

	// 1) No identity, no access.
	{
		st, _ := doReq(t, ts.URL, "GET", "/patients", "", nil)
		if st != http.StatusUnauthorized {
			t.Fatalf("expected 401 without identity, got %d", st)
		}
	}

	// 2) Register a patient.
	patientID := createPatient(t, ts.URL, userID, map[string]any{
		"first_name": "Maria",
		"last_name":  "Lopez",
		"birth_date": "1968-04-12",
	})

	// 3) Record an injectable dispense. 0.5 mg against 2.5 mg/mL draws up
	// as 0.20 mL.
	var created dispenseResp
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/dispenses", userID, map[string]any{
			"provider": map[string]any{
				"first_name": "Ana",
				"last_name":  "Reyes",
				"degree":     "MD",
			},
			"medication": map[string]any{
				"name":                      "Semaglutide",
				"ingredient1_name":          "semaglutide",
				"ingredient1_concentration": 2.5,
				"pharmacy_name":             "Corner Pharmacy",
				"injectable":                true,
				"info_url":                  "https://info.example/sema",
			},
			"dose_text":       "0.5",
			"dose_unit":       "mg",
			"quantity":        1,
			"quantity_unit":   "syringe",
			"frequency":       "weekly",
			"amount_per_dose": 1,
			"lot_number":      "LOT-9",
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 create dispense, got %d body=%s", st, string(body))
		}
		if err := json.Unmarshal(body, &created); err != nil {
			t.Fatalf("decode dispense: %v", err)
		}
		if created.Sig != "Inject 0.20 mL (20U) weekly" {
			t.Fatalf("unexpected sig %q", created.Sig)
		}
		if created.QuantityText != "1 syringe" {
			t.Fatalf("unexpected quantity text %q", created.QuantityText)
		}
		if created.NextDoseDue != nil {
			t.Fatalf("expected no schedule yet")
		}
	}

	// 4) Print the label and advance the schedule in one call.
	{
		st, body := doReq(t, ts.URL, "POST", "/dispenses/"+created.ID+"/print?wait=1", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 print, got %d body=%s", st, string(body))
		}
		var res printResp
		if err := json.Unmarshal(body, &res); err != nil {
			t.Fatalf("decode print response: %v", err)
		}
		if !res.Advanced || !res.Printed {
			t.Fatalf("expected advanced and printed, got %+v", res)
		}
		if res.Dispense.NextDoseDue == nil {
			t.Fatalf("expected next dose due set after print")
		}

		entries, err := os.ReadDir(spoolDir)
		if err != nil {
			t.Fatalf("read spool dir: %v", err)
		}
		if len(entries) != 1 || !strings.HasSuffix(entries[0].Name(), ".pdf") {
			t.Fatalf("expected 1 spooled pdf, got %v", entries)
		}
	}

	// 5) The dashboard shows the patient in the week of the new due date.
	{
		st, body := doReq(t, ts.URL, "GET", "/dashboard", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d body=%s", st, string(body))
		}
		var db dashboardResp
		if err := json.Unmarshal(body, &db); err != nil {
			t.Fatalf("decode dashboard: %v", err)
		}
		if len(db.Weeks) != 1 || len(db.Weeks[0].Patients) != 1 {
			t.Fatalf("expected patient in one week bucket, got %+v", db)
		}
		if db.Weeks[0].Patients[0].PatientID != patientID {
			t.Fatalf("unexpected patient %q on dashboard", db.Weeks[0].Patients[0].PatientID)
		}
		if len(db.Unscheduled) != 0 {
			t.Fatalf("expected nobody unscheduled, got %+v", db.Unscheduled)
		}

		st, _ = doReq(t, ts.URL, "GET", "/dashboard?order=desc", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard with order override, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/dashboard?order=sideways", userID, nil)
		if st != http.StatusBadRequest {
			t.Fatalf("expected 400 for bad order, got %d", st)
		}
	}

	// 6) Deactivating the dispense moves the patient to unscheduled.
	{
		st, body := doReq(t, ts.URL, "POST", "/dispenses/"+created.ID+"/deactivate", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 deactivate, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/dashboard", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 dashboard, got %d", st)
		}
		var db dashboardResp
		if err := json.Unmarshal(body, &db); err != nil {
			t.Fatalf("decode dashboard: %v", err)
		}
		if len(db.Weeks) != 0 {
			t.Fatalf("expected no week buckets after deactivation, got %+v", db.Weeks)
		}
		if len(db.Unscheduled) != 1 || db.Unscheduled[0].PatientID != patientID {
			t.Fatalf("expected patient unscheduled, got %+v", db.Unscheduled)
		}
	}

	// 7) Reactivating restores the kept schedule.
	{
		st, body := doReq(t, ts.URL, "POST", "/dispenses/"+created.ID+"/activate", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 activate, got %d body=%s", st, string(body))
		}
		var d dispenseResp
		if err := json.Unmarshal(body, &d); err != nil {
			t.Fatalf("decode dispense: %v", err)
		}
		if !d.Active || d.NextDoseDue == nil {
			t.Fatalf("expected active dispense with schedule kept, got %+v", d)
		}
	}

	// 8) Editing the dose regenerates the sig without touching the schedule.
	{
		st, body := doReq(t, ts.URL, "PATCH", "/dispenses/"+created.ID, userID, map[string]any{
			"dose_text": "1",
		})
		if st != http.StatusOK {
			t.Fatalf("expected 200 patch, got %d body=%s", st, string(body))
		}
		var d dispenseResp
		if err := json.Unmarshal(body, &d); err != nil {
			t.Fatalf("decode dispense: %v", err)
		}
		if d.Sig != "Inject 0.40 mL (40U) weekly" {
			t.Fatalf("expected sig regenerated, got %q", d.Sig)
		}
		if d.NextDoseDue == nil {
			t.Fatalf("expected edit to keep the schedule")
		}
	}

	// 9) A second dispense with the same prescriber and medication reuses
	// both records.
	{
		st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/dispenses", userID, map[string]any{
			"provider":   map[string]any{"first_name": "Ana", "last_name": "Reyes"},
			"medication": map[string]any{"name": "semaglutide"},
			"dose_text":  "0.5", "dose_unit": "mg",
			"quantity": 1, "quantity_unit": "syringe",
			"frequency": "weekly", "amount_per_dose": 1,
		})
		if st != http.StatusCreated {
			t.Fatalf("expected 201 second dispense, got %d body=%s", st, string(body))
		}

		st, body = doReq(t, ts.URL, "GET", "/providers", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list providers, got %d", st)
		}
		var provs []map[string]any
		if err := json.Unmarshal(body, &provs); err != nil {
			t.Fatalf("decode providers: %v", err)
		}
		if len(provs) != 1 {
			t.Fatalf("expected 1 provider after reuse, got %d", len(provs))
		}

		st, body = doReq(t, ts.URL, "GET", "/medications", userID, nil)
		if st != http.StatusOK {
			t.Fatalf("expected 200 list medications, got %d", st)
		}
		var meds []map[string]any
		if err := json.Unmarshal(body, &meds); err != nil {
			t.Fatalf("decode medications: %v", err)
		}
		if len(meds) != 1 {
			t.Fatalf("expected 1 medication after reuse, got %d", len(meds))
		}
	}

	// 10) Deleting the patient cascades to their dispenses.
	{
		st, _ := doReq(t, ts.URL, "DELETE", "/patients/"+patientID, userID, nil)
		if st != http.StatusNoContent {
			t.Fatalf("expected 204 delete patient, got %d", st)
		}
		st, _ = doReq(t, ts.URL, "GET", "/dispenses/"+created.ID, userID, nil)
		if st != http.StatusNotFound {
			t.Fatalf("expected 404 for cascaded dispense, got %d", st)
		}
	}
}

func TestHTTP_Print_UnavailableWithoutPrinter(t *testing.T) {
	t.Setenv("DB_DSN", "")
	ts := httptest.NewServer(router.NewRouter(router.Options{
		AuthVerifier: nil,
	}))
	defer ts.Close()
	userID := "staff-1"

	patientID := createPatient(t, ts.URL, userID, map[string]any{
		"first_name": "Maria",
		"last_name":  "Lopez",
	})

	var created dispenseResp
	st, body := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/dispenses", userID, map[string]any{
		"provider":   map[string]any{"first_name": "Ana", "last_name": "Reyes"},
		"medication": map[string]any{"name": "Metformin"},
		"dose_text":  "500", "dose_unit": "mg",
		"quantity": 30, "quantity_unit": "tablet",
		"frequency": "daily", "amount_per_dose": 2,
	})
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create dispense, got %d body=%s", st, string(body))
	}
	if err := json.Unmarshal(body, &created); err != nil {
		t.Fatalf("decode dispense: %v", err)
	}
	if created.Sig != "Take 2 tablets daily" {
		t.Fatalf("unexpected sig %q", created.Sig)
	}

	st, _ = doReq(t, ts.URL, "POST", "/dispenses/"+created.ID+"/print", userID, nil)
	if st != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 without printer, got %d", st)
	}

	// The schedule still advances without a label.
	st, body = doReq(t, ts.URL, "POST", "/dispenses/"+created.ID+"/next-dose", userID, nil)
	if st != http.StatusOK {
		t.Fatalf("expected 200 next-dose, got %d body=%s", st, string(body))
	}
	var res struct {
		Dispense dispenseResp `json:"dispense"`
		Advanced bool         `json:"advanced"`
	}
	if err := json.Unmarshal(body, &res); err != nil {
		t.Fatalf("decode next-dose response: %v", err)
	}
	if !res.Advanced || res.Dispense.NextDoseDue == nil {
		t.Fatalf("expected schedule advanced, got %+v", res)
	}
}

func TestHTTP_Dispense_RejectsBadEnums(t *testing.T) {
	t.Setenv("DB_DSN", "")
	ts := httptest.NewServer(router.NewRouter(router.Options{AuthVerifier: nil}))
	defer ts.Close()
	userID := "staff-1"

	patientID := createPatient(t, ts.URL, userID, map[string]any{
		"first_name": "Maria",
		"last_name":  "Lopez",
	})

	st, _ := doReq(t, ts.URL, "POST", "/patients/"+patientID+"/dispenses", userID, map[string]any{
		"provider":   map[string]any{"first_name": "Ana", "last_name": "Reyes"},
		"medication": map[string]any{"name": "Metformin"},
		"dose_text":  "500", "dose_unit": "liters",
		"quantity": 1, "quantity_unit": "tablet",
		"frequency": "daily", "amount_per_dose": 1,
	})
	if st != http.StatusBadRequest {
		t.Fatalf("expected 400 for bad dose unit, got %d", st)
	}

	st, _ = doReq(t, ts.URL, "POST", "/patients/missing/dispenses", userID, map[string]any{
		"provider":   map[string]any{"first_name": "Ana", "last_name": "Reyes"},
		"medication": map[string]any{"name": "Metformin"},
		"dose_text":  "500", "dose_unit": "mg",
		"quantity": 1, "quantity_unit": "tablet",
		"frequency": "daily", "amount_per_dose": 1,
	})
	if st != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown patient, got %d", st)
	}
}

func createPatient(t *testing.T, baseURL, userID string, payload map[string]any) string {
	t.Helper()

	st, body := doReq(t, baseURL, "POST", "/patients", userID, payload)
	if st != http.StatusCreated {
		t.Fatalf("expected 201 create patient, got %d body=%s", st, string(body))
	}

	var resp struct {
		ID string `json:"id"`
	}
	_ = json.Unmarshal(body, &resp)
	if resp.ID == "" {
		t.Fatalf("create patient: missing id body=%s", string(body))
	}
	return resp.ID
}

func doReq(t *testing.T, baseURL, method, path, debugUserID string, body any) (int, []byte) {
	t.Helper()

	var rdr io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("json marshal: %v", err)
		}
		rdr = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, baseURL+path, rdr)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if debugUserID != "" {
		req.Header.Set("X-Debug-User-ID", debugUserID)
	}

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer res.Body.Close()

	respBody, _ := io.ReadAll(res.Body)
	return res.StatusCode, respBody
}
