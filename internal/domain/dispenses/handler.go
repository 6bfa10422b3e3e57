package dispenses

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clinic-dispense/internal/domain/dosing"
	"clinic-dispense/internal/domain/medications"
	"clinic-dispense/internal/domain/patients"
	"clinic-dispense/internal/middleware"
	"clinic-dispense/internal/ports/printing"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, patientsSvc *patients.Service) {
	r.Route("/patients/{patientID}/dispenses", func(dr chi.Router) {
		dr.Post("/", createDispenseHandler(svc, patientsSvc))
		dr.Get("/", listDispensesHandler(svc, patientsSvc))
	})

	r.Route("/dispenses/{dispenseID}", func(dr chi.Router) {
		dr.Get("/", getDispenseHandler(svc))
		dr.Patch("/", updateDispenseHandler(svc))
		dr.Delete("/", deleteDispenseHandler(svc))

		dr.Post("/print", printDispenseHandler(svc))
		dr.Post("/reprint", reprintDispenseHandler(svc))
		dr.Post("/next-dose", updateNextDoseHandler(svc))

		dr.Post("/activate", setDispenseActiveHandler(svc, true))
		dr.Post("/deactivate", setDispenseActiveHandler(svc, false))
	})
}

type dispenseProviderRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Degree    string `json:"degree"`
}

type dispenseMedicationRequest struct {
	Name                     string  `json:"name"`
	Ingredient1Name          string  `json:"ingredient1_name"`
	Ingredient1Concentration float64 `json:"ingredient1_concentration"`
	Ingredient2Name          string  `json:"ingredient2_name"`
	Ingredient2Concentration float64 `json:"ingredient2_concentration"`
	PharmacyName             string  `json:"pharmacy_name"`
	Injectable               bool    `json:"injectable"`
	InfoURL                  string  `json:"info_url"`
	PrescribingURL           string  `json:"prescribing_url"`
}

type createDispenseRequest struct {
	Provider   dispenseProviderRequest   `json:"provider"`
	Medication dispenseMedicationRequest `json:"medication"`

	DoseText      string `json:"dose_text"`
	DoseUnit      string `json:"dose_unit" enums:"mg,mcg,ml,units"`
	Quantity      int    `json:"quantity"`
	QuantityUnit  string `json:"quantity_unit" enums:"syringe,pen,tablet,vial,bottle"`
	Frequency     string `json:"frequency" enums:"daily,weekly,biweekly,monthly,custom"`
	AmountPerDose int    `json:"amount_per_dose"`
	Instructions  string `json:"instructions"`

	DispenseDate   string `json:"dispense_date"`   // YYYY-MM-DD, defaults to today
	ExpirationDate string `json:"expiration_date"` // YYYY-MM-DD, optional
	LotNumber      string `json:"lot_number"`

	ScheduleInitial bool `json:"schedule_initial"`
}

type updateDispenseRequest struct {
	// Pointers so PATCH can tell "absent" from "empty": nil = leave alone.
	DoseText       *string `json:"dose_text"`
	DoseUnit       *string `json:"dose_unit"`
	Quantity       *int    `json:"quantity"`
	QuantityUnit   *string `json:"quantity_unit"`
	Frequency      *string `json:"frequency"`
	AmountPerDose  *int    `json:"amount_per_dose"`
	Instructions   *string `json:"instructions"`
	DispenseDate   *string `json:"dispense_date"`
	ExpirationDate *string `json:"expiration_date"` // send null to clear
	LotNumber      *string `json:"lot_number"`
}

type dispenseResponse struct {
	ID           string `json:"id"`
	PatientID    string `json:"patient_id"`
	MedicationID string `json:"medication_id"`
	ProviderID   string `json:"provider_id"`

	DoseText  string  `json:"dose_text"`
	DoseValue float64 `json:"dose_value"`
	DoseUnit  string  `json:"dose_unit"`

	Quantity     int    `json:"quantity"`
	QuantityUnit string `json:"quantity_unit"`
	QuantityText string `json:"quantity_text"`

	Frequency     string `json:"frequency"`
	AmountPerDose int    `json:"amount_per_dose"`
	Instructions  string `json:"instructions,omitempty"`

	DispenseDate   time.Time  `json:"dispense_date"`
	ExpirationDate *time.Time `json:"expiration_date,omitempty"`
	Expired        bool       `json:"expired"`
	LotNumber      string     `json:"lot_number,omitempty"`

	Active      bool       `json:"active"`
	NextDoseDue *time.Time `json:"next_dose_due,omitempty"`
	Sig         string     `json:"sig"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type printDispenseResponse struct {
	Dispense dispenseResponse `json:"dispense"`
	Advanced bool             `json:"advanced"`
	Queued   bool             `json:"queued"`
	Printed  bool             `json:"printed"`
}

type nextDoseResponse struct {
	Dispense dispenseResponse `json:"dispense"`
	Advanced bool             `json:"advanced"`
}

// createDispenseHandler godoc
// @Summary Record a dispense
// @Description Records a medication handed to a patient. The prescriber and the medication template go through find-or-create: a previously seen provider name or medication name reuses (and, for medications, updates) the existing record instead of duplicating it. schedule_initial seeds next_dose_due from the dispense date.
// @Tags dispenses
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param patientID path string true "Patient ID"
// @Param payload body createDispenseRequest true "Dispense data"
// @Success 201 {object} dispenseResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/dispenses [post]
func createDispenseHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		patientID := chi.URLParam(r, "patientID")
		if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		var req createDispenseRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		doseUnit, ok := dosing.ParseDoseUnit(req.DoseUnit)
		if !ok {
			http.Error(w, "dose_unit must be one of mg, mcg, ml, units", http.StatusBadRequest)
			return
		}
		quantityUnit, ok := ParseQuantityUnit(req.QuantityUnit)
		if !ok {
			http.Error(w, "quantity_unit must be one of syringe, pen, tablet, vial, bottle", http.StatusBadRequest)
			return
		}
		frequency, ok := dosing.ParseFrequency(req.Frequency)
		if !ok {
			http.Error(w, "frequency must be one of daily, weekly, biweekly, monthly, custom", http.StatusBadRequest)
			return
		}

		// Steppers on the form start at 1; absent counts mean 1.
		if req.Quantity == 0 {
			req.Quantity = 1
		}
		if req.AmountPerDose == 0 {
			req.AmountPerDose = 1
		}

		var dispenseDate *time.Time
		if strings.TrimSpace(req.DispenseDate) != "" {
			t, err := time.Parse("2006-01-02", req.DispenseDate)
			if err != nil {
				http.Error(w, "dispense_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			dispenseDate = &t
		}
		var expirationDate *time.Time
		if strings.TrimSpace(req.ExpirationDate) != "" {
			t, err := time.Parse("2006-01-02", req.ExpirationDate)
			if err != nil {
				http.Error(w, "expiration_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			expirationDate = &t
		}

		d, err := svc.Create(r.Context(), patientID, CreateInput{
			ProviderFirstName: req.Provider.FirstName,
			ProviderLastName:  req.Provider.LastName,
			ProviderDegree:    req.Provider.Degree,
			Medication: medications.TemplateInput{
				Name:                     req.Medication.Name,
				Ingredient1Name:          req.Medication.Ingredient1Name,
				Ingredient1Concentration: req.Medication.Ingredient1Concentration,
				Ingredient2Name:          req.Medication.Ingredient2Name,
				Ingredient2Concentration: req.Medication.Ingredient2Concentration,
				PharmacyName:             req.Medication.PharmacyName,
				Injectable:               req.Medication.Injectable,
				InfoURL:                  req.Medication.InfoURL,
				PrescribingURL:           req.Medication.PrescribingURL,
			},
			DoseText:        req.DoseText,
			DoseUnit:        doseUnit,
			Quantity:        req.Quantity,
			QuantityUnit:    quantityUnit,
			Frequency:       frequency,
			AmountPerDose:   req.AmountPerDose,
			Instructions:    req.Instructions,
			DispenseDate:    dispenseDate,
			ExpirationDate:  expirationDate,
			LotNumber:       req.LotNumber,
			ScheduleInitial: req.ScheduleInitial,
		})
		if err != nil {
			if errors.Is(err, ErrInvalidInput) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusCreated, toDispenseResponse(d, time.Now()))
	}
}

// listDispensesHandler godoc
// @Summary List a patient's dispenses
// @Tags dispenses
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param patientID path string true "Patient ID"
// @Param active query bool false "Filter by active flag"
// @Success 200 {array} dispenseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Failure 500 {string} string "internal error"
// @Router /patients/{patientID}/dispenses [get]
func listDispensesHandler(svc *Service, patientsSvc *patients.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		patientID := chi.URLParam(r, "patientID")
		if _, err := patientsSvc.GetByID(r.Context(), patientID); err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		var f ListFilter
		if v := strings.TrimSpace(r.URL.Query().Get("active")); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				http.Error(w, "active must be true or false", http.StatusBadRequest)
				return
			}
			f.Active = &b
		}

		items, err := svc.ListByPatient(r.Context(), patientID, f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		now := time.Now()
		out := make([]dispenseResponse, 0, len(items))
		for _, d := range items {
			out = append(out, toDispenseResponse(d, now))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getDispenseHandler godoc
// @Summary Get dispense
// @Tags dispenses
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Success 200 {object} dispenseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Router /dispenses/{dispenseID} [get]
func getDispenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.GetByID(r.Context(), chi.URLParam(r, "dispenseID"))
		if err != nil {
			http.Error(w, "dispense not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toDispenseResponse(d, time.Now()))
	}
}

// updateDispenseHandler godoc
// @Summary Edit dispense
// @Description Partial update. Dose value and sig are regenerated from the new fields; next_dose_due is never touched here. expiration_date accepts null to clear it.
// @Tags dispenses
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Param payload body updateDispenseRequest true "Fields to change"
// @Success 200 {object} dispenseResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Router /dispenses/{dispenseID} [patch]
func updateDispenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}
		var req updateDispenseRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		in := UpdateInput{
			DoseText:      req.DoseText,
			Quantity:      req.Quantity,
			AmountPerDose: req.AmountPerDose,
			Instructions:  req.Instructions,
			LotNumber:     req.LotNumber,
		}

		if req.DoseUnit != nil {
			u, ok := dosing.ParseDoseUnit(*req.DoseUnit)
			if !ok {
				http.Error(w, "dose_unit must be one of mg, mcg, ml, units", http.StatusBadRequest)
				return
			}
			in.DoseUnit = &u
		}
		if req.QuantityUnit != nil {
			u, ok := ParseQuantityUnit(*req.QuantityUnit)
			if !ok {
				http.Error(w, "quantity_unit must be one of syringe, pen, tablet, vial, bottle", http.StatusBadRequest)
				return
			}
			in.QuantityUnit = &u
		}
		if req.Frequency != nil {
			fq, ok := dosing.ParseFrequency(*req.Frequency)
			if !ok {
				http.Error(w, "frequency must be one of daily, weekly, biweekly, monthly, custom", http.StatusBadRequest)
				return
			}
			in.Frequency = &fq
		}
		if req.DispenseDate != nil {
			t, err := time.Parse("2006-01-02", *req.DispenseDate)
			if err != nil {
				http.Error(w, "dispense_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			in.DispenseDate = &t
		}
		if v, exists := raw["expiration_date"]; exists {
			in.ExpirationDate.Set = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "expiration_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "expiration_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				in.ExpirationDate.Value = &t
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "dispenseID"), in)
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "dispense not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDispenseResponse(updated, time.Now()))
	}
}

// printDispenseHandler godoc
// @Summary Print label and advance schedule
// @Description Advances next_dose_due from the current time per the dispense's frequency, persists it, then queues the label for printing. Custom frequency advances nothing (advanced=false) but still prints. Pass wait=1 to block until the print job finishes.
// @Tags dispenses
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Param wait query bool false "Wait for the print job to complete"
// @Success 200 {object} printDispenseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Failure 502 {string} string "print failed (schedule change, if any, is kept)"
// @Failure 503 {string} string "printing unavailable"
// @Router /dispenses/{dispenseID}/print [post]
func printDispenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		res, err := svc.PrintAndUpdate(r.Context(), chi.URLParam(r, "dispenseID"))
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "dispense not found", http.StatusNotFound)
			case errors.Is(err, ErrPrintingUnavailable):
				http.Error(w, "printing unavailable", http.StatusServiceUnavailable)
			case res.Advanced:
				// The schedule moved and is persisted; only the label failed.
				http.Error(w, "label print failed, schedule already advanced", http.StatusBadGateway)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		out := printDispenseResponse{
			Dispense: toDispenseResponse(res.Dispense, time.Now()),
			Advanced: res.Advanced,
			Queued:   true,
		}

		if wantWait(r) {
			if err := awaitTicket(r, res.Ticket); err != nil {
				http.Error(w, "print job failed: "+err.Error(), http.StatusBadGateway)
				return
			}
			out.Queued = false
			out.Printed = true
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// reprintDispenseHandler godoc
// @Summary Reprint label
// @Description Renders and queues the label exactly as stored. next_dose_due is untouched. Pass wait=1 to block until the print job finishes.
// @Tags dispenses
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Param wait query bool false "Wait for the print job to complete"
// @Success 202 {object} printDispenseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Failure 502 {string} string "print failed"
// @Failure 503 {string} string "printing unavailable"
// @Router /dispenses/{dispenseID}/reprint [post]
func reprintDispenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		id := chi.URLParam(r, "dispenseID")
		ticket, err := svc.Reprint(r.Context(), id)
		if err != nil {
			switch {
			case errors.Is(err, ErrNotFound):
				http.Error(w, "dispense not found", http.StatusNotFound)
			case errors.Is(err, ErrPrintingUnavailable):
				http.Error(w, "printing unavailable", http.StatusServiceUnavailable)
			default:
				http.Error(w, "print failed", http.StatusBadGateway)
			}
			return
		}

		d, err := svc.GetByID(r.Context(), id)
		if err != nil {
			http.Error(w, "dispense not found", http.StatusNotFound)
			return
		}

		out := printDispenseResponse{
			Dispense: toDispenseResponse(d, time.Now()),
			Queued:   true,
		}
		status := http.StatusAccepted

		if wantWait(r) {
			if err := awaitTicket(r, ticket); err != nil {
				http.Error(w, "print job failed: "+err.Error(), http.StatusBadGateway)
				return
			}
			out.Queued = false
			out.Printed = true
			status = http.StatusOK
		}

		writeJSON(w, status, out)
	}
}

// updateNextDoseHandler godoc
// @Summary Advance next dose without printing
// @Description Recomputes next_dose_due from the current time per the dispense's frequency and persists it. Custom frequency is a no-op with advanced=false.
// @Tags dispenses
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Success 200 {object} nextDoseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Failure 500 {string} string "internal error"
// @Router /dispenses/{dispenseID}/next-dose [post]
func updateNextDoseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, advanced, err := svc.UpdateNextDose(r.Context(), chi.URLParam(r, "dispenseID"))
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "dispense not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, nextDoseResponse{
			Dispense: toDispenseResponse(d, time.Now()),
			Advanced: advanced,
		})
	}
}

// setDispenseActiveHandler godoc
// @Summary Activate or deactivate dispense
// @Description Deactivating removes the dispense from dashboard scheduling without clearing next_dose_due; activating restores it.
// @Tags dispenses
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Success 200 {object} dispenseResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Router /dispenses/{dispenseID}/deactivate [post]
func setDispenseActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		d, err := svc.SetActive(r.Context(), chi.URLParam(r, "dispenseID"), active)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "dispense not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toDispenseResponse(d, time.Now()))
	}
}

// deleteDispenseHandler godoc
// @Summary Delete dispense
// @Tags dispenses
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param dispenseID path string true "Dispense ID"
// @Success 204 {string} string "deleted"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "dispense not found"
// @Router /dispenses/{dispenseID} [delete]
func deleteDispenseHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "dispenseID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "dispense not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func wantWait(r *http.Request) bool {
	v := strings.TrimSpace(r.URL.Query().Get("wait"))
	if v == "" {
		return false
	}
	b, err := strconv.ParseBool(v)
	return err == nil && b
}

// awaitTicket blocks until the print job finishes or the request is
// canceled. Cancellation abandons the wait, not the job.
func awaitTicket(r *http.Request, t printing.Ticket) error {
	if t == nil {
		return nil
	}
	select {
	case err := <-t.Done():
		return err
	case <-r.Context().Done():
		return r.Context().Err()
	}
}

func toDispenseResponse(d Dispense, now time.Time) dispenseResponse {
	return dispenseResponse{
		ID:             d.ID,
		PatientID:      d.PatientID,
		MedicationID:   d.MedicationID,
		ProviderID:     d.ProviderID,
		DoseText:       d.DoseText,
		DoseValue:      d.DoseValue,
		DoseUnit:       string(d.DoseUnit),
		Quantity:       d.Quantity,
		QuantityUnit:   string(d.QuantityUnit),
		QuantityText:   d.QuantityText(),
		Frequency:      string(d.Frequency),
		AmountPerDose:  d.AmountPerDose,
		Instructions:   d.Instructions,
		DispenseDate:   d.DispenseDate,
		ExpirationDate: d.ExpirationDate,
		Expired:        d.Expired(now),
		LotNumber:      d.LotNumber,
		Active:         d.Active,
		NextDoseDue:    d.NextDoseDue,
		Sig:            d.Sig,
		CreatedAt:      d.CreatedAt,
		UpdatedAt:      d.UpdatedAt,
	}
}

// writeJSON is duplicated on purpose across domain handlers so modules stay
// self-contained. Extract a shared helper only once it spreads further.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
