package medications

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinic-dispense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/medications", func(mr chi.Router) {
		mr.Get("/", listMedicationsHandler(svc))
		mr.Get("/{medicationID}", getMedicationHandler(svc))
		mr.Get("/{medicationID}/qr", getMedicationQRHandler(svc))
	})
}

type medicationResponse struct {
	ID                       string    `json:"id"`
	Name                     string    `json:"name"`
	Ingredient1Name          string    `json:"ingredient1_name"`
	Ingredient1Concentration float64   `json:"ingredient1_concentration"`
	Ingredient2Name          string    `json:"ingredient2_name,omitempty"`
	Ingredient2Concentration float64   `json:"ingredient2_concentration,omitempty"`
	PharmacyName             string    `json:"pharmacy_name"`
	Injectable               bool      `json:"injectable"`
	InfoURL                  string    `json:"info_url"`
	PrescribingURL           string    `json:"prescribing_url"`
	HasQR                    bool      `json:"has_qr"`
	CreatedAt                time.Time `json:"created_at"`
	UpdatedAt                time.Time `json:"updated_at"`
}

// listMedicationsHandler godoc
// @Summary List medications
// @Description Lists medication templates. Templates are created and updated as a side effect of dispensing.
// @Tags medications
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Success 200 {array} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /medications [get]
func listMedicationsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		items, err := svc.List(r.Context())
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]medicationResponse, 0, len(items))
		for _, m := range items {
			out = append(out, toMedicationResponse(m))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getMedicationHandler godoc
// @Summary Get medication
// @Tags medications
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param medicationID path string true "Medication ID"
// @Success 200 {object} medicationResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found"
// @Router /medications/{medicationID} [get]
func getMedicationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toMedicationResponse(m))
	}
}

// getMedicationQRHandler godoc
// @Summary Get medication QR code
// @Description Returns the PNG QR code that encodes the medication's info URL.
// @Tags medications
// @Produce png
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param medicationID path string true "Medication ID"
// @Success 200 {file} binary
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "medication not found / no qr code"
// @Router /medications/{medicationID}/qr [get]
func getMedicationQRHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		m, err := svc.GetByID(r.Context(), chi.URLParam(r, "medicationID"))
		if err != nil {
			http.Error(w, "medication not found", http.StatusNotFound)
			return
		}
		if len(m.QRPNG) == 0 {
			http.Error(w, "no qr code", http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(m.QRPNG)
	}
}

func toMedicationResponse(m Medication) medicationResponse {
	return medicationResponse{
		ID:                       m.ID,
		Name:                     m.Name,
		Ingredient1Name:          m.Ingredient1Name,
		Ingredient1Concentration: m.Ingredient1Concentration,
		Ingredient2Name:          m.Ingredient2Name,
		Ingredient2Concentration: m.Ingredient2Concentration,
		PharmacyName:             m.PharmacyName,
		Injectable:               m.Injectable,
		InfoURL:                  m.InfoURL,
		PrescribingURL:           m.PrescribingURL,
		HasQR:                    len(m.QRPNG) > 0,
		CreatedAt:                m.CreatedAt,
		UpdatedAt:                m.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
