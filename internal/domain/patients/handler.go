package patients

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"clinic-dispense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/patients", func(pr chi.Router) {
		pr.Post("/", createPatientHandler(svc))
		pr.Get("/", listPatientsHandler(svc))

		pr.Get("/{patientID}", getPatientHandler(svc))
		pr.Patch("/{patientID}", updatePatientHandler(svc))
		pr.Delete("/{patientID}", deletePatientHandler(svc))

		pr.Post("/{patientID}/activate", setPatientActiveHandler(svc, true))
		pr.Post("/{patientID}/deactivate", setPatientActiveHandler(svc, false))
	})
}

type createPatientRequest struct {
	FirstName  string `json:"first_name"`
	MiddleName string `json:"middle_name"`
	LastName   string `json:"last_name"`
	BirthDate  string `json:"birth_date"` // YYYY-MM-DD, optional
}

type patientResponse struct {
	ID         string     `json:"id"`
	FirstName  string     `json:"first_name"`
	MiddleName string     `json:"middle_name"`
	LastName   string     `json:"last_name"`
	BirthDate  *time.Time `json:"birth_date,omitempty"`
	Active     bool       `json:"active"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type updatePatientRequest struct {
	// Pointers so PATCH can tell "absent" from "empty": nil = leave alone.
	FirstName  *string `json:"first_name"`
	MiddleName *string `json:"middle_name"`
	LastName   *string `json:"last_name"`
	BirthDate  *string `json:"birth_date"` // YYYY-MM-DD; send null to clear
}

// createPatientHandler godoc
// @Summary Create patient
// @Description Registers a new patient. first_name and last_name are required; birth_date is optional YYYY-MM-DD. New patients start active.
// @Tags patients
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param payload body createPatientRequest true "Patient data"
// @Success 201 {object} patientResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Router /patients [post]
func createPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req createPatientRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var bd *time.Time
		if strings.TrimSpace(req.BirthDate) != "" {
			t, err := time.Parse("2006-01-02", req.BirthDate)
			if err != nil {
				http.Error(w, "birth_date must be YYYY-MM-DD", http.StatusBadRequest)
				return
			}
			bd = &t
		}

		p, err := svc.Create(r.Context(), CreateInput{
			FirstName:  req.FirstName,
			MiddleName: req.MiddleName,
			LastName:   req.LastName,
			BirthDate:  bd,
		})
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, toPatientResponse(p))
	}
}

// listPatientsHandler godoc
// @Summary List patients
// @Description Lists patients, optionally filtered by active flag.
// @Tags patients
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param active query bool false "Filter by active flag"
// @Success 200 {array} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /patients [get]
func listPatientsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
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

		items, err := svc.List(r.Context(), f)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		out := make([]patientResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPatientResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

// getPatientHandler godoc
// @Summary Get patient
// @Tags patients
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param patientID path string true "Patient ID"
// @Success 200 {object} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [get]
func getPatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.GetByID(r.Context(), chi.URLParam(r, "patientID"))
		if err != nil {
			http.Error(w, "patient not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

// updatePatientHandler godoc
// @Summary Update patient
// @Description Partial update. Only fields present in the body change; birth_date accepts null to clear the stored date.
// @Tags patients
// @Accept json
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param patientID path string true "Patient ID"
// @Param payload body updatePatientRequest true "Fields to change"
// @Success 200 {object} patientResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [patch]
func updatePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Decode to a raw map first so "birth_date": null is distinguishable
		// from the field being absent.
		var raw map[string]json.RawMessage
		if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		var req updatePatientRequest
		{
			b, _ := json.Marshal(raw)
			if err := json.Unmarshal(b, &req); err != nil {
				http.Error(w, "invalid json", http.StatusBadRequest)
				return
			}
		}

		bd := DatePatch{}
		if v, exists := raw["birth_date"]; exists {
			bd.Set = true
			if string(v) != "null" {
				var s string
				if err := json.Unmarshal(v, &s); err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				t, err := time.Parse("2006-01-02", s)
				if err != nil {
					http.Error(w, "birth_date must be YYYY-MM-DD or null", http.StatusBadRequest)
					return
				}
				bd.Value = &t
			}
		}

		updated, err := svc.Update(r.Context(), chi.URLParam(r, "patientID"), UpdateInput{
			FirstName:  req.FirstName,
			MiddleName: req.MiddleName,
			LastName:   req.LastName,
			BirthDate:  bd,
		})
		if err != nil {
			switch {
			case errors.Is(err, ErrInvalidInput):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, ErrNotFound):
				http.Error(w, "patient not found", http.StatusNotFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(updated))
	}
}

// setPatientActiveHandler godoc
// @Summary Activate or deactivate patient
// @Description Deactivating hides the patient from the dispensing dashboard without deleting anything. Activate reverses it.
// @Tags patients
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param patientID path string true "Patient ID"
// @Success 200 {object} patientResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID}/deactivate [post]
func setPatientActiveHandler(svc *Service, active bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		p, err := svc.SetActive(r.Context(), chi.URLParam(r, "patientID"), active)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toPatientResponse(p))
	}
}

// deletePatientHandler godoc
// @Summary Delete patient
// @Description Removes the patient and every dispense they own. Prefer deactivate when history should be kept.
// @Tags patients
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param patientID path string true "Patient ID"
// @Success 204 {string} string "deleted"
// @Failure 401 {string} string "unauthorized"
// @Failure 404 {string} string "patient not found"
// @Router /patients/{patientID} [delete]
func deletePatientHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		if err := svc.Delete(r.Context(), chi.URLParam(r, "patientID")); err != nil {
			if errors.Is(err, ErrNotFound) {
				http.Error(w, "patient not found", http.StatusNotFound)
				return
			}
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}

func toPatientResponse(p Patient) patientResponse {
	return patientResponse{
		ID:         p.ID,
		FirstName:  p.FirstName,
		MiddleName: p.MiddleName,
		LastName:   p.LastName,
		BirthDate:  p.BirthDate,
		Active:     p.Active,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// writeJSON is duplicated on purpose across domain handlers so modules stay
// self-contained. Extract a shared helper only once it spreads further.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
