package dashboard

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinic-dispense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/dashboard", getDashboardHandler(svc))
}

type dashboardEntry struct {
	PatientID string    `json:"patient_id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Due       time.Time `json:"due"`
}

type dashboardWeek struct {
	WeekStart time.Time        `json:"week_start"`
	Patients  []dashboardEntry `json:"patients"`
}

type dashboardPatient struct {
	PatientID string `json:"patient_id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type dashboardResponse struct {
	Weeks       []dashboardWeek    `json:"weeks"`
	Unscheduled []dashboardPatient `json:"unscheduled"`
}

// getDashboardHandler godoc
// @Summary Weekly dispensing dashboard
// @Description Groups active patients into calendar-week buckets by the earliest next dose due across their active dispenses. Patients with nothing scheduled appear under unscheduled. order overrides the configured bucket direction.
// @Tags dashboard
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Param order query string false "Bucket order: asc (soonest first) or desc" Enums(asc, desc)
// @Success 200 {object} dashboardResponse
// @Failure 400 {string} string "order must be asc or desc"
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /dashboard [get]
func getDashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var opts Options
		if v := strings.TrimSpace(r.URL.Query().Get("order")); v != "" {
			o, ok := ParseOrder(v)
			if !ok {
				http.Error(w, "order must be asc or desc", http.StatusBadRequest)
				return
			}
			opts.Order = o
		}

		view, err := svc.Group(r.Context(), opts)
		if err != nil {
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		writeJSON(w, http.StatusOK, toDashboardResponse(view))
	}
}

func toDashboardResponse(v View) dashboardResponse {
	out := dashboardResponse{
		Weeks:       make([]dashboardWeek, 0, len(v.Weeks)),
		Unscheduled: make([]dashboardPatient, 0, len(v.Unscheduled)),
	}
	for _, wk := range v.Weeks {
		week := dashboardWeek{
			WeekStart: wk.Start,
			Patients:  make([]dashboardEntry, 0, len(wk.Patients)),
		}
		for _, e := range wk.Patients {
			week.Patients = append(week.Patients, dashboardEntry{
				PatientID: e.Patient.ID,
				FirstName: e.Patient.FirstName,
				LastName:  e.Patient.LastName,
				Due:       e.Due,
			})
		}
		out.Weeks = append(out.Weeks, week)
	}
	for _, p := range v.Unscheduled {
		out.Unscheduled = append(out.Unscheduled, dashboardPatient{
			PatientID: p.ID,
			FirstName: p.FirstName,
			LastName:  p.LastName,
		})
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
