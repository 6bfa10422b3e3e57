package providers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"clinic-dispense/internal/middleware"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/providers", listProvidersHandler(svc))
}

type providerResponse struct {
	ID          string    `json:"id"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Degree      string    `json:"degree"`
	DisplayName string    `json:"display_name"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// listProvidersHandler godoc
// @Summary List providers
// @Description Lists every prescriber seen on a dispense. Rows are created and updated as a side effect of dispensing; there is no direct create endpoint.
// @Tags providers
// @Produce json
// @Param Authorization header string false "Bearer token in production"
// @Param X-Debug-User-ID header string false "Dev mode only, user ID for debugging"
// @Success 200 {array} providerResponse
// @Failure 401 {string} string "unauthorized"
// @Failure 500 {string} string "internal error"
// @Router /providers [get]
func listProvidersHandler(svc *Service) http.HandlerFunc {
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

		out := make([]providerResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toProviderResponse(p))
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func toProviderResponse(p Provider) providerResponse {
	return providerResponse{
		ID:          p.ID,
		FirstName:   p.FirstName,
		LastName:    p.LastName,
		Degree:      p.Degree,
		DisplayName: p.DisplayName(),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
