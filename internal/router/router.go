package router

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"time"

	mem "clinic-dispense/internal/adapters/storage/memory"
	pg "clinic-dispense/internal/adapters/storage/postgres"
	"clinic-dispense/internal/domain/dashboard"
	"clinic-dispense/internal/domain/dispenses"
	"clinic-dispense/internal/domain/medications"
	"clinic-dispense/internal/domain/patients"
	"clinic-dispense/internal/domain/providers"
	"clinic-dispense/internal/middleware"
	"clinic-dispense/internal/platform/changefeed"
	"clinic-dispense/internal/platform/metrics"
	"clinic-dispense/internal/ports/auth"
	"clinic-dispense/internal/ports/labels"
	"clinic-dispense/internal/ports/printing"
	"clinic-dispense/internal/ports/qr"

	_ "clinic-dispense/docs"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
	"go.uber.org/zap"
)

type Options struct {
	AuthVerifier auth.AuthVerifier // nil enables the X-Debug-User-ID dev path

	// DB nil falls back to DB_DSN, then to the in-memory store.
	DB *sql.DB

	Logger   *zap.Logger
	Metrics  *metrics.Metrics
	Feed     *changefeed.Feed
	Renderer labels.Renderer
	Printer  printing.Printer
	QR       qr.Generator

	Dashboard dashboard.Options
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)
	r.Use(middleware.Tracing("clinic-dispense"))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.AuthContext(opts.AuthVerifier))

	var (
		patientRepo    patients.Repository
		providerRepo   providers.Repository
		medicationRepo medications.Repository
		dispenseRepo   dispenses.Repository
	)

	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn, 0, 0)
			if err == nil {
				db = opened
			} else {
				log.Warn("postgres unavailable, using in-memory store", zap.Error(err))
			}
		}
	}

	if db != nil {
		patientRepo = pg.NewPatientsRepo(db)
		providerRepo = pg.NewProvidersRepo(db)
		medicationRepo = pg.NewMedicationsRepo(db)
		dispenseRepo = pg.NewDispensesRepo(db)
	} else {
		patientRepo = mem.NewPatientRepo()
		providerRepo = mem.NewProviderRepo()
		medicationRepo = mem.NewMedicationRepo()
		dispenseRepo = mem.NewDispenseRepo()
	}

	patientsSvc := patients.NewService(patientRepo, opts.Feed)
	providersSvc := providers.NewService(providerRepo)
	medicationsSvc := medications.NewService(medicationRepo, opts.QR)
	dispensesSvc := dispenses.NewService(dispenseRepo, patientsSvc, providersSvc, medicationsSvc, dispenses.Options{
		Renderer: opts.Renderer,
		Printer:  opts.Printer,
		Feed:     opts.Feed,
		Metrics:  opts.Metrics,
		Logger:   log,
	})
	// Deleting a patient purges their dispenses. Wired here because the
	// two services reference each other.
	patientsSvc.AttachPurger(dispensesSvc)
	dashboardSvc := dashboard.NewService(patientsSvc, dispensesSvc, opts.Dashboard)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/ready", readiness(db))
	if opts.Metrics != nil {
		r.Handle("/metrics", metrics.Handler())
	}
	r.Get("/docs/*", httpSwagger.Handler(
		httpSwagger.URL("/docs/doc.json"),
	))

	patients.RegisterRoutes(r, patientsSvc)
	providers.RegisterRoutes(r, providersSvc)
	medications.RegisterRoutes(r, medicationsSvc)
	dispenses.RegisterRoutes(r, dispensesSvc, patientsSvc)
	dashboard.RegisterRoutes(r, dashboardSvc)

	return r
}

// readiness reports 503 until the database answers. With the in-memory
// store there is nothing to wait for.
func readiness(db *sql.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if db != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				http.Error(w, "database unavailable", http.StatusServiceUnavailable)
				return
			}
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready"))
	}
}
