package main

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"clinic-dispense/internal/adapters/auth/jwtverify"
	"clinic-dispense/internal/adapters/labels/pdf"
	"clinic-dispense/internal/adapters/printing/spool"
	qrenc "clinic-dispense/internal/adapters/qr"
	"clinic-dispense/internal/adapters/replication"
	pg "clinic-dispense/internal/adapters/storage/postgres"
	"clinic-dispense/internal/config"
	"clinic-dispense/internal/domain/dashboard"
	"clinic-dispense/internal/platform/changefeed"
	"clinic-dispense/internal/platform/logger"
	"clinic-dispense/internal/platform/metrics"
	"clinic-dispense/internal/platform/tracing"
	"clinic-dispense/internal/ports/auth"
	replport "clinic-dispense/internal/ports/replication"
	"clinic-dispense/internal/router"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "clinic-dispense",
		Short: "Dispensing and dose scheduling server for a small practice",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log, err := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	ctx := context.Background()

	tracer, err := tracing.Init(ctx, tracing.Config{
		ServiceName:  cfg.AppName,
		Environment:  cfg.Env,
		OTLPEndpoint: cfg.OTLPEndpoint,
	})
	if err != nil {
		return fmt.Errorf("init tracing: %w", err)
	}

	mets := metrics.New()
	feed := changefeed.New()

	var db *sql.DB
	if cfg.DBDSN != "" {
		db, err = pg.Open(cfg.DBDSN, cfg.DBMaxOpen, cfg.DBMaxIdle)
		if err != nil {
			return fmt.Errorf("open postgres: %w", err)
		}
		defer db.Close()
		log.Info("connected to postgres")
	} else {
		log.Warn("DB_DSN not set, records live in memory only")
	}

	var verifier auth.AuthVerifier
	if cfg.AuthJWTSecret != "" {
		verifier = jwtverify.New(cfg.AuthJWTSecret)
	} else {
		log.Warn("AUTH_JWT_SECRET not set, accepting X-Debug-User-ID identities")
	}

	printer := spool.New(cfg.SpoolDir, spool.Options{
		Metrics: mets,
		Logger:  log,
	})
	if err := printer.Connect(ctx); err != nil {
		// Labels will fail until the spool dir is fixed; scheduling still works.
		log.Warn("label printer offline", zap.Error(err))
	}
	defer printer.Close()

	var replicator replport.Replicator
	if cfg.ReplicationURL != "" {
		replicator, err = replication.New(cfg.ReplicationURL, replication.Options{
			Metrics: mets,
			Logger:  log,
		})
		if err != nil {
			return fmt.Errorf("build replication client: %w", err)
		}
		if err := replicator.Connect(ctx); err != nil {
			log.Warn("replication peer offline", zap.Error(err))
		}
		feed.Subscribe(func(c changefeed.Change) {
			_ = replicator.RecordChanged(context.Background(), c)
		})
		defer replicator.Close()
	}

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	// Unrecognized values fall back to the dashboard defaults.
	weekStart, _ := dashboard.ParseWeekStart(cfg.WeekStart)
	order, _ := dashboard.ParseOrder(cfg.DashboardOrder)

	handler := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Logger:       log,
		Metrics:      mets,
		Feed:         feed,
		Renderer:     pdf.New(cfg.AppName),
		Printer:      printer,
		QR:           qrenc.NewEncoder(),
		Dashboard: dashboard.Options{
			WeekStart: weekStart,
			Order:     order,
			Location:  loc,
		},
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down", zap.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", zap.Error(err))
	}
	if err := tracer.Shutdown(shutdownCtx); err != nil {
		log.Warn("tracer shutdown failed", zap.Error(err))
	}
	log.Info("server stopped")
	return nil
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
	}

	upCmd := &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			db, err := openFromConfig()
			if err != nil {
				return err
			}
			defer db.Close()

			count, err := pg.NewMigrator(db, dir).Up(context.Background())
			if err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Printf("Applied %d migration(s).\n", count)
			return nil
		},
	}
	upCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(upCmd)

	statusCmd := &cobra.Command{
		Use:   "status",
		Short: "Show migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, _ := cmd.Flags().GetString("dir")

			db, err := openFromConfig()
			if err != nil {
				return err
			}
			defer db.Close()

			statuses, err := pg.NewMigrator(db, dir).Status(context.Background())
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %-40s %-10s %s\n", "VERSION", "NAME", "STATUS", "APPLIED AT")
			for _, s := range statuses {
				status := "pending"
				appliedAt := ""
				if s.Applied {
					status = "applied"
					if s.AppliedAt != nil {
						appliedAt = s.AppliedAt.Format("2006-01-02 15:04:05")
					}
				}
				fmt.Printf("%-10d %-40s %-10s %s\n", s.Version, s.Name, status, appliedAt)
			}
			return nil
		},
	}
	statusCmd.Flags().String("dir", "./migrations", "Path to migrations directory")
	cmd.AddCommand(statusCmd)

	return cmd
}

func openFromConfig() (*sql.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required for migrations")
	}
	return pg.Open(cfg.DBDSN, cfg.DBMaxOpen, cfg.DBMaxIdle)
}
