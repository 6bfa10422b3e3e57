package config

import (
	"testing"
	"time"
)

func validConfig() *Config {
	return &Config{
		Env:            "development",
		WeekStart:      "monday",
		DashboardOrder: "asc",
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WEEK_START", "sunday")
	t.Setenv("DASHBOARD_ORDER", "desc")
	t.Setenv("TIMEZONE", "UTC")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Port != "9999" {
		t.Fatalf("expected PORT override, got %q", cfg.Port)
	}
	if cfg.WeekStart != "sunday" || cfg.DashboardOrder != "desc" {
		t.Fatalf("expected dashboard overrides, got %q %q", cfg.WeekStart, cfg.DashboardOrder)
	}
	if cfg.AppName != "clinic-dispense" {
		t.Fatalf("expected default app name, got %q", cfg.AppName)
	}
}

func TestLoad_RejectsBadWeekStart(t *testing.T) {
	t.Setenv("WEEK_START", "friday")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for bad WEEK_START")
	}
}

func TestValidate_ProductionRequirements(t *testing.T) {
	cfg := validConfig()
	cfg.Env = "production"

	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: production without DB_DSN")
	}

	cfg.DBDSN = "postgres://localhost/clinic"
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected error: production without AUTH_JWT_SECRET")
	}

	cfg.AuthJWTSecret = "secret"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected valid production config, got %v", err)
	}
}

func TestLocation(t *testing.T) {
	cfg := validConfig()

	cfg.Timezone = "UTC"
	loc, err := cfg.Location()
	if err != nil {
		t.Fatalf("location: %v", err)
	}
	if loc != time.UTC {
		t.Fatalf("expected UTC, got %v", loc)
	}

	cfg.Timezone = "Not/AZone"
	if _, err := cfg.Location(); err == nil {
		t.Fatalf("expected error for unknown zone")
	}

	cfg.Timezone = ""
	loc, err = cfg.Location()
	if err != nil || loc != time.Local {
		t.Fatalf("expected host zone for empty TIMEZONE, got %v err=%v", loc, err)
	}
}
