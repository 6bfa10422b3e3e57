package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	Env       string `mapstructure:"ENV"`
	AppName   string `mapstructure:"APP_NAME"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	// DBDSN empty means the in-memory store, which is dev-only.
	DBDSN     string `mapstructure:"DB_DSN"`
	DBMaxOpen int    `mapstructure:"DB_MAX_OPEN"`
	DBMaxIdle int    `mapstructure:"DB_MAX_IDLE"`

	AuthJWTSecret string `mapstructure:"AUTH_JWT_SECRET"`

	Timezone       string `mapstructure:"TIMEZONE"`
	WeekStart      string `mapstructure:"WEEK_START"`
	DashboardOrder string `mapstructure:"DASHBOARD_ORDER"`

	SpoolDir       string `mapstructure:"SPOOL_DIR"`
	ReplicationURL string `mapstructure:"REPLICATION_URL"`
	OTLPEndpoint   string `mapstructure:"OTLP_ENDPOINT"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("APP_NAME", "clinic-dispense")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("DB_MAX_OPEN", 10)
	v.SetDefault("DB_MAX_IDLE", 5)
	v.SetDefault("TIMEZONE", "Local")
	v.SetDefault("WEEK_START", "monday")
	v.SetDefault("DASHBOARD_ORDER", "asc")
	v.SetDefault("SPOOL_DIR", "spool")

	// Explicit binds so Unmarshal sees plain env vars too.
	for _, key := range []string{
		"PORT", "ENV", "APP_NAME", "LOG_LEVEL", "LOG_FORMAT",
		"DB_DSN", "DB_MAX_OPEN", "DB_MAX_IDLE",
		"AUTH_JWT_SECRET",
		"TIMEZONE", "WEEK_START", "DASHBOARD_ORDER",
		"SPOOL_DIR", "REPLICATION_URL", "OTLP_ENDPOINT",
	} {
		_ = v.BindEnv(key)
	}

	// A .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Location resolves TIMEZONE. "Local" and "" mean the host zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("TIMEZONE %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// Validate refuses configurations that would misbehave at runtime rather
// than failing on the first request that exercises them.
func (c *Config) Validate() error {
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		return fmt.Errorf("WEEK_START must be \"monday\" or \"sunday\", got %q", c.WeekStart)
	}
	switch c.DashboardOrder {
	case "asc", "desc":
	default:
		return fmt.Errorf("DASHBOARD_ORDER must be \"asc\" or \"desc\", got %q", c.DashboardOrder)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.IsProduction() {
		if c.DBDSN == "" {
			return fmt.Errorf("DB_DSN is required in production; the in-memory store loses data on restart")
		}
		if c.AuthJWTSecret == "" {
			return fmt.Errorf("AUTH_JWT_SECRET is required in production. " +
				"Refusing to start with the debug-header identity path enabled")
		}
	}
	return nil
}
