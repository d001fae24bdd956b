package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	// Server
	Port        int    `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENV" default:"development"`

	// Database
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`

	// Billing
	BillingUnitMinutes int    `envconfig:"BILLING_UNIT_MINUTES" default:"60"`
	DefaultTimezone    string `envconfig:"DEFAULT_TIMEZONE" default:"America/Guatemala"`

	// Settlement cache refresh
	SettlementInterval time.Duration `envconfig:"SETTLEMENT_INTERVAL" default:"5m"`

	// Rate limiting (requests per minute per client IP)
	RateLimitPerMinute int `envconfig:"RATE_LIMIT_PER_MINUTE" default:"1000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cfg.BillingUnitMinutes <= 0 || cfg.BillingUnitMinutes > 60 {
		return nil, fmt.Errorf("BILLING_UNIT_MINUTES must be between 1 and 60, got %d", cfg.BillingUnitMinutes)
	}
	return &cfg, nil
}

// DefaultLocation resolves the operator timezone used for fleet settlement
// windows; falls back to UTC on a bad name.
func (c *Config) DefaultLocation() *time.Location {
	loc, err := time.LoadLocation(c.DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
