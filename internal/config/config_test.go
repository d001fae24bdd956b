package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/parqueo_test")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 60, cfg.BillingUnitMinutes)
	assert.Equal(t, "America/Guatemala", cfg.DefaultTimezone)
	assert.Equal(t, 5*time.Minute, cfg.SettlementInterval)
	assert.True(t, cfg.IsDevelopment())
	assert.False(t, cfg.IsProduction())
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_InvalidBillingUnit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/parqueo_test")
	t.Setenv("BILLING_UNIT_MINUTES", "90")

	_, err := Load()
	require.Error(t, err)
}

func TestLoad_CustomBillingUnit(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/parqueo_test")
	t.Setenv("BILLING_UNIT_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15, cfg.BillingUnitMinutes)
}

func TestDefaultLocation_FallsBackToUTC(t *testing.T) {
	cfg := &Config{DefaultTimezone: "Not/AZone"}
	assert.Equal(t, time.UTC, cfg.DefaultLocation())

	cfg = &Config{DefaultTimezone: "America/Guatemala"}
	loc := cfg.DefaultLocation()
	require.NotNil(t, loc)
	assert.Equal(t, "America/Guatemala", loc.String())
}
