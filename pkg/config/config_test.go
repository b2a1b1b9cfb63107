package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "postgres", cfg.DB.Driver)
	assert.Equal(t, "A", cfg.Billing.DefaultSeries)
	assert.Equal(t, 8, cfg.Billing.NumberWidth)
	assert.Equal(t, 15, cfg.Billing.QuoteValidityDays)
	assert.True(t, cfg.Billing.TaxRate.IsZero())
	assert.Equal(t, "0.0.0.0:8080", cfg.HTTP.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("DB_DRIVER", "memory")
	t.Setenv("TAX_RATE", "12")
	t.Setenv("INVOICE_NUMBER_WIDTH", "6")
	t.Setenv("SCHEDULER_ENABLED", "false")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "memory", cfg.DB.Driver)
	assert.Equal(t, "12", cfg.Billing.TaxRate.String())
	assert.Equal(t, 6, cfg.Billing.NumberWidth)
	assert.False(t, cfg.Scheduler.Enabled)
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("TAX_RATE", "abc")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("TAX_RATE", "0")
	t.Setenv("DB_DRIVER", "sqlite")
	_, err = Load()
	assert.Error(t, err)
}

func TestDSN_EscapesPassword(t *testing.T) {
	c := DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss/w", DBName: "ferreteria", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%2Fw@db:5432/ferreteria?sslmode=disable", c.DSN())
}
