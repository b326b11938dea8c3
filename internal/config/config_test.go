package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_DefaultsAndOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://postgres:pw@db.example.supabase.co:5432/postgres")
	t.Setenv("JWT_SECRET", "super-secret")
	t.Setenv("RATE_PET", "3.25")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://sankofa.africa, https://admin.sankofa.africa")

	cfg, err := Load()
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, "postgres://postgres:pw@db.example.supabase.co:5432/postgres", cfg.Database.DSN())
	assert.Equal(t, 3.25, cfg.Pricing.CashRate("PET"))
	assert.Equal(t, 1.8, cfg.Pricing.CashRate("HDPE"))
	assert.Equal(t, 5*time.Minute, cfg.Analytics.CacheTTL)
	assert.Equal(t, []string{"https://sankofa.africa", "https://admin.sankofa.africa"}, cfg.CORS.AllowedOrigins)
}

func TestValidate_RequiresSecretAndDatabase(t *testing.T) {
	cfg := &Config{}
	assert.Error(t, cfg.Validate())

	cfg.Database = DatabaseConfig{Host: "localhost", DBName: "sankofa"}
	assert.Error(t, cfg.Validate())

	cfg.JWT.Secret = "x"
	assert.NoError(t, cfg.Validate())
}

func TestDSN_FromParts(t *testing.T) {
	db := DatabaseConfig{Host: "localhost", Port: "5432", User: "u", Password: "p", DBName: "sankofa", SSLMode: "disable"}
	assert.Equal(t, "host=localhost port=5432 user=u password=p dbname=sankofa sslmode=disable", db.DSN())
}

func TestCashRate_UnknownTypeUsesOther(t *testing.T) {
	pricing := DefaultPricing()
	assert.Equal(t, 0.8, pricing.CashRate("glass"))
}
