package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/psx.db", cfg.DBPath)
	assert.Equal(t, "https://dps.psx.com.pk", cfg.DPSBaseURL)
	assert.Equal(t, "https://www.investorslounge.com", cfg.InvestorsLoungeBaseURL)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 17*time.Hour, cfg.Cutoff)
	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Epoch)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("HTTP_TIMEOUT", "45s")
	t.Setenv("EPOCH_DATE", "2010-06-15")
	t.Setenv("BATCH_SIZE", "250")

	cfg := Load()

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, 45*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Date(2010, 6, 15, 0, 0, 0, 0, time.UTC), cfg.Epoch)
	assert.Equal(t, 250, cfg.BatchSize)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("BATCH_SIZE", "many")
	t.Setenv("HTTP_TIMEOUT", "soon")
	t.Setenv("EPOCH_DATE", "15/06/2010")

	cfg := Load()

	assert.Equal(t, 100, cfg.BatchSize)
	assert.Equal(t, 30*time.Second, cfg.HTTPTimeout)
	assert.Equal(t, time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Epoch)
}
