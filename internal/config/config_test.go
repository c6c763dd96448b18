package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data", cfg.Scraper.DataDir)
	assert.Equal(t, 3, cfg.Scraper.MaxRetries)
	assert.Equal(t, 30*time.Second, cfg.Browser.Timeout)
	assert.Equal(t, "8080", cfg.Webapp.Port)
	assert.Equal(t, 20, cfg.Webapp.HistoryLimit)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SCRAPER_MAX_RETRIES", "5")
	t.Setenv("BROWSER_HEADLESS", "false")
	t.Setenv("WEBAPP_BACKEND_API_URL", "https://api.example.com/api/v1")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Scraper.MaxRetries)
	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, "https://api.example.com/api/v1", cfg.Webapp.BackendAPIURL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	cfg.Scraper.MaxRetries = 0
	assert.Error(t, cfg.Validate())

	cfg.Scraper.MaxRetries = 3
	cfg.Webapp.HistoryLimit = 1
	assert.Error(t, cfg.Validate())
}
