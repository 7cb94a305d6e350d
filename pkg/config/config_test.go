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
	assert.Equal(t, "http://localhost:8000/api", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.StateFile)
	assert.Equal(t, ".", cfg.DownloadDir)
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("CONTRACTPRO_BASE_URL", "https://clm.example.com/api/")
	t.Setenv("CONTRACTPRO_TIMEOUT", "5s")
	t.Setenv("CONTRACTPRO_STATE_FILE", "/tmp/clm-session.json")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "https://clm.example.com/api", cfg.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, "/tmp/clm-session.json", cfg.StateFile)
}

func TestSanitizeGuardsBadValues(t *testing.T) {
	cfg := &Config{BaseURL: "http://host/", RequestTimeout: -1}
	cfg.Sanitize()
	assert.Equal(t, "http://host", cfg.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.NotEmpty(t, cfg.StateFile)
	assert.Equal(t, ".", cfg.DownloadDir)
}
