package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(content), 0644))
	return configPath
}

func TestLoad(t *testing.T) {
	configPath := writeConfig(t, `
server:
  port: 9090
  host: "0.0.0.0"

csuite:
  api_key: "test-key"
  api_secret: "test-secret"
  base_url: "https://sandbox.fcsuite.com/api/v2"
  env: "sandbox"
  timeout_seconds: 45

hubspot:
  access_token: "test-token"
  timeout_seconds: 60

sync:
  event_owner_id: "111"
  subscription_id: "222"
`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)

	assert.Equal(t, "test-key", cfg.CSuite.APIKey)
	assert.Equal(t, "test-secret", cfg.CSuite.APISecret)
	assert.Equal(t, "https://sandbox.fcsuite.com/api/v2", cfg.CSuite.BaseURL)
	assert.Equal(t, "sandbox", cfg.CSuite.Env)
	assert.Equal(t, 45*time.Second, cfg.CSuite.Timeout())

	assert.Equal(t, "test-token", cfg.HubSpot.AccessToken)
	assert.Equal(t, "https://api.hubapi.com", cfg.HubSpot.BaseURL)
	assert.Equal(t, 60*time.Second, cfg.HubSpot.Timeout())

	assert.Equal(t, "111", cfg.Sync.EventOwnerID)
	assert.Equal(t, "222", cfg.Sync.SubscriptionID)
}

func TestLoadDefaults(t *testing.T) {
	configPath := writeConfig(t, `server: {}`)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "https://amuslimcf.fcsuite.com/api/v2", cfg.CSuite.BaseURL)
	assert.Equal(t, "live", cfg.CSuite.Env)
	assert.Equal(t, 30*time.Second, cfg.CSuite.Timeout())
	assert.Equal(t, "https://api.hubapi.com", cfg.HubSpot.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.HubSpot.Timeout())
	assert.Equal(t, "159996166", cfg.Sync.EventOwnerID)
	assert.Equal(t, "1265988358", cfg.Sync.SubscriptionID)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	assert.Error(t, err)
}

func TestLoadInvalidYAML(t *testing.T) {
	configPath := writeConfig(t, `server: [not a mapping`)
	_, err := Load(configPath)
	assert.Error(t, err)
}

func TestLoadFromEnvOverrides(t *testing.T) {
	configPath := writeConfig(t, `
csuite:
  api_key: "file-key"
  api_secret: "file-secret"
`)

	t.Setenv("CSUITE_API_KEY", "env-key")
	t.Setenv("CSUITE_BASE_URL", "https://other.fcsuite.com/api/v2")
	t.Setenv("HUBSPOT_ACCESS_TOKEN", "env-token")
	t.Setenv("HUBSPOT_SUBSCRIPTION_ID", "333")
	t.Setenv("DEFAULT_EVENT_OWNER_ID", "444")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.CSuite.APIKey)
	assert.Equal(t, "file-secret", cfg.CSuite.APISecret, "env must not clobber file values it does not set")
	assert.Equal(t, "https://other.fcsuite.com/api/v2", cfg.CSuite.BaseURL)
	assert.Equal(t, "env-token", cfg.HubSpot.AccessToken)
	assert.Equal(t, "333", cfg.Sync.SubscriptionID)
	assert.Equal(t, "444", cfg.Sync.EventOwnerID)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	missing := cfg.Validate()
	assert.ElementsMatch(t, []string{"CSUITE_API_KEY", "CSUITE_API_SECRET", "HUBSPOT_ACCESS_TOKEN"}, missing)

	cfg.CSuite.APIKey = "k"
	cfg.CSuite.APISecret = "s"
	cfg.HubSpot.AccessToken = "t"
	assert.Empty(t, cfg.Validate())
}
