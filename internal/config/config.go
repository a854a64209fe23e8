package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	CSuite  CSuiteConfig  `yaml:"csuite"`
	HubSpot HubSpotConfig `yaml:"hubspot"`
	Sync    SyncConfig    `yaml:"sync"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Port int    `yaml:"port"`
	Host string `yaml:"host"`
}

// CSuiteConfig holds CSuite fund-accounting API configuration.
// API v2 authenticates each request with an HMAC-SHA256 body signature.
type CSuiteConfig struct {
	APIKey         string `yaml:"api_key"`
	APISecret      string `yaml:"api_secret"`
	BaseURL        string `yaml:"base_url"`
	Env            string `yaml:"env"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c CSuiteConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// HubSpotConfig holds HubSpot CRM/marketing API configuration
type HubSpotConfig struct {
	AccessToken    string `yaml:"access_token"`
	BaseURL        string `yaml:"base_url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured timeout as a duration
func (c HubSpotConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SyncConfig holds CSuite → HubSpot sync settings
type SyncConfig struct {
	// EventOwnerID is the HubSpot owner assigned to every imported event.
	EventOwnerID string `yaml:"event_owner_id"`
	// SubscriptionID is the HubSpot subscription type that mirrors the
	// CSuite newsletter opt-in flag.
	SubscriptionID string `yaml:"subscription_id"`
}

// Load reads and parses the configuration file
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.CSuite.BaseURL == "" {
		cfg.CSuite.BaseURL = "https://amuslimcf.fcsuite.com/api/v2"
	}
	if cfg.CSuite.Env == "" {
		cfg.CSuite.Env = "live"
	}
	if cfg.CSuite.TimeoutSeconds == 0 {
		cfg.CSuite.TimeoutSeconds = 30
	}
	if cfg.HubSpot.BaseURL == "" {
		cfg.HubSpot.BaseURL = "https://api.hubapi.com"
	}
	if cfg.HubSpot.TimeoutSeconds == 0 {
		cfg.HubSpot.TimeoutSeconds = 30
	}
	if cfg.Sync.EventOwnerID == "" {
		cfg.Sync.EventOwnerID = "159996166"
	}
	if cfg.Sync.SubscriptionID == "" {
		cfg.Sync.SubscriptionID = "1265988358"
	}

	return &cfg, nil
}

// LoadFromEnv loads configuration with environment variable overrides.
// It loads a .env file first (if present) so secrets can live in .env
// locally and in real env vars in deployment.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("CSUITE_API_KEY"); v != "" {
		cfg.CSuite.APIKey = v
	}
	if v := os.Getenv("CSUITE_API_SECRET"); v != "" {
		cfg.CSuite.APISecret = v
	}
	if v := os.Getenv("CSUITE_BASE_URL"); v != "" {
		cfg.CSuite.BaseURL = v
	}
	if v := os.Getenv("HUBSPOT_ACCESS_TOKEN"); v != "" {
		cfg.HubSpot.AccessToken = v
	}
	if v := os.Getenv("HUBSPOT_BASE_URL"); v != "" {
		cfg.HubSpot.BaseURL = v
	}
	if v := os.Getenv("HUBSPOT_SUBSCRIPTION_ID"); v != "" {
		cfg.Sync.SubscriptionID = v
	}
	if v := os.Getenv("DEFAULT_EVENT_OWNER_ID"); v != "" {
		cfg.Sync.EventOwnerID = v
	}

	return cfg, nil
}

// Validate reports the names of required credentials that are missing.
func (c *Config) Validate() []string {
	var missing []string
	if c.CSuite.APIKey == "" {
		missing = append(missing, "CSUITE_API_KEY")
	}
	if c.CSuite.APISecret == "" {
		missing = append(missing, "CSUITE_API_SECRET")
	}
	if c.HubSpot.AccessToken == "" {
		missing = append(missing, "HUBSPOT_ACCESS_TOKEN")
	}
	return missing
}
