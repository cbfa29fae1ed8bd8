// Package config provides environment-sourced configuration for the bridge.
package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultFactCardURL is the fact-lookup endpoint used when none is configured.
const DefaultFactCardURL = "https://aescher-func-a8gdetcud6g8a5b6.canadacentral-01.azurewebsites.net/api/getfactcard"

// Config holds the bridge configuration.
type Config struct {
	// Server settings
	Port      int
	StaticDir string

	// Remote agent platform
	Endpoint   string
	AgentName  string
	APIVersion string

	// Platform credentials
	TenantID     string
	ClientID     string
	ClientSecret string

	// Tool backend
	FactCardURL string

	// Run polling
	PollInterval time.Duration

	// Logging
	LogLevel  string
	LogPretty bool
}

// Load loads configuration from environment variables. Missing required
// values do not abort loading; MissingRequired reports them so main can log
// a warning and keep serving (requests then fail through the generic error
// path).
func Load() *Config {
	return &Config{
		Port:         getEnvInt("PORT", 3001),
		StaticDir:    getEnv("STATIC_DIR", "dist"),
		Endpoint:     getEnv("AI_FOUNDRY_ENDPOINT", ""),
		AgentName:    getEnv("AI_AGENT_NAME", ""),
		APIVersion:   getEnv("API_VERSION", "2024-12-01-preview"),
		TenantID:     getEnv("AZURE_TENANT_ID", ""),
		ClientID:     getEnv("AZURE_CLIENT_ID", ""),
		ClientSecret: getEnv("AZURE_CLIENT_SECRET", ""),
		FactCardURL:  getEnv("FACT_CARD_URL", DefaultFactCardURL),
		PollInterval: time.Duration(getEnvInt("POLL_INTERVAL_MS", 1000)) * time.Millisecond,
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogPretty:    getEnvBool("LOG_PRETTY", false),
	}
}

// MissingRequired returns the env names of required settings that are unset.
func (c *Config) MissingRequired() []string {
	var missing []string
	for _, check := range []struct {
		name  string
		value string
	}{
		{"AI_FOUNDRY_ENDPOINT", c.Endpoint},
		{"AI_AGENT_NAME", c.AgentName},
		{"AZURE_TENANT_ID", c.TenantID},
		{"AZURE_CLIENT_ID", c.ClientID},
		{"AZURE_CLIENT_SECRET", c.ClientSecret},
	} {
		if check.value == "" {
			missing = append(missing, check.name)
		}
	}
	return missing
}

// HasCredentials reports whether all three platform credential fields are set.
func (c *Config) HasCredentials() bool {
	return c.TenantID != "" && c.ClientID != "" && c.ClientSecret != ""
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if intVal, err := strconv.Atoi(val); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		if boolVal, err := strconv.ParseBool(val); err == nil {
			return boolVal
		}
	}
	return defaultVal
}
