package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
)

const defaultAPIURL = "https://api.openweathermap.org/data/2.5/"

// Config is the process-wide configuration, read once at startup
type Config struct {
	Port        string
	APIURL      string
	APIKey      string
	HTTPTimeout time.Duration
}

// Addr returns the listen address for Port
func (c Config) Addr() string { return ":" + c.Port }

// Load reads an optional .env file (WTHR_ENV_FILE, default ".env") and then
// builds a Config from the environment. Variables already set in the
// environment win over the file.
func Load() (Config, error) {
	envFile := getEnvOrDefault("WTHR_ENV_FILE", ".env")
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("failed to load %s: %w", envFile, err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables only
func FromEnv() (Config, error) {
	cfg := Config{
		Port:   getEnvOrDefault("PORT", "8080"),
		APIURL: getEnvOrDefault("OWM_API_URL", defaultAPIURL),
		APIKey: os.Getenv("OWM_API_KEY"),
	}

	if v := os.Getenv("OWM_HTTP_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return Config{}, fmt.Errorf("invalid OWM_HTTP_TIMEOUT %q: %w", v, err)
		}
		cfg.HTTPTimeout = d
	}

	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
