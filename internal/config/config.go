package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultBackendURL = "http://localhost:5000/generate-image"
	DefaultPort       = "8008"
	DefaultProfile    = "chrome_120"
	DefaultLogFile    = "studio.log"
)

// Config holds everything the studio needs at startup. Values come from the
// process environment, optionally seeded by a .env file.
type Config struct {
	BackendURLs    []string
	TimeoutSeconds int
	ClientProfile  string
	UserID         string
	OutputDir      string
	Port           string
	LogFile        string
	AccessKey      string
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the current environment without touching .env.
func FromEnv() (*Config, error) {
	cfg := &Config{
		ClientProfile: strings.ToLower(strings.TrimSpace(os.Getenv("CLIENT_PROFILE"))),
		UserID:        strings.TrimSpace(os.Getenv("STUDIO_USER_ID")),
		OutputDir:     strings.TrimSpace(os.Getenv("OUTPUT_DIR")),
		Port:          strings.TrimSpace(os.Getenv("PORT")),
		LogFile:       strings.TrimSpace(os.Getenv("STUDIO_LOG_FILE")),
		AccessKey:     os.Getenv("STUDIO_ACCESS_KEY"),
	}

	cfg.BackendURLs = ParseEndpoints(os.Getenv("BACKEND_URLS"))
	if len(cfg.BackendURLs) == 0 {
		cfg.BackendURLs = ParseEndpoints(os.Getenv("BACKEND_URL"))
	}
	if len(cfg.BackendURLs) == 0 {
		cfg.BackendURLs = []string{DefaultBackendURL}
	}

	if raw := strings.TrimSpace(os.Getenv("BACKEND_TIMEOUT_SECONDS")); raw != "" {
		timeout, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid BACKEND_TIMEOUT_SECONDS %q: %w", raw, err)
		}
		if timeout < 0 {
			return nil, fmt.Errorf("BACKEND_TIMEOUT_SECONDS must not be negative, got %d", timeout)
		}
		cfg.TimeoutSeconds = timeout
	}

	if cfg.ClientProfile == "" {
		cfg.ClientProfile = DefaultProfile
	}
	if cfg.Port == "" {
		cfg.Port = DefaultPort
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogFile
	}

	return cfg, nil
}
