// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Storage backend selectors for Config.StorageBackend.
const (
	BackendMock  = "mock"
	BackendDrive = "drive"
)

// Credential modes for Config.AuthMode.
const (
	AuthModeRequest = "request"
	AuthModeOAuth   = "oauth"
	AuthModeStatic  = "static"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:3000"] (Next.js dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// StorageBackend selects the storage provider implementation:
	// "mock" (JSON file on local disk, default) or "drive" (Google Drive).
	StorageBackend string

	// MockDBPath is where the mock backend persists its store.
	// Defaults to "data/mock_db.json".
	MockDBPath string

	// DriveFolderName is the well-known root folder on the provider.
	// Defaults to "4myTouristApp".
	DriveFolderName string

	// AuthMode selects how the drive backend obtains bearer credentials:
	// "request" (forwarded per request by the frontend, default), "oauth"
	// (server-side refresh-token flow), or "static" (fixed token from env).
	AuthMode string

	// GoogleClientID / GoogleClientSecret / GoogleRefreshToken configure the
	// oauth credential mode. Required only when AuthMode is "oauth".
	GoogleClientID     string
	GoogleClientSecret string
	GoogleRefreshToken string

	// GoogleAccessToken is the fixed token for the static credential mode.
	GoogleAccessToken string

	// MaxUploadBytes caps incoming request bodies (and therefore uploads).
	// Defaults to 16 MiB.
	MaxUploadBytes int64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or any
// value outside its allowed set.
func Load() (Config, error) {
	cfg := Config{
		Port:               getEnv("PORT", "8080"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		CORSOrigins:        splitCSV(getEnv("CORS_ORIGINS", "http://localhost:3000")),
		StorageBackend:     getEnv("STORAGE_BACKEND", BackendMock),
		MockDBPath:         getEnv("MOCK_DB_PATH", "data/mock_db.json"),
		DriveFolderName:    getEnv("DRIVE_FOLDER_NAME", "4myTouristApp"),
		AuthMode:           getEnv("AUTH_MODE", AuthModeRequest),
		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRefreshToken: os.Getenv("GOOGLE_REFRESH_TOKEN"),
		GoogleAccessToken:  os.Getenv("GOOGLE_ACCESS_TOKEN"),
	}

	maxUpload, err := strconv.ParseInt(getEnv("MAX_UPLOAD_BYTES", "16777216"), 10, 64)
	if err != nil || maxUpload <= 0 {
		return Config{}, fmt.Errorf("MAX_UPLOAD_BYTES must be a positive integer")
	}
	cfg.MaxUploadBytes = maxUpload

	if cfg.StorageBackend != BackendMock && cfg.StorageBackend != BackendDrive {
		return Config{}, fmt.Errorf("STORAGE_BACKEND must be %q or %q, got %q", BackendMock, BackendDrive, cfg.StorageBackend)
	}
	if cfg.AuthMode != AuthModeRequest && cfg.AuthMode != AuthModeOAuth && cfg.AuthMode != AuthModeStatic {
		return Config{}, fmt.Errorf("AUTH_MODE must be %q, %q, or %q, got %q", AuthModeRequest, AuthModeOAuth, AuthModeStatic, cfg.AuthMode)
	}

	if cfg.StorageBackend == BackendDrive && cfg.AuthMode == AuthModeOAuth {
		var missing []string
		if cfg.GoogleClientID == "" {
			missing = append(missing, "GOOGLE_CLIENT_ID")
		}
		if cfg.GoogleClientSecret == "" {
			missing = append(missing, "GOOGLE_CLIENT_SECRET")
		}
		if cfg.GoogleRefreshToken == "" {
			missing = append(missing, "GOOGLE_REFRESH_TOKEN")
		}
		if len(missing) > 0 {
			return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
		}
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
