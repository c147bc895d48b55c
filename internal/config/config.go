// ABOUTME: Configuration loader for the A365 self-service client
// ABOUTME: Loads backend URLs and signing constants from .env and environment variables

package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Defaults for the shared signing constants. These mirror the values the
// mobile client ships with; deployments override them via environment.
const (
	DefaultAppID     = "004"
	DefaultSID       = "999"
	DefaultSecretKey = "jRxaPLUjcm210BiPDey7kMM7"
)

type Config struct {
	// Backend namespaces
	HXMURL  string // HXM service (requests, approvals, leave, claims)
	AuthURL string // IAM auth (sign-in, OTP, domain list, renew token)
	IAMURL  string // IAM non-auth endpoints
	MainURL string // A365 main service (teams, attendance, holidays)

	// Request signing
	AppID     string
	SID       string
	SecretKey string

	// Client behavior
	Timeout time.Duration // per-request timeout
	DataDir string        // where session and device identity are persisted

	Environment string // dev, staging, sit, prod
}

func Load() (*Config, error) {
	// Missing .env is fine; environment variables still apply
	_ = godotenv.Load()

	cfg := &Config{
		HXMURL:  ensureScheme(getEnv("A365_HXM_URL", "https://apx002.omnicloudapi.com")),
		AuthURL: ensureScheme(getEnv("A365_AUTH_URL", "https://iam.omnicloudapi.com/api/auth")),
		IAMURL:  ensureScheme(getEnv("A365_IAM_URL", "https://iam.omnicloudapi.com/api")),
		MainURL: ensureScheme(getEnv("A365_MAIN_URL", "https://a365.omnicloudapi.com")),

		AppID:     getEnv("A365_APP_ID", DefaultAppID),
		SID:       getEnv("A365_SID", DefaultSID),
		SecretKey: getEnv("A365_SECRET_KEY", DefaultSecretKey),

		Timeout:     time.Duration(getEnvInt("A365_TIMEOUT_SECONDS", 30)) * time.Second,
		DataDir:     os.Getenv("A365_DATA_DIR"),
		Environment: getEnv("A365_ENV", "dev"),
	}

	if cfg.DataDir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("cannot resolve user config dir: %w", err)
		}
		cfg.DataDir = filepath.Join(base, "a365")
	}

	if cfg.Timeout <= 0 {
		return nil, fmt.Errorf("A365_TIMEOUT_SECONDS must be positive")
	}
	switch cfg.Environment {
	case "dev", "staging", "sit", "prod":
	default:
		return nil, fmt.Errorf("invalid A365_ENV: %q (must be dev, staging, sit, or prod)", cfg.Environment)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

// ensureScheme adds https:// prefix if the URL has no scheme
func ensureScheme(url string) string {
	if url == "" {
		return url
	}
	if !strings.Contains(url, "://") {
		return "https://" + url
	}
	return url
}
