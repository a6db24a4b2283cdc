package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"
)

type Config struct {
	Addr           string
	DatabaseURL    string
	StoreDriver    string
	SessionSecret  string
	Environment    string
	SeedHRName     string
	SeedHREmail    string
	SeedHRUsername string
	SeedHRPassword string
	RunMigrations  bool
	RunSeed        bool
	MaxBodyBytes   int64
	MetricsEnabled bool
}

func Load() Config {
	return Config{
		Addr:           getEnv("APP_ADDR", ":8080"),
		DatabaseURL:    getEnv("DATABASE_URL", ""),
		StoreDriver:    strings.ToLower(getEnv("STORE_DRIVER", StoreDriverPostgres)),
		SessionSecret:  getEnv("SESSION_SECRET", ""),
		Environment:    getEnv("APP_ENV", "development"),
		SeedHRName:     getEnv("SEED_HR_NAME", "HR Administrator"),
		SeedHREmail:    getEnv("SEED_HR_EMAIL", ""),
		SeedHRUsername: getEnv("SEED_HR_USERNAME", "hr"),
		SeedHRPassword: getEnv("SEED_HR_PASSWORD", ""),
		RunMigrations:  getEnvBool("RUN_MIGRATIONS", true),
		RunSeed:        getEnvBool("RUN_SEED", true),
		MaxBodyBytes:   int64(getEnvInt("MAX_BODY_BYTES", 1048576)),
		MetricsEnabled: getEnvBool("METRICS_ENABLED", true),
	}
}

// PortalConfig configures the portal core when it runs outside the server,
// for example inside hrctl.
type PortalConfig struct {
	BaseURL       string
	SessionFile   string
	SessionSecret string
	Timeout       time.Duration
}

func LoadPortal() PortalConfig {
	return PortalConfig{
		BaseURL:       getEnv("PORTAL_BASE_URL", "http://localhost:8080"),
		SessionFile:   getEnv("PORTAL_SESSION_FILE", defaultSessionFile()),
		SessionSecret: getEnv("SESSION_SECRET", ""),
		Timeout:       getEnvDuration("PORTAL_TIMEOUT", 10*time.Second),
	}
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return ".hrctl-session"
	}
	return dir + string(os.PathSeparator) + "hrctl" + string(os.PathSeparator) + "session"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func (c Config) Validate() error {
	switch c.StoreDriver {
	case StoreDriverPostgres:
		if strings.TrimSpace(c.DatabaseURL) == "" {
			return fmt.Errorf("DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("STORE_DRIVER must be %q or %q", StoreDriverPostgres, StoreDriverMemory)
	}
	if c.Environment == "production" {
		if strings.TrimSpace(c.SessionSecret) == "" {
			return fmt.Errorf("SESSION_SECRET must be set to a strong value in production")
		}
		if c.StoreDriver == StoreDriverMemory {
			return fmt.Errorf("STORE_DRIVER=memory is not allowed in production")
		}
		if c.RunSeed && strings.TrimSpace(c.SeedHRPassword) == "" {
			return fmt.Errorf("SEED_HR_PASSWORD must be set or RUN_SEED disabled in production")
		}
	}
	if c.MaxBodyBytes < 1024 {
		return fmt.Errorf("MAX_BODY_BYTES must be at least 1024")
	}
	return nil
}

func (p PortalConfig) Validate() error {
	if strings.TrimSpace(p.BaseURL) == "" {
		return fmt.Errorf("PORTAL_BASE_URL is required")
	}
	if strings.TrimSpace(p.SessionSecret) == "" {
		return fmt.Errorf("SESSION_SECRET is required to sign the cached identity")
	}
	if p.Timeout <= 0 {
		return fmt.Errorf("PORTAL_TIMEOUT must be positive")
	}
	return nil
}
