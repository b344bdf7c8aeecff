package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/yukikurage/tasker-api/internal/auth"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	SQLitePath string
	DBLogLevel string

	RedisHost     string
	RedisPort     string
	SessionStore  string
	SessionSecret string

	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration
	BcryptCost    int

	LoginRateLimit  int
	LoginRateWindow time.Duration

	TaskStatusPolicy string
	CORSOrigin       string
	OpenAIAPIKey     string
}

// Load reads the configuration from the environment and validates it.
func Load() (*Config, error) {
	cfg := &Config{
		Port:             getEnv("PORT", "8080"),
		GinMode:          getEnv("GIN_MODE", "debug"),
		DBDriver:         getEnv("DB_DRIVER", "mysql"),
		DBHost:           getEnv("DB_HOST", "localhost"),
		DBPort:           getEnv("DB_PORT", "3306"),
		DBUser:           getEnv("DB_USER", "taskuser"),
		DBPassword:       getEnv("DB_PASSWORD", "taskpassword"),
		DBName:           getEnv("DB_NAME", "task_management"),
		SQLitePath:       getEnv("SQLITE_PATH", "tasker.db"),
		DBLogLevel:       getEnv("DB_LOG_LEVEL", "warn"),
		RedisHost:        getEnv("REDIS_HOST", "localhost"),
		RedisPort:        getEnv("REDIS_PORT", "6379"),
		SessionStore:     getEnv("SESSION_STORE", "cookie"),
		SessionSecret:    getEnv("SESSION_SECRET", "default-secret-key-change-me"),
		AccessSecret:     getEnv("JWT_ACCESS_SECRET", "access-secret-change-me"),
		RefreshSecret:    getEnv("JWT_REFRESH_SECRET", "refresh-secret-change-me"),
		TaskStatusPolicy: getEnv("TASK_STATUS_POLICY", "any"),
		CORSOrigin:       getEnv("CORS_ORIGIN", "http://localhost:3000"),
		OpenAIAPIKey:     getEnv("OPENAI_API_KEY", ""),
	}

	var err error
	if cfg.AccessTTL, err = auth.ParseTTL(getEnv("JWT_ACCESS_EXPIRES_IN", "15m")); err != nil {
		return nil, fmt.Errorf("JWT_ACCESS_EXPIRES_IN: %w", err)
	}
	if cfg.RefreshTTL, err = auth.ParseTTL(getEnv("JWT_REFRESH_EXPIRES_IN", "7d")); err != nil {
		return nil, fmt.Errorf("JWT_REFRESH_EXPIRES_IN: %w", err)
	}
	if cfg.LoginRateWindow, err = auth.ParseTTL(getEnv("LOGIN_RATE_WINDOW", "1m")); err != nil {
		return nil, fmt.Errorf("LOGIN_RATE_WINDOW: %w", err)
	}
	if cfg.BcryptCost, err = getEnvInt("BCRYPT_COST", 10); err != nil {
		return nil, err
	}
	if cfg.LoginRateLimit, err = getEnvInt("LOGIN_RATE_LIMIT", 3); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.DBDriver {
	case "mysql", "postgres", "sqlite":
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionStore {
	case "cookie", "redis":
	default:
		return fmt.Errorf("unsupported SESSION_STORE %q", c.SessionStore)
	}
	switch c.TaskStatusPolicy {
	case "any", "forward":
	default:
		return fmt.Errorf("unsupported TASK_STATUS_POLICY %q", c.TaskStatusPolicy)
	}
	if c.AccessSecret == "" || c.RefreshSecret == "" {
		return fmt.Errorf("jwt secrets must not be empty")
	}
	if c.AccessSecret == c.RefreshSecret {
		return fmt.Errorf("JWT_ACCESS_SECRET and JWT_REFRESH_SECRET must differ")
	}
	if c.LoginRateLimit <= 0 {
		return fmt.Errorf("LOGIN_RATE_LIMIT must be positive")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", key, err)
	}
	return n, nil
}
