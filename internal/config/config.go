package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// SessionBackend selects which store implementation holds session state.
type SessionBackend string

const (
	SessionBackendFile   SessionBackend = "file"
	SessionBackendRedis  SessionBackend = "redis"
	SessionBackendMemory SessionBackend = "memory"
)

// Config aggregates runtime configuration for the console client.
type Config struct {
	API     APIConfig
	Session SessionConfig
	Redis   RedisConfig
	Logger  LoggerConfig
	Stub    StubConfig
}

// APIConfig controls how the client reaches the backend.
type APIConfig struct {
	BaseURL               string
	CEPBaseURL            string
	RequestTimeoutSeconds int
}

// SessionConfig selects and configures the session store.
type SessionConfig struct {
	Backend  SessionBackend
	FilePath string
}

// RedisConfig holds Redis connection values for the redis session backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// LoggerConfig configures logging behavior.
type LoggerConfig struct {
	Level string
}

// StubConfig configures the local stub backend used for development.
type StubConfig struct {
	Host                  string
	Port                  string
	JWTSecret             string
	AccessTokenTTLMinutes int
	BcryptCost            int
}

// Load reads configuration from environment variables, applying defaults where possible.
func Load() (*Config, error) {
	_ = godotenv.Load()

	redisDB, err := strconv.Atoi(getEnv("REDIS_DB", "0"))
	if err != nil {
		return nil, fmt.Errorf("invalid REDIS_DB: %w", err)
	}

	backend := SessionBackend(getEnv("SESSION_BACKEND", string(SessionBackendFile)))
	switch backend {
	case SessionBackendFile, SessionBackendRedis, SessionBackendMemory:
	default:
		return nil, fmt.Errorf("unknown SESSION_BACKEND %q", backend)
	}

	cfg := &Config{
		API: APIConfig{
			BaseURL:               getEnv("API_BASE_URL", "http://localhost:3000"),
			CEPBaseURL:            getEnv("CEP_BASE_URL", "https://viacep.com.br"),
			RequestTimeoutSeconds: getEnvAsInt("API_TIMEOUT_SECONDS", 10),
		},
		Session: SessionConfig{
			Backend:  backend,
			FilePath: getEnv("SESSION_FILE", defaultSessionFile()),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "127.0.0.1:6379"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Logger: LoggerConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
		Stub: StubConfig{
			Host:                  getEnv("STUB_HOST", "127.0.0.1"),
			Port:                  getEnv("STUB_PORT", "3000"),
			JWTSecret:             getEnv("STUB_JWT_SECRET", "dev-secret"),
			AccessTokenTTLMinutes: getEnvAsInt("STUB_ACCESS_TOKEN_TTL_MINUTES", 60),
			BcryptCost:            getEnvAsInt("STUB_BCRYPT_COST", 12),
		},
	}

	return cfg, nil
}

// RequestTimeout returns the configured request timeout duration.
func (a APIConfig) RequestTimeout() time.Duration {
	if a.RequestTimeoutSeconds <= 0 {
		return 0
	}
	return time.Duration(a.RequestTimeoutSeconds) * time.Second
}

// Addr returns the stub server bind address.
func (s StubConfig) Addr() string {
	return fmt.Sprintf("%s:%s", s.Host, s.Port)
}

func defaultSessionFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "admin-console", "session.json")
	}
	return filepath.Join(home, ".admin-console", "session.json")
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return parsed
}
