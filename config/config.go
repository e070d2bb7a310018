package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Server   ServerConfig
	Logger   LoggerConfig
	Platform PlatformConfig
	Workflow WorkflowConfig
}

type ServerConfig struct {
	AppEnv      string
	HTTPPort    string
	CORSOrigins []string
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

// PlatformConfig points at the demand-forecasting platform API that owns
// alerts, forecasts and purchase orders. This service holds no database of
// its own; the platform is the single source of truth.
type PlatformConfig struct {
	BaseURL        string
	APIToken       string
	TimeoutSeconds int
}

type WorkflowConfig struct {
	DefaultHorizonDays    int
	SessionTTLMinutes     int
	EvictionPeriodSeconds int
}

func LoadEnv() *Config {
	// Basic config loading
	// In a real scenario, use structured config loader like viper or koanf
	return &Config{
		Server: ServerConfig{
			AppEnv:      getEnv("APP_ENV", "dev"),
			HTTPPort:    getEnv("HTTP_PORT", ":8084"),
			CORSOrigins: getEnvSlice("CORS_ORIGINS", []string{"http://localhost:4200"}),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Platform: PlatformConfig{
			BaseURL:        getEnv("PLATFORM_BASE_URL", "http://localhost:8080"),
			APIToken:       getEnv("PLATFORM_API_TOKEN", ""),
			TimeoutSeconds: getEnvInt("PLATFORM_TIMEOUT_SECONDS", 30),
		},
		Workflow: WorkflowConfig{
			DefaultHorizonDays:    getEnvInt("WORKFLOW_DEFAULT_HORIZON_DAYS", 30),
			SessionTTLMinutes:     getEnvInt("WORKFLOW_SESSION_TTL_MINUTES", 60),
			EvictionPeriodSeconds: getEnvInt("WORKFLOW_EVICTION_PERIOD_SECONDS", 60),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvSlice(key string, fallback []string) []string {
	if value, ok := os.LookupEnv(key); ok {
		return strings.Split(value, ",")
	}
	return fallback
}
