package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type UpstreamConfig struct {
	LoanAdminURL string
	FxRatesURL   string
	Timeout      time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type Config struct {
	HTTPPort    int
	ServiceName string
	LogLevel    string
	LogFormat   string
	Upstream    UpstreamConfig
	Redis       RedisConfig
	CacheTTL    time.Duration

	// UseStubs serves quotes from the built-in catalog instead of the
	// upstream services. Development only.
	UseStubs bool
}

func Load() Config {
	return Config{
		HTTPPort:    getEnvInt("HTTP_PORT", 8094),
		ServiceName: "mortgage-service",
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogFormat:   getEnv("LOG_FORMAT", "json"),
		Upstream: UpstreamConfig{
			LoanAdminURL: getEnv("LOAN_ADMIN_URL", "http://localhost:8095"),
			FxRatesURL:   getEnv("FX_RATES_URL", "http://localhost:8096/v1/fx-rates"),
			Timeout:      time.Duration(getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 10)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		CacheTTL: time.Duration(getEnvInt("CACHE_TTL_SECONDS", 600)) * time.Second,
		UseStubs: getEnvBool("USE_STUB_CATALOG", false),
	}
}

func (c Config) HTTPAddr() string {
	return fmt.Sprintf(":%d", c.HTTPPort)
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}
