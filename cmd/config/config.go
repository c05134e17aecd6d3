package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/muhammadheryan/product-console/constant"
)

type Config struct {
	Environment string
	Server      ServerConfig
	ProductAPI  ProductAPIConfig
	Redis       RedisConfig
	Session     SessionConfig
}

type ServerConfig struct {
	Port          string
	ReadTimeout   time.Duration
	WriteTimeout  time.Duration
	IdleTimeout   time.Duration
	MetricsAPIKey string
}

type ProductAPIConfig struct {
	BaseURL string
	Timeout time.Duration
}

// RedisConfig is optional; an empty Host keeps session state in memory.
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

// Load reads configuration from the environment. A .env file, when present, only
// fills variables that are not already set.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:          getEnv("SERVER_PORT", "8080"),
			ReadTimeout:   getDuration("SERVER_READ_TIMEOUT", 15*time.Second),
			WriteTimeout:  getDuration("SERVER_WRITE_TIMEOUT", 30*time.Second),
			IdleTimeout:   getDuration("SERVER_IDLE_TIMEOUT", 60*time.Second),
			MetricsAPIKey: getEnv("METRICS_API_KEY", ""),
		},
		ProductAPI: ProductAPIConfig{
			BaseURL: getEnv("PRODUCT_API_URL", constant.DefaultProductAPIURL),
			Timeout: getDuration("PRODUCT_API_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", ""),
			Port:     getInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getInt("REDIS_DB", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE_NAME", "product_session"),
			TTL:        getDuration("SESSION_TTL", 24*time.Hour),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return value
}
