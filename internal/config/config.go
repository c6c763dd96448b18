package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Scraper  ScraperConfig
	Browser  BrowserConfig
	Webapp   WebappConfig
	Redis    RedisConfig
	Database DatabaseConfig
	Logging  LoggingConfig
}

type ScraperConfig struct {
	ShopURL       string
	OutletsURL    string
	DataDir       string
	MaxRetries    int
	BaseDelay     time.Duration
	EnrichedCache int
}

type BrowserConfig struct {
	Headless       bool
	Timeout        time.Duration
	ViewportWidth  int
	ViewportHeight int
	AcceptLanguage string
	TimezoneID     string
	Locale         string
}

type WebappConfig struct {
	Host            string
	Port            string
	BackendAPIURL   string
	RequestTimeout  time.Duration
	SessionTTL      time.Duration
	HistoryLimit    int
	ShutdownTimeout time.Duration
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type DatabaseConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type LoggingConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	// Missing .env is fine; real env vars still apply.
	_ = godotenv.Load()

	cfg := &Config{
		Scraper: ScraperConfig{
			ShopURL:       getEnvOrDefault("SCRAPER_SHOP_URL", "https://shop.zuscoffee.com"),
			OutletsURL:    getEnvOrDefault("SCRAPER_OUTLETS_URL", "https://zuscoffee.com/category/outlet/kuala-lumpur-selangor/page/"),
			DataDir:       getEnvOrDefault("SCRAPER_DATA_DIR", "data"),
			MaxRetries:    getIntOrDefault("SCRAPER_MAX_RETRIES", 3),
			BaseDelay:     getDurationOrDefault("SCRAPER_BASE_DELAY", 2*time.Second),
			EnrichedCache: getIntOrDefault("SCRAPER_ENRICHED_CACHE", 512),
		},
		Browser: BrowserConfig{
			Headless:       getBoolOrDefault("BROWSER_HEADLESS", true),
			Timeout:        getDurationOrDefault("BROWSER_TIMEOUT", 30*time.Second),
			ViewportWidth:  getIntOrDefault("BROWSER_VIEWPORT_WIDTH", 1920),
			ViewportHeight: getIntOrDefault("BROWSER_VIEWPORT_HEIGHT", 1080),
			AcceptLanguage: getEnvOrDefault("BROWSER_ACCEPT_LANGUAGE", "en-MY,en;q=0.9,ms;q=0.8"),
			TimezoneID:     getEnvOrDefault("BROWSER_TIMEZONE", "Asia/Kuala_Lumpur"),
			Locale:         getEnvOrDefault("BROWSER_LOCALE", "en-MY"),
		},
		Webapp: WebappConfig{
			Host:            getEnvOrDefault("WEBAPP_HOST", "0.0.0.0"),
			Port:            getEnvOrDefault("WEBAPP_PORT", "8080"),
			BackendAPIURL:   getEnvOrDefault("WEBAPP_BACKEND_API_URL", "http://localhost:8000/api/v1"),
			RequestTimeout:  getDurationOrDefault("WEBAPP_REQUEST_TIMEOUT", 30*time.Second),
			SessionTTL:      getDurationOrDefault("WEBAPP_SESSION_TTL", 30*time.Minute),
			HistoryLimit:    getIntOrDefault("WEBAPP_HISTORY_LIMIT", 20),
			ShutdownTimeout: getDurationOrDefault("WEBAPP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Redis: RedisConfig{
			Addr:     getEnvOrDefault("REDIS_ADDR", ""),
			Password: getEnvOrDefault("REDIS_PASSWORD", ""),
			DB:       getIntOrDefault("REDIS_DB", 0),
		},
		Database: DatabaseConfig{
			Host:     getEnvOrDefault("DB_HOST", "localhost"),
			Port:     getIntOrDefault("DB_PORT", 5432),
			User:     getEnvOrDefault("DB_USER", "postgres"),
			Password: getEnvOrDefault("DB_PASSWORD", ""),
			DBName:   getEnvOrDefault("DB_NAME", "zus_scraper"),
			SSLMode:  getEnvOrDefault("DB_SSL_MODE", "disable"),
		},
		Logging: LoggingConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "json"),
		},
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Scraper.MaxRetries < 1 {
		return fmt.Errorf("SCRAPER_MAX_RETRIES must be at least 1")
	}

	if c.Scraper.DataDir == "" {
		return fmt.Errorf("SCRAPER_DATA_DIR must not be empty")
	}

	if c.Webapp.BackendAPIURL == "" {
		return fmt.Errorf("WEBAPP_BACKEND_API_URL must not be empty")
	}

	if c.Webapp.HistoryLimit < 2 {
		return fmt.Errorf("WEBAPP_HISTORY_LIMIT must be at least 2")
	}

	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getBoolOrDefault(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
