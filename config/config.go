package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"sensortower-scraper/categories"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	BaseURL      string
	SnapshotDate string
	Country      string
	Device       string
	Limit        int
	Offset       int
	Categories   categories.Table

	HTTPTimeout    time.Duration
	MaxConcurrency int
	MaxAttempts    int

	CSVOutputPath string
	PrintInsights bool

	LogLevel   string
	Production bool
}

const dateLayout = "2006-01-02"

// Load reads the .env file and returns a populated Config struct.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	table := categories.Default()
	if raw := getEnv("CATEGORIES", ""); raw != "" {
		parsed, err := categories.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("config: CATEGORIES: %w", err)
		}
		table = parsed
	}

	cfg := &Config{
		BaseURL:      strings.TrimRight(getEnv("SENSORTOWER_BASE_URL", "https://sensortower.com"), "/"),
		SnapshotDate: getEnv("SNAPSHOT_DATE", "2019-09-08"),
		Country:      getEnv("COUNTRY", "US"),
		Device:       getEnv("DEVICE", "IPHONE"),
		Limit:        getEnvInt("RESULT_LIMIT", 50),
		Offset:       getEnvInt("RESULT_OFFSET", 0),
		Categories:   table,

		HTTPTimeout:    time.Duration(getEnvInt("HTTP_TIMEOUT_SEC", 30)) * time.Second,
		MaxConcurrency: getEnvInt("MAX_CONCURRENCY", 1),
		MaxAttempts:    getEnvInt("MAX_ATTEMPTS", 1),

		CSVOutputPath: getEnv("CSV_OUTPUT_PATH", "sensor_tower_stats.csv"),
		PrintInsights: getEnvBool("PRINT_INSIGHTS", true),

		LogLevel:   strings.ToLower(getEnv("LOG_LEVEL", "info")),
		Production: getEnv("ENV", "") == "production",
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that all configuration values are usable.
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("config: SENSORTOWER_BASE_URL is required")
	}
	if _, err := time.Parse(dateLayout, c.SnapshotDate); err != nil {
		return fmt.Errorf("config: SNAPSHOT_DATE must be YYYY-MM-DD: %w", err)
	}
	if c.Country == "" || c.Device == "" {
		return fmt.Errorf("config: COUNTRY and DEVICE are required")
	}
	if c.Limit < 1 {
		return fmt.Errorf("config: RESULT_LIMIT must be at least 1")
	}
	if c.Offset < 0 {
		return fmt.Errorf("config: RESULT_OFFSET must not be negative")
	}
	if c.Categories.Len() == 0 {
		return fmt.Errorf("config: at least one category is required")
	}
	if c.MaxConcurrency < 1 || c.MaxConcurrency > c.Categories.Len() {
		return fmt.Errorf("config: MAX_CONCURRENCY must be between 1 and %d", c.Categories.Len())
	}
	if c.MaxAttempts < 1 {
		return fmt.Errorf("config: MAX_ATTEMPTS must be at least 1")
	}
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("config: HTTP_TIMEOUT_SEC must be positive")
	}
	if c.CSVOutputPath == "" {
		return fmt.Errorf("config: CSV_OUTPUT_PATH is required")
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("config: LOG_LEVEL must be one of: debug, info, warn, error")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if val := os.Getenv(key); val != "" {
		b, err := strconv.ParseBool(val)
		if err == nil {
			return b
		}
	}
	return fallback
}
