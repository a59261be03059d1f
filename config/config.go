package config

import (
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// HTTP server configuration
	ServerPort int

	// Database configuration
	DatabaseHost     string
	DatabasePort     string
	DatabaseName     string
	DatabaseUser     string
	DatabasePassword string

	// Redis configuration
	RedisHost     string
	RedisPassword string
	RedisPort     string

	// Admin panel credentials (demo app, single hardcoded account)
	AdminUsername string
	AdminPassword string
	SessionTTL    time.Duration

	// Price ticker configuration
	Ticker TickerConfig

	// Bot simulation configuration
	Bots BotConfig

	// Webhook URLs notified after every bot run (comma separated)
	WebhookURLs []string
}

// TickerConfig holds the simulated price feed parameters
type TickerConfig struct {
	Enabled  bool
	Interval time.Duration
}

// BotConfig holds parameters for the simulated scraping bots
type BotConfig struct {
	// FailureRate is the probability [0,1] that a simulated run fails
	FailureRate float64

	// Simulated run duration bounds in seconds
	MinDurationSeconds float64
	MaxDurationSeconds float64
}

// LoadFromEnv loads configuration from environment variables
func LoadFromEnv() *Config {
	// Load .env file if exists
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	return &Config{
		ServerPort: getEnvInt("SERVER_PORT", 8080),

		// Database configuration
		DatabaseHost:     getEnvOrDefault("DB_HOST", "localhost"),
		DatabasePort:     getEnvOrDefault("DB_PORT", "5432"),
		DatabaseName:     getEnvOrDefault("DB_NAME", "fundlens"),
		DatabaseUser:     getEnvOrDefault("DB_USER", "fundlens"),
		DatabasePassword: getEnvOrDefault("DB_PASSWORD", "fundlens123"),

		// Redis configuration
		RedisHost:     getEnvOrDefault("REDIS_HOST", "localhost"),
		RedisPort:     getEnvOrDefault("REDIS_PORT", "6379"),
		RedisPassword: getEnvOrDefault("REDIS_PASSWORD", ""),

		// Admin credentials match the deployed demo UI
		AdminUsername: getEnvOrDefault("ADMIN_USERNAME", "admin"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "password"),
		SessionTTL:    time.Duration(getEnvInt("SESSION_TTL_MINUTES", 60)) * time.Minute,

		Ticker: TickerConfig{
			Enabled:  getEnvOrDefault("TICKER_ENABLED", "true") == "true",
			Interval: time.Duration(getEnvInt("TICKER_INTERVAL_SECONDS", 3)) * time.Second,
		},

		Bots: BotConfig{
			FailureRate:        getEnvFloat("BOT_FAILURE_RATE", 0.2),
			MinDurationSeconds: getEnvFloat("BOT_MIN_DURATION_SECONDS", 2),
			MaxDurationSeconds: getEnvFloat("BOT_MAX_DURATION_SECONDS", 12),
		},

		WebhookURLs: splitList(os.Getenv("WEBHOOK_URLS")),
	}
}

// getEnvInt gets environment variable as int or returns default value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var intValue int
	if _, err := fmt.Sscanf(value, "%d", &intValue); err != nil {
		return defaultValue
	}
	return intValue
}

// getEnvFloat gets environment variable as float64 or returns default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var floatValue float64
	if _, err := fmt.Sscanf(value, "%f", &floatValue); err != nil {
		return defaultValue
	}
	return floatValue
}

// getEnvOrDefault gets environment variable or returns default value
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// splitList splits a comma separated list, dropping empty entries
func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
