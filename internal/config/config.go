// Package config loads application configuration from the environment.
package config

import (
	"fmt"
	"log"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Notification channels.
const (
	NotifyNone    = "none"
	NotifyLog     = "log"
	NotifySMTP    = "smtp"
	NotifyWebhook = "webhook"
)

// Config holds application configuration
type Config struct {
	// Server
	Env  string
	Port string

	// JWT
	JWTSecret        string
	JWTExpirationDur time.Duration

	// Emissions
	GoalKg               float64
	RecordRegistryFactor bool
	PersistenceTimeout   time.Duration
	GuestLedgerTTL       time.Duration
	GuestLedgerLimit     int

	// Metrics
	MetricsAPIKey string

	// Notifications
	NotifyChannel      string
	NotifyFrom         string
	SMTPHost           string
	SMTPPort           int
	SMTPUser           string
	SMTPPassword       string
	NotifyWebhookURL   string
	EmailRatePerMinute int
}

var appConfig *Config

// Load loads configuration from environment variables and validates it.
func Load() (*Config, error) {
	// Load .env file if not already loaded
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}
	cfg, err := FromEnv()
	if err != nil {
		return nil, err
	}
	appConfig = cfg
	return cfg, nil
}

// FromEnv builds a Config from the current environment without touching
// .env files.
func FromEnv() (*Config, error) {
	cfg := &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "8080"),

		JWTSecret: getEnv("JWT_SECRET", "fallback-secret-key-for-dev-only"),

		MetricsAPIKey: os.Getenv("METRICS_API_KEY"),

		NotifyChannel:    strings.ToLower(getEnv("NOTIFY_CHANNEL", NotifyLog)),
		NotifyFrom:       getEnv("NOTIFY_FROM", "reports@carbontrack.local"),
		SMTPHost:         os.Getenv("SMTP_HOST"),
		SMTPUser:         os.Getenv("SMTP_USER"),
		SMTPPassword:     os.Getenv("SMTP_PASSWORD"),
		NotifyWebhookURL: os.Getenv("NOTIFY_WEBHOOK_URL"),
	}

	var err error
	if cfg.JWTExpirationDur, err = parseDuration("JWT_EXPIRES_IN", "15m"); err != nil {
		return nil, err
	}
	if cfg.PersistenceTimeout, err = parseDuration("PERSISTENCE_TIMEOUT", "2s"); err != nil {
		return nil, err
	}
	if cfg.GuestLedgerTTL, err = parseDuration("GUEST_LEDGER_TTL", "30m"); err != nil {
		return nil, err
	}

	if cfg.GoalKg, err = strconv.ParseFloat(getEnv("CARBON_GOAL_KG", "250"), 64); err != nil {
		return nil, fmt.Errorf("invalid CARBON_GOAL_KG: %w", err)
	}
	if math.IsNaN(cfg.GoalKg) || math.IsInf(cfg.GoalKg, 0) || cfg.GoalKg <= 0 {
		return nil, fmt.Errorf("CARBON_GOAL_KG must be a finite number > 0, got %v", cfg.GoalKg)
	}

	if cfg.RecordRegistryFactor, err = parseBool(os.Getenv("RECORD_REGISTRY_FACTOR"), false); err != nil {
		return nil, fmt.Errorf("invalid RECORD_REGISTRY_FACTOR value: %w", err)
	}

	if cfg.SMTPPort, err = strconv.Atoi(getEnv("SMTP_PORT", "587")); err != nil {
		return nil, fmt.Errorf("invalid SMTP_PORT: %w", err)
	}
	if cfg.GuestLedgerLimit, err = strconv.Atoi(getEnv("GUEST_LEDGER_LIMIT", "10000")); err != nil || cfg.GuestLedgerLimit <= 0 {
		return nil, fmt.Errorf("GUEST_LEDGER_LIMIT must be a positive integer")
	}
	if cfg.EmailRatePerMinute, err = strconv.Atoi(getEnv("EMAIL_RATE_PER_MINUTE", "5")); err != nil || cfg.EmailRatePerMinute <= 0 {
		return nil, fmt.Errorf("EMAIL_RATE_PER_MINUTE must be a positive integer")
	}

	switch cfg.NotifyChannel {
	case NotifyNone, NotifyLog:
	case NotifySMTP:
		if cfg.SMTPHost == "" {
			return nil, fmt.Errorf("SMTP_HOST is required when NOTIFY_CHANNEL=smtp")
		}
	case NotifyWebhook:
		if cfg.NotifyWebhookURL == "" {
			return nil, fmt.Errorf("NOTIFY_WEBHOOK_URL is required when NOTIFY_CHANNEL=webhook")
		}
	default:
		return nil, fmt.Errorf("invalid NOTIFY_CHANNEL %q: must be none, log, smtp, or webhook", cfg.NotifyChannel)
	}

	return cfg, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDuration(key, def string) (time.Duration, error) {
	s := getEnv(key, def)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%s must be positive, got %v", key, d)
	}
	return d, nil
}

func parseBool(s string, defaultVal bool) (bool, error) {
	if s == "" {
		return defaultVal, nil
	}
	switch strings.ToLower(s) {
	case "true", "1":
		return true, nil
	case "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("must be true, false, 1, or 0, got %q", s)
	}
}
