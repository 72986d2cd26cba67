// Package config provides application configuration management.
// It loads configuration from environment variables with support for .env files.
package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

// Config holds all application configuration.
type Config struct {
	Amadeus  AmadeusConfig
	Search   SearchConfig
	Notify   NotifyConfig
	Schedule ScheduleConfig
	Ops      OpsConfig
	Logging  LoggingConfig
}

// AmadeusConfig holds credentials and client settings for the Amadeus API.
type AmadeusConfig struct {
	Host          string        `env:"AMADEUS_HOST" envDefault:"https://test.api.amadeus.com"`
	ClientID      string        `env:"AMADEUS_CLIENT_ID,required"`
	ClientSecret  string        `env:"AMADEUS_CLIENT_SECRET,required"`
	Timeout       time.Duration `env:"AMADEUS_TIMEOUT" envDefault:"30s"`
	RetryAttempts int           `env:"AMADEUS_RETRY_ATTEMPTS" envDefault:"1"`
}

// SearchConfig holds the fixed route, date window, and filtering rules.
type SearchConfig struct {
	Origin       string  `env:"ORIGIN" envDefault:"MAD"`
	Destination  string  `env:"DESTINATION" envDefault:"BOG"`
	EarliestDate string  `env:"DATE_FROM" envDefault:"2025-12-01"`
	LatestDate   string  `env:"DATE_TO" envDefault:"2025-12-21"`
	Currency     string  `env:"CURRENCY" envDefault:"EUR"`
	MaxPrice     float64 `env:"MAX_PRICE,required"`
	RoundTrip    bool    `env:"ROUND_TRIP" envDefault:"false"`

	// ReturnDate pins the return leg to a fixed date when set.
	// When empty, the return date is derived per candidate departure date
	// by adding ReturnOffsetDays.
	ReturnDate       string `env:"RETURN_DATE"`
	ReturnOffsetDays int    `env:"RETURN_OFFSET_DAYS" envDefault:"45"`

	// ForbiddenCountries are ISO country codes rejected as layover territory.
	ForbiddenCountries []string `env:"FORBIDDEN_COUNTRIES" envDefault:"US,CA"`

	// OnLookupFailure controls what happens when an airport lookup fails:
	// "allow" keeps the offer (unresolved stop treated as unconfirmed-safe),
	// "reject" drops it.
	OnLookupFailure string `env:"ON_LOOKUP_FAILURE" envDefault:"allow"`
}

// NotifyConfig holds email notification settings.
type NotifyConfig struct {
	Enabled  bool   `env:"NOTIFY_ENABLED" envDefault:"false"`
	SMTPHost string `env:"SMTP_HOST" envDefault:"smtp.gmail.com"`
	SMTPPort int    `env:"SMTP_PORT" envDefault:"587"`
	From     string `env:"EMAIL_FROM"`
	Password string `env:"EMAIL_PASS"`
	To       string `env:"EMAIL_TO"`
}

// ScheduleConfig holds the trigger cadence.
type ScheduleConfig struct {
	// CronSpec is a standard 5-field cron expression; the default fires
	// at 08:00, 14:00 and 20:00 local time every day.
	CronSpec   string `env:"CRON_SPEC" envDefault:"0 8,14,20 * * *"`
	RunOnStart bool   `env:"RUN_ON_START" envDefault:"true"`
}

// OpsConfig holds settings for the operational HTTP server.
type OpsConfig struct {
	Port         int           `env:"OPS_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"OPS_READ_TIMEOUT" envDefault:"10s"`
	WriteTimeout time.Duration `env:"OPS_WRITE_TIMEOUT" envDefault:"10s"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

// Load reads configuration from environment variables.
// It attempts to load a .env file first (optional - won't fail if missing).
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if file doesn't exist)
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("No .env file found, using environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// MustLoad loads configuration or panics on error.
// Use this in main() where configuration is required to start.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// validate checks configuration values for correctness.
func validate(cfg *Config) error {
	// Validate the price ceiling
	if cfg.Search.MaxPrice <= 0 {
		return fmt.Errorf("MAX_PRICE must be positive, got %v", cfg.Search.MaxPrice)
	}

	// Validate the date window ordering
	from, err := time.Parse("2006-01-02", cfg.Search.EarliestDate)
	if err != nil {
		return fmt.Errorf("DATE_FROM must be a valid YYYY-MM-DD date, got %q", cfg.Search.EarliestDate)
	}
	to, err := time.Parse("2006-01-02", cfg.Search.LatestDate)
	if err != nil {
		return fmt.Errorf("DATE_TO must be a valid YYYY-MM-DD date, got %q", cfg.Search.LatestDate)
	}
	if to.Before(from) {
		return fmt.Errorf("DATE_TO (%s) must not be before DATE_FROM (%s)", cfg.Search.LatestDate, cfg.Search.EarliestDate)
	}

	// Validate the return-date settings for round-trip mode
	if cfg.Search.ReturnDate != "" {
		if _, err := time.Parse("2006-01-02", cfg.Search.ReturnDate); err != nil {
			return fmt.Errorf("RETURN_DATE must be a valid YYYY-MM-DD date, got %q", cfg.Search.ReturnDate)
		}
	}
	if cfg.Search.ReturnOffsetDays < 1 {
		return fmt.Errorf("RETURN_OFFSET_DAYS must be at least 1, got %d", cfg.Search.ReturnOffsetDays)
	}

	// Validate the lookup-failure policy
	validPolicies := map[string]bool{"allow": true, "reject": true}
	if !validPolicies[cfg.Search.OnLookupFailure] {
		return fmt.Errorf("ON_LOOKUP_FAILURE must be one of: allow, reject; got %q", cfg.Search.OnLookupFailure)
	}

	if len(cfg.Search.ForbiddenCountries) == 0 {
		return fmt.Errorf("FORBIDDEN_COUNTRIES must not be empty")
	}

	// Email settings are only required when notifications are enabled
	if cfg.Notify.Enabled {
		if cfg.Notify.From == "" {
			return fmt.Errorf("EMAIL_FROM is required when NOTIFY_ENABLED is true")
		}
		if cfg.Notify.Password == "" {
			return fmt.Errorf("EMAIL_PASS is required when NOTIFY_ENABLED is true")
		}
		if cfg.Notify.To == "" {
			return fmt.Errorf("EMAIL_TO is required when NOTIFY_ENABLED is true")
		}
		if cfg.Notify.SMTPPort < 1 || cfg.Notify.SMTPPort > 65535 {
			return fmt.Errorf("SMTP_PORT must be between 1 and 65535, got %d", cfg.Notify.SMTPPort)
		}
	}

	// Validate the scheduler settings
	if cfg.Schedule.CronSpec == "" {
		return fmt.Errorf("CRON_SPEC must not be empty")
	}

	// Validate the ops server settings
	if cfg.Ops.Port < 1 || cfg.Ops.Port > 65535 {
		return fmt.Errorf("OPS_PORT must be between 1 and 65535, got %d", cfg.Ops.Port)
	}
	if cfg.Ops.ReadTimeout <= 0 {
		return fmt.Errorf("OPS_READ_TIMEOUT must be positive")
	}
	if cfg.Ops.WriteTimeout <= 0 {
		return fmt.Errorf("OPS_WRITE_TIMEOUT must be positive")
	}

	// Validate the Amadeus client settings
	if cfg.Amadeus.Timeout <= 0 {
		return fmt.Errorf("AMADEUS_TIMEOUT must be positive")
	}
	if cfg.Amadeus.RetryAttempts < 1 {
		return fmt.Errorf("AMADEUS_RETRY_ATTEMPTS must be at least 1, got %d", cfg.Amadeus.RetryAttempts)
	}

	// Validate log level
	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("LOG_LEVEL must be one of: debug, info, warn, error; got %q", cfg.Logging.Level)
	}

	// Validate log format
	validFormats := map[string]bool{"json": true, "console": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("LOG_FORMAT must be one of: json, console; got %q", cfg.Logging.Format)
	}

	return nil
}
