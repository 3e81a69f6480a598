package utils

import (
	"errors"
	"fmt"
	"os"
	"time"
	_ "time/tzdata"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	RateLimit RateLimitConfig
	Logistics LogisticsConfig
}

type AppConfig struct {
	Name            string
	Port            string
	Debug           bool
	LogPath         string
	Location        *time.Location
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

// LogisticsConfig tunes the allocation and transport rules.
type LogisticsConfig struct {
	ParticipantCacheTTL  time.Duration
	PoolingWindow        time.Duration
	WelcomePackageOffice string
}

// LoadConfig reads .env when present, then lets the environment override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	// Set defaults
	v.SetDefault("APP_NAME", "event-logistics")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("APP_TIMEZONE", "UTC")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 20)
	v.SetDefault("PARTICIPANT_CACHE_TTL_SECONDS", 60)
	v.SetDefault("POOLING_WINDOW_MINUTES", 60)
	v.SetDefault("WELCOME_PACKAGE_OFFICE", "MSF Office")
	v.SetDefault("SHUTDOWN_TIMEOUT_SECONDS", 5)

	if _, err := os.Stat(".env"); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read .env: %w", err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat .env: %w", err)
	}

	v.AutomaticEnv()

	return buildConfig(v)
}

func buildConfig(v *viper.Viper) (*Config, error) {
	loc, err := time.LoadLocation(v.GetString("APP_TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid APP_TIMEZONE %q: %w", v.GetString("APP_TIMEZONE"), err)
	}

	window := v.GetInt("POOLING_WINDOW_MINUTES")
	if window <= 0 {
		return nil, fmt.Errorf("POOLING_WINDOW_MINUTES must be positive, got %d", window)
	}
	if v.GetInt("PARTICIPANT_CACHE_TTL_SECONDS") < 0 {
		return nil, fmt.Errorf("PARTICIPANT_CACHE_TTL_SECONDS must not be negative")
	}

	config := &Config{
		App: AppConfig{
			Name:            v.GetString("APP_NAME"),
			Port:            v.GetString("PORT"),
			Debug:           v.GetBool("DEBUG"),
			LogPath:         v.GetString("LOG_PATH"),
			Location:        loc,
			ShutdownTimeout: time.Duration(v.GetInt("SHUTDOWN_TIMEOUT_SECONDS")) * time.Second,
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Logistics: LogisticsConfig{
			ParticipantCacheTTL:  time.Duration(v.GetInt("PARTICIPANT_CACHE_TTL_SECONDS")) * time.Second,
			PoolingWindow:        time.Duration(window) * time.Minute,
			WelcomePackageOffice: v.GetString("WELCOME_PACKAGE_OFFICE"),
		},
	}

	return config, nil
}
