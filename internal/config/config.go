// Package config loads process-wide settings from the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	// MinBcryptCost is the lowest hashing cost the service will run with.
	MinBcryptCost = 10

	defaultNotifyURL = "https://can-notify-welcome-39985935336.europe-west1.run.app"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL is required")
	ErrMissingJWTSecret   = errors.New("JWT_SECRET is required")
)

type Config struct {
	Env      string
	LogLevel string
	Port     string

	DatabaseURL      string
	DBMaxOpen        int
	DBMaxIdle        int
	DBMaxLifetime    time.Duration
	DBConnectTimeout time.Duration

	JWTSecret string
	JWTTTL    string

	BcryptCost int

	NotifyEnabled     bool
	NotifyURL         string
	NotifyTimeout     time.Duration
	NotifyMaxInFlight int

	ShutdownTimeout time.Duration
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid int for %s: %w", key, err)
	}
	return i, nil
}

func getbool(key string, def bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid boolean for %s: %w", key, err)
	}
	return b, nil
}

func getdur(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid duration for %s: %w", key, err)
	}
	return d, nil
}

// Load reads the configuration. It fails when the database connection string
// or the token-signing secret is absent so the process never starts with an
// undefined secret.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         getenv("APP_ENV", "development"),
		LogLevel:    os.Getenv("LOG_LEVEL"),
		Port:        getenv("PORT", "4000"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
		JWTTTL:      getenv("JWT_TTL", "1h"),
		NotifyURL:   getenv("NOTIFY_URL", defaultNotifyURL),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	var err error
	if cfg.DBMaxOpen, err = getint("DB_MAX_OPEN", 25); err != nil {
		return nil, err
	}
	if cfg.DBMaxIdle, err = getint("DB_MAX_IDLE", 25); err != nil {
		return nil, err
	}
	lifetime, err := getint("DB_MAX_LIFETIME", 300) // seconds
	if err != nil {
		return nil, err
	}
	cfg.DBMaxLifetime = time.Duration(lifetime) * time.Second
	if cfg.DBConnectTimeout, err = getdur("DB_CONNECT_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}

	if cfg.BcryptCost, err = getint("BCRYPT_COST", MinBcryptCost); err != nil {
		return nil, err
	}
	if cfg.BcryptCost < MinBcryptCost {
		cfg.BcryptCost = MinBcryptCost
	}

	if cfg.NotifyEnabled, err = getbool("NOTIFY_ENABLED", true); err != nil {
		return nil, err
	}
	if cfg.NotifyTimeout, err = getdur("NOTIFY_TIMEOUT", 5*time.Second); err != nil {
		return nil, err
	}
	if cfg.NotifyMaxInFlight, err = getint("NOTIFY_MAX_INFLIGHT", 32); err != nil {
		return nil, err
	}
	if cfg.ShutdownTimeout, err = getdur("SHUTDOWN_TIMEOUT", 10*time.Second); err != nil {
		return nil, err
	}

	return cfg, nil
}
