// Package config reads the server settings from the environment and an
// optional config file.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

type Config struct {
	Port    int
	Backend string

	DatabaseURL     string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration

	JWTSecret string
	TokenTTL  time.Duration

	AdminUsername        string
	AdminPassword        string
	ProvisionalPasswords bool

	RedisAddr       string
	LoginMaxStrikes int
	LoginBanTTL     time.Duration

	CORSOrigins    []string
	RateLimitRPS   float64
	RateLimitBurst int
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", 10000)
	v.SetDefault("STORAGE_BACKEND", BackendMemory)
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_OPEN_CONNS", 25)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "5m")
	v.SetDefault("JWT_SECRET", "dev-secret")
	v.SetDefault("TOKEN_TTL", "168h")
	v.SetDefault("ADMIN_USERNAME", "admin")
	v.SetDefault("ADMIN_PASSWORD", "admin")
	v.SetDefault("PROVISIONAL_PASSWORDS", false)
	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("LOGIN_MAX_STRIKES", 5)
	v.SetDefault("LOGIN_BAN_TTL", "15m")
	v.SetDefault("CORS_ORIGIN", "*")
	v.SetDefault("RATE_LIMIT_RPS", 10)
	v.SetDefault("RATE_LIMIT_BURST", 30)
}

// Load resolves the configuration. Environment variables win over the file
// named by CONFIG_FILE, which wins over the defaults.
func Load() (Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config file %s: %w", file, err)
		}
	}

	cfg := Config{
		Port:                 v.GetInt("PORT"),
		Backend:              strings.ToLower(strings.TrimSpace(v.GetString("STORAGE_BACKEND"))),
		DatabaseURL:          v.GetString("DATABASE_URL"),
		MaxOpenConns:         v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns:         v.GetInt("DB_MAX_IDLE_CONNS"),
		ConnMaxLifetime:      v.GetDuration("DB_CONN_MAX_LIFETIME"),
		JWTSecret:            v.GetString("JWT_SECRET"),
		TokenTTL:             v.GetDuration("TOKEN_TTL"),
		AdminUsername:        v.GetString("ADMIN_USERNAME"),
		AdminPassword:        v.GetString("ADMIN_PASSWORD"),
		ProvisionalPasswords: v.GetBool("PROVISIONAL_PASSWORDS"),
		RedisAddr:            v.GetString("REDIS_ADDR"),
		LoginMaxStrikes:      v.GetInt("LOGIN_MAX_STRIKES"),
		LoginBanTTL:          v.GetDuration("LOGIN_BAN_TTL"),
		CORSOrigins:          splitList(v.GetString("CORS_ORIGIN")),
		RateLimitRPS:         v.GetFloat64("RATE_LIMIT_RPS"),
		RateLimitBurst:       v.GetInt("RATE_LIMIT_BURST"),
	}

	return cfg, cfg.validate()
}

func (c Config) validate() error {
	var errs []error
	switch c.Backend {
	case BackendMemory:
	case BackendPostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORAGE_BACKEND %q", c.Backend))
	}
	if c.Port <= 0 || c.Port > 65535 {
		errs = append(errs, fmt.Errorf("invalid PORT %d", c.Port))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("JWT_SECRET must not be empty"))
	}
	if c.TokenTTL <= 0 {
		errs = append(errs, errors.New("TOKEN_TTL must be positive"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return fmt.Sprintf(":%d", c.Port)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
