package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const EnvPrefix = "QUEST_"

type Config struct {
	Env          string
	Addr         string
	PublicURL    *url.URL
	DBDSN        string
	CookieSecret string
	SessionTTL   time.Duration
	FormTTL      time.Duration
	LogLevel     string
	SiteName     string

	GoogleClientID string
	AppleServiceID string
}

type envVars struct {
	Env            string        `env:"ENV" envDefault:"dev"`
	Addr           string        `env:"ADDR" envDefault:"127.0.0.1:8080"`
	PublicURL      string        `env:"PUBLIC_URL"`
	DBDSN          string        `env:"DB_DSN"`
	CookieSecret   string        `env:"COOKIE_SECRET"`
	SessionTTL     time.Duration `env:"SESSION_TTL" envDefault:"720h"`
	FormTTL        time.Duration `env:"FORM_TTL" envDefault:"1h"`
	LogLevel       string        `env:"LOG_LEVEL" envDefault:"info"`
	SiteName       string        `env:"SITE_NAME" envDefault:"Quest"`
	GoogleClientID string        `env:"GOOGLE_CLIENT_ID"`
	AppleServiceID string        `env:"APPLE_SERVICE_ID"`
}

// Load reads ./.env (if present) into the process environment without
// overriding variables that are already set, then parses QUEST_* variables.
func Load() (Config, error) {
	if err := loadDotEnvFile(".env", os.Setenv, os.Getenv); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	return LoadFromEnv(env.ToMap(os.Environ()))
}

func LoadFromEnv(environ map[string]string) (Config, error) {
	var raw envVars
	if err := env.ParseWithOptions(&raw, env.Options{Environment: environ, Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}

	cfg := Config{
		Env:            strings.TrimSpace(raw.Env),
		Addr:           strings.TrimSpace(raw.Addr),
		DBDSN:          strings.TrimSpace(raw.DBDSN),
		CookieSecret:   raw.CookieSecret,
		SessionTTL:     raw.SessionTTL,
		FormTTL:        raw.FormTTL,
		LogLevel:       strings.ToLower(strings.TrimSpace(raw.LogLevel)),
		SiteName:       strings.TrimSpace(raw.SiteName),
		GoogleClientID: strings.TrimSpace(raw.GoogleClientID),
		AppleServiceID: strings.TrimSpace(raw.AppleServiceID),
	}

	switch cfg.Env {
	case "dev", "prod", "test":
	default:
		return Config{}, errors.New(EnvPrefix + "ENV: must be one of dev, test, prod")
	}
	if cfg.SessionTTL <= 0 {
		return Config{}, errors.New(EnvPrefix + "SESSION_TTL: must be > 0")
	}
	if cfg.FormTTL <= 0 {
		return Config{}, errors.New(EnvPrefix + "FORM_TTL: must be > 0")
	}

	if raw.PublicURL != "" {
		parsed, err := parsePublicURL(raw.PublicURL)
		if err != nil {
			return Config{}, fmt.Errorf(EnvPrefix+"PUBLIC_URL: %w", err)
		}
		cfg.PublicURL = parsed
	}

	if cfg.IsProd() {
		if cfg.PublicURL == nil {
			return Config{}, errors.New(EnvPrefix + "PUBLIC_URL: required in prod")
		}
		if cfg.DBDSN == "" {
			return Config{}, errors.New(EnvPrefix + "DB_DSN: required in prod")
		}
		if len(cfg.CookieSecret) < 32 {
			return Config{}, errors.New(EnvPrefix + "COOKIE_SECRET: must be at least 32 bytes in prod")
		}
	}

	return cfg, nil
}

func parsePublicURL(s string) (*url.URL, error) {
	parsed, err := url.Parse(s)
	if err != nil {
		return nil, err
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return nil, errors.New("must be an absolute URL")
	}
	switch parsed.Scheme {
	case "http", "https":
	default:
		return nil, errors.New("scheme must be http or https")
	}
	return parsed, nil
}

func (c Config) IsProd() bool { return c.Env == "prod" }

func (c Config) CookieSecure() bool {
	if c.PublicURL != nil {
		return c.PublicURL.Scheme == "https"
	}
	return c.IsProd()
}
