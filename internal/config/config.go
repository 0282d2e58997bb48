// Package config resolves runtime settings from the environment and an
// optional .env file.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
)

const minSecretKeyLength = 32

var insecureSecretKeys = map[string]struct{}{
	"change_me_in_production":                    {},
	"replace_with_at_least_32_random_characters": {},
}

type Config struct {
	Port            string
	SecretKey       string
	DatabaseURL     string
	DBPath          string
	CookieSecure    bool
	DefaultLanguage string
	Location        *time.Location
	RedisURL        string
	AWSRegion       string
	SESFromEmail    string
	SESFromName     string
	BaseURL         string
	TemplatesDir    string
	LocalesDir      string
	StaticDir       string
}

type Database struct {
	URL        string
	SQLitePath string
}

// Load reads .env when present, then the process environment. Variables
// already set in the environment win over .env values.
func Load() (Config, error) {
	if err := loadDotEnv(); err != nil {
		return Config{}, err
	}
	return FromEnv()
}

// LoadDatabase resolves only the database settings, for maintenance commands
// that run without a SECRET_KEY.
func LoadDatabase() (Database, error) {
	if err := loadDotEnv(); err != nil {
		return Database{}, err
	}
	return databaseFromEnv(), nil
}

func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	return nil
}

func FromEnv() (Config, error) {
	port, err := resolvePort()
	if err != nil {
		return Config{}, err
	}
	secretKey, err := resolveSecretKey()
	if err != nil {
		return Config{}, err
	}
	cookieSecure, err := resolveBool("COOKIE_SECURE", false)
	if err != nil {
		return Config{}, err
	}

	database := databaseFromEnv()
	cfg := Config{
		Port:            port,
		SecretKey:       secretKey,
		DatabaseURL:     database.URL,
		DBPath:          database.SQLitePath,
		CookieSecure:    cookieSecure,
		DefaultLanguage: getEnv("DEFAULT_LANGUAGE", "en"),
		Location:        mustLoadLocation(getEnv("TZ", "UTC")),
		RedisURL:        strings.TrimSpace(os.Getenv("REDIS_URL")),
		AWSRegion:       getEnv("AWS_REGION", "us-east-1"),
		SESFromEmail:    strings.TrimSpace(os.Getenv("SES_FROM_EMAIL")),
		SESFromName:     getEnv("SES_FROM_NAME", "Cradle"),
		TemplatesDir:    getEnv("TEMPLATES_DIR", filepath.Join("internal", "templates")),
		LocalesDir:      getEnv("LOCALES_DIR", filepath.Join("internal", "i18n", "locales")),
		StaticDir:       getEnv("STATIC_DIR", filepath.Join("web", "static")),
	}
	cfg.BaseURL = strings.TrimRight(getEnv("APP_BASE_URL", "http://localhost:"+port), "/")
	return cfg, nil
}

func databaseFromEnv() Database {
	return Database{
		URL:        strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SQLitePath: getEnv("DB_PATH", filepath.Join("data", "cradle.db")),
	}
}

func resolvePort() (string, error) {
	raw := getEnv("PORT", "8080")
	port, err := strconv.Atoi(raw)
	if err != nil {
		return "", fmt.Errorf("PORT must be a number, got %q", raw)
	}
	if port < 1 || port > 65535 {
		return "", fmt.Errorf("PORT must be between 1 and 65535, got %d", port)
	}
	return strconv.Itoa(port), nil
}

func resolveSecretKey() (string, error) {
	secret := strings.TrimSpace(os.Getenv("SECRET_KEY"))
	if secret == "" {
		return "", errors.New("SECRET_KEY is required")
	}
	if _, insecure := insecureSecretKeys[secret]; insecure {
		return "", errors.New("SECRET_KEY uses a placeholder value; generate a random secret")
	}
	if len(secret) < minSecretKeyLength {
		return "", fmt.Errorf("SECRET_KEY must be at least %d characters", minSecretKeyLength)
	}
	return secret, nil
}

func resolveBool(key string, fallback bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, raw)
	}
	return value, nil
}

func mustLoadLocation(name string) *time.Location {
	location, err := time.LoadLocation(name)
	if err != nil {
		slog.Warn("invalid TZ, falling back to UTC", "tz", name)
		return time.UTC
	}
	return location
}

func getEnv(key string, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}
