package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"gopkg.in/yaml.v3"
)

// Config holds everything the service reads at startup.
type Config struct {
	Addr           string   `yaml:"addr"`
	DatabaseURL    string   `yaml:"database_url"`
	CORSOrigins    []string `yaml:"cors_origins"`
	LogLevel       string   `yaml:"log_level"`
	LogDevelopment bool     `yaml:"log_development"`

	// Identity used when a request carries no bearer token.
	TestUserID    string `yaml:"test_user_id"`
	AllowTestUser bool   `yaml:"allow_test_user"`

	// Bearer tokens are only checked when JWTSecret is set.
	JWTSecret string `yaml:"jwt_secret_key"`
	Issuer    string `yaml:"auth_issuer"`
	Audience  string `yaml:"auth_audience"`
}

// Default returns the configuration used for local development.
func Default() Config {
	return Config{
		Addr:          ":8000",
		DatabaseURL:   "sqlite://promptdec.db",
		CORSOrigins:   []string{"http://localhost:5173"},
		LogLevel:      "info",
		TestUserID:    "test-user-123",
		AllowTestUser: true,
		Issuer:        "promptdec",
		Audience:      "promptdec-api",
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// path and the environment, in that order. A .env file in the working
// directory is loaded into the environment first when present.
func Load(path string) (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("CONFIG_FILE")
	}
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	if v, ok := lookup("PORT"); ok && v != "" {
		c.Addr = ":" + v
	}
	setString(lookup, &c.Addr, "ADDR")
	setString(lookup, &c.DatabaseURL, "DB_URL")
	setString(lookup, &c.DatabaseURL, "DATABASE_URL")
	setString(lookup, &c.LogLevel, "LOG_LEVEL")
	setString(lookup, &c.TestUserID, "TEST_USER_ID")
	setString(lookup, &c.JWTSecret, "JWT_SECRET_KEY")
	setString(lookup, &c.Issuer, "AUTH_ISSUER")
	setString(lookup, &c.Audience, "AUTH_AUDIENCE")

	if v, ok := lookup("CORS_ORIGINS"); ok && v != "" {
		c.CORSOrigins = splitList(v)
	}
	if err := setBool(lookup, &c.LogDevelopment, "LOG_DEVELOPMENT"); err != nil {
		return err
	}
	return setBool(lookup, &c.AllowTestUser, "ALLOW_TEST_USER")
}

// Validate reports settings that cannot work together.
func (c Config) Validate() error {
	if c.DatabaseURL == "" {
		return errors.New("database url is required")
	}
	if c.JWTSecret == "" && !c.AllowTestUser {
		return errors.New("no identity source: set JWT_SECRET_KEY or ALLOW_TEST_USER")
	}
	if c.AllowTestUser && c.TestUserID == "" {
		return errors.New("test user id must not be empty")
	}
	if c.JWTSecret != "" && (c.Issuer == "" || c.Audience == "") {
		return errors.New("auth issuer and audience are required when a jwt secret is set")
	}
	return nil
}

// CORS returns the cross-origin policy for the configured origins.
func (c Config) CORS() cors.Options {
	return cors.Options{
		AllowedOrigins: c.CORSOrigins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "X-Request-ID", "Accept", "Origin"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}
}

func setString(lookup func(string) (string, bool), dst *string, key string) {
	if v, ok := lookup(key); ok && v != "" {
		*dst = v
	}
}

func setBool(lookup func(string) (string, bool), dst *bool, key string) error {
	v, ok := lookup(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fmt.Errorf("%s: %w", key, err)
	}
	*dst = b
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
