// Package config provides application configuration management with support for environment variables, command-line flags, and .env files.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Catalog CatalogConfig
	Server  ServerConfig
	Images  ImagesConfig
}

// AppConfig holds application-level configuration.
type AppConfig struct {
	Environment string
}

// LoggerConfig holds logging configuration.
type LoggerConfig struct {
	Level string
}

// CatalogConfig locates the read-only datasets.
type CatalogConfig struct {
	// DataPath is the fragrance export (JSON array).
	DataPath string
	// AccordsPath is the accord -> colour table. Optional.
	AccordsPath string
	// Watch reloads the catalog when DataPath changes on disk.
	Watch bool
}

// ServerConfig holds server configuration.
type ServerConfig struct {
	Port         string        // Server port (default: 8080)
	ReadTimeout  time.Duration // HTTP read timeout (default: 15s)
	WriteTimeout time.Duration // HTTP write timeout (default: 15s)
	IdleTimeout  time.Duration // HTTP idle timeout (default: 60s)
	CORSOrigins  []string      // Allowed browser origins (default: *)
	RateLimit    float64       // Requests per second per client, 0 disables (default: 20)
	RateBurst    int           // Burst size per client (default: 40)
}

// ImagesConfig configures the image download tooling.
type ImagesConfig struct {
	// Dir receives downloaded images.
	Dir string
	// PublicPrefix is the URL path the images are served under.
	PublicPrefix string
	// LedgerPath is the badger directory recording download results.
	LedgerPath string
}

// LoadConfig loads configuration from the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}

// Load loads configuration from multiple sources with precedence:
// 1. Command-line flags (highest priority).
// 2. Environment variables.
// 3. .env file.
// 4. Default values (lowest priority).
func Load(args []string) (*Config, error) {
	fs := flag.NewFlagSet("scentdex", flag.ContinueOnError)

	env := fs.String("env", "", "Environment (development, staging, production)")
	logLevel := fs.String("log-level", "", "Log level (debug, info, warn, error)")

	catalogPath := fs.String("catalog", "", "Path to the fragrance JSON export")
	accordsPath := fs.String("accords", "", "Path to the accord colour table")
	watch := fs.String("watch", "", "Reload the catalog when it changes (default: true)")

	serverPort := fs.String("port", "", "Server port (default: 8080)")
	readTimeout := fs.String("read-timeout", "", "HTTP read timeout (default: 15s)")
	writeTimeout := fs.String("write-timeout", "", "HTTP write timeout (default: 15s)")
	idleTimeout := fs.String("idle-timeout", "", "HTTP idle timeout (default: 60s)")
	corsOrigins := fs.String("cors-origins", "", "Comma-separated allowed origins (default: *)")
	rateLimit := fs.String("rate-limit", "", "Requests per second per client, 0 disables (default: 20)")
	rateBurst := fs.String("rate-burst", "", "Burst size per client (default: 40)")

	imagesDir := fs.String("images-dir", "", "Directory for downloaded images")
	imagesPrefix := fs.String("images-prefix", "", "Public URL prefix for downloaded images")
	ledgerPath := fs.String("images-ledger", "", "Path of the image download ledger")

	envFile := fs.String("env-file", ".env", "Path to .env file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Missing .env is fine; existing environment wins over the file.
	_ = godotenv.Load(*envFile)

	cfg := &Config{
		App: AppConfig{
			Environment: getConfigValue(*env, "ENV", "development"),
		},
		Logger: LoggerConfig{
			Level: getConfigValue(*logLevel, "LOG_LEVEL", "info"),
		},
		Catalog: CatalogConfig{
			DataPath:    getConfigValue(*catalogPath, "CATALOG_PATH", filepath.Join("data", "fragrancesV2.json")),
			AccordsPath: getConfigValue(*accordsPath, "ACCORDS_PATH", filepath.Join("data", "accords.json")),
			Watch:       getBoolConfigValue(*watch, "CATALOG_WATCH", true),
		},
		Server: ServerConfig{
			Port:        getConfigValue(*serverPort, "SERVER_PORT", "8080"),
			CORSOrigins: splitList(getConfigValue(*corsOrigins, "CORS_ORIGINS", "*")),
		},
		Images: ImagesConfig{
			Dir:          getConfigValue(*imagesDir, "IMAGES_DIR", filepath.Join("public", "fragrances", "images")),
			PublicPrefix: getConfigValue(*imagesPrefix, "IMAGES_PUBLIC_PREFIX", "/fragrances/images"),
			LedgerPath:   getConfigValue(*ledgerPath, "IMAGES_LEDGER_PATH", filepath.Join("public", "fragrances", ".ledger")),
		},
	}

	var err error
	if cfg.Server.ReadTimeout, err = parseDuration(*readTimeout, "SERVER_READ_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.WriteTimeout, err = parseDuration(*writeTimeout, "SERVER_WRITE_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.Server.IdleTimeout, err = parseDuration(*idleTimeout, "SERVER_IDLE_TIMEOUT", "60s"); err != nil {
		return nil, err
	}

	if cfg.Server.RateLimit, err = parseFloat(*rateLimit, "SERVER_RATE_LIMIT", "20"); err != nil {
		return nil, err
	}
	burst, err := parseFloat(*rateBurst, "SERVER_RATE_BURST", "40")
	if err != nil {
		return nil, err
	}
	cfg.Server.RateBurst = int(burst)

	if err := cfg.expandPaths(); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate checks that all required config values are present and valid.
func (c *Config) Validate() error {
	if c.App.Environment == "" {
		return errors.New("ENV is required")
	}

	validEnvs := map[string]bool{
		"development": true,
		"staging":     true,
		"production":  true,
	}
	if !validEnvs[c.App.Environment] {
		return fmt.Errorf("invalid environment: %s (must be development, staging, or production)", c.App.Environment)
	}

	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[strings.ToLower(c.Logger.Level)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.Logger.Level)
	}

	if c.Catalog.DataPath == "" {
		return errors.New("catalog data path cannot be empty")
	}

	if c.Server.RateLimit < 0 {
		return fmt.Errorf("invalid rate limit: %v (must not be negative)", c.Server.RateLimit)
	}
	if c.Server.RateLimit > 0 && c.Server.RateBurst < 1 {
		return fmt.Errorf("invalid rate burst: %d (must be at least 1)", c.Server.RateBurst)
	}

	if !strings.HasPrefix(c.Images.PublicPrefix, "/") {
		return fmt.Errorf("invalid images public prefix: %q (must start with /)", c.Images.PublicPrefix)
	}

	return nil
}

// expandPaths resolves ~ and relative paths for every file location.
func (c *Config) expandPaths() error {
	targets := []struct {
		name string
		path *string
	}{
		{"catalog path", &c.Catalog.DataPath},
		{"accords path", &c.Catalog.AccordsPath},
		{"images dir", &c.Images.Dir},
		{"images ledger", &c.Images.LedgerPath},
	}

	for _, t := range targets {
		expanded, err := expandPath(*t.path)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", t.name, err)
		}
		*t.path = expanded
	}
	return nil
}

// expandPath expands ~ and makes the path absolute. Empty stays empty.
func expandPath(path string) (string, error) {
	if path == "" {
		return "", nil
	}

	if strings.HasPrefix(path, "~/") {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		path = filepath.Join(homeDir, path[2:])
	}

	if !filepath.IsAbs(path) {
		absPath, err := filepath.Abs(path)
		if err != nil {
			return "", fmt.Errorf("failed to get absolute path: %w", err)
		}
		path = absPath
	}

	return filepath.Clean(path), nil
}

func parseDuration(flagValue, envKey, defaultValue string) (time.Duration, error) {
	s := getConfigValue(flagValue, envKey, defaultValue)
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), s, err)
	}
	return d, nil
}

func parseFloat(flagValue, envKey, defaultValue string) (float64, error) {
	s := getConfigValue(flagValue, envKey, defaultValue)
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", strings.ToLower(envKey), s, err)
	}
	return f, nil
}

// getConfigValue returns the flag value, the environment value, or the default, in that order.
func getConfigValue(flagValue, envKey, defaultValue string) string {
	if flagValue != "" {
		return flagValue
	}
	if envValue := os.Getenv(envKey); envValue != "" {
		return envValue
	}
	return defaultValue
}

// getBoolConfigValue returns a bool from flag, env var, or default.
// Accepts: "true", "1", "yes" (case-insensitive) as true; anything else is false.
func getBoolConfigValue(flagValue, envKey string, defaultValue bool) bool {
	strValue := getConfigValue(flagValue, envKey, "")
	if strValue == "" {
		return defaultValue
	}
	strValue = strings.ToLower(strValue)
	return strValue == "true" || strValue == "1" || strValue == "yes"
}

func splitList(s string) []string {
	var out []string
	for part := range strings.SplitSeq(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
