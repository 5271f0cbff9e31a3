package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the application configuration.
type Config struct {
	ServerPort         int      `yaml:"port"`
	DatabasePath       string   `yaml:"databasePath"`
	LogLevel           string   `yaml:"logLevel"`
	RandomUserURL      string   `yaml:"randomUserURL"`
	ProductCatalogURL  string   `yaml:"productCatalogURL"`
	SeedUserCount      int      `yaml:"seedUserCount"`
	CORSAllowedOrigins []string `yaml:"corsAllowedOrigins"`
	SkipBootstrap      bool     `yaml:"skipBootstrap"`
}

// Default returns the configuration used when nothing is overridden.
func Default() Config {
	return Config{
		ServerPort:         8000,
		DatabasePath:       "./database.db",
		LogLevel:           "info",
		RandomUserURL:      "https://randomuser.me/api/",
		ProductCatalogURL:  "https://fakestoreapi.com/products",
		SeedUserCount:      5,
		CORSAllowedOrigins: []string{"*"},
	}
}

// Load builds the configuration from defaults, an optional YAML file named
// by CONFIG_PATH, and environment variables, in increasing precedence.
func Load() (*Config, error) {
	cfg := Default()

	if path := getEnv("CONFIG_PATH", ""); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	if v := getEnv("PORT", ""); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		cfg.ServerPort = port
	}
	cfg.DatabasePath = getEnv("DATABASE_PATH", cfg.DatabasePath)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.RandomUserURL = getEnv("RANDOM_USER_URL", cfg.RandomUserURL)
	cfg.ProductCatalogURL = getEnv("PRODUCT_CATALOG_URL", cfg.ProductCatalogURL)
	if v := getEnv("SEED_USER_COUNT", ""); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SEED_USER_COUNT %q: %w", v, err)
		}
		cfg.SeedUserCount = n
	}
	if v := getEnv("CORS_ALLOWED_ORIGINS", ""); v != "" {
		cfg.CORSAllowedOrigins = splitCSV(v)
	}
	if v := getEnv("SKIP_BOOTSTRAP", ""); v != "" {
		skip, err := strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid SKIP_BOOTSTRAP %q: %w", v, err)
		}
		cfg.SkipBootstrap = skip
	}

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func validate(cfg Config) error {
	if cfg.ServerPort <= 0 || cfg.ServerPort > 65535 {
		return fmt.Errorf("config: port %d out of range", cfg.ServerPort)
	}
	if cfg.DatabasePath == "" {
		return errors.New("config: databasePath is required")
	}
	if cfg.RandomUserURL == "" {
		return errors.New("config: randomUserURL is required")
	}
	if cfg.ProductCatalogURL == "" {
		return errors.New("config: productCatalogURL is required")
	}
	if cfg.SeedUserCount <= 0 {
		return fmt.Errorf("config: seedUserCount must be positive, got %d", cfg.SeedUserCount)
	}
	return nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
