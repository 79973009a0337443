package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application's configuration.
type Config struct {
	Database struct {
		URL            string `yaml:"url"`
		TimeoutSeconds int64  `yaml:"timeout_seconds"`
	} `yaml:"database"`
	Auth struct {
		JWTSecret     string `yaml:"jwt_secret"`
		TokenTTLHours int64  `yaml:"token_ttl_hours"`
		Argon2        struct {
			MemoryKiB   uint32 `yaml:"memory_kib"`
			Iterations  uint32 `yaml:"iterations"`
			Parallelism uint8  `yaml:"parallelism"`
		} `yaml:"argon2"`
	} `yaml:"auth"`
	Maps struct {
		APIKey  string `yaml:"api_key"`
		BaseURL string `yaml:"base_url"`
	} `yaml:"maps"`
	Server struct {
		Port string `yaml:"port"`
	} `yaml:"server"`
}

// TokenTTL returns the configured token lifetime, defaulting to 8 hours.
func (c *Config) TokenTTL() time.Duration {
	if c.Auth.TokenTTLHours <= 0 {
		return 8 * time.Hour
	}
	return time.Duration(c.Auth.TokenTTLHours) * time.Hour
}

// DBTimeout returns the per-query database timeout, defaulting to 5 seconds.
func (c *Config) DBTimeout() time.Duration {
	if c.Database.TimeoutSeconds <= 0 {
		return 5 * time.Second
	}
	return time.Duration(c.Database.TimeoutSeconds) * time.Second
}

// LoadConfig reads configuration from the specified YAML file, then applies
// environment overrides. A .env file next to the binary is honored if present.
func LoadConfig(configPath string) (*Config, error) {
	_ = godotenv.Load() // Optional; real env vars win over the file

	config := &Config{}

	file, err := os.Open(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	decoder := yaml.NewDecoder(file)
	if err := decoder.Decode(config); err != nil {
		return nil, fmt.Errorf("failed to decode config file: %w", err)
	}

	applyEnvOverrides(config)

	if config.Auth.JWTSecret == "" {
		return nil, fmt.Errorf("auth.jwt_secret is required (or set JWT_SECRET)")
	}

	return config, nil
}

func applyEnvOverrides(config *Config) {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		config.Database.URL = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("GOOGLE_API_KEY"); v != "" {
		config.Maps.APIKey = v
	}
	if v := os.Getenv("PORT"); v != "" {
		config.Server.Port = v
	}
}
