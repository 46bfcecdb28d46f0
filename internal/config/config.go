package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	values map[string]string
}

func Load() (*Config, error) {
	cfg := &Config{
		values: make(map[string]string),
	}

	cfg.loadFromEnv()
	return cfg, nil
}

func (c *Config) loadFromEnv() {
	envVars := []string{
		"POSTGRES_HOST",
		"POSTGRES_PORT",
		"POSTGRES_DATABASE",
		"POSTGRES_USERNAME",
		"POSTGRES_PASSWORD",
		"POSTGRES_SSLMODE",
		"POSTGRES_CONNECT_TIMEOUT",
		"S3_ENDPOINT",
		"S3_REGION",
		"S3_ACCESS_KEY_ID",
		"S3_SECRET_ACCESS_KEY",
		"S3_BUCKET",
		"S3_IMAGE_PREFIX",
		"S3_USE_SSL",
		"FORECAST_BASE_URL",
		"FORECAST_TIMEOUT",
		"PORT",
	}

	for _, envVar := range envVars {
		if value := os.Getenv(envVar); value != "" {
			c.values[envVar] = value
		}
	}
}

func (c *Config) GetString(key, defaultValue string) string {
	if value, exists := c.values[key]; exists {
		return value
	}
	return defaultValue
}

func (c *Config) GetInt(key string, defaultValue int) int {
	if value, exists := c.values[key]; exists {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) GetBool(key string, defaultValue bool) bool {
	if value, exists := c.values[key]; exists {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func (c *Config) GetDuration(key string, defaultValue time.Duration) time.Duration {
	if value, exists := c.values[key]; exists {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// GetConnectionConfig returns the inventory database settings with defaults
// applied, in the map form the postgres store consumes.
func (c *Config) GetConnectionConfig() map[string]string {
	return map[string]string{
		"host":            c.GetString("POSTGRES_HOST", "localhost"),
		"port":            c.GetString("POSTGRES_PORT", "5432"),
		"database":        c.GetString("POSTGRES_DATABASE", "boardtrack"),
		"username":        c.GetString("POSTGRES_USERNAME", ""),
		"password":        c.GetString("POSTGRES_PASSWORD", ""),
		"sslmode":         c.GetString("POSTGRES_SSLMODE", "prefer"),
		"connect_timeout": c.GetString("POSTGRES_CONNECT_TIMEOUT", "30s"),
	}
}

// GetS3Config returns the inspection image bucket settings with defaults
// applied, in the map form the imaging lister consumes.
func (c *Config) GetS3Config() map[string]string {
	return map[string]string{
		"endpoint":          c.GetString("S3_ENDPOINT", ""),
		"region":            c.GetString("S3_REGION", "us-east-1"),
		"access_key_id":     c.GetString("S3_ACCESS_KEY_ID", ""),
		"secret_access_key": c.GetString("S3_SECRET_ACCESS_KEY", ""),
		"bucket":            c.GetString("S3_BUCKET", ""),
		"image_prefix":      c.GetString("S3_IMAGE_PREFIX", "pcb"),
		"use_ssl":           c.GetString("S3_USE_SSL", "true"),
	}
}
