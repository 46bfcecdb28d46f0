package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.GetString("PORT", "8080"))
	assert.Equal(t, 5, cfg.GetInt("MISSING", 5))
	assert.Equal(t, time.Minute, cfg.GetDuration("MISSING", time.Minute))
	assert.True(t, cfg.GetBool("MISSING", true))
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("POSTGRES_HOST", "db.internal")
	t.Setenv("S3_BUCKET", "inspection-images")
	t.Setenv("FORECAST_TIMEOUT", "45s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "db.internal", cfg.GetConnectionConfig()["host"])
	assert.Equal(t, "inspection-images", cfg.GetS3Config()["bucket"])
	assert.Equal(t, 45*time.Second, cfg.GetDuration("FORECAST_TIMEOUT", time.Second))
}

func TestGetConnectionConfig_Defaults(t *testing.T) {
	cfg := &Config{values: map[string]string{}}

	conn := cfg.GetConnectionConfig()
	assert.Equal(t, "localhost", conn["host"])
	assert.Equal(t, "5432", conn["port"])
	assert.Equal(t, "prefer", conn["sslmode"])
}
