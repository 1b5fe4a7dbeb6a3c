package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.NotEmpty(t, cfg.CORSOrigins)
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "user=ci dbname=ci sslmode=disable")

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "user=ci dbname=ci sslmode=disable", cfg.DatabaseURL)
}

func TestLoadConfigRejectsBadPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := loadConfig()
	assert.Error(t, err)
}
