package config

import (
	"os"
	"testing"
	"time"

	"github.com/caarlos0/env/v6"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApplyDefaults(t *testing.T) {
	values := Config{}

	applyDefaults(&values, defaultConfig)

	assert.Equal(t, ":8080", values.RunAddr)
	assert.Equal(t, "info", values.LogLevel)
	assert.Equal(t, 10*time.Second, values.DBConnectionTimeout)
	assert.Equal(t, "migrations", values.MigrationsDir)
}

func TestConfigEnvOnly(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":7000")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("FILE_STORAGE_PATH", "users_test.json")

	cfg, err := New(WithDisableFlagsParsing(true))
	require.NoError(t, err)

	assert.Equal(t, ":7000", cfg.RunAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "users_test.json", cfg.DBFileName)
}

func TestConfigPriorityFlagsPlusEnv(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":4000")
	t.Setenv("DATABASE_DSN", "env-dsn")

	os.Args = []string{
		"testbin",
		"-l", "warn",
	}

	cfg, err := New()
	require.NoError(t, err)

	assert.Equal(t, ":4000", cfg.RunAddr) // env overrides defaults
	assert.Equal(t, "env-dsn", cfg.DatabaseDSN)
	assert.Equal(t, "warn", cfg.LogLevel) // from CLI
}

func TestConfigInvalidLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "chatty")

	_, err := New(WithDisableFlagsParsing(true))
	require.Error(t, err)
}

func TestEnvParseDuration(t *testing.T) {
	t.Setenv("DB_CONNECTION_TIMEOUT", "3s")

	values := Config{}
	err := env.Parse(&values)
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, values.DBConnectionTimeout)
}
