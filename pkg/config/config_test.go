package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type serverEnv struct {
	Port     int    `env:"LOADER_TEST_PORT" envDefault:"8080"`
	Host     string `env:"LOADER_TEST_HOST" envDefault:"localhost"`
	LogLevel string `env:"LOADER_TEST_LOG_LEVEL" envDefault:"info"`
	Tracing  bool   `env:"LOADER_TEST_TRACING" envDefault:"false"`
}

func TestLoad_Defaults(t *testing.T) {
	var cfg serverEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, "localhost", cfg.Host)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.Tracing)
}

func TestLoad_EnvOverridesDefaults(t *testing.T) {
	t.Setenv("LOADER_TEST_PORT", "9090")
	t.Setenv("LOADER_TEST_HOST", "0.0.0.0")
	t.Setenv("LOADER_TEST_LOG_LEVEL", "debug")
	t.Setenv("LOADER_TEST_TRACING", "true")

	var cfg serverEnv
	require.NoError(t, Load(&cfg))

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.True(t, cfg.Tracing)
}

type secretEnv struct {
	JWTSecret string `env:"LOADER_TEST_JWT_SECRET,required"`
}

func TestLoad_RequiredMissing(t *testing.T) {
	var cfg secretEnv
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestLoad_RequiredPresent(t *testing.T) {
	t.Setenv("LOADER_TEST_JWT_SECRET", "secret-123")

	var cfg secretEnv
	require.NoError(t, Load(&cfg))
	assert.Equal(t, "secret-123", cfg.JWTSecret)
}

func TestLoad_TypeMismatch(t *testing.T) {
	t.Setenv("LOADER_TEST_PORT", "not-a-number")

	var cfg serverEnv
	err := Load(&cfg)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}
