package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.API.Hostname)
	assert.Equal(t, 5000, cfg.API.Port)
	assert.Empty(t, cfg.API.BaseURL)
	assert.Equal(t, 60, cfg.Client.Timeout)
	assert.Equal(t, "./catalogs", cfg.Seed.CatalogDir)
}

func TestLoadEnvOverrides(t *testing.T) {
	viper.Reset()
	t.Cleanup(viper.Reset)

	t.Setenv("JUB_PORT", "8080")
	t.Setenv("JUB_HOSTNAME", "jub.internal")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, "jub.internal", cfg.API.Hostname)
}
