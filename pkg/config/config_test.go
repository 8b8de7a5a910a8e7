package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, "giftstore", cfg.Server.Name)
	assert.False(t, cfg.Storage.Configured())
	assert.False(t, cfg.Redis.Enabled())
	assert.False(t, cfg.Etcd.Enabled())
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")
	t.Setenv("DATABASE_NAME", "giftstore")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("ETCD_ENDPOINTS", "etcd-1:2379,etcd-2:2379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.True(t, cfg.Storage.Configured())
	assert.Equal(t, "mongodb://localhost:27017", cfg.Storage.URI)
	assert.Equal(t, "giftstore", cfg.Storage.Database)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.True(t, cfg.Redis.Enabled())
	require.True(t, cfg.Etcd.Enabled())
	assert.Equal(t, []string{"etcd-1:2379", "etcd-2:2379"}, cfg.Etcd.Endpoints)
}

func TestStorageNeedsBothSettings(t *testing.T) {
	t.Setenv("DATABASE_URL", "mongodb://localhost:27017")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.False(t, cfg.Storage.Configured(), "URL without a database name stays unconfigured")
}

func TestLoadMissingFileIsFine(t *testing.T) {
	cfg, err := Load("config/does-not-exist.yaml")
	require.NoError(t, err)
	assert.Equal(t, 8000, cfg.Server.Port)
}
