package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("APP_STORE", "memory")
	t.Setenv("JWT_ACCESS_TOKEN_SECRET", "test")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoreMemory, cfg.App.Store)
	assert.Equal(t, "8088", cfg.App.Port)
	assert.Equal(t, 8, cfg.Live.ViewerBuffer)
	assert.Equal(t, 3*time.Second, cfg.Live.WriteTimeout)
	assert.Equal(t, "*/30 * * * * *", cfg.Outbox.Schedule)
	assert.Equal(t, 30*time.Minute, cfg.DB.ConnMaxLifetime)
	assert.Same(t, cfg, GetConfig())
}

func TestLoadConfigRejects(t *testing.T) {
	t.Setenv("APP_STORE", "sqlite")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("APP_STORE", "memory")
	t.Setenv("OUTBOX_BATCH_SIZE", "0")
	_, err = LoadConfig()
	assert.Error(t, err)

	t.Setenv("OUTBOX_BATCH_SIZE", "ten")
	_, err = LoadConfig()
	assert.Error(t, err)
}
