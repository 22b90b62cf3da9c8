package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "start", cfg.EntryNode)
	assert.Equal(t, "hub", cfg.HubNode)
	assert.Zero(t, cfg.EvidenceCap)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("STORE_BACKEND", "redis")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("REDIS_TTL", "24h")
	t.Setenv("EVIDENCE_CAP", "100")

	cfg := Load()

	assert.Equal(t, "9999", cfg.Port)
	assert.Equal(t, "redis", cfg.StoreBackend)
	assert.Equal(t, 3, cfg.RedisDB)
	assert.Equal(t, 24*time.Hour, cfg.RedisTTL)
	assert.Equal(t, 100, cfg.EvidenceCap)
}

func TestLoadIgnoresMalformedInts(t *testing.T) {
	t.Setenv("REDIS_DB", "not-a-number")
	cfg := Load()
	assert.Equal(t, 0, cfg.RedisDB)
}
