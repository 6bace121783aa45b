package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, k := range []string{"HTTP_ADDR", "KV_BACKEND", "CORS_ORIGINS", "PERSIST_WAIT_MS", "SESSION_TTL_HOURS", "SHUTDOWN_TIMEOUT_SECONDS"} {
		t.Setenv(k, "")
	}
	cfg := FromEnv()
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "postgres", cfg.KVBackend)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
	assert.Equal(t, time.Duration(0), cfg.PersistWait)
	assert.Equal(t, 30*24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("KV_BACKEND", "Redis")
	t.Setenv("CORS_ORIGINS", "https://shop.example.com, ,http://localhost:3000")
	t.Setenv("PERSIST_WAIT_MS", "250")
	t.Setenv("SESSION_TTL_HOURS", "2")
	t.Setenv("SHUTDOWN_TIMEOUT_SECONDS", "nope")

	cfg := FromEnv()
	assert.Equal(t, "redis", cfg.KVBackend)
	assert.Equal(t, []string{"https://shop.example.com", "http://localhost:3000"}, cfg.CORSOrigins)
	assert.Equal(t, 250*time.Millisecond, cfg.PersistWait)
	assert.Equal(t, 2*time.Hour, cfg.SessionTTL)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
}
