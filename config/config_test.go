package config

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "MONGO_DB", "SESSION_TTL", "SESSION_STORE", "AUTHZ_DENY_STATUS", "UPLOAD_DIR", "NOTIFY_QUEUE", "MAX_UPLOAD_BYTES"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "ecommerce", cfg.MongoDB)
	assert.Equal(t, 24*time.Hour, cfg.SessionTTL)
	assert.Equal(t, "redis", cfg.SessionStore)
	assert.Equal(t, http.StatusUnauthorized, cfg.AuthzDenyStatus)
	assert.Equal(t, "public/images", cfg.UploadDir)
	assert.Equal(t, "notifications.welcome", cfg.NotifyQueue)
	assert.Equal(t, int64(10<<20), cfg.MaxUploadBytes)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("SESSION_STORE", "memory")
	t.Setenv("AUTHZ_DENY_STATUS", "403")
	t.Setenv("REDIS_DB", "2")

	cfg := Load()
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "memory", cfg.SessionStore)
	assert.Equal(t, http.StatusForbidden, cfg.AuthzDenyStatus)
	assert.Equal(t, 2, cfg.RedisDB)
}

func TestDenyStatusRejectsOtherCodes(t *testing.T) {
	t.Setenv("AUTHZ_DENY_STATUS", "500")
	assert.Equal(t, http.StatusUnauthorized, getEnvAsStatus("AUTHZ_DENY_STATUS", http.StatusUnauthorized))

	t.Setenv("AUTHZ_DENY_STATUS", "nope")
	assert.Equal(t, http.StatusUnauthorized, getEnvAsStatus("AUTHZ_DENY_STATUS", http.StatusUnauthorized))
}
