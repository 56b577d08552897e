package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/studyhall/guardrails"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 5*time.Second, cfg.Redis.DialTimeout)
	assert.Equal(t, 3*time.Second, cfg.Redis.ReadTimeout)
	assert.Equal(t, "content", cfg.Content.Root)
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "guardrails.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
redis:
  addr: redis.internal:6380
  db: 2
limits:
  chat:
    max_requests: 20
    window_seconds: 60
  content:
    max_requests: 100
    window_seconds: 300
content:
  root: /srv/studyhall/content
`), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "redis.internal:6380", cfg.Redis.Addr)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.Equal(t, "/srv/studyhall/content", cfg.Content.Root)

	policy, ok := cfg.PolicyFor("chat")
	require.True(t, ok)
	assert.Equal(t, guardrails.Policy{MaxRequests: 20, WindowSeconds: 60}, policy)

	_, ok = cfg.PolicyFor("billing")
	assert.False(t, ok)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("GUARDRAILS_REDIS_ADDR", "override:6379")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "override:6379", cfg.Redis.Addr)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
