package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	configContent := `
server:
  port: 9090
  host: "0.0.0.0"

owner:
  username: "acme"
  password: "hunter2"

ai:
  provider: "anthropic"
  anthropic_key: "test-key"
  model: "claude-sonnet-4-20250514"
  timeout_seconds: 45

redis:
  addr: "localhost:6379"
  summary_ttl_seconds: 10
`
	err := os.WriteFile(configPath, []byte(configContent), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, "acme", cfg.Owner.Username)
	assert.Equal(t, "hunter2", cfg.Owner.Password)
	assert.Equal(t, "anthropic", cfg.AI.Provider)
	assert.Equal(t, "test-key", cfg.AI.AnthropicKey)
	assert.Equal(t, 45, cfg.AI.TimeoutSeconds)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, 10, cfg.Redis.SummaryTTLSeconds)
}

func TestLoadDefaults(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("ai:\n  anthropic_key: \"k\"\n"), 0644)
	require.NoError(t, err)

	cfg, err := Load(configPath)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, "demo", cfg.Owner.Username)
	assert.Equal(t, "demo123", cfg.Owner.Password)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.AI.Model)
	assert.Equal(t, "anthropic.claude-3-sonnet-20240229-v1:0", cfg.AI.BedrockModelID)
	assert.Equal(t, "us-east-1", cfg.AI.BedrockRegion)
	assert.Equal(t, 60, cfg.AI.TimeoutSeconds)
	assert.Empty(t, cfg.Redis.Addr)
	assert.Equal(t, 5, cfg.Redis.SummaryTTLSeconds)
}

// A missing config file is fine: defaults plus env carry the server.
func TestLoadMissingFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestLoadFromEnv(t *testing.T) {
	tmpDir := t.TempDir()
	configPath := filepath.Join(tmpDir, "config.yaml")

	err := os.WriteFile(configPath, []byte("ai:\n  anthropic_key: \"file-key\"\n"), 0644)
	require.NoError(t, err)

	t.Setenv("ANTHROPIC_API_KEY", "env-key")
	t.Setenv("PORT", "7070")
	t.Setenv("DEMO_USERNAME", "envuser")
	t.Setenv("REDIS_ADDR", "localhost:6380")

	cfg, err := LoadFromEnv(configPath)
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.AI.AnthropicKey)
	assert.Equal(t, 7070, cfg.Server.Port)
	assert.Equal(t, "envuser", cfg.Owner.Username)
	assert.Equal(t, "localhost:6380", cfg.Redis.Addr)
}

func TestTimeouts(t *testing.T) {
	assert.Equal(t, 45*time.Second, AIConfig{TimeoutSeconds: 45}.Timeout())
	assert.Equal(t, 10*time.Second, RedisConfig{SummaryTTLSeconds: 10}.SummaryTTL())
}

func TestGetHost(t *testing.T) {
	cfg := ServerConfig{Host: "localhost"}
	assert.Equal(t, "localhost", cfg.GetHost())

	t.Setenv("SERVER_HOST", "10.0.0.5")
	assert.Equal(t, "10.0.0.5", cfg.GetHost())

	t.Setenv("AWS_EXECUTION_ENV", "AWS_ECS_FARGATE")
	assert.Equal(t, "0.0.0.0", cfg.GetHost())
}
