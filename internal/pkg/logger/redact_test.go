package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedactSecret(t *testing.T) {
	assert.Equal(t, "sk-a***", RedactSecret("sk-abc123def456"))
	assert.Equal(t, "***", RedactSecret("abc"))
	assert.Equal(t, "***", RedactSecret(""))
}

func TestRedactSecretValue(t *testing.T) {
	assert.Equal(t, "hunt***", redactSecretValue("password", "hunter2too"))
	assert.Equal(t, "sk-1***", redactSecretValue("anthropic_api_key", "sk-1234567890"))
	assert.Equal(t, "tok_***", redactSecretValue("accessToken", "tok_abcdef"))
	assert.Equal(t, "plain value", redactSecretValue("message", "plain value"))
}
