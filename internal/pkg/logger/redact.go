package logger

import "strings"

// Field names whose values are never written to the log in full.
var secretKeys = []string{"password", "credential", "apikey", "api_key", "token", "secret"}

// RedactSecret masks a sensitive value for safe logging, keeping a short
// prefix so operators can tell keys apart: "sk-abc123..." → "sk-a***".
// Values of 4 chars or fewer are fully masked.
func RedactSecret(val string) string {
	if len(val) <= 4 {
		return "***"
	}
	return val[:4] + "***"
}

func redactSecretValue(key, val string) string {
	key = strings.ToLower(key)
	for _, s := range secretKeys {
		if strings.Contains(key, s) {
			return RedactSecret(val)
		}
	}
	return val
}
