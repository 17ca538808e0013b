// Package ai talks to external text models for inquiry classification,
// reply generation, sentiment scoring and template improvement. The
// gateway absorbs provider failures: callers always get a usable
// payload, degraded to documented defaults when every provider fails.
package ai

import (
	"context"
	"errors"
	"strings"
)

// Provider is a single text-completion backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, system, prompt string) (string, error)
}

// ErrNoProvider is the degraded cause when no provider is configured.
var ErrNoProvider = errors.New("no ai provider configured")

// stripFences removes a markdown code fence wrapper, which models add
// around JSON output no matter how firmly the prompt says not to.
func stripFences(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```json") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	} else if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
		content = strings.TrimSpace(content)
	}
	return content
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func clampRating(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
