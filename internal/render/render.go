// Package render fills customer-service reply templates with Liquid.
// Placeholders use the usual {{ customer_name }} syntax; rendering is
// lax so a half-filled context still produces a sendable reply.
package render

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/osteele/liquid"

	"github.com/replydesk/replydesk/internal/pkg/logger"
)

// Service renders reply templates, caching parsed templates by key.
type Service struct {
	engine *liquid.Engine
	cache  sync.Map // map[string]*liquid.Template
}

// NewService builds an engine with the filters reply authors reach for.
func NewService() *Service {
	s := &Service{engine: liquid.NewEngine()}
	s.registerFilters()
	return s
}

func (s *Service) registerFilters() {
	// {{ customer_name | default: "there" }}
	s.engine.RegisterFilter("default", func(value interface{}, fallback string) interface{} {
		if value == nil {
			return fallback
		}
		str := fmt.Sprintf("%v", value)
		if str == "" || str == "<nil>" {
			return fallback
		}
		return value
	})

	s.engine.RegisterFilter("capitalize", func(str string) string {
		if len(str) == 0 {
			return str
		}
		return strings.ToUpper(string(str[0])) + str[1:]
	})

	// {{ order_summary | truncate: 80 }}
	s.engine.RegisterFilter("truncate", func(str string, length int) string {
		if len(str) <= length {
			return str
		}
		if length <= 3 {
			return str[:length]
		}
		return str[:length-3] + "..."
	})
}

// Parse reports whether a template string is valid Liquid.
func (s *Service) Parse(tpl string) error {
	_, err := s.engine.ParseString(tpl)
	return err
}

// Render fills tpl with the given variables. Parse and render errors
// fall back to the raw template text so a broken placeholder never
// blocks a reply going out.
func (s *Service) Render(cacheKey, tpl string, vars map[string]interface{}) string {
	if cacheKey != "" {
		if cached, ok := s.cache.Load(cacheKey); ok {
			if out, err := cached.(*liquid.Template).RenderString(vars); err == nil {
				return out
			}
		}
	}

	parsed, err := s.engine.ParseString(tpl)
	if err != nil {
		logger.Warn("template parse failed, using raw content", "error", err)
		return tpl
	}
	if cacheKey != "" {
		s.cache.Store(cacheKey, parsed)
	}

	out, err := parsed.RenderString(vars)
	if err != nil {
		logger.Warn("template render failed, using raw content", "error", err)
		return tpl
	}
	return out
}

// Invalidate drops the cached parse for a template, for use after an
// update or delete.
func (s *Service) Invalidate(cacheKey string) {
	s.cache.Delete(cacheKey)
}

var placeholderPattern = regexp.MustCompile(`\{\{\s*([a-zA-Z_][a-zA-Z0-9_]*)`)

// ExtractVariables lists the distinct placeholder names used in a
// template, in order of first appearance.
func ExtractVariables(tpl string) []string {
	seen := make(map[string]bool)
	vars := []string{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(tpl, -1) {
		name := m[1]
		if seen[name] {
			continue
		}
		seen[name] = true
		vars = append(vars, name)
	}
	return vars
}
