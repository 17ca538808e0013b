package render

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderFillsVariables(t *testing.T) {
	s := NewService()
	out := s.Render("", "Hi {{ customer_name }}, order {{ order_id }} shipped.", map[string]interface{}{
		"customer_name": "Dana",
		"order_id":      "A-1042",
	})
	assert.Equal(t, "Hi Dana, order A-1042 shipped.", out)
}

func TestRenderMissingVariableIsEmpty(t *testing.T) {
	s := NewService()
	out := s.Render("", "Hi {{ customer_name }}!", map[string]interface{}{})
	assert.Equal(t, "Hi !", out)
}

func TestRenderDefaultFilter(t *testing.T) {
	s := NewService()
	out := s.Render("", `Hi {{ customer_name | default: "there" }}!`, map[string]interface{}{})
	assert.Equal(t, "Hi there!", out)
}

func TestRenderBadTemplateFallsBack(t *testing.T) {
	s := NewService()
	raw := "Hi {% if %} broken"
	out := s.Render("", raw, nil)
	assert.Equal(t, raw, out)
}

func TestRenderUsesCache(t *testing.T) {
	s := NewService()
	tpl := "Hello {{ name }}"
	first := s.Render("tpl-1", tpl, map[string]interface{}{"name": "A"})
	assert.Equal(t, "Hello A", first)

	// Cached parse is keyed, not content-addressed: the stale entry
	// wins until invalidated.
	second := s.Render("tpl-1", "Changed {{ name }}", map[string]interface{}{"name": "B"})
	assert.Equal(t, "Hello B", second)

	s.Invalidate("tpl-1")
	third := s.Render("tpl-1", "Changed {{ name }}", map[string]interface{}{"name": "C"})
	assert.Equal(t, "Changed C", third)
}

func TestParse(t *testing.T) {
	s := NewService()
	require.NoError(t, s.Parse("Hi {{ name }}"))
	assert.Error(t, s.Parse("{% if %}"))
}

func TestExtractVariables(t *testing.T) {
	vars := ExtractVariables("Hi {{ customer_name }}, re {{ order_id }} and {{ customer_name }}.")
	assert.Equal(t, []string{"customer_name", "order_id"}, vars)
}
