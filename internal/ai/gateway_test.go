package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubProvider struct {
	reply      string
	err        error
	calls      int
	lastPrompt string
}

func (s *stubProvider) Name() string { return "stub" }

func (s *stubProvider) Complete(_ context.Context, _, prompt string) (string, error) {
	s.calls++
	s.lastPrompt = prompt
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestClassifyInquiry(t *testing.T) {
	stub := &stubProvider{reply: `{
		"category": "pricing",
		"priority": "urgent",
		"intent": "Customer wants a quote",
		"confidence": 0.9,
		"requiredVariables": ["customer_name"],
		"suggestedTemplateId": "tpl-1"
	}`}
	g := NewGateway(stub)

	c := g.ClassifyInquiry(context.Background(), "Quote", "Need a quote ASAP", []TemplateRef{
		{ID: "tpl-1", Name: "Pricing", Category: "pricing"},
	})
	assert.False(t, c.Degraded)
	assert.Equal(t, "pricing", c.Category)
	assert.Equal(t, "urgent", c.Priority)
	assert.Equal(t, 0.9, c.Confidence)
	assert.Equal(t, "tpl-1", c.SuggestedTemplateID)
}

func TestClassifyConfidenceClamped(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"category":"general","priority":"normal","intent":"x","confidence":1.5}`})
	c := g.ClassifyInquiry(context.Background(), "", "hi", nil)
	assert.Equal(t, 1.0, c.Confidence)

	g = NewGateway(&stubProvider{reply: `{"category":"general","priority":"normal","intent":"x","confidence":-0.2}`})
	c = g.ClassifyInquiry(context.Background(), "", "hi", nil)
	assert.Equal(t, 0.0, c.Confidence)
}

func TestClassifyFailureReturnsDefaults(t *testing.T) {
	g := NewGateway(&stubProvider{err: errors.New("boom")})
	c := g.ClassifyInquiry(context.Background(), "", "hi", nil)

	assert.True(t, c.Degraded)
	assert.Error(t, c.Cause)
	assert.Equal(t, "general", c.Category)
	assert.Equal(t, "normal", c.Priority)
	assert.Equal(t, "General customer inquiry", c.Intent)
	assert.Zero(t, c.Confidence)
	assert.Empty(t, c.RequiredVariables)
	assert.Empty(t, c.SuggestedTemplateID)
}

func TestClassifyNoProviders(t *testing.T) {
	g := NewGateway()
	c := g.ClassifyInquiry(context.Background(), "", "hi", nil)
	assert.True(t, c.Degraded)
	assert.ErrorIs(t, c.Cause, ErrNoProvider)
}

func TestClassifyStripsMarkdownFences(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "```json\n{\"category\":\"billing\",\"priority\":\"high\",\"intent\":\"refund\",\"confidence\":0.7}\n```"})
	c := g.ClassifyInquiry(context.Background(), "", "refund please", nil)
	assert.False(t, c.Degraded)
	assert.Equal(t, "billing", c.Category)
}

func TestClassifyInvalidPriorityFallsBack(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"category":"general","priority":"critical","intent":"x","confidence":0.5}`})
	c := g.ClassifyInquiry(context.Background(), "", "hi", nil)
	assert.Equal(t, "normal", c.Priority)
}

func TestClassifyDropsUnknownSuggestedTemplate(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"category":"general","priority":"normal","intent":"x","confidence":0.5,"suggestedTemplateId":"made-up"}`})
	c := g.ClassifyInquiry(context.Background(), "", "hi", []TemplateRef{{ID: "tpl-1"}})
	assert.Empty(t, c.SuggestedTemplateID)
}

func TestClassifyFallsThroughProviders(t *testing.T) {
	bad := &stubProvider{err: errors.New("down")}
	good := &stubProvider{reply: `{"category":"general","priority":"low","intent":"x","confidence":0.4}`}
	g := NewGateway(bad, good)

	c := g.ClassifyInquiry(context.Background(), "", "hi", nil)
	assert.False(t, c.Degraded)
	assert.Equal(t, "low", c.Priority)
	assert.Equal(t, 1, bad.calls)
	assert.Equal(t, 1, good.calls)
}

func TestGenerateResponse(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"content":"Hi Dana, here is your quote.","confidence":0.8,"variables":{"customer_name":"Dana"}}`})
	gen := g.GenerateResponse(context.Background(), "Need a quote", "Hi {{ customer_name }}", map[string]string{"customer_name": "Dana"})

	assert.False(t, gen.Degraded)
	assert.Equal(t, "Hi Dana, here is your quote.", gen.Content)
	assert.Equal(t, 0.8, gen.Confidence)
	assert.Equal(t, "Dana", gen.Variables["customer_name"])
}

func TestGenerateResponseFailureFallsBackToTemplate(t *testing.T) {
	g := NewGateway(&stubProvider{err: errors.New("down")})
	gen := g.GenerateResponse(context.Background(), "help", "Hi {{ customer_name }}", nil)

	assert.True(t, gen.Degraded)
	assert.Equal(t, "Hi {{ customer_name }}", gen.Content)
	assert.Zero(t, gen.Confidence)
	assert.NotNil(t, gen.Variables)
	assert.Empty(t, gen.Variables)
}

func TestGenerateResponseMalformedJSON(t *testing.T) {
	g := NewGateway(&stubProvider{reply: "sorry, I can't do JSON today"})
	gen := g.GenerateResponse(context.Background(), "help", "template text", nil)
	assert.True(t, gen.Degraded)
	assert.Equal(t, "template text", gen.Content)
}

func TestAnalyzeSentiment(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"rating":5,"confidence":0.9}`})
	s := g.AnalyzeSentiment(context.Background(), "This is great, thank you!")
	assert.False(t, s.Degraded)
	assert.Equal(t, 5, s.Rating)
	assert.Equal(t, 0.9, s.Confidence)
}

func TestAnalyzeSentimentClampsRating(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"rating":9,"confidence":0.5}`})
	s := g.AnalyzeSentiment(context.Background(), "x")
	assert.Equal(t, 5, s.Rating)

	g = NewGateway(&stubProvider{reply: `{"rating":0,"confidence":0.5}`})
	s = g.AnalyzeSentiment(context.Background(), "x")
	assert.Equal(t, 1, s.Rating)
}

func TestAnalyzeSentimentFailureIsNeutral(t *testing.T) {
	g := NewGateway(&stubProvider{err: errors.New("down")})
	s := g.AnalyzeSentiment(context.Background(), "x")
	assert.True(t, s.Degraded)
	assert.Equal(t, 3, s.Rating)
	assert.Zero(t, s.Confidence)
}

func TestImproveTemplate(t *testing.T) {
	g := NewGateway(&stubProvider{reply: `{"improvedContent":"Better text","improvements":["warmer greeting"],"confidence":0.7}`})
	imp := g.ImproveTemplate(context.Background(), "Old text", nil)
	assert.False(t, imp.Degraded)
	assert.Equal(t, "Better text", imp.ImprovedContent)
	assert.Equal(t, []string{"warmer greeting"}, imp.Improvements)
}

func TestImproveTemplatePromptNamesPlaceholders(t *testing.T) {
	stub := &stubProvider{reply: `{"improvedContent":"x","improvements":[],"confidence":0.5}`}
	g := NewGateway(stub)

	g.ImproveTemplate(context.Background(), "Hi {{ customer_name }}, order {{ order_id }} shipped.", nil)
	assert.Contains(t, stub.lastPrompt, "{{ customer_name }}, {{ order_id }}")

	// No placeholders falls back to the generic instruction.
	g.ImproveTemplate(context.Background(), "Plain text reply.", nil)
	assert.Contains(t, stub.lastPrompt, "Keep the {{ placeholder }} variables intact.")
}

func TestImproveTemplateFailureKeepsOriginal(t *testing.T) {
	g := NewGateway(&stubProvider{err: errors.New("down")})
	imp := g.ImproveTemplate(context.Background(), "Original", nil)
	assert.True(t, imp.Degraded)
	assert.Equal(t, "Original", imp.ImprovedContent)
	assert.Empty(t, imp.Improvements)
	assert.Zero(t, imp.Confidence)
}

func TestAggregateHistory(t *testing.T) {
	four := 4
	two := 2

	rate, avg := aggregateHistory([]HistoryRecord{
		{Success: true, Rating: &four},
		{Success: false, Rating: &two},
		{Success: true}, // unrated, excluded from the rating mean
	})
	assert.InDelta(t, 2.0/3.0, rate, 1e-9)
	assert.InDelta(t, 3.0, avg, 1e-9)
}

func TestAggregateHistoryEmpty(t *testing.T) {
	rate, avg := aggregateHistory(nil)
	assert.Zero(t, rate)
	assert.Zero(t, avg)

	rate, avg = aggregateHistory([]HistoryRecord{{Success: true}})
	require.Equal(t, 1.0, rate)
	assert.Zero(t, avg)
}
