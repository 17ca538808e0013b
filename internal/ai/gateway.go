package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/replydesk/replydesk/internal/pkg/logger"
	"github.com/replydesk/replydesk/internal/render"
)

// Gateway fans a completion request across the configured providers in
// order, falling back to the next on failure. With no providers, or
// when the last provider fails, each operation returns its documented
// degraded result instead of an error.
type Gateway struct {
	providers []Provider
}

func NewGateway(providers ...Provider) *Gateway {
	return &Gateway{providers: providers}
}

// TemplateRef is the subset of a reply template the classifier sees.
type TemplateRef struct {
	ID       string
	Name     string
	Category string
}

// Classification is the classify-inquiry payload. Degraded and Cause
// are diagnostics, never serialized.
type Classification struct {
	Category            string   `json:"category"`
	Priority            string   `json:"priority"`
	Intent              string   `json:"intent"`
	Confidence          float64  `json:"confidence"`
	RequiredVariables   []string `json:"requiredVariables"`
	SuggestedTemplateID string   `json:"suggestedTemplateId,omitempty"`

	Degraded bool  `json:"-"`
	Cause    error `json:"-"`
}

// Generation is the generate-response payload.
type Generation struct {
	Content    string            `json:"content"`
	Confidence float64           `json:"confidence"`
	Variables  map[string]string `json:"variables"`

	Degraded bool  `json:"-"`
	Cause    error `json:"-"`
}

// Sentiment is the analyze-sentiment payload.
type Sentiment struct {
	Rating     int     `json:"rating"`
	Confidence float64 `json:"confidence"`

	Degraded bool  `json:"-"`
	Cause    error `json:"-"`
}

// Improvement is the improve-template payload.
type Improvement struct {
	ImprovedContent string   `json:"improvedContent"`
	Improvements    []string `json:"improvements"`
	Confidence      float64  `json:"confidence"`

	Degraded bool  `json:"-"`
	Cause    error `json:"-"`
}

// HistoryRecord is one historical response outcome fed to
// ImproveTemplate. Rating is nil when the customer never rated.
type HistoryRecord struct {
	Success bool
	Rating  *int
}

var validPriorities = map[string]bool{
	"low": true, "normal": true, "high": true, "urgent": true,
}

// complete tries each provider in order and returns the first success.
func (g *Gateway) complete(ctx context.Context, system, prompt string) (string, error) {
	if len(g.providers) == 0 {
		return "", ErrNoProvider
	}
	var lastErr error
	for _, p := range g.providers {
		out, err := p.Complete(ctx, system, prompt)
		if err == nil {
			return out, nil
		}
		logger.Warn("ai provider failed", "provider", p.Name(), "error", err)
		lastErr = err
	}
	return "", lastErr
}

const classifySystem = "You are a customer service assistant that classifies incoming inquiries. Always respond with valid JSON and nothing else."

// ClassifyInquiry categorizes an inquiry and, when one of the known
// templates fits, suggests it for an automated reply. Never returns an
// error; a provider failure yields the all-defaults result.
func (g *Gateway) ClassifyInquiry(ctx context.Context, subject, content string, templates []TemplateRef) *Classification {
	var sb strings.Builder
	sb.WriteString("Classify this customer inquiry.\n\n")
	if subject != "" {
		sb.WriteString("Subject: " + subject + "\n")
	}
	sb.WriteString("Content: " + content + "\n\nAvailable reply templates:\n")
	if len(templates) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, t := range templates {
		sb.WriteString(fmt.Sprintf("- id=%s name=%q category=%s\n", t.ID, t.Name, t.Category))
	}
	sb.WriteString(`
Respond with JSON only:
{
  "category": "billing|technical|shipping|pricing|general",
  "priority": "low|normal|high|urgent",
  "intent": "one sentence describing what the customer wants",
  "confidence": 0.0,
  "requiredVariables": ["names of template variables needed"],
  "suggestedTemplateId": "id of the best matching template, or omit if none fits"
}`)

	raw, err := g.complete(ctx, classifySystem, sb.String())
	if err != nil {
		return fallbackClassification(err)
	}

	var c Classification
	if err := json.Unmarshal([]byte(stripFences(raw)), &c); err != nil {
		return fallbackClassification(fmt.Errorf("malformed classification: %w", err))
	}
	if c.Category == "" {
		c.Category = "general"
	}
	if !validPriorities[c.Priority] {
		c.Priority = "normal"
	}
	if c.Intent == "" {
		c.Intent = "General customer inquiry"
	}
	c.Confidence = clamp01(c.Confidence)
	if c.RequiredVariables == nil {
		c.RequiredVariables = []string{}
	}
	// Models sometimes invent ids; only keep a suggestion we offered.
	if c.SuggestedTemplateID != "" {
		known := false
		for _, t := range templates {
			if t.ID == c.SuggestedTemplateID {
				known = true
				break
			}
		}
		if !known {
			c.SuggestedTemplateID = ""
		}
	}
	return &c
}

func fallbackClassification(cause error) *Classification {
	return &Classification{
		Category:          "general",
		Priority:          "normal",
		Intent:            "General customer inquiry",
		Confidence:        0,
		RequiredVariables: []string{},
		Degraded:          true,
		Cause:             cause,
	}
}

const generateSystem = "You are a customer service assistant that drafts replies from templates. Always respond with valid JSON and nothing else."

// GenerateResponse drafts a reply from a template for a specific
// inquiry. On failure the content falls back to the template as
// given, so a reply can still go out.
func (g *Gateway) GenerateResponse(ctx context.Context, inquiryContent, templateContent string, variables map[string]string) *Generation {
	var sb strings.Builder
	sb.WriteString("Draft a reply to this customer inquiry using the template below. Fill in placeholders and adjust tone to match the inquiry.\n\n")
	sb.WriteString("Inquiry: " + inquiryContent + "\n\nTemplate:\n" + templateContent + "\n")
	if len(variables) > 0 {
		sb.WriteString("\nKnown variable values:\n")
		for k, v := range variables {
			sb.WriteString(fmt.Sprintf("- %s: %s\n", k, v))
		}
	}
	sb.WriteString(`
Respond with JSON only:
{
  "content": "the finished reply text",
  "confidence": 0.0,
  "variables": {"placeholder": "value used"}
}`)

	raw, err := g.complete(ctx, generateSystem, sb.String())
	if err != nil {
		return fallbackGeneration(templateContent, err)
	}

	var gen Generation
	if err := json.Unmarshal([]byte(stripFences(raw)), &gen); err != nil {
		return fallbackGeneration(templateContent, fmt.Errorf("malformed generation: %w", err))
	}
	if gen.Content == "" {
		gen.Content = templateContent
	}
	gen.Confidence = clamp01(gen.Confidence)
	if gen.Variables == nil {
		gen.Variables = map[string]string{}
	}
	return &gen
}

func fallbackGeneration(templateContent string, cause error) *Generation {
	return &Generation{
		Content:    templateContent,
		Confidence: 0,
		Variables:  map[string]string{},
		Degraded:   true,
		Cause:      cause,
	}
}

const sentimentSystem = "You rate the sentiment of customer messages. Always respond with valid JSON and nothing else."

// AnalyzeSentiment rates a piece of text from 1 (very negative) to 5
// (very positive). Failure yields the neutral rating 3.
func (g *Gateway) AnalyzeSentiment(ctx context.Context, text string) *Sentiment {
	prompt := "Rate the sentiment of this customer message on a 1-5 scale (1 = very negative, 5 = very positive).\n\nMessage: " + text + `

Respond with JSON only:
{"rating": 3, "confidence": 0.0}`

	raw, err := g.complete(ctx, sentimentSystem, prompt)
	if err != nil {
		return &Sentiment{Rating: 3, Confidence: 0, Degraded: true, Cause: err}
	}

	var s Sentiment
	if err := json.Unmarshal([]byte(stripFences(raw)), &s); err != nil {
		return &Sentiment{Rating: 3, Confidence: 0, Degraded: true, Cause: fmt.Errorf("malformed sentiment: %w", err)}
	}
	s.Rating = clampRating(s.Rating)
	s.Confidence = clamp01(s.Confidence)
	return &s
}

const improveSystem = "You improve customer service reply templates based on their track record. Always respond with valid JSON and nothing else."

// ImproveTemplate asks for a rewrite of a template informed by how its
// past uses performed. Failure yields the original content unchanged.
func (g *Gateway) ImproveTemplate(ctx context.Context, content string, history []HistoryRecord) *Improvement {
	successRate, avgRating := aggregateHistory(history)

	keep := "Keep the {{ placeholder }} variables intact."
	if vars := render.ExtractVariables(content); len(vars) > 0 {
		keep = fmt.Sprintf("Keep these placeholders intact: {{ %s }}.", strings.Join(vars, " }}, {{ "))
	}

	prompt := fmt.Sprintf(`Improve this customer service reply template.

Template:
%s

Track record: used %d times, %.0f%% marked successful, average customer rating %.1f/5 (0 means unrated).

%s Respond with JSON only:
{
  "improvedContent": "the rewritten template",
  "improvements": ["what changed and why it helps"],
  "confidence": 0.0
}`, content, len(history), successRate*100, avgRating, keep)

	raw, err := g.complete(ctx, improveSystem, prompt)
	if err != nil {
		return fallbackImprovement(content, err)
	}

	var imp Improvement
	if err := json.Unmarshal([]byte(stripFences(raw)), &imp); err != nil {
		return fallbackImprovement(content, fmt.Errorf("malformed improvement: %w", err))
	}
	if imp.ImprovedContent == "" {
		imp.ImprovedContent = content
	}
	if imp.Improvements == nil {
		imp.Improvements = []string{}
	}
	imp.Confidence = clamp01(imp.Confidence)
	return &imp
}

func fallbackImprovement(content string, cause error) *Improvement {
	return &Improvement{
		ImprovedContent: content,
		Improvements:    []string{},
		Confidence:      0,
		Degraded:        true,
		Cause:           cause,
	}
}

// aggregateHistory reduces response outcomes to a success fraction and
// a mean rating. Unrated records stay out of the rating denominator;
// an empty history averages to 0, not NaN.
func aggregateHistory(history []HistoryRecord) (successRate, avgRating float64) {
	if len(history) == 0 {
		return 0, 0
	}
	successes := 0
	ratingSum := 0
	rated := 0
	for _, h := range history {
		if h.Success {
			successes++
		}
		if h.Rating != nil {
			ratingSum += *h.Rating
			rated++
		}
	}
	successRate = float64(successes) / float64(len(history))
	if rated > 0 {
		avgRating = float64(ratingSum) / float64(rated)
	}
	return successRate, avgRating
}
