package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/replydesk/replydesk/internal/ai"
	"github.com/replydesk/replydesk/internal/pkg/httputil"
	"github.com/replydesk/replydesk/internal/pkg/logger"
)

type classifyRequest struct {
	Subject string `json:"subject"`
	Content string `json:"content"`
}

type generateRequest struct {
	InquiryContent string            `json:"inquiryContent"`
	TemplateID     string            `json:"templateId"`
	Variables      map[string]string `json:"variables"`
}

type sentimentRequest struct {
	Text string `json:"text"`
}

// Classify runs the classifier directly, for the dashboard's manual
// triage view. Gateway failures are absorbed into a degraded payload,
// so this endpoint only 500s on genuinely unexpected errors.
func (h *Handlers) Classify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req classifyRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	var refs []ai.TemplateRef
	if u, err := h.store.GetUserByUsername(ctx, h.ownerUsername); err == nil && u != nil {
		if templates, err := h.store.ListTemplates(ctx, u.ID); err == nil {
			for _, t := range templates {
				refs = append(refs, ai.TemplateRef{ID: t.ID, Name: t.Name, Category: t.Category})
			}
		}
	}

	cls := h.ai.ClassifyInquiry(ctx, req.Subject, req.Content, refs)
	if cls.Degraded {
		logger.Warn("classify degraded", "error", cls.Cause)
	}
	httputil.OK(w, cls)
}

// GenerateResponseHandler drafts a reply from a stored template. When
// variables are supplied the template is rendered before the model
// sees it, so the degraded fallback is already filled in.
func (h *Handlers) GenerateResponseHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req generateRequest
	if !httputil.Decode(w, r, &req) {
		return
	}

	tpl, err := h.store.GetTemplate(ctx, req.TemplateID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if tpl == nil {
		httputil.NotFound(w, "template not found")
		return
	}

	content := tpl.Content
	if len(req.Variables) > 0 {
		vars := make(map[string]interface{}, len(req.Variables))
		for k, v := range req.Variables {
			vars[k] = v
		}
		content = h.renderer.Render(tpl.ID, tpl.Content, vars)
	}

	gen := h.ai.GenerateResponse(ctx, req.InquiryContent, content, req.Variables)
	if gen.Degraded {
		logger.Warn("generate-response degraded", "templateId", tpl.ID, "error", gen.Cause)
	}
	httputil.OK(w, gen)
}

// ImproveTemplate asks the model to rewrite a template using the
// outcomes of every response ever sent from it.
func (h *Handlers) ImproveTemplate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	id := chi.URLParam(r, "id")

	tpl, err := h.store.GetTemplate(ctx, id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if tpl == nil {
		httputil.NotFound(w, "template not found")
		return
	}

	responses, err := h.store.ListResponsesByTemplate(ctx, id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	history := make([]ai.HistoryRecord, 0, len(responses))
	for _, resp := range responses {
		history = append(history, ai.HistoryRecord{
			Success: resp.Success != nil && *resp.Success,
			Rating:  resp.CustomerFeedback,
		})
	}

	imp := h.ai.ImproveTemplate(ctx, tpl.Content, history)
	if imp.Degraded {
		logger.Warn("improve-template degraded", "templateId", id, "error", imp.Cause)
	}
	httputil.OK(w, imp)
}

// Sentiment scores a piece of customer text on the 1-5 scale.
func (h *Handlers) Sentiment(w http.ResponseWriter, r *http.Request) {
	var req sentimentRequest
	if !httputil.Decode(w, r, &req) {
		return
	}
	if req.Text == "" {
		httputil.BadRequest(w, "text is required")
		return
	}

	s := h.ai.AnalyzeSentiment(r.Context(), req.Text)
	if s.Degraded {
		logger.Warn("sentiment degraded", "error", s.Cause)
	}
	httputil.OK(w, s)
}
