package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/replydesk/replydesk/internal/ai"
	"github.com/replydesk/replydesk/internal/pkg/httputil"
	"github.com/replydesk/replydesk/internal/pkg/logger"
	"github.com/replydesk/replydesk/internal/pkg/validate"
	"github.com/replydesk/replydesk/internal/store"
)

// ListInquiries returns the owner's inquiries.
func (h *Handlers) ListInquiries(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}
	inquiries, err := h.store.ListInquiries(r.Context(), owner.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, inquiries)
}

// CreateInquiry runs the intake workflow: classify the message, store
// the inquiry with the classifier's category and priority, and when
// the classifier picked a template, send an automated reply. A failed
// classification degrades to defaults; the inquiry is always stored.
func (h *Handlers) CreateInquiry(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner := h.owner(w, r)
	if owner == nil {
		return
	}

	var in store.InsertInquiry
	if !httputil.Decode(w, r, &in) {
		return
	}
	in.UserID = owner.ID

	templates, err := h.store.ListTemplates(ctx, owner.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	refs := make([]ai.TemplateRef, 0, len(templates))
	for _, t := range templates {
		refs = append(refs, ai.TemplateRef{ID: t.ID, Name: t.Name, Category: t.Category})
	}

	subject := ""
	if in.Subject != nil {
		subject = *in.Subject
	}
	cls := h.ai.ClassifyInquiry(ctx, subject, in.Content, refs)
	if cls.Degraded {
		logger.Warn("inquiry classification degraded", "error", cls.Cause)
	}

	// The classifier is authoritative: whatever the client sent for
	// category and priority is overwritten.
	in.Category = &cls.Category
	in.Priority = cls.Priority
	in.AIClassification, _ = json.Marshal(cls)

	if err := validate.Struct(in); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	inquiry, err := h.store.CreateInquiry(ctx, in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	if cls.SuggestedTemplateID != "" {
		h.autoRespond(ctx, inquiry, cls.SuggestedTemplateID)
	}

	httputil.Created(w, inquiry)
}

// autoRespond drafts and stores an automated reply from the suggested
// template and bumps its usage counter. Nothing here can fail the
// intake; the inquiry already exists and a reply-less inquiry is a
// valid state.
func (h *Handlers) autoRespond(ctx context.Context, inquiry *store.Inquiry, templateID string) {
	tpl, err := h.store.GetTemplate(ctx, templateID)
	if err != nil || tpl == nil {
		if err != nil {
			logger.Warn("auto-respond template lookup failed", "templateId", templateID, "error", err)
		}
		return
	}

	gen := h.ai.GenerateResponse(ctx, inquiry.Content, tpl.Content, nil)
	if gen.Degraded {
		logger.Warn("auto-respond generation degraded", "inquiryId", inquiry.ID, "error", gen.Cause)
	}

	automated := true
	if _, err := h.store.CreateResponse(ctx, store.InsertResponse{
		InquiryID:   inquiry.ID,
		TemplateID:  &tpl.ID,
		Content:     gen.Content,
		IsAutomated: &automated,
	}); err != nil {
		logger.Warn("auto-respond store failed", "inquiryId", inquiry.ID, "error", err)
		return
	}

	used := tpl.TimesUsed + 1
	if _, err := h.store.UpdateTemplate(ctx, tpl.ID, store.UpdateTemplate{TimesUsed: &used}); err != nil {
		logger.Warn("auto-respond usage bump failed", "templateId", tpl.ID, "error", err)
	}
}
