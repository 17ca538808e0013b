package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/replydesk/replydesk/internal/pkg/httputil"
	"github.com/replydesk/replydesk/internal/pkg/logger"
	"github.com/replydesk/replydesk/internal/pkg/validate"
	"github.com/replydesk/replydesk/internal/store"
)

// ListIntegrations returns the owner's platform connections.
func (h *Handlers) ListIntegrations(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}
	integrations, err := h.store.ListIntegrations(r.Context(), owner.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, integrations)
}

// CreateIntegration registers a platform connection for the owner.
func (h *Handlers) CreateIntegration(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}

	var in store.InsertIntegration
	if !httputil.Decode(w, r, &in) {
		return
	}
	in.UserID = owner.ID
	if err := validate.Struct(in); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	integration, err := h.store.CreateIntegration(r.Context(), in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	logger.Info("integration registered", "platform", integration.Platform, "id", integration.ID)
	httputil.Created(w, integration)
}

// UpdateIntegration applies a partial update.
func (h *Handlers) UpdateIntegration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in store.UpdateIntegration
	if !httputil.Decode(w, r, &in) {
		return
	}

	integration, err := h.store.UpdateIntegration(r.Context(), id, in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if integration == nil {
		httputil.NotFound(w, "integration not found")
		return
	}
	httputil.OK(w, integration)
}
