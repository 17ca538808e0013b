package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/replydesk/replydesk/internal/pkg/httputil"
	"github.com/replydesk/replydesk/internal/pkg/validate"
	"github.com/replydesk/replydesk/internal/store"
)

// ListTemplates returns the owner's reply templates.
func (h *Handlers) ListTemplates(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}
	templates, err := h.store.ListTemplates(r.Context(), owner.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, templates)
}

// CreateTemplate adds a reply template for the owner. The client never
// sends userId; ownership comes from the resolved demo account. Content
// that does not parse as template syntax is rejected up front, since
// rendering would only ever fall back to the raw text.
func (h *Handlers) CreateTemplate(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}

	var in store.InsertTemplate
	if !httputil.Decode(w, r, &in) {
		return
	}
	in.UserID = owner.ID
	if err := validate.Struct(in); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}
	if err := h.renderer.Parse(in.Content); err != nil {
		httputil.BadRequest(w, "content is not valid template syntax: "+err.Error())
		return
	}

	tpl, err := h.store.CreateTemplate(r.Context(), in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.Created(w, tpl)
}

// UpdateTemplate applies a partial update.
func (h *Handlers) UpdateTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in store.UpdateTemplate
	if !httputil.Decode(w, r, &in) {
		return
	}
	if in.Content != nil {
		if err := h.renderer.Parse(*in.Content); err != nil {
			httputil.BadRequest(w, "content is not valid template syntax: "+err.Error())
			return
		}
	}

	tpl, err := h.store.UpdateTemplate(r.Context(), id, in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if tpl == nil {
		httputil.NotFound(w, "template not found")
		return
	}
	h.renderer.Invalidate(id)
	httputil.OK(w, tpl)
}

// DeleteTemplate removes a template. Deleting twice 404s the second
// time; responses that referenced the template keep their dangling id.
func (h *Handlers) DeleteTemplate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	removed, err := h.store.DeleteTemplate(r.Context(), id)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if !removed {
		httputil.NotFound(w, "template not found")
		return
	}
	h.renderer.Invalidate(id)
	httputil.NoContent(w)
}
