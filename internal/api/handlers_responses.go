package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/replydesk/replydesk/internal/pkg/httputil"
	"github.com/replydesk/replydesk/internal/pkg/validate"
	"github.com/replydesk/replydesk/internal/store"
)

// ListResponses returns every response attached to one of the owner's
// inquiries.
func (h *Handlers) ListResponses(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}
	responses, err := h.store.ListResponsesByUser(r.Context(), owner.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, responses)
}

// CreateResponse records a reply, automated unless the caller says
// otherwise. The inquiry id is taken as given; nothing checks it
// references a stored inquiry.
func (h *Handlers) CreateResponse(w http.ResponseWriter, r *http.Request) {
	var in store.InsertResponse
	if !httputil.Decode(w, r, &in) {
		return
	}
	if err := validate.Struct(in); err != nil {
		httputil.BadRequest(w, err.Error())
		return
	}

	resp, err := h.store.CreateResponse(r.Context(), in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.Created(w, resp)
}

// UpdateResponseFeedback records customer feedback on a sent response.
// Only the feedback fields can change after the fact.
func (h *Handlers) UpdateResponseFeedback(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var in store.ResponseFeedback
	if !httputil.Decode(w, r, &in) {
		return
	}

	resp, err := h.store.UpdateResponseFeedback(r.Context(), id, in)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	if resp == nil {
		httputil.NotFound(w, "response not found")
		return
	}
	httputil.OK(w, resp)
}
