package api

import (
	"net/http"

	"github.com/replydesk/replydesk/internal/ai"
	"github.com/replydesk/replydesk/internal/cache"
	"github.com/replydesk/replydesk/internal/pkg/httputil"
	"github.com/replydesk/replydesk/internal/render"
	"github.com/replydesk/replydesk/internal/store"
)

// Handlers carries the dependencies the REST surface needs. Everything
// is owner-scoped: requests resolve the single demo account by
// username and operate on its records.
type Handlers struct {
	store         store.Store
	ai            *ai.Gateway
	renderer      *render.Service
	summaryCache  *cache.Cache
	ownerUsername string
}

func NewHandlers(st store.Store, gw *ai.Gateway, renderer *render.Service, summaryCache *cache.Cache, ownerUsername string) *Handlers {
	return &Handlers{
		store:         st,
		ai:            gw,
		renderer:      renderer,
		summaryCache:  summaryCache,
		ownerUsername: ownerUsername,
	}
}

// owner resolves the demo account. On failure it writes the response
// itself and returns nil; the caller just returns.
func (h *Handlers) owner(w http.ResponseWriter, r *http.Request) *store.User {
	u, err := h.store.GetUserByUsername(r.Context(), h.ownerUsername)
	if err != nil {
		httputil.InternalError(w, err)
		return nil
	}
	if u == nil {
		httputil.NotFound(w, "demo user not found")
		return nil
	}
	return u
}

// HealthCheck reports liveness.
func (h *Handlers) HealthCheck(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, map[string]string{
		"status":  "healthy",
		"service": "replydesk",
	})
}
