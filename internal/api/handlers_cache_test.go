package api

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replydesk/replydesk/internal/ai"
	"github.com/replydesk/replydesk/internal/cache"
	"github.com/replydesk/replydesk/internal/render"
	"github.com/replydesk/replydesk/internal/store"
)

// With a cache configured, the summary is served from Redis until the
// TTL runs out; writes landing inside the window aren't visible.
func TestAnalyticsSummaryCached(t *testing.T) {
	mr := miniredis.RunT(t)
	ctx := context.Background()

	st := store.NewMemStore()
	owner, err := st.CreateUser(ctx, store.InsertUser{Username: "demo", Password: "demo123"})
	require.NoError(t, err)

	c, err := cache.New(ctx, mr.Addr(), 5*time.Second)
	require.NoError(t, err)
	defer c.Close()

	env := &testEnv{
		store:   st,
		stub:    &stubProvider{},
		handler: SetupRoutes(NewHandlers(st, ai.NewGateway(), render.NewService(), c, "demo")),
		owner:   owner,
	}

	_, err = st.CreateAnalytics(ctx, store.InsertAnalytics{
		UserID: owner.ID, TotalInquiries: 10, AutomatedResponses: 5, TimeSaved: 30,
	})
	require.NoError(t, err)

	rec := env.do(t, "GET", "/api/analytics/summary", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	first := decodeBody[AnalyticsSummary](t, rec)
	assert.Equal(t, 30, first.TimeSaved)

	_, err = st.CreateAnalytics(ctx, store.InsertAnalytics{
		UserID: owner.ID, TotalInquiries: 10, AutomatedResponses: 10, TimeSaved: 60,
	})
	require.NoError(t, err)

	rec = env.do(t, "GET", "/api/analytics/summary", nil)
	cached := decodeBody[AnalyticsSummary](t, rec)
	assert.Equal(t, first, cached)

	mr.FastForward(6 * time.Second)
	rec = env.do(t, "GET", "/api/analytics/summary", nil)
	fresh := decodeBody[AnalyticsSummary](t, rec)
	assert.Equal(t, 90, fresh.TimeSaved)
}
