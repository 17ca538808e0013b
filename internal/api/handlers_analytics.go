package api

import (
	"net/http"
	"strconv"

	"github.com/replydesk/replydesk/internal/pkg/httputil"
)

const (
	defaultAnalyticsDays = 30
	summaryWindowDays    = 7
)

// AnalyticsSummary is the dashboard headline card. Satisfaction is
// rescaled from the stored 0-100 value to the 0-5 stars the UI shows.
type AnalyticsSummary struct {
	ResponseRate         float64 `json:"responseRate"`
	TimeSaved            int     `json:"timeSaved"`
	CustomerSatisfaction float64 `json:"customerSatisfaction"`
	ActiveTemplates      int     `json:"activeTemplates"`
}

// ListAnalytics returns the owner's daily rollups within the trailing
// ?days=N window, defaulting to 30.
func (h *Handlers) ListAnalytics(w http.ResponseWriter, r *http.Request) {
	owner := h.owner(w, r)
	if owner == nil {
		return
	}

	days := defaultAnalyticsDays
	if raw := r.URL.Query().Get("days"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			days = n
		}
	}

	records, err := h.store.ListAnalytics(r.Context(), owner.ID, days)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	httputil.OK(w, records)
}

// AnalyticsSummaryHandler aggregates the trailing week into the
// dashboard card, serving from the Redis cache when one is configured.
func (h *Handlers) AnalyticsSummaryHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	owner := h.owner(w, r)
	if owner == nil {
		return
	}

	var cached AnalyticsSummary
	if h.summaryCache.GetSummary(ctx, owner.ID, &cached) {
		httputil.OK(w, cached)
		return
	}

	records, err := h.store.ListAnalytics(ctx, owner.ID, summaryWindowDays)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}
	templates, err := h.store.ListTemplates(ctx, owner.ID)
	if err != nil {
		httputil.InternalError(w, err)
		return
	}

	summary := AnalyticsSummary{}
	totalInquiries := 0
	automated := 0
	satisfactionSum := 0
	for _, rec := range records {
		totalInquiries += rec.TotalInquiries
		automated += rec.AutomatedResponses
		summary.TimeSaved += rec.TimeSaved
		satisfactionSum += rec.CustomerSatisfaction
	}
	// Zero records (or zero inquiries) must yield 0, not NaN.
	if totalInquiries > 0 {
		summary.ResponseRate = float64(automated) / float64(totalInquiries) * 100
	}
	if len(records) > 0 {
		summary.CustomerSatisfaction = float64(satisfactionSum) / float64(len(records)) / 20
	}
	for _, t := range templates {
		if t.IsActive {
			summary.ActiveTemplates++
		}
	}

	h.summaryCache.SetSummary(ctx, owner.ID, summary)
	httputil.OK(w, summary)
}
