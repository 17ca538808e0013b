package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// SetupRoutes wires the REST surface onto a chi router.
func SetupRoutes(h *Handlers) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/health", h.HealthCheck)

	r.Route("/api", func(r chi.Router) {
		r.Route("/templates", func(r chi.Router) {
			r.Get("/", h.ListTemplates)
			r.Post("/", h.CreateTemplate)
			r.Put("/{id}", h.UpdateTemplate)
			r.Delete("/{id}", h.DeleteTemplate)
		})

		r.Route("/inquiries", func(r chi.Router) {
			r.Get("/", h.ListInquiries)
			r.Post("/", h.CreateInquiry)
		})

		r.Route("/responses", func(r chi.Router) {
			r.Get("/", h.ListResponses)
			r.Post("/", h.CreateResponse)
			r.Put("/{id}/feedback", h.UpdateResponseFeedback)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/", h.ListAnalytics)
			r.Get("/summary", h.AnalyticsSummaryHandler)
		})

		r.Route("/integrations", func(r chi.Router) {
			r.Get("/", h.ListIntegrations)
			r.Post("/", h.CreateIntegration)
			r.Put("/{id}", h.UpdateIntegration)
		})

		r.Route("/ai", func(r chi.Router) {
			r.Post("/classify", h.Classify)
			r.Post("/generate-response", h.GenerateResponseHandler)
			r.Post("/improve-template/{id}", h.ImproveTemplate)
			r.Post("/sentiment", h.Sentiment)
		})
	})

	return r
}
