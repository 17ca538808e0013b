package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/replydesk/replydesk/internal/ai"
	"github.com/replydesk/replydesk/internal/api"
	"github.com/replydesk/replydesk/internal/cache"
	"github.com/replydesk/replydesk/internal/config"
	"github.com/replydesk/replydesk/internal/pkg/logger"
	"github.com/replydesk/replydesk/internal/render"
	"github.com/replydesk/replydesk/internal/store"
)

func main() {
	cfg, err := config.LoadFromEnv("config/config.yaml")
	if err != nil {
		logger.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if os.Getenv("DEBUG") == "true" {
		logger.SetLevel(logger.DEBUG)
	}

	ctx := context.Background()

	st := store.NewMemStore()
	owner := seedDemoData(ctx, st, cfg.Owner.Username, cfg.Owner.Password)

	gateway := buildGateway(ctx, cfg.AI)

	var summaryCache *cache.Cache
	if cfg.Redis.Addr != "" {
		summaryCache, err = cache.New(ctx, cfg.Redis.Addr, cfg.Redis.SummaryTTL())
		if err != nil {
			logger.Error("redis unavailable", "addr", cfg.Redis.Addr, "error", err)
			os.Exit(1)
		}
		defer summaryCache.Close()
		logger.Info("summary cache enabled", "addr", cfg.Redis.Addr)
	}

	handlers := api.NewHandlers(st, gateway, render.NewService(), summaryCache, owner.Username)
	server := api.NewServer(handlers)

	addr := fmt.Sprintf("%s:%d", cfg.Server.GetHost(), cfg.Server.Port)
	logger.Info("replydesk listening", "addr", addr, "owner", owner.Username)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe(addr)
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		logger.Error("server failed", "error", err)
		os.Exit(1)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", "error", err)
	}
}

// buildGateway assembles the provider chain from config. Order matters:
// the configured primary goes first, the rest are fallbacks.
func buildGateway(ctx context.Context, cfg config.AIConfig) *ai.Gateway {
	var providers []ai.Provider

	if cfg.AnthropicKey != "" {
		providers = append(providers, ai.NewAnthropicProvider(cfg.AnthropicKey, cfg.Model, cfg.Timeout()))
	}
	if cfg.OpenAIKey != "" {
		providers = append(providers, ai.NewOpenAIProvider(cfg.OpenAIKey, cfg.Model, cfg.Timeout()))
	}
	if cfg.Provider == "bedrock" {
		bedrock, err := ai.NewBedrockProvider(ctx, cfg.BedrockModelID, cfg.BedrockRegion)
		if err != nil {
			logger.Warn("bedrock provider unavailable", "error", err)
		} else {
			// Bedrock-first when explicitly selected.
			providers = append([]ai.Provider{bedrock}, providers...)
		}
	}

	if len(providers) == 0 {
		logger.Warn("no ai provider configured, classification will degrade to defaults")
	}
	return ai.NewGateway(providers...)
}

// seedDemoData creates the demo account plus a few starter templates
// and a week of analytics so the dashboard has something to show.
func seedDemoData(ctx context.Context, st store.Store, username, password string) *store.User {
	owner, err := st.CreateUser(ctx, store.InsertUser{Username: username, Password: password})
	if err != nil {
		logger.Error("failed to seed demo user", "error", err)
		os.Exit(1)
	}

	starters := []store.InsertTemplate{
		{
			UserID:    owner.ID,
			Name:      "Order status",
			Category:  "shipping",
			Content:   "Hi {{ customer_name | default: \"there\" }}, your order {{ order_id }} is on its way. You can track it any time from your account page.",
			Variables: []string{"customer_name", "order_id"},
		},
		{
			UserID:    owner.ID,
			Name:      "Refund confirmation",
			Category:  "billing",
			Content:   "Hi {{ customer_name | default: \"there\" }}, we've issued your refund. It should appear on your statement within 5-7 business days.",
			Variables: []string{"customer_name"},
		},
		{
			UserID:    owner.ID,
			Name:      "Pricing overview",
			Category:  "pricing",
			Content:   "Hi {{ customer_name | default: \"there\" }}, thanks for your interest! Our plans start at $29/month; I've attached the full pricing sheet.",
			Variables: []string{"customer_name"},
		},
	}
	for _, tpl := range starters {
		if _, err := st.CreateTemplate(ctx, tpl); err != nil {
			logger.Warn("failed to seed template", "name", tpl.Name, "error", err)
		}
	}

	if _, err := st.CreateAnalytics(ctx, store.InsertAnalytics{
		UserID:               owner.ID,
		TotalInquiries:       12,
		AutomatedResponses:   8,
		ManualResponses:      4,
		AverageResponseTime:  35,
		CustomerSatisfaction: 85,
		TimeSaved:            96,
	}); err != nil {
		logger.Warn("failed to seed analytics", "error", err)
	}

	logger.Info("seeded demo data", "username", username)
	return owner
}
