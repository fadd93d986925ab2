package main

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	gogithub "github.com/google/go-github/v75/github"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	ghplatform "github.com/repolens/repolens/internal/platform/github"
	"github.com/repolens/repolens/internal/platform/logger"
	"github.com/repolens/repolens/internal/platform/telemetry"
	"github.com/repolens/repolens/internal/platform/validation"
	"github.com/repolens/repolens/internal/summary"
	"github.com/repolens/repolens/internal/summary/adapters"
	"github.com/repolens/repolens/internal/summary/store"
	"github.com/repolens/repolens/schemas"
)

func main() {
	slog := logger.New()

	// --- Observability ---

	// Default the service name before any OTel init.
	if os.Getenv("OTEL_SERVICE_NAME") == "" {
		os.Setenv("OTEL_SERVICE_NAME", "repolens") //nolint:errcheck
	}

	otelEnabled := os.Getenv("OTEL_ENABLED") == "true"
	ctx := context.Background()
	tel, err := telemetry.New(ctx, otelEnabled)
	if err != nil {
		slog.Error("telemetry init failed", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tel.Shutdown(shutdownCtx); err != nil {
			slog.Error("telemetry shutdown failed", "error", err)
		}
	}()

	// --- Selection rules ---

	rules := summary.DefaultRules()
	if path := os.Getenv("RULES_FILE"); path != "" {
		rules, err = summary.LoadRules(path)
		if err != nil {
			slog.Error("rules load failed", "path", path, "error", err)
			os.Exit(1)
		}
		slog.Info("loaded rules overrides", "path", path)
	}

	// --- Platform: GitHub ---

	gh, err := newGitHubClient()
	if err != nil {
		slog.Error("github client init failed", "error", err)
		os.Exit(1)
	}
	host := adapters.NewGitHubHost(gh, os.Getenv("GITHUB_RAW_URL"))

	// --- Platform: OpenAI ---

	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		slog.Error("OPENAI_API_KEY is required")
		os.Exit(1)
	}
	summarizer := adapters.NewOpenAISummarizer(apiKey, os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL"))

	// --- Platform: Redis (optional summary cache) ---

	var cache summary.ResultCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		ttl := 1 * time.Hour
		if v := os.Getenv("SUMMARY_CACHE_TTL"); v != "" {
			parsed, err := time.ParseDuration(v)
			if err != nil {
				slog.Error("invalid SUMMARY_CACHE_TTL", "value", v, "error", err)
				os.Exit(1)
			}
			ttl = parsed
		}
		rdb := redis.NewClient(&redis.Options{Addr: addr})
		cache = store.NewRedisResultCache(rdb, ttl)
		slog.Info("summary cache enabled", "addr", addr, "ttl", ttl)
	}

	// --- Service + HTTP ---

	svc := summary.NewService(host, summarizer, cache, rules, slog)

	router := gin.New()

	validator, err := validation.New(schemas.OpenAPISpec)
	if err != nil {
		slog.Error("openapi validation middleware init failed", "error", err)
		os.Exit(1)
	}

	router.Use(gin.Recovery(), otelgin.Middleware("repolens"), validator)
	adapters.RegisterRoutes(router, svc, slog)

	port := envOr("PORT", "8080")
	slog.Info("starting repolens", "port", port)
	if err := router.Run(":" + port); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

// newGitHubClient builds the GitHub API client from env. GITHUB_AUTH=app
// selects GitHub App installation auth; anything else uses a personal
// access token (GITHUB_TOKEN, optional for public repositories).
func newGitHubClient() (*gogithub.Client, error) {
	baseURL := os.Getenv("GITHUB_API_URL")

	if os.Getenv("GITHUB_AUTH") == "app" {
		appID, err := strconv.ParseInt(os.Getenv("GITHUB_APP_ID"), 10, 64)
		if err != nil {
			return nil, err
		}
		installationID, err := strconv.ParseInt(os.Getenv("GITHUB_APP_INSTALLATION_ID"), 10, 64)
		if err != nil {
			return nil, err
		}
		return ghplatform.NewAppClient(appID, installationID, os.Getenv("GITHUB_APP_PRIVATE_KEY"), baseURL)
	}

	return ghplatform.NewTokenClient(os.Getenv("GITHUB_TOKEN"), baseURL), nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
