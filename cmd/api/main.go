package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"edupal/config"
	_ "edupal/docs" // Swagger docs
	"edupal/internal/chat/usecase"
	"edupal/internal/httpserver"
	"edupal/internal/ratelimit"
	"edupal/pkg/bhashini"
	"edupal/pkg/gemini"
	"edupal/pkg/llmprovider"
	"edupal/pkg/log"
	"edupal/pkg/qdrant"
	"edupal/pkg/scope"
	"edupal/pkg/voyage"
	"edupal/pkg/youtube"
)

// @title       EduPal API
// @description Parent-facing school assistant: record lookups, document Q&A, voice and image queries.
// @version     1
// @host        localhost:8080
// @schemes     http
// @securityDefinitions.apikey BearerAuth
// @in          header
// @name        Authorization
func main() {
	// 1. Configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Failed to load config: ", err)
		return
	}

	// 2. Logger
	logger := log.Init(log.ZapConfig{
		Level:        cfg.Logger.Level,
		Mode:         cfg.Logger.Mode,
		Encoding:     cfg.Logger.Encoding,
		ColorEnabled: cfg.Logger.ColorEnabled,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "Starting EduPal...")
	logger.Infof(ctx, "Environment: %s", cfg.Environment.Name)

	// 3. Postgres
	db, err := sql.Open("postgres", cfg.Postgres.DSN)
	if err != nil {
		logger.Error(ctx, "Failed to open postgres connection: ", err)
		return
	}
	defer db.Close()

	if err := db.PingContext(ctx); err != nil {
		logger.Error(ctx, "Failed to ping postgres: ", err)
		return
	}
	logger.Info(ctx, "Postgres connected")

	// 4. Qdrant (optional, falls back to the in-memory vector store)
	var qdrantClient *qdrant.Client
	if cfg.Qdrant.URL != "" {
		qdrantClient = qdrant.NewClient(cfg.Qdrant.URL)
		err = qdrantClient.CreateCollection(ctx, qdrant.CreateCollectionRequest{
			Name: cfg.Qdrant.CollectionName,
			Vectors: qdrant.VectorConfig{
				Size:     cfg.Qdrant.VectorSize,
				Distance: "Cosine",
			},
		})
		if err != nil {
			logger.Warnf(ctx, "Qdrant collection setup: %v", err)
		}
	}

	// 5. LLM providers
	providers, err := llmprovider.InitializeProviders(&cfg.LLM)
	if err != nil {
		logger.Error(ctx, "Failed to initialize LLM providers: ", err)
		return
	}
	llmManager := llmprovider.NewManager(providers, &llmprovider.Config{
		FallbackEnabled: cfg.LLM.FallbackEnabled,
		RetryDelay:      parseDurationOr(cfg.LLM.RetryDelay, time.Second),
		MaxTotalTimeout: parseDurationOr(cfg.LLM.MaxTotalTimeout, 60*time.Second),
	}, logger)
	logger.Infof(ctx, "LLM providers initialized: %d", len(providers))

	// 6. Vision: reuse the gemini provider's key for multimodal queries
	var vision gemini.IGemini
	if key := geminiAPIKey(cfg.LLM.Providers); key != "" {
		vision, err = gemini.New(gemini.Config{APIKey: key})
		if err != nil {
			logger.Warnf(ctx, "Vision client not available: %v", err)
		}
	} else {
		logger.Warn(ctx, "No gemini provider configured, image queries disabled")
	}

	// 7. Embeddings
	var embedder voyage.IVoyage
	if cfg.Voyage.APIKey != "" {
		voyageClient, vErr := voyage.New(cfg.Voyage.APIKey)
		if vErr != nil {
			logger.Warnf(ctx, "Voyage client not available: %v", vErr)
		} else {
			if cfg.Voyage.Model != "" {
				voyageClient.WithModel(cfg.Voyage.Model)
			}
			embedder = voyageClient
		}
	} else {
		logger.Warn(ctx, "VOYAGE_API_KEY missing, document ingestion disabled")
	}

	// 8. Speech and translation
	var speech bhashini.IBhashini
	if cfg.Bhashini.PipelineID != "" && cfg.Bhashini.APIKey != "" {
		speech, err = bhashini.New(bhashini.Config{
			PipelineConfigEndpoint: cfg.Bhashini.PipelineConfigEndpoint,
			InferenceEndpoint:      cfg.Bhashini.InferenceEndpoint,
			PipelineID:             cfg.Bhashini.PipelineID,
			UserID:                 cfg.Bhashini.UserID,
			APIKey:                 cfg.Bhashini.APIKey,
			Timeout:                cfg.Bhashini.Timeout,
		})
		if err != nil {
			logger.Warnf(ctx, "Bhashini client not available: %v", err)
		}
	} else {
		logger.Warn(ctx, "Bhashini not configured, voice queries and translation disabled")
	}

	// 9. Educational resources
	var youtubeClient *youtube.Client
	if cfg.YouTube.APIKey != "" {
		youtubeClient, err = youtube.NewClient(ctx, cfg.YouTube.APIKey, cfg.YouTube.MaxResults)
		if err != nil {
			logger.Warnf(ctx, "YouTube client not available: %v", err)
			youtubeClient = nil
		}
	} else {
		logger.Warn(ctx, "YOUTUBE_API_KEY missing, resource suggestions disabled")
	}

	// 10. Auth and rate limiting
	if cfg.Auth.JWTSecret == "" {
		logger.Error(ctx, "JWT secret is required")
		return
	}
	scopeManager := scope.NewManager(cfg.Auth.JWTSecret)

	limiter := ratelimit.New(map[ratelimit.Category]ratelimit.Limit{
		ratelimit.CategoryQuery:    {Requests: cfg.RateLimits.Query.Requests, Window: cfg.RateLimits.Query.Window},
		ratelimit.CategoryVoice:    {Requests: cfg.RateLimits.Voice.Requests, Window: cfg.RateLimits.Voice.Window},
		ratelimit.CategoryDocument: {Requests: cfg.RateLimits.Document.Requests, Window: cfg.RateLimits.Document.Window},
		ratelimit.CategoryHistory:  {Requests: cfg.RateLimits.History.Requests, Window: cfg.RateLimits.History.Window},
	}, 0)

	// 11. HTTP Server
	httpServer, err := httpserver.New(logger, httpserver.Config{
		Logger:      logger,
		Port:        cfg.HTTPServer.Port,
		Mode:        cfg.HTTPServer.Mode,
		Environment: cfg.Environment.Name,

		PostgresDB:     db,
		QdrantClient:   qdrantClient,
		CollectionName: cfg.Qdrant.CollectionName,
		VectorSize:     cfg.Qdrant.VectorSize,

		LLM:      llmManager,
		Vision:   vision,
		Embedder: embedder,
		Speech:   speech,
		YouTube:  youtubeClient,

		ScopeManager: scopeManager,
		Limiter:      limiter,
		ChatConfig: usecase.Config{
			HistoryDepth:   cfg.Chat.HistoryDepth,
			RetrievalTopK:  cfg.Chat.RetrievalTopK,
			ChunkSentences: cfg.Chat.ChunkSentences,
			ChunkOverlap:   cfg.Chat.ChunkOverlap,
			ChunkMaxChars:  cfg.Chat.ChunkMaxChars,
		},
	})
	if err != nil {
		logger.Error(ctx, "Failed to initialize HTTP server: ", err)
		return
	}

	// 12. Run
	if err := httpServer.Run(ctx); err != nil {
		logger.Error(ctx, "Failed to run server: ", err)
		return
	}

	logger.Info(ctx, "Server stopped gracefully")
}

func geminiAPIKey(providers []config.ProviderConfig) string {
	for _, p := range providers {
		if p.Enabled && strings.EqualFold(p.Name, "gemini") {
			return p.APIKey
		}
	}
	return ""
}

func parseDurationOr(s string, fallback time.Duration) time.Duration {
	if s == "" {
		return fallback
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return fallback
	}
	return d
}
