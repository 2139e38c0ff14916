package httpserver

import (
	"context"

	chatHTTP "edupal/internal/chat/delivery/http"
	"edupal/internal/chat/repository"
	memoryRepo "edupal/internal/chat/repository/memory"
	chatPostgre "edupal/internal/chat/repository/postgre"
	chatQdrant "edupal/internal/chat/repository/qdrant"
	"edupal/internal/chat/usecase"
	"edupal/internal/middleware"
	"edupal/pkg/youtube"

	"github.com/gin-gonic/gin"
)

// setupChatDomain initializes the chat domain and registers its routes.
func (srv HTTPServer) setupChatDomain(ctx context.Context, api *gin.RouterGroup, mw middleware.Middleware) error {
	// 1. Repositories
	pg := chatPostgre.New(srv.l, srv.postgresDB)

	var vectorRepo repository.VectorRepository
	if srv.qdrantClient != nil {
		vectorRepo = chatQdrant.New(srv.qdrantClient, srv.collection, srv.vectorSize, srv.l)
		srv.l.Infof(ctx, "Document vectors stored in Qdrant collection %q", srv.collection)
	} else {
		vectorRepo = memoryRepo.NewVectorStore()
		srv.l.Warnf(ctx, "Qdrant not configured, document vectors held in memory")
	}

	// A typed nil would still satisfy the interface, so only wire the
	// resource finder when the client actually exists.
	var resources interface {
		SearchEducational(ctx context.Context, topic string) ([]youtube.Resource, error)
	}
	if srv.youtube != nil {
		resources = srv.youtube
	}

	// 2. UseCase
	uc := usecase.New(
		srv.l,
		srv.llm,
		srv.vision,
		srv.embedder,
		srv.speech,
		resources,
		pg,
		pg,
		vectorRepo,
		srv.chatConfig,
	)

	// 3. HTTP Handler
	h := chatHTTP.New(srv.l, uc)

	// 4. Routes: registers /api/v1/chatbot/*
	chatHTTP.RegisterRoutes(api, h, mw)

	srv.l.Infof(ctx, "Chat domain registered")
	return nil
}
