package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"edupal/config"
	"edupal/internal/chat"
	qdrantRepo "edupal/internal/chat/repository/qdrant"
	"edupal/internal/chunker"
	"edupal/internal/docload"
	"edupal/pkg/log"
	pkgQdrant "edupal/pkg/qdrant"
	"edupal/pkg/voyage"
)

// Indexes a document for a parent's session without going through the HTTP
// API. Useful for pre-loading school handbooks during onboarding.
func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: go run scripts/index-document/main.go <user-id> <path/to/document>")
		fmt.Println("Example: go run scripts/index-document/main.go parent-42 handbook.pdf")
		os.Exit(1)
	}
	userID := os.Args[1]
	path := os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := log.Init(log.ZapConfig{
		Level:        "info",
		Mode:         "development",
		ColorEnabled: true,
	})

	ctx := context.Background()

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Fatalf(ctx, "Failed to read %s: %v", path, err)
	}

	text, err := docload.Load(filepath.Base(path), data)
	if err != nil {
		logger.Fatalf(ctx, "Failed to extract text: %v", err)
	}

	chunks := chunker.NewSentenceChunker(
		cfg.Chat.ChunkSentences,
		cfg.Chat.ChunkOverlap,
		cfg.Chat.ChunkMaxChars,
	).Chunk(text)
	if len(chunks) == 0 {
		logger.Fatalf(ctx, "Document %s produced no chunks", path)
	}
	logger.Infof(ctx, "Extracted %d chunks from %s", len(chunks), path)

	embeddingClient, err := voyage.New(cfg.Voyage.APIKey)
	if err != nil {
		logger.Fatalf(ctx, "Failed to initialize Voyage API: %v", err)
	}
	if cfg.Voyage.Model != "" {
		embeddingClient.WithModel(cfg.Voyage.Model)
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	vectors, err := embeddingClient.Embed(ctx, texts)
	if err != nil {
		logger.Fatalf(ctx, "Failed to embed chunks: %v", err)
	}
	if len(vectors) != len(chunks) {
		logger.Fatalf(ctx, "Embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}

	qdrantClient := pkgQdrant.NewClient(cfg.Qdrant.URL)
	if err := qdrantClient.CreateCollection(ctx, pkgQdrant.CreateCollectionRequest{
		Name: cfg.Qdrant.CollectionName,
		Vectors: pkgQdrant.VectorConfig{
			Size:     cfg.Qdrant.VectorSize,
			Distance: "Cosine",
		},
	}); err != nil {
		logger.Warnf(ctx, "Collection setup: %v", err)
	}

	vectorRepo := qdrantRepo.New(qdrantClient, cfg.Qdrant.CollectionName, cfg.Qdrant.VectorSize, logger)

	documentID := uuid.NewString()
	docChunks := make([]chat.DocumentChunk, len(chunks))
	for i, c := range chunks {
		docChunks[i] = chat.DocumentChunk{
			DocumentID: documentID,
			SessionID:  userID,
			Seq:        c.Index,
			Text:       c.Text,
			Vector:     vectors[i],
		}
	}

	if err := vectorRepo.ReplaceSession(ctx, userID, docChunks); err != nil {
		logger.Fatalf(ctx, "Failed to index document: %v", err)
	}

	logger.Infof(ctx, "Indexed document %s (%d chunks) for user %s", documentID, len(docChunks), userID)
}
