package qdrant

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
	pkgLog "edupal/pkg/log"
	pkgQdrant "edupal/pkg/qdrant"
)

type implRepository struct {
	client         *pkgQdrant.Client
	collectionName string
	vectorSize     int
	l              pkgLog.Logger
}

// New creates a Qdrant-backed vector repository. Chunks arrive already
// embedded; this repository only stores and searches them.
func New(client *pkgQdrant.Client, collectionName string, vectorSize int, l pkgLog.Logger) repository.VectorRepository {
	return &implRepository{
		client:         client,
		collectionName: collectionName,
		vectorSize:     vectorSize,
		l:              l,
	}
}

// ReplaceSession drops every point tagged with the session and upserts the
// new chunks. Last writer wins per session.
func (r *implRepository) ReplaceSession(ctx context.Context, sessionID string, chunks []chat.DocumentChunk) error {
	if err := r.client.DeletePointsByFilter(ctx, r.collectionName, sessionFilter(sessionID)); err != nil {
		return fmt.Errorf("failed to clear session points: %w", err)
	}
	if len(chunks) == 0 {
		return nil
	}

	points := make([]pkgQdrant.Point, 0, len(chunks))
	for _, c := range chunks {
		points = append(points, pkgQdrant.Point{
			ID:     uuid.NewString(),
			Vector: c.Vector,
			Payload: map[string]interface{}{
				"session_id":  c.SessionID,
				"document_id": c.DocumentID,
				"seq":         c.Seq,
				"text":        c.Text,
			},
		})
	}

	if err := r.client.UpsertPoints(ctx, r.collectionName, pkgQdrant.UpsertPointsRequest{Points: points}); err != nil {
		return fmt.Errorf("failed to upsert session points: %w", err)
	}

	r.l.Infof(ctx, "qdrant repository: replaced session %s with %d chunks", sessionID, len(points))
	return nil
}

// Search returns the session's nearest chunks, descending by similarity.
func (r *implRepository) Search(ctx context.Context, sessionID string, vector []float32, limit int) ([]chat.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	resp, err := r.client.SearchPoints(ctx, r.collectionName, pkgQdrant.SearchRequest{
		Vector:      vector,
		Limit:       limit,
		WithPayload: true,
		Filter:      sessionFilter(sessionID),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to search points: %w", err)
	}

	results := make([]chat.ScoredChunk, 0, len(resp.Result))
	for _, p := range resp.Result {
		chunk := chat.DocumentChunk{SessionID: sessionID}
		if v, ok := p.Payload["document_id"].(string); ok {
			chunk.DocumentID = v
		}
		if v, ok := p.Payload["text"].(string); ok {
			chunk.Text = v
		}
		if v, ok := p.Payload["seq"].(float64); ok {
			chunk.Seq = int(v)
		}
		results = append(results, chat.ScoredChunk{Chunk: chunk, Score: p.Score})
	}
	return results, nil
}

// HasSession reports whether any point is tagged with the session.
func (r *implRepository) HasSession(ctx context.Context, sessionID string) (bool, error) {
	// A zero-vector probe with limit 1 is enough to detect presence; scores
	// are irrelevant here.
	resp, err := r.client.SearchPoints(ctx, r.collectionName, pkgQdrant.SearchRequest{
		Vector:      make([]float32, r.vectorSize),
		Limit:       1,
		WithPayload: false,
		Filter:      sessionFilter(sessionID),
	})
	if err != nil {
		return false, fmt.Errorf("failed to probe session: %w", err)
	}
	return len(resp.Result) > 0, nil
}

func sessionFilter(sessionID string) map[string]interface{} {
	return map[string]interface{}{
		"must": []map[string]interface{}{
			{"key": "session_id", "match": map[string]interface{}{"value": sessionID}},
		},
	}
}
