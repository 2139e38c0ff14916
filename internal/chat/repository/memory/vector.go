package memory

import (
	"context"
	"math"
	"sort"
	"sync"

	"edupal/internal/chat"
)

// VectorStore is an in-process vector index using brute-force cosine
// similarity. Chunks are grouped per session; a re-ingest replaces the whole
// session under copy-on-write, so concurrent searches keep reading the old
// snapshot.
type VectorStore struct {
	mu       sync.RWMutex
	sessions map[string][]chat.DocumentChunk
}

func NewVectorStore() *VectorStore {
	return &VectorStore{sessions: make(map[string][]chat.DocumentChunk)}
}

// ReplaceSession swaps in a fresh chunk slice for the session. An empty or
// nil slice clears the session.
func (s *VectorStore) ReplaceSession(_ context.Context, sessionID string, chunks []chat.DocumentChunk) error {
	snapshot := make([]chat.DocumentChunk, len(chunks))
	copy(snapshot, chunks)

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(snapshot) == 0 {
		delete(s.sessions, sessionID)
		return nil
	}
	s.sessions[sessionID] = snapshot
	return nil
}

// Search returns the session's chunks nearest to the vector, descending by
// cosine similarity.
func (s *VectorStore) Search(_ context.Context, sessionID string, vector []float32, limit int) ([]chat.ScoredChunk, error) {
	if limit <= 0 {
		limit = 5
	}

	s.mu.RLock()
	chunks := s.sessions[sessionID]
	s.mu.RUnlock()

	results := make([]chat.ScoredChunk, 0, len(chunks))
	for _, c := range chunks {
		results = append(results, chat.ScoredChunk{Chunk: c, Score: cosine(c.Vector, vector)})
	}
	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })

	if limit > len(results) {
		limit = len(results)
	}
	return results[:limit], nil
}

// HasSession reports whether the session has any indexed chunks.
func (s *VectorStore) HasSession(_ context.Context, sessionID string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions[sessionID]) > 0, nil
}

func cosine(a, b []float32) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var dot, normA, normB float64
	for i := 0; i < n; i++ {
		dot += float64(a[i]) * float64(b[i])
		normA += float64(a[i]) * float64(a[i])
		normB += float64(b[i]) * float64(b[i])
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB))
}
