package memory

import (
	"context"
	"sync"
	"testing"

	"edupal/internal/chat"
)

func TestVectorStoreSearchOrdering(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	chunks := []chat.DocumentChunk{
		{DocumentID: "d1", SessionID: "s1", Seq: 0, Text: "about grades", Vector: []float32{1, 0, 0}},
		{DocumentID: "d1", SessionID: "s1", Seq: 1, Text: "about sports", Vector: []float32{0, 1, 0}},
		{DocumentID: "d1", SessionID: "s1", Seq: 2, Text: "mixed topic", Vector: []float32{0.7, 0.7, 0}},
	}
	if err := store.ReplaceSession(ctx, "s1", chunks); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	results, err := store.Search(ctx, "s1", []float32{1, 0, 0}, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}
	if results[0].Chunk.Text != "about grades" {
		t.Errorf("expected closest chunk first, got %q", results[0].Chunk.Text)
	}
	if results[0].Score < results[1].Score {
		t.Errorf("expected descending scores, got %f then %f", results[0].Score, results[1].Score)
	}
}

func TestVectorStoreSessionIsolation(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	store.ReplaceSession(ctx, "s1", []chat.DocumentChunk{
		{SessionID: "s1", Text: "mine", Vector: []float32{1, 0}},
	})

	results, err := store.Search(ctx, "s2", []float32{1, 0}, 5)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 0 {
		t.Errorf("expected no results for other session, got %d", len(results))
	}

	if ok, _ := store.HasSession(ctx, "s1"); !ok {
		t.Error("expected s1 to have chunks")
	}
	if ok, _ := store.HasSession(ctx, "s2"); ok {
		t.Error("expected s2 to be empty")
	}
}

func TestVectorStoreReplaceIsLastWriterWins(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	store.ReplaceSession(ctx, "s1", []chat.DocumentChunk{
		{DocumentID: "old", SessionID: "s1", Text: "old", Vector: []float32{1, 0}},
	})
	store.ReplaceSession(ctx, "s1", []chat.DocumentChunk{
		{DocumentID: "new", SessionID: "s1", Text: "new", Vector: []float32{1, 0}},
	})

	results, _ := store.Search(ctx, "s1", []float32{1, 0}, 5)
	if len(results) != 1 || results[0].Chunk.DocumentID != "new" {
		t.Fatalf("expected only the new document, got %+v", results)
	}

	// Clearing with nil removes the session.
	store.ReplaceSession(ctx, "s1", nil)
	if ok, _ := store.HasSession(ctx, "s1"); ok {
		t.Error("expected session to be cleared")
	}
}

func TestVectorStoreConcurrentReplaceAndSearch(t *testing.T) {
	store := NewVectorStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			store.ReplaceSession(ctx, "s1", []chat.DocumentChunk{
				{SessionID: "s1", Text: "a", Vector: []float32{1, 0}},
				{SessionID: "s1", Text: "b", Vector: []float32{0, 1}},
			})
		}()
		go func() {
			defer wg.Done()
			results, err := store.Search(ctx, "s1", []float32{1, 0}, 2)
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			// A snapshot is either absent or complete, never partial.
			if len(results) != 0 && len(results) != 2 {
				t.Errorf("unexpected partial snapshot: %d results", len(results))
			}
		}()
	}
	wg.Wait()
}
