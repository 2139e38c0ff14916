package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"edupal/internal/chat"
	"edupal/internal/docload"
	"edupal/internal/model"
)

// IngestDocument loads, chunks, embeds and indexes an uploaded document.
// The user's previous document is replaced wholesale; last writer wins.
func (uc *implUseCase) IngestDocument(ctx context.Context, sc model.Scope, input chat.IngestInput) (chat.IngestOutput, error) {
	if len(input.Data) == 0 {
		return chat.IngestOutput{}, chat.ErrEmptyDocument
	}
	if uc.embedder == nil || uc.vectorRepo == nil {
		return chat.IngestOutput{}, &chat.IngestError{Reason: "document ingestion is not configured"}
	}

	// Reject unsupported types before any chunking.
	text, err := docload.Load(input.Filename, input.Data)
	if err != nil {
		var unsupported *docload.UnsupportedTypeError
		if errors.As(err, &unsupported) {
			return chat.IngestOutput{}, &chat.IngestError{Reason: "unsupported document type", Cause: err}
		}
		return chat.IngestOutput{}, &chat.IngestError{Reason: "failed to extract text", Cause: err}
	}

	pieces := uc.chunker.Chunk(text)
	if len(pieces) == 0 {
		return chat.IngestOutput{}, &chat.IngestError{Reason: "document has no extractable text"}
	}

	texts := make([]string, len(pieces))
	for i, p := range pieces {
		texts[i] = p.Text
	}

	vectors, err := uc.embedder.Embed(ctx, texts)
	if err != nil {
		return chat.IngestOutput{}, &chat.IngestError{Reason: "failed to embed chunks", Cause: err}
	}
	if len(vectors) != len(pieces) {
		return chat.IngestOutput{}, &chat.IngestError{
			Reason: "embedding mismatch",
			Cause:  fmt.Errorf("got %d vectors for %d chunks", len(vectors), len(pieces)),
		}
	}

	documentID := uuid.NewString()
	chunks := make([]chat.DocumentChunk, len(pieces))
	for i, p := range pieces {
		chunks[i] = chat.DocumentChunk{
			DocumentID: documentID,
			SessionID:  sc.UserID,
			Seq:        p.Index,
			Text:       p.Text,
			Vector:     vectors[i],
		}
	}

	if err := uc.vectorRepo.ReplaceSession(ctx, sc.UserID, chunks); err != nil {
		return chat.IngestOutput{}, &chat.IngestError{Reason: "failed to index chunks", Cause: err}
	}

	uc.l.Infof(ctx, "chat usecase: indexed document %s (%d chunks) for user %s", documentID, len(chunks), sc.UserID)
	return chat.IngestOutput{DocumentID: documentID, ChunkCount: len(chunks)}, nil
}
