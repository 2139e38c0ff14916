package chat

import (
	"context"

	"edupal/internal/model"
)

// UseCase defines the business logic interface for the chat domain.
type UseCase interface {
	// ResolveQuery runs the full pipeline for a text query: history, intent
	// classification, data dispatch, answer synthesis, persistence.
	ResolveQuery(ctx context.Context, sc model.Scope, input QueryInput) (QueryOutput, error)

	// VoiceQuery transcribes the audio and resolves the transcript as a text
	// query, optionally synthesizing a spoken answer.
	VoiceQuery(ctx context.Context, sc model.Scope, input VoiceQueryInput) (VoiceQueryOutput, error)

	// ImageQuery answers a query about an attached image. It bypasses the
	// dispatcher and document retrieval.
	ImageQuery(ctx context.Context, sc model.Scope, input ImageQueryInput) (ImageQueryOutput, error)

	// IngestDocument chunks, embeds and indexes an uploaded document,
	// replacing the user's previously indexed document.
	IngestDocument(ctx context.Context, sc model.Scope, input IngestInput) (IngestOutput, error)

	// History returns a page of the user's exchanges in a thread.
	History(ctx context.Context, sc model.Scope, input HistoryInput) (HistoryOutput, error)
}
