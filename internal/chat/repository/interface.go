package repository

import (
	"context"

	"edupal/internal/chat"
	"edupal/internal/model"
)

// ConversationRepository is the interface for conversation persistence.
// Exchanges are append-only.
type ConversationRepository interface {
	Append(ctx context.Context, userID string, opt AppendExchangeOptions) error
	// LastN returns the newest n exchanges of a thread, oldest first. Threads
	// are scoped to their owning user.
	LastN(ctx context.Context, userID, threadID string, n int) ([]chat.Exchange, error)
	// List returns one page of a thread's exchanges, oldest first, plus the
	// total exchange count.
	List(ctx context.Context, userID string, opt ListExchangesOptions) ([]chat.Exchange, int, error)
}

// RecordRepository is the interface for student record access.
type RecordRepository interface {
	GetAttendance(ctx context.Context, studentID string) ([]model.Attendance, error)
	GetActivities(ctx context.Context, studentID string) ([]model.Activity, error)
	GetBehaviour(ctx context.Context, studentID string) ([]model.Behaviour, error)
	GetGrades(ctx context.Context, studentID string) ([]model.Grade, error)
}

// VectorRepository is the interface for the session-scoped document index.
type VectorRepository interface {
	// ReplaceSession atomically replaces every chunk indexed for the session.
	ReplaceSession(ctx context.Context, sessionID string, chunks []chat.DocumentChunk) error
	// Search returns the session's chunks nearest to the vector, descending
	// by similarity.
	Search(ctx context.Context, sessionID string, vector []float32, limit int) ([]chat.ScoredChunk, error)
	// HasSession reports whether the session has any indexed chunks.
	HasSession(ctx context.Context, sessionID string) (bool, error)
}
