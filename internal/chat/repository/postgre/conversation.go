package postgre

import (
	"context"
	"fmt"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
)

// Append inserts one exchange. Rows are never updated or deleted.
func (r *Repository) Append(ctx context.Context, userID string, opt repository.AppendExchangeOptions) error {
	const q = `
		INSERT INTO chatbot_conversations (user_id, thread_id, query, response, emotion, created_at)
		VALUES ($1, $2, $3, $4, $5, NOW())`

	if _, err := r.db.ExecContext(ctx, q, userID, opt.ThreadID, opt.Query, opt.Response, nullable(opt.Emotion)); err != nil {
		return fmt.Errorf("failed to insert exchange: %w", err)
	}
	return nil
}

// LastN returns the newest n exchanges of the user's thread, oldest first.
func (r *Repository) LastN(ctx context.Context, userID, threadID string, n int) ([]chat.Exchange, error) {
	const q = `
		SELECT thread_id, query, response, COALESCE(emotion, ''), created_at
		FROM chatbot_conversations
		WHERE user_id = $1 AND thread_id = $2
		ORDER BY created_at DESC
		LIMIT $3`

	rows, err := r.db.QueryContext(ctx, q, userID, threadID, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []chat.Exchange
	for rows.Next() {
		var e chat.Exchange
		if err := rows.Scan(&e.ThreadID, &e.Query, &e.Response, &e.Emotion, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan exchange: %w", err)
		}
		exchanges = append(exchanges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate exchanges: %w", err)
	}

	// Query is newest-first for the LIMIT; callers want oldest-first.
	for i, j := 0, len(exchanges)-1; i < j; i, j = i+1, j-1 {
		exchanges[i], exchanges[j] = exchanges[j], exchanges[i]
	}
	return exchanges, nil
}

// List returns one page of the user's thread, oldest first, plus the total
// exchange count.
func (r *Repository) List(ctx context.Context, userID string, opt repository.ListExchangesOptions) ([]chat.Exchange, int, error) {
	const countQ = `
		SELECT COUNT(*)
		FROM chatbot_conversations
		WHERE user_id = $1 AND thread_id = $2`

	var total int
	if err := r.db.QueryRowContext(ctx, countQ, userID, opt.ThreadID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count exchanges: %w", err)
	}
	if total == 0 {
		return nil, 0, repository.ErrThreadNotFound
	}

	const q = `
		SELECT thread_id, query, response, COALESCE(emotion, ''), created_at
		FROM chatbot_conversations
		WHERE user_id = $1 AND thread_id = $2
		ORDER BY created_at ASC
		LIMIT $3 OFFSET $4`

	offset := (opt.Page - 1) * opt.PageSize
	rows, err := r.db.QueryContext(ctx, q, userID, opt.ThreadID, opt.PageSize, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query exchanges: %w", err)
	}
	defer rows.Close()

	var exchanges []chat.Exchange
	for rows.Next() {
		var e chat.Exchange
		if err := rows.Scan(&e.ThreadID, &e.Query, &e.Response, &e.Emotion, &e.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan exchange: %w", err)
		}
		exchanges = append(exchanges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to iterate exchanges: %w", err)
	}

	return exchanges, total, nil
}

func nullable(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}
