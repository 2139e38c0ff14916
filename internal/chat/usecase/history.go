package usecase

import (
	"context"
	"math"

	"github.com/google/uuid"

	"edupal/internal/chat"
	"edupal/internal/model"
	"edupal/pkg/llmprovider"
)

const defaultPageSize = 20

// loadHistory assembles the conversation messages for a request: prior
// exchanges oldest first, alternating user/assistant, new query last. A
// missing thread id starts a new thread. History-load failure degrades to
// just the new query. Read-only and idempotent.
func (uc *implUseCase) loadHistory(ctx context.Context, sc model.Scope, threadID, query string) (string, []llmprovider.Message) {
	newQuery := llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: query}},
	}

	if threadID == "" {
		return uuid.NewString(), []llmprovider.Message{newQuery}
	}

	exchanges, err := uc.convRepo.LastN(ctx, sc.UserID, threadID, uc.cfg.HistoryDepth)
	if err != nil {
		uc.l.Warnf(ctx, "chat usecase: failed to load history for thread %s: %v", threadID, err)
		return threadID, []llmprovider.Message{newQuery}
	}

	messages := make([]llmprovider.Message, 0, 2*len(exchanges)+1)
	for _, e := range exchanges {
		messages = append(messages,
			llmprovider.Message{Role: "user", Parts: []llmprovider.Part{{Text: e.Query}}},
			llmprovider.Message{Role: "assistant", Parts: []llmprovider.Part{{Text: e.Response}}},
		)
	}
	return threadID, append(messages, newQuery)
}

// History returns a page of the user's exchanges in a thread, oldest first.
func (uc *implUseCase) History(ctx context.Context, sc model.Scope, input chat.HistoryInput) (chat.HistoryOutput, error) {
	page := input.Page
	if page <= 0 {
		page = 1
	}
	pageSize := input.PageSize
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}

	items, total, err := uc.convRepo.List(ctx, sc.UserID, listOptions(input.ThreadID, page, pageSize))
	if err != nil {
		return chat.HistoryOutput{}, err
	}

	return chat.HistoryOutput{
		Items:      items,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}, nil
}
