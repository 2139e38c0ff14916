package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"edupal/internal/chat"
	"edupal/pkg/llmprovider"
)

const classifyRetryBackoff = 300 * time.Millisecond

// classifyIntent runs one classification completion for the query. The model
// output must be a JSON object with a known intent label; anything else is a
// ClassificationError. The output is never evaluated, only unmarshalled.
func (uc *implUseCase) classifyIntent(ctx context.Context, query string) (chat.Intent, error) {
	req := &llmprovider.Request{
		Messages: []llmprovider.Message{
			{
				Role:  "user",
				Parts: []llmprovider.Part{{Text: fmt.Sprintf(intentClassificationPrompt, query)}},
			},
		},
		Temperature: 0,
		MaxTokens:   64,
	}

	resp, err := uc.llm.GenerateContent(ctx, req)
	if err != nil {
		return "", &chat.ClassificationError{Cause: err}
	}

	raw := stripCodeFences(resp.Text())

	var parsed struct {
		Intent string `json:"intent"`
	}
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return "", &chat.ClassificationError{
			Raw:   truncateText(raw, 200),
			Cause: fmt.Errorf("malformed classifier output: %w", err),
		}
	}

	intent := chat.Intent(parsed.Intent)
	if !intent.Valid() {
		return "", &chat.ClassificationError{
			Raw:   truncateText(raw, 200),
			Cause: fmt.Errorf("unknown intent label %q", parsed.Intent),
		}
	}
	return intent, nil
}

// classifyWithRetry retries a failed classification once after a short
// backoff, then degrades to IntentUnknown. It never silently substitutes a
// valid label.
func (uc *implUseCase) classifyWithRetry(ctx context.Context, query string) (chat.Intent, bool) {
	intent, err := uc.classifyIntent(ctx, query)
	if err == nil {
		return intent, false
	}
	uc.l.Warnf(ctx, "chat usecase: classification failed, retrying: %v", err)

	select {
	case <-ctx.Done():
		return chat.IntentUnknown, true
	case <-time.After(classifyRetryBackoff):
	}

	intent, err = uc.classifyIntent(ctx, query)
	if err == nil {
		return intent, false
	}
	uc.l.Warnf(ctx, "chat usecase: classification failed after retry, degrading: %v", err)
	return chat.IntentUnknown, true
}
