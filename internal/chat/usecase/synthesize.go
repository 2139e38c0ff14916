package usecase

import (
	"context"
	"fmt"

	"edupal/internal/chat"
	"edupal/pkg/llmprovider"
)

// synthesizeAnswer runs the final completion. The last message of the
// history (the bare query) is replaced by the full answer-generation prompt
// carrying the data context. Failure is a SynthesisError; an answer is never
// fabricated locally.
func (uc *implUseCase) synthesizeAnswer(ctx context.Context, history []llmprovider.Message, query, dataContext string) (string, error) {
	messages := make([]llmprovider.Message, len(history))
	copy(messages, history)

	final := llmprovider.Message{
		Role:  "user",
		Parts: []llmprovider.Part{{Text: fmt.Sprintf(finalAnswerPrompt, dataContext, query)}},
	}
	if len(messages) == 0 {
		messages = []llmprovider.Message{final}
	} else {
		messages[len(messages)-1] = final
	}

	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages:    messages,
		Temperature: 0.3,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", &chat.SynthesisError{Cause: err}
	}

	answer := resp.Text()
	if answer == "" {
		return "", &chat.SynthesisError{Cause: fmt.Errorf("empty completion")}
	}
	return answer, nil
}

// synthesizeConversational answers a general question directly from the
// conversation, without a data prompt.
func (uc *implUseCase) synthesizeConversational(ctx context.Context, history []llmprovider.Message) (string, error) {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Messages:    history,
		Temperature: 0.7,
		MaxTokens:   1024,
	})
	if err != nil {
		return "", &chat.SynthesisError{Cause: err}
	}

	answer := resp.Text()
	if answer == "" {
		return "", &chat.SynthesisError{Cause: fmt.Errorf("empty completion")}
	}
	return answer, nil
}

// localize translates the answer into the user's language. Failure degrades
// to the untranslated answer and is only logged.
func (uc *implUseCase) localize(ctx context.Context, answer, language string) string {
	if language == "" || language == "en" || uc.speech == nil {
		return answer
	}

	translated, err := uc.speech.Translate(ctx, answer, "en", language)
	if err != nil {
		warning := &chat.TranslationWarning{Language: language, Cause: err}
		uc.l.Warnf(ctx, "chat usecase: %v", warning)
		return answer
	}
	return translated
}

// lookupResources finds educational links for the query. Always non-fatal.
func (uc *implUseCase) lookupResources(ctx context.Context, query string) []chat.Resource {
	if uc.resources == nil {
		return nil
	}

	found, err := uc.resources.SearchEducational(ctx, query)
	if err != nil {
		uc.l.Warnf(ctx, "chat usecase: resource lookup failed: %v", err)
		return nil
	}

	resources := make([]chat.Resource, 0, len(found))
	for _, r := range found {
		resources = append(resources, chat.Resource{
			Title:       r.Title,
			URL:         r.URL,
			ChannelName: r.ChannelName,
		})
	}
	return resources
}
