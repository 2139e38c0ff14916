package usecase

import (
	"context"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
	"edupal/internal/model"
	"edupal/pkg/llmprovider"
)

// Request lifecycle stages, logged as the pipeline advances. Each stage runs
// at most twice (one retry) and failures are terminal for the request.
const (
	stageReceived         = "received"
	stageHistoryLoaded    = "history_loaded"
	stageIntentClassified = "intent_classified"
	stageDataFetched      = "data_fetched"
	stageAnswerReady      = "answer_synthesized"
	stagePersisted        = "persisted"
)

// ResolveQuery runs the full pipeline for one text query.
func (uc *implUseCase) ResolveQuery(ctx context.Context, sc model.Scope, input chat.QueryInput) (chat.QueryOutput, error) {
	if input.Query == "" {
		return chat.QueryOutput{}, chat.ErrEmptyQuery
	}
	uc.l.Infof(ctx, "chat usecase: %s user=%s thread=%q", stageReceived, sc.UserID, input.ThreadID)

	threadID, history := uc.loadHistory(ctx, sc, input.ThreadID, input.Query)
	uc.l.Debugf(ctx, "chat usecase: %s thread=%s messages=%d", stageHistoryLoaded, threadID, len(history))

	intent, degraded := uc.classifyWithRetry(ctx, input.Query)
	uc.l.Infof(ctx, "chat usecase: %s thread=%s intent=%s degraded=%t", stageIntentClassified, threadID, intent, degraded)

	answer, err := uc.answerFor(ctx, sc, intent, degraded, history, input.Query)
	if err != nil {
		return chat.QueryOutput{}, err
	}
	uc.l.Debugf(ctx, "chat usecase: %s thread=%s", stageAnswerReady, threadID)

	answer = uc.localize(ctx, answer, input.Language)

	out := chat.QueryOutput{
		ThreadID:    threadID,
		Response:    answer,
		Intent:      intent,
		Confidence:  "classified",
		Suggestions: []string{},
	}
	if degraded {
		out.Confidence = "degraded"
	}
	if intent == chat.IntentGeneralQuestion {
		out.Resources = uc.lookupResources(ctx, input.Query)
	}
	if out.Resources == nil {
		out.Resources = []chat.Resource{}
	}

	// Persist only after a successful synthesis. A persistence failure does
	// not retract an answer the parent already has.
	if err := uc.convRepo.Append(ctx, sc.UserID, repository.AppendExchangeOptions{
		ThreadID: threadID,
		Query:    input.Query,
		Response: answer,
		Emotion:  input.Emotion,
	}); err != nil {
		uc.l.Errorf(ctx, "chat usecase: failed to persist exchange for thread %s: %v", threadID, err)
	} else {
		uc.l.Debugf(ctx, "chat usecase: %s thread=%s", stagePersisted, threadID)
	}

	return out, nil
}

// answerFor routes the classified intent to its data source and synthesizes
// the answer.
func (uc *implUseCase) answerFor(ctx context.Context, sc model.Scope, intent chat.Intent, degraded bool, history []llmprovider.Message, query string) (string, error) {
	switch {
	case degraded:
		return uc.synthesizeAnswer(ctx, history, query, degradedDataContext)

	case intent == chat.IntentGeneralQuestion:
		// Use the session's indexed document when one exists, otherwise
		// answer conversationally.
		hasDoc := false
		if uc.vectorRepo != nil && uc.embedder != nil {
			var err error
			hasDoc, err = uc.vectorRepo.HasSession(ctx, sc.UserID)
			if err != nil {
				uc.l.Warnf(ctx, "chat usecase: failed to probe document session: %v", err)
				hasDoc = false
			}
		}
		if !hasDoc {
			return uc.synthesizeConversational(ctx, history)
		}

		chunks, err := uc.retrieve(ctx, sc.UserID, query)
		if err != nil {
			uc.l.Warnf(ctx, "chat usecase: retrieval failed, answering without document: %v", err)
			return uc.synthesizeConversational(ctx, history)
		}
		return uc.synthesizeAnswer(ctx, history, query, renderChunks(chunks))

	default:
		uc.l.Debugf(ctx, "chat usecase: %s intent=%s student=%s", stageDataFetched, intent, sc.StudentID)
		records, err := uc.fetchRecords(ctx, sc, intent)
		if err != nil {
			return "", err
		}
		return uc.synthesizeAnswer(ctx, history, query, renderRecords(records))
	}
}

// retrieve embeds the query and searches the session's document index.
func (uc *implUseCase) retrieve(ctx context.Context, sessionID, query string) ([]chat.ScoredChunk, error) {
	vectors, err := uc.embedder.Embed(ctx, []string{query})
	if err != nil || len(vectors) == 0 {
		return nil, err
	}
	return uc.vectorRepo.Search(ctx, sessionID, vectors[0], uc.cfg.RetrievalTopK)
}
