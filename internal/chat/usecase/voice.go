package usecase

import (
	"context"
	"fmt"

	"edupal/internal/chat"
	"edupal/internal/model"
)

// defaultVoiceLanguage is the best-effort fallback when no language hint is
// supplied with the audio.
const defaultVoiceLanguage = "en"

// VoiceQuery transcribes the audio and resolves the transcript through the
// text pipeline. A spoken answer is synthesized only when requested, and its
// failure is non-fatal.
func (uc *implUseCase) VoiceQuery(ctx context.Context, sc model.Scope, input chat.VoiceQueryInput) (chat.VoiceQueryOutput, error) {
	if len(input.Audio) == 0 {
		return chat.VoiceQueryOutput{}, chat.ErrEmptyAudio
	}
	if uc.speech == nil {
		return chat.VoiceQueryOutput{}, fmt.Errorf("voice queries are not configured")
	}

	language := input.Language
	if language == "" {
		language = uc.detectVoiceLanguage(ctx, sc)
	}

	transcript, err := uc.speech.Transcribe(ctx, input.Audio, language)
	if err != nil {
		return chat.VoiceQueryOutput{}, fmt.Errorf("failed to transcribe audio: %w", err)
	}

	answer, err := uc.ResolveQuery(ctx, sc, chat.QueryInput{
		Query:    transcript,
		ThreadID: input.ThreadID,
		Emotion:  input.Emotion,
		Language: input.Language,
	})
	if err != nil {
		return chat.VoiceQueryOutput{}, err
	}

	out := chat.VoiceQueryOutput{
		Transcript: transcript,
		Answer:     answer,
	}

	if input.WithAudio {
		audio, err := uc.speech.Synthesize(ctx, answer.Response, language)
		if err != nil {
			uc.l.Warnf(ctx, "chat usecase: failed to synthesize spoken answer: %v", err)
		} else {
			out.Audio = audio
		}
	}

	return out, nil
}

// detectVoiceLanguage resolves the transcription language when the request
// carries no hint. The speech provider has no language identification
// endpoint, so detection falls back to the caller's preferred language and
// then the service default.
func (uc *implUseCase) detectVoiceLanguage(ctx context.Context, sc model.Scope) string {
	if sc.Language != "" {
		uc.l.Debugf(ctx, "chat usecase: no language hint, using caller preference %q", sc.Language)
		return sc.Language
	}
	return defaultVoiceLanguage
}
