package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"edupal/internal/chat"
)

func TestVoiceQueryTranscriptEntersPipeline(t *testing.T) {
	llm := scriptedLLM("general_question", "Try reading together every evening.")
	uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	uc.speech = &mockSpeech{
		TranscribeFunc: func(ctx context.Context, audio []byte, lang string) (string, error) {
			return "how can I help my child read better", nil
		},
		SynthesizeFunc: func(ctx context.Context, text, lang string) ([]byte, error) {
			return []byte("audio-bytes"), nil
		},
	}

	out, err := uc.VoiceQuery(context.Background(), testScope(), chat.VoiceQueryInput{
		Audio:     []byte("wav-data"),
		WithAudio: true,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Transcript != "how can I help my child read better" {
		t.Errorf("unexpected transcript: %q", out.Transcript)
	}
	if out.Answer.Response == "" {
		t.Error("expected a resolved answer")
	}
	if string(out.Audio) != "audio-bytes" {
		t.Errorf("expected spoken answer, got %q", out.Audio)
	}

	// The classifier saw the transcript, not the audio.
	classifyPrompt := lastMessageText(llm.Requests[0])
	if !strings.Contains(classifyPrompt, "how can I help my child read better") {
		t.Error("classification prompt should embed the transcript")
	}
}

func TestVoiceQueryLanguageResolution(t *testing.T) {
	cases := []struct {
		name      string
		hint      string
		scopeLang string
		want      string
	}{
		{name: "explicit hint wins", hint: "ta", scopeLang: "hi", want: "ta"},
		{name: "caller preference fills missing hint", hint: "", scopeLang: "hi", want: "hi"},
		{name: "default when nothing known", hint: "", scopeLang: "", want: "en"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			llm := scriptedLLM("general_question", "Some advice.")
			uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})

			var gotLang string
			uc.speech = &mockSpeech{
				TranscribeFunc: func(ctx context.Context, audio []byte, lang string) (string, error) {
					gotLang = lang
					return "question", nil
				},
			}

			sc := testScope()
			sc.Language = tc.scopeLang
			_, err := uc.VoiceQuery(context.Background(), sc, chat.VoiceQueryInput{
				Audio:    []byte("wav-data"),
				Language: tc.hint,
			})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if gotLang != tc.want {
				t.Errorf("expected transcription language %q, got %q", tc.want, gotLang)
			}
		})
	}
}

func TestVoiceQueryTTSFailureIsNonFatal(t *testing.T) {
	llm := scriptedLLM("general_question", "Some advice.")
	uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	uc.speech = &mockSpeech{
		TranscribeFunc: func(ctx context.Context, audio []byte, lang string) (string, error) {
			return "question", nil
		},
		SynthesizeFunc: func(ctx context.Context, text, lang string) ([]byte, error) {
			return nil, fmt.Errorf("tts down")
		},
	}

	out, err := uc.VoiceQuery(context.Background(), testScope(), chat.VoiceQueryInput{
		Audio:     []byte("wav-data"),
		WithAudio: true,
	})
	if err != nil {
		t.Fatalf("tts failure must not abort: %v", err)
	}
	if len(out.Audio) != 0 {
		t.Error("expected no audio after tts failure")
	}
	if out.Answer.Response == "" {
		t.Error("expected the text answer to survive")
	}
}

func TestVoiceQueryTranscriptionFailureIsFatal(t *testing.T) {
	uc := newTestUseCase(&mockLLM{}, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	uc.speech = &mockSpeech{
		TranscribeFunc: func(ctx context.Context, audio []byte, lang string) (string, error) {
			return "", fmt.Errorf("asr down")
		},
	}

	if _, err := uc.VoiceQuery(context.Background(), testScope(), chat.VoiceQueryInput{Audio: []byte("x")}); err == nil {
		t.Fatal("expected transcription failure to abort")
	}
}

func TestVoiceQueryEmptyAudio(t *testing.T) {
	uc := newTestUseCase(&mockLLM{}, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	if _, err := uc.VoiceQuery(context.Background(), testScope(), chat.VoiceQueryInput{}); !errors.Is(err, chat.ErrEmptyAudio) {
		t.Fatalf("expected ErrEmptyAudio, got %v", err)
	}
}
