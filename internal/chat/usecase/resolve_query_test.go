package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
	"edupal/internal/model"
	"edupal/pkg/llmprovider"
)

// scriptedLLM answers the classification request with the given intent and
// every later request with the answer text.
func scriptedLLM(intent, answer string) *mockLLM {
	llm := &mockLLM{}
	llm.GenerateFunc = func(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
		if len(llm.Requests) == 1 {
			return textResponse(fmt.Sprintf(`{"intent": %q}`, intent)), nil
		}
		return textResponse(answer), nil
	}
	return llm
}

func TestResolveQueryAttendanceFlow(t *testing.T) {
	llm := scriptedLLM("attendance", "Your child was absent on February 17th due to sick leave.")
	conv := &mockConvRepo{}
	records := &mockRecordRepo{
		AttendanceFunc: func(ctx context.Context, studentID string) ([]model.Attendance, error) {
			if studentID != "student-9" {
				t.Errorf("expected scoped fetch, got student %s", studentID)
			}
			return []model.Attendance{{
				Date: time.Date(2025, 2, 17, 0, 0, 0, 0, time.UTC), Status: "absent", Notes: "sick leave",
			}}, nil
		},
	}
	uc := newTestUseCase(llm, conv, records, &mockVectorRepo{})

	out, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{
		Query: "Did my child attend school on February 17th?", Emotion: "worried",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if out.Intent != chat.IntentAttendance || out.Confidence != "classified" {
		t.Errorf("unexpected classification: intent=%s confidence=%s", out.Intent, out.Confidence)
	}
	if out.ThreadID == "" {
		t.Error("expected a thread id")
	}
	if !strings.Contains(out.Response, "absent") {
		t.Errorf("answer should reference the data, got %q", out.Response)
	}

	// The synthesis prompt carries the projected record, not raw rows.
	synthPrompt := lastMessageText(llm.Requests[len(llm.Requests)-1])
	for _, want := range []string{"date: 2025-02-17", "status: absent", "notes: sick leave"} {
		if !strings.Contains(synthPrompt, want) {
			t.Errorf("synthesis prompt missing %q", want)
		}
	}

	// Persisted once, after success, with the emotion tag.
	if len(conv.Appended) != 1 {
		t.Fatalf("expected 1 persisted exchange, got %d", len(conv.Appended))
	}
	if conv.Appended[0].Emotion != "worried" || conv.Appended[0].Response != out.Response {
		t.Errorf("unexpected persisted exchange: %+v", conv.Appended[0])
	}
}

func TestResolveQueryGeneralQuestionBypassesDispatcher(t *testing.T) {
	llm := scriptedLLM("general_question", "Try short daily study sessions and praise effort.")
	records := &mockRecordRepo{
		AttendanceFunc: func(ctx context.Context, studentID string) ([]model.Attendance, error) {
			t.Error("dispatcher must not run for general questions")
			return nil, nil
		},
		GradesFunc: func(ctx context.Context, studentID string) ([]model.Grade, error) {
			t.Error("dispatcher must not run for general questions")
			return nil, nil
		},
	}
	uc := newTestUseCase(llm, &mockConvRepo{}, records, &mockVectorRepo{})

	out, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{
		Query: "How do I motivate my child to focus on schoolwork?",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != chat.IntentGeneralQuestion {
		t.Errorf("expected general_question, got %s", out.Intent)
	}
}

func TestResolveQueryGeneralQuestionUsesDocumentWhenIndexed(t *testing.T) {
	llm := scriptedLLM("general_question", "According to the handbook, pickup is at 3pm.")
	vectors := &mockVectorRepo{
		HasFunc: func(ctx context.Context, sessionID string) (bool, error) { return true, nil },
		SearchFunc: func(ctx context.Context, sessionID string, vector []float32, limit int) ([]chat.ScoredChunk, error) {
			if sessionID != "parent-1" {
				t.Errorf("expected session scoped to user, got %s", sessionID)
			}
			return []chat.ScoredChunk{
				{Chunk: chat.DocumentChunk{Text: "Pickup time is 3pm at the main gate."}, Score: 0.91},
			}, nil
		},
	}
	uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, vectors)

	_, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "When is pickup?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	synthPrompt := lastMessageText(llm.Requests[len(llm.Requests)-1])
	if !strings.Contains(synthPrompt, "Pickup time is 3pm") {
		t.Error("synthesis prompt should carry the retrieved chunk")
	}
}

func TestResolveQueryEmptyDataStatesUnavailability(t *testing.T) {
	llm := scriptedLLM("grade", "I don't have grade information available right now.")
	uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})

	_, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "What are my child's grades?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	synthPrompt := lastMessageText(llm.Requests[len(llm.Requests)-1])
	if !strings.Contains(synthPrompt, noRecordsMarker) {
		t.Error("empty fetch should surface the no-records marker to the synthesizer")
	}
	if !strings.Contains(synthPrompt, "not available") {
		t.Error("prompt should instruct stating unavailability for empty data")
	}
}

func TestResolveQueryDegradedClassification(t *testing.T) {
	call := 0
	llm := &mockLLM{}
	llm.GenerateFunc = func(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
		call++
		if call <= 2 {
			return textResponse("not json at all"), nil
		}
		return textResponse("I'm here to help with school questions."), nil
	}
	conv := &mockConvRepo{}
	uc := newTestUseCase(llm, conv, &mockRecordRepo{}, &mockVectorRepo{})

	out, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "???"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Intent != chat.IntentUnknown || out.Confidence != "degraded" {
		t.Errorf("expected degraded unknown intent, got intent=%s confidence=%s", out.Intent, out.Confidence)
	}
	if len(conv.Appended) != 1 {
		t.Errorf("degraded answers are still persisted, got %d", len(conv.Appended))
	}
}

func TestResolveQueryFetchFailureIsTerminal(t *testing.T) {
	llm := scriptedLLM("attendance", "unused")
	conv := &mockConvRepo{}
	records := &mockRecordRepo{
		AttendanceFunc: func(ctx context.Context, studentID string) ([]model.Attendance, error) {
			return nil, fmt.Errorf("connection refused")
		},
	}
	uc := newTestUseCase(llm, conv, records, &mockVectorRepo{})

	_, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "attendance?"})
	var fetchErr *chat.FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected FetchError, got %v", err)
	}
	if len(conv.Appended) != 0 {
		t.Error("failed requests must not be persisted")
	}
}

func TestResolveQuerySynthesisFailureIsTerminal(t *testing.T) {
	llm := &mockLLM{}
	llm.GenerateFunc = func(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
		if len(llm.Requests) == 1 {
			return textResponse(`{"intent": "grade"}`), nil
		}
		return nil, fmt.Errorf("provider down")
	}
	conv := &mockConvRepo{}
	uc := newTestUseCase(llm, conv, &mockRecordRepo{}, &mockVectorRepo{})

	_, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "grades?"})
	var synthErr *chat.SynthesisError
	if !errors.As(err, &synthErr) {
		t.Fatalf("expected SynthesisError, got %v", err)
	}
	if len(conv.Appended) != 0 {
		t.Error("failed requests must not be persisted")
	}
}

func TestResolveQueryPersistenceFailureKeepsAnswer(t *testing.T) {
	llm := scriptedLLM("general_question", "Here is some advice.")
	failing := &mockConvRepo{
		AppendFunc: func(ctx context.Context, userID string, opt repository.AppendExchangeOptions) error {
			return fmt.Errorf("disk full")
		},
	}
	uc := newTestUseCase(llm, failing, &mockRecordRepo{}, &mockVectorRepo{})

	out, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "advice?"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Response == "" {
		t.Error("expected an answer despite persistence outcome")
	}
}

func TestResolveQueryEmptyQuery(t *testing.T) {
	uc := newTestUseCase(&mockLLM{}, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	if _, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{}); !errors.Is(err, chat.ErrEmptyQuery) {
		t.Fatalf("expected ErrEmptyQuery, got %v", err)
	}
}

func TestResolveQueryTranslatesAnswer(t *testing.T) {
	llm := scriptedLLM("general_question", "english answer")
	uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	uc.speech = &mockSpeech{
		TranslateFunc: func(ctx context.Context, text, source, target string) (string, error) {
			if source != "en" || target != "hi" {
				t.Errorf("unexpected translation pair %s->%s", source, target)
			}
			return "hindi answer", nil
		},
	}

	out, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "q", Language: "hi"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.Response != "hindi answer" {
		t.Errorf("expected translated answer, got %q", out.Response)
	}
}

func TestResolveQueryTranslationFailureDegrades(t *testing.T) {
	llm := scriptedLLM("general_question", "english answer")
	uc := newTestUseCase(llm, &mockConvRepo{}, &mockRecordRepo{}, &mockVectorRepo{})
	uc.speech = &mockSpeech{
		TranslateFunc: func(ctx context.Context, text, source, target string) (string, error) {
			return "", fmt.Errorf("service down")
		},
	}

	out, err := uc.ResolveQuery(context.Background(), testScope(), chat.QueryInput{Query: "q", Language: "hi"})
	if err != nil {
		t.Fatalf("translation failure must not abort: %v", err)
	}
	if out.Response != "english answer" {
		t.Errorf("expected untranslated answer, got %q", out.Response)
	}
}
