package usecase

import (
	"context"
	"fmt"

	"edupal/internal/chat"
	"edupal/internal/chat/repository"
	"edupal/internal/model"
	"edupal/pkg/llmprovider"
	"edupal/pkg/youtube"
)

// Mock logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Debugf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Info(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Infof(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Warn(ctx context.Context, arg ...any)                    {}
func (m *mockLogger) Warnf(ctx context.Context, template string, arg ...any)  {}
func (m *mockLogger) Error(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Errorf(ctx context.Context, template string, arg ...any) {}
func (m *mockLogger) Fatal(ctx context.Context, arg ...any)                   {}
func (m *mockLogger) Fatalf(ctx context.Context, template string, arg ...any) {}

// mockLLM records every request and answers via the func field.
type mockLLM struct {
	GenerateFunc func(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
	Requests     []*llmprovider.Request
}

func (m *mockLLM) GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error) {
	m.Requests = append(m.Requests, req)
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, req)
	}
	return textResponse("ok"), nil
}

func textResponse(text string) *llmprovider.Response {
	return &llmprovider.Response{
		Content: llmprovider.Message{
			Role:  "assistant",
			Parts: []llmprovider.Part{{Text: text}},
		},
	}
}

// lastMessageText returns the text of the final message in a request.
func lastMessageText(req *llmprovider.Request) string {
	if req == nil || len(req.Messages) == 0 {
		return ""
	}
	last := req.Messages[len(req.Messages)-1]
	var out string
	for _, p := range last.Parts {
		out += p.Text
	}
	return out
}

type mockConvRepo struct {
	AppendFunc func(ctx context.Context, userID string, opt repository.AppendExchangeOptions) error
	LastNFunc  func(ctx context.Context, userID, threadID string, n int) ([]chat.Exchange, error)
	ListFunc   func(ctx context.Context, userID string, opt repository.ListExchangesOptions) ([]chat.Exchange, int, error)

	Appended []repository.AppendExchangeOptions
}

func (m *mockConvRepo) Append(ctx context.Context, userID string, opt repository.AppendExchangeOptions) error {
	m.Appended = append(m.Appended, opt)
	if m.AppendFunc != nil {
		return m.AppendFunc(ctx, userID, opt)
	}
	return nil
}

func (m *mockConvRepo) LastN(ctx context.Context, userID, threadID string, n int) ([]chat.Exchange, error) {
	if m.LastNFunc != nil {
		return m.LastNFunc(ctx, userID, threadID, n)
	}
	return nil, nil
}

func (m *mockConvRepo) List(ctx context.Context, userID string, opt repository.ListExchangesOptions) ([]chat.Exchange, int, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, userID, opt)
	}
	return nil, 0, repository.ErrThreadNotFound
}

type mockRecordRepo struct {
	AttendanceFunc func(ctx context.Context, studentID string) ([]model.Attendance, error)
	ActivitiesFunc func(ctx context.Context, studentID string) ([]model.Activity, error)
	BehaviourFunc  func(ctx context.Context, studentID string) ([]model.Behaviour, error)
	GradesFunc     func(ctx context.Context, studentID string) ([]model.Grade, error)
}

func (m *mockRecordRepo) GetAttendance(ctx context.Context, studentID string) ([]model.Attendance, error) {
	if m.AttendanceFunc != nil {
		return m.AttendanceFunc(ctx, studentID)
	}
	return nil, nil
}

func (m *mockRecordRepo) GetActivities(ctx context.Context, studentID string) ([]model.Activity, error) {
	if m.ActivitiesFunc != nil {
		return m.ActivitiesFunc(ctx, studentID)
	}
	return nil, nil
}

func (m *mockRecordRepo) GetBehaviour(ctx context.Context, studentID string) ([]model.Behaviour, error) {
	if m.BehaviourFunc != nil {
		return m.BehaviourFunc(ctx, studentID)
	}
	return nil, nil
}

func (m *mockRecordRepo) GetGrades(ctx context.Context, studentID string) ([]model.Grade, error) {
	if m.GradesFunc != nil {
		return m.GradesFunc(ctx, studentID)
	}
	return nil, nil
}

type mockVectorRepo struct {
	ReplaceFunc func(ctx context.Context, sessionID string, chunks []chat.DocumentChunk) error
	SearchFunc  func(ctx context.Context, sessionID string, vector []float32, limit int) ([]chat.ScoredChunk, error)
	HasFunc     func(ctx context.Context, sessionID string) (bool, error)
}

func (m *mockVectorRepo) ReplaceSession(ctx context.Context, sessionID string, chunks []chat.DocumentChunk) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, sessionID, chunks)
	}
	return nil
}

func (m *mockVectorRepo) Search(ctx context.Context, sessionID string, vector []float32, limit int) ([]chat.ScoredChunk, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, sessionID, vector, limit)
	}
	return nil, nil
}

func (m *mockVectorRepo) HasSession(ctx context.Context, sessionID string) (bool, error) {
	if m.HasFunc != nil {
		return m.HasFunc(ctx, sessionID)
	}
	return false, nil
}

type mockEmbedder struct {
	EmbedFunc func(ctx context.Context, texts []string) ([][]float32, error)
}

func (m *mockEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	if m.EmbedFunc != nil {
		return m.EmbedFunc(ctx, texts)
	}
	vectors := make([][]float32, len(texts))
	for i := range vectors {
		vectors[i] = []float32{1, 0, 0}
	}
	return vectors, nil
}

type mockSpeech struct {
	TranscribeFunc func(ctx context.Context, audio []byte, lang string) (string, error)
	SynthesizeFunc func(ctx context.Context, text, lang string) ([]byte, error)
	TranslateFunc  func(ctx context.Context, text, source, target string) (string, error)
}

func (m *mockSpeech) Transcribe(ctx context.Context, audio []byte, lang string) (string, error) {
	if m.TranscribeFunc != nil {
		return m.TranscribeFunc(ctx, audio, lang)
	}
	return "", fmt.Errorf("not configured")
}

func (m *mockSpeech) Synthesize(ctx context.Context, text, lang string) ([]byte, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, lang)
	}
	return nil, fmt.Errorf("not configured")
}

func (m *mockSpeech) Translate(ctx context.Context, text, source, target string) (string, error) {
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, text, source, target)
	}
	return "", fmt.Errorf("not configured")
}

func (m *mockSpeech) RefreshPipeline(ctx context.Context) error { return nil }
func (m *mockSpeech) Invalidate()                               {}

type mockResources struct {
	SearchFunc func(ctx context.Context, topic string) ([]youtube.Resource, error)
}

func (m *mockResources) SearchEducational(ctx context.Context, topic string) ([]youtube.Resource, error) {
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, topic)
	}
	return nil, nil
}

// newTestUseCase wires a usecase with all mocks; callers override func
// fields as needed.
func newTestUseCase(llm *mockLLM, conv *mockConvRepo, records *mockRecordRepo, vectors *mockVectorRepo) *implUseCase {
	return New(
		&mockLogger{},
		llm,
		nil,
		&mockEmbedder{},
		&mockSpeech{},
		&mockResources{},
		conv,
		records,
		vectors,
		Config{HistoryDepth: 5, RetrievalTopK: 3, ChunkSentences: 2, ChunkOverlap: 1, ChunkMaxChars: 400},
	)
}

func testScope() model.Scope {
	return model.Scope{UserID: "parent-1", StudentID: "student-9", Language: "en"}
}
