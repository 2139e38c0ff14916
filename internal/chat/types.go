package chat

import "time"

// Intent is the closed set of question categories the classifier produces.
type Intent string

const (
	IntentAttendance      Intent = "attendance"
	IntentActivity        Intent = "activity"
	IntentBehaviour       Intent = "behaviour"
	IntentGrade           Intent = "grade"
	IntentGeneralQuestion Intent = "general_question"

	// IntentUnknown marks a degraded classification. It is never produced by
	// a successful parse, only by the fallback path.
	IntentUnknown Intent = "unknown"
)

// Valid reports whether the intent is one of the five closed labels.
func (i Intent) Valid() bool {
	switch i {
	case IntentAttendance, IntentActivity, IntentBehaviour, IntentGrade, IntentGeneralQuestion:
		return true
	}
	return false
}

// Exchange is one completed query/response pair in a thread. Exchanges are
// immutable once stored.
type Exchange struct {
	ThreadID  string
	Query     string
	Response  string
	Emotion   string
	CreatedAt time.Time
}

// Field is one named value in a normalized record. Order matters.
type Field struct {
	Name  string
	Value string
}

// NormalizedRecord is an intent-shaped projection of a storage row. Only the
// fields the answer needs survive the projection.
type NormalizedRecord struct {
	Fields []Field
}

// DocumentChunk is one retrieval unit of an ingested document, owned by the
// vector index and replaced wholesale per session.
type DocumentChunk struct {
	DocumentID string
	SessionID  string
	Seq        int
	Text       string
	Vector     []float32
}

// ScoredChunk is a retrieval result with its similarity score.
type ScoredChunk struct {
	Chunk DocumentChunk
	Score float64
}

// Resource is an educational link attached to an answer.
type Resource struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	ChannelName string `json:"channel_name"`
}

// QueryInput is the input for a text query.
type QueryInput struct {
	Query    string
	ThreadID string // empty starts a new thread
	Emotion  string
	Language string // BCP-47-ish code, empty means "en"
}

// QueryOutput is the resolved answer for a query.
type QueryOutput struct {
	ThreadID    string
	Response    string
	Intent      Intent
	Confidence  string // "classified" or "degraded"
	Resources   []Resource
	Suggestions []string
}

// VoiceQueryInput is the input for an audio query.
type VoiceQueryInput struct {
	Audio    []byte
	Language string
	ThreadID string
	Emotion  string
	// WithAudio requests a spoken rendition of the answer.
	WithAudio bool
}

// VoiceQueryOutput carries the transcript alongside the resolved answer.
type VoiceQueryOutput struct {
	Transcript string
	Answer     QueryOutput
	Audio      []byte // empty unless WithAudio succeeded
}

// ImageQueryInput is the input for an image-conditioned query.
type ImageQueryInput struct {
	Query    string
	Image    []byte
	MIMEType string
	Language string
}

// ImageQueryOutput is the multimodal answer.
type ImageQueryOutput struct {
	Response    string
	Resources   []Resource
	Suggestions []string
}

// IngestInput is an uploaded document.
type IngestInput struct {
	Filename string
	Data     []byte
}

// IngestOutput reports what was indexed.
type IngestOutput struct {
	DocumentID string
	ChunkCount int
}

// HistoryInput is the input for paginated history retrieval.
type HistoryInput struct {
	ThreadID string
	Page     int
	PageSize int
}

// HistoryOutput is one page of a thread's exchanges, oldest first.
type HistoryOutput struct {
	Items      []Exchange
	TotalPages int
}
