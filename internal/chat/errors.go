package chat

import (
	"errors"
	"fmt"
)

// Domain-specific errors for the chat package.
var (
	ErrEmptyQuery    = errors.New("query is empty")
	ErrEmptyAudio    = errors.New("audio is empty")
	ErrEmptyImage    = errors.New("image is empty")
	ErrEmptyDocument = errors.New("document is empty")
)

// ClassificationError means the intent could not be determined from the
// model output. It is fatal to the request, never silently defaulted.
type ClassificationError struct {
	Raw   string // model output that failed to parse, truncated
	Cause error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("intent classification failed: %v", e.Cause)
}

func (e *ClassificationError) Unwrap() error { return e.Cause }

// FetchError means the record fetch for a classified intent failed. An empty
// result set is not a FetchError.
type FetchError struct {
	Intent Intent
	Cause  error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s records: %v", e.Intent, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// SynthesisError means the final answer could not be produced.
type SynthesisError struct {
	Cause error
}

func (e *SynthesisError) Error() string {
	return fmt.Sprintf("answer synthesis failed: %v", e.Cause)
}

func (e *SynthesisError) Unwrap() error { return e.Cause }

// IngestError means a document could not be indexed.
type IngestError struct {
	Reason string
	Cause  error
}

func (e *IngestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("document ingestion failed: %s: %v", e.Reason, e.Cause)
	}
	return fmt.Sprintf("document ingestion failed: %s", e.Reason)
}

func (e *IngestError) Unwrap() error { return e.Cause }

// TranslationWarning is non-fatal: the answer is delivered untranslated.
type TranslationWarning struct {
	Language string
	Cause    error
}

func (e *TranslationWarning) Error() string {
	return fmt.Sprintf("translation to %s unavailable: %v", e.Language, e.Cause)
}

func (e *TranslationWarning) Unwrap() error { return e.Cause }
