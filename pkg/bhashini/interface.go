package bhashini

import "context"

// IBhashini defines speech and translation operations on the Bhashini
// pipeline. Implementations are safe for concurrent use.
type IBhashini interface {
	// Transcribe converts audio to text in the given source language.
	Transcribe(ctx context.Context, audio []byte, sourceLanguage string) (string, error)
	// Synthesize converts text to spoken audio in the given language.
	Synthesize(ctx context.Context, text, sourceLanguage string) ([]byte, error)
	// Translate translates text between two languages.
	Translate(ctx context.Context, text, sourceLanguage, targetLanguage string) (string, error)
	// RefreshPipeline re-fetches the pipeline config. Invalidate forces
	// the next call to refresh.
	RefreshPipeline(ctx context.Context) error
	Invalidate()
}

// New creates a Bhashini client. The pipeline config is fetched lazily on
// first use.
func New(cfg Config) (IBhashini, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return newClient(cfg), nil
}
