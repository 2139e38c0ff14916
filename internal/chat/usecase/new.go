package usecase

import (
	"context"

	"edupal/internal/chat/repository"
	"edupal/internal/chunker"
	"edupal/pkg/bhashini"
	"edupal/pkg/gemini"
	"edupal/pkg/llmprovider"
	pkgLog "edupal/pkg/log"
	"edupal/pkg/voyage"
	"edupal/pkg/youtube"
)

// completionClient is the slice of the provider manager the pipeline needs.
type completionClient interface {
	GenerateContent(ctx context.Context, req *llmprovider.Request) (*llmprovider.Response, error)
}

// resourceFinder looks up educational links for a topic.
type resourceFinder interface {
	SearchEducational(ctx context.Context, topic string) ([]youtube.Resource, error)
}

// Config holds the pipeline tuning knobs.
type Config struct {
	HistoryDepth   int
	RetrievalTopK  int
	ChunkSentences int
	ChunkOverlap   int
	ChunkMaxChars  int
}

type implUseCase struct {
	l          pkgLog.Logger
	llm        completionClient
	vision     gemini.IGemini     // nil disables image queries
	embedder   voyage.IVoyage     // nil disables document ingestion
	speech     bhashini.IBhashini // nil disables voice and translation
	resources  resourceFinder     // nil disables resource lookup
	convRepo   repository.ConversationRepository
	recordRepo repository.RecordRepository
	vectorRepo repository.VectorRepository
	chunker    *chunker.SentenceChunker
	cfg        Config
}

// New creates the chat UseCase. Optional collaborators may be nil; the
// corresponding features degrade or reject cleanly.
func New(
	l pkgLog.Logger,
	llm completionClient,
	vision gemini.IGemini,
	embedder voyage.IVoyage,
	speech bhashini.IBhashini,
	resources resourceFinder,
	convRepo repository.ConversationRepository,
	recordRepo repository.RecordRepository,
	vectorRepo repository.VectorRepository,
	cfg Config,
) *implUseCase {
	if cfg.HistoryDepth <= 0 {
		cfg.HistoryDepth = 5
	}
	if cfg.RetrievalTopK <= 0 {
		cfg.RetrievalTopK = 5
	}
	return &implUseCase{
		l:          l,
		llm:        llm,
		vision:     vision,
		embedder:   embedder,
		speech:     speech,
		resources:  resources,
		convRepo:   convRepo,
		recordRepo: recordRepo,
		vectorRepo: vectorRepo,
		chunker:    chunker.NewSentenceChunker(cfg.ChunkSentences, cfg.ChunkOverlap, cfg.ChunkMaxChars),
		cfg:        cfg,
	}
}
