package httpserver

import (
	"database/sql"
	"errors"

	"github.com/gin-gonic/gin"

	"edupal/internal/chat/usecase"
	"edupal/internal/ratelimit"
	"edupal/pkg/bhashini"
	"edupal/pkg/gemini"
	"edupal/pkg/llmprovider"
	"edupal/pkg/log"
	"edupal/pkg/qdrant"
	"edupal/pkg/scope"
	"edupal/pkg/voyage"
	"edupal/pkg/youtube"
)

// HTTPServer holds all dependencies for the HTTP server.
type HTTPServer struct {
	// Server
	gin         *gin.Engine
	l           log.Logger
	port        int
	mode        string
	environment string

	// Storage
	postgresDB   *sql.DB
	qdrantClient *qdrant.Client
	collection   string
	vectorSize   int

	// AI capabilities
	llm      *llmprovider.Manager
	vision   gemini.IGemini
	embedder voyage.IVoyage
	speech   bhashini.IBhashini
	youtube  *youtube.Client

	// Request plumbing
	scopeManager *scope.Manager
	limiter      *ratelimit.Limiter
	chatConfig   usecase.Config
}

// Config is the dependency bag passed to New().
type Config struct {
	Logger      log.Logger
	Port        int
	Mode        string
	Environment string

	PostgresDB     *sql.DB
	QdrantClient   *qdrant.Client
	CollectionName string
	VectorSize     int

	LLM      *llmprovider.Manager
	Vision   gemini.IGemini
	Embedder voyage.IVoyage
	Speech   bhashini.IBhashini
	YouTube  *youtube.Client

	ScopeManager *scope.Manager
	Limiter      *ratelimit.Limiter
	ChatConfig   usecase.Config
}

// New creates a new HTTPServer instance.
func New(logger log.Logger, cfg Config) (*HTTPServer, error) {
	gin.SetMode(cfg.Mode)

	srv := &HTTPServer{
		l:            logger,
		gin:          gin.Default(),
		port:         cfg.Port,
		mode:         cfg.Mode,
		environment:  cfg.Environment,
		postgresDB:   cfg.PostgresDB,
		qdrantClient: cfg.QdrantClient,
		collection:   cfg.CollectionName,
		vectorSize:   cfg.VectorSize,
		llm:          cfg.LLM,
		vision:       cfg.Vision,
		embedder:     cfg.Embedder,
		speech:       cfg.Speech,
		youtube:      cfg.YouTube,
		scopeManager: cfg.ScopeManager,
		limiter:      cfg.Limiter,
		chatConfig:   cfg.ChatConfig,
	}

	if err := srv.validate(); err != nil {
		return nil, err
	}

	return srv, nil
}

func (srv HTTPServer) validate() error {
	if srv.l == nil {
		return errors.New("logger is required")
	}
	if srv.mode == "" {
		return errors.New("mode is required")
	}
	if srv.port == 0 {
		return errors.New("port is required")
	}
	if srv.postgresDB == nil {
		return errors.New("postgres connection is required")
	}
	if srv.llm == nil {
		return errors.New("llm provider manager is required")
	}
	if srv.scopeManager == nil {
		return errors.New("scope manager is required")
	}
	if srv.limiter == nil {
		return errors.New("rate limiter is required")
	}
	return nil
}
