package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig
	Auth       AuthConfig

	// Storage
	Postgres PostgresConfig
	Qdrant   QdrantConfig

	// AI capabilities
	LLM      LLMConfig
	Voyage   VoyageConfig
	Bhashini BhashiniConfig
	YouTube  YouTubeConfig

	// Pipeline
	Chat       ChatConfig
	RateLimits RateLimitsConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// AuthConfig configures JWT verification. Token issuance is owned by the
// external auth service; this service only validates bearer tokens.
type AuthConfig struct {
	JWTSecret string
}

type PostgresConfig struct {
	DSN string
}

type QdrantConfig struct {
	URL            string
	CollectionName string
	VectorSize     int
}

type VoyageConfig struct {
	APIKey string
	Model  string
}

// BhashiniConfig configures the ASR/TTS/translation provider.
type BhashiniConfig struct {
	PipelineConfigEndpoint string
	InferenceEndpoint      string
	PipelineID             string
	UserID                 string
	APIKey                 string
	Timeout                time.Duration
}

type YouTubeConfig struct {
	APIKey     string
	MaxResults int
}

// ChatConfig holds the pipeline knobs.
type ChatConfig struct {
	HistoryDepth      int           // last K exchanges loaded as context
	RetrievalTopK     int           // chunks returned per retrieval
	ChunkSentences    int           // sentences per document chunk
	ChunkOverlap      int           // overlapping sentences between chunks
	ChunkMaxChars     int           // hard bound on chunk size
	ClassifyTimeout   time.Duration // bound on one classification call
	SynthesizeTimeout time.Duration // bound on one synthesis call
}

// RateLimitsConfig defines per-category sliding windows. The in-process
// limiter assumes a single-instance deployment; multi-process deployments
// need a shared store behind the same interface.
type RateLimitsConfig struct {
	Query    RateLimitConfig
	Voice    RateLimitConfig
	Document RateLimitConfig
	History  RateLimitConfig
}

type RateLimitConfig struct {
	Requests int
	Window   time.Duration
}

// LLMConfig holds configuration for the LLM provider abstraction layer.
type LLMConfig struct {
	Providers       []ProviderConfig `yaml:"providers"`
	FallbackEnabled bool             `yaml:"fallback_enabled"`
	RetryDelay      string           `yaml:"retry_delay"`
	MaxTotalTimeout string           `yaml:"max_total_timeout"`
}

// ProviderConfig holds configuration for a single LLM provider.
type ProviderConfig struct {
	Name     string `yaml:"name"`
	Enabled  bool   `yaml:"enabled"`
	Priority int    `yaml:"priority"`
	APIKey   string `yaml:"api_key"`
	BaseURL  string `yaml:"base_url,omitempty"`
	Model    string `yaml:"model"`
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/edupal/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/edupal/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	cfg.Auth.JWTSecret = viper.GetString("auth.jwt_secret")
	if secret := viper.GetString("jwt_secret"); secret != "" {
		cfg.Auth.JWTSecret = secret
	}

	// Storage
	cfg.Postgres.DSN = viper.GetString("postgres.dsn")
	if dsn := viper.GetString("postgres_dsn"); dsn != "" {
		cfg.Postgres.DSN = dsn
	}

	cfg.Qdrant.URL = viper.GetString("qdrant.url")
	cfg.Qdrant.CollectionName = viper.GetString("qdrant.collection_name")
	cfg.Qdrant.VectorSize = viper.GetInt("qdrant.vector_size")
	if qdrantURL := viper.GetString("qdrant_url"); qdrantURL != "" {
		cfg.Qdrant.URL = qdrantURL
	}

	// Voyage AI
	cfg.Voyage.APIKey = viper.GetString("voyage.api_key")
	cfg.Voyage.Model = viper.GetString("voyage.model")
	if voyageKey := viper.GetString("voyage_api_key"); voyageKey != "" {
		cfg.Voyage.APIKey = voyageKey
	}

	// Bhashini
	cfg.Bhashini.PipelineConfigEndpoint = viper.GetString("bhashini.pipeline_config_endpoint")
	cfg.Bhashini.InferenceEndpoint = viper.GetString("bhashini.inference_endpoint")
	cfg.Bhashini.PipelineID = viper.GetString("bhashini.pipeline_id")
	cfg.Bhashini.UserID = viper.GetString("bhashini.user_id")
	cfg.Bhashini.APIKey = expandEnvVar(viper.GetString("bhashini.api_key"))
	cfg.Bhashini.Timeout = viper.GetDuration("bhashini.timeout")

	// YouTube educational resources
	cfg.YouTube.APIKey = expandEnvVar(viper.GetString("youtube.api_key"))
	cfg.YouTube.MaxResults = viper.GetInt("youtube.max_results")

	// Chat pipeline
	cfg.Chat.HistoryDepth = viper.GetInt("chat.history_depth")
	cfg.Chat.RetrievalTopK = viper.GetInt("chat.retrieval_top_k")
	cfg.Chat.ChunkSentences = viper.GetInt("chat.chunk_sentences")
	cfg.Chat.ChunkOverlap = viper.GetInt("chat.chunk_overlap")
	cfg.Chat.ChunkMaxChars = viper.GetInt("chat.chunk_max_chars")
	cfg.Chat.ClassifyTimeout = viper.GetDuration("chat.classify_timeout")
	cfg.Chat.SynthesizeTimeout = viper.GetDuration("chat.synthesize_timeout")

	// Rate limits
	cfg.RateLimits.Query = loadRateLimit("rate_limits.query")
	cfg.RateLimits.Voice = loadRateLimit("rate_limits.voice")
	cfg.RateLimits.Document = loadRateLimit("rate_limits.document")
	cfg.RateLimits.History = loadRateLimit("rate_limits.history")

	// LLM Provider Abstraction
	cfg.LLM.FallbackEnabled = viper.GetBool("llm.fallback_enabled")
	cfg.LLM.RetryDelay = viper.GetString("llm.retry_delay")
	cfg.LLM.MaxTotalTimeout = viper.GetString("llm.max_total_timeout")

	if viper.IsSet("llm.providers") {
		providersRaw := viper.Get("llm.providers")
		if providersList, ok := providersRaw.([]interface{}); ok {
			for _, p := range providersList {
				if providerMap, ok := p.(map[string]interface{}); ok {
					provider := ProviderConfig{
						Name:     getStringFromMap(providerMap, "name"),
						Enabled:  getBoolFromMap(providerMap, "enabled"),
						Priority: getIntFromMap(providerMap, "priority"),
						APIKey:   expandEnvVar(getStringFromMap(providerMap, "api_key")),
						BaseURL:  getStringFromMap(providerMap, "base_url"),
						Model:    getStringFromMap(providerMap, "model"),
					}
					cfg.LLM.Providers = append(cfg.LLM.Providers, provider)
				}
			}
		}
	}

	if len(cfg.LLM.Providers) == 0 {
		return nil, fmt.Errorf("no LLM providers configured - please add llm.providers section to config.yaml")
	}

	return cfg, nil
}

func loadRateLimit(prefix string) RateLimitConfig {
	return RateLimitConfig{
		Requests: viper.GetInt(prefix + ".requests"),
		Window:   viper.GetDuration(prefix + ".window"),
	}
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("qdrant.collection_name", "edupal_documents")
	viper.SetDefault("qdrant.vector_size", 1024)
	viper.SetDefault("voyage.model", "voyage-3")

	viper.SetDefault("bhashini.pipeline_config_endpoint", "https://meity-auth.ulcacontrib.org/ulca/apis/v0/model/getModelsPipeline")
	viper.SetDefault("bhashini.inference_endpoint", "https://dhruva-api.bhashini.gov.in/services/inference/pipeline")
	viper.SetDefault("bhashini.timeout", "30s")

	viper.SetDefault("youtube.max_results", 3)

	viper.SetDefault("chat.history_depth", 5)
	viper.SetDefault("chat.retrieval_top_k", 5)
	viper.SetDefault("chat.chunk_sentences", 5)
	viper.SetDefault("chat.chunk_overlap", 1)
	viper.SetDefault("chat.chunk_max_chars", 800)
	viper.SetDefault("chat.classify_timeout", "20s")
	viper.SetDefault("chat.synthesize_timeout", "45s")

	viper.SetDefault("rate_limits.query.requests", 20)
	viper.SetDefault("rate_limits.query.window", "1m")
	viper.SetDefault("rate_limits.voice.requests", 10)
	viper.SetDefault("rate_limits.voice.window", "1m")
	viper.SetDefault("rate_limits.document.requests", 5)
	viper.SetDefault("rate_limits.document.window", "1m")
	viper.SetDefault("rate_limits.history.requests", 30)
	viper.SetDefault("rate_limits.history.window", "1m")

	// LLM defaults
	viper.SetDefault("llm.fallback_enabled", true)
	viper.SetDefault("llm.retry_delay", "1s")
	viper.SetDefault("llm.max_total_timeout", "60s")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}

// Helper functions to safely extract values from map[string]interface{}
func getStringFromMap(m map[string]interface{}, key string) string {
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}

func getBoolFromMap(m map[string]interface{}, key string) bool {
	if val, ok := m[key]; ok {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return false
}

func getIntFromMap(m map[string]interface{}, key string) int {
	if val, ok := m[key]; ok {
		if i, ok := val.(int); ok {
			return i
		}
		// Handle float64 from JSON unmarshaling
		if f, ok := val.(float64); ok {
			return int(f)
		}
	}
	return 0
}
