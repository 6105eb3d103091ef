package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"recruiter-rag/internal/models"
)

// EmbeddingConfig selects and configures the embedding backend.
// Provider is "openai" for any OpenAI-compatible endpoint or "ollama"
// for a local Ollama server.
type EmbeddingConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
}

// GenerationConfig configures the answering model.
type GenerationConfig struct {
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	APIKeyEnv   string  `yaml:"api_key_env"`
}

// RAGConfig holds chunking and retrieval knobs.
type RAGConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
	// RetrievalK is the result count for general queries.
	RetrievalK int `yaml:"retrieval_k"`
	// SpecificRetrievalK is the final count for person-specific queries.
	SpecificRetrievalK int `yaml:"specific_retrieval_k"`
	// MaxSimilarityDocs is the over-fetch size before filtering
	// person-specific results down to SpecificRetrievalK.
	MaxSimilarityDocs int `yaml:"max_similarity_docs"`
}

// QueryConfig holds the count-classification vocabularies.
type QueryConfig struct {
	CountKeywords []string `yaml:"count_keywords"`
	CVKeywords    []string `yaml:"cv_keywords"`
}

type Config struct {
	Embedding  EmbeddingConfig  `yaml:"embedding"`
	Generation GenerationConfig `yaml:"generation"`
	RAG        RAGConfig        `yaml:"rag"`
	Query      QueryConfig      `yaml:"query"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Default returns a config carrying the stock models and retrieval knobs.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func (c *Config) Validate() error {
	if c.RAG.ChunkOverlap >= c.RAG.ChunkSize {
		return fmt.Errorf("chunk_overlap (%d) must be less than chunk_size (%d)", c.RAG.ChunkOverlap, c.RAG.ChunkSize)
	}
	switch c.Embedding.Provider {
	case "openai", "ollama":
	default:
		return fmt.Errorf("unknown embedding provider: %q", c.Embedding.Provider)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Embedding.Provider == "" {
		cfg.Embedding.Provider = "openai"
	}
	if cfg.Embedding.Model == "" {
		cfg.Embedding.Model = "intfloat/e5-large-v2"
	}
	if cfg.Generation.Model == "" {
		cfg.Generation.Model = "gemini-2.0-flash-exp"
	}
	if cfg.Generation.Temperature == 0 {
		cfg.Generation.Temperature = 0.5
	}
	if cfg.Generation.APIKeyEnv == "" {
		cfg.Generation.APIKeyEnv = "GOOGLE_API_KEY"
	}
	if cfg.RAG.ChunkSize == 0 {
		cfg.RAG.ChunkSize = 1000
	}
	if cfg.RAG.ChunkOverlap == 0 {
		cfg.RAG.ChunkOverlap = 50
	}
	if cfg.RAG.RetrievalK == 0 {
		cfg.RAG.RetrievalK = 20
	}
	if cfg.RAG.SpecificRetrievalK == 0 {
		cfg.RAG.SpecificRetrievalK = 5
	}
	if cfg.RAG.MaxSimilarityDocs == 0 {
		cfg.RAG.MaxSimilarityDocs = 100
	}
	if len(cfg.Query.CountKeywords) == 0 {
		cfg.Query.CountKeywords = models.DefaultCountKeywords
	}
	if len(cfg.Query.CVKeywords) == 0 {
		cfg.Query.CVKeywords = models.DefaultCVKeywords
	}
}
