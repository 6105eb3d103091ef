// Package embedding wraps external embedding backends behind a small
// capability interface with E5-style passage/query framing.
package embedding

import (
	"context"
	"strings"

	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/ollama"
	"github.com/tmc/langchaingo/llms/openai"

	"recruiter-rag/internal/config"
)

// Service converts text into fixed-dimension vectors. Stored passages and
// search queries take different paths; see E5.
type Service interface {
	EmbedPassages(ctx context.Context, texts []string) ([][]float32, error)
	EmbedQuery(ctx context.Context, text string) ([]float32, error)
}

const (
	passagePrefix = "passage: "
	queryPrefix   = "query: "
)

// E5 applies the asymmetric framing E5-family models were trained with:
// stored passages are prefixed "passage: ", queries "query: ". Omitting
// the prefixes raises no error but silently degrades ranking quality, so
// every embedding call in the pipeline goes through this wrapper.
type E5 struct {
	inner embeddings.Embedder
}

// NewE5 wraps an embedder with passage/query framing.
func NewE5(inner embeddings.Embedder) *E5 {
	return &E5{inner: inner}
}

func (e *E5) EmbedPassages(ctx context.Context, texts []string) ([][]float32, error) {
	prefixed := make([]string, len(texts))
	for i, t := range texts {
		prefixed[i] = passagePrefix + t
	}
	return e.inner.EmbedDocuments(ctx, prefixed)
}

func (e *E5) EmbedQuery(ctx context.Context, text string) ([]float32, error) {
	return e.inner.EmbedQuery(ctx, queryPrefix+text)
}

// NewService builds the configured embedding backend wrapped in E5
// framing.
func NewService(cfg *config.EmbeddingConfig) (Service, error) {
	inner, err := newEmbedder(cfg)
	if err != nil {
		return nil, err
	}
	return NewE5(inner), nil
}

func newEmbedder(cfg *config.EmbeddingConfig) (embeddings.Embedder, error) {
	switch cfg.Provider {
	case "ollama":
		llm, err := ollama.New(
			ollama.WithServerURL(cfg.BaseURL),
			ollama.WithModel(cfg.Model),
		)
		if err != nil {
			return nil, err
		}
		return embeddings.NewEmbedder(llm)
	default:
		opts := []openai.Option{
			openai.WithToken(strings.TrimPrefix(cfg.APIKey, "Bearer ")),
			openai.WithModel(cfg.Model),
		}
		if cfg.BaseURL != "" {
			opts = append(opts, openai.WithBaseURL(cfg.BaseURL))
		}
		llm, err := openai.New(opts...)
		if err != nil {
			return nil, err
		}
		return embeddings.NewEmbedder(llm)
	}
}
