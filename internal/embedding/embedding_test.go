package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiter-rag/internal/config"
)

// recordingEmbedder captures the texts the E5 wrapper hands to the
// underlying model.
type recordingEmbedder struct {
	documents []string
	queries   []string
}

func (r *recordingEmbedder) EmbedDocuments(_ context.Context, texts []string) ([][]float32, error) {
	r.documents = append(r.documents, texts...)
	out := make([][]float32, len(texts))
	for i := range out {
		out[i] = []float32{1, 0}
	}
	return out, nil
}

func (r *recordingEmbedder) EmbedQuery(_ context.Context, text string) ([]float32, error) {
	r.queries = append(r.queries, text)
	return []float32{1, 0}, nil
}

func TestE5_PassageFraming(t *testing.T) {
	inner := &recordingEmbedder{}
	e5 := NewE5(inner)

	vecs, err := e5.EmbedPassages(context.Background(), []string{"alpha", "beta"})
	require.NoError(t, err)
	require.Len(t, vecs, 2)

	assert.Equal(t, []string{"passage: alpha", "passage: beta"}, inner.documents)
	assert.Empty(t, inner.queries)
}

func TestE5_QueryFraming(t *testing.T) {
	inner := &recordingEmbedder{}
	e5 := NewE5(inner)

	_, err := e5.EmbedQuery(context.Background(), "who knows go?")
	require.NoError(t, err)

	assert.Equal(t, []string{"query: who knows go?"}, inner.queries)
	assert.Empty(t, inner.documents)
}

func TestNewService_OpenAI(t *testing.T) {
	svc, err := NewService(&config.EmbeddingConfig{
		Provider: "openai",
		BaseURL:  "http://localhost:8080/v1",
		APIKey:   "test-key",
		Model:    "intfloat/e5-large-v2",
	})
	require.NoError(t, err)
	assert.IsType(t, &E5{}, svc)
}
