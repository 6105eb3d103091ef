// Package vectorindex stores chunk vectors in an in-memory chromem-go
// collection and serves similarity search over them.
package vectorindex

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"github.com/google/uuid"
	"github.com/philippgille/chromem-go"
	"github.com/rs/zerolog/log"

	"recruiter-rag/internal/embedding"
	"recruiter-rag/internal/models"
)

// ErrEmptyCorpus is returned when a build is attempted with zero usable
// chunks. The whole build fails; there is no partial index.
var ErrEmptyCorpus = errors.New("no chunks to index")

const collectionName = "cv-chunks"

// Index is one immutable generation of the searchable chunk store. It
// owns the vectors plus the original text and applicant metadata.
// "Adding" documents means building a new Index over the full chunk set
// and discarding this one.
type Index struct {
	generation string
	collection *chromem.Collection
	embedder   embedding.Service
	count      int
}

// Build embeds all chunk texts via the passage path and indexes them in a
// fresh chromem-go collection. Document IDs are zero-padded insertion
// sequence numbers so that equal-similarity results keep insertion order.
func Build(ctx context.Context, embedder embedding.Service, chunks []models.Chunk) (*Index, error) {
	if len(chunks) == 0 {
		return nil, ErrEmptyCorpus
	}

	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Content
	}

	vectors, err := embedder.EmbedPassages(ctx, texts)
	if err != nil {
		return nil, fmt.Errorf("embed passages: %w", err)
	}
	if len(vectors) != len(chunks) {
		return nil, fmt.Errorf("embedding count mismatch: %d chunks, %d vectors", len(chunks), len(vectors))
	}

	db := chromem.NewDB()
	collection, err := db.CreateCollection(collectionName, nil, queryEmbeddingFunc(embedder))
	if err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}

	docs := make([]chromem.Document, len(chunks))
	for i, c := range chunks {
		docs[i] = chromem.Document{
			ID:        fmt.Sprintf("%06d", i),
			Content:   c.Content,
			Embedding: vectors[i],
			Metadata:  map[string]string{"applicant": c.Applicant},
		}
	}
	if err := collection.AddDocuments(ctx, docs, runtime.NumCPU()); err != nil {
		return nil, fmt.Errorf("add documents: %w", err)
	}

	generation := uuid.New().String()
	log.Debug().Str("generation", generation).Int("chunks", len(chunks)).Msg("Built vector index")

	return &Index{
		generation: generation,
		collection: collection,
		embedder:   embedder,
		count:      len(chunks),
	}, nil
}

// Generation identifies this index build, for logging.
func (idx *Index) Generation() string { return idx.generation }

// Count reports the number of stored chunks.
func (idx *Index) Count() int { return idx.count }

// Search embeds the query via the query path and returns the k best
// chunks, best first. k is clamped to the stored chunk count; searching
// an empty index returns an empty slice, never an error. Ties are broken
// by insertion order.
func (idx *Index) Search(ctx context.Context, query string, k int) ([]models.RetrievedItem, error) {
	if idx.count == 0 || k <= 0 {
		return nil, nil
	}
	if k > idx.count {
		k = idx.count
	}

	queryVec, err := idx.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	results, err := idx.collection.QueryWithOptions(ctx, chromem.QueryOptions{
		QueryEmbedding: queryVec,
		NResults:       k,
	})
	if err != nil {
		return nil, fmt.Errorf("query collection: %w", err)
	}

	// chromem iterates documents from a map, so equal-similarity order is
	// not deterministic on its own. Re-sort on (similarity, insertion ID).
	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Similarity != results[j].Similarity {
			return results[i].Similarity > results[j].Similarity
		}
		return results[i].ID < results[j].ID
	})

	items := make([]models.RetrievedItem, 0, len(results))
	for _, res := range results {
		items = append(items, models.RetrievedItem{
			Content:   res.Content,
			Applicant: res.Metadata["applicant"],
			Score:     res.Similarity,
			Kind:      models.KindChunk,
		})
	}
	return items, nil
}

// queryEmbeddingFunc adapts the service's query path for chromem's
// text-query option. Build always supplies precomputed passage vectors,
// so this only runs for QueryText searches.
func queryEmbeddingFunc(embedder embedding.Service) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		return embedder.EmbedQuery(ctx, text)
	}
}
