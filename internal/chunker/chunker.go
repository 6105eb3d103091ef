// Package chunker splits applicant CV text into overlapping spans sized
// for embedding and retrieval.
package chunker

import (
	"fmt"

	"github.com/tmc/langchaingo/textsplitter"

	"recruiter-rag/internal/models"
)

// Chunker produces fixed-size overlapping chunks, preferring paragraph,
// then line, then word boundaries before a hard character cut.
type Chunker struct {
	splitter textsplitter.RecursiveCharacter
}

// New creates a Chunker. chunkOverlap must be smaller than chunkSize;
// callers validate that through the config layer.
func New(chunkSize, chunkOverlap int) *Chunker {
	return &Chunker{
		splitter: textsplitter.NewRecursiveCharacter(
			textsplitter.WithChunkSize(chunkSize),
			textsplitter.WithChunkOverlap(chunkOverlap),
		),
	}
}

// Split chunks one applicant's full CV text, tagging every chunk with the
// applicant's name. Empty input yields zero chunks and no error.
func (c *Chunker) Split(applicant, text string) ([]models.Chunk, error) {
	if text == "" {
		return nil, nil
	}

	docs, err := textsplitter.CreateDocuments(c.splitter, []string{text}, []map[string]any{{"applicant": applicant}})
	if err != nil {
		return nil, fmt.Errorf("split text for %s: %w", applicant, err)
	}

	chunks := make([]models.Chunk, 0, len(docs))
	for _, doc := range docs {
		if doc.PageContent == "" {
			continue
		}
		chunks = append(chunks, models.Chunk{
			Content:   doc.PageContent,
			Applicant: applicant,
		})
	}
	return chunks, nil
}
