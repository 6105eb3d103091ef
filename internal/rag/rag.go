// Package rag ties extraction, chunking, indexing, routing, and answer
// generation into one query session over a CV corpus.
package rag

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog/log"

	"recruiter-rag/internal/chunker"
	"recruiter-rag/internal/config"
	"recruiter-rag/internal/embedding"
	"recruiter-rag/internal/extractor"
	"recruiter-rag/internal/generator"
	"recruiter-rag/internal/helper"
	"recruiter-rag/internal/models"
	"recruiter-rag/internal/router"
	"recruiter-rag/internal/vectorindex"
)

const snippetMaxLen = 400

// generation pairs one immutable index build with the applicant list it
// was built from. Replaced wholesale, never patched.
type generation struct {
	index          *vectorindex.Index
	applicantNames []string
}

// Session holds the current index generation and answers recruiter
// questions against it. Rebuilding replaces the generation with a single
// atomic swap, so in-flight queries complete against the old build or the
// new one, never a mix of both.
type Session struct {
	cfg       *config.Config
	embedder  embedding.Service
	generator generator.Service
	router    *router.Router
	chunker   *chunker.Chunker
	current   atomic.Pointer[generation]
}

func NewSession(cfg *config.Config, embedder embedding.Service, gen generator.Service) *Session {
	return &Session{
		cfg:       cfg,
		embedder:  embedder,
		generator: gen,
		router:    router.New(cfg),
		chunker:   chunker.New(cfg.RAG.ChunkSize, cfg.RAG.ChunkOverlap),
	}
}

// Ingest extracts, chunks, embeds, and indexes a batch of uploaded CVs,
// then swaps the new generation in. One unreadable or unsupported file is
// skipped and recorded; it never aborts the batch. When nothing usable
// remains the whole build fails with vectorindex.ErrEmptyCorpus and the
// previous generation stays live; the returned BatchResult still reports
// the skipped files.
//
// A later file with the same derived applicant name replaces the earlier
// one's text in the new generation.
func (s *Session) Ingest(ctx context.Context, files []models.UploadFile) (*models.BatchResult, error) {
	result := &models.BatchResult{}

	var names []string
	texts := make(map[string]string)
	for _, file := range files {
		text, err := extractor.Extract(file.Name, file.Data)
		if err != nil {
			log.Warn().Err(err).Str("file", file.Name).Msg("Skipping file")
			result.Skipped = append(result.Skipped, models.SkippedFile{Filename: file.Name, Reason: err.Error()})
			continue
		}

		name := helper.PersonName(file.Name)
		if _, seen := texts[name]; !seen {
			names = append(names, name)
		}
		texts[name] = text
	}

	var chunks []models.Chunk
	for _, name := range names {
		applicantChunks, err := s.chunker.Split(name, texts[name])
		if err != nil {
			return result, fmt.Errorf("chunk %s: %w", name, err)
		}
		chunks = append(chunks, applicantChunks...)
	}

	index, err := vectorindex.Build(ctx, s.embedder, chunks)
	if err != nil {
		return result, err
	}

	s.current.Store(&generation{index: index, applicantNames: names})
	result.Succeeded = names

	log.Info().Str("generation", index.Generation()).
		Int("applicants", len(names)).
		Int("chunks", index.Count()).
		Int("skipped", len(result.Skipped)).
		Msg("Indexed CV batch")

	return result, nil
}

// Query answers one recruiter question. It always returns a displayable
// result: routing failures degrade to "no results", generation failures
// become an error message in the answer field.
func (s *Session) Query(ctx context.Context, question string) *models.QueryResult {
	gen := s.current.Load()
	if gen == nil {
		return &models.QueryResult{Answer: models.NotIndexedAnswer, Sources: []models.Source{}}
	}

	items := s.router.Retrieve(ctx, gen.index, question, gen.applicantNames)
	if len(items) == 0 {
		return &models.QueryResult{Answer: models.NoDocumentsAnswer, Sources: []models.Source{}}
	}

	prompt := fmt.Sprintf(models.AnswerPromptTemplate, buildContext(items), question)
	answer, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		log.Error().Err(err).Msg("Answer generation failed")
		return &models.QueryResult{
			Answer:  fmt.Sprintf("Error occurred: %s", err),
			Sources: []models.Source{},
		}
	}

	return &models.QueryResult{Answer: answer, Sources: sourcesFrom(items)}
}

// ApplicantNames returns the name list of the live generation.
func (s *Session) ApplicantNames() []string {
	if gen := s.current.Load(); gen != nil {
		return gen.applicantNames
	}
	return nil
}

// Ready reports whether an index generation is live.
func (s *Session) Ready() bool {
	return s.current.Load() != nil
}

// Suggestions returns example questions, including applicant-specific
// ones when a generation is live.
func (s *Session) Suggestions() []string {
	suggestions := []string{
		"Who has experience in machine learning?",
		"Compare the experience levels of all candidates",
		"How many candidates have Python experience?",
		"What are the technical skills of all candidates?",
	}
	if names := s.ApplicantNames(); len(names) > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("What are %s's technical skills?", names[0]),
			fmt.Sprintf("Tell me about %s's work experience", names[0]),
		)
	}
	return suggestions
}

// buildContext renders retrieved items as labeled blocks, router order
// preserved, blocks separated by a blank line.
func buildContext(items []models.RetrievedItem) string {
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = fmt.Sprintf("[Applicant: %s]\n%s", item.Applicant, item.Content)
	}
	return strings.Join(parts, "\n\n")
}

// sourcesFrom builds snippet previews: chunk text normalized to a single
// whitespace-collapsed line, then truncated at a word boundary.
func sourcesFrom(items []models.RetrievedItem) []models.Source {
	sources := make([]models.Source, len(items))
	for i, item := range items {
		sources[i] = models.Source{
			Applicant: item.Applicant,
			Snippet:   helper.TruncateText(helper.CleanText(item.Content), snippetMaxLen),
			Kind:      item.Kind,
		}
	}
	return sources
}
