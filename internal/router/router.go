// Package router classifies recruiter queries and dispatches retrieval.
package router

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"recruiter-rag/internal/config"
	"recruiter-rag/internal/models"
)

// Kind is the query classification outcome.
type Kind string

const (
	QueryCount   Kind = "count"
	QueryPerson  Kind = "applicant_specific"
	QueryGeneral Kind = "general"
)

// Analysis is the ephemeral classification of one query.
type Analysis struct {
	Kind      Kind
	Applicant string
}

// Searcher is the read-only view of the vector index the router needs.
type Searcher interface {
	Search(ctx context.Context, query string, k int) ([]models.RetrievedItem, error)
}

// Router decides, per query, between a synthetic count answer, a
// person-restricted retrieval, and a generic top-k search. It holds no
// per-query state and never mutates the index.
type Router struct {
	countKeywords []string
	cvKeywords    []string
	retrievalK    int
	specificK     int
	overFetchK    int
}

func New(cfg *config.Config) *Router {
	return &Router{
		countKeywords: cfg.Query.CountKeywords,
		cvKeywords:    cfg.Query.CVKeywords,
		retrievalK:    cfg.RAG.RetrievalK,
		specificK:     cfg.RAG.SpecificRetrievalK,
		overFetchK:    cfg.RAG.MaxSimilarityDocs,
	}
}

// Classify determines the retrieval path for a query. Order matters:
// count classification runs first because a count-style phrase could
// coincidentally contain an applicant's name.
//
// Person matching is unscoped substring containment in list order, so a
// short name contained in a longer one ("Jo" inside "John") matches
// whichever appears first in the applicant list. That mirrors the
// behavior this system reimplements; word-boundary matching would be the
// hardening alternative.
func (r *Router) Classify(query string, applicantNames []string) Analysis {
	lower := strings.ToLower(query)

	if containsAny(lower, r.countKeywords) && containsAny(lower, r.cvKeywords) {
		return Analysis{Kind: QueryCount}
	}

	for _, name := range applicantNames {
		if name != "" && strings.Contains(lower, strings.ToLower(name)) {
			return Analysis{Kind: QueryPerson, Applicant: name}
		}
	}

	return Analysis{Kind: QueryGeneral}
}

// Retrieve runs the retrieval path chosen by Classify and returns ranked
// items, best first. A failing underlying search degrades to an empty
// result set rather than propagating, so a transient index issue reads as
// "no results" instead of crashing the query.
func (r *Router) Retrieve(ctx context.Context, index Searcher, query string, applicantNames []string) []models.RetrievedItem {
	analysis := r.Classify(query, applicantNames)

	switch analysis.Kind {
	case QueryCount:
		// Exact counts must never depend on noisy similarity search; the
		// index is bypassed entirely.
		return []models.RetrievedItem{countItem(applicantNames)}
	case QueryPerson:
		return r.retrievePerson(ctx, index, query, analysis.Applicant)
	default:
		return r.search(ctx, index, query, r.retrievalK)
	}
}

// retrievePerson over-fetches a broad result set, filters it down to the
// matched applicant, and truncates. A direct k-sized search could let
// another applicant's globally higher-ranking chunks crowd out the
// requested person's.
func (r *Router) retrievePerson(ctx context.Context, index Searcher, query, applicant string) []models.RetrievedItem {
	broad := r.search(ctx, index, query, r.overFetchK)

	filtered := make([]models.RetrievedItem, 0, r.specificK)
	for _, item := range broad {
		if strings.EqualFold(item.Applicant, applicant) {
			filtered = append(filtered, item)
			if len(filtered) == r.specificK {
				break
			}
		}
	}
	return filtered
}

func (r *Router) search(ctx context.Context, index Searcher, query string, k int) []models.RetrievedItem {
	items, err := index.Search(ctx, query, k)
	if err != nil {
		log.Warn().Err(err).Str("query", query).Msg("Retrieval failed, returning no results")
		return nil
	}
	return items
}

func countItem(applicantNames []string) models.RetrievedItem {
	content := fmt.Sprintf("Total number of CVs/applicants in the database: %d\n\nApplicant names: %s",
		len(applicantNames), strings.Join(applicantNames, ", "))
	return models.RetrievedItem{
		Content:   content,
		Applicant: models.SystemApplicant,
		Kind:      models.KindCount,
	}
}

func containsAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
