package router

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recruiter-rag/internal/config"
	"recruiter-rag/internal/models"
)

type fakeSearcher struct {
	items []models.RetrievedItem
	err   error

	calls     int
	lastQuery string
	lastK     int
}

func (f *fakeSearcher) Search(_ context.Context, query string, k int) ([]models.RetrievedItem, error) {
	f.calls++
	f.lastQuery = query
	f.lastK = k
	if f.err != nil {
		return nil, f.err
	}
	if k < len(f.items) {
		return f.items[:k], nil
	}
	return f.items, nil
}

func chunkItem(applicant, content string, score float32) models.RetrievedItem {
	return models.RetrievedItem{Content: content, Applicant: applicant, Score: score, Kind: models.KindChunk}
}

func newRouter(t *testing.T) *Router {
	t.Helper()
	return New(config.Default())
}

func TestClassify(t *testing.T) {
	names := []string{"Jane Doe", "John Smith"}
	r := newRouter(t)

	tests := []struct {
		name      string
		query     string
		wantKind  Kind
		applicant string
	}{
		{"count with corpus noun", "How many CVs do you have?", QueryCount, ""},
		{"count phrasing without corpus noun", "How many years of experience?", QueryGeneral, ""},
		{"corpus noun without count phrasing", "Show me the best candidates", QueryGeneral, ""},
		{"count wins over contained name", "How many resumes mention Jane Doe?", QueryCount, ""},
		{"person specific", "What are Jane Doe's skills?", QueryPerson, "Jane Doe"},
		{"person match is case-insensitive", "tell me about JOHN SMITH", QueryPerson, "John Smith"},
		{"general fallback", "Who knows Python?", QueryGeneral, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := r.Classify(tt.query, names)
			assert.Equal(t, tt.wantKind, analysis.Kind)
			assert.Equal(t, tt.applicant, analysis.Applicant)
		})
	}
}

func TestClassify_FirstNameInListOrderWins(t *testing.T) {
	r := newRouter(t)
	// "Jo" is a substring of the query naming "John"; list order decides.
	analysis := r.Classify("What does John do?", []string{"Jo", "John"})
	assert.Equal(t, QueryPerson, analysis.Kind)
	assert.Equal(t, "Jo", analysis.Applicant)
}

func TestRetrieve_CountBypassesIndex(t *testing.T) {
	r := newRouter(t)
	searcher := &fakeSearcher{}
	names := []string{"Jane Doe", "John Smith"}

	items := r.Retrieve(context.Background(), searcher, "How many CVs do you have?", names)

	require.Len(t, items, 1)
	assert.Equal(t, 0, searcher.calls, "count queries must never hit the index")
	assert.Equal(t, models.KindCount, items[0].Kind)
	assert.Equal(t, models.SystemApplicant, items[0].Applicant)
	assert.Contains(t, items[0].Content, "Total number of CVs/applicants in the database: 2")
	assert.Contains(t, items[0].Content, "Jane Doe, John Smith")
}

func TestRetrieve_PersonSpecificOverFetchesAndFilters(t *testing.T) {
	r := newRouter(t)
	searcher := &fakeSearcher{items: []models.RetrievedItem{
		chunkItem("John Smith", "john 1", 0.9),
		chunkItem("Jane Doe", "jane 1", 0.8),
		chunkItem("John Smith", "john 2", 0.7),
		chunkItem("Jane Doe", "jane 2", 0.6),
		chunkItem("jane doe", "jane 3", 0.5),
		chunkItem("Jane Doe", "jane 4", 0.4),
		chunkItem("Jane Doe", "jane 5", 0.3),
		chunkItem("Jane Doe", "jane 6", 0.2),
	}}
	names := []string{"Jane Doe", "John Smith"}

	items := r.Retrieve(context.Background(), searcher, "What are Jane Doe's skills?", names)

	assert.Equal(t, 100, searcher.lastK, "person queries over-fetch before filtering")
	require.Len(t, items, 5)
	for _, item := range items {
		assert.True(t, strings.EqualFold("Jane Doe", item.Applicant), "got applicant %q", item.Applicant)
	}
	// ranked order preserved through the filter
	assert.Equal(t, "jane 1", items[0].Content)
	assert.Equal(t, "jane 5", items[4].Content)
}

func TestRetrieve_GeneralUsesDefaultK(t *testing.T) {
	r := newRouter(t)
	searcher := &fakeSearcher{items: []models.RetrievedItem{chunkItem("Jane Doe", "jane 1", 0.9)}}

	items := r.Retrieve(context.Background(), searcher, "Who knows Python?", []string{"Jane Doe"})

	assert.Equal(t, 1, searcher.calls)
	assert.Equal(t, 20, searcher.lastK)
	assert.Equal(t, "Who knows Python?", searcher.lastQuery)
	require.Len(t, items, 1)
}

func TestRetrieve_SearchFailureDegradesToEmpty(t *testing.T) {
	r := newRouter(t)
	searcher := &fakeSearcher{err: errors.New("index unavailable")}

	items := r.Retrieve(context.Background(), searcher, "Who knows Python?", nil)

	assert.Empty(t, items)
}
