package models

// Chunk is a bounded span of one applicant's extracted CV text, the unit
// of embedding and retrieval.
type Chunk struct {
	Content   string
	Applicant string
}

// SourceKind distinguishes a real retrieved chunk from the synthetic
// count record answered straight from the applicant list.
type SourceKind string

const (
	KindChunk SourceKind = "chunk"
	KindCount SourceKind = "count"
)

// RetrievedItem is one ranked retrieval result carrying its owning
// applicant and similarity score. Count items carry a zero score.
type RetrievedItem struct {
	Content   string
	Applicant string
	Score     float32
	Kind      SourceKind
}

// Source is the caller-visible citation attached to an answer.
type Source struct {
	Applicant string     `json:"applicant"`
	Snippet   string     `json:"snippet"`
	Kind      SourceKind `json:"kind"`
}

// QueryResult is what a query always produces, failures included.
type QueryResult struct {
	Answer  string   `json:"answer"`
	Sources []Source `json:"sources"`
}

// UploadFile is one member of an ingestion batch.
type UploadFile struct {
	Name string
	Data []byte
}

// SkippedFile records a document dropped during ingestion and why.
type SkippedFile struct {
	Filename string `json:"filename"`
	Reason   string `json:"reason"`
}

// BatchResult reports an ingestion batch: applicant names indexed and
// files skipped, instead of print-style side channels.
type BatchResult struct {
	Succeeded []string      `json:"succeeded"`
	Skipped   []SkippedFile `json:"skipped"`
}
