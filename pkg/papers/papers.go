package papers

import "context"

// Paper is one academic paper as returned by a citation-data source.
// PaperID is globally unique and stable across fetches; it is the
// deduplication key for everything downstream.
type Paper struct {
	PaperID       string     `json:"paperId"`
	Title         string     `json:"title"`
	Year          int        `json:"year"`
	CitationCount int        `json:"citationCount"`
	Abstract      string     `json:"abstract,omitempty"`
	Embedding     *Embedding `json:"embedding,omitempty"`
}

// Embedding is a paper-level document embedding with the model tag that
// produced it. Vectors from different models are not comparable.
type Embedding struct {
	Model  string    `json:"model"`
	Vector []float64 `json:"vector"`
}

// SearchParams narrows a paper search. Year bounds are inclusive; a zero
// bound means unbounded on that side.
type SearchParams struct {
	Query     string `json:"query"`
	YearStart int    `json:"year_start,omitempty"`
	YearEnd   int    `json:"year_end,omitempty"`
}

// SearchClient finds a bounded candidate list of papers for a query.
type SearchClient interface {
	Search(ctx context.Context, params SearchParams) ([]Paper, error)
}

// CitationClient fetches the citation neighborhood of a single paper:
// CitationsOf returns papers that cite it, ReferencesOf returns papers it
// cites.
type CitationClient interface {
	CitationsOf(ctx context.Context, paperID string) ([]Paper, error)
	ReferencesOf(ctx context.Context, paperID string) ([]Paper, error)
}
