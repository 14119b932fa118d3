package booksearch

import (
	"context"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
	"bookwise/be/internal/verify"
)

type SearchRequest struct {
	BookName   string `json:"book_name" binding:"required"`
	Language   string `json:"language"`
	MaxResults int    `json:"max_results"`
}

type SearchResponse struct {
	SearchSession string                      `json:"search_session"`
	Results       []book.SearchResult         `json:"results"`
	TotalFound    int                         `json:"total_found"`
	ExtractedInfo interpreter.StructuredTerms `json:"extracted_info"`
	Warnings      []string                    `json:"warnings,omitempty"`
}

type VerifyLinkRequest struct {
	URL string `json:"url" binding:"required"`
}

type Service interface {
	// Search runs the whole pipeline: interpret, fan out, rank, verify.
	// Every result in the response carries a working download link.
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
	SessionResults(ctx context.Context, session string) (*SearchResponse, error)
	VerifyLink(ctx context.Context, url string) verify.Result
}

// Store is the slice of the book repository the search pipeline needs.
type Store interface {
	SaveResults(ctx context.Context, results []book.SearchResult) error
	ListBySession(ctx context.Context, session string) ([]book.SearchResult, error)
}
