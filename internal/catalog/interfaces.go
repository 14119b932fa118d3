package catalog

import (
	"context"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
)

// Source identifiers stamped onto every record an adapter produces.
const (
	SourceGoogleBooks     = "google_books"
	SourceGutendex        = "gutendex"
	SourceInternetArchive = "internet_archive"
	SourceACO             = "aco"
)

// Adapter queries one external catalog and projects its native response
// shape into normalized records. "No results" is an empty slice, not an
// error; an error means the catalog itself was unreachable or returned
// something unparseable, and the aggregator downgrades that to a warning.
type Adapter interface {
	Name() string
	Search(ctx context.Context, terms interpreter.StructuredTerms) ([]book.SearchResult, error)
}

// Reliable reports whether a source usually exposes working direct file
// links. Public-domain and archival catalogs do; general metadata indexes
// rarely do.
func Reliable(source string) bool {
	switch source {
	case SourceGutendex, SourceInternetArchive, SourceACO:
		return true
	}
	return false
}
