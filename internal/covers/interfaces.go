package covers

import "context"

// Finder locates a cover image URL for a book that the catalog sources
// returned without one.
type Finder interface {
	FindCover(ctx context.Context, title, author string) (string, error)
}
