package book

import "context"

type Service interface {
	ListBooks(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error)
	GetBook(ctx context.Context, id int64) (*Book, error)
	AddFromSearch(ctx context.Context, req AddFromSearchRequest) (*AddFromSearchResponse, error)
}

type Repository interface {
	SaveResults(ctx context.Context, results []SearchResult) error
	ListBySession(ctx context.Context, session string) ([]SearchResult, error)
	GetResult(ctx context.Context, id int64) (SearchResult, error)

	CreateBook(ctx context.Context, b *Book) (int64, error)
	GetBookByID(ctx context.Context, id int64) (Book, error)
	FindBookByTitleAuthor(ctx context.Context, title, author string) (*Book, error)
	ListBooks(ctx context.Context, filter ListBooksRequest) ([]Book, int, error)
}

type ListBooksRequest struct {
	Status   string `form:"status"`
	Language string `form:"language"`
	Search   string `form:"search"`
	Limit    int    `form:"limit"`
	Offset   int    `form:"offset"`
}

type ListBooksResponse struct {
	Books []Book `json:"books"`
	Total int    `json:"total"`
}

type AddFromSearchRequest struct {
	SearchResultID int64  `json:"search_result_id" binding:"required"`
	Status         string `json:"status"`
	CustomCategory string `json:"custom_category"`
}

type AddFromSearchResponse struct {
	BookID  int64  `json:"book_id"`
	Message string `json:"message"`
	Book    *Book  `json:"book"`
}
