package book

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrBookExists = errors.New("book already exists")

type ServiceImpl struct {
	repo Repository
}

func NewServiceImpl(repo Repository) *ServiceImpl {
	return &ServiceImpl{repo: repo}
}

func (s *ServiceImpl) ListBooks(ctx context.Context, req ListBooksRequest) (*ListBooksResponse, error) {
	books, total, err := s.repo.ListBooks(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	return &ListBooksResponse{Books: books, Total: total}, nil
}

func (s *ServiceImpl) GetBook(ctx context.Context, id int64) (*Book, error) {
	b, err := s.repo.GetBookByID(ctx, id)
	if err != nil {
		return nil, errors.New("book not found")
	}
	return &b, nil
}

// AddFromSearch promotes a stored search result into the book table. The
// title+author pair is the duplicate key, matching the dedup rule used at
// search time.
func (s *ServiceImpl) AddFromSearch(ctx context.Context, req AddFromSearchRequest) (*AddFromSearchResponse, error) {
	result, err := s.repo.GetResult(ctx, req.SearchResultID)
	if err != nil {
		return nil, errors.New("search result not found")
	}

	existing, err := s.repo.FindBookByTitleAuthor(ctx, result.Title, result.Author)
	if err != nil {
		return nil, fmt.Errorf("check existing book: %w", err)
	}
	if existing != nil {
		return &AddFromSearchResponse{BookID: existing.ID, Book: existing}, ErrBookExists
	}

	status := Status(req.Status)
	switch status {
	case StatusDraft, StatusPublished, StatusPending:
	case "":
		status = StatusDraft
	default:
		return nil, fmt.Errorf("invalid status %q", req.Status)
	}

	categories := NormalizeCategories(result.Categories, result.Language)
	category := req.CustomCategory
	if category == "" {
		category = strings.Join(categories, ", ")
	}

	b := &Book{
		Title:           result.Title,
		Author:          result.Author,
		Description:     result.Description,
		Category:        category,
		Status:          status,
		DownloadURL:     result.VerifiedURL,
		CoverImageURL:   result.CoverImageURL,
		ISBN:            result.ISBN,
		PublicationDate: result.PublicationDate,
		Publisher:       result.Publisher,
		Language:        result.Language,
		AISummary:       result.Description,
		Categories:      categories,
	}
	id, err := s.repo.CreateBook(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}
	b.ID = id

	return &AddFromSearchResponse{
		BookID:  id,
		Message: fmt.Sprintf("Book %q added successfully", b.Title),
		Book:    b,
	}, nil
}
