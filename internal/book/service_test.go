package book

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	results map[int64]SearchResult
	books   map[int64]Book
	nextID  int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		results: map[int64]SearchResult{},
		books:   map[int64]Book{},
		nextID:  1,
	}
}

func (f *fakeRepo) SaveResults(ctx context.Context, results []SearchResult) error { return nil }

func (f *fakeRepo) ListBySession(ctx context.Context, session string) ([]SearchResult, error) {
	var out []SearchResult
	for _, r := range f.results {
		if r.SearchSession == session {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRepo) GetResult(ctx context.Context, id int64) (SearchResult, error) {
	r, ok := f.results[id]
	if !ok {
		return SearchResult{}, sql.ErrNoRows
	}
	return r, nil
}

func (f *fakeRepo) CreateBook(ctx context.Context, b *Book) (int64, error) {
	id := f.nextID
	f.nextID++
	b.ID = id
	f.books[id] = *b
	return id, nil
}

func (f *fakeRepo) GetBookByID(ctx context.Context, id int64) (Book, error) {
	b, ok := f.books[id]
	if !ok {
		return Book{}, sql.ErrNoRows
	}
	return b, nil
}

func (f *fakeRepo) FindBookByTitleAuthor(ctx context.Context, title, author string) (*Book, error) {
	for _, b := range f.books {
		if b.Title == title && b.Author == author {
			return &b, nil
		}
	}
	return nil, nil
}

func (f *fakeRepo) ListBooks(ctx context.Context, filter ListBooksRequest) ([]Book, int, error) {
	var out []Book
	for _, b := range f.books {
		out = append(out, b)
	}
	return out, len(out), nil
}

func TestAddFromSearch(t *testing.T) {
	repo := newFakeRepo()
	repo.results[7] = SearchResult{
		ID:          7,
		Title:       "Pride and Prejudice",
		Author:      "Jane Austen",
		Categories:  []string{"Fiction", "Novel"},
		Language:    "en",
		Status:      Verified,
		VerifiedURL: "https://files.example.com/pp.pdf",
	}
	svc := NewServiceImpl(repo)

	resp, err := svc.AddFromSearch(context.Background(), AddFromSearchRequest{SearchResultID: 7})
	require.NoError(t, err)
	require.NotNil(t, resp.Book)

	assert.Equal(t, "Pride and Prejudice", resp.Book.Title)
	assert.Equal(t, StatusDraft, resp.Book.Status, "status defaults to draft")
	assert.Equal(t, "https://files.example.com/pp.pdf", resp.Book.DownloadURL,
		"download url must be the verified link")
	assert.Equal(t, "Fiction, Novel", resp.Book.Category)
}

func TestAddFromSearchDuplicate(t *testing.T) {
	repo := newFakeRepo()
	repo.results[7] = SearchResult{ID: 7, Title: "Pride and Prejudice", Author: "Jane Austen"}
	repo.books[3] = Book{ID: 3, Title: "Pride and Prejudice", Author: "Jane Austen"}
	svc := NewServiceImpl(repo)

	resp, err := svc.AddFromSearch(context.Background(), AddFromSearchRequest{SearchResultID: 7})
	require.ErrorIs(t, err, ErrBookExists)
	require.NotNil(t, resp)
	assert.Equal(t, int64(3), resp.BookID, "response must point at the existing book")
}

func TestAddFromSearchInvalidStatus(t *testing.T) {
	repo := newFakeRepo()
	repo.results[7] = SearchResult{ID: 7, Title: "X", Author: "Y"}
	svc := NewServiceImpl(repo)

	_, err := svc.AddFromSearch(context.Background(), AddFromSearchRequest{SearchResultID: 7, Status: "archived"})
	require.Error(t, err)
}

func TestAddFromSearchMissingResult(t *testing.T) {
	svc := NewServiceImpl(newFakeRepo())
	_, err := svc.AddFromSearch(context.Background(), AddFromSearchRequest{SearchResultID: 99})
	require.Error(t, err)
}

func TestAddLinkOrdering(t *testing.T) {
	var r SearchResult
	r.AddLink(Link{URL: "https://x/page", Kind: LinkPage})
	r.AddLink(Link{URL: "https://x/a.pdf", Kind: LinkDirect})
	r.AddLink(Link{URL: "https://x/b.pdf", Kind: LinkDirect})
	r.AddLink(Link{URL: "https://x/a.pdf", Kind: LinkDirect}) // duplicate

	require.Len(t, r.Links, 3)
	assert.Equal(t, LinkDirect, r.Links[0].Kind)
	assert.Equal(t, LinkDirect, r.Links[1].Kind)
	assert.Equal(t, "https://x/a.pdf", r.Links[0].URL, "direct links keep arrival order")
	assert.Equal(t, "https://x/b.pdf", r.Links[1].URL)
	assert.Equal(t, LinkPage, r.Links[2].Kind, "page links stay last")
}
