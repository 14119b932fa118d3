package book

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"bookwise/be/internal/db"
)

type RepositoryImpl struct {
	db *db.HDb
}

func NewRepositoryImpl(db *db.HDb) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) SaveResults(ctx context.Context, results []SearchResult) error {
	const query = `
		INSERT INTO book_search_result (
			search_session, title, author, description, categories,
			cover_image_url, isbn, publication_date, publisher, language,
			source_api, external_id, relevance_score, status, verified_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	for i := range results {
		res := &results[i]
		if _, err := r.db.ExecContext(ctx, query,
			res.SearchSession, res.Title, res.Author, res.Description, res.Categories,
			res.CoverImageURL, res.ISBN, res.PublicationDate, res.Publisher, res.Language,
			res.SourceAPI, res.ExternalID, res.RelevanceScore, res.Status, res.VerifiedURL,
		); err != nil {
			return fmt.Errorf("save search result %q: %w", res.Title, err)
		}
	}
	return nil
}

func (r *RepositoryImpl) ListBySession(ctx context.Context, session string) ([]SearchResult, error) {
	var results []SearchResult
	err := r.db.SelectContext(ctx, &results,
		"SELECT * FROM book_search_result WHERE search_session = $1 ORDER BY relevance_score DESC", session)
	return results, err
}

func (r *RepositoryImpl) GetResult(ctx context.Context, id int64) (SearchResult, error) {
	var result SearchResult
	err := r.db.GetContext(ctx, &result, "SELECT * FROM book_search_result WHERE id = $1", id)
	return result, err
}

func (r *RepositoryImpl) CreateBook(ctx context.Context, b *Book) (int64, error) {
	const query = `
		INSERT INTO book (
			title, author, description, category, status, download_url,
			cover_image_url, isbn, publication_date, publisher, language,
			ai_summary, categories
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id`
	var id int64
	err := r.db.QueryRowxContext(ctx, query,
		b.Title, b.Author, b.Description, b.Category, b.Status, b.DownloadURL,
		b.CoverImageURL, b.ISBN, b.PublicationDate, b.Publisher, b.Language,
		b.AISummary, b.Categories,
	).Scan(&id)
	return id, err
}

func (r *RepositoryImpl) GetBookByID(ctx context.Context, id int64) (Book, error) {
	var b Book
	err := r.db.GetContext(ctx, &b, "SELECT * FROM book WHERE id = $1", id)
	return b, err
}

func (r *RepositoryImpl) FindBookByTitleAuthor(ctx context.Context, title, author string) (*Book, error) {
	var b Book
	err := r.db.GetContext(ctx, &b,
		"SELECT * FROM book WHERE LOWER(title) = LOWER($1) AND LOWER(author) = LOWER($2)", title, author)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *RepositoryImpl) ListBooks(ctx context.Context, filter ListBooksRequest) ([]Book, int, error) {
	where := []string{"1=1"}
	args := []interface{}{}
	arg := func(v interface{}) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Status != "" {
		where = append(where, "status = "+arg(filter.Status))
	}
	if filter.Language != "" {
		where = append(where, "language = "+arg(filter.Language))
	}
	if filter.Search != "" {
		p := arg("%" + filter.Search + "%")
		where = append(where, fmt.Sprintf("(title ILIKE %s OR author ILIKE %s)", p, p))
	}
	cond := strings.Join(where, " AND ")

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM book WHERE "+cond, args...); err != nil {
		return nil, 0, err
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	query := fmt.Sprintf("SELECT * FROM book WHERE %s ORDER BY created_at DESC LIMIT %s OFFSET %s",
		cond, arg(limit), arg(filter.Offset))

	var books []Book
	if err := r.db.SelectContext(ctx, &books, query, args...); err != nil {
		return nil, 0, err
	}
	return books, total, nil
}
