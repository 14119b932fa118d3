package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
)

var gutendexBase = "https://gutendex.com/books"

// Gutendex queries the Project Gutenberg index. Everything it serves is
// public domain, so its format links are direct downloads.
type Gutendex struct {
	client *client
}

func NewGutendex(userAgent string) *Gutendex {
	return &Gutendex{client: newClient(userAgent, 3, 0)}
}

func (g *Gutendex) Name() string { return SourceGutendex }

type gutendexResponse struct {
	Results []struct {
		ID      int    `json:"id"`
		Title   string `json:"title"`
		Authors []struct {
			Name string `json:"name"`
		} `json:"authors"`
		Subjects      []string          `json:"subjects"`
		Languages     []string          `json:"languages"`
		DownloadCount int               `json:"download_count"`
		Formats       map[string]string `json:"formats"`
	} `json:"results"`
}

func (g *Gutendex) Search(ctx context.Context, terms interpreter.StructuredTerms) ([]book.SearchResult, error) {
	query := terms.PrimaryQuery()
	if terms.Author != "" && !strings.Contains(strings.ToLower(query), strings.ToLower(terms.Author)) {
		query += " " + terms.Author
	}

	params := url.Values{"search": {query}}
	if terms.Language != "" {
		params.Set("languages", terms.Language)
	}

	var resp gutendexResponse
	if err := g.client.getJSON(ctx, gutendexBase+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("gutendex: %w", err)
	}

	var results []book.SearchResult
	for _, entry := range resp.Results {
		if entry.Title == "" {
			continue
		}

		var authors []string
		for _, a := range entry.Authors {
			if a.Name != "" {
				authors = append(authors, a.Name)
			}
		}

		record := book.SearchResult{
			Title:       entry.Title,
			Author:      strings.Join(authors, ", "),
			Description: fmt.Sprintf("Public domain book from Project Gutenberg. Download count: %d", entry.DownloadCount),
			Categories:  entry.Subjects,
			Publisher:   "Project Gutenberg",
			Language:    strings.Join(entry.Languages, ", "),
			SourceAPI:   SourceGutendex,
			ExternalID:  fmt.Sprintf("%d", entry.ID),
			Status:      book.Unverified,
		}

		// Formats is keyed by MIME type; prefer pdf, then epub.
		for mime, link := range entry.Formats {
			if strings.Contains(mime, "pdf") {
				record.AddLink(book.Link{URL: link, Kind: book.LinkDirect})
			}
		}
		for mime, link := range entry.Formats {
			if strings.Contains(mime, "epub") {
				record.AddLink(book.Link{URL: link, Kind: book.LinkDirect})
			}
		}
		record.AddLink(book.Link{
			URL:  fmt.Sprintf("https://www.gutenberg.org/ebooks/%d", entry.ID),
			Kind: book.LinkPage,
		})

		results = append(results, record)
	}
	return results, nil
}
