package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
)

// googleBooksBase is a var so tests can substitute an httptest server.
var googleBooksBase = "https://www.googleapis.com/books/v1/volumes"

// GoogleBooks queries the Google Books volumes API. It is the broadest
// metadata source but rarely exposes a direct file, so most of its links
// are page links.
type GoogleBooks struct {
	client *client
}

func NewGoogleBooks(userAgent string) *GoogleBooks {
	return &GoogleBooks{client: newClient(userAgent, 3, 0)}
}

func (g *GoogleBooks) Name() string { return SourceGoogleBooks }

type googleVolumesResponse struct {
	Items []struct {
		ID         string `json:"id"`
		VolumeInfo struct {
			Title               string   `json:"title"`
			Authors             []string `json:"authors"`
			Description         string   `json:"description"`
			Categories          []string `json:"categories"`
			Publisher           string   `json:"publisher"`
			PublishedDate       string   `json:"publishedDate"`
			Language            string   `json:"language"`
			CanonicalVolumeLink string   `json:"canonicalVolumeLink"`
			IndustryIdentifiers []struct {
				Type       string `json:"type"`
				Identifier string `json:"identifier"`
			} `json:"industryIdentifiers"`
			ImageLinks struct {
				Large     string `json:"large"`
				Medium    string `json:"medium"`
				Small     string `json:"small"`
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
		AccessInfo struct {
			PDF struct {
				IsAvailable  bool   `json:"isAvailable"`
				DownloadLink string `json:"downloadLink"`
			} `json:"pdf"`
			Epub struct {
				IsAvailable  bool   `json:"isAvailable"`
				DownloadLink string `json:"downloadLink"`
			} `json:"epub"`
			WebReaderLink string `json:"webReaderLink"`
		} `json:"accessInfo"`
	} `json:"items"`
}

func (g *GoogleBooks) Search(ctx context.Context, terms interpreter.StructuredTerms) ([]book.SearchResult, error) {
	q := terms.PrimaryQuery()
	if terms.Author != "" {
		q += fmt.Sprintf(` inauthor:"%s"`, terms.Author)
	}

	params := url.Values{
		"q":          {q},
		"maxResults": {"10"},
		"printType":  {"books"},
	}
	if terms.Language != "" {
		params.Set("langRestrict", terms.Language)
	}

	var resp googleVolumesResponse
	if err := g.client.getJSON(ctx, googleBooksBase+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("google books: %w", err)
	}

	var results []book.SearchResult
	for _, item := range resp.Items {
		info := item.VolumeInfo
		if info.Title == "" {
			continue
		}

		record := book.SearchResult{
			Title:           info.Title,
			Author:          strings.Join(info.Authors, ", "),
			Description:     info.Description,
			Categories:      info.Categories,
			CoverImageURL:   firstNonEmpty(info.ImageLinks.Large, info.ImageLinks.Medium, info.ImageLinks.Small, info.ImageLinks.Thumbnail),
			ISBN:            extractISBN(item.VolumeInfo.IndustryIdentifiers),
			PublicationDate: info.PublishedDate,
			Publisher:       info.Publisher,
			Language:        info.Language,
			SourceAPI:       SourceGoogleBooks,
			ExternalID:      item.ID,
			Status:          book.Unverified,
		}

		if item.AccessInfo.PDF.IsAvailable {
			record.AddLink(book.Link{URL: item.AccessInfo.PDF.DownloadLink, Kind: book.LinkDirect})
		}
		if item.AccessInfo.Epub.IsAvailable {
			record.AddLink(book.Link{URL: item.AccessInfo.Epub.DownloadLink, Kind: book.LinkDirect})
		}
		record.AddLink(book.Link{URL: item.AccessInfo.WebReaderLink, Kind: book.LinkPage})
		record.AddLink(book.Link{URL: info.CanonicalVolumeLink, Kind: book.LinkPage})

		results = append(results, record)
	}
	return results, nil
}

func extractISBN(identifiers []struct {
	Type       string `json:"type"`
	Identifier string `json:"identifier"`
}) string {
	// Prefer ISBN-13 over ISBN-10.
	var isbn10 string
	for _, id := range identifiers {
		switch id.Type {
		case "ISBN_13":
			return id.Identifier
		case "ISBN_10":
			isbn10 = id.Identifier
		}
	}
	return isbn10
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
