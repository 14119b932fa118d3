package catalog

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
)

var (
	archiveSearchBase   = "https://archive.org/advancedsearch.php"
	archiveMetadataBase = "https://archive.org/metadata/"
	archiveDownloadBase = "https://archive.org/download/"
	archiveDetailsBase  = "https://archive.org/details/"
	archiveCoverBase    = "https://archive.org/services/img/"
)

// InternetArchive queries the archive.org text collection. Search hits only
// carry an item identifier; the concrete PDF filename comes from a follow-up
// metadata call per item.
type InternetArchive struct {
	client *client
}

func NewInternetArchive(userAgent string) *InternetArchive {
	return &InternetArchive{client: newClient(userAgent, 2, 0)}
}

func (a *InternetArchive) Name() string { return SourceInternetArchive }

type archiveSearchResponse struct {
	Response struct {
		Docs []archiveDoc `json:"docs"`
	} `json:"response"`
}

// archiveDoc fields that can be string-or-array are decoded as flexValue.
type archiveDoc struct {
	Identifier  string    `json:"identifier"`
	Title       string    `json:"title"`
	Creator     flexValue `json:"creator"`
	Description flexValue `json:"description"`
	Subject     flexValue `json:"subject"`
	Date        string    `json:"date"`
	Language    flexValue `json:"language"`
	Format      flexValue `json:"format"`
}

type archiveMetadataResponse struct {
	Files []struct {
		Name   string `json:"name"`
		Format string `json:"format"`
	} `json:"files"`
}

func (a *InternetArchive) Search(ctx context.Context, terms interpreter.StructuredTerms) ([]book.SearchResult, error) {
	q := fmt.Sprintf("(%s) AND mediatype:texts", terms.PrimaryQuery())
	if terms.Author != "" {
		q = fmt.Sprintf("(%s) AND creator:(%s) AND mediatype:texts", terms.PrimaryQuery(), terms.Author)
	}

	params := url.Values{
		"q":      {q},
		"fl[]":   {"identifier,title,creator,description,subject,date,language,format"},
		"rows":   {"10"},
		"page":   {"1"},
		"output": {"json"},
	}

	var resp archiveSearchResponse
	if err := a.client.getJSON(ctx, archiveSearchBase+"?"+params.Encode(), &resp); err != nil {
		return nil, fmt.Errorf("internet archive: %w", err)
	}

	var results []book.SearchResult
	for _, doc := range resp.Response.Docs {
		if doc.Identifier == "" || doc.Title == "" {
			continue
		}

		record := book.SearchResult{
			Title:           doc.Title,
			Author:          doc.Creator.Join(", "),
			Description:     doc.Description.Join(" "),
			Categories:      doc.Subject.Values(),
			CoverImageURL:   archiveCoverBase + doc.Identifier,
			PublicationDate: doc.Date,
			Publisher:       "Internet Archive",
			Language:        doc.Language.Join(", "),
			SourceAPI:       SourceInternetArchive,
			ExternalID:      doc.Identifier,
			Status:          book.Unverified,
		}

		if hasPDFFormat(doc.Format.Values()) {
			if pdfURL := a.resolvePDF(ctx, doc.Identifier); pdfURL != "" {
				record.AddLink(book.Link{URL: pdfURL, Kind: book.LinkDirect})
			}
		}
		record.AddLink(book.Link{URL: archiveDetailsBase + doc.Identifier, Kind: book.LinkPage})

		results = append(results, record)
	}
	return results, nil
}

// resolvePDF looks up the item's file listing and returns the download URL
// of its PDF, or "" when the item has none. A metadata failure is not fatal
// for the record: the details page link remains.
func (a *InternetArchive) resolvePDF(ctx context.Context, identifier string) string {
	var meta archiveMetadataResponse
	if err := a.client.getJSON(ctx, archiveMetadataBase+identifier, &meta); err != nil {
		log.Printf("internet archive: metadata lookup for %s failed: %v", identifier, err)
		return ""
	}

	// Prefer files explicitly marked PDF, then anything named *.pdf.
	for _, f := range meta.Files {
		if f.Format == "PDF" && strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
			return archiveDownloadBase + identifier + "/" + f.Name
		}
	}
	for _, f := range meta.Files {
		if strings.HasSuffix(strings.ToLower(f.Name), ".pdf") {
			return archiveDownloadBase + identifier + "/" + f.Name
		}
	}
	return ""
}

func hasPDFFormat(formats []string) bool {
	for _, f := range formats {
		if f == "PDF" || f == "Abbyy GZ" {
			return true
		}
	}
	return false
}
