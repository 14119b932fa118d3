package covers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	g "github.com/serpapi/google-search-results-golang"
)

var ErrNoCover = errors.New("no cover image found")

// SerpFinder queries Google Images through SerpApi for a book cover.
type SerpFinder struct {
	apiKey string
}

func NewSerpFinder(apiKey string) *SerpFinder {
	return &SerpFinder{apiKey: apiKey}
}

func (f *SerpFinder) FindCover(ctx context.Context, title, author string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	query := strings.TrimSpace(title + " " + author + " book cover")
	parameter := map[string]string{
		"engine": "google_images",
		"q":      query,
	}
	search := g.NewGoogleSearch(parameter, f.apiKey)
	results, err := search.GetJSON()
	if err != nil {
		return "", fmt.Errorf("serpapi image search: %w", err)
	}

	if url := firstImageURL(results); url != "" {
		return url, nil
	}
	return "", ErrNoCover
}

// firstImageURL picks the first usable thumbnail from a SerpApi
// google_images response.
func firstImageURL(results map[string]interface{}) string {
	images, ok := results["images_results"].([]interface{})
	if !ok {
		return ""
	}
	for _, raw := range images {
		img, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range []string{"thumbnail", "original"} {
			if url, ok := img[key].(string); ok && strings.HasPrefix(url, "http") {
				return url
			}
		}
	}
	return ""
}

// NoopFinder is used when no SerpApi key is configured.
type NoopFinder struct{}

func (NoopFinder) FindCover(ctx context.Context, title, author string) (string, error) {
	return "", ErrNoCover
}
