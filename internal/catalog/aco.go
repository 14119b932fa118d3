package catalog

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/net/html"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
)

var acoSearchBase = "https://dlib.nyu.edu/aco/search/"

// ACO scrapes Arabic Collections Online, which has no JSON API. Only the
// search result list is parsed; each hit yields a title, an optional
// author, and whatever download link the item advertises.
type ACO struct {
	client *client
}

func NewACO(userAgent string) *ACO {
	return &ACO{client: newClient(userAgent, 2, 0)}
}

func (a *ACO) Name() string { return SourceACO }

func (a *ACO) Search(ctx context.Context, terms interpreter.StructuredTerms) ([]book.SearchResult, error) {
	params := url.Values{
		"q":     {terms.PrimaryQuery()},
		"scope": {"containsAny"},
	}

	body, err := a.client.get(ctx, acoSearchBase+"?"+params.Encode())
	if err != nil {
		return nil, fmt.Errorf("aco: %w", err)
	}
	defer body.Close()

	doc, err := html.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("aco: parse search page: %w", err)
	}

	base, _ := url.Parse(acoSearchBase)

	var results []book.SearchResult
	for _, item := range findByClass(doc, "search-result-item", "item") {
		record := parseACOItem(item, base)
		if record.Title == "" {
			continue
		}
		results = append(results, record)
	}
	return results, nil
}

func parseACOItem(item *html.Node, base *url.URL) book.SearchResult {
	record := book.SearchResult{
		Description: "Arabic book from Arabic Collections Online",
		Categories:  []string{"Arabic Literature"},
		Publisher:   "Arabic Collections Online",
		Language:    "ar",
		SourceAPI:   SourceACO,
		Status:      book.Unverified,
	}

	if title := firstMatch(item, func(n *html.Node) bool {
		return n.Type == html.ElementNode && (n.Data == "h2" || n.Data == "h3" || n.Data == "strong")
	}); title != nil {
		record.Title = strings.TrimSpace(textContent(title))
	}

	if author := firstMatch(item, func(n *html.Node) bool {
		return n.Type == html.ElementNode && hasClass(n, "author")
	}); author != nil {
		record.Author = strings.TrimSpace(textContent(author))
	}

	// Any anchor whose text suggests a download counts as a direct link;
	// the first remaining anchor is kept as the item page.
	var pageURL string
	walk(item, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "a" {
			return
		}
		href := attr(n, "href")
		if href == "" {
			return
		}
		resolved := resolveURL(base, href)
		if resolved == "" {
			return
		}
		text := strings.ToLower(textContent(n))
		if strings.Contains(text, "pdf") || strings.Contains(text, "download") || strings.Contains(text, "تحميل") {
			record.AddLink(book.Link{URL: resolved, Kind: book.LinkDirect})
		} else if pageURL == "" {
			pageURL = resolved
		}
	})
	if pageURL != "" {
		record.AddLink(book.Link{URL: pageURL, Kind: book.LinkPage})
	}

	return record
}

// ---------------- HTML walking helpers ----------------

func walk(n *html.Node, visit func(*html.Node)) {
	visit(n)
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c, visit)
	}
}

func findByClass(root *html.Node, classes ...string) []*html.Node {
	var out []*html.Node
	walk(root, func(n *html.Node) {
		if n.Type != html.ElementNode || n.Data != "div" {
			return
		}
		for _, class := range classes {
			if hasClass(n, class) {
				out = append(out, n)
				return
			}
		}
	})
	return out
}

func firstMatch(root *html.Node, pred func(*html.Node) bool) *html.Node {
	var found *html.Node
	walk(root, func(n *html.Node) {
		if found == nil && pred(n) {
			found = n
		}
	})
	return found
}

func hasClass(n *html.Node, class string) bool {
	for _, field := range strings.Fields(attr(n, "class")) {
		if field == class {
			return true
		}
	}
	return false
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	walk(n, func(c *html.Node) {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	})
	return sb.String()
}

func resolveURL(base *url.URL, href string) string {
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	resolved := base.ResolveReference(ref)
	if resolved.Scheme != "http" && resolved.Scheme != "https" {
		return ""
	}
	return resolved.String()
}
