package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"bookwise/be/internal/book"
	"bookwise/be/internal/interpreter"
)

const acoSearchPage = `<html><body>
<div class="results">
	<div class="search-result-item">
		<h3>كتاب الأيام</h3>
		<p class="author">طه حسين</p>
		<a href="/aco/book/nyu_aco000001/1">View item</a>
		<a href="/aco/download/nyu_aco000001.pdf">Download PDF</a>
	</div>
	<div class="search-result-item">
		<h3></h3>
	</div>
	<div class="item">
		<strong>مقدمة ابن خلدون</strong>
		<a href="https://dlib.nyu.edu/aco/book/nyu_aco000002/1">View item</a>
	</div>
</div>
</body></html>`

func TestACOSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") == "" {
			t.Error("missing q parameter")
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Write([]byte(acoSearchPage))
	}))
	defer server.Close()

	orig := acoSearchBase
	acoSearchBase = server.URL + "/aco/search/"
	defer func() { acoSearchBase = orig }()

	adapter := NewACO("test-agent")
	results, err := adapter.Search(context.Background(), interpreter.StructuredTerms{Title: "الأيام", Language: "ar"})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2 (titleless item dropped)", len(results))
	}

	first := results[0]
	if first.Title != "كتاب الأيام" {
		t.Errorf("Title = %q", first.Title)
	}
	if first.Author != "طه حسين" {
		t.Errorf("Author = %q", first.Author)
	}
	if first.Language != "ar" || first.SourceAPI != SourceACO {
		t.Errorf("Language/SourceAPI = %q/%q", first.Language, first.SourceAPI)
	}
	if len(first.Links) != 2 {
		t.Fatalf("got %d links, want download + page", len(first.Links))
	}
	if first.Links[0].Kind != book.LinkDirect {
		t.Errorf("download anchor should map to a direct link, got %+v", first.Links[0])
	}
	// Relative hrefs must resolve against the search host.
	if got := first.Links[0].URL; got != server.URL+"/aco/download/nyu_aco000001.pdf" {
		t.Errorf("resolved URL = %q", got)
	}

	second := results[1]
	if second.Title != "مقدمة ابن خلدون" {
		t.Errorf("Title = %q", second.Title)
	}
	if len(second.Links) != 1 || second.Links[0].Kind != book.LinkPage {
		t.Errorf("item without download anchor should keep only the page link, got %+v", second.Links)
	}
}

func TestReliable(t *testing.T) {
	for source, want := range map[string]bool{
		SourceGutendex:        true,
		SourceInternetArchive: true,
		SourceACO:             true,
		SourceGoogleBooks:     false,
		"unknown":             false,
	} {
		if got := Reliable(source); got != want {
			t.Errorf("Reliable(%q) = %v, want %v", source, got, want)
		}
	}
}
