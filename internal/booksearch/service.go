package booksearch

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"bookwise/be/internal/book"
	"bookwise/be/internal/catalog"
	"bookwise/be/internal/config"
	"bookwise/be/internal/covers"
	"bookwise/be/internal/interpreter"
	"bookwise/be/internal/verify"
)

type ServiceImpl struct {
	interpreter interpreter.Service
	adapters    []catalog.Adapter
	verifier    verify.Service
	covers      covers.Finder
	store       Store
	cfg         config.SearchConfig
}

func NewServiceImpl(
	interp interpreter.Service,
	adapters []catalog.Adapter,
	verifier verify.Service,
	coverFinder covers.Finder,
	store Store,
	cfg config.SearchConfig,
) *ServiceImpl {
	return &ServiceImpl{
		interpreter: interp,
		adapters:    adapters,
		verifier:    verifier,
		covers:      coverFinder,
		store:       store,
		cfg:         cfg,
	}
}

func (s *ServiceImpl) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()

	maxResults := req.MaxResults
	if maxResults <= 0 || maxResults > s.cfg.MaxResults {
		maxResults = s.cfg.MaxResults
	}

	terms := s.interpreter.Interpret(ctx, req.BookName, req.Language)

	candidates, warnings := s.fanOut(ctx, terms)
	for i := range candidates {
		candidates[i].RelevanceScore = scoreResult(candidates[i], terms)
	}
	candidates = dedupe(candidates)

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].RelevanceScore != candidates[j].RelevanceScore {
			return candidates[i].RelevanceScore > candidates[j].RelevanceScore
		}
		return catalog.Reliable(candidates[i].SourceAPI) && !catalog.Reliable(candidates[j].SourceAPI)
	})

	session := uuid.NewString()
	verified := s.verifyCandidates(ctx, candidates, maxResults)
	for i := range verified {
		verified[i].SearchSession = session
		s.fillCover(ctx, &verified[i])
	}

	if len(verified) > 0 {
		if err := s.store.SaveResults(ctx, verified); err != nil {
			// Persistence is for later browsing; a write fault must not
			// cost the caller the results it already has in hand.
			log.Printf("booksearch: saving session %s failed: %v", session, err)
			warnings = append(warnings, "results could not be saved for later retrieval")
		}
	}

	return &SearchResponse{
		SearchSession: session,
		Results:       verified,
		TotalFound:    len(verified),
		ExtractedInfo: terms,
		Warnings:      warnings,
	}, nil
}

func (s *ServiceImpl) SessionResults(ctx context.Context, session string) (*SearchResponse, error) {
	results, err := s.store.ListBySession(ctx, session)
	if err != nil {
		return nil, fmt.Errorf("loading session %s: %w", session, err)
	}
	return &SearchResponse{
		SearchSession: session,
		Results:       results,
		TotalFound:    len(results),
	}, nil
}

func (s *ServiceImpl) VerifyLink(ctx context.Context, url string) verify.Result {
	return s.verifier.Verify(ctx, url)
}

// fanOut queries every adapter concurrently, bounded by the configured
// limit. One catalog failing, timing out or returning garbage never fails
// the search; it becomes a warning.
func (s *ServiceImpl) fanOut(ctx context.Context, terms interpreter.StructuredTerms) ([]book.SearchResult, []string) {
	type outcome struct {
		source  string
		results []book.SearchResult
		err     error
	}

	sem := make(chan struct{}, s.cfg.FanoutLimit)
	out := make(chan outcome, len(s.adapters))
	var wg sync.WaitGroup

	for _, adapter := range s.adapters {
		wg.Add(1)
		go func(a catalog.Adapter) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()
			results, err := a.Search(ctx, terms)
			out <- outcome{source: a.Name(), results: results, err: err}
		}(adapter)
	}

	go func() {
		wg.Wait()
		close(out)
	}()

	var all []book.SearchResult
	var warnings []string
	for o := range out {
		if o.err != nil {
			log.Printf("booksearch: %s adapter failed: %v", o.source, o.err)
			warnings = append(warnings, fmt.Sprintf("%s unavailable", o.source))
			continue
		}
		all = append(all, o.results...)
	}
	return all, warnings
}

// verifyCandidates probes links sequentially in rank order and keeps the
// first working link per record. It stops once enough results verified or
// the search deadline passed; a partial list is a valid answer.
func (s *ServiceImpl) verifyCandidates(ctx context.Context, candidates []book.SearchResult, maxResults int) []book.SearchResult {
	verified := make([]book.SearchResult, 0, maxResults)
	for _, c := range candidates {
		if len(verified) >= maxResults {
			break
		}
		if ctx.Err() != nil {
			log.Printf("booksearch: deadline reached, returning %d verified results", len(verified))
			break
		}
		for _, link := range c.Links {
			res := s.verifier.Verify(ctx, link.URL)
			if !res.Verified {
				continue
			}
			c.Status = book.Verified
			c.VerifiedURL = res.ResolvedURL
			verified = append(verified, c)
			break
		}
	}
	return verified
}

func (s *ServiceImpl) fillCover(ctx context.Context, r *book.SearchResult) {
	if r.CoverImageURL != "" || s.covers == nil {
		return
	}
	url, err := s.covers.FindCover(ctx, r.Title, r.Author)
	if err != nil {
		return
	}
	r.CoverImageURL = url
}

// dedupe collapses records that describe the same edition under different
// sources. The earlier-ranked duplicate survives and absorbs the other's
// candidate links, so verification still has every URL to try. Insertion
// order is preserved so equal-score records keep their arrival order.
func dedupe(results []book.SearchResult) []book.SearchResult {
	seen := orderedmap.New[string, *book.SearchResult]()
	for i := range results {
		r := results[i]
		key := dedupeKey(r.Title, r.Author)
		existing, ok := seen.Get(key)
		if !ok {
			seen.Set(key, &r)
			continue
		}
		if r.RelevanceScore > existing.RelevanceScore {
			for _, l := range existing.Links {
				r.AddLink(l)
			}
			if r.CoverImageURL == "" {
				r.CoverImageURL = existing.CoverImageURL
			}
			if r.ISBN == "" {
				r.ISBN = existing.ISBN
			}
			seen.Set(key, &r)
			continue
		}
		for _, l := range r.Links {
			existing.AddLink(l)
		}
		if existing.CoverImageURL == "" {
			existing.CoverImageURL = r.CoverImageURL
		}
		if existing.ISBN == "" {
			existing.ISBN = r.ISBN
		}
	}

	deduped := make([]book.SearchResult, 0, seen.Len())
	for pair := seen.Oldest(); pair != nil; pair = pair.Next() {
		deduped = append(deduped, *pair.Value)
	}
	return deduped
}

// dedupeKey normalizes title|author so case, punctuation and spacing
// differences between catalogs do not split one edition into two records.
func dedupeKey(title, author string) string {
	return normalize(title) + "|" + normalize(author)
}

func normalize(s string) string {
	var b strings.Builder
	lastSpace := true
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case !lastSpace:
			b.WriteRune(' ')
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// scoreResult weighs how well a record matches the extracted terms. Title
// similarity dominates, author agreement refines, category overlap nudges,
// and sources known for working files get a small bonus.
func scoreResult(r book.SearchResult, terms interpreter.StructuredTerms) float64 {
	score := 0.5 * similarity(r.Title, terms.Title)
	if terms.Author != "" {
		score += 0.3 * similarity(r.Author, terms.Author)
	}
	score += 0.1 * categoryOverlap(r.Categories, terms.Categories)
	if catalog.Reliable(r.SourceAPI) {
		score += 0.1
	}
	return score
}

func similarity(a, b string) float64 {
	na, nb := normalize(a), normalize(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return 0.8
	}

	tokensA := strings.Fields(na)
	setB := map[string]bool{}
	for _, t := range strings.Fields(nb) {
		setB[t] = true
	}
	shared := 0
	for _, t := range tokensA {
		if setB[t] {
			shared++
		}
	}
	union := len(tokensA) + len(setB) - shared
	if union == 0 {
		return 0
	}
	return float64(shared) / float64(union)
}

func categoryOverlap(got []string, want []string) float64 {
	if len(want) == 0 || len(got) == 0 {
		return 0
	}
	have := map[string]bool{}
	for _, c := range got {
		have[normalize(c)] = true
	}
	shared := 0
	for _, c := range want {
		if have[normalize(c)] {
			shared++
		}
	}
	return float64(shared) / float64(len(want))
}
