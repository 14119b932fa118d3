package interpreter

import "context"

// StructuredTerms is what the language model extracts from a free-text
// query. Category order is meaningful: earlier tags weigh more when the
// ranker computes category overlap.
type StructuredTerms struct {
	Title            string   `json:"title"`
	Author           string   `json:"author,omitempty"`
	Categories       []string `json:"categories,omitempty"`
	Language         string   `json:"language"`
	SearchVariations []string `json:"search_variations,omitempty"`
}

// PrimaryQuery returns the best keyword string to hand a catalog that only
// accepts free text.
func (t StructuredTerms) PrimaryQuery() string {
	if len(t.SearchVariations) > 0 && t.SearchVariations[0] != "" {
		return t.SearchVariations[0]
	}
	return t.Title
}

type Service interface {
	// Interpret never fails: a provider error or unparseable response
	// degrades to keyword terms built from the raw text.
	Interpret(ctx context.Context, rawText, languageHint string) StructuredTerms
}
