package interpreter

import (
	"context"
	"errors"
	"testing"

	"bookwise/be/internal/llm"
)

type fakeProvider struct {
	content string
	err     error
}

func (f *fakeProvider) Complete(_ context.Context, _ llm.CompletionRequest) (llm.Message, error) {
	if f.err != nil {
		return llm.Message{}, f.err
	}
	return llm.Message{Role: "assistant", Content: f.content}, nil
}

func TestInterpret(t *testing.T) {
	tests := []struct {
		name       string
		content    string
		err        error
		query      string
		hint       string
		wantTitle  string
		wantAuthor string
		wantLang   string
	}{
		{
			name:       "full extraction",
			content:    `{"title":"Pride and Prejudice","author":"Jane Austen","categories":["Fiction","Romance"],"language":"en","search_variations":["Pride and Prejudice Austen"]}`,
			query:      "that austen book about the bennet sisters",
			wantTitle:  "Pride and Prejudice",
			wantAuthor: "Jane Austen",
			wantLang:   "en",
		},
		{
			name:      "fenced response still parses",
			content:   "```json\n{\"title\":\"Dune\",\"language\":\"en\"}\n```",
			query:     "dune",
			wantTitle: "Dune",
			wantLang:  "en",
		},
		{
			name:      "provider error falls back to raw text",
			err:       errors.New("upstream unavailable"),
			query:     "some obscure title",
			wantTitle: "some obscure title",
			wantLang:  "en",
		},
		{
			name:      "garbage response falls back to raw text",
			content:   "sorry, I cannot do that",
			query:     "الأيام طه حسين",
			hint:      "ar",
			wantTitle: "الأيام طه حسين",
			wantLang:  "ar",
		},
		{
			name:      "missing fields are backfilled",
			content:   `{"author":"Naguib Mahfouz"}`,
			query:     "palace walk",
			wantTitle: "palace walk",
			wantAuthor: "Naguib Mahfouz",
			wantLang:  "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewServiceImpl(&fakeProvider{content: tt.content, err: tt.err}, "test-model")
			terms := svc.Interpret(context.Background(), tt.query, tt.hint)

			if terms.Title != tt.wantTitle {
				t.Errorf("Title = %q, want %q", terms.Title, tt.wantTitle)
			}
			if terms.Author != tt.wantAuthor {
				t.Errorf("Author = %q, want %q", terms.Author, tt.wantAuthor)
			}
			if terms.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", terms.Language, tt.wantLang)
			}
			if len(terms.SearchVariations) == 0 {
				t.Errorf("SearchVariations is empty, want at least the raw query")
			}
		})
	}
}

func TestPrimaryQuery(t *testing.T) {
	terms := StructuredTerms{Title: "Dune", SearchVariations: []string{"dune herbert", "dune novel"}}
	if got := terms.PrimaryQuery(); got != "dune herbert" {
		t.Errorf("PrimaryQuery() = %q, want first variation", got)
	}

	terms = StructuredTerms{Title: "Dune"}
	if got := terms.PrimaryQuery(); got != "Dune" {
		t.Errorf("PrimaryQuery() = %q, want title", got)
	}
}
