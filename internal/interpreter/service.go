package interpreter

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/invopop/jsonschema"

	"bookwise/be/internal/llm"
)

const extractionPrompt = `Extract book search information from the following query: %q

Respond with a single JSON object matching this schema:
%s

Rules:
- If the query names a well-known author, extract the name exactly.
- For categories use common genres: "Fiction", "History", "Science", "Philosophy", "Religion", "Poetry", "Novel", "Biography".
- Generate 2-3 search variations to improve catalog search results.
- language is a two-letter code; default %q when the query gives no signal.
- Omit fields you cannot infer.`

type ServiceImpl struct {
	provider llm.AIProvider
	model    string
	schema   string
}

func NewServiceImpl(provider llm.AIProvider, model string) *ServiceImpl {
	return &ServiceImpl{
		provider: provider,
		model:    model,
		schema:   termsSchema(),
	}
}

// Interpret submits one extraction request to the model. There are no
// retries: a single miss degrades to keyword search rather than blocking
// the pipeline.
func (s *ServiceImpl) Interpret(ctx context.Context, rawText, languageHint string) StructuredTerms {
	if languageHint == "" {
		languageHint = "en"
	}

	msg, err := s.provider.Complete(ctx, llm.CompletionRequest{
		Messages: []llm.Message{
			{Role: "user", Content: fmt.Sprintf(extractionPrompt, rawText, s.schema, languageHint)},
		},
		Model:       s.model,
		JSONOnly:    true,
		Temperature: 0.3,
	})
	if err != nil {
		log.Printf("interpreter: completion failed, falling back to keywords: %v", err)
		return fallbackTerms(rawText, languageHint)
	}

	var terms StructuredTerms
	if err := json.Unmarshal([]byte(stripFences(msg.Content)), &terms); err != nil {
		log.Printf("interpreter: unparseable response, falling back to keywords: %v", err)
		return fallbackTerms(rawText, languageHint)
	}

	// Backfill the fields keyword search depends on.
	if terms.Title == "" {
		terms.Title = rawText
	}
	if terms.Language == "" {
		terms.Language = languageHint
	}
	if len(terms.SearchVariations) == 0 {
		terms.SearchVariations = []string{rawText}
	}
	return terms
}

func fallbackTerms(rawText, language string) StructuredTerms {
	return StructuredTerms{
		Title:            rawText,
		Language:         language,
		SearchVariations: []string{rawText},
	}
}

// termsSchema renders the StructuredTerms JSON schema once, for embedding
// into the extraction prompt.
func termsSchema() string {
	reflector := jsonschema.Reflector{DoNotReference: true}
	schema := reflector.Reflect(&StructuredTerms{})
	data, err := json.Marshal(schema)
	if err != nil {
		// Reflection over our own struct cannot fail at runtime.
		panic(err)
	}
	return string(data)
}

// stripFences removes a markdown code fence some models wrap around JSON
// even in JSON mode.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
