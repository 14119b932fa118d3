package llm

import (
	"context"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type CompletionRequest struct {
	Messages []Message
	Model    string
	// JSONOnly asks the provider for a JSON-object response when the
	// backing API supports constrained output.
	JSONOnly    bool
	Temperature float32
}

type AIProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (Message, error)
}
