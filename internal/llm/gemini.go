package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/generative-ai-go/genai"
)

type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiAIProvider(client *genai.Client) *GeminiProvider {
	return &GeminiProvider{client: client, model: "gemini-2.0-flash"}
}

func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (Message, error) {
	model := p.client.GenerativeModel(p.model)
	if req.JSONOnly {
		model.ResponseMIMEType = "application/json"
	}
	chat := model.StartChat()
	res, err := chat.SendMessage(ctx, p.extractParts(req.Messages)...)
	if err != nil {
		return Message{}, err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil {
		return Message{}, errors.New("no candidates found")
	}

	return Message{
		Content: fmt.Sprintf("%v", res.Candidates[0].Content.Parts[0]),
	}, nil
}

// -----------------Private Helper Functions-----------------
func (p *GeminiProvider) extractParts(messages []Message) []genai.Part {
	var parts []genai.Part
	for _, msg := range messages {
		parts = append(parts, genai.Text(msg.Content))
	}
	return parts
}
