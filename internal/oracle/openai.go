package oracle

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = "gpt-4o-mini"

// Compile-time check that OpenAIOracle satisfies Oracle.
var _ Oracle = (*OpenAIOracle)(nil)

// OpenAIOracle implements Oracle against the OpenAI chat completions API.
type OpenAIOracle struct {
	client *openai.Client
	model  string
	log    *slog.Logger
}

// NewOpenAIOracle builds an oracle from the environment. OPENAI_API_KEY is
// required; OPENAI_MODEL overrides the default model, and OPENAI_BASE_URL
// points the client at a compatible local server when set.
func NewOpenAIOracle() (*OpenAIOracle, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY is not set")
	}
	model := os.Getenv("OPENAI_MODEL")
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if base := os.Getenv("OPENAI_BASE_URL"); base != "" {
		cfg.BaseURL = base
	}

	return &OpenAIOracle{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		log:    slog.Default().With("component", "oracle.openai"),
	}, nil
}

// Chat sends the messages as a single chat completion request and returns
// the first choice's content.
func (o *OpenAIOracle) Chat(ctx context.Context, messages []Message) (string, error) {
	req := openai.ChatCompletionRequest{
		Model:    o.model,
		Messages: make([]openai.ChatCompletionMessage, 0, len(messages)),
	}
	for _, m := range messages {
		req.Messages = append(req.Messages, openai.ChatCompletionMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}

	resp, err := o.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", fmt.Errorf("oracle: chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("oracle: completion returned no choices")
	}

	o.log.Debug("chat completion", "model", o.model, "messages", len(messages))
	return resp.Choices[0].Message.Content, nil
}
