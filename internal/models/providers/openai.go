package providers

import (
	"context"
	"fmt"
	"os"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"

	"mozo/internal/config"
)

// OpenAIProvider implements the Provider interface on top of any
// OpenAI-compatible chat-completion API via langchaingo.
type OpenAIProvider struct {
	client      *openai.LLM
	model       string
	temperature float64
}

// NewOpenAIProvider creates a provider for the OpenAI API (or a
// compatible host when OPENAI_BASE_URL is set).
func NewOpenAIProvider(cfg *config.Config) (*OpenAIProvider, error) {
	apiKey := os.Getenv("OPENAI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
	}

	opts := []openai.Option{
		openai.WithToken(apiKey),
		openai.WithModel(cfg.Model),
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		opts = append(opts, openai.WithBaseURL(baseURL))
	}

	client, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create OpenAI client: %w", err)
	}

	return &OpenAIProvider{
		client:      client,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// Complete implements the Provider interface
func (p *OpenAIProvider) Complete(ctx context.Context, messages []Message) (string, error) {
	content := make([]llms.MessageContent, len(messages))
	for i, msg := range messages {
		var msgType llms.ChatMessageType
		switch msg.Role {
		case "system":
			msgType = llms.ChatMessageTypeSystem
		case "assistant":
			msgType = llms.ChatMessageTypeAI
		default:
			msgType = llms.ChatMessageTypeHuman
		}
		content[i] = llms.TextParts(msgType, msg.Content)
	}

	response, err := p.client.GenerateContent(ctx, content,
		llms.WithModel(p.model),
		llms.WithTemperature(p.temperature),
	)
	if err != nil {
		return "", &GatewayError{Provider: "openai", Err: err}
	}

	if response == nil || len(response.Choices) == 0 {
		return "", &GatewayError{Provider: "openai", Err: fmt.Errorf("empty response")}
	}

	return response.Choices[0].Content, nil
}
