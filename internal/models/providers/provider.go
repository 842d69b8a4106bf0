package providers

import (
	"context"
	"fmt"

	"mozo/internal/config"
)

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is the gateway to an LLM chat-completion service. The
// orchestrator makes at most one call per turn and never retries.
type Provider interface {
	Complete(ctx context.Context, messages []Message) (string, error)
}

// GatewayError wraps any transport, auth, rate-limit or
// malformed-response failure from a provider. It is recovered at the
// conversation boundary and is never fatal to a session.
type GatewayError struct {
	Provider string
	Err      error
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("%s gateway: %v", e.Provider, e.Err)
}

func (e *GatewayError) Unwrap() error {
	return e.Err
}

// New builds the provider selected by the configuration.
func New(cfg *config.Config) (Provider, error) {
	switch cfg.Provider {
	case "", "openai":
		return NewOpenAIProvider(cfg)
	case "azure":
		return NewAzureOpenAIProvider()
	default:
		return nil, fmt.Errorf("unknown provider: %s", cfg.Provider)
	}
}
