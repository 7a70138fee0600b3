package llm

import (
	"context"
	"fmt"
)

// Request is a single provider-neutral generation call.
type Request struct {
	// Model is a concrete model name or a tier name; empty selects TierAdvanced.
	Model       string
	Prompt      string
	Temperature float32
	// JSON asks for an application/json response body.
	JSON bool
	// Schema constrains the JSON response shape. Implies JSON.
	Schema *Schema
	// WebSearch enables the provider's search grounding tool when supported.
	WebSearch bool
}

// Citation is a web reference the model grounded its answer on.
type Citation struct {
	Title string
	URI   string
}

// Usage holds token counts reported by the provider. A zero field means the
// provider did not report it.
type Usage struct {
	PromptTokens     int
	CandidatesTokens int
	TotalTokens      int
}

// Response is the normalized result of a Generate call.
type Response struct {
	Text      string
	Citations []Citation
	// Usage is nil when the provider returned no usage metadata.
	Usage *Usage
}

// Client is an abstraction over LLM providers
type Client interface {
	// Generate runs one model call. Errors are *Error values carrying a Kind.
	Generate(ctx context.Context, req Request) (*Response, error)
	// Close releases any resources held by the client
	Close() error
}

// Factory builds a Client for an API credential.
type Factory func(ctx context.Context, apiKey string) (Client, error)

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config, apiKey string) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if apiKey == "" {
		return nil, &Error{Kind: KindAuth, Message: "API key is required"}
	}

	switch config.Provider {
	case ProviderGemini, "":
		return NewGeminiClient(ctx, config, apiKey)
	case ProviderGeminiLegacy:
		return NewLegacyGeminiClient(ctx, config, apiKey)
	default:
		return nil, fmt.Errorf("unsupported LLM provider %q", config.Provider)
	}
}

// NewFactory returns a Factory bound to config.
func NewFactory(config *Config) Factory {
	return func(ctx context.Context, apiKey string) (Client, error) {
		return NewClient(ctx, config, apiKey)
	}
}

// withTimeout applies the configured per-call timeout, if any.
func withTimeout(ctx context.Context, config *Config) (context.Context, context.CancelFunc) {
	if config == nil || config.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, config.Timeout)
}
