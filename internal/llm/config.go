// Package llm provides the model client abstraction used by the tailoring phases.
// Adapters translate a provider-neutral Request into SDK calls and classify
// SDK failures into a closed set of error kinds.
package llm

import "time"

// ModelTier represents the complexity/capability level of a model
type ModelTier string

const (
	// TierLite is for quick, cheap drafts
	TierLite ModelTier = "lite"
	// TierStandard is for routine tailoring
	TierStandard ModelTier = "standard"
	// TierAdvanced is for research-heavy analysis and final generation
	TierAdvanced ModelTier = "advanced"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderGemini uses the google.golang.org/genai SDK (search grounding supported)
	ProviderGemini Provider = "gemini"
	// ProviderGeminiLegacy uses the github.com/google/generative-ai-go SDK (no search grounding)
	ProviderGeminiLegacy Provider = "gemini-legacy"
)

// Config holds the model configuration for the application
type Config struct {
	Provider Provider
	Models   map[ModelTier]string
	// Timeout bounds a single Generate call; zero means no client-side limit.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration (currently Gemini)
func DefaultConfig() *Config {
	return DefaultGeminiConfig()
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	return &Config{
		Provider: ProviderGemini,
		Models: map[ModelTier]string{
			TierLite:     "gemini-2.5-flash-lite",
			TierStandard: "gemini-2.5-flash",
			TierAdvanced: "gemini-3-pro-preview",
		},
	}
}

// GetModel returns the model name for a given tier
func (c *Config) GetModel(tier ModelTier) string {
	if model, ok := c.Models[tier]; ok {
		return model
	}
	// Fallback chain: try standard, then lite
	if model, ok := c.Models[TierStandard]; ok {
		return model
	}
	if model, ok := c.Models[TierLite]; ok {
		return model
	}
	return "" // No model configured
}

// ResolveModel maps a requested model to a concrete model name. Tier names
// ("lite", "standard", "advanced") resolve through Models, an empty name
// resolves to the advanced tier, and anything else passes through unchanged.
func (c *Config) ResolveModel(name string) string {
	switch ModelTier(name) {
	case "":
		return c.GetModel(TierAdvanced)
	case TierLite, TierStandard, TierAdvanced:
		return c.GetModel(ModelTier(name))
	default:
		return name
	}
}
