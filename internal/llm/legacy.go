package llm

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"regexp"
	"strings"

	legacygenai "github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// LegacyGeminiClient implements Client on github.com/google/generative-ai-go.
// It supports response schemas and usage metadata but not search grounding.
type LegacyGeminiClient struct {
	client *legacygenai.Client
	config *Config
}

// NewLegacyGeminiClient creates a new client on the legacy SDK.
func NewLegacyGeminiClient(ctx context.Context, config *Config, apiKey string) (*LegacyGeminiClient, error) {
	if apiKey == "" {
		return nil, &Error{Kind: KindAuth, Message: "API key is required"}
	}

	client, err := legacygenai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Message: "failed to create Gemini client", Cause: err}
	}

	return &LegacyGeminiClient{client: client, config: config}, nil
}

// Generate runs one GenerateContent call.
func (c *LegacyGeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	modelName := c.config.ResolveModel(req.Model)
	if modelName == "" {
		return nil, &Error{Kind: KindInvalidRequest, Message: "no model configured"}
	}

	model := c.client.GenerativeModel(modelName)
	model.SetTemperature(req.Temperature)
	if req.JSON || req.Schema != nil {
		model.ResponseMIMEType = "application/json"
	}
	if req.Schema != nil {
		model.ResponseSchema = toLegacySchema(req.Schema)
	}
	if req.WebSearch {
		log.Printf("[llm] search grounding is not available on %s; continuing without it", ProviderGeminiLegacy)
	}

	ctx, cancel := withTimeout(ctx, c.config)
	defer cancel()

	resp, err := model.GenerateContent(ctx, legacygenai.Text(req.Prompt))
	if err != nil {
		log.Printf("[llm] %s call failed: %v", modelName, err)
		return nil, classifyLegacyError(err)
	}

	return convertLegacyResponse(resp)
}

// Close releases resources held by the client
func (c *LegacyGeminiClient) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

func toLegacySchema(s *Schema) *legacygenai.Schema {
	if s == nil {
		return nil
	}
	out := &legacygenai.Schema{
		Type:        legacyType(s.Type),
		Description: s.Description,
		Items:       toLegacySchema(s.Items),
		Required:    append([]string(nil), s.Required...),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*legacygenai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toLegacySchema(prop)
		}
	}
	return out
}

func legacyType(t SchemaType) legacygenai.Type {
	switch t {
	case TypeObject:
		return legacygenai.TypeObject
	case TypeArray:
		return legacygenai.TypeArray
	case TypeInteger:
		return legacygenai.TypeInteger
	case TypeNumber:
		return legacygenai.TypeNumber
	case TypeBoolean:
		return legacygenai.TypeBoolean
	default:
		return legacygenai.TypeString
	}
}

// convertLegacyResponse extracts text, citation sources and usage metadata.
func convertLegacyResponse(resp *legacygenai.GenerateContentResponse) (*Response, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, &Error{Kind: KindEmpty, Message: "no candidates in response"}
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return nil, &Error{Kind: KindEmpty, Message: "no content in response"}
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(legacygenai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	if len(parts) == 0 {
		return nil, &Error{Kind: KindEmpty, Message: "no text parts in response"}
	}

	out := &Response{Text: strings.Join(parts, "")}

	if cm := candidate.CitationMetadata; cm != nil {
		for _, src := range cm.CitationSources {
			if src == nil || src.URI == nil || *src.URI == "" {
				continue
			}
			out.Citations = append(out.Citations, Citation{Title: hostOf(*src.URI), URI: *src.URI})
		}
	}

	if um := resp.UsageMetadata; um != nil {
		out.Usage = &Usage{
			PromptTokens:     int(um.PromptTokenCount),
			CandidatesTokens: int(um.CandidatesTokenCount),
			TotalTokens:      int(um.TotalTokenCount),
		}
	}

	return out, nil
}

// canonical gRPC code names as they appear in legacy SDK error strings,
// specific names before broad ones
var legacyStatusNames = []string{
	"UNAUTHENTICATED", "PERMISSION_DENIED", "INVALID_ARGUMENT", "FAILED_PRECONDITION",
	"RESOURCE_EXHAUSTED", "DEADLINE_EXCEEDED", "NOT_FOUND", "UNAVAILABLE", "INTERNAL",
}

var grpcCodePattern = regexp.MustCompile(`code = ([A-Za-z]+)`)

func classifyLegacyError(err error) *Error {
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		return classify(gErr.Code, "", gErr.Message, err)
	}

	// The gRPC transport only exposes its status through the message.
	msg := err.Error()
	if status := legacyStatus(msg); status != "" {
		return classify(0, status, msg, err)
	}
	return classify(0, "", fmt.Sprintf("generate content failed: %s", msg), err)
}

// legacyStatus reads the status name from "code = X" when present and only
// falls back to scanning the whole message otherwise.
func legacyStatus(msg string) string {
	if m := grpcCodePattern.FindStringSubmatch(msg); m != nil {
		code := squash(m[1])
		for _, name := range legacyStatusNames {
			if code == squash(name) {
				return name
			}
		}
		return ""
	}
	squashed := squash(msg)
	for _, name := range legacyStatusNames {
		if strings.Contains(squashed, squash(name)) {
			return name
		}
	}
	return ""
}

// squash upper-cases s and drops separators so "NotFound" matches "NOT_FOUND".
func squash(s string) string {
	return strings.NewReplacer("_", "", " ", "").Replace(strings.ToUpper(s))
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return raw
	}
	return u.Host
}
