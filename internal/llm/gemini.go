package llm

import (
	"context"
	"errors"
	"log"

	"google.golang.org/genai"
)

// GeminiClient implements Client for Google Gemini through google.golang.org/genai.
type GeminiClient struct {
	client *genai.Client
	config *Config
}

// NewGeminiClient creates a new Gemini client
func NewGeminiClient(ctx context.Context, config *Config, apiKey string) (*GeminiClient, error) {
	if apiKey == "" {
		return nil, &Error{Kind: KindAuth, Message: "API key is required"}
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &Error{Kind: KindInvalidRequest, Message: "failed to create Gemini client", Cause: err}
	}

	return &GeminiClient{client: client, config: config}, nil
}

// Generate runs one GenerateContent call.
func (c *GeminiClient) Generate(ctx context.Context, req Request) (*Response, error) {
	modelName := c.config.ResolveModel(req.Model)
	if modelName == "" {
		return nil, &Error{Kind: KindInvalidRequest, Message: "no model configured"}
	}

	ctx, cancel := withTimeout(ctx, c.config)
	defer cancel()

	resp, err := c.client.Models.GenerateContent(ctx, modelName, genai.Text(req.Prompt), buildGenAIConfig(req))
	if err != nil {
		log.Printf("[llm] %s call failed: %v", modelName, err)
		return nil, classifyGenAIError(err)
	}
	if resp == nil {
		return nil, &Error{Kind: KindEmpty, Message: "no response generated"}
	}

	return convertGenAIResponse(resp), nil
}

// Close releases resources held by the client. The genai client holds none.
func (c *GeminiClient) Close() error {
	return nil
}

func buildGenAIConfig(req Request) *genai.GenerateContentConfig {
	temperature := req.Temperature
	cfg := &genai.GenerateContentConfig{
		Temperature: &temperature,
	}
	if req.JSON || req.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
	}
	if req.Schema != nil {
		cfg.ResponseSchema = toGenAISchema(req.Schema)
	}
	if req.WebSearch {
		cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}
	}
	return cfg
}

func toGenAISchema(s *Schema) *genai.Schema {
	if s == nil {
		return nil
	}
	out := &genai.Schema{
		Type:        genAIType(s.Type),
		Description: s.Description,
		Items:       toGenAISchema(s.Items),
		Required:    append([]string(nil), s.Required...),
	}
	if len(s.Properties) > 0 {
		out.Properties = make(map[string]*genai.Schema, len(s.Properties))
		for name, prop := range s.Properties {
			out.Properties[name] = toGenAISchema(prop)
		}
		out.PropertyOrdering = s.orderedNames()
	}
	return out
}

func genAIType(t SchemaType) genai.Type {
	switch t {
	case TypeObject:
		return genai.TypeObject
	case TypeArray:
		return genai.TypeArray
	case TypeInteger:
		return genai.TypeInteger
	case TypeNumber:
		return genai.TypeNumber
	case TypeBoolean:
		return genai.TypeBoolean
	default:
		return genai.TypeString
	}
}

// convertGenAIResponse extracts text, web citations and usage metadata.
func convertGenAIResponse(resp *genai.GenerateContentResponse) *Response {
	out := &Response{Text: resp.Text()}

	if len(resp.Candidates) > 0 && resp.Candidates[0] != nil {
		if gm := resp.Candidates[0].GroundingMetadata; gm != nil {
			for _, chunk := range gm.GroundingChunks {
				if chunk == nil || chunk.Web == nil {
					continue
				}
				out.Citations = append(out.Citations, Citation{Title: chunk.Web.Title, URI: chunk.Web.URI})
			}
		}
	}

	if um := resp.UsageMetadata; um != nil {
		out.Usage = &Usage{
			PromptTokens:     int(um.PromptTokenCount),
			CandidatesTokens: int(um.CandidatesTokenCount),
			TotalTokens:      int(um.TotalTokenCount),
		}
	}

	return out
}

func classifyGenAIError(err error) *Error {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return classify(apiErr.Code, apiErr.Status, apiErr.Message, err)
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return classify(apiErrPtr.Code, apiErrPtr.Status, apiErrPtr.Message, err)
	}
	return classify(0, "", "generate content failed", err)
}
