package llm

import (
	"errors"
	"testing"

	legacygenai "github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
)

func strPtr(s string) *string { return &s }

func TestConvertLegacyResponse(t *testing.T) {
	resp := &legacygenai.GenerateContentResponse{
		Candidates: []*legacygenai.Candidate{
			{
				Content: &legacygenai.Content{
					Parts: []legacygenai.Part{legacygenai.Text("SUMMARY\n"), legacygenai.Text("Built things")},
				},
				CitationMetadata: &legacygenai.CitationMetadata{
					CitationSources: []*legacygenai.CitationSource{
						{URI: strPtr("https://acme.dev/about")},
						{URI: nil},
					},
				},
			},
		},
		UsageMetadata: &legacygenai.UsageMetadata{
			PromptTokenCount:     10,
			CandidatesTokenCount: 4,
			TotalTokenCount:      14,
		},
	}

	out, err := convertLegacyResponse(resp)
	require.NoError(t, err)
	assert.Equal(t, "SUMMARY\nBuilt things", out.Text)
	assert.Equal(t, []Citation{{Title: "acme.dev", URI: "https://acme.dev/about"}}, out.Citations)
	assert.Equal(t, &Usage{PromptTokens: 10, CandidatesTokens: 4, TotalTokens: 14}, out.Usage)
}

func TestConvertLegacyResponse_Empty(t *testing.T) {
	_, err := convertLegacyResponse(&legacygenai.GenerateContentResponse{})
	require.Error(t, err)
	assert.Equal(t, KindEmpty, KindOf(err))

	_, err = convertLegacyResponse(&legacygenai.GenerateContentResponse{
		Candidates: []*legacygenai.Candidate{{Content: &legacygenai.Content{}}},
	})
	assert.Equal(t, KindEmpty, KindOf(err))
}

func TestToLegacySchema(t *testing.T) {
	s := toLegacySchema(sampleSchema())

	assert.Equal(t, legacygenai.TypeObject, s.Type)
	assert.Equal(t, legacygenai.TypeInteger, s.Properties["score"].Type)
	assert.Equal(t, legacygenai.TypeString, s.Properties["skills"].Items.Type)
	assert.Equal(t, []string{"score"}, s.Required)
}

func TestClassifyLegacyError(t *testing.T) {
	err := classifyLegacyError(&googleapi.Error{Code: 403, Message: "forbidden"})
	assert.Equal(t, KindAuth, err.Kind)

	err = classifyLegacyError(errors.New("rpc error: code = NotFound desc = models/x is not found"))
	assert.Equal(t, KindNotFound, err.Kind)

	err = classifyLegacyError(errors.New("rpc error: code = ResourceExhausted desc = quota"))
	assert.Equal(t, KindRateLimited, err.Kind)

	err = classifyLegacyError(errors.New("something odd"))
	assert.Equal(t, KindUnknown, err.Kind)
}

func TestClassifyLegacyError_GRPCStatus(t *testing.T) {
	tests := []struct {
		name string
		msg  string
		want ErrorKind
	}{
		{"invalid key", "rpc error: code = InvalidArgument desc = API key not valid. Please pass a valid API key.", KindAuth},
		{"invalid argument", "rpc error: code = InvalidArgument desc = temperature out of range", KindInvalidRequest},
		{"description mentions internal", "rpc error: code = NotFound desc = internal model alias missing", KindNotFound},
		{"deadline", "rpc error: code = DeadlineExceeded desc = internal deadline", KindTimeout},
		{"internal", "rpc error: code = Internal desc = backend error", KindUnavailable},
		{"unknown code", "rpc error: code = Canceled desc = internal", KindUnknown},
		{"bare status", "googleapi: UNAVAILABLE: try again", KindUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := classifyLegacyError(errors.New(tt.msg))
			assert.Equal(t, tt.want, err.Kind)
		})
	}
}
