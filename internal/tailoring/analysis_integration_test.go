//go:build integration
// +build integration

package tailoring

import (
	"context"
	"os"
	"testing"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func liveSession(t *testing.T) *session.Context {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		t.Skip("GEMINI_API_KEY not set, skipping integration test")
	}
	return session.New(apiKey)
}

func TestAnalyze_RealAPI(t *testing.T) {
	sess := liveSession(t)

	analyzer := NewAnalyzer(llm.NewFactory(llm.DefaultConfig()))
	analysis, err := analyzer.Analyze(context.Background(), sess, sampleRequest())
	require.NoError(t, err)
	require.NotNil(t, analysis)

	assert.NotEqual(t, ParseUnparsable, analysis.Status)
	result := analysis.Result
	assert.GreaterOrEqual(t, result.MatchScore, 0)
	assert.LessOrEqual(t, result.MatchScore, 100)
	assert.NotEmpty(t, result.AllRequiredSkills)
	assert.NotEmpty(t, result.Recommendations)
	assert.NotEmpty(t, result.CompanyResearch)
	assert.Equal(t, AnalysisTemperature, result.ModelTemperature)

	require.NotNil(t, result.Usage)
	assert.Positive(t, result.Usage.PromptTokens)
	assert.Positive(t, result.Usage.CandidatesTokens)
}
