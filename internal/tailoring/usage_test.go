package tailoring

import (
	"strings"
	"testing"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
)

func ceilQuarter(n int) int {
	return (n + 3) / 4
}

func TestUsageFor_EstimateWhenNoMetadata(t *testing.T) {
	for l1 := 0; l1 <= 24; l1++ {
		for l2 := 0; l2 <= 24; l2++ {
			prompt := strings.Repeat("p", l1)
			text := strings.Repeat("r", l2)

			got := usageFor(prompt, &llm.Response{Text: text})

			assert.Equal(t, ceilQuarter(l1), got.PromptTokens, "L1=%d", l1)
			assert.Equal(t, ceilQuarter(l2), got.CandidatesTokens, "L2=%d", l2)
			assert.Equal(t, ceilQuarter(l1)+ceilQuarter(l2), got.TotalTokens, "L1=%d L2=%d", l1, l2)
			assert.True(t, got.Estimated)
		}
	}
}

func TestUsageFor_ReportedCounts(t *testing.T) {
	resp := &llm.Response{
		Text:  "whatever",
		Usage: &llm.Usage{PromptTokens: 120, CandidatesTokens: 40, TotalTokens: 160},
	}

	got := usageFor("prompt", resp)

	assert.Equal(t, types.UsageStats{PromptTokens: 120, CandidatesTokens: 40, TotalTokens: 160}, got)
}

func TestUsageFor_PerFieldFallback(t *testing.T) {
	resp := &llm.Response{
		Text:  strings.Repeat("x", 10),
		Usage: &llm.Usage{PromptTokens: 99},
	}

	got := usageFor(strings.Repeat("y", 8), resp)

	assert.Equal(t, 99, got.PromptTokens)
	assert.Equal(t, 3, got.CandidatesTokens)
	assert.Equal(t, 2+3, got.TotalTokens)
	assert.True(t, got.Estimated)
}

func TestUsageFor_NilResponse(t *testing.T) {
	got := usageFor("abcd", nil)
	assert.Equal(t, types.UsageStats{PromptTokens: 1, CandidatesTokens: 0, TotalTokens: 1, Estimated: true}, got)
}
