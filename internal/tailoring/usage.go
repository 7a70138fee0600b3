package tailoring

import (
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

// usageFor returns the provider's token counts for one call, falling back per
// field to the character estimate when a count is missing or zero.
func usageFor(prompt string, resp *llm.Response) types.UsageStats {
	var reported llm.Usage
	text := ""
	if resp != nil {
		text = resp.Text
		if resp.Usage != nil {
			reported = *resp.Usage
		}
	}

	promptEstimate := llm.EstimateTokens(prompt)
	candidatesEstimate := llm.EstimateTokens(text)

	stats := types.UsageStats{
		PromptTokens:     reported.PromptTokens,
		CandidatesTokens: reported.CandidatesTokens,
		TotalTokens:      reported.TotalTokens,
	}
	if stats.PromptTokens <= 0 {
		stats.PromptTokens = promptEstimate
		stats.Estimated = true
	}
	if stats.CandidatesTokens <= 0 {
		stats.CandidatesTokens = candidatesEstimate
		stats.Estimated = true
	}
	if stats.TotalTokens <= 0 {
		stats.TotalTokens = promptEstimate + candidatesEstimate
		stats.Estimated = true
	}
	return stats
}
