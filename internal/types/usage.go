package types

// UsageStats is the token accounting for one or more model calls.
// When Estimated is set at least one figure came from the character-count
// heuristic (about four characters per token) and is not exact.
type UsageStats struct {
	PromptTokens     int  `json:"promptTokens"`
	CandidatesTokens int  `json:"candidatesTokens"`
	TotalTokens      int  `json:"totalTokens"`
	Estimated        bool `json:"estimated,omitempty"`
}

// Add returns the field-wise sum of two usage records.
func (u UsageStats) Add(other UsageStats) UsageStats {
	return UsageStats{
		PromptTokens:     u.PromptTokens + other.PromptTokens,
		CandidatesTokens: u.CandidatesTokens + other.CandidatesTokens,
		TotalTokens:      u.TotalTokens + other.TotalTokens,
		Estimated:        u.Estimated || other.Estimated,
	}
}
