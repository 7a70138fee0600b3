package types

// AtsAnalysis summarizes keyword coverage for the final documents.
type AtsAnalysis struct {
	MatchScore             int      `json:"matchScore"`
	MatchingKeywords       []string `json:"matchingKeywords"`
	MissingKeywords        []string `json:"missingKeywords"`
	TechnicalSkillsMatched []string `json:"technicalSkillsMatched"`
	SoftSkillsMatched      []string `json:"softSkillsMatched"`
	Recommendations        []string `json:"recommendations"`
}

// NewAtsAnalysis derives the ATS summary from a (possibly edited) analysis and
// the recommendations the user confirmed.
func NewAtsAnalysis(a AnalysisResult, confirmed []string) AtsAnalysis {
	matching := make([]string, 0, len(a.RequiredMatched)+len(a.NiceToHaveMatched))
	matching = append(matching, a.RequiredMatched...)
	matching = append(matching, a.NiceToHaveMatched...)

	return AtsAnalysis{
		MatchScore:             a.MatchScore,
		MatchingKeywords:       matching,
		MissingKeywords:        cloneStrings(a.RequiredMissing),
		TechnicalSkillsMatched: cloneStrings(a.TechnicalSkillsMatched),
		SoftSkillsMatched:      cloneStrings(a.SoftSkillsMatched),
		Recommendations:        cloneStrings(confirmed),
	}
}

// TailoringResult is the final output of the generation phase. Usage covers
// the generation calls only.
type TailoringResult struct {
	Markdown        string      `json:"markdown"`
	CoverLetterText string      `json:"coverLetterText"`
	Sources         []Source    `json:"sources"`
	AtsAnalysis     AtsAnalysis `json:"atsAnalysis"`
	Usage           *UsageStats `json:"usage,omitempty"`
}

// HasCoverLetter reports whether a cover letter was produced.
func (r TailoringResult) HasCoverLetter() bool {
	return r.CoverLetterText != ""
}

// Clone returns a deep copy.
func (r TailoringResult) Clone() TailoringResult {
	out := r
	if r.Sources != nil {
		out.Sources = append([]Source(nil), r.Sources...)
	}
	out.AtsAnalysis.MatchingKeywords = cloneStrings(r.AtsAnalysis.MatchingKeywords)
	out.AtsAnalysis.MissingKeywords = cloneStrings(r.AtsAnalysis.MissingKeywords)
	out.AtsAnalysis.TechnicalSkillsMatched = cloneStrings(r.AtsAnalysis.TechnicalSkillsMatched)
	out.AtsAnalysis.SoftSkillsMatched = cloneStrings(r.AtsAnalysis.SoftSkillsMatched)
	out.AtsAnalysis.Recommendations = cloneStrings(r.AtsAnalysis.Recommendations)
	if r.Usage != nil {
		u := *r.Usage
		out.Usage = &u
	}
	return out
}
