package types

// Source is a web citation gathered during company research.
type Source struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// UniqueSources drops sources without a URL and repeats of a URL already
// seen, keeping first-seen order.
func UniqueSources(sources []Source) []Source {
	out := make([]Source, 0, len(sources))
	seen := make(map[string]bool, len(sources))
	for _, s := range sources {
		if s.URL == "" || seen[s.URL] {
			continue
		}
		seen[s.URL] = true
		out = append(out, s)
	}
	return out
}

// AnalysisResult is the normalized output of the analysis phase.
// Every slice may be nil when the model omitted it; consumers render a
// missing list as empty.
type AnalysisResult struct {
	MatchScore int `json:"matchScore"`

	AllRequiredSkills  []string `json:"allRequiredSkills"`
	AllPreferredSkills []string `json:"allPreferredSkills"`
	AllTechnicalSkills []string `json:"allTechnicalSkills"`
	AllSoftSkills      []string `json:"allSoftSkills"`

	RequiredMatched        []string `json:"requiredMatched"`
	RequiredMissing        []string `json:"requiredMissing"`
	NiceToHaveMatched      []string `json:"niceToHaveMatched"`
	NiceToHaveMissing      []string `json:"niceToHaveMissing"`
	TechnicalSkillsMatched []string `json:"technicalSkillsMatched"`
	TechnicalSkillsMissing []string `json:"technicalSkillsMissing"`
	SoftSkillsMatched      []string `json:"softSkillsMatched"`
	SoftSkillsMissing      []string `json:"softSkillsMissing"`
	ExcludedSkills         []string `json:"excludedSkills"`

	CompanyResearch string `json:"companyResearch"`
	ResourceSummary string `json:"resourceSummary,omitempty"`
	GapAnalysis     string `json:"gapAnalysis"`

	// Recommendations holds five entries by contract; deviations are kept as-is.
	Recommendations []string `json:"recommendations"`

	ModelTemperature float64     `json:"modelTemperature"`
	Sources          []Source    `json:"sources"`
	Usage            *UsageStats `json:"usage,omitempty"`
}

// MatchedSkills is the set of matched-skill lists a reviewer may edit.
type MatchedSkills struct {
	Required   []string
	NiceToHave []string
	Soft       []string
	Technical  []string
}

// WithMatchedOverlay returns a new record whose four matched-skill lists are
// replaced by copies of the given ones. The receiver's slices are not touched.
func (a AnalysisResult) WithMatchedOverlay(m MatchedSkills) AnalysisResult {
	out := a
	out.RequiredMatched = cloneStrings(m.Required)
	out.NiceToHaveMatched = cloneStrings(m.NiceToHave)
	out.SoftSkillsMatched = cloneStrings(m.Soft)
	out.TechnicalSkillsMatched = cloneStrings(m.Technical)
	return out
}

// NeedsAttention reports the soft quality signal described for degraded
// responses: a populated job posting should never yield an empty skill
// universe or no recommendations.
func (a AnalysisResult) NeedsAttention() bool {
	return (len(a.AllRequiredSkills) == 0 && len(a.AllTechnicalSkills) == 0) ||
		len(a.Recommendations) == 0
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	return append(make([]string, 0, len(in)), in...)
}

// Matched returns copies of the four matched-skill lists.
func (a AnalysisResult) Matched() MatchedSkills {
	return MatchedSkills{
		Required:   cloneStrings(a.RequiredMatched),
		NiceToHave: cloneStrings(a.NiceToHaveMatched),
		Soft:       cloneStrings(a.SoftSkillsMatched),
		Technical:  cloneStrings(a.TechnicalSkillsMatched),
	}
}

// Clone returns a deep copy.
func (a AnalysisResult) Clone() AnalysisResult {
	out := a.WithMatchedOverlay(a.Matched())
	out.AllRequiredSkills = cloneStrings(a.AllRequiredSkills)
	out.AllPreferredSkills = cloneStrings(a.AllPreferredSkills)
	out.AllTechnicalSkills = cloneStrings(a.AllTechnicalSkills)
	out.AllSoftSkills = cloneStrings(a.AllSoftSkills)
	out.RequiredMissing = cloneStrings(a.RequiredMissing)
	out.NiceToHaveMissing = cloneStrings(a.NiceToHaveMissing)
	out.TechnicalSkillsMissing = cloneStrings(a.TechnicalSkillsMissing)
	out.SoftSkillsMissing = cloneStrings(a.SoftSkillsMissing)
	out.ExcludedSkills = cloneStrings(a.ExcludedSkills)
	out.Recommendations = cloneStrings(a.Recommendations)
	if a.Sources != nil {
		out.Sources = append([]Source(nil), a.Sources...)
	}
	if a.Usage != nil {
		u := *a.Usage
		out.Usage = &u
	}
	return out
}
