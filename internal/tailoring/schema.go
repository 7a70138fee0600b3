package tailoring

import "github.com/jonathan/resume-tailor/internal/llm"

// analysisFields lists the model-produced AnalysisResult fields in emission order.
var analysisFields = []string{
	"companyResearch",
	"resourceSummary",
	"matchScore",
	"allRequiredSkills",
	"allPreferredSkills",
	"allTechnicalSkills",
	"allSoftSkills",
	"requiredMatched",
	"niceToHaveMatched",
	"requiredMissing",
	"niceToHaveMissing",
	"technicalSkillsMatched",
	"technicalSkillsMissing",
	"softSkillsMatched",
	"softSkillsMissing",
	"excludedSkills",
	"gapAnalysis",
	"recommendations",
}

// optionalAnalysisFields may be omitted by the model.
var optionalAnalysisFields = map[string]bool{"resourceSummary": true}

// AnalysisSchema is the response schema sent with the analysis call and used
// to grade how completely a response parsed.
func AnalysisSchema() *llm.Schema {
	props := map[string]*llm.Schema{
		"companyResearch":        {Type: llm.TypeString, Description: "Tech stack and cultural values found through search."},
		"resourceSummary":        {Type: llm.TypeString, Description: "Summary of the candidate's resource links."},
		"matchScore":             {Type: llm.TypeInteger, Description: "Overall fit from 0 to 100."},
		"allRequiredSkills":      llm.StringArray("Every mandatory skill in the posting."),
		"allPreferredSkills":     llm.StringArray("Every preferred skill in the posting."),
		"allTechnicalSkills":     llm.StringArray("Every technical skill in the posting."),
		"allSoftSkills":          llm.StringArray("Every soft skill in the posting."),
		"requiredMatched":        llm.StringArray(""),
		"niceToHaveMatched":      llm.StringArray(""),
		"requiredMissing":        llm.StringArray(""),
		"niceToHaveMissing":      llm.StringArray(""),
		"technicalSkillsMatched": llm.StringArray(""),
		"technicalSkillsMissing": llm.StringArray(""),
		"softSkillsMatched":      llm.StringArray(""),
		"softSkillsMissing":      llm.StringArray(""),
		"excludedSkills":         llm.StringArray("Skills deliberately left out."),
		"gapAnalysis":            {Type: llm.TypeString},
		"recommendations":        llm.StringArray("Exactly 5 tailoring moves."),
	}

	required := make([]string, 0, len(analysisFields))
	for _, name := range analysisFields {
		if !optionalAnalysisFields[name] {
			required = append(required, name)
		}
	}

	return &llm.Schema{
		Type:       llm.TypeObject,
		Properties: props,
		Order:      append([]string(nil), analysisFields...),
		Required:   required,
	}
}
