package tailoring

import (
	"fmt"
	"strings"

	"github.com/jonathan/resume-tailor/internal/prompts"
	"github.com/jonathan/resume-tailor/internal/types"
)

// buildAnalysisPrompt renders the phase 1 prompt for req.
func buildAnalysisPrompt(req types.TailoringRequest) (string, error) {
	guidance := strings.TrimSpace(req.StrategicInstructions)
	if guidance == "" {
		var err error
		if guidance, err = prompts.Get(prompts.TailoringFile, "analysis-default-guidance"); err != nil {
			return "", err
		}
	}

	return prompts.Render(prompts.TailoringFile, "analysis", map[string]string{
		"TargetRole":        req.TargetRole,
		"CompanyURL":        req.CompanyURL,
		"JobDescription":    req.JobDescription,
		"MasterResume":      req.MasterResume,
		"Projects":          req.Projects,
		"ResourceLinks":     strings.Join(req.GithubURLs, ", "),
		"StrategicGuidance": guidance,
	})
}

// buildResumePrompt renders the resume generation prompt.
func buildResumePrompt(req types.TailoringRequest, analysis types.AnalysisResult, confirmed []string) (string, error) {
	return prompts.Render(prompts.TailoringFile, "resume", map[string]string{
		"TargetRole":          req.TargetRole,
		"Strategy":            numbered(confirmed),
		"RequiredMatched":     listOrNone(analysis.RequiredMatched),
		"NiceToHaveMatched":   listOrNone(analysis.NiceToHaveMatched),
		"TechnicalMatched":    listOrNone(analysis.TechnicalSkillsMatched),
		"SoftMatched":         listOrNone(analysis.SoftSkillsMatched),
		"Projects":            req.Projects,
		"MasterResume":        req.MasterResume,
		"Blueprint":           req.SampleResumeTemplate,
		"NegativeConstraints": orNone(req.NegativeConstraints),
		"Tone":                req.Tone.Description(),
	})
}

// buildCoverLetterPrompt renders the cover letter prompt. The user's draft is
// appended as guidance only when it has content.
func buildCoverLetterPrompt(req types.TailoringRequest, analysis types.AnalysisResult) (string, error) {
	draftGuidance := ""
	if draft := strings.TrimSpace(req.CoverLetter); draft != "" {
		var err error
		draftGuidance, err = prompts.Render(prompts.TailoringFile, "cover-letter-draft", map[string]string{"Draft": draft})
		if err != nil {
			return "", err
		}
	}

	return prompts.Render(prompts.TailoringFile, "cover-letter", map[string]string{
		"TargetRole":      req.TargetRole,
		"Tone":            req.Tone.Description(),
		"CompanyResearch": analysis.CompanyResearch,
		"Language":        req.Language(),
		"DraftGuidance":   draftGuidance,
	})
}

func numbered(items []string) string {
	lines := make([]string, 0, len(items))
	for i, item := range items {
		lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
	}
	return strings.Join(lines, "\n")
}

func listOrNone(items []string) string {
	if len(items) == 0 {
		return "None"
	}
	return strings.Join(items, ", ")
}

func orNone(s string) string {
	if strings.TrimSpace(s) == "" {
		return "None"
	}
	return s
}
