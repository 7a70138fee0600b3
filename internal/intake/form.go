// Package intake turns the user's intake form into a validated TailoringRequest.
package intake

import (
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

// Form is the raw intake input as typed by the user. Every field is free
// text; Normalize applies defaults and tidies lists.
type Form struct {
	MasterResume          string   `json:"masterResume"`
	SampleResumeTemplate  string   `json:"sampleResumeTemplate"`
	Projects              string   `json:"projects"`
	CoverLetter           string   `json:"coverLetter"`
	IncludeCoverLetter    bool     `json:"includeCoverLetter"`
	CoverLetterLanguage   string   `json:"coverLetterLanguage"`
	NegativeConstraints   string   `json:"negativeConstraints"`
	StrategicInstructions string   `json:"strategicInstructions"`
	GithubURLs            []string `json:"githubUrls"`
	JobDescription        string   `json:"jobDescription"`
	CompanyURL            string   `json:"companyUrl"`
	TargetRole            string   `json:"targetRole"`
	Tone                  string   `json:"tone"`
	Model                 string   `json:"model"`
}

// Normalize builds a TailoringRequest from the form. Blank resource links
// are dropped and the list is capped at types.MaxResourceURLs; tone,
// language and model fall back to their defaults. An unknown tone is kept
// verbatim so validation can report it.
func (f Form) Normalize() types.TailoringRequest {
	tone, err := types.ParseTone(f.Tone)
	if err != nil {
		tone = types.Tone(strings.TrimSpace(f.Tone))
	}

	language := strings.TrimSpace(f.CoverLetterLanguage)
	if language == "" {
		language = types.DefaultCoverLetterLanguage
	}

	model := strings.TrimSpace(f.Model)
	if model == "" {
		model = types.DefaultModel
	}

	return types.TailoringRequest{
		MasterResume:          f.MasterResume,
		SampleResumeTemplate:  f.SampleResumeTemplate,
		Projects:              f.Projects,
		CoverLetter:           f.CoverLetter,
		IncludeCoverLetter:    f.IncludeCoverLetter,
		CoverLetterLanguage:   language,
		NegativeConstraints:   f.NegativeConstraints,
		StrategicInstructions: f.StrategicInstructions,
		GithubURLs:            ResourceURLs(f.GithubURLs),
		JobDescription:        f.JobDescription,
		CompanyURL:            strings.TrimSpace(f.CompanyURL),
		TargetRole:            strings.TrimSpace(f.TargetRole),
		Tone:                  tone,
		Model:                 model,
	}
}

// ResourceURLs trims links, drops blanks and keeps at most
// types.MaxResourceURLs. The result is never nil.
func ResourceURLs(in []string) []string {
	out := make([]string, 0, len(in))
	for _, u := range in {
		u = strings.TrimSpace(u)
		if u == "" {
			continue
		}
		out = append(out, u)
		if len(out) == types.MaxResourceURLs {
			break
		}
	}
	return out
}

// FromRequest turns a request back into a form, for re-editing on the
// intake screen.
func FromRequest(req types.TailoringRequest) Form {
	return Form{
		MasterResume:          req.MasterResume,
		SampleResumeTemplate:  req.SampleResumeTemplate,
		Projects:              req.Projects,
		CoverLetter:           req.CoverLetter,
		IncludeCoverLetter:    req.IncludeCoverLetter,
		CoverLetterLanguage:   req.CoverLetterLanguage,
		NegativeConstraints:   req.NegativeConstraints,
		StrategicInstructions: req.StrategicInstructions,
		GithubURLs:            append([]string(nil), req.GithubURLs...),
		JobDescription:        req.JobDescription,
		CompanyURL:            req.CompanyURL,
		TargetRole:            req.TargetRole,
		Tone:                  string(req.Tone),
		Model:                 req.Model,
	}
}
