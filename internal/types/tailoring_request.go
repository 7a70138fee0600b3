// Package types provides the data contract threaded between the phases of the tailoring workflow.
//
//nolint:revive // types is a standard Go package name pattern
package types

// DefaultCoverLetterLanguage is the output language when none was chosen.
const DefaultCoverLetterLanguage = "English"

// DefaultModel is the backing model variant used when the request leaves it empty.
const DefaultModel = "gemini-3-pro-preview"

// MaxResourceURLs caps the number of external resource links on a request.
const MaxResourceURLs = 5

// TailoringRequest is the intake snapshot submitted by the user.
type TailoringRequest struct {
	MasterResume          string   `json:"masterResume" validate:"required"`
	SampleResumeTemplate  string   `json:"sampleResumeTemplate" validate:"required"`
	Projects              string   `json:"projects" validate:"required"`
	CoverLetter           string   `json:"coverLetter"`
	IncludeCoverLetter    bool     `json:"includeCoverLetter"`
	CoverLetterLanguage   string   `json:"coverLetterLanguage,omitempty"`
	NegativeConstraints   string   `json:"negativeConstraints"`
	StrategicInstructions string   `json:"strategicInstructions"`
	GithubURLs            []string `json:"githubUrls" validate:"max=5,dive,url"`
	JobDescription        string   `json:"jobDescription" validate:"required"`
	CompanyURL            string   `json:"companyUrl" validate:"required,url"`
	TargetRole            string   `json:"targetRole" validate:"required"`
	Tone                  Tone     `json:"tone" validate:"required,tone"`
	Model                 string   `json:"model"`
}

// ReviewOverlay carries the request fields the review step may replace
// just before generation.
type ReviewOverlay struct {
	NegativeConstraints string
	IncludeCoverLetter  bool
	CoverLetter         string
	CoverLetterLanguage string
}

// WithReviewOverlay returns a copy of the request with the review-stage
// fields replaced. The receiver is left untouched.
func (r TailoringRequest) WithReviewOverlay(o ReviewOverlay) TailoringRequest {
	out := r
	out.GithubURLs = append([]string(nil), r.GithubURLs...)
	out.NegativeConstraints = o.NegativeConstraints
	out.IncludeCoverLetter = o.IncludeCoverLetter
	out.CoverLetter = o.CoverLetter
	out.CoverLetterLanguage = o.CoverLetterLanguage
	return out
}

// Language returns the cover letter language, falling back to English.
func (r TailoringRequest) Language() string {
	if r.CoverLetterLanguage == "" {
		return DefaultCoverLetterLanguage
	}
	return r.CoverLetterLanguage
}

// ModelOrDefault returns the requested model or DefaultModel.
func (r TailoringRequest) ModelOrDefault() string {
	if r.Model == "" {
		return DefaultModel
	}
	return r.Model
}

// Clone returns a copy that shares no slices with r.
func (r TailoringRequest) Clone() TailoringRequest {
	out := r
	out.GithubURLs = cloneStrings(r.GithubURLs)
	return out
}
