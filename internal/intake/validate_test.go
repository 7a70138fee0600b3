package intake

import (
	"testing"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validForm() Form {
	return Form{
		MasterResume:         "Jane Doe, backend engineer",
		SampleResumeTemplate: "# NAME",
		Projects:             "payments ledger",
		JobDescription:       "Senior Go engineer",
		CompanyURL:           "https://acme.example",
		TargetRole:           "Senior Backend Engineer",
		GithubURLs:           []string{"https://github.com/jane"},
	}
}

func TestValidator_Valid(t *testing.T) {
	assert.NoError(t, NewValidator().Validate(validForm().Normalize()))
}

func TestValidator_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*types.TailoringRequest)
		field  string
		rule   string
	}{
		{"missing resume", func(r *types.TailoringRequest) { r.MasterResume = "" }, "masterResume", "required"},
		{"missing template", func(r *types.TailoringRequest) { r.SampleResumeTemplate = "" }, "sampleResumeTemplate", "required"},
		{"missing projects", func(r *types.TailoringRequest) { r.Projects = "" }, "projects", "required"},
		{"missing job", func(r *types.TailoringRequest) { r.JobDescription = "" }, "jobDescription", "required"},
		{"missing role", func(r *types.TailoringRequest) { r.TargetRole = "" }, "targetRole", "required"},
		{"bad company url", func(r *types.TailoringRequest) { r.CompanyURL = "acme" }, "companyUrl", "url"},
		{"unknown tone", func(r *types.TailoringRequest) { r.Tone = "Sarcastic" }, "tone", "tone"},
		{"bad resource url", func(r *types.TailoringRequest) { r.GithubURLs = []string{"not a url"} }, "githubUrls[0]", "url"},
		{
			"too many links",
			func(r *types.TailoringRequest) {
				r.GithubURLs = []string{"https://1.dev", "https://2.dev", "https://3.dev", "https://4.dev", "https://5.dev", "https://6.dev"}
			},
			"githubUrls", "max",
		},
	}

	v := NewValidator()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validForm().Normalize()
			tt.mutate(&req)

			err := v.Validate(req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			require.Len(t, verr.Fields, 1)
			assert.Equal(t, FieldError{Field: tt.field, Rule: tt.rule}, verr.Fields[0])
			assert.True(t, verr.Has(tt.field))
			assert.Contains(t, err.Error(), tt.field)
		})
	}
}

func TestValidator_ReportsEveryField(t *testing.T) {
	err := NewValidator().Validate(types.TailoringRequest{})

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	for _, field := range []string{"masterResume", "sampleResumeTemplate", "projects", "jobDescription", "companyUrl", "targetRole", "tone"} {
		assert.True(t, verr.Has(field), field)
	}
	assert.False(t, verr.Has("coverLetter"))
}
