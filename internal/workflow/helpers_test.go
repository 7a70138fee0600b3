package workflow

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/require"
)

func request() types.TailoringRequest {
	return types.TailoringRequest{
		MasterResume:         "Jane Doe, backend engineer.",
		SampleResumeTemplate: "SUMMARY\nEXPERIENCE",
		Projects:             "Ledger service.",
		JobDescription:       "Go, PostgreSQL, Kubernetes.",
		CompanyURL:           "https://example.com",
		TargetRole:           "Backend Engineer",
		Tone:                 types.ToneConcise,
	}
}

func analysisJSON(t *testing.T, score int) string {
	t.Helper()
	doc := map[string]any{
		"companyResearch":        "Acme builds payments on GKE.",
		"matchScore":             score,
		"allRequiredSkills":      []string{"Go", "PostgreSQL"},
		"allPreferredSkills":     []string{"Terraform"},
		"allTechnicalSkills":     []string{"Go", "PostgreSQL", "Terraform"},
		"allSoftSkills":          []string{"Mentoring"},
		"requiredMatched":        []string{"Go", "PostgreSQL"},
		"niceToHaveMatched":      []string{},
		"requiredMissing":        []string{},
		"niceToHaveMissing":      []string{"Terraform"},
		"technicalSkillsMatched": []string{"Go", "PostgreSQL", "Docker"},
		"technicalSkillsMissing": []string{"Terraform"},
		"softSkillsMatched":      []string{"Mentoring"},
		"softSkillsMissing":      []string{},
		"excludedSkills":         []string{},
		"gapAnalysis":            "No Terraform.",
		"recommendations":        []string{"r1", "r2", "r3", "r4", "r5"},
	}
	data, err := json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

func newWorkflow(t *testing.T, fake *llmtest.Fake, mutate func(*Options)) *Workflow {
	t.Helper()
	opts := Options{
		Analyzer:  tailoring.NewAnalyzer(fake.Factory()),
		Generator: tailoring.NewGenerator(fake.Factory()),
		Selector:  session.StaticSelector("test-key"),
	}
	if mutate != nil {
		mutate(&opts)
	}
	w, err := New(opts)
	require.NoError(t, err)
	return w
}

// connected returns a workflow already in intake.
func connected(t *testing.T, fake *llmtest.Fake) *Workflow {
	t.Helper()
	w := newWorkflow(t, fake, nil)
	require.NoError(t, w.Connect(t.Context()))
	return w
}
