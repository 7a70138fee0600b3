package tailoring

import (
	"encoding/json"
	"testing"

	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/require"
)

func sampleRequest() types.TailoringRequest {
	return types.TailoringRequest{
		MasterResume:         "Jane Doe. Senior engineer at Acme 2019-2024. Built payment APIs in Go.",
		SampleResumeTemplate: "SUMMARY\nEXPERIENCE\nSKILLS",
		Projects:             "Ledger: double-entry accounting service handling 2M tx/day.",
		JobDescription:       "We need a backend engineer with Go, PostgreSQL and Kubernetes.",
		CompanyURL:           "https://example.com",
		TargetRole:           "Backend Engineer",
		Tone:                 types.ToneConcise,
		GithubURLs:           []string{"https://github.com/jane/ledger"},
	}
}

func sampleAnalysis(score int) types.AnalysisResult {
	return types.AnalysisResult{
		MatchScore:             score,
		AllRequiredSkills:      []string{"Go", "PostgreSQL", "Kubernetes"},
		AllPreferredSkills:     []string{"Terraform"},
		AllTechnicalSkills:     []string{"Go", "PostgreSQL", "Kubernetes", "Terraform"},
		AllSoftSkills:          []string{"Mentoring"},
		RequiredMatched:        []string{"Go", "PostgreSQL"},
		RequiredMissing:        []string{"Kubernetes"},
		NiceToHaveMatched:      []string{},
		NiceToHaveMissing:      []string{"Terraform"},
		TechnicalSkillsMatched: []string{"Go", "PostgreSQL", "Kubernetes"},
		TechnicalSkillsMissing: []string{"Terraform"},
		SoftSkillsMatched:      []string{"Mentoring"},
		SoftSkillsMissing:      []string{},
		ExcludedSkills:         []string{},
		CompanyResearch:        "Acme runs Go services on GKE and values ownership.",
		GapAnalysis:            "No production Kubernetes experience listed.",
		Recommendations: []string{
			"Lead with the Ledger throughput numbers.",
			"Mirror 'payments platform' wording.",
			"Move Go to the first competency.",
			"Quantify the API latency work.",
			"Mention on-call ownership.",
		},
	}
}

// modelJSON renders only the fields the model produces.
func modelJSON(t *testing.T, a types.AnalysisResult) string {
	t.Helper()
	data, err := json.Marshal(a)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	for _, name := range clientOwnedFields {
		delete(doc, name)
	}
	data, err = json.Marshal(doc)
	require.NoError(t, err)
	return string(data)
}

func linked() *session.Context {
	return session.New("test-key")
}
