package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/server/ratelimit"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/workflow"
	"github.com/stretchr/testify/require"
)

func analysisJSON(t *testing.T, score int) string {
	t.Helper()
	data, err := json.Marshal(map[string]any{
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
		"technicalSkillsMatched": []string{"Go", "PostgreSQL"},
		"technicalSkillsMissing": []string{"Terraform"},
		"softSkillsMatched":      []string{"Mentoring"},
		"softSkillsMissing":      []string{},
		"excludedSkills":         []string{},
		"gapAnalysis":            "No Terraform.",
		"recommendations":        []string{"r1", "r2", "r3", "r4", "r5"},
	})
	require.NoError(t, err)
	return string(data)
}

func form() intake.Form {
	return intake.Form{
		MasterResume:         "Jane Doe, backend engineer.",
		SampleResumeTemplate: "SUMMARY\nEXPERIENCE",
		Projects:             "Ledger service.",
		JobDescription:       "Go, PostgreSQL, Kubernetes.",
		CompanyURL:           "https://acme.example",
		TargetRole:           "Backend Engineer",
		Tone:                 "concise",
	}
}

type testServer struct {
	*Server
	fake *llmtest.Fake
}

func newTestServer(t *testing.T, fake *llmtest.Fake, mutate func(*Config)) *testServer {
	t.Helper()
	wf, err := workflow.New(workflow.Options{
		Analyzer:  tailoring.NewAnalyzer(fake.Factory()),
		Generator: tailoring.NewGenerator(fake.Factory()),
		Selector:  session.StaticSelector("test-key"),
		Validator: intake.NewValidator(),
	})
	require.NoError(t, err)

	cfg := Config{
		Workflow:  wf,
		RateLimit: &ratelimit.Config{Enabled: false},
	}
	if mutate != nil {
		mutate(&cfg)
	}
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.rateLimiter.Stop)
	return &testServer{Server: s, fake: fake}
}

func (s *testServer) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		data, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.RemoteAddr = "127.0.0.1:50000"
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func (s *testServer) connect(t *testing.T) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/session/connect", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
}
