package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
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

// useFake routes every model client through fake for the test.
func useFake(t *testing.T, fake *llmtest.Fake) {
	t.Helper()
	prev := newFactory
	newFactory = func(*llm.Config) llm.Factory { return fake.Factory() }
	t.Cleanup(func() { newFactory = prev })
}

// writeInputs writes the intake documents and returns their paths by name.
func writeInputs(t *testing.T) map[string]string {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"resume":   "Jane Doe\nBackend engineer, 8 years of Go.",
		"template": "SUMMARY\nEXPERIENCE\nSKILLS",
		"projects": "Ledger service handling 2M transactions a day.",
		"job":      "Backend Engineer at Acme. Go, PostgreSQL, Kubernetes.",
	}
	paths := make(map[string]string, len(files))
	for name, content := range files {
		path := filepath.Join(dir, name+".txt")
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
		paths[name] = path
	}
	return paths
}

func intakeArgs(paths map[string]string) []string {
	return []string{
		"--resume", paths["resume"],
		"--template", paths["template"],
		"--projects", paths["projects"],
		"--job", paths["job"],
		"--company-url", "https://acme.example",
		"--role", "Backend Engineer",
	}
}

// execute runs the CLI with args and returns its standard output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func readJSONFile[T any](t *testing.T, path string) T {
	t.Helper()
	var v T
	require.NoError(t, readJSON(path, &v))
	return v
}
