package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jonathan/resume-tailor/internal/export"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/llm/llmtest"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeAnalysis runs analyze into a fresh directory and returns it.
func writeAnalysis(t *testing.T) string {
	t.Helper()
	useFake(t, llmtest.New(llmtest.Text(analysisJSON(t, 72))))
	outDir := t.TempDir()
	args := append([]string{"analyze", "--api-key", "test-key", "--out", outDir}, intakeArgs(writeInputs(t))...)
	_, err := execute(t, "", args...)
	require.NoError(t, err)
	return outDir
}

func TestGenerateCommand_AllOutputs(t *testing.T) {
	outDir := writeAnalysis(t)
	fake := llmtest.New(
		llmtest.Text("JANE DOE\nEXPERIENCE\n• Built a ledger in Go"),
		llmtest.Text("Chère équipe Acme,"),
	)
	useFake(t, fake)

	output, err := execute(t, "", "generate",
		"--api-key", "test-key",
		"--out", outDir,
		"--with-cover-letter",
		"--language", "French",
		"--pdf", "--ats-report",
	)
	require.NoError(t, err)

	for _, name := range []string{
		ResultFile,
		ResumeFile,
		CoverLetterFile,
		export.KindResume.Filename(),
		export.KindCoverLetter.Filename(),
		export.ATSReportFilename,
	} {
		path := filepath.Join(outDir, name)
		info, err := os.Stat(path)
		require.NoError(t, err, name)
		assert.NotZero(t, info.Size(), name)
		assert.Contains(t, output, "Wrote "+path)
	}

	result := readJSONFile[types.TailoringResult](t, filepath.Join(outDir, ResultFile))
	assert.Equal(t, "Chère équipe Acme,", result.CoverLetterText)
	assert.Equal(t, 72, result.AtsAnalysis.MatchScore)
	require.Equal(t, 2, fake.CallCount())
	assert.Contains(t, fake.Calls()[1].Prompt, "Write the letter in French.")
}

func TestGenerateCommand_WithEdits(t *testing.T) {
	outDir := writeAnalysis(t)
	fake := llmtest.New(llmtest.Text("JANE DOE"))
	useFake(t, fake)

	doc := readJSONFile[analysisDocument](t, filepath.Join(outDir, AnalysisFile))
	edits := types.NewUserEdits(doc.Analysis, doc.Request)
	require.NoError(t, edits.ExcludeSkill(types.CategoryTechnical, "PostgreSQL"))
	edits.Recommendations = []string{"Lead with the ledger project"}
	editsPath := filepath.Join(t.TempDir(), "edits.json")
	require.NoError(t, writeJSON(editsPath, edits))

	_, err := execute(t, "", "generate", "--api-key", "test-key", "--out", outDir, "--edits", editsPath)
	require.NoError(t, err)

	result := readJSONFile[types.TailoringResult](t, filepath.Join(outDir, ResultFile))
	assert.Equal(t, []string{"Go"}, result.AtsAnalysis.TechnicalSkillsMatched)
	assert.False(t, result.HasCoverLetter())
	assert.NoFileExists(t, filepath.Join(outDir, CoverLetterFile))
	assert.NoFileExists(t, filepath.Join(outDir, export.ATSReportFilename))
	require.Equal(t, 1, fake.CallCount())
	assert.Contains(t, fake.Calls()[0].Prompt, "Lead with the ledger project")
}

func TestGenerateCommand_MissingAnalysis(t *testing.T) {
	useFake(t, llmtest.New())

	_, err := execute(t, "", "generate", "--api-key", "test-key", "--out", t.TempDir())

	require.Error(t, err)
	assert.Contains(t, err.Error(), AnalysisFile)
}

func TestGenerateCommand_GenerationFailure(t *testing.T) {
	outDir := writeAnalysis(t)
	useFake(t, llmtest.New(llmtest.Fail(llm.KindUnavailable, "503 Service Unavailable")))

	_, err := execute(t, "", "generate", "--api-key", "test-key", "--out", outDir)

	var genErr *tailoring.GenerationError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, tailoring.StageResume, genErr.Stage)
	assert.NoFileExists(t, filepath.Join(outDir, ResultFile))
}
