package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/export"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Output file names.
const (
	AnalysisFile    = "analysis.json"
	ResultFile      = "result.json"
	ResumeFile      = "Tailored_Resume.md"
	CoverLetterFile = "Tailored_Cover_Letter.md"
)

// analysisDocument is what analyze writes and generate reads back.
type analysisDocument struct {
	Request     types.TailoringRequest `json:"request"`
	Analysis    types.AnalysisResult   `json:"analysis"`
	ParseStatus tailoring.ParseStatus  `json:"parseStatus"`
	Warnings    []string               `json:"warnings,omitempty"`
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", filepath.Base(path), err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

// writeResult writes the result JSON, the markdown documents and, when
// enabled, the PDFs and the ATS workbook. It returns the paths written.
func writeResult(cfg config.Config, analysis *types.AnalysisResult, result *types.TailoringResult) ([]string, error) {
	dir := cfg.OutputDir
	var written []string
	write := func(name string, data []byte) error {
		path := filepath.Join(dir, name)
		if err := writeFile(path, data); err != nil {
			return err
		}
		written = append(written, path)
		return nil
	}

	resultPath := filepath.Join(dir, ResultFile)
	if err := writeJSON(resultPath, result); err != nil {
		return nil, err
	}
	written = append(written, resultPath)

	if err := write(ResumeFile, []byte(result.Markdown)); err != nil {
		return written, err
	}
	if result.HasCoverLetter() {
		if err := write(CoverLetterFile, []byte(result.CoverLetterText)); err != nil {
			return written, err
		}
	}

	if cfg.PDF {
		docs := []struct {
			kind export.Kind
			text string
		}{{export.KindResume, result.Markdown}}
		if result.HasCoverLetter() {
			docs = append(docs, struct {
				kind export.Kind
				text string
			}{export.KindCoverLetter, result.CoverLetterText})
		}
		for _, doc := range docs {
			var buf bytes.Buffer
			if err := export.WritePDF(&buf, doc.text, doc.kind); err != nil {
				return written, err
			}
			if err := write(doc.kind.Filename(), buf.Bytes()); err != nil {
				return written, err
			}
		}
	}

	if cfg.ATSReport {
		var buf bytes.Buffer
		if err := export.WriteATSReport(&buf, analysis, result); err != nil {
			return written, err
		}
		if err := write(export.ATSReportFilename, buf.Bytes()); err != nil {
			return written, err
		}
	}

	return written, nil
}
