package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/xuri/excelize/v2"
)

// Sheet names of the ATS workbook.
const (
	SummarySheet = "Summary"
	SkillsSheet  = "Skills"
	SourcesSheet = "Sources"
)

// ATSReportFilename is the download name of the workbook.
const ATSReportFilename = "ATS_Report.xlsx"

// WriteATSReport writes an xlsx workbook describing the match: a Summary
// sheet with the score and recommendations, a Skills sheet listing every
// skill with its category and status, and a Sources sheet with the research
// citations. analysis may be nil when only the result is known.
func WriteATSReport(w io.Writer, analysis *types.AnalysisResult, result *types.TailoringResult) error {
	if result == nil {
		return fmt.Errorf("no result to export")
	}

	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	for _, name := range []string{SkillsSheet, SourcesSheet} {
		if _, err := f.NewSheet(name); err != nil {
			return fmt.Errorf("failed to create %s sheet: %w", strings.ToLower(name), err)
		}
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4472C4"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center"},
	})
	if err != nil {
		return fmt.Errorf("failed to create header style: %w", err)
	}

	if err := writeSummarySheet(f, headerStyle, result); err != nil {
		return fmt.Errorf("failed to create summary sheet: %w", err)
	}
	if err := writeSkillsSheet(f, headerStyle, analysis, result); err != nil {
		return fmt.Errorf("failed to create skills sheet: %w", err)
	}
	if err := writeSourcesSheet(f, headerStyle, result.Sources); err != nil {
		return fmt.Errorf("failed to create sources sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeSummarySheet(f *excelize.File, headerStyle int, result *types.TailoringResult) error {
	ats := result.AtsAnalysis
	rows := [][]any{
		{"ATS Match Report", ""},
		{"Match Score", ats.MatchScore},
		{"Matching Keywords", len(ats.MatchingKeywords)},
		{"Missing Keywords", len(ats.MissingKeywords)},
		{"Cover Letter", yesNo(result.HasCoverLetter())},
	}
	if result.Usage != nil {
		rows = append(rows,
			[]any{"Prompt Tokens", result.Usage.PromptTokens},
			[]any{"Output Tokens", result.Usage.CandidatesTokens},
			[]any{"Total Tokens", result.Usage.TotalTokens},
		)
	}
	rows = append(rows, []any{"", ""}, []any{"Recommendations", ""})
	recommendationsRow := len(rows)
	for i, rec := range ats.Recommendations {
		rows = append(rows, []any{i + 1, rec})
	}

	if err := writeRows(f, SummarySheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "A", "A", 22); err != nil {
		return err
	}
	if err := f.SetColWidth(SummarySheet, "B", "B", 80); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "B1", headerStyle); err != nil {
		return err
	}
	cell := fmt.Sprintf("A%d", recommendationsRow)
	return f.SetCellStyle(SummarySheet, cell, fmt.Sprintf("B%d", recommendationsRow), headerStyle)
}

type skillGroup struct {
	category string
	status   string
	skills   []string
}

func skillGroups(analysis *types.AnalysisResult, result *types.TailoringResult) []skillGroup {
	if analysis == nil {
		ats := result.AtsAnalysis
		return []skillGroup{
			{"Keyword", "Matched", ats.MatchingKeywords},
			{"Keyword", "Missing", ats.MissingKeywords},
			{"Technical", "Matched", ats.TechnicalSkillsMatched},
			{"Soft", "Matched", ats.SoftSkillsMatched},
		}
	}
	return []skillGroup{
		{"Required", "Matched", analysis.RequiredMatched},
		{"Required", "Missing", analysis.RequiredMissing},
		{"Nice to have", "Matched", analysis.NiceToHaveMatched},
		{"Nice to have", "Missing", analysis.NiceToHaveMissing},
		{"Technical", "Matched", analysis.TechnicalSkillsMatched},
		{"Technical", "Missing", analysis.TechnicalSkillsMissing},
		{"Soft", "Matched", analysis.SoftSkillsMatched},
		{"Soft", "Missing", analysis.SoftSkillsMissing},
		{"Excluded", "Excluded", analysis.ExcludedSkills},
	}
}

func writeSkillsSheet(f *excelize.File, headerStyle int, analysis *types.AnalysisResult, result *types.TailoringResult) error {
	rows := [][]any{{"Skill", "Category", "Status"}}
	for _, group := range skillGroups(analysis, result) {
		for _, skill := range group.skills {
			rows = append(rows, []any{skill, group.category, group.status})
		}
	}

	if err := writeRows(f, SkillsSheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SkillsSheet, "A", "A", 35); err != nil {
		return err
	}
	if err := f.SetColWidth(SkillsSheet, "B", "C", 15); err != nil {
		return err
	}
	return f.SetCellStyle(SkillsSheet, "A1", "C1", headerStyle)
}

func writeSourcesSheet(f *excelize.File, headerStyle int, sources []types.Source) error {
	rows := [][]any{{"Title", "URL"}}
	for _, source := range types.UniqueSources(sources) {
		rows = append(rows, []any{source.Title, source.URL})
	}

	if err := writeRows(f, SourcesSheet, rows); err != nil {
		return err
	}
	if err := f.SetColWidth(SourcesSheet, "A", "A", 40); err != nil {
		return err
	}
	if err := f.SetColWidth(SourcesSheet, "B", "B", 70); err != nil {
		return err
	}
	return f.SetCellStyle(SourcesSheet, "A1", "B1", headerStyle)
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
