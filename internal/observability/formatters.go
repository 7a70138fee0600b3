// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// truncate shortens s to at most n runes, ending in "...".
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes a titled bullet list capped at limit items.
func writeList(sb *strings.Builder, title string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	fmt.Fprintf(sb, "%s (%d):\n", title, len(items))
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		fmt.Fprintf(sb, "  • %s\n", truncate(items[i], 50))
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
	sb.WriteString("\n")
}

// PrintAnalysis outputs the match score and skill coverage of an analysis.
// status is the parse status label; "complete" is not shown.
func (p *Printer) PrintAnalysis(analysis *types.AnalysisResult, status string) {
	if analysis == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Match score:  %d%%\n", analysis.MatchScore)
	if status != "" && status != "complete" {
		fmt.Fprintf(&sb, "Parse status: %s\n", status)
	}
	if analysis.NeedsAttention() {
		sb.WriteString("⚠ response looks incomplete\n")
	}
	sb.WriteString("\n")

	writeList(&sb, "Required matched", analysis.RequiredMatched, maxItemsToShow)
	writeList(&sb, "Required missing", analysis.RequiredMissing, maxItemsToShow)
	writeList(&sb, "Nice-to-have matched", analysis.NiceToHaveMatched, 3)
	writeList(&sb, "Technical matched", analysis.TechnicalSkillsMatched, maxItemsToShow)
	writeList(&sb, "Soft skills matched", analysis.SoftSkillsMatched, 3)

	if sources := types.UniqueSources(analysis.Sources); len(sources) > 0 {
		fmt.Fprintf(&sb, "Research sources: %d\n", len(sources))
	}

	p.printBox("ANALYSIS", strings.TrimRight(sb.String(), "\n"))
}

// PrintRecommendations outputs the numbered strategy recommendations.
func (p *Printer) PrintRecommendations(recommendations []string) {
	if len(recommendations) == 0 {
		return
	}

	var sb strings.Builder
	for i, rec := range recommendations {
		fmt.Fprintf(&sb, "%d. %s", i+1, truncate(rec, 50))
		if i < len(recommendations)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("STRATEGY RECOMMENDATIONS", sb.String())
}

// PrintResult outputs a summary of the generated documents.
func (p *Printer) PrintResult(result *types.TailoringResult) {
	if result == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Resume:       %d chars\n", len(result.Markdown))
	if result.HasCoverLetter() {
		fmt.Fprintf(&sb, "Cover letter: %d chars\n", len(result.CoverLetterText))
	} else {
		sb.WriteString("Cover letter: not requested\n")
	}
	fmt.Fprintf(&sb, "ATS score:    %d%%\n", result.AtsAnalysis.MatchScore)
	sb.WriteString("\n")

	writeList(&sb, "Missing keywords", result.AtsAnalysis.MissingKeywords, maxItemsToShow)

	p.printBox("TAILORED DOCUMENTS", strings.TrimRight(sb.String(), "\n"))
}

// PrintUsage outputs token usage for a phase.
func (p *Printer) PrintUsage(phase string, usage *types.UsageStats) {
	if usage == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Prompt tokens: %d\n", usage.PromptTokens)
	fmt.Fprintf(&sb, "Output tokens: %d\n", usage.CandidatesTokens)
	fmt.Fprintf(&sb, "Total tokens:  %d", usage.TotalTokens)
	if usage.Estimated {
		sb.WriteString(" (estimated)")
	}

	p.printBox(strings.ToUpper(phase)+" USAGE", sb.String())
}

// PrintWarnings outputs parse warnings from the analysis response.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintWarnings(warnings []string) {
	if len(warnings) == 0 {
		fmt.Fprintf(p.out, "┌%s┐\n", strings.Repeat("─", boxWidth-2))
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, "✅ RESPONSE PARSED CLEANLY")
		fmt.Fprintf(p.out, "└%s┘\n", strings.Repeat("─", boxWidth-2))
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d warnings:\n\n", len(warnings))
	for i, w := range warnings {
		fmt.Fprintf(&sb, "⚠ %s", truncate(w, 50))
		if i < len(warnings)-1 {
			sb.WriteString("\n")
		}
	}

	p.printBox("PARSE WARNINGS", sb.String())
}
