// Package export writes the tailored documents and the ATS summary to files
// a user can download.
package export

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/go-pdf/fpdf"
)

// Kind selects how a document's lines are styled.
type Kind string

// Document kinds.
const (
	KindResume      Kind = "resume"
	KindCoverLetter Kind = "cover-letter"
)

// Filename returns the download name for the kind.
func (k Kind) Filename() string {
	if k == KindCoverLetter {
		return "Tailored_Cover_Letter.pdf"
	}
	return "Tailored_Resume.pdf"
}

const (
	fontFamily  = "Helvetica"
	bodySize    = 10
	headingSize = 12
	lineHeight  = 5.0
)

// IsHeading reports whether a resume line is a section heading: an
// all-uppercase line longer than three characters that is not a bullet.
// Markdown "#" lines are headings too.
func IsHeading(line string) bool {
	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "#") {
		return true
	}
	if len([]rune(trimmed)) <= 3 || isBullet(trimmed) {
		return false
	}
	if strings.ToUpper(trimmed) != trimmed {
		return false
	}
	return strings.IndexFunc(trimmed, unicode.IsLetter) >= 0
}

func isBullet(line string) bool {
	for _, prefix := range []string{"•", "- ", "* ", "· "} {
		if strings.HasPrefix(line, prefix) {
			return true
		}
	}
	return false
}

func bulletText(line string) string {
	for _, prefix := range []string{"•", "- ", "* ", "· "} {
		if rest, ok := strings.CutPrefix(line, prefix); ok {
			return strings.TrimSpace(rest)
		}
	}
	return line
}

// plain drops inline markdown emphasis.
func plain(line string) string {
	line = strings.ReplaceAll(line, "**", "")
	line = strings.ReplaceAll(line, "__", "")
	return strings.TrimSpace(strings.TrimLeft(line, "# "))
}

// WritePDF renders text as a paginated A4 PDF. Resume headings are bold and
// bullets are drawn with a dash; cover letters are plain paragraphs.
func WritePDF(w io.Writer, text string, kind Kind) error {
	pdf, err := render(text, kind)
	if err != nil {
		return err
	}
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to write PDF: %w", err)
	}
	return nil
}

func render(text string, kind Kind) (*fpdf.Fpdf, error) {
	if strings.TrimSpace(text) == "" {
		return nil, fmt.Errorf("no %s text to export", kind)
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			pdf.Ln(lineHeight / 2)
			continue
		}

		switch {
		case kind == KindResume && IsHeading(trimmed):
			pdf.Ln(2)
			pdf.SetFont(fontFamily, "B", headingSize)
			pdf.MultiCell(0, lineHeight+1, tr(plain(trimmed)), "", "", false)
			pdf.SetDrawColor(100, 100, 100)
			x, y := pdf.GetXY()
			pdf.Line(x, y, 195, y)
			pdf.Ln(1)
		case isBullet(trimmed):
			pdf.SetFont(fontFamily, "", bodySize)
			pdf.CellFormat(5, lineHeight, "-", "", 0, "", false, 0, "")
			pdf.MultiCell(0, lineHeight, tr(plain(bulletText(trimmed))), "", "", false)
		default:
			pdf.SetFont(fontFamily, "", bodySize)
			pdf.MultiCell(0, lineHeight, tr(plain(trimmed)), "", "", false)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("failed to render PDF: %w", err)
	}
	return pdf, nil
}
