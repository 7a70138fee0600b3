package server

import (
	"bytes"
	"fmt"
	"log"
	"net/http"

	"github.com/jonathan/resume-tailor/internal/export"
)

const (
	contentTypePDF  = "application/pdf"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// handleResumePDF downloads the tailored resume
func (s *Server) handleResumePDF(w http.ResponseWriter, _ *http.Request) {
	s.documentPDF(w, export.KindResume)
}

// handleCoverLetterPDF downloads the cover letter
func (s *Server) handleCoverLetterPDF(w http.ResponseWriter, _ *http.Request) {
	s.documentPDF(w, export.KindCoverLetter)
}

func (s *Server) documentPDF(w http.ResponseWriter, kind export.Kind) {
	result := s.workflow.Snapshot().Result
	if result == nil {
		s.errorResponse(w, &ErrNoResult{Document: string(kind)})
		return
	}
	text := result.Markdown
	if kind == export.KindCoverLetter {
		if !result.HasCoverLetter() {
			s.errorResponse(w, &ErrNoResult{Document: string(kind)})
			return
		}
		text = result.CoverLetterText
	}

	var buf bytes.Buffer
	if err := export.WritePDF(&buf, text, kind); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, contentTypePDF, kind.Filename(), buf.Bytes())
}

// handleATSReport downloads the ATS workbook
func (s *Server) handleATSReport(w http.ResponseWriter, _ *http.Request) {
	snapshot := s.workflow.Snapshot()
	if snapshot.Result == nil {
		s.errorResponse(w, &ErrNoResult{Document: "ATS report"})
		return
	}
	analysis := snapshot.Analysis
	if analysis != nil && snapshot.Edits != nil {
		edited := analysis.WithMatchedOverlay(snapshot.Edits.Matched())
		analysis = &edited
	}

	var buf bytes.Buffer
	if err := export.WriteATSReport(&buf, analysis, snapshot.Result); err != nil {
		s.errorResponse(w, err)
		return
	}
	s.attachment(w, contentTypeXLSX, export.ATSReportFilename, buf.Bytes())
}

func (s *Server) attachment(w http.ResponseWriter, contentType, filename string, data []byte) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(data)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		log.Printf("[server] error writing %s: %v", filename, err)
	}
}
