package intake

import (
	"context"
	"fmt"
	"log"

	"github.com/jonathan/resume-tailor/internal/ingestion"
)

// Posting is a job description loaded from a URL.
type Posting struct {
	Text     string
	Metadata *ingestion.Metadata
}

// LoadJobPosting fetches the job posting at url and returns its cleaned text.
func LoadJobPosting(ctx context.Context, url string, opts ingestion.JobPostingOptions) (*Posting, error) {
	text, metadata, err := ingestion.FetchJobPosting(ctx, url, opts)
	if err != nil {
		return nil, fmt.Errorf("loading job posting: %w", err)
	}
	if opts.Verbose {
		log.Printf("[intake] job posting %s: %d chars (platform %s, cached %t)", url, len(text), metadata.Platform, metadata.FromCache)
	}
	return &Posting{Text: text, Metadata: metadata}, nil
}

// WithJobPosting fills the form's job description from url when it is empty.
// A form that already carries a description is returned unchanged.
func (f Form) WithJobPosting(ctx context.Context, url string, opts ingestion.JobPostingOptions) (Form, error) {
	if f.JobDescription != "" || url == "" {
		return f, nil
	}
	posting, err := LoadJobPosting(ctx, url, opts)
	if err != nil {
		return f, err
	}
	f.JobDescription = posting.Text
	return f, nil
}
