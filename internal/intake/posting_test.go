package intake

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func postingServer(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html><body><main><h1>Platform Engineer</h1><p>Run Kubernetes at scale.</p></main></body></html>`))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestLoadJobPosting(t *testing.T) {
	server := postingServer(t)

	posting, err := LoadJobPosting(context.Background(), server.URL, ingestion.JobPostingOptions{})
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer\nRun Kubernetes at scale.", posting.Text)
	assert.Equal(t, server.URL, posting.Metadata.URL)
}

func TestLoadJobPosting_Error(t *testing.T) {
	_, err := LoadJobPosting(context.Background(), "ftp://example.com", ingestion.JobPostingOptions{})
	assert.ErrorIs(t, err, ingestion.ErrHTTPRequestFailed)
}

func TestForm_WithJobPosting(t *testing.T) {
	server := postingServer(t)

	filled, err := Form{}.WithJobPosting(context.Background(), server.URL, ingestion.JobPostingOptions{})
	require.NoError(t, err)
	assert.Contains(t, filled.JobDescription, "Run Kubernetes at scale.")

	kept, err := Form{JobDescription: "typed"}.WithJobPosting(context.Background(), server.URL, ingestion.JobPostingOptions{})
	require.NoError(t, err)
	assert.Equal(t, "typed", kept.JobDescription)
}
