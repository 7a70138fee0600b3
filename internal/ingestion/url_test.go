package ingestion

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const postingHTML = `<!DOCTYPE html>
<html>
<body>
<nav>Nav</nav>
<main>
<h1>Backend Engineer</h1>
<p>We   build payment rails.</p>
<ul><li>Go</li><li>PostgreSQL</li></ul>
<a href="/about">About us</a>
<form>Apply here</form>
</main>
<footer>Footer</footer>
</body>
</html>`

func postingServer(t *testing.T, body string, hits *atomic.Int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if hits != nil {
			hits.Add(1)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchJobPosting_InvalidURL(t *testing.T) {
	tests := []string{"", "not-a-url", "example.com", "http://"}

	for _, urlStr := range tests {
		t.Run(urlStr, func(t *testing.T) {
			_, _, err := FetchJobPosting(context.Background(), urlStr, JobPostingOptions{})
			assert.ErrorIs(t, err, ErrHTTPRequestFailed)
		})
	}
}

func TestFetchJobPosting_Success(t *testing.T) {
	server := postingServer(t, postingHTML, nil)

	text, metadata, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{})
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.Contains(t, text, "We build payment rails.")
	assert.Contains(t, text, "- Go")
	assert.NotContains(t, text, "Nav")
	assert.NotContains(t, text, "Footer")
	assert.NotContains(t, text, "Apply here")
	assert.Equal(t, server.URL, metadata.URL)
	assert.Equal(t, string(fetch.PlatformUnknown), metadata.Platform)
	assert.Equal(t, []string{server.URL + "/about"}, metadata.ExtractedLinks)
	assert.False(t, metadata.Rendered)
}

func TestFetchJobPosting_UsesCache(t *testing.T) {
	var hits atomic.Int32
	server := postingServer(t, postingHTML, &hits)
	cache := fetch.NewCache(0, nil)

	_, first, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{Cache: cache})
	require.NoError(t, err)
	_, second, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{Cache: cache})
	require.NoError(t, err)

	assert.False(t, first.FromCache)
	assert.True(t, second.FromCache)
	assert.Equal(t, int32(1), hits.Load())
}

func TestFetchJobPosting_BrowserFallback(t *testing.T) {
	server := postingServer(t, `<html><body><div id="root"></div><noscript>Enable JS</noscript></body></html>`, nil)
	rendered := "<html><body><main><p>" + strings.Repeat("Rendered description. ", 40) + "</p></main></body></html>"

	var renderedURL string
	render := func(_ context.Context, url string) (string, error) {
		renderedURL = url
		return rendered, nil
	}

	text, metadata, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{Render: render})
	require.NoError(t, err)

	assert.Equal(t, server.URL, renderedURL)
	assert.True(t, metadata.Rendered)
	assert.Contains(t, text, "Rendered description.")
}

func TestFetchJobPosting_BrowserFailureKeepsHTTPText(t *testing.T) {
	server := postingServer(t, postingHTML, nil)
	render := func(context.Context, string) (string, error) {
		return "", errors.New("chrome not installed")
	}

	text, metadata, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{Render: render})
	require.NoError(t, err)

	assert.Contains(t, text, "Backend Engineer")
	assert.False(t, metadata.Rendered)
}

func TestFetchJobPosting_Empty(t *testing.T) {
	server := postingServer(t, `<html><body></body></html>`, nil)

	_, _, err := FetchJobPosting(context.Background(), server.URL, JobPostingOptions{})
	assert.ErrorIs(t, err, ErrEmptyPosting)
}
