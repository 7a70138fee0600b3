package ingestion

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/jonathan/resume-tailor/internal/fetch"
)

var (
	// ErrHTTPRequestFailed is returned when HTTP request fails
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when content extraction fails
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyPosting is returned when no text could be extracted
	ErrEmptyPosting = errors.New("job posting has no readable text")
)

// JobPostingOptions configures FetchJobPosting.
type JobPostingOptions struct {
	// Cache is used instead of a direct fetch when set.
	Cache *fetch.Cache
	// Fetch overrides HTTP fetch options when Cache is nil.
	Fetch *fetch.Options
	// Render is tried when the HTTP text looks like an unrendered SPA.
	Render  fetch.Renderer
	Verbose bool
}

// FetchJobPosting fetches a job posting page, extracts the description with
// platform-specific selectors and returns cleaned text with metadata.
func FetchJobPosting(ctx context.Context, urlStr string, opts JobPostingOptions) (string, *Metadata, error) {
	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[ingestion] %s (platform %s)", urlStr, platform)
	}

	var (
		result    *fetch.Result
		fromCache bool
		err       error
	)
	if opts.Cache != nil {
		result, fromCache, err = opts.Cache.Fetch(ctx, urlStr)
	} else {
		result, err = fetch.URL(ctx, urlStr, opts.Fetch)
	}
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}

	contentSelectors := fetch.PlatformContentSelectors(platform)
	noiseSelectors := fetch.PlatformNoiseSelectors(platform)

	html := result.HTML
	text, err := fetch.ExtractMainText(html, contentSelectors, noiseSelectors...)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	rendered := false
	if opts.Render != nil && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[ingestion] extracted %d chars (< %d), rendering in browser", len(text), fetch.MinContentLength)
		}
		renderedHTML, renderErr := opts.Render(ctx, urlStr)
		if renderErr != nil {
			log.Printf("[ingestion] browser rendering failed, keeping HTTP content: %v", renderErr)
		} else if renderedText, extractErr := fetch.ExtractMainText(renderedHTML, contentSelectors, noiseSelectors...); extractErr == nil {
			html, text, rendered = renderedHTML, renderedText, true
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", nil, fmt.Errorf("%w: %s", ErrEmptyPosting, urlStr)
	}

	metadata := NewMetadata(cleaned, urlStr)
	metadata.Platform = string(platform)
	metadata.Rendered = rendered
	metadata.FromCache = fromCache
	if links, linkErr := fetch.ExtractLinks(html, urlStr); linkErr == nil {
		metadata.ExtractedLinks = links
	}

	if opts.Verbose {
		log.Printf("[ingestion] cleaned text: %d chars, %d links", len(cleaned), len(metadata.ExtractedLinks))
	}
	return cleaned, metadata, nil
}
