package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTailoringRequest_WithReviewOverlay(t *testing.T) {
	original := TailoringRequest{
		TargetRole:          "Backend Engineer",
		GithubURLs:          []string{"https://github.com/a"},
		NegativeConstraints: "old",
		CoverLetterLanguage: "English",
	}

	updated := original.WithReviewOverlay(ReviewOverlay{
		NegativeConstraints: "No references to Company X",
		IncludeCoverLetter:  true,
		CoverLetter:         "Draft",
		CoverLetterLanguage: "French",
	})

	assert.Equal(t, "No references to Company X", updated.NegativeConstraints)
	assert.True(t, updated.IncludeCoverLetter)
	assert.Equal(t, "Draft", updated.CoverLetter)
	assert.Equal(t, "French", updated.Language())
	assert.Equal(t, "Backend Engineer", updated.TargetRole)

	// The original snapshot is not modified.
	assert.Equal(t, "old", original.NegativeConstraints)
	assert.False(t, original.IncludeCoverLetter)
	updated.GithubURLs[0] = "changed"
	assert.Equal(t, "https://github.com/a", original.GithubURLs[0])
}

func TestTailoringRequest_Defaults(t *testing.T) {
	var req TailoringRequest
	assert.Equal(t, DefaultCoverLetterLanguage, req.Language())
	assert.Equal(t, DefaultModel, req.ModelOrDefault())

	req.Model = "gemini-2.5-flash"
	assert.Equal(t, "gemini-2.5-flash", req.ModelOrDefault())
}
