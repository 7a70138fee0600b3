package tailoring

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/schemas"
	"github.com/jonathan/resume-tailor/internal/types"
)

// ParseStatus grades how much of a model response could be decoded.
type ParseStatus string

// Parse outcomes.
const (
	// ParseComplete means the response matched the response schema.
	ParseComplete ParseStatus = "complete"
	// ParsePartial means an object was decoded but fields are missing or mistyped.
	ParsePartial ParseStatus = "partial"
	// ParseUnparsable means no object could be decoded; every field is empty.
	ParseUnparsable ParseStatus = "unparsable"
)

// Analysis is the analysis phase outcome: the normalized result plus how
// cleanly the model's response decoded.
type Analysis struct {
	Result   types.AnalysisResult `json:"result"`
	Status   ParseStatus          `json:"status"`
	Warnings []string             `json:"warnings,omitempty"`
	Raw      string               `json:"-"`
}

// Degraded reports whether the caller should warn the user before rendering.
func (a *Analysis) Degraded() bool {
	return a.Status != ParseComplete || a.Result.NeedsAttention()
}

// fields the client fills in itself; model-supplied values are discarded.
var clientOwnedFields = []string{"modelTemperature", "sources", "usage"}

// DecodeAnalysis leniently decodes a model response into an AnalysisResult.
// It never fails: unusable input yields a zero result with ParseUnparsable.
func DecodeAnalysis(text string) (types.AnalysisResult, ParseStatus, []string) {
	var result types.AnalysisResult

	candidate, _ := llm.JSONCandidate(text)
	var doc map[string]any
	if err := json.Unmarshal([]byte(candidate), &doc); err != nil || doc == nil {
		msg := "response is not a JSON object"
		if err != nil {
			msg = fmt.Sprintf("%s: %v", msg, err)
		}
		return result, ParseUnparsable, []string{msg}
	}

	for _, name := range clientOwnedFields {
		delete(doc, name)
	}

	var warnings []string
	if w := normalizeMatchScore(doc); w != "" {
		warnings = append(warnings, w)
	}

	if err := schemas.ValidateDocument(AnalysisSchema().JSONSchema(), doc); err != nil {
		var validationErr *schemas.ValidationError
		if errors.As(err, &validationErr) {
			warnings = append(warnings, validationErr.Messages()...)
		} else {
			warnings = append(warnings, err.Error())
		}
	}

	// encoding/json keeps decoding past a mistyped field, so whatever fits
	// survives even when the document as a whole does not.
	normalized, err := json.Marshal(doc)
	if err == nil {
		err = json.Unmarshal(normalized, &result)
	}
	if err != nil {
		var typeErr *json.UnmarshalTypeError
		if !errors.As(err, &typeErr) {
			return types.AnalysisResult{}, ParseUnparsable, append(warnings, err.Error())
		}
		if len(warnings) == 0 {
			warnings = append(warnings, err.Error())
		}
	}

	if len(warnings) > 0 {
		return result, ParsePartial, warnings
	}
	return result, ParseComplete, nil
}

// normalizeMatchScore rounds fractional scores and clamps to 0-100.
func normalizeMatchScore(doc map[string]any) string {
	raw, ok := doc["matchScore"].(float64)
	if !ok {
		return ""
	}
	score := math.Round(raw)
	clamped := math.Max(0, math.Min(100, score))
	doc["matchScore"] = int(clamped)
	if clamped != raw {
		return fmt.Sprintf("matchScore: %v normalized to %d", raw, int(clamped))
	}
	return ""
}
