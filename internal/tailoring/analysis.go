// Package tailoring implements the two model-backed phases of the workflow:
// analysis of a job posting against the candidate's material, and generation
// of the tailored resume and optional cover letter.
package tailoring

import (
	"context"
	"log"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Phase temperatures.
const (
	AnalysisTemperature    = 0.1
	ResumeTemperature      = 0.1
	CoverLetterTemperature = 0.5
)

// Analyzer runs the analysis phase.
type Analyzer struct {
	factory llm.Factory
}

// NewAnalyzer returns an Analyzer that builds its client through factory.
func NewAnalyzer(factory llm.Factory) *Analyzer {
	return &Analyzer{factory: factory}
}

// Analyze sends one grounded, schema-constrained call and normalizes the
// response. Malformed output degrades to a partial or empty result reported
// through Analysis.Status; only a missing credential or a failed call errors.
func (a *Analyzer) Analyze(ctx context.Context, sess *session.Context, req types.TailoringRequest) (*Analysis, error) {
	key, err := credential(sess)
	if err != nil {
		return nil, err
	}

	prompt, err := buildAnalysisPrompt(req)
	if err != nil {
		return nil, &AnalysisError{Message: "failed to build prompt", Cause: err}
	}

	client, err := a.factory(ctx, key)
	if err != nil {
		return nil, &AnalysisError{Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	resp, err := client.Generate(ctx, llm.Request{
		Model:       req.ModelOrDefault(),
		Prompt:      prompt,
		Temperature: AnalysisTemperature,
		JSON:        true,
		Schema:      AnalysisSchema(),
		WebSearch:   true,
	})
	if err != nil {
		return nil, &AnalysisError{Message: "failed to generate content from LLM", Cause: err}
	}

	raw := ""
	if resp != nil {
		raw = resp.Text
	}
	if raw == "" {
		raw = "{}"
	}

	result, status, warnings := DecodeAnalysis(raw)
	if status != ParseComplete {
		log.Printf("[analysis] response parsed as %s (%d warnings)", status, len(warnings))
	}

	result.ModelTemperature = AnalysisTemperature
	result.Sources = sourcesFrom(resp)
	usage := usageFor(prompt, resp)
	result.Usage = &usage

	return &Analysis{Result: result, Status: status, Warnings: warnings, Raw: raw}, nil
}

// sourcesFrom maps every web citation to a source, in response order.
// Repeats are kept; renderers collapse them with types.UniqueSources.
func sourcesFrom(resp *llm.Response) []types.Source {
	sources := []types.Source{}
	if resp == nil {
		return sources
	}
	for _, c := range resp.Citations {
		sources = append(sources, types.Source{Title: c.Title, URL: c.URI})
	}
	return sources
}
