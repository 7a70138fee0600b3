package tailoring

import (
	"context"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/types"
)

// Generator runs the generation phase. It keeps no state between calls.
type Generator struct {
	factory llm.Factory
}

// NewGenerator returns a Generator that builds its client through factory.
func NewGenerator(factory llm.Factory) *Generator {
	return &Generator{factory: factory}
}

// Generate writes the resume and, when req.IncludeCoverLetter is set, the
// cover letter. The cover letter call is only issued after the resume call
// succeeded. Any failure discards everything produced so far.
func (g *Generator) Generate(ctx context.Context, sess *session.Context, req types.TailoringRequest, analysis types.AnalysisResult, confirmed []string) (*types.TailoringResult, error) {
	key, err := credential(sess)
	if err != nil {
		return nil, err
	}

	resumePrompt, err := buildResumePrompt(req, analysis, confirmed)
	if err != nil {
		return nil, &GenerationError{Stage: StageResume, Message: "failed to build prompt", Cause: err}
	}

	var coverPrompt string
	if req.IncludeCoverLetter {
		if coverPrompt, err = buildCoverLetterPrompt(req, analysis); err != nil {
			return nil, &GenerationError{Stage: StageCoverLetter, Message: "failed to build prompt", Cause: err}
		}
	}

	client, err := g.factory(ctx, key)
	if err != nil {
		return nil, &GenerationError{Stage: StageResume, Message: "failed to create LLM client", Cause: err}
	}
	defer func() { _ = client.Close() }()

	model := req.ModelOrDefault()

	resumeResp, err := client.Generate(ctx, llm.Request{
		Model:       model,
		Prompt:      resumePrompt,
		Temperature: ResumeTemperature,
	})
	if err != nil {
		return nil, &GenerationError{Stage: StageResume, Message: "failed to generate resume", Cause: err}
	}
	usage := usageFor(resumePrompt, resumeResp)

	coverLetter := ""
	if req.IncludeCoverLetter {
		coverResp, err := client.Generate(ctx, llm.Request{
			Model:       model,
			Prompt:      coverPrompt,
			Temperature: CoverLetterTemperature,
		})
		if err != nil {
			return nil, &GenerationError{Stage: StageCoverLetter, Message: "failed to generate cover letter", Cause: err}
		}
		if coverResp != nil {
			coverLetter = coverResp.Text
		}
		usage = usage.Add(usageFor(coverPrompt, coverResp))
	}

	markdown := ""
	if resumeResp != nil {
		markdown = resumeResp.Text
	}

	sources := append([]types.Source{}, analysis.Sources...)

	return &types.TailoringResult{
		Markdown:        markdown,
		CoverLetterText: coverLetter,
		Sources:         sources,
		AtsAnalysis:     types.NewAtsAnalysis(analysis, confirmed),
		Usage:           &usage,
	}, nil
}

// ApplyEdits overlays the review-stage edits onto the intake request and the
// analysis and returns the inputs for Generate. Neither argument is modified.
func ApplyEdits(req types.TailoringRequest, analysis types.AnalysisResult, edits types.UserEdits) (types.TailoringRequest, types.AnalysisResult, []string) {
	edits = edits.Clone()
	return req.WithReviewOverlay(edits.Overlay()),
		analysis.WithMatchedOverlay(edits.Matched()),
		edits.Recommendations
}
