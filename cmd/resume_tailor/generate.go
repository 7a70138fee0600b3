package main

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/types"
	"github.com/spf13/cobra"
)

func newGenerateCmd() *cobra.Command {
	opts := &options{}
	var analysisPath, editsPath string
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Run the generation phase from a saved analysis",
		Long: `Reads an analysis.json written by analyze and, optionally, review edits, then
writes the tailored resume, the cover letter when requested, and result.json.
Without --edits the analysis is confirmed as-is.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, opts, analysisPath, editsPath)
		},
	}
	opts.addConfigFlags(cmd)
	opts.addModelFlags(cmd)
	opts.addOutputFlags(cmd)
	cmd.Flags().StringVarP(&analysisPath, "analysis", "a", "", "Path to analysis.json (default <out>/analysis.json)")
	cmd.Flags().StringVarP(&editsPath, "edits", "e", "", "Path to review edits JSON")
	cmd.Flags().BoolVar(&opts.flags.WithCover, "with-cover-letter", false, "Also write a cover letter")
	cmd.Flags().StringVar(&opts.flags.Language, "language", "", "Cover letter language")
	return cmd
}

func runGenerate(cmd *cobra.Command, opts *options, analysisPath, editsPath string) error {
	ctx := cmd.Context()

	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	if analysisPath == "" {
		analysisPath = filepath.Join(cfg.OutputDir, AnalysisFile)
	}

	var doc analysisDocument
	if err := readJSON(analysisPath, &doc); err != nil {
		return err
	}
	if cfg.Model != "" {
		doc.Request.Model = cfg.Model
	}

	edits := types.NewUserEdits(doc.Analysis, doc.Request)
	if editsPath != "" {
		if err := readJSON(editsPath, &edits); err != nil {
			return err
		}
	}
	if cfg.WithCover {
		edits.IncludeCoverLetter = true
	}
	if cfg.Language != "" {
		edits.CoverLetterLanguage = cfg.Language
	}

	models, err := factory(cfg)
	if err != nil {
		return err
	}
	sess := &session.Context{}
	if err := sess.Acquire(ctx, opts.selector(cmd, cfg)); err != nil {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required: %w", err)
	}

	req, analysis, confirmed := tailoring.ApplyEdits(doc.Request, doc.Analysis, edits)
	result, err := tailoring.NewGenerator(models).Generate(ctx, sess, req, analysis, confirmed)
	if err != nil {
		return err
	}

	out := printer(cmd, cfg)
	out.PrintResult(result)
	out.PrintUsage("generation", result.Usage)

	written, err := writeResult(cfg, &analysis, result)
	if err != nil {
		return err
	}
	for _, path := range written {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
