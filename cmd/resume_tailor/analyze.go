package main

import (
	"fmt"
	"path/filepath"

	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Run the analysis phase and write analysis.json",
		Long: `Reads the intake documents, researches the company and scores the master resume
against the job posting. The analysis is written to <out>/analysis.json, where it
can be edited and passed to the generate command.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	opts.addConfigFlags(cmd)
	opts.addIntakeFlags(cmd)
	opts.addModelFlags(cmd)
	cmd.Flags().StringVarP(&opts.flags.OutputDir, "out", "o", "", "Output directory (default \"output\")")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *options) error {
	ctx := cmd.Context()

	cfg, err := opts.resolve(cmd)
	if err != nil {
		return err
	}
	form, err := opts.buildForm(ctx, cmd, cfg)
	if err != nil {
		return err
	}
	if err := checkJob(form); err != nil {
		return err
	}
	req := form.Normalize()
	if err := intake.NewValidator().Validate(req); err != nil {
		return err
	}

	models, err := factory(cfg)
	if err != nil {
		return err
	}
	sess := &session.Context{}
	if err := sess.Acquire(ctx, opts.selector(cmd, cfg)); err != nil {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required: %w", err)
	}

	analysis, err := tailoring.NewAnalyzer(models).Analyze(ctx, sess, req)
	if err != nil {
		return err
	}

	out := printer(cmd, cfg)
	out.PrintAnalysis(&analysis.Result, string(analysis.Status))
	out.PrintRecommendations(analysis.Result.Recommendations)
	out.PrintWarnings(analysis.Warnings)
	out.PrintUsage("analysis", analysis.Result.Usage)

	path := filepath.Join(cfg.OutputDir, AnalysisFile)
	if err := writeJSON(path, analysisDocument{
		Request:     req,
		Analysis:    analysis.Result,
		ParseStatus: analysis.Status,
		Warnings:    analysis.Warnings,
	}); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Analysis written to %s (match score %d%%)\n", path, analysis.Result.MatchScore)
	return nil
}
