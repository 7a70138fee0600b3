package main

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/workflow"
	"github.com/spf13/cobra"
)

func newTailorCmd() *cobra.Command {
	opts := &options{}
	var editsPath string
	cmd := &cobra.Command{
		Use:   "tailor",
		Short: "Run analysis and generation end-to-end",
		Long: `Runs the full workflow: link the API key, analyze the intake documents, apply
optional review edits and generate the tailored documents.

Configuration can be loaded from a JSON file using --config. Command-line arguments override config file values.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runTailor(cmd, opts, editsPath)
		},
	}
	opts.addConfigFlags(cmd)
	opts.addIntakeFlags(cmd)
	opts.addModelFlags(cmd)
	opts.addOutputFlags(cmd)
	cmd.Flags().StringVarP(&editsPath, "edits", "e", "", "Path to review edits JSON applied before generation")
	return cmd
}

func runTailor(cmd *cobra.Command, opts *options, editsPath string) error {
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

	models, err := factory(cfg)
	if err != nil {
		return err
	}
	wf, err := workflow.New(workflow.Options{
		Analyzer:  tailoring.NewAnalyzer(models),
		Generator: tailoring.NewGenerator(models),
		Selector:  opts.selector(cmd, cfg),
		Validator: intake.NewValidator(),
	})
	if err != nil {
		return err
	}

	if err := wf.Connect(ctx); err != nil {
		return fmt.Errorf("GEMINI_API_KEY environment variable or --api-key flag is required: %w", err)
	}

	out := printer(cmd, cfg)
	analysis, err := wf.Submit(ctx, form.Normalize())
	if err != nil {
		return err
	}
	out.PrintAnalysis(&analysis.Result, string(analysis.Status))
	out.PrintRecommendations(analysis.Result.Recommendations)
	out.PrintWarnings(analysis.Warnings)
	out.PrintUsage("analysis", analysis.Result.Usage)

	snapshot := wf.Snapshot()
	edits := *snapshot.Edits
	if editsPath != "" {
		if err := readJSON(editsPath, &edits); err != nil {
			return err
		}
	}
	if cfg.WithCover {
		edits.IncludeCoverLetter = true
	}

	result, err := wf.Confirm(ctx, edits)
	if err != nil {
		return err
	}
	out.PrintResult(result)
	out.PrintUsage("generation", result.Usage)

	confirmed := analysis.Result.WithMatchedOverlay(edits.Matched())
	written, err := writeResult(cfg, &confirmed, result)
	if err != nil {
		return err
	}
	for _, path := range written {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	}
	return nil
}
