package main

import (
	"fmt"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/server"
	"github.com/jonathan/resume-tailor/internal/tailoring"
	"github.com/jonathan/resume-tailor/internal/workflow"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	opts := &options{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the local HTTP API",
		Long: `Start an HTTP server that drives one tailoring session: link the API key,
submit the intake form, review, confirm and download the documents.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := newServer(cmd, opts)
			if err != nil {
				return err
			}
			return s.Start(cmd.Context())
		},
	}
	opts.addConfigFlags(cmd)
	opts.addModelFlags(cmd)
	cmd.Flags().StringVar(&opts.flags.Addr, "addr", "", fmt.Sprintf("Address to listen on (default %q)", config.DefaultAddr))
	cmd.Flags().BoolVar(&opts.flags.UseBrowser, "use-browser", false, "Use headless browser for SPA job sites (requires Chrome)")
	return cmd
}

func newServer(cmd *cobra.Command, opts *options) (*server.Server, error) {
	cfg, err := opts.resolve(cmd)
	if err != nil {
		return nil, err
	}
	if cfg.Addr == "" {
		cfg.Addr = config.DefaultAddr
	}

	models, err := factory(cfg)
	if err != nil {
		return nil, err
	}
	wf, err := workflow.New(workflow.Options{
		Analyzer:  tailoring.NewAnalyzer(models),
		Generator: tailoring.NewGenerator(models),
		Selector:  opts.selector(cmd, cfg),
		Validator: intake.NewValidator(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow: %w", err)
	}

	s, err := server.New(server.Config{
		Addr:        cfg.Addr,
		Workflow:    wf,
		JobPostings: jobPostingOptions(cfg, fetch.NewCache(fetch.DefaultCacheTTL, nil)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create server: %w", err)
	}
	return s, nil
}
