package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/fetch"
	"github.com/jonathan/resume-tailor/internal/ingestion"
	"github.com/jonathan/resume-tailor/internal/intake"
	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/observability"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/spf13/cobra"
)

// newFactory builds the model client factory. Tests replace it with a fake.
var newFactory = llm.NewFactory

const defaultOutputDir = "output"

// options holds the flags shared by the commands. Flag values are kept in a
// Config so they merge with a config file the same way.
type options struct {
	configPath string
	intakePath string
	promptKey  bool
	flags      config.Config
}

func (o *options) addConfigFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.configPath, "config", "", "Path to config.json file (values can be overridden by other flags)")
}

func (o *options) addIntakeFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVar(&o.intakePath, "intake", "", "Path to an intake form JSON file (document flags override its fields)")
	f.StringVarP(&o.flags.Resume, "resume", "r", "", "Path to master resume (\"-\" reads stdin)")
	f.StringVarP(&o.flags.Template, "template", "t", "", "Path to sample resume template")
	f.StringVarP(&o.flags.Projects, "projects", "p", "", "Path to projects/portfolio text")
	f.StringVar(&o.flags.CoverLetter, "cover-letter", "", "Path to cover letter draft")
	f.BoolVar(&o.flags.WithCover, "with-cover-letter", false, "Also write a cover letter")
	f.StringVarP(&o.flags.Job, "job", "j", "", "Path to job posting text file (mutually exclusive with --job-url)")
	f.StringVar(&o.flags.JobURL, "job-url", "", "URL to fetch job posting from (mutually exclusive with --job)")
	f.StringVar(&o.flags.CompanyURL, "company-url", "", "Company website used for research")
	f.StringVar(&o.flags.TargetRole, "role", "", "Target role")
	f.StringVar(&o.flags.Tone, "tone", "", "Writing tone (Professional, Creative, Concise, Impact-Driven, Conversational)")
	f.StringVar(&o.flags.Language, "language", "", "Cover letter language (default English)")
	f.StringSliceVar(&o.flags.Links, "link", nil, "GitHub or portfolio URL (repeatable, at most 5)")
	f.StringVar(&o.flags.Exclusions, "exclusions", "", "Skills or topics to leave out")
	f.StringVar(&o.flags.Strategy, "strategy", "", "Strategic instructions for the analysis")
	f.BoolVar(&o.flags.UseBrowser, "use-browser", false, "Use headless browser for SPA job sites (requires Chrome)")
}

func (o *options) addModelFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	// API key can be passed as a flag, or read from env var GEMINI_API_KEY
	f.StringVar(&o.flags.APIKey, "api-key", "", "Gemini API Key (optional, defaults to GEMINI_API_KEY env var)")
	f.BoolVar(&o.promptKey, "prompt-key", false, "Read the API key from stdin")
	f.StringVar(&o.flags.Provider, "provider", "", "Model provider: gemini or gemini-legacy")
	f.StringVar(&o.flags.Model, "model", "", "Model name or tier (lite, standard, advanced)")
	f.StringVar(&o.flags.Timeout, "timeout", "", "Per-call timeout, e.g. 2m")
	f.BoolVarP(&o.flags.Verbose, "verbose", "v", false, "Print detailed debug information")
}

func (o *options) addOutputFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&o.flags.OutputDir, "out", "o", "", "Output directory (default \"output\")")
	f.BoolVar(&o.flags.PDF, "pdf", false, "Also write PDF documents")
	f.BoolVar(&o.flags.ATSReport, "ats-report", false, "Also write the ATS report workbook")
}

// resolve merges flags over the config file and validates the result.
func (o *options) resolve(cmd *cobra.Command) (config.Config, error) {
	var file config.Config
	if o.configPath != "" {
		loaded, err := config.LoadConfig(o.configPath)
		if err != nil {
			return config.Config{}, fmt.Errorf("failed to load config: %w", err)
		}
		file = *loaded
	}

	if cmd.Flags().Changed("job") && cmd.Flags().Changed("job-url") {
		return config.Config{}, fmt.Errorf("--job and --job-url are mutually exclusive; provide only one")
	}

	// A job source given on the command line replaces the other one from
	// the config file.
	cfg := o.flags.MergeWithDefaults(file)
	if cmd.Flags().Changed("job") {
		cfg.JobURL = ""
	} else if cmd.Flags().Changed("job-url") {
		cfg.Job = ""
	}
	cfg.WithCover = cfg.WithCover || file.WithCover
	cfg.PDF = cfg.PDF || file.PDF
	cfg.ATSReport = cfg.ATSReport || file.ATSReport
	cfg.UseBrowser = cfg.UseBrowser || file.UseBrowser
	cfg.Verbose = cfg.Verbose || file.Verbose

	if cfg.OutputDir == "" {
		cfg.OutputDir = defaultOutputDir
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	if cfg.Verbose && o.configPath != "" {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Loaded config from: %s\n", o.configPath)
	}
	return cfg, nil
}

// selector picks the credential source: the configured key, a prompt on
// stdin, or the environment.
func (o *options) selector(cmd *cobra.Command, cfg config.Config) session.Selector {
	switch {
	case cfg.APIKey != "":
		return session.StaticSelector(cfg.APIKey)
	case o.promptKey:
		return session.PromptSelector{In: cmd.InOrStdin(), Out: cmd.ErrOrStderr()}
	default:
		return session.EnvSelector{}
	}
}

// factory returns the model client factory for cfg.
func factory(cfg config.Config) (llm.Factory, error) {
	llmCfg, err := cfg.LLMConfig()
	if err != nil {
		return nil, err
	}
	return newFactory(llmCfg), nil
}

func jobPostingOptions(cfg config.Config, cache *fetch.Cache) ingestion.JobPostingOptions {
	opts := ingestion.JobPostingOptions{Cache: cache, Verbose: cfg.Verbose}
	if cfg.UseBrowser {
		opts.Render = fetch.BrowserRenderer(fetch.DefaultBrowserTimeout, cfg.Verbose)
	}
	return opts
}

// buildForm assembles the intake form from the intake file and the
// configured documents. A job URL is fetched when no job text was given.
func (o *options) buildForm(ctx context.Context, cmd *cobra.Command, cfg config.Config) (intake.Form, error) {
	var form intake.Form
	if o.intakePath != "" {
		if err := readJSON(o.intakePath, &form); err != nil {
			return form, fmt.Errorf("failed to load intake form: %w", err)
		}
	}

	stdin := cmd.InOrStdin()
	for _, doc := range []struct {
		path string
		dst  *string
	}{
		{cfg.Resume, &form.MasterResume},
		{cfg.Template, &form.SampleResumeTemplate},
		{cfg.Projects, &form.Projects},
		{cfg.CoverLetter, &form.CoverLetter},
		{cfg.Job, &form.JobDescription},
	} {
		if doc.path == "" {
			continue
		}
		text, err := readDocument(doc.path, stdin)
		if err != nil {
			return form, err
		}
		*doc.dst = text
	}

	for _, field := range []struct {
		value string
		dst   *string
	}{
		{cfg.CompanyURL, &form.CompanyURL},
		{cfg.TargetRole, &form.TargetRole},
		{cfg.Tone, &form.Tone},
		{cfg.Language, &form.CoverLetterLanguage},
		{cfg.Exclusions, &form.NegativeConstraints},
		{cfg.Strategy, &form.StrategicInstructions},
		{cfg.Model, &form.Model},
	} {
		if field.value != "" {
			*field.dst = field.value
		}
	}
	if len(cfg.Links) > 0 {
		form.GithubURLs = cfg.Links
	}
	form.IncludeCoverLetter = form.IncludeCoverLetter || cfg.WithCover

	if cfg.JobURL != "" {
		var err error
		form, err = form.WithJobPosting(ctx, cfg.JobURL, jobPostingOptions(cfg, nil))
		if err != nil {
			return form, err
		}
	}
	return form, nil
}

// readDocument reads a text document; "-" reads stdin.
func readDocument(path string, stdin io.Reader) (string, error) {
	if path != "-" {
		return ingestion.ReadDocument(path)
	}
	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("failed to read stdin: %w", err)
	}
	return ingestion.CleanText(string(data)), nil
}

func printer(cmd *cobra.Command, cfg config.Config) *observability.Printer {
	if !cfg.Verbose {
		return observability.NewPrinter(io.Discard)
	}
	return observability.NewPrinter(cmd.OutOrStdout())
}

// checkJob reports a missing job description in terms of the flags.
func checkJob(form intake.Form) error {
	if strings.TrimSpace(form.JobDescription) == "" {
		return fmt.Errorf("either --job or --job-url must be provided (via flag, intake or config)")
	}
	return nil
}
