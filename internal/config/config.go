// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/jonathan/resume-tailor/internal/llm"
	"github.com/jonathan/resume-tailor/internal/types"
)

// DefaultAddr is the listen address of the serve command.
const DefaultAddr = "127.0.0.1:8080"

// Config represents the CLI configuration that can be loaded from a JSON file.
// All fields are optional; missing values use defaults or must be provided via CLI flags.
type Config struct {
	// Intake documents
	Resume      string   `json:"resume,omitempty"`            // Path to master resume
	Template    string   `json:"template,omitempty"`          // Path to sample resume template
	Projects    string   `json:"projects,omitempty"`          // Path to projects/portfolio text
	CoverLetter string   `json:"cover_letter,omitempty"`      // Path to cover letter draft
	WithCover   bool     `json:"with_cover_letter,omitempty"` // Also write a cover letter
	Job         string   `json:"job,omitempty"`               // Path to job posting text file
	JobURL      string   `json:"job_url,omitempty"`           // URL to fetch job posting from
	CompanyURL  string   `json:"company_url,omitempty"`       // Company website for research
	TargetRole  string   `json:"target_role,omitempty"`       // Role being applied for
	Tone        string   `json:"tone,omitempty"`              // Writing tone
	Language    string   `json:"language,omitempty"`          // Cover letter language
	Links       []string `json:"links,omitempty"`             // Resource URLs (GitHub, portfolio)
	Exclusions  string   `json:"exclusions,omitempty"`        // Negative constraints
	Strategy    string   `json:"strategy,omitempty"`          // Strategic instructions

	// Output
	OutputDir string `json:"output_dir,omitempty"` // Directory for result files
	PDF       bool   `json:"pdf,omitempty"`        // Also export PDFs
	ATSReport bool   `json:"ats_report,omitempty"` // Also export the ATS workbook

	// Model
	APIKey   string `json:"api_key,omitempty"`  // Gemini API key
	Provider string `json:"provider,omitempty"` // "gemini" or "gemini-legacy"
	Model    string `json:"model,omitempty"`    // Model name or tier
	Timeout  string `json:"timeout,omitempty"`  // Per-call timeout, e.g. "2m"

	// Behavior
	Addr       string `json:"addr,omitempty"`        // serve listen address
	UseBrowser bool   `json:"use_browser,omitempty"` // Use headless browser for SPA sites
	Verbose    bool   `json:"verbose,omitempty"`     // Print detailed debug information
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration has valid values.
// Note: This doesn't check for required fields since those are handled
// by CLI flag validation after merging.
func (c *Config) Validate() error {
	// Validate mutually exclusive fields
	if c.Job != "" && c.JobURL != "" {
		return fmt.Errorf("config error: 'job' and 'job_url' are mutually exclusive")
	}

	switch llm.Provider(c.Provider) {
	case "", llm.ProviderGemini, llm.ProviderGeminiLegacy:
	default:
		return fmt.Errorf("config error: unknown provider %q", c.Provider)
	}

	if _, err := c.CallTimeout(); err != nil {
		return err
	}

	if c.Tone != "" {
		if _, err := types.ParseTone(c.Tone); err != nil {
			return fmt.Errorf("config error: %w", err)
		}
	}

	if len(c.Links) > types.MaxResourceURLs {
		return fmt.Errorf("config error: at most %d links allowed, got %d", types.MaxResourceURLs, len(c.Links))
	}

	// Validate file paths exist (if specified)
	for name, path := range map[string]string{
		"resume":       c.Resume,
		"template":     c.Template,
		"projects":     c.Projects,
		"cover_letter": c.CoverLetter,
		"job":          c.Job,
	} {
		if path == "" || path == "-" {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return fmt.Errorf("config error: %s file not found: %s", name, path)
		}
	}

	return nil
}

// CallTimeout parses Timeout. An empty value means no limit.
func (c *Config) CallTimeout() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("config error: invalid timeout %q: %w", c.Timeout, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("config error: 'timeout' must be non-negative")
	}
	return d, nil
}

// LLMConfig returns the model client configuration. Model is not applied
// here; it travels on the request and is resolved by the client.
func (c *Config) LLMConfig() (*llm.Config, error) {
	timeout, err := c.CallTimeout()
	if err != nil {
		return nil, err
	}
	cfg := llm.DefaultConfig()
	if c.Provider != "" {
		cfg.Provider = llm.Provider(c.Provider)
	}
	cfg.Timeout = timeout
	return cfg, nil
}

// MergeWithDefaults returns a new Config with empty string fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	for _, f := range []struct {
		dst *string
		src string
	}{
		{&result.Resume, defaults.Resume},
		{&result.Template, defaults.Template},
		{&result.Projects, defaults.Projects},
		{&result.CoverLetter, defaults.CoverLetter},
		{&result.Job, defaults.Job},
		{&result.JobURL, defaults.JobURL},
		{&result.CompanyURL, defaults.CompanyURL},
		{&result.TargetRole, defaults.TargetRole},
		{&result.Tone, defaults.Tone},
		{&result.Language, defaults.Language},
		{&result.Exclusions, defaults.Exclusions},
		{&result.Strategy, defaults.Strategy},
		{&result.OutputDir, defaults.OutputDir},
		{&result.APIKey, defaults.APIKey},
		{&result.Provider, defaults.Provider},
		{&result.Model, defaults.Model},
		{&result.Timeout, defaults.Timeout},
		{&result.Addr, defaults.Addr},
	} {
		if *f.dst == "" {
			*f.dst = f.src
		}
	}

	if len(result.Links) == 0 {
		result.Links = append([]string(nil), defaults.Links...)
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}
