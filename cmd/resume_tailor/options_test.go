package main

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jonathan/resume-tailor/internal/config"
	"github.com/jonathan/resume-tailor/internal/session"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOptions(t *testing.T, args ...string) (*options, *cobra.Command) {
	t.Helper()
	opts := &options{}
	cmd := &cobra.Command{Use: "test"}
	opts.addConfigFlags(cmd)
	opts.addIntakeFlags(cmd)
	opts.addModelFlags(cmd)
	opts.addOutputFlags(cmd)
	require.NoError(t, cmd.ParseFlags(args))
	return opts, cmd
}

func writeConfig(t *testing.T, cfg config.Config) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, writeJSON(path, cfg))
	return path
}

func TestResolve_Defaults(t *testing.T) {
	opts, cmd := parseOptions(t)

	cfg, err := opts.resolve(cmd)
	require.NoError(t, err)

	assert.Equal(t, defaultOutputDir, cfg.OutputDir)
	assert.False(t, cfg.PDF)
}

func TestResolve_FlagsOverrideConfig(t *testing.T) {
	paths := writeInputs(t)
	configPath := writeConfig(t, config.Config{
		Job:        paths["job"],
		TargetRole: "Backend Engineer",
		Tone:       "Concise",
		Links:      []string{"https://github.com/jane"},
		PDF:        true,
		OutputDir:  "from-config",
	})

	opts, cmd := parseOptions(t,
		"--config", configPath,
		"--job-url", "https://jobs.example/42",
		"--role", "Staff Engineer",
		"--link", "https://a.dev", "--link", "https://b.dev",
	)

	cfg, err := opts.resolve(cmd)
	require.NoError(t, err)

	assert.Empty(t, cfg.Job)
	assert.Equal(t, "https://jobs.example/42", cfg.JobURL)
	assert.Equal(t, "Staff Engineer", cfg.TargetRole)
	assert.Equal(t, "Concise", cfg.Tone)
	assert.Equal(t, []string{"https://a.dev", "https://b.dev"}, cfg.Links)
	assert.True(t, cfg.PDF)
	assert.Equal(t, "from-config", cfg.OutputDir)
}

func TestResolve_Errors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *config.Config
		args    []string
		wantErr string
	}{
		{"both job sources", nil, []string{"--job", "a.txt", "--job-url", "https://x.example"}, "mutually exclusive"},
		{"bad provider", nil, []string{"--provider", "openai"}, "unknown provider"},
		{"bad timeout", nil, []string{"--timeout", "soon"}, "invalid timeout"},
		{"too many links", nil, []string{"--link", "a,b,c,d,e,f"}, "at most 5 links"},
		{"bad config tone", &config.Config{Tone: "Sarcastic"}, nil, "unknown tone"},
		{"missing config", nil, []string{"--config", filepath.Join("testdata", "missing.json")}, "failed to load config"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			args := tt.args
			if tt.cfg != nil {
				args = append(args, "--config", writeConfig(t, *tt.cfg))
			}
			opts, cmd := parseOptions(t, args...)

			_, err := opts.resolve(cmd)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestSelector(t *testing.T) {
	tests := []struct {
		name      string
		args      []string
		cfg       config.Config
		wantType  session.Selector
		wantKey   string
		stdinLine string
	}{
		{"api key", nil, config.Config{APIKey: "flag-key"}, session.StaticSelector(""), "flag-key", ""},
		{"prompt", []string{"--prompt-key"}, config.Config{}, session.PromptSelector{}, "typed-key", "typed-key\n"},
		{"environment", nil, config.Config{}, session.EnvSelector{}, "env-key", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("GEMINI_API_KEY", "env-key")
			opts, cmd := parseOptions(t, tt.args...)
			cmd.SetIn(strings.NewReader(tt.stdinLine))
			cmd.SetErr(new(strings.Builder))

			sel := opts.selector(cmd, tt.cfg)

			assert.IsType(t, tt.wantType, sel)
			key, err := sel.Select(context.Background())
			require.NoError(t, err)
			assert.Equal(t, tt.wantKey, key)
		})
	}
}

func TestReadDocument_Stdin(t *testing.T) {
	text, err := readDocument("-", strings.NewReader("Line one\r\n\r\n\r\nLine   two"))
	require.NoError(t, err)
	assert.Equal(t, "Line one\n\nLine two", text)
}
