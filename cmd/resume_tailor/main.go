// Package main provides the resume_tailor CLI and local HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "resume_tailor",
		Short: "Tailor a resume and cover letter to a job posting",
		Long: `resume_tailor analyzes a master resume against a job posting with Gemini,
lets you review the matched skills, and writes a tailored resume, an optional
cover letter and an ATS report.`,
		SilenceUsage: true,
	}
	root.AddCommand(newAnalyzeCmd(), newGenerateCmd(), newTailorCmd(), newServeCmd())
	return root
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
