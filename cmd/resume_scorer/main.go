// Package main provides the resume_scorer CLI: one-off scoring and analysis, the HTTP
// API server and the queue worker.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:           "resume_scorer",
	Short:         "Deterministic résumé and job description matching",
	Long:          "resume_scorer compares résumé text against a job description using a versioned skill taxonomy and reports match scores, skill gaps and suggestions.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file (env vars override it)")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
