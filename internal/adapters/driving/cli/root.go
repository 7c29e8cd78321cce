// Package cli implements the policyqa command line interface.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/helioshr/policyqa/internal/core/ports/driving"
	"github.com/helioshr/policyqa/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. Wired lazily from config on first use;
// tests inject their own via SetServices.
var (
	ingestService driving.IngestService
	answerService driving.AnswerService
)

// Persistent flags.
var (
	configPath string
	verbose    bool
	tenantID   string
)

var rootCmd = &cobra.Command{
	Use:   "policyqa",
	Short: "Ask questions about your company's policy documents",
	Long: `policyqa indexes HR and policy documents per tenant and answers
questions about them using retrieval-augmented generation.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.policyqa/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().StringVarP(&tenantID, "tenant", "t", os.Getenv("POLICYQA_TENANT"), "tenant id (or POLICYQA_TENANT)")
}

// SetServices injects the application services. Used by tests and by
// callers that wire their own stack.
func SetServices(ingest driving.IngestService, answer driving.AnswerService) {
	ingestService = ingest
	answerService = answer
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
