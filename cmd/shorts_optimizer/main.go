// Package main provides the entry point for the Shorts Optimizer CLI.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "shorts_optimizer",
	Short:         "Turn raw short-form video ideas into shot-by-shot scripts",
	Long:          "Shorts Optimizer sends a raw script to Gemini and returns a numbered shot breakdown, five titles, an SEO description and an editing guide.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

var (
	configPath  string
	apiKeyFlag  string
	modelFlag   string
	verboseFlag bool
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&apiKeyFlag, "api-key", "", "Gemini API key (overrides GEMINI_API_KEY env var)")
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "Model used for optimization (default gemini-3-flash-preview)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Print detailed debug information")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
