// Package main provides the entry point for the resume builder CLI and HTTP server.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	configPath  string
	dataDirFlag string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "resume_builder",
	Short: "Resume builder with live preview and A4 PDF export",
	Long: "Resume builder edits a single resume record, renders it with one of the built-in templates " +
		"and exports it as a paginated A4 PDF or PNG pages through headless Chrome.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to JSON config file")
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Directory of the file store (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verboseFlag, "verbose", "v", false, "Enable debug logging")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
