// Package commands provides CLI commands for the Aegis client.
package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	verboseFlag bool
	apiURLFlag  string
	outputFlag  string
	fileFlag    string
	rawFlag     bool

	// Version info (set at build time)
	Version   = "0.1.0"
	BuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "aegis [question]",
	Short: "Terminal client for the Aegis security assistant",
	Long: `aegis is a command-line client for the Aegis security-education service.
It streams answers to security questions, scans URLs and files, and runs
interactive practice quizzes.

Examples:
  aegis chat                         Start the interactive chat TUI
  aegis "What is phishing?"          Ask a single question
  aegis -f question.md               Read the question from a file
  cat question.md | aegis            Read the question from stdin
  aegis scan https://example.com     Scan a URL
  aegis scan-file ./invoice.pdf      Scan a local file
  aegis quiz                         Take a practice quiz
  aegis login                        Authenticate with the service`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if v, _ := cmd.Flags().GetBool("version"); v {
			fmt.Printf("aegis %s (built %s)\n", Version, BuildTime)
			return nil
		}

		// Check for stdin input
		stat, _ := os.Stdin.Stat()
		hasStdin := (stat.Mode() & os.ModeCharDevice) == 0

		if fileFlag != "" {
			data, err := os.ReadFile(fileFlag)
			if err != nil {
				return fmt.Errorf("failed to read file: %w", err)
			}
			return runAsk(string(data), rawFlag || !isStdoutTTY())
		}

		if hasStdin {
			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return fmt.Errorf("failed to read stdin: %w", err)
			}
			return runAsk(string(data), rawFlag || !isStdoutTTY())
		}

		if len(args) > 0 {
			return runAsk(args[0], rawFlag || !isStdoutTTY())
		}

		// No input - show help
		return cmd.Help()
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verboseFlag, "verbose", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "Override the Aegis service URL")
	rootCmd.Flags().StringVarP(&outputFlag, "output", "o", "", "Save response to file")
	rootCmd.Flags().StringVarP(&fileFlag, "file", "f", "", "Read question from file")
	rootCmd.Flags().BoolVar(&rawFlag, "raw", false, "Print the raw response without decoration")
	rootCmd.Flags().BoolP("version", "v", false, "Show version and exit")

	// Add subcommands
	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(scanFileCmd)
	rootCmd.AddCommand(quizCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(registerCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(whoamiCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(importSessionCmd)
	rootCmd.AddCommand(configCmd)
}
