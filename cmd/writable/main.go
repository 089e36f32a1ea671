// Package main is the entry point for the writable CLI.
//
// The CLI runs scripted sessions against a writable store so its behavior
// can be observed from a terminal.
//
// Usage:
//
//	writable run                       # Run the built-in count session
//	writable run -c script.yaml        # Run a script file
//	writable validate -c script.toml   # Validate a script file
//	writable watch -c script.yaml      # Re-run a script whenever it changes
//	writable version                   # Show version info
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// Version information - set at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "writable",
	Short: "Run scripted sessions against an observable store",
	Long: `writable drives an observable value store from the command line.

A script sets and updates an integer store while named subscribers print
every value they receive.

Quick start:
  1. Run the built-in session: writable run
  2. Write a script (session.yaml)
  3. Run: writable run -c session.yaml

Example script:
  name: count
  initial: 0
  steps:
    - subscribe: logger
    - set: 1
    - update: "+1"
    - unsubscribe: logger
    - update: "+100"
    - print: true`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// optional; a missing .env file is not an error
		_ = godotenv.Load()
	},
}

// Execute runs the root command.
// This is the main entry point called from main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this writable binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "writable %s\n", version)
		fmt.Fprintf(out, "  commit: %s\n", commit)
		fmt.Fprintf(out, "  built:  %s\n", date)
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug, info, warn, or error")
	rootCmd.PersistentFlags().String("log-format", "text", "log format: text or json")

	// Register subcommands with root
	rootCmd.AddCommand(versionCmd)
}
