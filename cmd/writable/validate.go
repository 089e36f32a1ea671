package main

import (
	"fmt"
	"strings"

	"github.com/jpalmerr/writable/config"
	"github.com/spf13/cobra"
)

// validateCmd validates a script file without running it.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a script file",
	Long: `Validate a script file without running it.

This command expands environment variables, parses the YAML or TOML, and
checks every step.

Exit codes:
  0 - Script is valid
  1 - Script is invalid (error details printed to stderr)

Example:
  writable validate -c session.yaml
  writable validate --config session.toml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringP("config", "c", "", "path to script file (required)")
	_ = validateCmd.MarkFlagRequired("config")
}

func runValidate(cmd *cobra.Command, args []string) error {
	path, _ := cmd.Flags().GetString("config")
	s, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("invalid script: %w", err)
	}

	subscribers := "none"
	if names := s.Subscribers(); len(names) > 0 {
		subscribers = strings.Join(names, ", ")
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Script is valid!\n")
	fmt.Fprintf(out, "  Name:        %s\n", s.Name)
	fmt.Fprintf(out, "  Initial:     %d\n", s.Initial)
	fmt.Fprintf(out, "  Steps:       %d\n", len(s.Steps))
	fmt.Fprintf(out, "  Subscribers: %s\n", subscribers)

	return nil
}
