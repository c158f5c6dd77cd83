// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for charmpack.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"charmpack/internal/issue"

	"github.com/charmbracelet/fang"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var (
	// Version is the semantic version (set via -ldflags).
	Version = "dev"
	// Commit is the git commit hash (set via -ldflags).
	Commit = "unknown"
	// BuildDate is the build timestamp (set via -ldflags).
	BuildDate = "unknown"

	// verbose enables debug-level logging
	verbose bool

	// logger is the shared CLI logger; leveled per the --verbose flag.
	logger = log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: false,
	})

	// rootCmd represents the base command when called without any subcommands
	rootCmd = &cobra.Command{
		Use:   "charmpack",
		Short: "Package charms and bundles into deployable archives",
		Long: TitleStyle.Render("charmpack") + SubtitleStyle.Render(" - package charms and bundles") + `

charmpack turns a project directory into a deployable zip archive.
The project kind is taken from the ` + CmdStyle.Render("charmpack.yaml") + ` file in the
project root: 'charm' projects are handed to the charm build toolchain,
'bundle' projects are packed directly from their declared files.

` + SubtitleStyle.Render("Quick Start:") + `
  1. Put a bundle.yaml (with a 'name' field) and a README.md in your project
  2. Declare the kind and any extra files in charmpack.yaml
  3. Run: charmpack pack

` + SubtitleStyle.Render("Examples:") + `
  charmpack pack                  Pack the project in the current directory
  charmpack pack -p ./mybundle    Pack a specific project directory
  charmpack pack -r reqs.txt      Pack a charm with a requirements file`,
	}
)

func init() {
	cobra.OnInitialize(initLogging)

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(packCmd)
}

// initLogging applies the --verbose flag to the shared logger. Prime pattern
// reporting is emitted at debug level, so it only shows up in verbose runs.
func initLogging() {
	if verbose {
		logger.SetLevel(log.DebugLevel)
	}
}

// getVersionString returns a formatted version string for display.
func getVersionString() string {
	if Version == "dev" {
		return "dev (built from source)"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(getVersionString()),
		fang.WithNotifySignal(os.Interrupt),
	); err != nil {
		if verbose {
			if hint, ok := issue.RenderHint(err); ok {
				fmt.Fprintln(os.Stderr, hint)
			}
		}
		var exitErr *ExitError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.Code)
		}
		os.Exit(1)
	}
}
