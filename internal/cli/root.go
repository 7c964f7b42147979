// Package cli provides the Cobra-based command tree for packmate.
package cli

import (
	"io"

	"github.com/spf13/cobra"
)

// Version is stamped by the build; "dev" otherwise.
var Version = "dev"

// NewRootCmd creates the root cobra command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "packmate",
		Short: "Package availability verification for install script generation",
		Long: `packmate verifies that the package names in an application catalog
actually exist in their package manager registries, records the results,
and generates installation scripts from the verified catalog.

Five managers (homebrew, chocolatey, winget, flatpak, snap) expose public
registry APIs and are checked live; the rest are recorded as unverifiable.`,
		Version:       Version,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	rootCmd.AddCommand(
		newServeCmd(),
		newSweepCmd(),
		newVerifyCmd(),
		newFlaggedCmd(),
		newScriptCmd(),
	)

	return rootCmd
}

// Execute runs the root command with the given output writers.
func Execute(stdout, stderr io.Writer) error {
	rootCmd := NewRootCmd()
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	return rootCmd.Execute()
}
