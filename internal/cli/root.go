// Package cli implements the relnotes command-line interface.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/build"
	clicfg "github.com/ariel-frischer/relnotes/internal/cli/config"
	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	"github.com/ariel-frischer/relnotes/internal/cli/util"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/notes"
)

var rootCmd = &cobra.Command{
	Use:   "relnotes",
	Short: "Release notes and changelogs from tags, issues and commits",
	Long: `relnotes builds release notes for a GitHub repository.

For every pair of consecutive tags it collects the closed issues, the
milestone, or the commits that fall between them, renders them through
configurable templates, and either publishes the result as GitHub releases
or writes it to a changelog file.

Configuration is read from flags, RELNOTES_* environment variables,
.relnotes.yml in the current directory, and ~/.config/relnotes/config.yml,
in that order of priority.`,
	Example: `  # Create releases for the latest two tags from closed issues
  relnotes release

  # Rebuild every release body from commit messages
  relnotes release --tags all --force --override --data-source commits

  # Write CHANGELOG.md from existing releases
  relnotes changelog

  # Generate the changelog straight from tags, grouped by label
  relnotes changelog --generate --group-by label

  # Check token, repository and network
  relnotes doctor`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.Flags().GetBool(shared.DebugFlag)
		setDebugLogging(debug)
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ReportError prints err to stderr. ExitErrors have already been reported.
func ReportError(err error) {
	if err == nil {
		return
	}
	var exitErr *shared.ExitError
	if errors.As(err, &exitErr) {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintError(os.Stderr, cliErr)
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
}

func init() {
	rootCmd.Version = build.Version
	rootCmd.SetVersionTemplate("relnotes {{.Version}}\n")
	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentErrorWithUsage(err.Error(), cmd.UseLine(),
			fmt.Sprintf("Run '%s --help' for usage", cmd.CommandPath()))
	})

	rootCmd.AddGroup(
		&cobra.Group{ID: shared.GroupGettingStarted, Title: "Getting Started:"},
		&cobra.Group{ID: shared.GroupReleases, Title: "Release Notes:"},
		&cobra.Group{ID: shared.GroupConfiguration, Title: "Configuration:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.StringP(shared.ConfigFlag, "c", "", "Project config file (default: .relnotes.yml)")
	pf.BoolP(shared.DebugFlag, "d", false, "Log API and git calls to stderr")
	shared.AddRepositoryFlags(pf)

	clicfg.Register(rootCmd)
	util.Register(rootCmd)
}

// setDebugLogging routes the package debug hooks to stderr, or disables them.
func setDebugLogging(enabled bool) {
	var logger func(format string, args ...any)
	if enabled {
		logger = func(format string, args ...any) {
			fmt.Fprintf(os.Stderr, "[debug] "+format+"\n", args...)
		}
	}
	notes.SetDebugLogger(logger)
	git.SetDebugLogger(logger)
	github.SetDebugLogger(logger)
}
