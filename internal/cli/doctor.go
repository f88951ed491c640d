package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/build"
	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/health"
)

// newProber builds the prober used by doctor. Tests replace it.
var newProber = func(opts github.Options) (health.Prober, error) {
	p, err := github.NewProber(opts)
	if err != nil {
		return nil, err
	}
	return p, nil
}

var doctorCmd = &cobra.Command{
	Use:     "doctor",
	Aliases: []string{"doc"},
	Short:   "Check token, repository and GitHub connectivity (doc)",
	Long: `Check that relnotes can run in the current directory:

  - a GitHub token is configured
  - the repository can be resolved from the config or the origin remote
  - the GitHub API answers
  - the token is accepted (only checked when the steps above pass)`,
	Example: `  relnotes doctor
  relnotes doctor --api-url https://github.example.com/api/v3`,
	Args: cobra.NoArgs,
	RunE: runDoctor,
}

func init() {
	doctorCmd.GroupID = shared.GroupGettingStarted
	rootCmd.AddCommand(doctorCmd)
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	return diagnose(commandContext(cmd), cfg, "", cmd.OutOrStdout())
}

// diagnose runs the health checks for cfg and the repository at dir and
// prints the report. Failed checks yield ExitMissingDependency.
func diagnose(ctx context.Context, cfg *config.Configuration, dir string, out io.Writer) error {
	apiURL := cfg.APIURL
	if remote, err := git.ResolveRepository(dir); err == nil {
		apiURL = resolveAPIURL(apiURL, remote)
	}

	prober, err := newProber(github.Options{
		Token:     cfg.Token,
		APIURL:    apiURL,
		UserAgent: build.UserAgent(),
	})
	if err != nil {
		return fmt.Errorf("creating API client: %w", err)
	}

	report := health.RunHealthChecks(ctx, health.Options{
		Token:  cfg.Token,
		Owner:  cfg.Username,
		Repo:   cfg.Repo,
		Dir:    dir,
		APIURL: apiURL,
		Prober: prober,
	})

	fmt.Fprint(out, health.FormatReport(report))
	if !report.Passed {
		fmt.Fprintln(out, "\nSome checks failed. Run 'relnotes doctor --debug' for details.")
		return shared.NewExitError(shared.ExitMissingDependency)
	}
	return nil
}
