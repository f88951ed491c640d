package cli

import (
	"context"
	"io"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/output"
)

var releaseCmd = &cobra.Command{
	Use:     "release",
	Aliases: []string{"r"},
	Short:   "Create or update GitHub releases (r)",
	Long: `Create or update one GitHub release per selected tag.

Each release body is built from what happened between the tag and the
previous one: closed issues (default), issues of the matching milestone,
or commit messages. Tags without a release get a new one. Tags that
already have a release are skipped unless --override is set.

By default the latest two tags are processed. --tags all processes every
tag and requires --force.`,
	Example: `  # Release the latest tag from closed issues
  relnotes release

  # Preview without touching GitHub
  relnotes release --dry-run

  # One specific tag, from commit messages, as a draft
  relnotes release --tags v1.2.0 --data-source commits --draft

  # Rewrite every existing release
  relnotes release --tags all --force --override`,
	Args: cobra.NoArgs,
	RunE: runRelease,
}

func init() {
	releaseCmd.GroupID = shared.GroupReleases
	shared.AddContentFlags(releaseCmd)
	releaseCmd.Flags().Bool("draft", false, "Create releases as drafts")
	releaseCmd.Flags().Bool("prerelease", false, "Mark created releases as prereleases")
	releaseCmd.Flags().Bool("force", false, "Allow --tags all to touch every release")
	rootCmd.AddCommand(releaseCmd)
}

func runRelease(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}
	if err := checkReleaseScope(cfg); err != nil {
		return err
	}

	s, err := newSession(cfg, "")
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool(shared.DryRunFlag)
	return publishReleases(commandContext(cmd), s, dryRun, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// checkReleaseScope refuses to process every tag unless force is set.
func checkReleaseScope(cfg *config.Configuration) error {
	if cfg.SelectsAllTags() && !cfg.Force {
		return clierrors.InvalidFlagCombination("--tags all",
			"Processing every tag rewrites every release; add --force to confirm")
	}
	return nil
}

// publishReleases builds the blocks and creates or updates their releases.
// With dryRun the blocks are printed with the action that would be taken.
func publishReleases(ctx context.Context, s *session, dryRun bool, out, errOut io.Writer) error {
	s.warnIfOffline(ctx, errOut)

	result, err := s.runPipeline(ctx, s.cfg.PipelineOptions(nil), errOut)
	if err != nil {
		return err
	}
	if len(result.Blocks) == 0 {
		output.PrintWarning(errOut, "no tags selected; nothing to release")
		return nil
	}

	syncer := notes.NewSynchronizer(s.client, s.cfg.SyncOptions(), func(msg string) {
		output.PrintWarning(errOut, msg)
	})
	if dryRun {
		for _, b := range result.Blocks {
			output.PrintBlockPreview(out, b, syncer.Decide(b))
		}
		return nil
	}

	results, err := syncer.Sync(ctx, result.Blocks)
	if len(results) > 0 {
		output.PrintSyncResults(out, results)
	}
	return err
}
