package cli

import (
	"context"
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/changelog"
	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/output"
)

var changelogCmd = &cobra.Command{
	Use:   "changelog",
	Short: "Write a changelog file from releases or tags",
	Long: `Write a changelog file, newest release first.

By default the changelog is assembled from the repository's existing
releases (drafts excluded). With --generate the release bodies are built
from scratch for every tag, exactly as 'relnotes release' would build
them, without creating any release.

An existing changelog file is only replaced with --override.`,
	Example: `  # CHANGELOG.md from the existing releases
  relnotes changelog

  # Build it from tags and closed issues, grouped by label
  relnotes changelog --generate --group-by label --override

  # Print instead of writing
  relnotes changelog --generate --dry-run`,
	Args: cobra.NoArgs,
	RunE: runChangelog,
}

func init() {
	changelogCmd.GroupID = shared.GroupReleases
	shared.AddContentFlags(changelogCmd)
	changelogCmd.Flags().BoolP("generate", "g", false, "Build entries from tags instead of existing releases")
	changelogCmd.Flags().String("changelog-filename", "", "Output file (default: CHANGELOG.md)")
	changelogCmd.Flags().String("date-format", "", "Go time layout for release dates (default: 2006-01-02)")
	rootCmd.AddCommand(changelogCmd)
}

func runChangelog(cmd *cobra.Command, args []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	s, err := newSession(cfg, "")
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool(shared.DryRunFlag)
	return writeChangelog(commandContext(cmd), s, dryRun, cmd.OutOrStdout(), cmd.ErrOrStderr())
}

// writeChangelog renders the changelog and writes it to the configured
// file, or prints it with dryRun. The file check runs before any API call.
func writeChangelog(ctx context.Context, s *session, dryRun bool, out, errOut io.Writer) error {
	path := s.cfg.ChangelogFilename
	if !dryRun {
		if err := changelog.CheckWritable(path, s.cfg.Override); err != nil {
			return err
		}
	}

	s.warnIfOffline(ctx, errOut)

	entries, err := collectEntries(ctx, s, errOut)
	if err != nil {
		return err
	}
	if len(entries) == 0 {
		if s.cfg.Generate {
			output.PrintWarning(errOut, "no tags selected; changelog not written")
			return nil
		}
		return clierrors.NoReleasesFound()
	}

	content, err := changelog.RenderString(s.cfg.Template, entries)
	if err != nil {
		return fmt.Errorf("rendering changelog: %w", err)
	}

	if dryRun {
		fmt.Fprint(out, content)
		return nil
	}
	if err := changelog.Write(path, content, s.cfg.Override); err != nil {
		return err
	}
	output.PrintSuccess(out, fmt.Sprintf("Wrote %d release(s) to %s", len(entries), path))
	return nil
}

// collectEntries returns the changelog entries, newest first. Generated
// entries cover every tag unless tags are configured.
func collectEntries(ctx context.Context, s *session, errOut io.Writer) ([]changelog.Entry, error) {
	if s.cfg.Generate {
		opts := s.cfg.PipelineOptions(nil)
		if len(opts.Tags) == 0 {
			opts.Tags = []string{notes.AllTags}
		}
		result, err := s.runPipeline(ctx, opts, errOut)
		if err != nil {
			return nil, err
		}
		return changelog.FromBlocks(result.Blocks, s.cfg.DateFormat), nil
	}

	releases, err := s.client.ListReleases(ctx)
	if err != nil {
		return nil, clierrors.ExternalAPI("listing releases", err)
	}
	return changelog.FromReleases(filterReleases(releases, s.cfg.Tags), s.cfg.DateFormat), nil
}

// filterReleases keeps the releases of the requested tags. No tags, or
// "all", keeps every release.
func filterReleases(releases []notes.ReleaseRecord, tags []string) []notes.ReleaseRecord {
	if len(tags) == 0 || slices.Contains(tags, notes.AllTags) {
		return releases
	}
	kept := make([]notes.ReleaseRecord, 0, len(tags))
	for _, r := range releases {
		if slices.Contains(tags, r.TagName) {
			kept = append(kept, r)
		}
	}
	return kept
}
