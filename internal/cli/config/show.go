package config

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/cli/shared"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration relnotes would run with, after merging defaults,
config files, environment variables and flags. The token is masked.`,
	Example: `  relnotes config show
  relnotes config show --config ./ci/.relnotes.yml`,
	Args: cobra.NoArgs,
	RunE: runConfigShow,
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	cfg, err := shared.LoadConfig(cmd)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "# Configuration sources (lowest priority first):")
	fmt.Fprintln(out, "#   defaults")
	for _, f := range cfg.Files {
		fmt.Fprintf(out, "#   %s: %s\n", f.Source, f.Path)
	}
	fmt.Fprintln(out, "#   environment (RELNOTES_*)")
	fmt.Fprintln(out)

	return cfg.WriteYAML(out)
}
