package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

var setCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set a configuration value",
	Long: `Set a configuration value in the project config (default) or the user
config (--user). The value is validated against the key's type; list values
are comma-separated. Comments and key order in the file are preserved.

group_by mappings cannot be set here; edit the file directly.`,
	Example: `  relnotes config set data_source commits
  relnotes config set ignore_labels wontfix,duplicate
  relnotes config set template.no_label "" --user`,
	Args: cobra.ExactArgs(2),
	RunE: runConfigSet,
}

func init() {
	setCmd.Flags().Bool("user", false, "Write to the user-level config")
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	key, value := args[0], args[1]

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("getting current directory: %w", err)
	}

	configPath, err := targetConfigPath(user, cwd)
	if err != nil {
		return err
	}
	if strings.EqualFold(filepath.Ext(configPath), ".json") {
		return clierrors.NewArgumentError(
			fmt.Sprintf("cannot edit JSON config %s", configPath),
			"Edit the file directly, or convert it to .relnotes.yml",
		)
	}

	if err := config.SetConfigValue(configPath, key, value); err != nil {
		return clierrors.NewArgumentError(err.Error(), "Run 'relnotes config keys' to list valid keys and values")
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s = %s (%s)\n", cGreen("✓"), cBold(key), value, cDim(configPath))
	return nil
}
