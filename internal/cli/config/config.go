package config

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/cli/shared"
	"github.com/ariel-frischer/relnotes/internal/config"
)

// Color helper functions for config command output
var (
	cGreen = color.New(color.FgGreen).SprintFunc()
	cCyan  = color.New(color.FgCyan).SprintFunc()
	cDim   = color.New(color.Faint).SprintFunc()
	cBold  = color.New(color.Bold).SprintFunc()
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage relnotes configuration",
	Long: `Manage relnotes configuration settings.

Configuration is loaded with the following priority (highest to lowest):
  1. Command-line flags
  2. Environment variables (RELNOTES_*, use __ for nesting: RELNOTES_TEMPLATE__ISSUE)
  3. Project config (.relnotes.yml, .relnotes.yaml or .relnotes.json)
  4. User config (~/.config/relnotes/config.yml)
  5. Built-in defaults`,
	Example: `  # Show the effective configuration
  relnotes config show

  # Create a commented project config
  relnotes config init

  # Set a value in the project config
  relnotes config set data_source commits

  # List every key
  relnotes config keys`,
}

// Register adds the config command tree to root.
func Register(root *cobra.Command) {
	configCmd.GroupID = shared.GroupConfiguration
	root.AddCommand(configCmd)
}

func init() {
	configCmd.AddCommand(showCmd, initCmd, keysCmd, setCmd)
}

// targetConfigPath returns the user config path, or the project config in
// dir: the existing one when present, otherwise the default name.
func targetConfigPath(user bool, dir string) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get user config path: %w", err)
		}
		return path, nil
	}
	if existing := config.FindProjectConfig(dir); existing != "" {
		return existing, nil
	}
	return config.ProjectConfigPath(dir), nil
}
