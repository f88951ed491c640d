package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Create a commented configuration file",
	Long: `Create a fully commented configuration file with every option at its
default value.

By default the file is written as .relnotes.yml in the current directory,
or in the given path. Use --user to create the user-level config instead,
which applies to all your repositories.

If the file already exists it is left unchanged (use --force to overwrite).`,
	Example: `  # Create .relnotes.yml in the current directory
  relnotes config init

  # Create it in another repository
  relnotes config init ~/src/widgets

  # Create the user-level config
  relnotes config init --user

  # Overwrite an existing config with defaults
  relnotes config init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().Bool("user", false, "Create user-level config (~/.config/relnotes/config.yml)")
	initCmd.Flags().BoolP("force", "f", false, "Overwrite existing config with defaults")
}

func runInit(cmd *cobra.Command, args []string) error {
	user, _ := cmd.Flags().GetBool("user")
	force, _ := cmd.Flags().GetBool("force")

	configPath, err := initConfigPath(args, user)
	if err != nil {
		return err
	}

	_, err = initializeConfig(cmd.OutOrStdout(), configPath, force)
	return err
}

// initConfigPath returns where init writes: the user config, or the default
// project config name inside the path argument (default: working directory).
func initConfigPath(args []string, user bool) (string, error) {
	if user {
		path, err := config.UserConfigPath()
		if err != nil {
			return "", fmt.Errorf("failed to get user config path: %w", err)
		}
		return path, nil
	}

	rawPath := ""
	if len(args) == 1 {
		rawPath = args[0]
	}
	dir, err := resolveDir(rawPath)
	if err != nil {
		return "", fmt.Errorf("resolving target directory: %w", err)
	}
	if err := ensureDir(dir); err != nil {
		return "", fmt.Errorf("ensuring target directory: %w", err)
	}
	return config.ProjectConfigPath(dir), nil
}

// initializeConfig writes the default config to configPath unless it exists
// and force is off. It reports whether a new file was created.
func initializeConfig(out io.Writer, configPath string, force bool) (bool, error) {
	configExists := fileExistsCheck(configPath)

	if configExists && !force {
		fmt.Fprintf(out, "%s %s: exists at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
		return false, nil
	}

	if err := writeDefaultConfig(configPath); err != nil {
		return false, fmt.Errorf("writing default config: %w", err)
	}

	if configExists {
		fmt.Fprintf(out, "%s %s: overwritten at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	} else {
		fmt.Fprintf(out, "%s %s: created at %s\n", cGreen("✓"), cBold("Config"), cDim(configPath))
	}

	return !configExists, nil
}

// writeDefaultConfig writes the default configuration to the given path
func writeDefaultConfig(configPath string) error {
	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(config.GetDefaultConfigTemplate()), 0o644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}

func fileExistsCheck(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
