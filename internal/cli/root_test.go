package cli

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relnotes/internal/cli/shared"
)

func TestRootCmd_Structure(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "relnotes", rootCmd.Use)
	assert.NotEmpty(t, rootCmd.Short)
	assert.NotEmpty(t, rootCmd.Long)
	assert.NotEmpty(t, rootCmd.Example)
	assert.True(t, rootCmd.SilenceUsage)
	assert.True(t, rootCmd.SilenceErrors)
}

func TestRootCmd_PersistentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		flagName  string
		shorthand string
	}{
		"config flag":   {flagName: "config", shorthand: "c"},
		"debug flag":    {flagName: "debug", shorthand: "d"},
		"token flag":    {flagName: "token"},
		"username flag": {flagName: "username"},
		"repo flag":     {flagName: "repo"},
		"api-url flag":  {flagName: "api-url"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			f := rootCmd.PersistentFlags().Lookup(tt.flagName)
			require.NotNil(t, f, "persistent flag %s should exist", tt.flagName)
			assert.Equal(t, tt.shorthand, f.Shorthand)
		})
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		group string
	}{
		"release":   {group: shared.GroupReleases},
		"changelog": {group: shared.GroupReleases},
		"doctor":    {group: shared.GroupGettingStarted},
		"version":   {group: shared.GroupGettingStarted},
		"config":    {group: shared.GroupConfiguration},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := findCommand(rootCmd, name)
			require.NotNil(t, cmd, "command %s should be registered", name)
			assert.Equal(t, tt.group, cmd.GroupID)
			assert.True(t, rootCmd.ContainsGroup(cmd.GroupID))
		})
	}
}

func TestContentFlags(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		cmd   *cobra.Command
		flags []string
	}{
		"release": {
			cmd:   releaseCmd,
			flags: []string{"tags", "data-source", "group-by", "override", "dry-run", "draft", "prerelease", "force"},
		},
		"changelog": {
			cmd:   changelogCmd,
			flags: []string{"tags", "data-source", "group-by", "override", "dry-run", "generate", "changelog-filename", "date-format"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			for _, flag := range tt.flags {
				f := tt.cmd.Flags().Lookup(flag)
				require.NotNil(t, f, "%s should have --%s", name, flag)
				if _, mapped := shared.FlagKeys[flag]; flag != shared.DryRunFlag {
					assert.True(t, mapped, "--%s should map to a config key", flag)
				}
			}
		})
	}
}

func TestSetDebugLogging(t *testing.T) {
	assert.NotPanics(t, func() {
		setDebugLogging(true)
		setDebugLogging(false)
	})
}

func findCommand(root *cobra.Command, name string) *cobra.Command {
	for _, c := range root.Commands() {
		if c.Name() == name {
			return c
		}
	}
	return nil
}
