package shared

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relnotes/internal/config"
)

func newFlagCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "test"}
	AddRepositoryFlags(cmd.Flags())
	AddContentFlags(cmd)
	cmd.Flags().Bool("draft", false, "")
	cmd.Flags().Bool("generate", false, "")
	return cmd
}

func TestOverrides(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		args []string
		want map[string]interface{}
	}{
		"no flags": {
			args: nil,
			want: map[string]interface{}{},
		},
		"string flag": {
			args: []string{"--data-source", "commits"},
			want: map[string]interface{}{"data_source": "commits"},
		},
		"dashed name maps to key": {
			args: []string{"--api-url", "https://ghe.example.com/api/v3"},
			want: map[string]interface{}{"api_url": "https://ghe.example.com/api/v3"},
		},
		"slice flag": {
			args: []string{"--tags", "v2.0.0,v1.0.0"},
			want: map[string]interface{}{"tags": []string{"v2.0.0", "v1.0.0"}},
		},
		"bool flag": {
			args: []string{"--draft", "--override"},
			want: map[string]interface{}{"draft": true, "override": true},
		},
		"explicit false is kept": {
			args: []string{"--generate=false"},
			want: map[string]interface{}{"generate": false},
		},
		"flags without a key are ignored": {
			args: []string{"--dry-run"},
			want: map[string]interface{}{},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			cmd := newFlagCommand()
			require.NoError(t, cmd.ParseFlags(tt.args))

			got, err := Overrides(cmd.Flags())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFlagKeysAreKnownConfigKeys(t *testing.T) {
	t.Parallel()

	for flag, key := range FlagKeys {
		_, err := config.GetKeySchema(key)
		assert.NoError(t, err, "--%s maps to unknown key %s", flag, key)
	}
}
