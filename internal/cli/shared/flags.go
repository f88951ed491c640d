package shared

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// Persistent flag names registered on the root command.
const (
	ConfigFlag = "config"
	DebugFlag  = "debug"
)

// DryRunFlag previews output without writing anything.
const DryRunFlag = "dry-run"

// FlagKeys maps flag names to the configuration keys they override.
var FlagKeys = map[string]string{
	"token":               "token",
	"username":            "username",
	"repo":                "repo",
	"api-url":             "api_url",
	"tags":                "tags",
	"ignore-tags-with":    "ignore_tags_with",
	"data-source":         "data_source",
	"only-milestones":     "only_milestones",
	"milestone-match":     "milestone_match",
	"include-messages":    "include_messages",
	"ignore-commits-with": "ignore_commits_with",
	"ignore-labels":       "ignore_labels",
	"ignore-issues-with":  "ignore_issues_with",
	"group-by":            "group_by",
	"prefix":              "prefix",
	"draft":               "draft",
	"prerelease":          "prerelease",
	"force":               "force",
	"override":            "override",
	"generate":            "generate",
	"changelog-filename":  "changelog_filename",
	"date-format":         "date_format",
}

// AddRepositoryFlags registers the flags that identify the repository and
// credentials. The root command adds them as persistent flags.
func AddRepositoryFlags(flags *pflag.FlagSet) {
	flags.String("token", "", "GitHub token (default: RELNOTES_TOKEN or GITHUB_TOKEN)")
	flags.String("username", "", "Repository owner (default: from the origin remote)")
	flags.String("repo", "", "Repository name (default: from the origin remote)")
	flags.String("api-url", "", "GitHub API URL, for GitHub Enterprise")
}

// AddContentFlags registers the flags that control which tags are processed
// and how release bodies are built.
func AddContentFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringSlice("tags", nil, "Tags to process: one tag, two tags, or 'all' (default: latest two)")
	f.StringSlice("ignore-tags-with", nil, "Skip tags containing any of these substrings")
	f.String("data-source", "", "Release body source: issues, commits, or milestones")
	f.Bool("only-milestones", false, "Only include issues attached to a milestone")
	f.String("milestone-match", "", "Milestone title pattern, with {{tag_name}}")
	f.String("include-messages", "", "Commit filter: commits, merges, or all")
	f.StringSlice("ignore-commits-with", nil, "Skip commits whose message contains any of these")
	f.StringSlice("ignore-labels", nil, "Labels hidden from rendered issues")
	f.StringSlice("ignore-issues-with", nil, "Skip issues carrying any of these labels")
	f.String("group-by", "", "Issue grouping: false or label (mappings go in the config file)")
	f.String("prefix", "", "Prefix added to every release name")
	f.Bool("override", false, "Replace existing release bodies or changelog file")
	f.Bool(DryRunFlag, false, "Print the result instead of writing it")
}

// Overrides collects the changed flags of flags as configuration overrides.
func Overrides(flags *pflag.FlagSet) (map[string]interface{}, error) {
	overrides := make(map[string]interface{})
	var firstErr error

	flags.Visit(func(f *pflag.Flag) {
		key, ok := FlagKeys[f.Name]
		if !ok || firstErr != nil {
			return
		}

		var value interface{}
		var err error
		switch f.Value.Type() {
		case "bool":
			value, err = flags.GetBool(f.Name)
		case "stringSlice":
			value, err = flags.GetStringSlice(f.Name)
		default:
			value = f.Value.String()
		}
		if err != nil {
			firstErr = fmt.Errorf("reading --%s: %w", f.Name, err)
			return
		}
		overrides[key] = value
	})

	return overrides, firstErr
}

// LoadConfig loads configuration for cmd, applying its changed flags last.
// Load failures are returned as configuration errors.
func LoadConfig(cmd *cobra.Command) (*config.Configuration, error) {
	configPath, _ := cmd.Flags().GetString(ConfigFlag)

	overrides, err := Overrides(cmd.Flags())
	if err != nil {
		return nil, clierrors.NewArgumentError(err.Error())
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		ConfigPath: configPath,
		Overrides:  overrides,
	})
	if err != nil {
		if clierrors.IsCLIError(err) {
			return nil, err
		}
		return nil, clierrors.Wrap(err, clierrors.Configuration,
			"Check the config file for typos",
			"Run 'relnotes config keys' to list valid keys and values",
		)
	}
	return cfg, nil
}
