package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/notes"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func loadFrom(t *testing.T, dir string, overrides map[string]interface{}) (*Configuration, error) {
	t.Helper()
	return LoadWithOptions(LoadOptions{Dir: dir, SkipUserConfig: true, Overrides: overrides})
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := loadFrom(t, t.TempDir(), nil)
	require.NoError(t, err)

	assert.Equal(t, "issues", cfg.DataSource)
	assert.Equal(t, "commits", cfg.IncludeMessages)
	assert.Equal(t, "Release {{tag_name}}", cfg.MilestoneMatch)
	assert.Equal(t, "CHANGELOG.md", cfg.ChangelogFilename)
	assert.Equal(t, "2006-01-02", cfg.DateFormat)
	assert.Equal(t, "https://api.github.com", cfg.APIURL)
	assert.Equal(t, "closed", cfg.Template.NoLabel)
	assert.Equal(t, "- {{labels}} {{name}} [{{text}}]({{url}})", cfg.Template.Issue)
	assert.Empty(t, cfg.Tags)
	assert.Empty(t, cfg.Token)
	assert.Empty(t, cfg.Files)
	assert.Equal(t, notes.GroupFlat, cfg.GroupSpec().Mode)
}

func TestLoad_ProjectConfig(t *testing.T) {
	tests := map[string]struct {
		name    string
		content string
	}{
		"yaml": {
			name: ".relnotes.yml",
			content: `data_source: commits
include_messages: all
tags: [v2.0.0]
prefix: "Release "
template:
  commit: "* {{message}}"
`,
		},
		"json": {
			name:    ".relnotes.json",
			content: `{"data_source": "commits", "include_messages": "all", "tags": ["v2.0.0"], "prefix": "Release ", "template": {"commit": "* {{message}}"}}`,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeFile(t, dir, tt.name, tt.content)

			cfg, err := loadFrom(t, dir, nil)
			require.NoError(t, err)

			assert.Equal(t, "commits", cfg.DataSource)
			assert.Equal(t, "all", cfg.IncludeMessages)
			assert.Equal(t, []string{"v2.0.0"}, cfg.Tags)
			assert.Equal(t, "Release ", cfg.Prefix)
			assert.Equal(t, "* {{message}}", cfg.Template.Commit)
			assert.Equal(t, "[**{{label}}**]", cfg.Template.Label, "unset templates keep defaults")
			assert.Equal(t, []LoadedFile{{Path: path, Source: SourceProject}}, cfg.Files)
		})
	}
}

func TestLoad_Priority(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".relnotes.yml", "data_source: commits\nprefix: file\ndraft: true\n")

	t.Setenv("RELNOTES_PREFIX", "env")
	t.Setenv("RELNOTES_IGNORE_LABELS", "wontfix, duplicate")
	t.Setenv("RELNOTES_TEMPLATE__NO_LABEL", "misc")

	cfg, err := loadFrom(t, dir, map[string]interface{}{"data_source": "milestones"})
	require.NoError(t, err)

	assert.Equal(t, "milestones", cfg.DataSource, "override beats file")
	assert.Equal(t, "env", cfg.Prefix, "env beats file")
	assert.True(t, cfg.Draft, "file beats default")
	assert.Equal(t, []string{"wontfix", "duplicate"}, cfg.IgnoreLabels)
	assert.Equal(t, "misc", cfg.Template.NoLabel)
}

func TestLoad_UserConfig(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	t.Setenv("HOME", xdg)

	userPath, err := UserConfigPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(userPath), 0o755))
	require.NoError(t, os.WriteFile(userPath, []byte("prefix: user\ndraft: true\n"), 0o644))

	dir := t.TempDir()
	writeFile(t, dir, ".relnotes.yml", "prefix: project\n")

	cfg, err := LoadWithOptions(LoadOptions{Dir: dir})
	require.NoError(t, err)

	assert.Equal(t, "project", cfg.Prefix)
	assert.True(t, cfg.Draft)
	require.Len(t, cfg.Files, 2)
	assert.Equal(t, SourceUser, cfg.Files[0].Source)
	assert.Equal(t, SourceProject, cfg.Files[1].Source)
}

func TestLoad_ExplicitConfigPath(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "custom.yml", "override: true\n")

	cfg, err := LoadWithOptions(LoadOptions{ConfigPath: path, SkipUserConfig: true})
	require.NoError(t, err)
	assert.True(t, cfg.Override)

	_, err = LoadWithOptions(LoadOptions{ConfigPath: filepath.Join(dir, "missing.yml"), SkipUserConfig: true})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestLoad_Token(t *testing.T) {
	tests := map[string]struct {
		githubToken   string
		relnotesToken string
		override      string
		want          string
	}{
		"fallback to GITHUB_TOKEN": {githubToken: "gh", want: "gh"},
		"RELNOTES_TOKEN wins":      {githubToken: "gh", relnotesToken: "rn", want: "rn"},
		"flag wins":                {githubToken: "gh", relnotesToken: "rn", override: "flag", want: "flag"},
		"none":                     {want: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv("GITHUB_TOKEN", tt.githubToken)
			t.Setenv("RELNOTES_TOKEN", tt.relnotesToken)
			if tt.relnotesToken == "" {
				os.Unsetenv("RELNOTES_TOKEN")
			}

			var overrides map[string]interface{}
			if tt.override != "" {
				overrides = map[string]interface{}{"token": tt.override}
			}

			cfg, err := loadFrom(t, t.TempDir(), overrides)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Token)
		})
	}
}

func TestLoad_GroupByMappingKeepsFileOrder(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".relnotes.yml", `group_by:
  Security: [security]
  Features: [enhancement, feature]
  Bug fixes: [bug]
  Other: ["..."]
`)

	cfg, err := loadFrom(t, dir, nil)
	require.NoError(t, err)

	spec := cfg.GroupSpec()
	require.Equal(t, notes.GroupByMapping, spec.Mode)
	var names []string
	for _, g := range spec.Groups {
		names = append(names, g.Name)
	}
	assert.Equal(t, []string{"Security", "Features", "Bug fixes", "Other"}, names)
	assert.Equal(t, []string{"enhancement", "feature"}, spec.Groups[1].Labels)
	assert.True(t, spec.Groups[3].IsCatchAll())
}

func TestLoad_GroupByLabel(t *testing.T) {
	cfg, err := loadFrom(t, t.TempDir(), map[string]interface{}{"group_by": "label"})
	require.NoError(t, err)
	assert.Equal(t, notes.GroupByLabel, cfg.GroupSpec().Mode)
	assert.Equal(t, notes.GroupByLabel, cfg.NotesOptions().GroupBy.Mode)
}

func TestLoad_Invalid(t *testing.T) {
	tests := map[string]struct {
		content     string
		errContains string
		wantCode    clierrors.Code
	}{
		"bad data source": {
			content:     "data_source: pulls\n",
			errContains: "data_source",
		},
		"bad include messages": {
			content:     "include_messages: some\n",
			errContains: "must be one of: commits, merges, all",
		},
		"bad api url": {
			content:     "api_url: not a url\n",
			errContains: "api_url",
		},
		"milestones without placeholder": {
			content:     "data_source: milestones\nmilestone_match: Sprint\n",
			errContains: "{{tag_name}}",
		},
		"bad yaml": {
			content:     "data_source: [unclosed\n",
			errContains: "validating YAML syntax",
		},
		"bad group_by": {
			content:     "group_by: milestone\n",
			errContains: "invalid group_by",
			wantCode:    clierrors.CodeInvalidGroupSpec,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, ".relnotes.yml", tt.content)

			_, err := loadFrom(t, dir, nil)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errContains)
			if tt.wantCode != clierrors.CodeUnknown {
				assert.Equal(t, tt.wantCode, clierrors.CodeOf(err))
			}
		})
	}
}

func TestConfiguration_Options(t *testing.T) {
	cfg, err := loadFrom(t, t.TempDir(), map[string]interface{}{
		"tags":             []string{"all"},
		"ignore_tags_with": []string{"rc"},
		"data_source":      "commits",
		"prefix":           "v",
		"override":         true,
		"draft":            true,
	})
	require.NoError(t, err)

	assert.True(t, cfg.SelectsAllTags())

	stages := 0
	popts := cfg.PipelineOptions(func(string) { stages++ })
	assert.Equal(t, []string{"all"}, popts.Tags)
	assert.Equal(t, []string{"rc"}, popts.IgnoreTagsWith)
	assert.Equal(t, notes.DataSourceCommits, popts.Synth.DataSource)
	assert.Equal(t, "v", popts.Synth.Prefix)
	assert.True(t, popts.Synth.Override)
	popts.OnStage("x")
	assert.Equal(t, 1, stages)

	assert.Equal(t, notes.SyncOptions{Override: true, Draft: true}, cfg.SyncOptions())
}

func TestConfiguration_WriteYAMLRedactsToken(t *testing.T) {
	t.Parallel()

	cfg := &Configuration{Token: "ghp_secret", Username: "acme", DataSource: "issues"}

	var buf bytes.Buffer
	require.NoError(t, cfg.WriteYAML(&buf))

	assert.NotContains(t, buf.String(), "ghp_secret")
	assert.Contains(t, buf.String(), "********")
	assert.Contains(t, buf.String(), "username: acme")
	assert.Equal(t, "ghp_secret", cfg.Token, "original is unchanged")
}

func TestEnvTransform(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key       string
		value     string
		wantKey   string
		wantValue interface{}
	}{
		"scalar":     {key: "RELNOTES_DATA_SOURCE", value: "commits", wantKey: "data_source", wantValue: "commits"},
		"nested":     {key: "RELNOTES_TEMPLATE__ISSUE", value: "{{name}}", wantKey: "template.issue", wantValue: "{{name}}"},
		"list":       {key: "RELNOTES_TAGS", value: "v2, v1", wantKey: "tags", wantValue: []string{"v2", "v1"}},
		"empty list": {key: "RELNOTES_IGNORE_LABELS", value: "", wantKey: "ignore_labels", wantValue: []string{}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			key, value := envTransform(tt.key, tt.value)
			assert.Equal(t, tt.wantKey, key)
			assert.Equal(t, tt.wantValue, value)
		})
	}
}

func TestFindProjectConfig(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.Empty(t, FindProjectConfig(dir))

	jsonPath := writeFile(t, dir, ".relnotes.json", "{}")
	assert.Equal(t, jsonPath, FindProjectConfig(dir))

	ymlPath := writeFile(t, dir, ".relnotes.yml", "")
	assert.Equal(t, ymlPath, FindProjectConfig(dir), "yml is preferred")
	assert.Equal(t, ymlPath, ProjectConfigPath(dir))
}

func TestValidateValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		key     string
		value   string
		want    interface{}
		wantErr string
	}{
		"bool":        {key: "draft", value: "TRUE", want: true},
		"enum":        {key: "include_messages", value: "merges", want: "merges"},
		"list":        {key: "tags", value: "v2,,v1 ", want: []string{"v2", "v1"}},
		"string":      {key: "template.no_label", value: "misc", want: "misc"},
		"unknown key": {key: "nope", value: "x", wantErr: "unknown configuration key: nope"},
		"bad bool":    {key: "force", value: "yes", wantErr: "invalid boolean"},
		"bad enum":    {key: "data_source", value: "prs", wantErr: "invalid value"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := ValidateValue(tt.key, tt.value)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Parsed)
		})
	}
}

func TestKnownKeysCoverDefaults(t *testing.T) {
	t.Parallel()

	for key, value := range GetDefaults() {
		if nested, ok := value.(map[string]interface{}); ok {
			for sub := range nested {
				_, err := GetKeySchema(key + "." + sub)
				assert.NoError(t, err, "%s.%s", key, sub)
			}
			continue
		}
		_, err := GetKeySchema(key)
		assert.NoError(t, err, key)
	}
	assert.Len(t, SortedKeys(), len(KnownKeys))
}

func TestYAMLPosition(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		raw        string
		wantLine   int
		wantColumn int
		wantMsg    string
	}{
		"line only": {
			raw:        "yaml: line 3: did not find expected key",
			wantLine:   3,
			wantColumn: 1,
			wantMsg:    "did not find expected key",
		},
		"line and column": {
			raw:        "yaml: line 7: column 12: mapping values are not allowed in this context",
			wantLine:   7,
			wantColumn: 12,
			wantMsg:    "mapping values are not allowed in this context",
		},
		"no position": {
			raw:     "yaml: unknown anchor 'x' referenced",
			wantMsg: "yaml: unknown anchor 'x' referenced",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			line, column, msg := yamlPosition(tt.raw)
			assert.Equal(t, tt.wantLine, line)
			assert.Equal(t, tt.wantColumn, column)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestValidateYAMLSyntax(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	assert.NoError(t, ValidateYAMLSyntax(filepath.Join(dir, "missing.yml")))

	empty := writeFile(t, dir, "empty.yml", "  \n")
	assert.NoError(t, ValidateYAMLSyntax(empty))

	bad := writeFile(t, dir, "bad.yml", "tags: [v1\nrepo: x\n")
	err := ValidateYAMLSyntax(bad)
	require.Error(t, err)
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, bad, verr.Path)
	assert.Positive(t, verr.Line)
}
