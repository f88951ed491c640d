// Package config provides hierarchical configuration management for relnotes using koanf.
// Configuration is loaded with priority: command-line overrides > environment variables
// (RELNOTES_*) > project config (.relnotes.yml) > user config (~/.config/relnotes/config.yml)
// > defaults. Project config files may be YAML or JSON.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/template"
)

// EnvPrefix is the prefix of environment variables read into the config.
const EnvPrefix = "RELNOTES_"

// FallbackTokenEnv is consulted when no token is configured.
const FallbackTokenEnv = "GITHUB_TOKEN"

// ConfigSource tracks where a configuration value came from
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUser     ConfigSource = "user"
	SourceProject  ConfigSource = "project"
	SourceEnv      ConfigSource = "env"
	SourceOverride ConfigSource = "flag"
)

// LoadedFile records a config file that contributed to the configuration.
type LoadedFile struct {
	Path   string
	Source ConfigSource
}

// Configuration represents the relnotes configuration
type Configuration struct {
	Token    string `koanf:"token" yaml:"token,omitempty"`
	Username string `koanf:"username" yaml:"username"`
	Repo     string `koanf:"repo" yaml:"repo"`
	APIURL   string `koanf:"api_url" yaml:"api_url" validate:"required,url"`

	// Tags lists tag names to process. "all" selects every tag; empty selects
	// the latest two.
	Tags           []string `koanf:"tags" yaml:"tags"`
	IgnoreTagsWith []string `koanf:"ignore_tags_with" yaml:"ignore_tags_with"`

	DataSource        string   `koanf:"data_source" yaml:"data_source" validate:"oneof=issues commits milestones"`
	OnlyMilestones    bool     `koanf:"only_milestones" yaml:"only_milestones"`
	MilestoneMatch    string   `koanf:"milestone_match" yaml:"milestone_match"`
	IncludeMessages   string   `koanf:"include_messages" yaml:"include_messages" validate:"oneof=commits merges all"`
	IgnoreCommitsWith []string `koanf:"ignore_commits_with" yaml:"ignore_commits_with"`
	IgnoreLabels      []string `koanf:"ignore_labels" yaml:"ignore_labels"`
	IgnoreIssuesWith  []string `koanf:"ignore_issues_with" yaml:"ignore_issues_with"`
	// GroupBy is false, "label", or a mapping of group name to labels.
	GroupBy interface{} `koanf:"group_by" yaml:"group_by"`

	Draft      bool   `koanf:"draft" yaml:"draft"`
	Prerelease bool   `koanf:"prerelease" yaml:"prerelease"`
	Force      bool   `koanf:"force" yaml:"force"`
	Prefix     string `koanf:"prefix" yaml:"prefix"`
	Override   bool   `koanf:"override" yaml:"override"`

	Generate          bool   `koanf:"generate" yaml:"generate"`
	ChangelogFilename string `koanf:"changelog_filename" yaml:"changelog_filename" validate:"required"`
	DateFormat        string `koanf:"date_format" yaml:"date_format" validate:"required"`

	Template template.Set `koanf:"template" yaml:"template"`

	// Files lists the config files that were loaded, lowest priority first.
	Files []LoadedFile `koanf:"-" yaml:"-"`

	groupSpec notes.GroupSpec
}

// LoadOptions configures how configuration is loaded
type LoadOptions struct {
	// ConfigPath overrides project config discovery.
	ConfigPath string
	// Dir is searched for project config files (default: working directory).
	Dir string
	// SkipUserConfig ignores the user-level config file.
	SkipUserConfig bool
	// Overrides are applied last, keyed by config key (e.g. "data_source").
	Overrides map[string]interface{}
}

// Load loads configuration from user, project, and environment sources.
func Load(configPath string) (*Configuration, error) {
	return LoadWithOptions(LoadOptions{ConfigPath: configPath})
}

// LoadWithOptions loads configuration with custom options
func LoadWithOptions(opts LoadOptions) (*Configuration, error) {
	k := koanf.New(".")
	var files []LoadedFile

	loadDefaults(k)

	if !opts.SkipUserConfig {
		userPath, _ := UserConfigPath()
		if fileExists(userPath) {
			if err := loadConfigFile(k, userPath, SourceUser); err != nil {
				return nil, err
			}
			files = append(files, LoadedFile{Path: userPath, Source: SourceUser})
		}
	}

	projectPath, err := resolveProjectConfig(opts)
	if err != nil {
		return nil, err
	}
	if projectPath != "" {
		if err := loadConfigFile(k, projectPath, SourceProject); err != nil {
			return nil, err
		}
		files = append(files, LoadedFile{Path: projectPath, Source: SourceProject})
	}

	if err := loadEnvironmentConfig(k); err != nil {
		return nil, err
	}

	for key, value := range opts.Overrides {
		if err := k.Set(key, value); err != nil {
			return nil, fmt.Errorf("applying %s: %w", key, err)
		}
	}

	cfg, err := finalizeConfig(k, files)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveProjectConfig returns the explicit config path, which must exist,
// or the first project config found in opts.Dir.
func resolveProjectConfig(opts LoadOptions) (string, error) {
	if opts.ConfigPath != "" {
		if !fileExists(opts.ConfigPath) {
			return "", fmt.Errorf("config file %s not found", opts.ConfigPath)
		}
		return opts.ConfigPath, nil
	}

	dir := opts.Dir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}
	return FindProjectConfig(dir), nil
}

// loadDefaults applies default configuration values
func loadDefaults(k *koanf.Koanf) {
	for key, value := range GetDefaults() {
		k.Set(key, value)
	}
}

// loadConfigFile validates and loads a YAML or JSON config file
func loadConfigFile(k *koanf.Koanf, path string, source ConfigSource) error {
	if strings.EqualFold(filepath.Ext(path), ".json") {
		if err := k.Load(file.Provider(path), json.Parser()); err != nil {
			return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
		}
		return nil
	}

	if err := ValidateYAMLSyntax(path); err != nil {
		return fmt.Errorf("validating YAML syntax for %s config: %w", source, err)
	}
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("failed to load %s config %s: %w", source, path, err)
	}
	return nil
}

// loadEnvironmentConfig loads environment variable overrides
func loadEnvironmentConfig(k *koanf.Koanf) error {
	if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envTransform), nil); err != nil {
		return fmt.Errorf("failed to load environment config: %w", err)
	}
	return nil
}

// envTransform converts environment variable names to config keys and
// splits list values on commas.
// Example: RELNOTES_TEMPLATE__NO_LABEL -> template.no_label
func envTransform(key, value string) (string, interface{}) {
	key = strings.ToLower(strings.TrimPrefix(key, EnvPrefix))
	key = strings.ReplaceAll(key, "__", ".")
	if schema, ok := KnownKeys[key]; ok && schema.Type == TypeList {
		return key, SplitList(value)
	}
	return key, value
}

// finalizeConfig unmarshals, validates, and applies final transformations
func finalizeConfig(k *koanf.Koanf, files []LoadedFile) (*Configuration, error) {
	var cfg Configuration
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Files = files

	if err := ValidateConfigValues(&cfg, configLabel(files)); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	if cfg.Token == "" {
		cfg.Token = os.Getenv(FallbackTokenEnv)
	}

	spec, err := notes.ParseGroupSpec(cfg.GroupBy, groupOrder(files))
	if err != nil {
		return nil, err
	}
	cfg.groupSpec = spec

	return &cfg, nil
}

// groupOrder recovers the declaration order of a group_by mapping from the
// highest-priority file that declares one.
func groupOrder(files []LoadedFile) []string {
	for i := len(files) - 1; i >= 0; i-- {
		if keys := MappingKeys(files[i].Path, []string{"group_by"}); keys != nil {
			return keys
		}
	}
	return nil
}

func configLabel(files []LoadedFile) string {
	if len(files) == 0 {
		return "config"
	}
	return files[len(files)-1].Path
}

// GroupSpec returns the parsed group_by setting.
func (c *Configuration) GroupSpec() notes.GroupSpec {
	return c.groupSpec
}

// NotesOptions returns the block synthesis options.
func (c *Configuration) NotesOptions() notes.Options {
	return notes.Options{
		DataSource:        notes.DataSource(c.DataSource),
		IncludeMessages:   notes.IncludeMessages(c.IncludeMessages),
		IgnoreCommitsWith: c.IgnoreCommitsWith,
		OnlyMilestones:    c.OnlyMilestones,
		MilestoneMatch:    c.MilestoneMatch,
		IgnoreLabels:      c.IgnoreLabels,
		IgnoreIssuesWith:  c.IgnoreIssuesWith,
		GroupBy:           c.groupSpec,
		Prefix:            c.Prefix,
		Override:          c.Override,
		Templates:         c.Template,
	}
}

// PipelineOptions returns the pipeline options. onStage may be nil.
func (c *Configuration) PipelineOptions(onStage func(string)) notes.PipelineOptions {
	return notes.PipelineOptions{
		Tags:           c.Tags,
		IgnoreTagsWith: c.IgnoreTagsWith,
		Synth:          c.NotesOptions(),
		OnStage:        onStage,
	}
}

// SyncOptions returns the release synchronization options.
func (c *Configuration) SyncOptions() notes.SyncOptions {
	return notes.SyncOptions{
		Override:   c.Override,
		Draft:      c.Draft,
		Prerelease: c.Prerelease,
	}
}

// SelectsAllTags reports whether tags contains "all".
func (c *Configuration) SelectsAllTags() bool {
	for _, t := range c.Tags {
		if t == notes.AllTags {
			return true
		}
	}
	return false
}

// Redacted returns a copy safe to print, with the token masked.
func (c *Configuration) Redacted() Configuration {
	out := *c
	if out.Token != "" {
		out.Token = "********"
	}
	return out
}

// WriteYAML writes the redacted configuration as YAML.
func (c *Configuration) WriteYAML(w io.Writer) error {
	return writeYAML(w, c.Redacted())
}
