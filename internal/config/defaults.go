package config

import "github.com/ariel-frischer/relnotes/internal/template"

// GetDefaultConfigTemplate returns a fully commented project config
// template written by 'relnotes config init'.
func GetDefaultConfigTemplate() string {
	return `# relnotes configuration
# See 'relnotes config keys' for every option.

# Repository (detected from the origin remote when empty)
username: ""
repo: ""
api_url: https://api.github.com

# Tag selection
tags: []                              # Empty = latest two tags, or [all], or [v2.0.0]
ignore_tags_with: []                  # e.g. [rc, nightly]

# Content
data_source: issues                   # issues | commits | milestones
include_messages: commits             # commits | merges | all (commit mode)
ignore_commits_with: []
only_milestones: false
milestone_match: "Release {{tag_name}}"
ignore_labels: []                     # Hidden from rendered label lists
ignore_issues_with: []                # Issues with these labels are skipped
group_by: false                       # false | label | mapping, e.g.:
# group_by:
#   Features: [enhancement, feature]
#   Bug fixes: [bug]
#   Other: ["..."]

# Releases
prefix: ""
draft: false
prerelease: false
override: false

# Changelog
changelog_filename: CHANGELOG.md
generate: false
date_format: "2006-01-02"             # Go time layout

# Templates
# template:
#   commit: "- [{{message}}]({{url}}) - @{{author}}"
#   label: "[**{{label}}**]"
#   issue: "- {{labels}} {{name}} [{{text}}]({{url}})"
#   group: "\n#### {{heading}}\n"
#   release: "## {{release}} ({{date}})\n\n{{body}}"
#   no_label: closed
`
}

// GetDefaults returns the default configuration values
func GetDefaults() map[string]interface{} {
	tpl := template.Defaults()
	return map[string]interface{}{
		"token":               "",
		"username":            "",
		"repo":                "",
		"api_url":             "https://api.github.com",
		"tags":                []string{},
		"ignore_tags_with":    []string{},
		"data_source":         "issues",
		"only_milestones":     false,
		"milestone_match":     "Release {{tag_name}}",
		"draft":               false,
		"prerelease":          false,
		"force":               false,
		"prefix":              "",
		"include_messages":    "commits",
		"ignore_commits_with": []string{},
		"generate":            false,
		"override":            false,
		"ignore_labels":       []string{},
		"ignore_issues_with":  []string{},
		"group_by":            false,
		"changelog_filename":  "CHANGELOG.md",
		"date_format":         "2006-01-02",
		"template": map[string]interface{}{
			"commit":            tpl.Commit,
			"label":             tpl.Label,
			"issue":             tpl.Issue,
			"group":             tpl.Group,
			"release":           tpl.Release,
			"release_separator": tpl.ReleaseSeparator,
			"changelog_title":   tpl.ChangelogTitle,
			"no_label":          tpl.NoLabel,
		},
	}
}
