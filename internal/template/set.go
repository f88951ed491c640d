package template

import (
	"strings"
)

// Set holds the named templates for each entity kind plus the fixed strings
// used when assembling a changelog file.
type Set struct {
	Commit           string `koanf:"commit" yaml:"commit"`
	Label            string `koanf:"label" yaml:"label"`
	Issue            string `koanf:"issue" yaml:"issue"`
	Group            string `koanf:"group" yaml:"group"`
	Release          string `koanf:"release" yaml:"release"`
	ReleaseSeparator string `koanf:"release_separator" yaml:"release_separator"`
	ChangelogTitle   string `koanf:"changelog_title" yaml:"changelog_title"`
	NoLabel          string `koanf:"no_label" yaml:"no_label"`
}

// Defaults returns the built-in template set.
func Defaults() Set {
	return Set{
		Commit:           "- [{{message}}]({{url}}) - @{{author}}",
		Label:            "[**{{label}}**]",
		Issue:            "- {{labels}} {{name}} [{{text}}]({{url}})",
		Group:            "\n#### {{heading}}\n",
		Release:          "## {{release}} ({{date}})\n\n{{body}}",
		ReleaseSeparator: "\n---\n\n",
		ChangelogTitle:   "# Changelog\n\n",
		NoLabel:          "closed",
	}
}

// WithDefaults fills every empty template with its built-in value. NoLabel is
// left alone: an empty value means unlabeled issues get no placeholder.
func (s Set) WithDefaults() Set {
	d := Defaults()
	if s.Commit == "" {
		s.Commit = d.Commit
	}
	if s.Label == "" {
		s.Label = d.Label
	}
	if s.Issue == "" {
		s.Issue = d.Issue
	}
	if s.Group == "" {
		s.Group = d.Group
	}
	if s.Release == "" {
		s.Release = d.Release
	}
	if s.ReleaseSeparator == "" {
		s.ReleaseSeparator = d.ReleaseSeparator
	}
	if s.ChangelogTitle == "" {
		s.ChangelogTitle = d.ChangelogTitle
	}
	return s
}

// CommitFields are the placeholders available to the commit template.
type CommitFields struct {
	Message string
	URL     string
	Author  string
	Name    string
}

// IssueFields are the placeholders available to the issue template.
// Labels must already be rendered through the label template.
type IssueFields struct {
	Labels    string
	Name      string
	Text      string
	URL       string
	Body      string
	UserLogin string
	UserURL   string
}

// ReleaseFields are the placeholders available to the release template.
type ReleaseFields struct {
	Release string
	Date    string
	Body    string
}

// RenderCommit renders one commit line.
func (s Set) RenderCommit(f CommitFields) string {
	return Render(map[string]string{
		"message": f.Message,
		"url":     f.URL,
		"author":  f.Author,
		"name":    f.Name,
	}, s.Commit)
}

// RenderLabel renders a single label.
func (s Set) RenderLabel(label string) string {
	return Render(map[string]string{"label": label}, s.Label)
}

// RenderLabels renders each label and joins them with a space.
func (s Set) RenderLabels(labels []string) string {
	rendered := make([]string, 0, len(labels))
	for _, l := range labels {
		rendered = append(rendered, s.RenderLabel(l))
	}
	return strings.Join(rendered, " ")
}

// RenderIssue renders one issue line.
func (s Set) RenderIssue(f IssueFields) string {
	return Render(map[string]string{
		"labels":     f.Labels,
		"name":       f.Name,
		"text":       f.Text,
		"url":        f.URL,
		"body":       f.Body,
		"user_login": f.UserLogin,
		"user_url":   f.UserURL,
	}, s.Issue)
}

// RenderGroup renders a group heading.
func (s Set) RenderGroup(heading string) string {
	return Render(map[string]string{"heading": heading}, s.Group)
}

// RenderRelease renders one release section of a changelog file.
func (s Set) RenderRelease(f ReleaseFields) string {
	return Render(map[string]string{
		"release": f.Release,
		"date":    f.Date,
		"body":    f.Body,
	}, s.Release)
}
