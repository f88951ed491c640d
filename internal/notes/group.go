package notes

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/template"
)

// CatchAllLabel in a group's label list claims every issue whose labels
// match no label named by any group.
const CatchAllLabel = "..."

// GroupMode selects how issues are split into sections.
type GroupMode int

const (
	GroupFlat GroupMode = iota
	GroupByLabel
	GroupByMapping
)

// LabelGroup is one named group of a custom mapping.
type LabelGroup struct {
	Name   string
	Labels []string
}

// IsCatchAll reports whether the group claims otherwise unmatched issues.
func (g LabelGroup) IsCatchAll() bool {
	return containsString(g.Labels, CatchAllLabel)
}

// GroupSpec is the parsed group_by setting. Groups keep declaration order.
type GroupSpec struct {
	Mode   GroupMode
	Groups []LabelGroup
}

// ParseGroupSpec converts a raw group_by value into a GroupSpec.
// Accepted values are false (or nil, "", "false") for a flat list, "label"
// (or "by label") to group by first label, and a map of group name to label
// list. order gives the declaration order of the map keys; keys missing from
// order follow in lexicographic order.
func ParseGroupSpec(value any, order []string) (GroupSpec, error) {
	switch v := value.(type) {
	case nil:
		return GroupSpec{Mode: GroupFlat}, nil
	case bool:
		if !v {
			return GroupSpec{Mode: GroupFlat}, nil
		}
	case string:
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "", "false":
			return GroupSpec{Mode: GroupFlat}, nil
		case "label", "by label":
			return GroupSpec{Mode: GroupByLabel}, nil
		}
	case map[string]any:
		return parseGroupMapping(v, order)
	case map[string][]string:
		generic := make(map[string]any, len(v))
		for k, labels := range v {
			generic[k] = labels
		}
		return parseGroupMapping(generic, order)
	}
	return GroupSpec{}, clierrors.InvalidGroupSpec(value)
}

func parseGroupMapping(m map[string]any, order []string) (GroupSpec, error) {
	if len(m) == 0 {
		return GroupSpec{}, clierrors.InvalidGroupSpec(m)
	}

	names := orderedKeys(m, order)
	spec := GroupSpec{Mode: GroupByMapping, Groups: make([]LabelGroup, 0, len(names))}
	for _, name := range names {
		labels, err := toLabelList(m[name])
		if err != nil {
			return GroupSpec{}, clierrors.InvalidGroupSpec(fmt.Sprintf("%s: %v", name, m[name]))
		}
		spec.Groups = append(spec.Groups, LabelGroup{Name: name, Labels: labels})
	}
	return spec, nil
}

func orderedKeys(m map[string]any, order []string) []string {
	names := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, name := range order {
		if _, ok := m[name]; ok && !seen[name] {
			names = append(names, name)
			seen[name] = true
		}
	}
	var rest []string
	for name := range m {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	return append(names, rest...)
}

func toLabelList(v any) ([]string, error) {
	switch labels := v.(type) {
	case []string:
		return append([]string(nil), labels...), nil
	case string:
		return []string{labels}, nil
	case []any:
		out := make([]string, 0, len(labels))
		for _, l := range labels {
			s, ok := l.(string)
			if !ok {
				return nil, fmt.Errorf("label %v is not a string", l)
			}
			out = append(out, s)
		}
		return out, nil
	}
	return nil, fmt.Errorf("labels must be a list of strings")
}

// Section is one group of rendered issues. Heading is empty for the flat list.
type Section struct {
	Heading   string
	BodyLines []string
}

// IssueRenderer renders issues through the issue and label templates.
type IssueRenderer struct {
	Templates    template.Set
	IgnoreLabels []string
}

// DisplayLabels returns the labels shown for issue: its labels without the
// ignored ones, or the no_label placeholder when none remain.
func (r IssueRenderer) DisplayLabels(issue Issue) []string {
	labels := make([]string, 0, len(issue.Labels))
	for _, l := range issue.Labels {
		if !containsString(r.IgnoreLabels, l) {
			labels = append(labels, l)
		}
	}
	if len(labels) == 0 && r.Templates.NoLabel != "" {
		labels = append(labels, r.Templates.NoLabel)
	}
	return labels
}

// Render renders one issue line.
func (r IssueRenderer) Render(issue Issue) string {
	return r.Templates.RenderIssue(template.IssueFields{
		Labels:    r.Templates.RenderLabels(r.DisplayLabels(issue)),
		Name:      issue.Title,
		Text:      "#" + strconv.Itoa(issue.Number),
		URL:       issue.URL,
		Body:      issue.Body,
		UserLogin: issue.UserLogin,
		UserURL:   issue.UserURL,
	})
}

// Group splits issues into sections according to spec.
func Group(issues []Issue, spec GroupSpec, r IssueRenderer) []Section {
	switch spec.Mode {
	case GroupByLabel:
		return groupByLabel(issues, r)
	case GroupByMapping:
		return groupByMapping(issues, spec.Groups, r)
	default:
		lines := make([]string, 0, len(issues))
		for _, issue := range issues {
			lines = append(lines, r.Render(issue))
		}
		return []Section{{BodyLines: lines}}
	}
}

// groupByLabel keys each issue by its first label. Unlabeled issues use the
// no_label placeholder. Sections are sorted by key.
func groupByLabel(issues []Issue, r IssueRenderer) []Section {
	byKey := make(map[string][]string)
	for _, issue := range issues {
		key := r.Templates.NoLabel
		if len(issue.Labels) > 0 {
			key = issue.Labels[0]
		}
		byKey[key] = append(byKey[key], r.Render(issue))
	}

	keys := make([]string, 0, len(byKey))
	for k := range byKey {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	sections := make([]Section, 0, len(keys))
	for _, k := range keys {
		sections = append(sections, Section{Heading: k, BodyLines: byKey[k]})
	}
	return sections
}

// groupByMapping fills groups in declaration order. An issue lands in every
// group it shares a label with; the catch-all group takes issues that share
// no label with any group. Empty groups are dropped.
func groupByMapping(issues []Issue, groups []LabelGroup, r IssueRenderer) []Section {
	named := make(map[string]bool)
	for _, g := range groups {
		for _, l := range g.Labels {
			if l != CatchAllLabel {
				named[l] = true
			}
		}
	}

	var sections []Section
	for _, g := range groups {
		var lines []string
		for _, issue := range issues {
			if intersects(issue.Labels, g.Labels) || (g.IsCatchAll() && !intersectsSet(issue.Labels, named)) {
				lines = append(lines, r.Render(issue))
			}
		}
		if len(lines) == 0 {
			continue
		}
		sections = append(sections, Section{Heading: g.Name, BodyLines: lines})
	}
	return sections
}

// RenderSections renders sections to text. Sections with a heading start
// with the group template.
func RenderSections(sections []Section, tpl template.Set) string {
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		body := strings.Join(s.BodyLines, "\n")
		if s.Heading != "" {
			body = tpl.RenderGroup(s.Heading) + "\n" + body
		}
		parts = append(parts, body)
	}
	return strings.Join(parts, "\n")
}

func intersects(labels, groupLabels []string) bool {
	for _, l := range labels {
		if l != CatchAllLabel && containsString(groupLabels, l) {
			return true
		}
	}
	return false
}

func intersectsSet(labels []string, set map[string]bool) bool {
	for _, l := range labels {
		if set[l] {
			return true
		}
	}
	return false
}
