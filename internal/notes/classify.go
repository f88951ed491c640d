package notes

import (
	"time"

	"github.com/ariel-frischer/relnotes/internal/template"
)

// TagNamePlaceholder is substituted with the range's newer tag name in the
// milestone_match pattern.
const TagNamePlaceholder = "tag_name"

// InRange reports whether date falls inside r. Both bounds are inclusive,
// so an item dated exactly on a boundary belongs to both adjacent ranges.
func InRange(date time.Time, r Range) bool {
	return !date.Before(r.Older.Date) && !date.After(r.Newer.Date)
}

// MilestoneTitle returns the milestone title expected for r.
func MilestoneTitle(r Range, milestoneMatch string) string {
	return template.Render(map[string]string{TagNamePlaceholder: r.Newer.Name}, milestoneMatch)
}

// Classify reports whether issue belongs to r. In date mode the issue's
// close date must fall inside the range; in milestone mode its milestone
// title must equal milestoneMatch rendered for the range, and dates are
// ignored.
func Classify(issue Issue, r Range, mode ClassifyMode, milestoneMatch string) bool {
	if mode == ClassifyByMilestone {
		if !issue.HasMilestone() {
			return false
		}
		return issue.Milestone == MilestoneTitle(r, milestoneMatch)
	}
	return InRange(issue.ClosedAt, r)
}

// IssueFilter holds the range-independent issue pre-filter settings.
type IssueFilter struct {
	DataSource       DataSource
	OnlyMilestones   bool
	IgnoreIssuesWith []string
}

// Keep reports whether issue survives the pre-filter: pull requests,
// issues carrying an ignored label, and (in milestone mode or with
// OnlyMilestones) issues without a milestone are dropped.
func (f IssueFilter) Keep(issue Issue) bool {
	if issue.IsPullRequest {
		return false
	}
	for _, label := range issue.Labels {
		if containsString(f.IgnoreIssuesWith, label) {
			return false
		}
	}
	if (f.DataSource == DataSourceMilestones || f.OnlyMilestones) && !issue.HasMilestone() {
		return false
	}
	return true
}

// FilterIssues applies the pre-filter, keeping input order.
func FilterIssues(issues []Issue, f IssueFilter) []Issue {
	kept := make([]Issue, 0, len(issues))
	for _, issue := range issues {
		if f.Keep(issue) {
			kept = append(kept, issue)
		}
	}
	return kept
}

// IssuesInRange returns the issues that classify into r, keeping input order.
func IssuesInRange(issues []Issue, r Range, mode ClassifyMode, milestoneMatch string) []Issue {
	var matched []Issue
	for _, issue := range issues {
		if Classify(issue, r, mode, milestoneMatch) {
			matched = append(matched, issue)
		}
	}
	return matched
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
