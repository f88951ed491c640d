package notes

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/template"
)

// EmptyReleaseBody is used when no issue qualifies for a range.
const EmptyReleaseBody = "*No changelog for this release.*"

// Options configure block synthesis.
type Options struct {
	DataSource        DataSource
	IncludeMessages   IncludeMessages
	IgnoreCommitsWith []string
	OnlyMilestones    bool
	MilestoneMatch    string
	IgnoreLabels      []string
	IgnoreIssuesWith  []string
	GroupBy           GroupSpec
	Prefix            string
	Override          bool
	Templates         template.Set
}

// Synthesizer turns ranges into blocks, pulling commits or issues from src.
type Synthesizer struct {
	src  Source
	opts Options
}

// NewSynthesizer creates a Synthesizer. Empty templates are defaulted.
func NewSynthesizer(src Source, opts Options) *Synthesizer {
	opts.Templates = opts.Templates.WithDefaults()
	if opts.DataSource == "" {
		opts.DataSource = DataSourceIssues
	}
	return &Synthesizer{src: src, opts: opts}
}

// Synthesize returns one block per range, in range order. existingBodies
// maps release ids to the body of that release; in issue and milestone mode
// a range whose release already has a body keeps it unless Override is set.
func (s *Synthesizer) Synthesize(ctx context.Context, ranges []Range, existingBodies map[int64]string) ([]Block, error) {
	if len(ranges) == 0 {
		return []Block{}, nil
	}

	var (
		bodies []string
		err    error
	)
	if s.opts.DataSource == DataSourceCommits {
		bodies, err = s.commitBodies(ctx, ranges)
	} else {
		bodies, err = s.issueBodies(ctx, ranges, existingBodies)
	}
	if err != nil {
		return nil, err
	}

	blocks := make([]Block, len(ranges))
	for i, r := range ranges {
		blocks[i] = Block{
			ID:          r.Newer.ID,
			Release:     r.Newer.Name,
			Name:        s.opts.Prefix + r.Newer.Name,
			PublishedAt: r.Newer.Date,
			Body:        bodies[i],
		}
	}
	return blocks, nil
}

// commitBodies lists commits for every range concurrently. Results are
// stored by range index.
func (s *Synthesizer) commitBodies(ctx context.Context, ranges []Range) ([]string, error) {
	bodies := make([]string, len(ranges))

	g, ctx := errgroup.WithContext(ctx)
	for i, r := range ranges {
		g.Go(func() error {
			commits, err := s.src.ListCommits(ctx, r.Older.Date, r.Newer.Date)
			if err != nil {
				return clierrors.ExternalAPI(fmt.Sprintf("listing commits for %s", r.Newer.Name), err)
			}
			logDebug("[notes] %s: %d commit(s)", r.Newer.Name, len(commits))
			bodies[i] = s.CommitBody(commits)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return bodies, nil
}

// CommitBody renders the commit part of a block. The last listed commit
// belongs to the previous release (the since bound is inclusive) and is
// dropped; the rest are filtered and rendered newest first.
func (s *Synthesizer) CommitBody(commits []Commit) string {
	if len(commits) == 0 {
		return ""
	}

	lines := make([]string, 0, len(commits)-1)
	for _, c := range commits[:len(commits)-1] {
		message := firstLine(c.Message)
		if !IncludeMessage(message, s.opts.IncludeMessages) || containsAny(message, s.opts.IgnoreCommitsWith) {
			continue
		}
		lines = append(lines, s.opts.Templates.RenderCommit(template.CommitFields{
			Message: message,
			URL:     c.URL,
			Author:  c.Author,
			Name:    c.AuthorName,
		}))
	}
	return strings.Join(lines, "\n")
}

// IncludeMessage applies the include_messages filter. Unrecognized modes
// behave like "commits".
func IncludeMessage(message string, mode IncludeMessages) bool {
	isMerge := strings.HasPrefix(strings.ToLower(strings.TrimSpace(message)), "merge")
	switch mode {
	case IncludeAll:
		return true
	case IncludeMerges:
		return isMerge
	default:
		return !isMerge
	}
}

// issueBodies lists closed issues once, since the oldest range start, then
// classifies them into each range in memory.
func (s *Synthesizer) issueBodies(ctx context.Context, ranges []Range, existingBodies map[int64]string) ([]string, error) {
	bodies := make([]string, len(ranges))

	pending := make([]int, 0, len(ranges))
	for i, r := range ranges {
		if body, ok := s.existingBody(r, existingBodies); ok {
			logDebug("[notes] %s: keeping existing release body", r.Newer.Name)
			bodies[i] = body
			continue
		}
		pending = append(pending, i)
	}
	if len(pending) == 0 {
		return bodies, nil
	}

	issues, err := s.src.ListIssues(ctx, IssueQuery{State: "closed", Since: OldestDate(ranges)})
	if err != nil {
		return nil, clierrors.ExternalAPI("listing closed issues", err)
	}
	issues = FilterIssues(issues, IssueFilter{
		DataSource:       s.opts.DataSource,
		OnlyMilestones:   s.opts.OnlyMilestones,
		IgnoreIssuesWith: s.opts.IgnoreIssuesWith,
	})
	logDebug("[notes] %d issue(s) after filtering", len(issues))

	mode := ClassifyModeFor(s.opts.DataSource)
	renderer := IssueRenderer{Templates: s.opts.Templates, IgnoreLabels: s.opts.IgnoreLabels}
	for _, i := range pending {
		bodies[i] = s.IssueBody(IssuesInRange(issues, ranges[i], mode, s.opts.MilestoneMatch), renderer)
	}
	return bodies, nil
}

// IssueBody groups and renders the issues of one range.
func (s *Synthesizer) IssueBody(issues []Issue, renderer IssueRenderer) string {
	if len(issues) == 0 {
		return EmptyReleaseBody
	}
	return RenderSections(Group(issues, s.opts.GroupBy, renderer), s.opts.Templates)
}

func (s *Synthesizer) existingBody(r Range, existingBodies map[int64]string) (string, bool) {
	if s.opts.Override || r.Newer.ID == nil {
		return "", false
	}
	body, ok := existingBodies[*r.Newer.ID]
	if !ok || strings.TrimSpace(body) == "" {
		return "", false
	}
	return body, true
}

func firstLine(message string) string {
	if i := strings.IndexByte(message, '\n'); i >= 0 {
		return strings.TrimRight(message[:i], "\r")
	}
	return message
}
