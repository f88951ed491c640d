package notes

import (
	"context"
	"time"
)

// Tag is a named pointer to a commit, as listed by the repository API.
type Tag struct {
	Name      string
	CommitSHA string
}

// ReleaseRecord is a release that already exists in the repository.
// ID is nil when no release exists yet for TagName.
type ReleaseRecord struct {
	ID          *int64
	TagName     string
	Name        string
	Body        string
	Draft       bool
	Prerelease  bool
	PublishedAt time.Time
}

// TaggedRelease pairs a selected tag with the id and body of its release, if any.
type TaggedRelease struct {
	Tag       Tag
	ReleaseID *int64
	Body      string
}

// DatedPoint is one endpoint of a Range.
type DatedPoint struct {
	ID   *int64
	Name string
	Date time.Time
}

// Range bounds one release's worth of history. Newer.Date >= Older.Date.
type Range struct {
	Newer DatedPoint
	Older DatedPoint
}

// Block is the synthesized candidate release for one Range.
// ID is the release to update, or nil when the release must be created.
type Block struct {
	ID          *int64
	Release     string
	Name        string
	PublishedAt time.Time
	Body        string
}

// Commit is a commit listed between two range boundaries.
type Commit struct {
	SHA        string
	Message    string
	URL        string
	Author     string
	AuthorName string
	Date       time.Time
}

// Issue is a closed issue (or pull request) listed by the repository API.
type Issue struct {
	Number        int
	Title         string
	URL           string
	Body          string
	Labels        []string
	Milestone     string
	ClosedAt      time.Time
	IsPullRequest bool
	UserLogin     string
	UserURL       string
}

// HasMilestone reports whether the issue is attached to a milestone.
func (i Issue) HasMilestone() bool {
	return i.Milestone != ""
}

// IssueQuery filters the bulk issue listing.
type IssueQuery struct {
	State string
	Since time.Time
}

// ReleaseOptions describe a release to create or update.
type ReleaseOptions struct {
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
}

// Source is the read side of the repository API.
type Source interface {
	ListTags(ctx context.Context) ([]Tag, error)
	ListReleases(ctx context.Context) ([]ReleaseRecord, error)
	GetCommitDate(ctx context.Context, sha string) (time.Time, error)
	ListCommits(ctx context.Context, since, until time.Time) ([]Commit, error)
	ListIssues(ctx context.Context, query IssueQuery) ([]Issue, error)
}

// ReleaseAPI is the write side of the repository API.
type ReleaseAPI interface {
	CreateRelease(ctx context.Context, opts ReleaseOptions) (ReleaseRecord, error)
	UpdateRelease(ctx context.Context, id int64, opts ReleaseOptions) (ReleaseRecord, error)
}

// Client combines both sides; the GitHub client implements it.
type Client interface {
	Source
	ReleaseAPI
}

// DataSource selects where block content comes from.
type DataSource string

const (
	DataSourceIssues     DataSource = "issues"
	DataSourceCommits    DataSource = "commits"
	DataSourceMilestones DataSource = "milestones"
)

// IncludeMessages filters commit messages in commit mode.
type IncludeMessages string

const (
	IncludeCommits IncludeMessages = "commits"
	IncludeMerges  IncludeMessages = "merges"
	IncludeAll     IncludeMessages = "all"
)

// ClassifyMode decides how an issue is matched against a Range.
type ClassifyMode int

const (
	ClassifyByDate ClassifyMode = iota
	ClassifyByMilestone
)

// ClassifyModeFor returns the classification mode used for a data source.
func ClassifyModeFor(ds DataSource) ClassifyMode {
	if ds == DataSourceMilestones {
		return ClassifyByMilestone
	}
	return ClassifyByDate
}

func int64Ptr(v int64) *int64 {
	return &v
}
