// Package github adapts the GitHub REST API to the notes.Client interface.
package github

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	gh "github.com/google/go-github/v68/github"

	"github.com/ariel-frischer/relnotes/internal/notes"
)

// DefaultAPIURL is the public GitHub API endpoint.
const DefaultAPIURL = "https://api.github.com"

const perPage = 100

// debugLog is an optional debug logging function, set by the CLI.
var debugLog func(format string, args ...any)

// SetDebugLogger sets the debug logging function for API calls.
func SetDebugLogger(fn func(format string, args ...any)) {
	debugLog = fn
}

func logDebug(format string, args ...any) {
	if debugLog != nil {
		debugLog(format, args...)
	}
}

// Options configure a Client.
type Options struct {
	Token string
	Owner string
	Repo  string
	// APIURL selects a GitHub Enterprise endpoint. Empty or DefaultAPIURL
	// uses github.com.
	APIURL string
	// HTTPClient overrides the transport, mainly for tests.
	HTTPClient *http.Client
	UserAgent  string
}

// Client reads and writes one repository through the GitHub API.
type Client struct {
	api   *gh.Client
	owner string
	repo  string
}

var _ notes.Client = (*Client)(nil)

// NewClient creates a Client for opts.Owner/opts.Repo.
func NewClient(opts Options) (*Client, error) {
	if opts.Owner == "" || opts.Repo == "" {
		return nil, fmt.Errorf("owner and repository are required")
	}

	api, err := newAPI(opts)
	if err != nil {
		return nil, err
	}
	return &Client{api: api, owner: opts.Owner, repo: opts.Repo}, nil
}

func newAPI(opts Options) (*gh.Client, error) {
	api := gh.NewClient(opts.HTTPClient)
	if opts.Token != "" {
		api = api.WithAuthToken(opts.Token)
	}
	if opts.UserAgent != "" {
		api.UserAgent = opts.UserAgent
	}

	if apiURL := strings.TrimRight(opts.APIURL, "/"); apiURL != "" && apiURL != DefaultAPIURL {
		var err error
		api, err = api.WithEnterpriseURLs(apiURL, apiURL)
		if err != nil {
			return nil, fmt.Errorf("invalid api url %q: %w", opts.APIURL, err)
		}
	}
	return api, nil
}

// Repository returns "owner/repo".
func (c *Client) Repository() string {
	return c.owner + "/" + c.repo
}

// paginate collects every page returned by fetch.
func paginate[T any](fetch func(opts gh.ListOptions) ([]T, *gh.Response, error)) ([]T, error) {
	var all []T
	opts := gh.ListOptions{PerPage: perPage}
	for {
		items, resp, err := fetch(opts)
		if err != nil {
			return nil, err
		}
		all = append(all, items...)
		if resp == nil || resp.NextPage == 0 {
			return all, nil
		}
		opts.Page = resp.NextPage
	}
}

// ListTags returns the repository tags, newest first as GitHub orders them.
func (c *Client) ListTags(ctx context.Context) ([]notes.Tag, error) {
	raw, err := paginate(func(opts gh.ListOptions) ([]*gh.RepositoryTag, *gh.Response, error) {
		return c.api.Repositories.ListTags(ctx, c.owner, c.repo, &opts)
	})
	if err != nil {
		return nil, err
	}

	tags := make([]notes.Tag, 0, len(raw))
	for _, t := range raw {
		tags = append(tags, notes.Tag{Name: t.GetName(), CommitSHA: t.GetCommit().GetSHA()})
	}
	logDebug("[github] %s: %d tag(s)", c.Repository(), len(tags))
	return tags, nil
}

// ListReleases returns every release, drafts included.
func (c *Client) ListReleases(ctx context.Context) ([]notes.ReleaseRecord, error) {
	raw, err := paginate(func(opts gh.ListOptions) ([]*gh.RepositoryRelease, *gh.Response, error) {
		return c.api.Repositories.ListReleases(ctx, c.owner, c.repo, &opts)
	})
	if err != nil {
		return nil, err
	}

	releases := make([]notes.ReleaseRecord, 0, len(raw))
	for _, r := range raw {
		releases = append(releases, toReleaseRecord(r))
	}
	logDebug("[github] %s: %d release(s)", c.Repository(), len(releases))
	return releases, nil
}

// GetCommitDate returns the committer date of sha, falling back to the
// author date.
func (c *Client) GetCommitDate(ctx context.Context, sha string) (time.Time, error) {
	commit, _, err := c.api.Repositories.GetCommit(ctx, c.owner, c.repo, sha, nil)
	if err != nil {
		return time.Time{}, err
	}
	return commitDate(commit.GetCommit()), nil
}

// ListCommits returns the commits dated within [since, until], newest first.
func (c *Client) ListCommits(ctx context.Context, since, until time.Time) ([]notes.Commit, error) {
	raw, err := paginate(func(opts gh.ListOptions) ([]*gh.RepositoryCommit, *gh.Response, error) {
		return c.api.Repositories.ListCommits(ctx, c.owner, c.repo, &gh.CommitsListOptions{
			Since:       since,
			Until:       until,
			ListOptions: opts,
		})
	})
	if err != nil {
		return nil, err
	}

	commits := make([]notes.Commit, 0, len(raw))
	for _, rc := range raw {
		detail := rc.GetCommit()
		author := rc.GetAuthor().GetLogin()
		if author == "" {
			author = detail.GetAuthor().GetName()
		}
		commits = append(commits, notes.Commit{
			SHA:        rc.GetSHA(),
			Message:    detail.GetMessage(),
			URL:        rc.GetHTMLURL(),
			Author:     author,
			AuthorName: detail.GetAuthor().GetName(),
			Date:       commitDate(detail),
		})
	}
	return commits, nil
}

// ListIssues returns issues and pull requests matching query.
func (c *Client) ListIssues(ctx context.Context, query notes.IssueQuery) ([]notes.Issue, error) {
	state := query.State
	if state == "" {
		state = "closed"
	}

	raw, err := paginate(func(opts gh.ListOptions) ([]*gh.Issue, *gh.Response, error) {
		return c.api.Issues.ListByRepo(ctx, c.owner, c.repo, &gh.IssueListByRepoOptions{
			State:       state,
			Since:       query.Since,
			ListOptions: opts,
		})
	})
	if err != nil {
		return nil, err
	}

	issues := make([]notes.Issue, 0, len(raw))
	for _, i := range raw {
		issues = append(issues, toIssue(i))
	}
	logDebug("[github] %s: %d %s issue(s) since %s", c.Repository(), len(issues), state, query.Since.Format(time.RFC3339))
	return issues, nil
}

// CreateRelease creates a release for opts.TagName.
func (c *Client) CreateRelease(ctx context.Context, opts notes.ReleaseOptions) (notes.ReleaseRecord, error) {
	rel, _, err := c.api.Repositories.CreateRelease(ctx, c.owner, c.repo, toRepositoryRelease(opts))
	if err != nil {
		return notes.ReleaseRecord{}, err
	}
	return toReleaseRecord(rel), nil
}

// UpdateRelease replaces the release with the given id.
func (c *Client) UpdateRelease(ctx context.Context, id int64, opts notes.ReleaseOptions) (notes.ReleaseRecord, error) {
	rel, _, err := c.api.Repositories.EditRelease(ctx, c.owner, c.repo, id, toRepositoryRelease(opts))
	if err != nil {
		return notes.ReleaseRecord{}, err
	}
	return toReleaseRecord(rel), nil
}

func commitDate(commit *gh.Commit) time.Time {
	if date := commit.GetCommitter().GetDate(); !date.IsZero() {
		return date.Time
	}
	return commit.GetAuthor().GetDate().Time
}

func toReleaseRecord(r *gh.RepositoryRelease) notes.ReleaseRecord {
	return notes.ReleaseRecord{
		ID:          gh.Ptr(r.GetID()),
		TagName:     r.GetTagName(),
		Name:        r.GetName(),
		Body:        r.GetBody(),
		Draft:       r.GetDraft(),
		Prerelease:  r.GetPrerelease(),
		PublishedAt: r.GetPublishedAt().Time,
	}
}

func toRepositoryRelease(opts notes.ReleaseOptions) *gh.RepositoryRelease {
	return &gh.RepositoryRelease{
		TagName:    gh.Ptr(opts.TagName),
		Name:       gh.Ptr(opts.Name),
		Body:       gh.Ptr(opts.Body),
		Draft:      gh.Ptr(opts.Draft),
		Prerelease: gh.Ptr(opts.Prerelease),
	}
}

func toIssue(i *gh.Issue) notes.Issue {
	labels := make([]string, 0, len(i.Labels))
	for _, l := range i.Labels {
		labels = append(labels, l.GetName())
	}
	return notes.Issue{
		Number:        i.GetNumber(),
		Title:         i.GetTitle(),
		URL:           i.GetHTMLURL(),
		Body:          i.GetBody(),
		Labels:        labels,
		Milestone:     i.GetMilestone().GetTitle(),
		ClosedAt:      i.GetClosedAt().Time,
		IsPullRequest: i.IsPullRequest(),
		UserLogin:     i.GetUser().GetLogin(),
		UserURL:       i.GetUser().GetHTMLURL(),
	}
}
