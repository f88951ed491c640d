// Package testutil provides test doubles shared by relnotes tests.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/ariel-frischer/relnotes/internal/notes"
)

// CallRecord is one recorded call to the fake client.
type CallRecord struct {
	Method    string
	Args      []string
	Timestamp time.Time
}

// FakeClient is an in-memory notes.Client. ListCommits answers from Commits
// filtered by date (inclusive on both bounds, newest first), like the
// GitHub since/until parameters. Errors can be injected per method name.
type FakeClient struct {
	Tags        []notes.Tag
	Releases    []notes.ReleaseRecord
	CommitDates map[string]time.Time
	Commits     []notes.Commit
	Issues      []notes.Issue
	// Errors maps a method name (e.g. "CreateRelease") to the error it returns.
	Errors map[string]error
	// NextReleaseID is the id handed to the next created release.
	NextReleaseID int64

	mu    sync.Mutex
	calls []CallRecord
}

// NewFakeClient returns an empty FakeClient.
func NewFakeClient() *FakeClient {
	return &FakeClient{
		CommitDates:   make(map[string]time.Time),
		Errors:        make(map[string]error),
		NextReleaseID: 1000,
	}
}

// AddTag registers a tag whose commit is dated at date. Tags are listed in
// registration order, so register newest first.
func (f *FakeClient) AddTag(name string, date time.Time) {
	sha := fmt.Sprintf("sha-%s", name)
	f.Tags = append(f.Tags, notes.Tag{Name: name, CommitSHA: sha})
	f.CommitDates[sha] = date
}

// AddRelease registers an existing release.
func (f *FakeClient) AddRelease(id int64, tag, body string) {
	f.Releases = append(f.Releases, notes.ReleaseRecord{
		ID:      &id,
		TagName: tag,
		Name:    tag,
		Body:    body,
	})
}

// Calls returns a copy of the recorded calls.
func (f *FakeClient) Calls() []CallRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]CallRecord(nil), f.calls...)
}

// CallsTo returns the recorded calls to method.
func (f *FakeClient) CallsTo(method string) []CallRecord {
	var out []CallRecord
	for _, c := range f.Calls() {
		if c.Method == method {
			out = append(out, c)
		}
	}
	return out
}

func (f *FakeClient) record(method string, args ...string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, CallRecord{Method: method, Args: args, Timestamp: time.Now()})
	return f.Errors[method]
}

// ListTags implements notes.Source.
func (f *FakeClient) ListTags(ctx context.Context) ([]notes.Tag, error) {
	if err := f.record("ListTags"); err != nil {
		return nil, err
	}
	return append([]notes.Tag(nil), f.Tags...), nil
}

// ListReleases implements notes.Source.
func (f *FakeClient) ListReleases(ctx context.Context) ([]notes.ReleaseRecord, error) {
	if err := f.record("ListReleases"); err != nil {
		return nil, err
	}
	return append([]notes.ReleaseRecord(nil), f.Releases...), nil
}

// GetCommitDate implements notes.Source.
func (f *FakeClient) GetCommitDate(ctx context.Context, sha string) (time.Time, error) {
	if err := f.record("GetCommitDate", sha); err != nil {
		return time.Time{}, err
	}
	date, ok := f.CommitDates[sha]
	if !ok {
		return time.Time{}, fmt.Errorf("commit %s not found", sha)
	}
	return date, nil
}

// ListCommits implements notes.Source.
func (f *FakeClient) ListCommits(ctx context.Context, since, until time.Time) ([]notes.Commit, error) {
	if err := f.record("ListCommits", since.Format(time.RFC3339), until.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	var out []notes.Commit
	for _, c := range f.Commits {
		if !c.Date.Before(since) && !c.Date.After(until) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return out, nil
}

// ListIssues implements notes.Source.
func (f *FakeClient) ListIssues(ctx context.Context, query notes.IssueQuery) ([]notes.Issue, error) {
	if err := f.record("ListIssues", query.State, query.Since.Format(time.RFC3339)); err != nil {
		return nil, err
	}
	var out []notes.Issue
	for _, issue := range f.Issues {
		if !issue.ClosedAt.IsZero() && issue.ClosedAt.Before(query.Since) {
			continue
		}
		out = append(out, issue)
	}
	return out, nil
}

// CreateRelease implements notes.ReleaseAPI.
func (f *FakeClient) CreateRelease(ctx context.Context, opts notes.ReleaseOptions) (notes.ReleaseRecord, error) {
	if err := f.record("CreateRelease", opts.TagName, opts.Name); err != nil {
		return notes.ReleaseRecord{}, err
	}
	f.mu.Lock()
	id := f.NextReleaseID
	f.NextReleaseID++
	f.mu.Unlock()
	return notes.ReleaseRecord{
		ID:         &id,
		TagName:    opts.TagName,
		Name:       opts.Name,
		Body:       opts.Body,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
	}, nil
}

// UpdateRelease implements notes.ReleaseAPI.
func (f *FakeClient) UpdateRelease(ctx context.Context, id int64, opts notes.ReleaseOptions) (notes.ReleaseRecord, error) {
	if err := f.record("UpdateRelease", fmt.Sprint(id), opts.TagName, opts.Name); err != nil {
		return notes.ReleaseRecord{}, err
	}
	return notes.ReleaseRecord{
		ID:         &id,
		TagName:    opts.TagName,
		Name:       opts.Name,
		Body:       opts.Body,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
	}, nil
}

// Date returns a UTC date for test fixtures.
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
