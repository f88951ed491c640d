package notes_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/template"
	"github.com/ariel-frischer/relnotes/internal/testutil"
)

var commitTemplates = template.Set{Commit: "* {{message}} ({{author}})"}

func twoTagRanges(newerID *int64) []notes.Range {
	return notes.BuildRanges([]notes.DatedPoint{
		{ID: newerID, Name: "v2.0.0", Date: testutil.Date(2024, time.March, 10)},
		{Name: "v1.0.0", Date: testutil.Date(2024, time.March, 1)},
	})
}

func TestSynthesize_CommitMode(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeClient()
	fake.Commits = []notes.Commit{
		{Message: "fix: a", Author: "ann", Date: testutil.Date(2024, time.March, 9)},
		{Message: "merge: b", Author: "bob", Date: testutil.Date(2024, time.March, 6)},
		{Message: "feat: c\n\nlong description", Author: "cat", Date: testutil.Date(2024, time.March, 3)},
	}

	s := notes.NewSynthesizer(fake, notes.Options{
		DataSource:      notes.DataSourceCommits,
		IncludeMessages: notes.IncludeCommits,
		Templates:       commitTemplates,
	})

	blocks, err := s.Synthesize(context.Background(), twoTagRanges(nil), nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "* fix: a (ann)", blocks[0].Body)
	assert.Equal(t, "v2.0.0", blocks[0].Release)
	assert.Nil(t, blocks[0].ID)
	assert.Len(t, fake.CallsTo("ListCommits"), 1)
	assert.Empty(t, fake.CallsTo("ListIssues"))
}

func TestCommitBody(t *testing.T) {
	t.Parallel()

	commits := []notes.Commit{
		{Message: "Merge pull request #4"},
		{Message: "feat: add export\n\nDetails"},
		{Message: "chore: [skip ci] bump"},
		{Message: "fix: typo"},
		{Message: "initial"},
	}

	tests := map[string]struct {
		include notes.IncludeMessages
		ignore  []string
		want    string
	}{
		"commits only": {
			include: notes.IncludeCommits,
			want:    "* feat: add export ()\n* chore: [skip ci] bump ()\n* fix: typo ()",
		},
		"merges only": {
			include: notes.IncludeMerges,
			want:    "* Merge pull request #4 ()",
		},
		"all": {
			include: notes.IncludeAll,
			want:    "* Merge pull request #4 ()\n* feat: add export ()\n* chore: [skip ci] bump ()\n* fix: typo ()",
		},
		"ignore substring": {
			include: notes.IncludeAll,
			ignore:  []string{"[skip ci]", "Merge"},
			want:    "* feat: add export ()\n* fix: typo ()",
		},
		"unknown mode acts like commits": {
			include: notes.IncludeMessages("bogus"),
			want:    "* feat: add export ()\n* chore: [skip ci] bump ()\n* fix: typo ()",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			s := notes.NewSynthesizer(testutil.NewFakeClient(), notes.Options{
				DataSource:        notes.DataSourceCommits,
				IncludeMessages:   tt.include,
				IgnoreCommitsWith: tt.ignore,
				Templates:         commitTemplates,
			})
			assert.Equal(t, tt.want, s.CommitBody(commits))
		})
	}
}

func TestCommitBody_SingleCommitYieldsEmptyBody(t *testing.T) {
	t.Parallel()

	s := notes.NewSynthesizer(testutil.NewFakeClient(), notes.Options{DataSource: notes.DataSourceCommits})
	assert.Empty(t, s.CommitBody([]notes.Commit{{Message: "only one"}}))
	assert.Empty(t, s.CommitBody(nil))
}

func TestSynthesize_IssueMode(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeClient()
	fake.Issues = []notes.Issue{
		{Number: 1, Title: "in range", Labels: []string{"bug"}, ClosedAt: testutil.Date(2024, time.March, 5)},
		{Number: 2, Title: "too new", ClosedAt: testutil.Date(2024, time.March, 20)},
		{Number: 3, Title: "a pull", IsPullRequest: true, ClosedAt: testutil.Date(2024, time.March, 5)},
		{Number: 4, Title: "on boundary", ClosedAt: testutil.Date(2024, time.March, 10)},
	}

	s := notes.NewSynthesizer(fake, notes.Options{
		DataSource: notes.DataSourceIssues,
		Templates:  template.Set{Issue: "{{text}} {{name}} {{labels}}", Label: "<{{label}}>", NoLabel: "closed"},
	})

	blocks, err := s.Synthesize(context.Background(), twoTagRanges(nil), nil)
	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, "#1 in range <bug>\n#4 on boundary <closed>", blocks[0].Body)

	calls := fake.CallsTo("ListIssues")
	require.Len(t, calls, 1)
	assert.Equal(t, []string{"closed", "2024-03-01T00:00:00Z"}, calls[0].Args)
}

func TestSynthesize_IssueModeWithoutIssues(t *testing.T) {
	t.Parallel()

	s := notes.NewSynthesizer(testutil.NewFakeClient(), notes.Options{})
	blocks, err := s.Synthesize(context.Background(), twoTagRanges(nil), nil)

	require.NoError(t, err)
	require.Len(t, blocks, 1)
	assert.Equal(t, notes.EmptyReleaseBody, blocks[0].Body)
}

func TestSynthesize_MilestoneMode(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeClient()
	fake.Issues = []notes.Issue{
		{Number: 1, Title: "planned", Milestone: "Sprint v2.0.0", ClosedAt: testutil.Date(2024, time.March, 30)},
		{Number: 2, Title: "other sprint", Milestone: "Sprint v1.0.0", ClosedAt: testutil.Date(2024, time.March, 5)},
		{Number: 3, Title: "no milestone", ClosedAt: testutil.Date(2024, time.March, 5)},
	}

	s := notes.NewSynthesizer(fake, notes.Options{
		DataSource:     notes.DataSourceMilestones,
		MilestoneMatch: "Sprint {{tag_name}}",
		Templates:      template.Set{Issue: "{{name}}"},
	})

	blocks, err := s.Synthesize(context.Background(), twoTagRanges(nil), nil)
	require.NoError(t, err)
	assert.Equal(t, "planned", blocks[0].Body)
}

func TestSynthesize_ExistingBody(t *testing.T) {
	t.Parallel()

	id := int64(5)

	tests := map[string]struct {
		override     bool
		existing     map[int64]string
		wantBody     string
		wantListings int
	}{
		"kept without override": {
			existing:     map[int64]string{5: "hand written"},
			wantBody:     "hand written",
			wantListings: 0,
		},
		"replaced with override": {
			override:     true,
			existing:     map[int64]string{5: "hand written"},
			wantBody:     notes.EmptyReleaseBody,
			wantListings: 1,
		},
		"blank body is regenerated": {
			existing:     map[int64]string{5: "  \n"},
			wantBody:     notes.EmptyReleaseBody,
			wantListings: 1,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fake := testutil.NewFakeClient()
			s := notes.NewSynthesizer(fake, notes.Options{Override: tt.override})

			blocks, err := s.Synthesize(context.Background(), twoTagRanges(&id), tt.existing)
			require.NoError(t, err)
			require.Len(t, blocks, 1)
			assert.Equal(t, tt.wantBody, blocks[0].Body)
			assert.Equal(t, &id, blocks[0].ID)
			assert.Len(t, fake.CallsTo("ListIssues"), tt.wantListings)
		})
	}
}

func TestSynthesize_Prefix(t *testing.T) {
	t.Parallel()

	s := notes.NewSynthesizer(testutil.NewFakeClient(), notes.Options{Prefix: "Release "})
	blocks, err := s.Synthesize(context.Background(), twoTagRanges(nil), nil)

	require.NoError(t, err)
	assert.Equal(t, "Release v2.0.0", blocks[0].Name)
	assert.Equal(t, "v2.0.0", blocks[0].Release)
}

func TestSynthesize_NoRanges(t *testing.T) {
	t.Parallel()

	fake := testutil.NewFakeClient()
	blocks, err := notes.NewSynthesizer(fake, notes.Options{}).Synthesize(context.Background(), nil, nil)

	require.NoError(t, err)
	assert.Empty(t, blocks)
	assert.Empty(t, fake.Calls())
}

func TestSynthesize_ListingFailure(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		source notes.DataSource
		method string
	}{
		"commits": {source: notes.DataSourceCommits, method: "ListCommits"},
		"issues":  {source: notes.DataSourceIssues, method: "ListIssues"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			fake := testutil.NewFakeClient()
			fake.Errors[tt.method] = errors.New("boom")

			_, err := notes.NewSynthesizer(fake, notes.Options{DataSource: tt.source}).
				Synthesize(context.Background(), twoTagRanges(nil), nil)
			require.Error(t, err)
			assert.ErrorIs(t, err, clierrors.ErrExternalAPI)
		})
	}
}
