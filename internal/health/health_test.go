package health

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

type fakeProber struct {
	pingErr error
	login   string
	authErr error
	pinged  int
	authed  int
}

func (f *fakeProber) Ping(context.Context) error {
	f.pinged++
	return f.pingErr
}

func (f *fakeProber) AuthenticatedUser(context.Context) (string, error) {
	f.authed++
	return f.login, f.authErr
}

func initRepoWithOrigin(t *testing.T, url string) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	_, err = repo.CreateRemote(&gitconfig.RemoteConfig{Name: "origin", URLs: []string{url}})
	require.NoError(t, err)
	return dir
}

func TestCheckToken(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		token  string
		passed bool
	}{
		"set":        {token: "ghp_x", passed: true},
		"empty":      {token: "", passed: false},
		"whitespace": {token: "  ", passed: false},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			result := CheckToken(tt.token)
			assert.Equal(t, "GitHub token", result.Name)
			assert.Equal(t, tt.passed, result.Passed)
			assert.NotContains(t, result.Message, "ghp_x")
		})
	}
}

func TestCheckRepository(t *testing.T) {
	t.Parallel()

	t.Run("configured", func(t *testing.T) {
		t.Parallel()
		result := CheckRepository(t.TempDir(), "acme", "widgets")
		assert.True(t, result.Passed)
		assert.Equal(t, SourceConfig, result.Source)
		assert.Equal(t, "acme/widgets", result.Message)
	})

	t.Run("from remote", func(t *testing.T) {
		t.Parallel()
		dir := initRepoWithOrigin(t, "git@github.com:acme/widgets.git")
		result := CheckRepository(dir, "", "")
		assert.True(t, result.Passed)
		assert.Equal(t, SourceRemote, result.Source)
		assert.Equal(t, "acme/widgets (from origin remote)", result.Message)
	})

	t.Run("enterprise remote names host", func(t *testing.T) {
		t.Parallel()
		dir := initRepoWithOrigin(t, "https://ghe.example.com/acme/widgets.git")
		result := CheckRepository(dir, "", "")
		assert.True(t, result.Passed)
		assert.Contains(t, result.Message, "ghe.example.com")
	})

	t.Run("not a repository", func(t *testing.T) {
		t.Parallel()
		result := CheckRepository(t.TempDir(), "", "")
		assert.False(t, result.Passed)
		assert.Contains(t, result.Message, "cannot resolve repository")
	})
}

func TestCheckNetwork(t *testing.T) {
	t.Parallel()

	ok := CheckNetwork(context.Background(), &fakeProber{}, "https://api.github.com", time.Second)
	assert.True(t, ok.Passed)
	assert.Equal(t, "https://api.github.com reachable", ok.Message)

	failed := CheckNetwork(context.Background(), &fakeProber{pingErr: errors.New("dial tcp: timeout")}, "https://api.github.com", time.Second)
	assert.False(t, failed.Passed)
	assert.Contains(t, failed.Message, "cannot reach https://api.github.com")
}

func TestProbeNetwork(t *testing.T) {
	t.Parallel()

	require.NoError(t, ProbeNetwork(context.Background(), &fakeProber{}, "https://api.github.com", 0))

	cause := errors.New("no route to host")
	err := ProbeNetwork(context.Background(), &fakeProber{pingErr: cause}, "https://api.github.com", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, clierrors.ErrNetworkUnavailable))
	assert.True(t, errors.Is(err, cause))
}

func TestCheckAuthentication(t *testing.T) {
	t.Parallel()

	ok := CheckAuthentication(context.Background(), &fakeProber{login: "octocat"}, 0)
	assert.True(t, ok.Passed)
	assert.Equal(t, "authenticated as octocat", ok.Message)

	rejected := CheckAuthentication(context.Background(), &fakeProber{authErr: errors.New("401 Bad credentials")}, 0)
	assert.False(t, rejected.Passed)
	assert.Contains(t, rejected.Message, "Bad credentials")
}

func TestRunHealthChecks(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		opts       func(p Prober) Options
		prober     *fakeProber
		wantPassed bool
		wantAuthed int
		wantNames  []string
	}{
		"all pass": {
			opts: func(p Prober) Options {
				return Options{Token: "t", Owner: "acme", Repo: "widgets", APIURL: "https://api.github.com", Prober: p}
			},
			prober:     &fakeProber{login: "octocat"},
			wantPassed: true,
			wantAuthed: 1,
			wantNames:  []string{"GitHub token", "Repository", "Network", "Authentication"},
		},
		"missing token skips authentication": {
			opts: func(p Prober) Options {
				return Options{Owner: "acme", Repo: "widgets", APIURL: "https://api.github.com", Prober: p}
			},
			prober:     &fakeProber{},
			wantPassed: false,
			wantAuthed: 0,
			wantNames:  []string{"GitHub token", "Repository", "Network", "Authentication"},
		},
		"network down skips authentication": {
			opts: func(p Prober) Options {
				return Options{Token: "t", Owner: "acme", Repo: "widgets", APIURL: "https://api.github.com", Prober: p}
			},
			prober:     &fakeProber{pingErr: errors.New("offline")},
			wantPassed: false,
			wantAuthed: 0,
			wantNames:  []string{"GitHub token", "Repository", "Network", "Authentication"},
		},
		"rejected token fails": {
			opts: func(p Prober) Options {
				return Options{Token: "t", Owner: "acme", Repo: "widgets", APIURL: "https://api.github.com", Prober: p}
			},
			prober:     &fakeProber{authErr: errors.New("401")},
			wantPassed: false,
			wantAuthed: 1,
			wantNames:  []string{"GitHub token", "Repository", "Network", "Authentication"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			report := RunHealthChecks(context.Background(), tt.opts(tt.prober))
			require.NotNil(t, report)
			assert.Equal(t, tt.wantPassed, report.Passed)
			assert.Equal(t, 1, tt.prober.pinged)
			assert.Equal(t, tt.wantAuthed, tt.prober.authed)

			names := make([]string, 0, len(report.Checks))
			for _, c := range report.Checks {
				names = append(names, c.Name)
			}
			assert.Equal(t, tt.wantNames, names)
		})
	}
}

// TestFormatReport tests the report formatting.
func TestFormatReport(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		report   *HealthReport
		expected []string
	}{
		"All checks pass": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "GitHub token", Passed: true, Message: "configured"},
					{Name: "Repository", Passed: true, Message: "acme/widgets"},
				},
				Passed: true,
			},
			expected: []string{
				"✓ GitHub token: configured",
				"✓ Repository: acme/widgets",
			},
		},
		"One check fails": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "GitHub token", Passed: false, Message: "not set"},
					{Name: "Repository", Passed: true, Message: "acme/widgets"},
				},
				Passed: false,
			},
			expected: []string{
				"✗ GitHub token: not set",
				"✓ Repository: acme/widgets",
			},
		},
		"Skipped check": {
			report: &HealthReport{
				Checks: []CheckResult{
					{Name: "Authentication", Skipped: true, Message: "skipped"},
				},
			},
			expected: []string{"○ Authentication: skipped"},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			output := FormatReport(tt.report)
			for _, expected := range tt.expected {
				assert.Contains(t, output, expected, "Output should contain: %s", expected)
			}
			assert.Equal(t, len(tt.report.Checks), strings.Count(output, "\n"))
		})
	}
}
