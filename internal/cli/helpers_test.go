package cli

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/relnotes/internal/config"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/testutil"
)

// testConfig loads the defaults plus overrides, ignoring user and project
// config files. Token, owner and repo are preset.
func testConfig(t *testing.T, overrides map[string]interface{}) *config.Configuration {
	t.Helper()

	values := map[string]interface{}{
		"token":    "test-token",
		"username": "octo",
		"repo":     "demo",
	}
	for k, v := range overrides {
		values[k] = v
	}

	cfg, err := config.LoadWithOptions(config.LoadOptions{
		Dir:            t.TempDir(),
		SkipUserConfig: true,
		Overrides:      values,
	})
	require.NoError(t, err)
	return cfg
}

func fakeSession(cfg *config.Configuration, client notes.Client, prober *testutil.FakeProber) *session {
	if prober == nil {
		prober = &testutil.FakeProber{Login: "octocat"}
	}
	return &session{
		cfg:    cfg,
		repo:   git.Repository{Owner: cfg.Username, Name: cfg.Repo},
		apiURL: cfg.APIURL,
		client: client,
		prober: prober,
	}
}

// twoTagRepo returns a fake repository with tags v2.0.0 and v1.0.0 and
// commits between them.
func twoTagRepo() *testutil.FakeClient {
	fake := testutil.NewFakeClient()
	fake.AddTag("v2.0.0", testutil.Date(2024, time.May, 20))
	fake.AddTag("v1.0.0", testutil.Date(2024, time.May, 1))
	fake.Commits = []notes.Commit{
		{Message: "fix: a", URL: "https://example.test/c/1", Author: "ann", Date: testutil.Date(2024, time.May, 18)},
		{Message: "feat: b", URL: "https://example.test/c/2", Author: "bob", Date: testutil.Date(2024, time.May, 10)},
		{Message: "chore: c", Author: "cat", Date: testutil.Date(2024, time.May, 2)},
	}
	return fake
}
