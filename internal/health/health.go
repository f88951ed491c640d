// Package health provides environment health checks for relnotes. It verifies
// that a token is configured, that the target repository can be resolved, and
// that the GitHub API answers, returning structured reports used by the
// 'relnotes doctor' command.
package health

import (
	"context"
	"fmt"
	"strings"
	"time"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
)

// DefaultTimeout bounds each network check.
const DefaultTimeout = 5 * time.Second

// Source values for the repository check indicating where owner/repo came from.
const (
	SourceConfig = "config"
	SourceRemote = "remote"
)

// Prober is the part of the API client the checks use.
type Prober interface {
	Ping(ctx context.Context) error
	AuthenticatedUser(ctx context.Context) (string, error)
}

// CheckResult represents the result of a single health check
type CheckResult struct {
	Name    string
	Passed  bool
	Message string
	// Source indicates where the repository was found for the repository check.
	// Values: "config", "remote", or empty for other checks.
	Source string
	// Skipped marks checks that did not run because an earlier check failed.
	Skipped bool
}

// HealthReport contains all health check results
type HealthReport struct {
	Checks []CheckResult
	Passed bool
}

// Options describe the environment under test.
type Options struct {
	Token string
	// Owner and Repo take precedence over the git remote.
	Owner string
	Repo  string
	// Dir is searched for a git repository (default: working directory).
	Dir    string
	APIURL string
	Prober Prober
	// Timeout bounds each network check (default: DefaultTimeout).
	Timeout time.Duration
}

// RunHealthChecks runs all health checks and returns a report.
// The authentication check only runs when a token is set and the API answers.
func RunHealthChecks(ctx context.Context, opts Options) *HealthReport {
	report := &HealthReport{
		Checks: make([]CheckResult, 0, 4),
		Passed: true,
	}
	add := func(c CheckResult) {
		report.Checks = append(report.Checks, c)
		if !c.Passed && !c.Skipped {
			report.Passed = false
		}
	}

	tokenCheck := CheckToken(opts.Token)
	add(tokenCheck)
	add(CheckRepository(opts.Dir, opts.Owner, opts.Repo))

	networkCheck := CheckNetwork(ctx, opts.Prober, opts.APIURL, opts.Timeout)
	add(networkCheck)

	if tokenCheck.Passed && networkCheck.Passed {
		add(CheckAuthentication(ctx, opts.Prober, opts.Timeout))
	} else {
		add(CheckResult{
			Name:    "Authentication",
			Skipped: true,
			Message: "skipped (requires token and network)",
		})
	}

	return report
}

// CheckToken checks that a GitHub token is configured
func CheckToken(token string) CheckResult {
	if strings.TrimSpace(token) == "" {
		return CheckResult{
			Name:    "GitHub token",
			Passed:  false,
			Message: "not set (use --token, RELNOTES_TOKEN or GITHUB_TOKEN)",
		}
	}

	return CheckResult{
		Name:    "GitHub token",
		Passed:  true,
		Message: "configured",
	}
}

// CheckRepository checks that the target repository can be determined, either
// from configuration or from the git remote in dir.
func CheckRepository(dir, owner, repo string) CheckResult {
	if owner != "" && repo != "" {
		return CheckResult{
			Name:    "Repository",
			Passed:  true,
			Message: owner + "/" + repo,
			Source:  SourceConfig,
		}
	}

	resolved, err := git.ResolveRepository(dir)
	if err != nil {
		return CheckResult{
			Name:    "Repository",
			Passed:  false,
			Message: fmt.Sprintf("cannot resolve repository: %v", err),
		}
	}

	msg := fmt.Sprintf("%s (from %s remote)", resolved, git.DefaultRemote)
	if !resolved.IsGitHubCom() {
		msg = fmt.Sprintf("%s on %s (from %s remote)", resolved, resolved.Host, git.DefaultRemote)
	}
	return CheckResult{
		Name:    "Repository",
		Passed:  true,
		Message: msg,
		Source:  SourceRemote,
	}
}

// CheckNetwork checks that the API endpoint at apiURL answers.
func CheckNetwork(ctx context.Context, p Prober, apiURL string, timeout time.Duration) CheckResult {
	if err := ProbeNetwork(ctx, p, apiURL, timeout); err != nil {
		return CheckResult{
			Name:    "Network",
			Passed:  false,
			Message: err.Error(),
		}
	}

	return CheckResult{
		Name:    "Network",
		Passed:  true,
		Message: apiURL + " reachable",
	}
}

// CheckAuthentication checks that the API accepts the token.
func CheckAuthentication(ctx context.Context, p Prober, timeout time.Duration) CheckResult {
	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(timeout))
	defer cancel()

	login, err := p.AuthenticatedUser(ctx)
	if err != nil {
		return CheckResult{
			Name:    "Authentication",
			Passed:  false,
			Message: fmt.Sprintf("token rejected: %v", err),
		}
	}

	return CheckResult{
		Name:    "Authentication",
		Passed:  true,
		Message: "authenticated as " + login,
	}
}

// ProbeNetwork returns a NetworkUnavailable error when the API endpoint does
// not answer within timeout. Callers outside doctor print it as a warning.
func ProbeNetwork(ctx context.Context, p Prober, apiURL string, timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(ctx, timeoutOrDefault(timeout))
	defer cancel()

	if err := p.Ping(ctx); err != nil {
		return clierrors.NetworkUnavailable(apiURL, err)
	}
	return nil
}

func timeoutOrDefault(d time.Duration) time.Duration {
	if d <= 0 {
		return DefaultTimeout
	}
	return d
}

// FormatReport formats the health report for console output
func FormatReport(report *HealthReport) string {
	var output string

	for _, check := range report.Checks {
		switch {
		case check.Skipped:
			output += fmt.Sprintf("○ %s: %s\n", check.Name, check.Message)
		case check.Passed:
			output += fmt.Sprintf("✓ %s: %s\n", check.Name, check.Message)
		default:
			output += fmt.Sprintf("✗ %s: %s\n", check.Name, check.Message)
		}
	}

	return output
}
