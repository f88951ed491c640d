package cli

import (
	"context"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ariel-frischer/relnotes/internal/build"
	"github.com/ariel-frischer/relnotes/internal/config"
	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
	"github.com/ariel-frischer/relnotes/internal/git"
	"github.com/ariel-frischer/relnotes/internal/github"
	"github.com/ariel-frischer/relnotes/internal/health"
	"github.com/ariel-frischer/relnotes/internal/notes"
	"github.com/ariel-frischer/relnotes/internal/output"
	"github.com/ariel-frischer/relnotes/internal/progress"
)

// newClients builds the API client and network prober for a run.
// Tests replace it with fakes.
var newClients = func(opts github.Options) (notes.Client, health.Prober, error) {
	client, err := github.NewClient(opts)
	if err != nil {
		return nil, nil, err
	}
	prober, err := github.NewProber(opts)
	if err != nil {
		return nil, nil, err
	}
	return client, prober, nil
}

// session holds everything a release or changelog run needs.
type session struct {
	cfg    *config.Configuration
	repo   git.Repository
	apiURL string
	client notes.Client
	prober health.Prober
}

// newSession checks the credentials, resolves the repository from cfg or
// the git remote of dir, and creates the API clients.
func newSession(cfg *config.Configuration, dir string) (*session, error) {
	if cfg.Token == "" {
		return nil, clierrors.MissingCredential()
	}

	repo, err := resolveRepository(cfg, dir)
	if err != nil {
		return nil, err
	}
	apiURL := resolveAPIURL(cfg.APIURL, repo)

	client, prober, err := newClients(github.Options{
		Token:     cfg.Token,
		Owner:     repo.Owner,
		Repo:      repo.Name,
		APIURL:    apiURL,
		UserAgent: build.UserAgent(),
	})
	if err != nil {
		return nil, clierrors.Wrap(err, clierrors.Configuration,
			"Check the api_url setting (e.g. https://github.example.com/api/v3)",
		)
	}

	return &session{
		cfg:    cfg,
		repo:   repo,
		apiURL: apiURL,
		client: client,
		prober: prober,
	}, nil
}

// resolveRepository returns the configured owner/repo, filling whatever is
// missing from the origin remote of the repository at dir.
func resolveRepository(cfg *config.Configuration, dir string) (git.Repository, error) {
	if cfg.Username != "" && cfg.Repo != "" {
		return git.Repository{Owner: cfg.Username, Name: cfg.Repo}, nil
	}

	repo, err := git.ResolveRepository(dir)
	if err != nil {
		return git.Repository{}, clierrors.RepositoryNotResolved(err)
	}
	if cfg.Username != "" {
		repo.Owner = cfg.Username
	}
	if cfg.Repo != "" {
		repo.Name = cfg.Repo
	}
	return repo, nil
}

// resolveAPIURL points a default API URL at the enterprise host of a remote
// that is not on github.com.
func resolveAPIURL(configured string, repo git.Repository) string {
	if strings.TrimRight(configured, "/") != github.DefaultAPIURL || repo.Host == "" || repo.IsGitHubCom() {
		return configured
	}
	return "https://" + repo.Host + "/api/v3"
}

// warnIfOffline prints a warning when the API does not answer. The run
// continues either way.
func (s *session) warnIfOffline(ctx context.Context, errOut io.Writer) {
	err := health.ProbeNetwork(ctx, s.prober, s.apiURL, health.DefaultTimeout)
	if err == nil {
		return
	}
	if cliErr := clierrors.AsCLIError(err); cliErr != nil {
		clierrors.FprintWarning(errOut, cliErr)
		return
	}
	output.PrintWarning(errOut, err.Error())
}

// runPipeline builds the release blocks, reporting stages to progressOut.
func (s *session) runPipeline(ctx context.Context, opts notes.PipelineOptions, progressOut io.Writer) (*notes.Result, error) {
	display := progress.NewDisplay(progressOut, progress.CapabilitiesOf(progressOut))
	opts.OnStage = display.Stage

	result, err := notes.NewPipeline(s.client, opts).Run(ctx)
	if err != nil {
		display.Fail()
		return nil, err
	}
	display.Done()
	return result, nil
}

// commandContext returns the command's context, or a background context
// when the command was not started through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
