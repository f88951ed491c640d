package github

import (
	"context"
	"errors"

	gh "github.com/google/go-github/v68/github"
)

// Prober answers reachability and identity questions about the API
// endpoint. Unlike Client it needs no repository.
type Prober struct {
	api *gh.Client
}

// NewProber creates a Prober for the endpoint and token in opts.
// Owner and Repo are ignored.
func NewProber(opts Options) (*Prober, error) {
	api, err := newAPI(opts)
	if err != nil {
		return nil, err
	}
	return &Prober{api: api}, nil
}

// Ping reports whether the API endpoint answers. Any HTTP response counts,
// including error statuses; only transport failures are returned.
func (p *Prober) Ping(ctx context.Context) error {
	_, resp, err := p.api.RateLimit.Get(ctx)
	if err == nil || hasResponse(resp, err) {
		logDebug("ping %s: reachable", p.api.BaseURL)
		return nil
	}
	return err
}

// AuthenticatedUser returns the login the token belongs to.
func (p *Prober) AuthenticatedUser(ctx context.Context) (string, error) {
	user, _, err := p.api.Users.Get(ctx, "")
	if err != nil {
		return "", err
	}
	return user.GetLogin(), nil
}

func hasResponse(resp *gh.Response, err error) bool {
	if resp != nil && resp.Response != nil {
		return true
	}
	var errResp *gh.ErrorResponse
	return errors.As(err, &errResp)
}
