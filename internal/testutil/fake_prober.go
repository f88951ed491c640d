package testutil

import "context"

// FakeProber is an in-memory health.Prober.
type FakeProber struct {
	PingErr error
	Login   string
	AuthErr error
}

// Ping implements health.Prober.
func (p *FakeProber) Ping(ctx context.Context) error {
	return p.PingErr
}

// AuthenticatedUser implements health.Prober.
func (p *FakeProber) AuthenticatedUser(ctx context.Context) (string, error) {
	return p.Login, p.AuthErr
}
