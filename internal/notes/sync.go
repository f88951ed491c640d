package notes

import (
	"context"
	"fmt"

	"github.com/Masterminds/semver/v3"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// SyncAction is the outcome of synchronizing one block.
type SyncAction string

const (
	ActionCreated SyncAction = "created"
	ActionUpdated SyncAction = "updated"
	ActionSkipped SyncAction = "skipped"
)

// SyncResult records what happened to one block.
type SyncResult struct {
	Block   Block
	Action  SyncAction
	Release ReleaseRecord
}

// SyncOptions configure release creation.
type SyncOptions struct {
	Override   bool
	Draft      bool
	Prerelease bool
}

// Synchronizer creates or updates one release per block.
type Synchronizer struct {
	api  ReleaseAPI
	opts SyncOptions
	warn func(message string)
}

// NewSynchronizer creates a Synchronizer. Skip warnings are passed to warn;
// a nil func discards them.
func NewSynchronizer(api ReleaseAPI, opts SyncOptions, warn func(message string)) *Synchronizer {
	if warn == nil {
		warn = func(string) {}
	}
	return &Synchronizer{api: api, opts: opts, warn: warn}
}

// Decide returns the action for a block without calling the API.
func (s *Synchronizer) Decide(b Block) SyncAction {
	switch {
	case b.ID == nil:
		return ActionCreated
	case s.opts.Override:
		return ActionUpdated
	default:
		return ActionSkipped
	}
}

// Sync processes blocks in order, one API call at a time. The first failure
// stops the run; the results gathered so far are returned with the error.
func (s *Synchronizer) Sync(ctx context.Context, blocks []Block) ([]SyncResult, error) {
	results := make([]SyncResult, 0, len(blocks))

	for _, b := range blocks {
		result := SyncResult{Block: b, Action: s.Decide(b)}

		switch result.Action {
		case ActionSkipped:
			s.warn(fmt.Sprintf("%s already has a release; use --override to replace it", b.Release))
		case ActionCreated:
			rel, err := s.api.CreateRelease(ctx, s.releaseOptions(b))
			if err != nil {
				return results, clierrors.ExternalAPI(fmt.Sprintf("creating release %s", b.Name), err)
			}
			result.Release = rel
		case ActionUpdated:
			rel, err := s.api.UpdateRelease(ctx, *b.ID, s.releaseOptions(b))
			if err != nil {
				return results, clierrors.ExternalAPI(fmt.Sprintf("updating release %s", b.Name), err)
			}
			result.Release = rel
		}

		logDebug("[notes] %s: %s", b.Release, result.Action)
		results = append(results, result)
	}

	return results, nil
}

func (s *Synchronizer) releaseOptions(b Block) ReleaseOptions {
	return ReleaseOptions{
		TagName:    b.Release,
		Name:       b.Name,
		Body:       b.Body,
		Draft:      s.opts.Draft,
		Prerelease: s.opts.Prerelease || IsPrereleaseTag(b.Release),
	}
}

// IsPrereleaseTag reports whether tag is a semantic version with a
// pre-release part, such as v2.0.0-rc.1.
func IsPrereleaseTag(tag string) bool {
	v, err := semver.NewVersion(tag)
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}
