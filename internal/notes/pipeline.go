package notes

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	clierrors "github.com/ariel-frischer/relnotes/internal/errors"
)

// Stage names reported to PipelineOptions.OnStage.
const (
	StageReleases = "Fetching releases"
	StageTags     = "Fetching tags"
	StageDates    = "Resolving tag dates"
	StageBlocks   = "Building release blocks"
)

// PipelineOptions configure which tags are processed and how blocks are built.
type PipelineOptions struct {
	// Tags lists requested tag names, or contains "all". Empty selects the
	// two most recent tags.
	Tags           []string
	IgnoreTagsWith []string
	Synth          Options
	// OnStage, when set, is called as each stage starts.
	OnStage func(stage string)
}

// Pipeline runs the stages that turn repository metadata into blocks.
type Pipeline struct {
	src  Source
	opts PipelineOptions
}

// NewPipeline creates a Pipeline reading from src.
func NewPipeline(src Source, opts PipelineOptions) *Pipeline {
	return &Pipeline{src: src, opts: opts}
}

// Result is the output of a pipeline run.
type Result struct {
	Releases []ReleaseRecord
	Tags     []TaggedRelease
	Ranges   []Range
	Blocks   []Block
}

// Run executes the pipeline: list releases, list and select tags, resolve
// tag dates, build ranges and synthesize one block per range.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	p.stage(StageReleases)
	releases, err := p.src.ListReleases(ctx)
	if err != nil {
		return nil, clierrors.ExternalAPI("listing releases", err)
	}

	p.stage(StageTags)
	allTags, err := p.src.ListTags(ctx)
	if err != nil {
		return nil, clierrors.ExternalAPI("listing tags", err)
	}
	allTags = FilterTags(allTags, p.opts.IgnoreTagsWith)

	selected, explicit := SelectTags(p.opts.Tags, allTags)
	if !explicit {
		selected = LatestTags(allTags)
	}
	logDebug("[notes] selected %d of %d tag(s)", len(selected), len(allTags))

	paired := PairReleases(selected, releases)

	p.stage(StageDates)
	points, err := p.resolveDates(ctx, paired)
	if err != nil {
		return nil, err
	}

	ranges := BuildRanges(points)

	p.stage(StageBlocks)
	blocks, err := NewSynthesizer(p.src, p.opts.Synth).Synthesize(ctx, ranges, existingBodies(paired))
	if err != nil {
		return nil, err
	}

	return &Result{
		Releases: releases,
		Tags:     paired,
		Ranges:   ranges,
		Blocks:   blocks,
	}, nil
}

// resolveDates fetches each tag's commit date concurrently. Points keep
// the order of tags.
func (p *Pipeline) resolveDates(ctx context.Context, tags []TaggedRelease) ([]DatedPoint, error) {
	points := make([]DatedPoint, len(tags))

	g, ctx := errgroup.WithContext(ctx)
	for i, tr := range tags {
		g.Go(func() error {
			date, err := p.src.GetCommitDate(ctx, tr.Tag.CommitSHA)
			if err != nil {
				return clierrors.ExternalAPI(fmt.Sprintf("reading commit of tag %s", tr.Tag.Name), err)
			}
			points[i] = DatedPoint{ID: tr.ReleaseID, Name: tr.Tag.Name, Date: date}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return points, nil
}

func (p *Pipeline) stage(name string) {
	logDebug("[notes] stage: %s", name)
	if p.opts.OnStage != nil {
		p.opts.OnStage(name)
	}
}

func existingBodies(tags []TaggedRelease) map[int64]string {
	bodies := make(map[int64]string, len(tags))
	for _, tr := range tags {
		if tr.ReleaseID != nil {
			bodies[*tr.ReleaseID] = tr.Body
		}
	}
	return bodies
}
