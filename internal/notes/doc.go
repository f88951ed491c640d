// Package notes implements the release note block synthesis pipeline.
//
// The pipeline runs in strictly sequential stages:
//   - list releases and tags, select the tags to process and pair each one
//     with its existing release (SelectTags, PairReleases)
//   - resolve each tag's commit date and build adjacent date ranges, newest
//     first (BuildRanges)
//   - fetch commits per range, or issues once for all ranges, classify them
//     into ranges, group and render them (Classify, Group, Synthesizer)
//   - create or update releases (Synchronizer), or hand the blocks to the
//     changelog writer
//
// Per-range fetches run concurrently and are joined by index, so the output
// order never depends on completion order. Release writes are sequential.
package notes
