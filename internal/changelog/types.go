package changelog

import (
	"strings"
	"time"

	"github.com/ariel-frischer/relnotes/internal/notes"
)

// Entry is one release section of a changelog file.
type Entry struct {
	Release string
	Date    string
	Body    string
}

// IsEmpty returns true if the entry has no body text.
func (e Entry) IsEmpty() bool {
	return strings.TrimSpace(e.Body) == ""
}

// FromBlocks converts synthesized blocks into entries, keeping block order.
// Dates are formatted with dateFormat, a Go time layout.
func FromBlocks(blocks []notes.Block, dateFormat string) []Entry {
	entries := make([]Entry, 0, len(blocks))
	for _, b := range blocks {
		entries = append(entries, Entry{
			Release: b.Name,
			Date:    formatDate(b.PublishedAt, dateFormat),
			Body:    b.Body,
		})
	}
	return entries
}

// FromReleases converts existing releases into entries, keeping input order.
// Drafts are skipped since they have no publication date. The release name
// falls back to the tag name when empty.
func FromReleases(releases []notes.ReleaseRecord, dateFormat string) []Entry {
	entries := make([]Entry, 0, len(releases))
	for _, r := range releases {
		if r.Draft {
			continue
		}
		name := r.Name
		if name == "" {
			name = r.TagName
		}
		entries = append(entries, Entry{
			Release: name,
			Date:    formatDate(r.PublishedAt, dateFormat),
			Body:    r.Body,
		})
	}
	return entries
}

// formatDate returns "" for the zero time so undated releases render cleanly.
func formatDate(t time.Time, layout string) string {
	if t.IsZero() || t.Equal(notes.EpochZero) {
		return ""
	}
	return t.Format(layout)
}
