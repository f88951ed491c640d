package changelog

import (
	"fmt"
	"io"
	"strings"

	"github.com/ariel-frischer/relnotes/internal/template"
)

// Render writes the changelog title followed by every entry rendered through
// the release template and joined by the release separator. Entries are
// written in the order given.
//
// The function is idempotent - given the same input, it produces identical output.
func Render(tpl template.Set, entries []Entry, w io.Writer) error {
	tpl = tpl.WithDefaults()

	if _, err := io.WriteString(w, tpl.ChangelogTitle); err != nil {
		return fmt.Errorf("rendering title: %w", err)
	}

	for i, e := range entries {
		if i > 0 {
			if _, err := io.WriteString(w, tpl.ReleaseSeparator); err != nil {
				return fmt.Errorf("rendering separator: %w", err)
			}
		}
		if err := renderEntry(tpl, e, w); err != nil {
			return fmt.Errorf("rendering release %s: %w", e.Release, err)
		}
	}

	return nil
}

// RenderString is a convenience function that renders to a string.
func RenderString(tpl template.Set, entries []Entry) (string, error) {
	var b strings.Builder
	if err := Render(tpl, entries, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderEntry writes a single release section.
func renderEntry(tpl template.Set, e Entry, w io.Writer) error {
	_, err := io.WriteString(w, tpl.RenderRelease(template.ReleaseFields{
		Release: e.Release,
		Date:    e.Date,
		Body:    e.Body,
	}))
	return err
}
