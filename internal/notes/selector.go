package notes

import (
	"strings"
)

// AllTags is the literal that selects every tag.
const AllTags = "all"

// maxSelectedTags caps an explicit selection: two tags bound one range.
const maxSelectedTags = 2

// SelectTags resolves which tags to process. allTags must be ordered newest
// first, as the API lists them.
//
// The second return value is false when requested is empty, meaning the
// caller should fall back to LatestTags. A request containing "all" returns
// every tag. Otherwise the requested tags are returned in allTags order,
// truncated to two; when exactly one tag was requested, the tag that follows
// it in allTags is included so the request still yields a usable range.
func SelectTags(requested []string, allTags []Tag) ([]Tag, bool) {
	if len(requested) == 0 {
		return nil, false
	}

	for _, name := range requested {
		if name == AllTags {
			return append([]Tag(nil), allTags...), true
		}
	}

	wanted := make(map[string]bool, len(requested)+1)
	for _, name := range requested {
		wanted[name] = true
	}
	single := len(requested) == 1

	selected := make([]Tag, 0, maxSelectedTags)
	for i, tag := range allTags {
		if !wanted[tag.Name] {
			continue
		}
		if single && i+1 < len(allTags) {
			wanted[allTags[i+1].Name] = true
			single = false
		}
		selected = append(selected, tag)
	}

	if len(selected) > maxSelectedTags {
		selected = selected[:maxSelectedTags]
	}
	return selected, true
}

// LatestTags returns the two most recent tags.
func LatestTags(allTags []Tag) []Tag {
	if len(allTags) > maxSelectedTags {
		return append([]Tag(nil), allTags[:maxSelectedTags]...)
	}
	return append([]Tag(nil), allTags...)
}

// FilterTags drops every tag whose name contains one of the given substrings.
func FilterTags(tags []Tag, ignoreWith []string) []Tag {
	if len(ignoreWith) == 0 {
		return tags
	}
	kept := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if containsAny(tag.Name, ignoreWith) {
			logDebug("[notes] ignoring tag %s", tag.Name)
			continue
		}
		kept = append(kept, tag)
	}
	return kept
}

// PairReleases attaches the id and body of the release whose tag name
// matches each tag. Tags without a release get a nil id.
func PairReleases(tags []Tag, releases []ReleaseRecord) []TaggedRelease {
	byTag := make(map[string]ReleaseRecord, len(releases))
	for _, r := range releases {
		if _, seen := byTag[r.TagName]; !seen {
			byTag[r.TagName] = r
		}
	}

	paired := make([]TaggedRelease, 0, len(tags))
	for _, tag := range tags {
		tr := TaggedRelease{Tag: tag}
		if r, ok := byTag[tag.Name]; ok && r.ID != nil {
			tr.ReleaseID = int64Ptr(*r.ID)
			tr.Body = r.Body
		}
		paired = append(paired, tr)
	}
	return paired
}

func containsAny(s string, substrings []string) bool {
	for _, sub := range substrings {
		if sub != "" && strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
