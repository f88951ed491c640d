package notes

import (
	"sort"
	"time"
)

// EpochZero is the date of the synthetic point that closes the range of a
// lone tag, so that range covers all history before that tag.
var EpochZero = time.Unix(0, 0).UTC()

// BuildRanges sorts points newest first and returns every adjacent pair.
// Equal dates keep their input order. A single point is paired with a
// synthetic {ID: 0, Date: EpochZero} point; no points yield no ranges.
func BuildRanges(points []DatedPoint) []Range {
	if len(points) == 0 {
		return []Range{}
	}

	sorted := make([]DatedPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})

	if len(sorted) == 1 {
		sorted = append(sorted, DatedPoint{ID: int64Ptr(0), Date: EpochZero})
	}

	ranges := make([]Range, 0, len(sorted)-1)
	for i := 0; i < len(sorted)-1; i++ {
		ranges = append(ranges, Range{Newer: sorted[i], Older: sorted[i+1]})
	}

	logDebug("[notes] built %d range(s) from %d point(s)", len(ranges), len(points))
	return ranges
}

// OldestDate returns the earliest boundary across ranges, or EpochZero.
func OldestDate(ranges []Range) time.Time {
	if len(ranges) == 0 {
		return EpochZero
	}
	oldest := ranges[0].Older.Date
	for _, r := range ranges[1:] {
		if r.Older.Date.Before(oldest) {
			oldest = r.Older.Date
		}
	}
	return oldest
}
