// Package catalog serves the gene and transcript reference data one
// load needs: gene lookups, coding intervals and panel membership.
package catalog

import "sort"

// IntervalTree provides O(log n + k) overlap queries using a sorted
// slice with a prefix-max array. Intervals are loaded once per build
// and never modified afterwards.
type IntervalTree struct {
	intervals []interval
	maxEnd    []int // maxEnd[i] = max(end) for intervals[:i+1]
}

type interval struct {
	start int
	end   int
	tag   string
}

// BuildIntervalTree creates an interval tree from parallel coordinate
// and tag slices.
func BuildIntervalTree(starts, ends []int, tags []string) *IntervalTree {
	if len(starts) == 0 {
		return &IntervalTree{}
	}

	intervals := make([]interval, len(starts))
	for i := range starts {
		intervals[i] = interval{start: starts[i], end: ends[i], tag: tags[i]}
	}

	sort.Slice(intervals, func(i, j int) bool {
		return intervals[i].start < intervals[j].start
	})

	maxEnd := make([]int, len(intervals))
	maxEnd[0] = intervals[0].end
	for i := 1; i < len(intervals); i++ {
		maxEnd[i] = intervals[i].end
		if maxEnd[i-1] > maxEnd[i] {
			maxEnd[i] = maxEnd[i-1]
		}
	}

	return &IntervalTree{intervals: intervals, maxEnd: maxEnd}
}

// FindOverlaps returns the tags of all intervals overlapping
// [start, end], both bounds inclusive.
func (t *IntervalTree) FindOverlaps(start, end int) []string {
	if len(t.intervals) == 0 {
		return nil
	}

	// Candidates must start at or before the query end.
	hi := sort.Search(len(t.intervals), func(i int) bool {
		return t.intervals[i].start > end
	})

	var result []string
	for i := hi - 1; i >= 0; i-- {
		// maxEnd[i] bounds every interval up to i; once it drops below
		// the query start nothing earlier can overlap.
		if t.maxEnd[i] < start {
			break
		}
		if t.intervals[i].end >= start {
			result = append(result, t.intervals[i].tag)
		}
	}

	return result
}
