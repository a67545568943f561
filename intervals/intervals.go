// elGraph: a tool for querying assembly graphs.
// Copyright (c) 2024 imec vzw.

// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version, and Additional Terms
// (see below).

// This program is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.

// You should have received a copy of the GNU Affero General Public
// License and Additional Terms along with this program. If not, see
// <https://github.com/ExaScience/elgraph/blob/master/LICENSE.txt>.

// Package intervals merges half-open integer intervals, for example
// the query ranges covered by alignment hits.
package intervals

import (
	"sort"

	"github.com/exascience/pargo/parallel"
	psort "github.com/exascience/pargo/sort"
)

// Interval is a half-open range [Start, End).
type Interval struct {
	Start, End int
}

// Len returns the number of positions in the interval.
func (interval Interval) Len() int {
	if interval.End < interval.Start {
		return 0
	}
	return interval.End - interval.Start
}

// SortByStart sorts a slice of Interval by Start position.
func SortByStart(intervals []Interval) {
	sort.SliceStable(intervals, func(i, j int) bool {
		return intervals[i].Start < intervals[j].Start
	})
}

type stableIntervalSorter []Interval

func (s stableIntervalSorter) SequentialSort(i, j int) {
	SortByStart(s[i:j])
}

func (s stableIntervalSorter) NewTemp() psort.StableSorter {
	return stableIntervalSorter(make([]Interval, len(s)))
}

func (s stableIntervalSorter) Len() int {
	return len(s)
}

func (s stableIntervalSorter) Less(i, j int) bool {
	return s[i].Start < s[j].Start
}

func (s stableIntervalSorter) Assign(source psort.StableSorter) func(i, j, len int) {
	dst, src := s, source.(stableIntervalSorter)
	return func(i, j, len int) {
		copy(dst[i:i+len], src[j:j+len])
	}
}

// ParallelSortByStart sorts a slice of Interval by Start position using
// a parallel stable sort.
func ParallelSortByStart(intervals []Interval) {
	psort.StableSort(stableIntervalSorter(intervals))
}

// Extend grows interval1 to also cover interval2 if the two overlap
// or touch. It returns false, leaving interval1 unchanged, if there
// is a gap between them. interval2.Start must not be smaller than
// interval1.Start.
func (interval1 *Interval) Extend(interval2 Interval) bool {
	if interval2.Start > interval1.End {
		return false
	}
	if interval2.End > interval1.End {
		interval1.End = interval2.End
	}
	return true
}

// Flatten merges overlapping and touching intervals. The intervals
// must be sorted by Start. The result is sorted by Start, contains no
// two intervals that overlap or touch, and shares memory with the
// argument.
func Flatten(intervals []Interval) []Interval {
	if len(intervals) == 0 {
		return intervals
	}
	last := 0
	for _, interval := range intervals[1:] {
		if !intervals[last].Extend(interval) {
			last++
			intervals[last] = interval
		}
	}
	return intervals[:last+1]
}

const parallelFlattenGrainSize = 0x1000

// ParallelFlatten is Flatten with a parallel divide-and-conquer
// algorithm for large inputs.
func ParallelFlatten(intervals []Interval) []Interval {
	if len(intervals) < parallelFlattenGrainSize {
		return Flatten(intervals)
	}
	half := len(intervals) >> 1
	left, right := intervals[:half], intervals[half:]
	parallel.Do(
		func() { left = ParallelFlatten(left) },
		func() { right = ParallelFlatten(right) },
	)
	for len(right) > 0 && left[len(left)-1].Extend(right[0]) {
		right = right[1:]
	}
	return append(left, right...)
}

// TotalLength returns the number of positions covered by flattened
// intervals.
func TotalLength(intervals []Interval) (total int) {
	for _, interval := range intervals {
		total += interval.Len()
	}
	return
}

// Coverage sorts and flattens the intervals in place, and returns the
// fraction of [0, length) that they cover. It returns 0 if length is
// not positive. Large inputs are sorted and flattened in parallel.
func Coverage(intervals []Interval, length int) float64 {
	if length <= 0 || len(intervals) == 0 {
		return 0
	}
	if len(intervals) < parallelFlattenGrainSize {
		SortByStart(intervals)
		return float64(TotalLength(Flatten(intervals))) / float64(length)
	}
	ParallelSortByStart(intervals)
	return float64(TotalLength(ParallelFlatten(intervals))) / float64(length)
}
