// haplo: a library for enumerating candidate haplotypes over genomic regions.
// Copyright (c) 2021 imec vzw.

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
// <https://github.com/ExaScience/haplo/blob/master/LICENSE.txt>.

package intervals

import (
	"math/rand"
	"testing"
)

func intervalsEqual(intervals1, intervals2 []Interval) bool {
	if len(intervals1) != len(intervals2) {
		return false
	}
	for i, interval1 := range intervals1 {
		if interval1 != intervals2[i] {
			return false
		}
	}
	return true
}

func makeLargeIntervalsSlice() (result []Interval) {
	result = make([]Interval, 0x30000)
	result[0].Start = 0
	result[0].End = 3
	for i := 1; i < len(result); i++ {
		if rand.Intn(100) < 20 {
			result[i].Start = result[i-1].End - 1
		} else {
			result[i].Start = result[i-1].End + 1
		}
		result[i].End = result[i].Start + 3
	}
	return result
}

func TestPredicates(t *testing.T) {
	if !(Interval{2, 5}).Overlaps(Interval{4, 7}) {
		t.Error("Overlaps 1 failed")
	}
	if (Interval{2, 5}).Overlaps(Interval{5, 7}) {
		t.Error("Overlaps 2 failed")
	}
	if !(Interval{2, 7}).Contains(Interval{3, 7}) {
		t.Error("Contains 1 failed")
	}
	if (Interval{2, 7}).Contains(Interval{3, 8}) {
		t.Error("Contains 2 failed")
	}
	if !(Interval{2, 5}).IsAdjacentTo(Interval{5, 7}) {
		t.Error("IsAdjacentTo 1 failed")
	}
	if (Interval{2, 5}).IsAdjacentTo(Interval{6, 7}) {
		t.Error("IsAdjacentTo 2 failed")
	}
	if (Interval{2, 5}).Intersection(Interval{4, 7}) != (Interval{4, 5}) {
		t.Error("Intersection 1 failed")
	}
	if !(Interval{2, 5}).Intersection(Interval{6, 7}).IsEmpty() {
		t.Error("Intersection 2 failed")
	}
	if (Interval{2, 5}).Encompass(Interval{6, 9}) != (Interval{2, 9}) {
		t.Error("Encompass failed")
	}
	if (Interval{2, 5}).Width() != 3 {
		t.Error("Width failed")
	}
	if !(Interval{2, 5}).ContainsPosition(4) || (Interval{2, 5}).ContainsPosition(5) {
		t.Error("ContainsPosition failed")
	}
}

func TestFlatten(t *testing.T) {
	if Flatten(nil) != nil {
		t.Error("empty Flatten failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {3, 4}}), []Interval{{2, 4}}) {
		t.Error("Flatten 1 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {4, 5}}), []Interval{{2, 3}, {4, 5}}) {
		t.Error("Flatten 2 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 4}, {3, 5}, {4, 6}}), []Interval{{2, 6}}) {
		t.Error("Flatten 3 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 4}, {3, 5}, {4, 6}, {7, 9}}), []Interval{{2, 6}, {7, 9}}) {
		t.Error("Flatten 4 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {3, 4}, {5, 6}, {6, 7}}), []Interval{{2, 4}, {5, 7}}) {
		t.Error("Flatten 5 failed")
	}
	if !intervalsEqual(Flatten([]Interval{{2, 3}, {2, 5}, {2, 4}, {2, 3}, {2, 6}, {2, 7}}), []Interval{{2, 7}}) {
		t.Error("Flatten 6 failed")
	}
	intervals := Flatten(makeLargeIntervalsSlice())
	if intervals[0].Start > intervals[0].End {
		t.Error("Flatten 7a failed")
	}
	for i := 1; i < len(intervals); i++ {
		interval := intervals[i]
		if interval.Start > interval.End || interval.Start <= intervals[i-1].End {
			t.Error("Flatten 7b failed")
		}
	}
}

func TestParallelFlatten(t *testing.T) {
	if ParallelFlatten(nil) != nil {
		t.Error("empty ParallelFlatten failed")
	}
	if !intervalsEqual(ParallelFlatten([]Interval{{2, 3}, {3, 4}}), []Interval{{2, 4}}) {
		t.Error("ParallelFlatten 1 failed")
	}
	if !intervalsEqual(ParallelFlatten([]Interval{{2, 3}, {4, 5}}), []Interval{{2, 3}, {4, 5}}) {
		t.Error("ParallelFlatten 2 failed")
	}
	if !intervalsEqual(ParallelFlatten([]Interval{{2, 4}, {3, 5}, {4, 6}}), []Interval{{2, 6}}) {
		t.Error("ParallelFlatten 3 failed")
	}
	if !intervalsEqual(ParallelFlatten([]Interval{{2, 4}, {3, 5}, {4, 6}, {7, 9}}), []Interval{{2, 6}, {7, 9}}) {
		t.Error("ParallelFlatten 4 failed")
	}
	large := makeLargeIntervalsSlice()
	sequential := Flatten(append([]Interval(nil), large...))
	parallel := ParallelFlatten(large)
	if !intervalsEqual(sequential, parallel) {
		t.Error("ParallelFlatten 5 failed")
	}
}

func TestSortByStart(t *testing.T) {
	large := makeLargeIntervalsSlice()
	rand.Shuffle(len(large), func(i, j int) {
		large[i], large[j] = large[j], large[i]
	})
	sequential := append([]Interval(nil), large...)
	SortByStart(sequential)
	ParallelSortByStart(large)
	if !intervalsEqual(sequential, large) {
		t.Error("ParallelSortByStart disagrees with SortByStart")
	}
	for i := 1; i < len(large); i++ {
		if large[i].Start < large[i-1].Start {
			t.Error("ParallelSortByStart failed")
		}
	}
}

func TestOverlap(t *testing.T) {
	intervals := []Interval{{2, 4}, {6, 9}, {12, 13}}
	if !Overlap(intervals, 3, 5) {
		t.Error("Overlap 1 failed")
	}
	if Overlap(intervals, 4, 6) {
		t.Error("Overlap 2 failed")
	}
	if !Overlap(intervals, 0, 100) {
		t.Error("Overlap 3 failed")
	}
	if Overlap(intervals, 13, 20) {
		t.Error("Overlap 4 failed")
	}
}

func TestIntersect(t *testing.T) {
	intervals := []Interval{{2, 4}, {6, 9}, {12, 13}}
	if !intervalsEqual(Intersect(intervals, 3, 7), []Interval{{2, 4}, {6, 9}}) {
		t.Error("Intersect 1 failed")
	}
	if len(Intersect(intervals, 4, 6)) != 0 {
		t.Error("Intersect 2 failed")
	}
	if !intervalsEqual(Intersect(intervals, 0, 100), intervals) {
		t.Error("Intersect 3 failed")
	}
}
