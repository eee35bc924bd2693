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

package genome

import (
	"testing"

	"github.com/exascience/haplo/intervals"
)

type testReference map[string]string

func (ref testReference) Bases(contig string, interval intervals.Interval) string {
	return ref[contig][interval.Start:interval.End]
}

func (ref testReference) ContigLength(contig string) int32 {
	return int32(len(ref[contig]))
}

var testRef = testReference{"1": "ACGTACGTAC"}

func interval(start, end int32) intervals.Interval {
	return intervals.Interval{Start: start, End: end}
}

func TestVariantExpand(t *testing.T) {
	variant := Variant{Contig: "1", Pos: 4, Ref: "AC", Alts: []string{"A", "ATC"}}
	if variant.Interval() != interval(4, 6) {
		t.Errorf("unexpected variant interval %v", variant.Interval())
	}
	alleles := variant.Expand("1")
	if len(alleles) != 3 {
		t.Fatalf("expected 3 alleles, got %v", len(alleles))
	}
	if alleles[0] != (ContigAllele{Interval: interval(4, 6), Bases: "AC"}) {
		t.Errorf("unexpected reference allele %v", alleles[0])
	}
	for _, allele := range alleles {
		if allele.Interval != interval(4, 6) {
			t.Errorf("allele %v not mapped to the variant interval", allele)
		}
	}
	defer func() {
		if recover() == nil {
			t.Error("expanding onto a foreign contig did not panic")
		}
	}()
	variant.Expand("2")
}

func TestTrim(t *testing.T) {
	allele := ContigAllele{Interval: interval(10, 13), Bases: "ACG"}
	if trimmed := allele.Trim(interval(5, 20)); trimmed != allele {
		t.Errorf("trim to a covering interval changed the allele to %v", trimmed)
	}
	if trimmed := allele.Trim(interval(11, 20)); trimmed != (ContigAllele{Interval: interval(11, 13), Bases: "CG"}) {
		t.Errorf("unexpected front trim %v", trimmed)
	}
	if trimmed := allele.Trim(interval(5, 12)); trimmed != (ContigAllele{Interval: interval(10, 12), Bases: "AC"}) {
		t.Errorf("unexpected back trim %v", trimmed)
	}
	if trimmed := allele.Trim(interval(11, 12)); trimmed != (ContigAllele{Interval: interval(11, 12), Bases: "C"}) {
		t.Errorf("unexpected middle trim %v", trimmed)
	}
	// a deletion has fewer bases than its interval is wide
	deletion := ContigAllele{Interval: interval(10, 14), Bases: "A"}
	if trimmed := deletion.Trim(interval(12, 20)); trimmed != (ContigAllele{Interval: interval(12, 14), Bases: ""}) {
		t.Errorf("unexpected deletion trim %v", trimmed)
	}
}

func TestRegion(t *testing.T) {
	region1 := Region{Contig: "1", Interval: interval(5, 10)}
	region2 := Region{Contig: "1", Interval: interval(8, 12)}
	if !region1.Overlaps(region2) {
		t.Error("overlapping regions reported as disjoint")
	}
	if region1.Contains(region2) {
		t.Error("partially overlapping region reported as contained")
	}
	if encompassed := region1.Encompass(region2); encompassed.Interval != interval(5, 12) {
		t.Errorf("unexpected encompassing region %v", encompassed)
	}
	other := Region{Contig: "2", Interval: interval(5, 10)}
	if region1.Overlaps(other) || region1.Contains(other) {
		t.Error("regions on different contigs reported as related")
	}
	if region1.String() != "1:5-10" {
		t.Errorf("unexpected region string %v", region1.String())
	}
}

func TestHaplotypeSequence(t *testing.T) {
	haplotype := NewHaplotype("1", interval(2, 8), []ContigAllele{
		{Interval: interval(4, 5), Bases: "T"},
	})
	if sequence := haplotype.Sequence(testRef); sequence != "GTTCGT" {
		t.Errorf("unexpected sequence %v", sequence)
	}
	implicit := NewHaplotype("1", interval(2, 8), nil)
	if sequence := implicit.Sequence(testRef); sequence != "GTACGT" {
		t.Errorf("unexpected reference sequence %v", sequence)
	}
}

func TestHaplotypeEquality(t *testing.T) {
	// the explicit allele spells the reference base at its position
	explicit := NewHaplotype("1", interval(4, 6), []ContigAllele{
		{Interval: interval(4, 5), Bases: "A"},
	})
	implicit := NewHaplotype("1", interval(4, 6), nil)
	if explicit.Equal(implicit) {
		t.Error("haplotypes with different decompositions reported as equal")
	}
	if !explicit.SameSequence(implicit, testRef) {
		t.Error("haplotypes with the same sequence reported as different")
	}
	if explicit.Hash(testRef) != implicit.Hash(testRef) {
		t.Error("haplotypes with the same sequence hash differently")
	}
	if !explicit.Equal(explicit) {
		t.Error("haplotype not equal to itself")
	}
	other := NewHaplotype("1", interval(4, 6), []ContigAllele{
		{Interval: interval(4, 5), Bases: "T"},
	})
	if explicit.SameSequence(other, testRef) {
		t.Error("haplotypes with different sequences reported as the same")
	}
}

func TestNewHaplotypePanics(t *testing.T) {
	expectPanic := func(message string, f func()) {
		defer func() {
			if recover() == nil {
				t.Error(message)
			}
		}()
		f()
	}
	expectPanic("overlapping alleles did not panic", func() {
		NewHaplotype("1", interval(0, 10), []ContigAllele{
			{Interval: interval(2, 5), Bases: "ACG"},
			{Interval: interval(4, 6), Bases: "TT"},
		})
	})
	expectPanic("allele outside the haplotype interval did not panic", func() {
		NewHaplotype("1", interval(0, 4), []ContigAllele{
			{Interval: interval(2, 5), Bases: "ACG"},
		})
	})
}
