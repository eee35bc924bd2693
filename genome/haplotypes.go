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
	"log"
	"strings"

	"github.com/exascience/haplo/internal"
	"github.com/exascience/haplo/intervals"
)

// A Reference provides range-bounded base lookups from a reference
// sequence store.
type Reference interface {
	Bases(contig string, interval intervals.Interval) string
	ContigLength(contig string) int32
}

/*
A Haplotype is one candidate base sequence over a contiguous region of a
contig. It is represented by its explicit alleles: an ordered,
non-overlapping sequence of contig alleles within the haplotype
interval. Positions of the interval not covered by an explicit allele
take their bases from the reference sequence.

Haplotypes have two equality predicates. Equal compares the explicit
allele decomposition and is therefore exact: two haplotypes that spell
the same bases through different decompositions are not Equal.
SameSequence compares the materialized base sequences and ignores
decomposition differences. Equal implies SameSequence.

Haplotypes must be created with NewHaplotype.
*/
type Haplotype struct {
	Contig   string
	Interval intervals.Interval
	Alleles  []ContigAllele
}

// NewHaplotype creates a haplotype from the given explicit alleles,
// which must be sorted by start position, non-overlapping, and
// contained in the given interval.
func NewHaplotype(contig string, interval intervals.Interval, alleles []ContigAllele) Haplotype {
	end := interval.Start
	for _, allele := range alleles {
		if allele.Interval.Start < end {
			log.Panicf("out of order allele %v:%v in haplotype over %v:%v-%v",
				contig, allele.Interval, contig, interval.Start, interval.End)
		}
		if !interval.Contains(allele.Interval) {
			log.Panicf("allele %v:%v outside of haplotype over %v:%v-%v",
				contig, allele.Interval, contig, interval.Start, interval.End)
		}
		end = allele.Interval.End
	}
	return Haplotype{
		Contig:   contig,
		Interval: interval,
		Alleles:  append([]ContigAllele(nil), alleles...),
	}
}

// Region returns the region the haplotype covers.
func (haplotype Haplotype) Region() Region {
	return Region{Contig: haplotype.Contig, Interval: haplotype.Interval}
}

// Sequence materializes the base sequence of the haplotype, filling the
// positions between explicit alleles from the reference.
func (haplotype Haplotype) Sequence(reference Reference) string {
	var builder strings.Builder
	pos := haplotype.Interval.Start
	for _, allele := range haplotype.Alleles {
		if pos < allele.Interval.Start {
			builder.WriteString(reference.Bases(haplotype.Contig, intervals.Interval{Start: pos, End: allele.Interval.Start}))
		}
		builder.WriteString(allele.Bases)
		pos = allele.Interval.End
	}
	if pos < haplotype.Interval.End {
		builder.WriteString(reference.Bases(haplotype.Contig, intervals.Interval{Start: pos, End: haplotype.Interval.End}))
	}
	return builder.String()
}

// Equal tells whether two haplotypes cover the same region with the
// same explicit allele decomposition.
func (haplotype Haplotype) Equal(other Haplotype) bool {
	if haplotype.Contig != other.Contig ||
		haplotype.Interval != other.Interval ||
		len(haplotype.Alleles) != len(other.Alleles) {
		return false
	}
	for i, allele := range haplotype.Alleles {
		if allele != other.Alleles[i] {
			return false
		}
	}
	return true
}

// SameSequence tells whether two haplotypes cover the same region with
// the same materialized base sequence, regardless of how the sequence
// decomposes into explicit alleles.
func (haplotype Haplotype) SameSequence(other Haplotype, reference Reference) bool {
	return haplotype.Contig == other.Contig &&
		haplotype.Interval == other.Interval &&
		haplotype.Sequence(reference) == other.Sequence(reference)
}

// Hash returns an identity hash over the haplotype's region and
// materialized base sequence. Haplotypes for which SameSequence holds
// hash to the same value.
func (haplotype Haplotype) Hash(reference Reference) uint64 {
	hash := internal.StringHash(haplotype.Contig)
	hash = internal.Int32Hash(hash, haplotype.Interval.Start)
	hash = internal.Int32Hash(hash, haplotype.Interval.End)
	return internal.StringHashAdd(hash, haplotype.Sequence(reference))
}
