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
	"sort"

	"github.com/exascience/haplo/intervals"
)

type (
	// A ContigAllele is a base sequence observed over an interval of a
	// contig that is implied by context. ContigAllele values are immutable
	// and compared by interval plus base sequence.
	ContigAllele struct {
		Interval intervals.Interval
		Bases    string
	}

	// An Allele is a ContigAllele together with the name of the contig it
	// belongs to.
	Allele struct {
		Contig string
		ContigAllele
	}

	// A Variant is a difference with the reference sequence at a single
	// site: one reference allele and one or more alternate alleles, all
	// mapped to the same interval.
	Variant struct {
		Contig string
		Pos    int32
		Ref    string
		Alts   []string
	}
)

// Interval returns the reference interval the variant is mapped to.
func (variant Variant) Interval() intervals.Interval {
	return intervals.Interval{Start: variant.Pos, End: variant.Pos + int32(len(variant.Ref))}
}

// RefAllele returns the reference allele of the variant.
func (variant Variant) RefAllele() Allele {
	return Allele{
		Contig:       variant.Contig,
		ContigAllele: ContigAllele{Interval: variant.Interval(), Bases: variant.Ref},
	}
}

// AltAlleles returns the alternate alleles of the variant. They are
// mapped to the same interval as the reference allele, also for
// insertions and deletions.
func (variant Variant) AltAlleles() []Allele {
	result := make([]Allele, len(variant.Alts))
	for i, alt := range variant.Alts {
		result[i] = Allele{
			Contig:       variant.Contig,
			ContigAllele: ContigAllele{Interval: variant.Interval(), Bases: alt},
		}
	}
	return result
}

// An Extension is an element a haplotype tree can be extended with: a
// ContigAllele, an Allele, or a Variant. This is a closed set.
type Extension interface {
	// Expand returns the contig alleles the element contributes, in
	// extension order, checking them against the given contig.
	Expand(contig string) []ContigAllele
}

// Expand returns the allele itself.
func (allele ContigAllele) Expand(string) []ContigAllele {
	return []ContigAllele{allele}
}

// Expand returns the underlying contig allele if the contigs match.
func (allele Allele) Expand(contig string) []ContigAllele {
	if allele.Contig != contig {
		log.Panicf("allele for contig %v used in the context of contig %v", allele.Contig, contig)
	}
	return []ContigAllele{allele.ContigAllele}
}

// Expand returns the reference allele followed by the alternate alleles
// if the contigs match.
func (variant Variant) Expand(contig string) []ContigAllele {
	if variant.Contig != contig {
		log.Panicf("variant for contig %v used in the context of contig %v", variant.Contig, contig)
	}
	result := make([]ContigAllele, 0, len(variant.Alts)+1)
	result = append(result, ContigAllele{Interval: variant.Interval(), Bases: variant.Ref})
	for _, alt := range variant.Alts {
		result = append(result, ContigAllele{Interval: variant.Interval(), Bases: alt})
	}
	return result
}

// Trim returns the part of the allele that lies within the given
// interval. For alleles whose base sequence is as long as their
// interval, the bases are cut exactly at the interval boundaries. For
// insertions and deletions the bases are cut as far as they reach.
func (allele ContigAllele) Trim(interval intervals.Interval) ContigAllele {
	overlap := allele.Interval.Intersection(interval)
	if overlap == allele.Interval {
		return allele
	}
	front := int(overlap.Start - allele.Interval.Start)
	if front > len(allele.Bases) {
		front = len(allele.Bases)
	}
	length := len(allele.Bases) - front - int(allele.Interval.End-overlap.End)
	if length < 0 {
		length = 0
	}
	return ContigAllele{Interval: overlap, Bases: allele.Bases[front : front+length]}
}

// SortContigAllelesByStart sorts a slice of ContigAllele by start position.
func SortContigAllelesByStart(alleles []ContigAllele) {
	sort.SliceStable(alleles, func(i, j int) bool {
		return alleles[i].Interval.Start < alleles[j].Interval.Start
	})
}
