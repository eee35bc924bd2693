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

package fasta

import (
	"log"

	"github.com/exascience/haplo/intervals"
)

// A Genome is an in-memory reference genome: a set of named contig
// sequences.
type Genome map[string][]byte

// Seq returns the full sequence for the given contig.
func (genome Genome) Seq(contig string) []byte {
	seq, ok := genome[contig]
	if !ok {
		log.Panicf("unknown contig %v", contig)
	}
	return seq
}

// Bases returns the bases for the given interval of the given contig.
func (genome Genome) Bases(contig string, interval intervals.Interval) string {
	return basesFromSeq(genome.Seq(contig), contig, interval)
}

// ContigLength returns the length of the given contig.
func (genome Genome) ContigLength(contig string) int32 {
	return int32(len(genome.Seq(contig)))
}

func basesFromSeq(seq []byte, contig string, interval intervals.Interval) string {
	if interval.Start < 0 || interval.End < interval.Start || int(interval.End) > len(seq) {
		log.Panicf("interval %v-%v out of range for contig %v of length %v",
			interval.Start, interval.End, contig, len(seq))
	}
	return string(seq[interval.Start:interval.End])
}
