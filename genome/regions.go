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
	"fmt"
	"log"

	"github.com/exascience/haplo/intervals"
)

// A Region is an interval on a named contig.
type Region struct {
	Contig   string
	Interval intervals.Interval
}

// IsEmpty tells whether the region covers no positions.
func (region Region) IsEmpty() bool {
	return region.Interval.IsEmpty()
}

// Overlaps tells whether two regions share at least one position.
func (region1 Region) Overlaps(region2 Region) bool {
	return region1.Contig == region2.Contig && region1.Interval.Overlaps(region2.Interval)
}

// Contains tells whether region2 lies fully within region1.
func (region1 Region) Contains(region2 Region) bool {
	return region1.Contig == region2.Contig && region1.Interval.Contains(region2.Interval)
}

// Encompass returns the smallest region that covers both regions.
// The regions must be on the same contig.
func (region1 Region) Encompass(region2 Region) Region {
	if region1.Contig != region2.Contig {
		log.Panicf("cannot encompass regions on contigs %v and %v", region1.Contig, region2.Contig)
	}
	return Region{Contig: region1.Contig, Interval: region1.Interval.Encompass(region2.Interval)}
}

func (region Region) String() string {
	return fmt.Sprintf("%v:%v-%v", region.Contig, region.Interval.Start, region.Interval.End)
}
