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

package tree

import (
	"github.com/exascience/haplo/genome"

	"github.com/exascience/pargo/parallel"
)

// GenerateAllHaplotypes builds a haplotype tree for the given elements
// and extracts all haplotypes it enumerates. It returns nil when there
// are no elements.
func GenerateAllHaplotypes(contig string, reference genome.Reference, elements ...genome.Extension) []genome.Haplotype {
	if len(elements) == 0 {
		return nil
	}
	tree := New(contig, reference)
	tree.ExtendAll(elements...)
	return tree.ExtractHaplotypes()
}

// A RegionJob asks for the haplotypes over a region, generated from the
// elements that were called in that region.
type RegionJob struct {
	Region   genome.Region
	Elements []genome.Extension
}

// GenerateHaplotypesPerRegion generates the haplotypes for each job in
// parallel. Each job gets its own tree, so the jobs are independent.
// The result has one haplotype slice per job, in job order.
func GenerateHaplotypesPerRegion(jobs []RegionJob, reference genome.Reference) [][]genome.Haplotype {
	result := make([][]genome.Haplotype, len(jobs))
	parallel.Range(0, len(jobs), 0, func(low, high int) {
		for i := low; i < high; i++ {
			job := jobs[i]
			if len(job.Elements) == 0 {
				continue
			}
			tree := New(job.Region.Contig, reference)
			tree.ExtendAll(job.Elements...)
			if tree.EncompassingRegion().Contains(job.Region) {
				haplotypes, err := tree.ExtractHaplotypesIn(job.Region)
				if err == nil {
					result[i] = haplotypes
					continue
				}
			}
			result[i] = tree.ExtractHaplotypes()
		}
	})
	return result
}
