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
	"fmt"

	"github.com/exascience/haplo/genome"
	"github.com/exascience/haplo/intervals"
)

// An OutOfRangeError reports a requested region that lies outside the
// region encompassed by a haplotype tree. The caller may clamp the
// request to the encompassing region and retry.
type OutOfRangeError struct {
	Requested, Encompassing genome.Region
}

func (err OutOfRangeError) Error() string {
	return fmt.Sprintf("region %v outside of haplotype tree region %v", err.Requested, err.Encompassing)
}

// ExtractHaplotypes materializes one haplotype per leaf over the
// encompassing region of the tree, in leaf insertion order. The order
// is not guaranteed to be sorted by position of the leafs.
func (tree *Tree) ExtractHaplotypes() []genome.Haplotype {
	if tree.IsEmpty() {
		return nil
	}
	region := tree.EncompassingRegion()
	result := make([]genome.Haplotype, 0, len(tree.leafs))
	for _, leaf := range tree.leafs {
		result = append(result, tree.extractHaplotype(leaf, region.Interval))
	}
	return result
}

// ExtractHaplotypesIn is ExtractHaplotypes restricted to the given
// region, which must lie within the encompassing region of the tree.
// Alleles that only partially overlap the region contribute the part of
// their bases that falls inside it.
func (tree *Tree) ExtractHaplotypesIn(region genome.Region) ([]genome.Haplotype, error) {
	if tree.IsEmpty() {
		return nil, nil
	}
	encompassing := tree.EncompassingRegion()
	if !encompassing.Contains(region) {
		return nil, OutOfRangeError{Requested: region, Encompassing: encompassing}
	}
	result := make([]genome.Haplotype, 0, len(tree.leafs))
	for _, leaf := range tree.leafs {
		result = append(result, tree.extractHaplotype(leaf, region.Interval))
	}
	return result, nil
}

// extractHaplotype materializes the haplotype for the branch from the
// root to the given leaf, restricted to the given interval.
func (tree *Tree) extractHaplotype(leaf int32, interval intervals.Interval) genome.Haplotype {
	var alleles []genome.ContigAllele
	for v := tree.vertices[leaf]; v.id != rootID; v = tree.vertices[v.parent] {
		if interval.Contains(v.allele.Interval) || v.allele.Interval.Overlaps(interval) {
			alleles = append(alleles, v.allele.Trim(interval))
		}
	}
	for i, j := 0, len(alleles)-1; i < j; i, j = i+1, j-1 {
		alleles[i], alleles[j] = alleles[j], alleles[i]
	}
	return genome.NewHaplotype(tree.contig, interval, alleles)
}

// Contains tells whether some branch of the tree carries the haplotype
// with exactly its explicit allele decomposition. It uses
// genome.Haplotype.Equal logic.
func (tree *Tree) Contains(haplotype genome.Haplotype) bool {
	if !tree.covers(haplotype) {
		return false
	}
	for _, leaf := range tree.sameSequenceLeafs(haplotype) {
		if tree.isBranchExactHaplotype(leaf, haplotype) {
			return true
		}
	}
	return false
}

// Includes tells whether some branch of the tree spells the haplotype's
// base sequence, regardless of the allele decomposition. It uses
// genome.Haplotype.SameSequence logic.
func (tree *Tree) Includes(haplotype genome.Haplotype) bool {
	return tree.covers(haplotype) && len(tree.sameSequenceLeafs(haplotype)) > 0
}

// IsUnique tells whether exactly one branch of the tree spells the
// haplotype's base sequence. It uses genome.Haplotype.SameSequence
// logic.
func (tree *Tree) IsUnique(haplotype genome.Haplotype) bool {
	return tree.covers(haplotype) && len(tree.sameSequenceLeafs(haplotype)) == 1
}

func (tree *Tree) covers(haplotype genome.Haplotype) bool {
	return haplotype.Contig == tree.contig &&
		!tree.IsEmpty() &&
		tree.EncompassingRegion().Contains(haplotype.Region())
}

/*
sameSequenceLeafs returns the leafs whose branches spell the same base
sequence as the given haplotype over its interval.

The result of a full scan is memoized in the leaf cache, keyed by the
haplotype's identity hash. The cache is an accelerator, never a source
of truth: every mutating operation drops it wholesale, and a cached
entry is only used after re-verifying all its leafs, falling back to a
full scan otherwise. This also makes hash collisions harmless.
*/
func (tree *Tree) sameSequenceLeafs(haplotype genome.Haplotype) []int32 {
	key := haplotype.Hash(tree.reference)
	if cached, ok := tree.cache[key]; ok && len(cached) > 0 {
		verified := true
		for _, leaf := range cached {
			if !tree.isBranchEqualHaplotype(leaf, haplotype) {
				verified = false
				break
			}
		}
		if verified {
			return cached
		}
	}
	var result []int32
	for _, leaf := range tree.leafs {
		if tree.isBranchEqualHaplotype(leaf, haplotype) {
			result = append(result, leaf)
		}
	}
	if len(result) > 0 {
		tree.cache[key] = result
	} else {
		delete(tree.cache, key)
	}
	return result
}

// isBranchEqualHaplotype compares the materialized base sequence of a
// branch with that of the haplotype, over the haplotype's interval.
func (tree *Tree) isBranchEqualHaplotype(leaf int32, haplotype genome.Haplotype) bool {
	branch := tree.extractHaplotype(leaf, haplotype.Interval)
	return branch.SameSequence(haplotype, tree.reference)
}

// isBranchExactHaplotype compares the explicit allele decomposition of
// a branch with that of the haplotype, over the haplotype's interval.
// An allele of the branch that straddles the interval boundary makes
// the branch not exact.
func (tree *Tree) isBranchExactHaplotype(leaf int32, haplotype genome.Haplotype) bool {
	var alleles []genome.ContigAllele
	for v := tree.vertices[leaf]; v.id != rootID; v = tree.vertices[v.parent] {
		if interval := haplotype.Interval; interval.Contains(v.allele.Interval) {
			alleles = append(alleles, v.allele)
		} else if v.allele.Interval.Overlaps(interval) {
			return false
		}
	}
	if len(alleles) != len(haplotype.Alleles) {
		return false
	}
	for i, allele := range haplotype.Alleles {
		if alleles[len(alleles)-1-i] != allele {
			return false
		}
	}
	return true
}
