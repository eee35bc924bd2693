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
	"log"

	"github.com/exascience/haplo/genome"
	"github.com/exascience/haplo/intervals"

	"github.com/willf/bitset"
)

// PruneAll removes every leaf whose branch carries the haplotype with
// exactly its explicit allele decomposition (Contains logic), together
// with the ancestor vertices that support no other branch. It returns
// the number of leafs removed.
func (tree *Tree) PruneAll(haplotype genome.Haplotype) int {
	if !tree.covers(haplotype) {
		return 0
	}
	matched := bitset.New(uint(len(tree.leafs)))
	for i, leaf := range tree.leafs {
		if tree.isBranchExactHaplotype(leaf, haplotype) {
			matched.Set(uint(i))
		}
	}
	if !matched.Any() {
		return 0
	}
	tree.removeLeafs(matched)
	return int(matched.Count())
}

// PruneUnique removes the single leaf whose branch spells the
// haplotype's base sequence, provided that branch is unique in the tree
// (IsUnique logic). It reports whether a leaf was removed. This
// discards a redundant representation without deleting a haplotype that
// remains distinguishable from the alternatives.
func (tree *Tree) PruneUnique(haplotype genome.Haplotype) bool {
	if !tree.covers(haplotype) {
		return false
	}
	leafs := tree.sameSequenceLeafs(haplotype)
	if len(leafs) != 1 {
		return false
	}
	matched := bitset.New(uint(len(tree.leafs)))
	for i, leaf := range tree.leafs {
		if leaf == leafs[0] {
			matched.Set(uint(i))
		}
	}
	tree.removeLeafs(matched)
	return true
}

// PruneAllOf applies PruneAll to each haplotype and returns the total
// number of leafs removed.
func (tree *Tree) PruneAllOf(haplotypes []genome.Haplotype) (removed int) {
	for _, haplotype := range haplotypes {
		removed += tree.PruneAll(haplotype)
	}
	return removed
}

// PruneUniqueOf applies PruneUnique to each haplotype and returns the
// number of leafs removed.
func (tree *Tree) PruneUniqueOf(haplotypes []genome.Haplotype) (removed int) {
	for _, haplotype := range haplotypes {
		if tree.PruneUnique(haplotype) {
			removed++
		}
	}
	return removed
}

// removeLeafs removes the leafs at the marked positions in the leaf
// list, together with the parts of their branches that no remaining
// leaf depends on.
func (tree *Tree) removeLeafs(matched *bitset.BitSet) {
	tree.dropCache()
	var removed []int32
	kept := make([]int32, 0, len(tree.leafs))
	for i, leaf := range tree.leafs {
		if matched.Test(uint(i)) {
			removed = append(removed, leaf)
		} else {
			kept = append(kept, leaf)
		}
	}
	tree.leafs = kept
	if len(tree.leafs) == 0 {
		tree.leafs = append(tree.leafs, rootID)
	}
	for _, leaf := range removed {
		tree.removeBranch(leaf)
	}
}

// removeBranch walks from the given removed leaf towards the root,
// removing vertices until it reaches a vertex that still has children,
// is itself a remaining leaf, or is the root.
func (tree *Tree) removeBranch(leaf int32) {
	v := tree.vertices[leaf]
	for v.id != rootID && len(v.children) == 0 && !tree.isLeaf(v.id) {
		parent := tree.vertices[v.parent]
		tree.removeChild(parent, v.id)
		delete(tree.vertices, v.id)
		v = parent
	}
}

// Clear resets the tree to its empty state: only the root remains, and
// the leaf cache is dropped.
func (tree *Tree) Clear() {
	root := tree.vertices[rootID]
	root.children = nil
	tree.vertices = map[int32]*vertex{rootID: root}
	tree.leafs = append(tree.leafs[:0], rootID)
	tree.cache = make(map[uint64][]int32)
}

// ClearRegion removes the material inside the given region from every
// branch of the tree. The region must lie within the encompassing
// region of the tree. Clearing the whole encompassing region is the
// same as Clear.
func (tree *Tree) ClearRegion(region genome.Region) error {
	if region.Contig != tree.contig {
		log.Panicf("region %v used in haplotype tree for contig %v", region, tree.contig)
	}
	if tree.IsEmpty() {
		return nil
	}
	encompassing := tree.EncompassingRegion()
	if !encompassing.Contains(region) {
		return OutOfRangeError{Requested: region, Encompassing: encompassing}
	}
	if region.Interval.Contains(encompassing.Interval) {
		tree.Clear()
		return nil
	}
	tree.dropCache()
	changedAny := false
	for i, leaf := range tree.leafs {
		newLeaf, changed := tree.clearLeaf(leaf, region.Interval)
		tree.leafs[i] = newLeaf
		changedAny = changedAny || changed
	}
	if changedAny {
		tree.dedupeLeafs()
		tree.sweep()
	}
	return nil
}

/*
clearLeaf removes the material of the given interval from the branch of
the given leaf. There are three cases: the interval is disjoint from
the branch (no-op); the interval covers a suffix of the branch
(external clearing: the branch is truncated and the deepest remaining
prefix vertex becomes the new leaf); or the interval lies inside the
branch (internal clearing: the interior vertices are unlinked and the
remaining suffix is relinked to the prefix, the leaf stays). Alleles
that straddle an interval boundary are split at the boundary, keeping
the part that falls outside the cleared region.

clearLeaf returns the resulting leaf and whether the branch changed.
Vertices that are no longer on any root-to-leaf path afterwards are
removed by sweep, which the caller runs once all leafs are processed.
*/
func (tree *Tree) clearLeaf(leaf int32, interval intervals.Interval) (int32, bool) {
	path := tree.path(leaf)
	first := len(path)
	for k := 1; k < len(path); k++ {
		a := path[k].allele.Interval
		if a.End > interval.Start && a.Start < interval.End {
			first = k
			break
		}
		if a.Start >= interval.End {
			return leaf, false
		}
	}
	if first == len(path) {
		return leaf, false
	}
	v := path[first]
	if a := v.allele.Interval; a.Start < interval.Start && a.End > interval.End {
		// a single allele spans the whole cleared region: split it in two
		suffixAllele := v.allele.Trim(intervals.Interval{Start: interval.End, End: a.End})
		v.allele = v.allele.Trim(intervals.Interval{Start: a.Start, End: interval.Start})
		s := tree.addVertex(suffixAllele, v.id)
		children := v.children[:len(v.children)-1]
		v.children = []int32{s.id}
		s.children = append(s.children, children...)
		for _, child := range children {
			tree.vertices[child].parent = s.id
		}
		if v == path[len(path)-1] {
			return s.id, true
		}
		return leaf, true
	}
	changed := false
	if a := v.allele.Interval; a.Start < interval.Start {
		// the allele straddles the start of the region: keep the part before it
		v.allele = v.allele.Trim(intervals.Interval{Start: a.Start, End: interval.Start})
		changed = true
		first++
	}
	suffix := len(path)
	for k := first; k < len(path); k++ {
		a := path[k].allele.Interval
		if a.Start >= interval.End {
			suffix = k
			break
		}
		if a.End > interval.End {
			// the allele straddles the end of the region: keep the part after it
			path[k].allele = path[k].allele.Trim(intervals.Interval{Start: interval.End, End: a.End})
			suffix = k
			changed = true
			break
		}
	}
	if suffix == len(path) {
		// external clearing
		return path[first-1].id, changed || first < len(path)
	}
	// internal clearing
	prefix := path[first-1]
	top := path[suffix]
	if top.parent != prefix.id {
		tree.removeChild(tree.vertices[top.parent], top.id)
		top.parent = prefix.id
		prefix.children = append(prefix.children, top.id)
		changed = true
	}
	return leaf, changed
}

func (tree *Tree) dedupeLeafs() {
	seen := make(map[int32]bool, len(tree.leafs))
	leafs := tree.leafs[:0]
	for _, leaf := range tree.leafs {
		if !seen[leaf] {
			seen[leaf] = true
			leafs = append(leafs, leaf)
		}
	}
	tree.leafs = leafs
}

// sweep removes every vertex that is no longer on a path from the root
// to a leaf, invalidating its id.
func (tree *Tree) sweep() {
	marked := bitset.New(uint(tree.verticesId + 1))
	for _, leaf := range tree.leafs {
		for v := tree.vertices[leaf]; ; v = tree.vertices[v.parent] {
			if marked.Test(uint(v.id)) {
				break
			}
			marked.Set(uint(v.id))
			if v.id == rootID {
				break
			}
		}
	}
	for id := range tree.vertices {
		if id != rootID && !marked.Test(uint(id)) {
			delete(tree.vertices, id)
		}
	}
	for _, v := range tree.vertices {
		children := v.children[:0]
		for _, child := range v.children {
			if marked.Test(uint(child)) {
				children = append(children, child)
			}
		}
		v.children = children
	}
}
