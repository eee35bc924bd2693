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
)

/*
Extend grows the tree at its frontier with the given allele.

Every leaf whose covered material ends at or before the allele's start
gets a new child holding the allele, and that child replaces the leaf.
An allele that overlaps a leaf's allele instead branches at the leaf's
parent, next to the leaf: this is how the alternate alleles of a
variant bifurcate the tree after its reference allele has been added.
An allele that lies before a leaf's material without overlapping it is
a logic error and panics.

Leafs that spell the same base sequence after an extension are not
merged; every path keeps its own identity.
*/
func (tree *Tree) Extend(allele genome.ContigAllele) *Tree {
	tree.dropCache()
	for i := 0; i < len(tree.leafs); i++ {
		i = tree.extendLeaf(i, allele)
	}
	return tree
}

// extendLeaf extends the leaf at position i in the leaf list and
// returns the position where the iteration over the leaf list should
// continue.
func (tree *Tree) extendLeaf(i int, allele genome.ContigAllele) int {
	leaf := tree.vertices[tree.leafs[i]]
	if leaf.id == rootID || leaf.allele.Interval.IsBefore(allele.Interval) {
		tree.leafs[i] = tree.addVertex(allele, leaf.id).id
		return i
	}
	if allele == leaf.allele {
		return i
	}
	if allele.Interval.Overlaps(leaf.allele.Interval) {
		parent := tree.vertices[leaf.parent]
		if (parent.id == rootID || parent.allele.Interval.IsBefore(allele.Interval)) &&
			!tree.hasChildAllele(parent.id, allele) {
			branch := tree.addVertex(allele, parent.id)
			tree.leafs = append(tree.leafs, 0)
			copy(tree.leafs[i+1:], tree.leafs[i:])
			tree.leafs[i] = branch.id
			return i + 1
		}
		return i
	}
	log.Panicf("illegal extension of haplotype tree for contig %v with out of order allele over %v-%v",
		tree.contig, allele.Interval.Start, allele.Interval.End)
	return i
}

// ExtendAllele is Extend for an allele with an explicit contig, which
// must be the contig the tree is bound to.
func (tree *Tree) ExtendAllele(allele genome.Allele) *Tree {
	for _, contigAllele := range allele.Expand(tree.contig) {
		tree.Extend(contigAllele)
	}
	return tree
}

// ExtendAll extends the tree with each element in order. Variants
// contribute their reference allele followed by their alternate
// alleles.
func (tree *Tree) ExtendAll(elements ...genome.Extension) *Tree {
	for _, element := range elements {
		for _, allele := range element.Expand(tree.contig) {
			tree.Extend(allele)
		}
	}
	return tree
}

// ExtendUntil extends the tree with each element in order, stopping
// once the number of haplotypes reaches maxHaplotypes. It returns the
// index of the first element that was not consumed.
func (tree *Tree) ExtendUntil(elements []genome.Extension, maxHaplotypes int) int {
	for i, element := range elements {
		for _, allele := range element.Expand(tree.contig) {
			tree.Extend(allele)
		}
		if tree.NumHaplotypes() >= maxHaplotypes {
			if tree.NumHaplotypes() == maxHaplotypes {
				return i + 1
			}
			return i
		}
	}
	return len(elements)
}

/*
Splice inserts the given allele at its position within every existing
branch, as opposed to Extend which only grows the frontier.

For every leaf, the tree is walked from the leaf towards the root to
find the vertex immediately preceding the allele's start. If the branch
does not already carry the allele, a new vertex holding the allele is
added below that branch point and becomes a new leaf. When the branch
point is the leaf itself the new vertex replaces it in the leaf list,
like an extension; otherwise the new leaf is added next to the existing
ones, below the frontier of the tree.
*/
func (tree *Tree) Splice(allele genome.ContigAllele) {
	if tree.IsEmpty() {
		tree.Extend(allele)
		return
	}
	tree.dropCache()
	current := append([]int32(nil), tree.leafs...)
	for i, leaf := range current {
		if tree.alleleExists(leaf, allele) {
			continue
		}
		branchPoint := tree.findAlleleBefore(leaf, allele)
		if tree.hasChildAllele(branchPoint, allele) {
			continue
		}
		v := tree.addVertex(allele, branchPoint)
		if branchPoint == leaf {
			tree.leafs[i] = v.id
		} else {
			tree.leafs = append(tree.leafs, v.id)
		}
	}
}

// SpliceAllele is Splice for an allele with an explicit contig, which
// must be the contig the tree is bound to.
func (tree *Tree) SpliceAllele(allele genome.Allele) {
	for _, contigAllele := range allele.Expand(tree.contig) {
		tree.Splice(contigAllele)
	}
}

// SpliceAll splices each allele in order.
func (tree *Tree) SpliceAll(alleles ...genome.ContigAllele) {
	for _, allele := range alleles {
		tree.Splice(allele)
	}
}

// alleleExists tells whether the allele occurs on the branch from the
// root to the given leaf.
func (tree *Tree) alleleExists(leaf int32, allele genome.ContigAllele) bool {
	for v := tree.vertices[leaf]; v.id != rootID; v = tree.vertices[v.parent] {
		if v.allele == allele {
			return true
		}
	}
	return false
}

// findAlleleBefore returns the deepest vertex on the branch to the
// given leaf whose allele ends at or before the given allele's start,
// or the root if there is no such vertex.
func (tree *Tree) findAlleleBefore(leaf int32, allele genome.ContigAllele) int32 {
	for v := tree.vertices[leaf]; v.id != rootID; v = tree.vertices[v.parent] {
		if v.allele.Interval.IsBefore(allele.Interval) {
			return v.id
		}
	}
	return rootID
}

func (tree *Tree) hasChildAllele(id int32, allele genome.ContigAllele) bool {
	for _, child := range tree.vertices[id].children {
		if tree.vertices[child].allele == allele {
			return true
		}
	}
	return false
}
