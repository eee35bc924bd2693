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
	"github.com/exascience/haplo/intervals"
)

const rootID = 0

type vertex struct {
	id       int32
	allele   genome.ContigAllele
	parent   int32 // -1 for the root
	children []int32
}

/*
A Tree enumerates candidate haplotypes over a region of one contig. The
paths from the root to the leafs of the tree are the enumerated
haplotypes; a vertex holds one explicit allele, and a bifurcation marks
a position where candidate haplotypes diverge.

Vertices are addressed by ids from a counter that is never reused, so
an id that survived a structural change either resolves to the same
vertex or to nothing, never to an unrelated vertex.

A Tree is not safe for concurrent use. Parallel enumeration is done by
creating one independent Tree per region, see GenerateHaplotypesPerRegion.
*/
type Tree struct {
	contig     string
	reference  genome.Reference
	verticesId int32
	vertices   map[int32]*vertex
	leafs      []int32
	cache      map[uint64][]int32
}

// New creates an empty haplotype tree for the given contig. The tree is
// bound to this contig and reference for its lifetime.
func New(contig string, reference genome.Reference) *Tree {
	return &Tree{
		contig:    contig,
		reference: reference,
		vertices:  map[int32]*vertex{rootID: {id: rootID, parent: -1}},
		leafs:     []int32{rootID},
		cache:     make(map[uint64][]int32),
	}
}

// Contig returns the contig the tree is bound to.
func (tree *Tree) Contig() string {
	return tree.contig
}

// IsEmpty tells whether the tree contains any haplotypes.
func (tree *Tree) IsEmpty() bool {
	return len(tree.leafs) == 1 && tree.leafs[0] == rootID
}

// NumHaplotypes returns the number of haplotypes currently enumerated
// by the tree, which is the number of leafs.
func (tree *Tree) NumHaplotypes() int {
	if tree.IsEmpty() {
		return 0
	}
	return len(tree.leafs)
}

// EncompassingRegion returns the union of the regions of all alleles in
// the tree. For an empty tree, the region is empty.
func (tree *Tree) EncompassingRegion() genome.Region {
	var interval intervals.Interval
	first := true
	for id, v := range tree.vertices {
		if id == rootID {
			continue
		}
		if first {
			interval = v.allele.Interval
			first = false
		} else {
			interval = interval.Encompass(v.allele.Interval)
		}
	}
	return genome.Region{Contig: tree.contig, Interval: interval}
}

// Clone returns a fully independent copy of the tree. Mutating the
// clone never affects the original, which makes clones suitable for
// speculative extension with rollback.
func (tree *Tree) Clone() *Tree {
	result := &Tree{
		contig:     tree.contig,
		reference:  tree.reference,
		verticesId: tree.verticesId,
		vertices:   make(map[int32]*vertex, len(tree.vertices)),
		leafs:      append([]int32(nil), tree.leafs...),
		cache:      make(map[uint64][]int32, len(tree.cache)),
	}
	for id, v := range tree.vertices {
		result.vertices[id] = &vertex{
			id:       v.id,
			allele:   v.allele,
			parent:   v.parent,
			children: append([]int32(nil), v.children...),
		}
	}
	for key, leafs := range tree.cache {
		result.cache[key] = append([]int32(nil), leafs...)
	}
	return result
}

func (tree *Tree) newVertexId() int32 {
	tree.verticesId++
	return tree.verticesId
}

func (tree *Tree) addVertex(allele genome.ContigAllele, parent int32) *vertex {
	v := &vertex{
		id:     tree.newVertexId(),
		allele: allele,
		parent: parent,
	}
	tree.vertices[v.id] = v
	p := tree.vertices[parent]
	p.children = append(p.children, v.id)
	return v
}

func (tree *Tree) removeChild(parent *vertex, id int32) {
	for i, child := range parent.children {
		if child == id {
			parent.children = append(parent.children[:i], parent.children[i+1:]...)
			return
		}
	}
}

func (tree *Tree) isLeaf(id int32) bool {
	for _, leaf := range tree.leafs {
		if leaf == id {
			return true
		}
	}
	return false
}

// path returns the vertices from the root to the given vertex, root first.
func (tree *Tree) path(id int32) []*vertex {
	var result []*vertex
	for v := tree.vertices[id]; ; v = tree.vertices[v.parent] {
		result = append(result, v)
		if v.id == rootID {
			break
		}
	}
	for i, j := 0, len(result)-1; i < j; i, j = i+1, j-1 {
		result[i], result[j] = result[j], result[i]
	}
	return result
}

func (tree *Tree) dropCache() {
	if len(tree.cache) > 0 {
		tree.cache = make(map[uint64][]int32)
	}
}
