/*
   Copyright 2018-2019 Banco Bilbao Vizcaya Argentaria, S.A.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

// Package merkle implements a generic append-only Merkle tree. The tree
// produces a compact commitment to an ordered sequence of elements and
// builds succinct inclusion proofs a verifier can check holding nothing but
// a root digest.
//
// A tree operates in one of two retention modes sharing a single append
// algorithm. A full-retention tree keeps every node in memory. A
// light-weight tree eagerly replaces fully packed subtrees that fall off the
// frontier with digest-only placeholders, so memory stays proportional to
// the tree height instead of the leaf count, at the price of no longer
// serving proofs for the forgotten leaves.
//
// A tree instance assumes a single logical writer and performs no internal
// locking.
package merkle

import (
	"math/big"

	"github.com/bbva/frontier/hashing"
)

// Tree is an append-only Merkle tree with a fixed arity and height.
type Tree struct {
	root      *Node
	height    int
	numLeaves uint64
	arity     int
	light     bool
	digester  Digester
}

// New returns an empty full-retention tree of the given arity and height.
func New(digester Digester, arity, height int) (*Tree, error) {
	return newTree(digester, arity, height, false)
}

// NewLightWeight returns an empty tree of the given arity and height that
// only retains its frontier.
func NewLightWeight(digester Digester, arity, height int) (*Tree, error) {
	return newTree(digester, arity, height, true)
}

func newTree(digester Digester, arity, height int, light bool) (*Tree, error) {
	if err := checkShape(arity, height); err != nil {
		return nil, err
	}
	return &Tree{
		root:     newEmpty(digester),
		height:   height,
		arity:    arity,
		light:    light,
		digester: digester,
	}, nil
}

// FromElems builds a full-retention tree holding the given elements in input
// order. A height of 0 picks the minimal height able to hold them all; an
// explicit height fails with a ParameterError if the elements do not fit.
func FromElems(digester Digester, arity, height int, elems [][]byte) (*Tree, error) {
	return fromElems(digester, arity, height, false, elems)
}

// FromElemsLightWeight is FromElems for a light-weight tree: everything but
// the frontier path to the last leaf comes out already forgotten.
func FromElemsLightWeight(digester Digester, arity, height int, elems [][]byte) (*Tree, error) {
	return fromElems(digester, arity, height, true, elems)
}

func fromElems(digester Digester, arity, height int, light bool, elems [][]byte) (*Tree, error) {
	numLeaves := uint64(len(elems))
	if height <= 0 {
		height = minHeight(numLeaves, arity)
	}
	if err := checkShape(arity, height); err != nil {
		return nil, err
	}
	if !fitsCapacity(numLeaves, arity, height) {
		return nil, newParameterError("%d elements exceed the capacity of a tree with arity %d and height %d",
			numLeaves, arity, height)
	}

	t := &Tree{
		root:      buildTree(digester, arity, height, elems),
		height:    height,
		numLeaves: numLeaves,
		arity:     arity,
		light:     light,
		digester:  digester,
	}
	if light {
		t.forgetPastFrontier()
	}
	return t, nil
}

func checkShape(arity, height int) error {
	if arity < 2 {
		return newParameterError("arity must be at least 2, got %d", arity)
	}
	if height < 1 {
		return newParameterError("height must be at least 1, got %d", height)
	}
	return nil
}

// buildTree assembles the node structure bottom-up: elements become leaves
// left to right, levels get padded with empty placeholders, and every branch
// digest is computed from its children before the level above.
func buildTree(d Digester, arity, height int, elems [][]byte) *Node {
	if len(elems) == 0 {
		return newEmpty(d)
	}
	level := make([]*Node, len(elems))
	for i, elem := range elems {
		level[i] = newLeaf(d, uint64(i), elem)
	}
	for depth := 1; depth <= height; depth++ {
		next := make([]*Node, 0, (len(level)+arity-1)/arity)
		for start := 0; start < len(level); start += arity {
			children := make([]*Node, arity)
			took := copy(children, level[start:min(start+arity, len(level))])
			for j := took; j < arity; j++ {
				children[j] = newEmpty(d)
			}
			next = append(next, newBranch(d, children))
		}
		level = next
	}
	return level[0]
}

// forgetPastFrontier walks the path to the last inserted leaf and replaces
// every fully packed subtree strictly to its left with a forgotten
// placeholder. The path itself stays materialized: it is exactly what the
// next append needs.
func (t *Tree) forgetPastFrontier() {
	if t.numLeaves == 0 {
		return
	}
	path := traversalPath(t.numLeaves-1, t.height, t.arity)
	node := t.root
	for depth := t.height; depth >= 1; depth-- {
		if node.Kind != NodeBranch {
			return
		}
		selector := path[depth-1]
		for j := 0; j < selector; j++ {
			child := node.Children[j]
			if child.Kind != NodeForgotten && child.isFull() {
				node.Children[j] = newForgotten(child.Digest)
				forgetTotal.Inc()
			}
		}
		node = node.Children[selector]
	}
}

// Height returns the tree height, fixed for the tree's lifetime.
func (t *Tree) Height() int {
	return t.height
}

// Arity returns the tree branching factor, fixed for the tree's lifetime.
func (t *Tree) Arity() int {
	return t.arity
}

// NumLeaves returns the number of elements appended so far.
func (t *Tree) NumLeaves() uint64 {
	return t.numLeaves
}

// Capacity returns the maximum number of leaves the tree can ever hold.
func (t *Tree) Capacity() *big.Int {
	return treeCapacity(t.arity, t.height)
}

func (t *Tree) isFull() bool {
	return new(big.Int).SetUint64(t.numLeaves).Cmp(t.Capacity()) >= 0
}

// RootDigest returns a copy of the current root digest. It is always up to
// date: digests are recomputed eagerly on every mutation.
func (t *Tree) RootDigest() hashing.Digest {
	return append(hashing.Digest{}, t.root.Digest...)
}

// Commitment is the externally visible summary of a tree: everything a
// verifier needs to check inclusion proofs against it.
type Commitment struct {
	RootDigest hashing.Digest
	Height     int
	NumLeaves  uint64
}

// Commitment returns the tree's current commitment.
func (t *Tree) Commitment() *Commitment {
	return &Commitment{
		RootDigest: t.RootDigest(),
		Height:     t.height,
		NumLeaves:  t.numLeaves,
	}
}
