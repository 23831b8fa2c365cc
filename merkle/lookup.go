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

package merkle

import "github.com/bbva/frontier/hashing"

// LookupCode classifies the outcome of a lookup. A forgotten or absent leaf
// is an expected condition, not an error.
type LookupCode int

const (
	// LookupFound means the leaf is materialized and came back with its
	// inclusion proof.
	LookupFound LookupCode = iota

	// LookupNotInMemory means the leaf exists but it, or one of its
	// ancestors, has been forgotten.
	LookupNotInMemory

	// LookupNotFound means no element was ever appended at that index.
	LookupNotFound
)

// LookupResult carries the element and its inclusion proof when Code is
// LookupFound, and nothing otherwise.
type LookupResult struct {
	Code  LookupCode
	Elem  []byte
	Proof *Proof
}

// Lookup retrieves the element at the given index together with a proof of
// its inclusion under the current root. The proof snapshots sibling digests
// level by level, so it stays verifiable after the tree mutates, against the
// root digest of the moment it was taken.
func (t *Tree) Lookup(index uint64) LookupResult {
	lookupTotal.Inc()

	if index >= t.numLeaves {
		return LookupResult{Code: LookupNotFound}
	}

	path := traversalPath(index, t.height, t.arity)
	branches := make([]*Node, 0, t.height)
	node := t.root
	for depth := t.height; depth >= 1; depth-- {
		if node.Kind == NodeForgotten {
			return LookupResult{Code: LookupNotInMemory}
		}
		if node.Kind != NodeBranch {
			return LookupResult{Code: LookupNotFound}
		}
		branches = append(branches, snapshotBranch(node))
		node = node.Children[path[depth-1]]
	}

	switch node.Kind {
	case NodeForgotten:
		return LookupResult{Code: LookupNotInMemory}
	case NodeLeaf:
		// Assemble the proof leaf-first, then the branches bottom-up.
		proofPath := make([]*Node, 0, t.height+1)
		proofPath = append(proofPath, snapshotLeaf(node))
		for i := len(branches) - 1; i >= 0; i-- {
			proofPath = append(proofPath, branches[i])
		}
		return LookupResult{
			Code:  LookupFound,
			Elem:  node.Elem,
			Proof: &Proof{Height: t.height, Pos: index, Path: proofPath},
		}
	default:
		return LookupResult{Code: LookupNotFound}
	}
}

// snapshotBranch copies a branch for a proof: every child collapses into a
// digest-only placeholder, which is all a verifier needs.
func snapshotBranch(n *Node) *Node {
	children := make([]*Node, len(n.Children))
	for i, c := range n.Children {
		children[i] = newForgotten(copyDigest(c.Digest))
	}
	return &Node{Kind: NodeBranch, Digest: copyDigest(n.Digest), Children: children}
}

func snapshotLeaf(n *Node) *Node {
	return &Node{
		Kind:   NodeLeaf,
		Digest: copyDigest(n.Digest),
		Pos:    n.Pos,
		Elem:   append([]byte{}, n.Elem...),
	}
}

func copyDigest(d hashing.Digest) hashing.Digest {
	return append(hashing.Digest{}, d...)
}
