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

import (
	"bytes"

	"github.com/bbva/frontier/hashing"
	"github.com/bbva/frontier/log"
)

// Forget discards the in-memory structure of the leaf at the given index,
// keeping only its digest. The root digest does not change. The result
// carries the element and the proof the leaf held, so a caller can archive
// them and later restore the leaf with Remember. Forgetting a leaf that is
// already forgotten, or was never appended, reports it the same way Lookup
// does.
//
// Only the leaf's own slot is discarded; empty slots beneath the same
// branches stay available, so future appends are never blocked. A branch
// whose children have all been forgotten collapses into a single forgotten
// placeholder.
func (t *Tree) Forget(index uint64) LookupResult {
	result := t.Lookup(index)
	if result.Code != LookupFound {
		return result
	}

	log.Debugf("Forgetting leaf at position %d", index)

	path := traversalPath(index, t.height, t.arity)
	forgetLeaf(t.root, path, t.height)
	forgetTotal.Inc()
	return result
}

// forgetLeaf replaces the addressed leaf with a forgotten placeholder and
// collapses every ancestor branch left with nothing but forgotten children.
func forgetLeaf(n *Node, path []int, depth int) {
	selector := path[depth-1]
	if depth == 1 {
		n.Children[selector] = newForgotten(n.Children[selector].Digest)
	} else {
		forgetLeaf(n.Children[selector], path, depth-1)
	}

	for _, child := range n.Children {
		if child.Kind != NodeForgotten {
			return
		}
	}
	n.Kind = NodeForgotten
	n.Children = nil
}

// Remember re-materializes a previously forgotten leaf. The proof must be
// valid against the tree's current root digest: nothing unverified is ever
// re-inserted. The forgotten ancestors along the path are rebuilt from the
// proof's sibling digests, and every rebuilt node is checked against the
// digest preserved when it was forgotten.
func (t *Tree) Remember(index uint64, elem []byte, proof *Proof) error {
	digests, err := proof.recompute(t.digester, index)
	if err != nil {
		return err
	}
	if !bytes.Equal(digests[len(digests)-1], t.root.Digest) {
		return newParameterError("proof does not match the current root digest")
	}
	if index >= t.numLeaves {
		return newParameterError("position %d has not been appended yet", index)
	}
	if !bytes.Equal(elem, proof.Path[0].Elem) {
		return newParameterError("element does not match the proof")
	}
	if proof.Height != t.height || len(proof.Path[1].Children) != t.arity {
		return newParameterError("proof shape does not match the tree")
	}

	log.Debugf("Remembering leaf at position %d", index)

	path := traversalPath(index, t.height, t.arity)
	if t.root.Kind == NodeForgotten {
		rebuilt := rebuildFromProof(t.digester, proof, digests, path, t.height, index, elem)
		if !bytes.Equal(rebuilt.Digest, t.root.Digest) {
			return newParameterError("proof is inconsistent with the forgotten root digest")
		}
		t.root = rebuilt
	}
	node := t.root
	for depth := t.height; depth >= 1; depth-- {
		if node.Kind != NodeBranch {
			return newParameterError("cannot remember through a non-materialized subtree")
		}
		selector := path[depth-1]
		child := node.Children[selector]

		if child.Kind == NodeForgotten {
			rebuilt := rebuildFromProof(t.digester, proof, digests, path, depth-1, index, elem)
			if !bytes.Equal(rebuilt.Digest, child.Digest) {
				return newParameterError("proof is inconsistent with the forgotten digest at level %d", depth-1)
			}
			node.Children[selector] = rebuilt
			child = rebuilt
		}

		if depth == 1 {
			if child.Kind != NodeLeaf {
				return newParameterError("position %d does not hold a leaf", index)
			}
			if !bytes.Equal(child.Elem, elem) {
				return newParameterError("a different element is already materialized at position %d", index)
			}
			return nil
		}
		node = child
	}
	return nil
}

// rebuildFromProof reconstructs the path node at the given level. Branches
// come back with digest-only children taken from the proof, except the path
// slot, which gets the recomputed digest of the level below so deeper
// rebuilds keep being checked against it.
func rebuildFromProof(d Digester, proof *Proof, digests []hashing.Digest, path []int, level int, index uint64, elem []byte) *Node {
	if level == 0 {
		return newLeaf(d, index, append([]byte{}, elem...))
	}
	children := make([]*Node, len(proof.Path[level].Children))
	for i, sibling := range proof.Path[level].Children {
		children[i] = newForgotten(copyDigest(sibling.Digest))
	}
	children[path[level-1]] = newForgotten(copyDigest(digests[level-1]))
	return newBranch(d, children)
}
