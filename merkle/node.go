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

// NodeKind tags the variant held by a Node.
type NodeKind uint8

const (
	// NodeEmpty is a placeholder for an unfilled slot. A single empty node
	// stands for a whole empty subtree at any depth, so its digest is the
	// same fixed sentinel everywhere.
	NodeEmpty NodeKind = iota

	// NodeLeaf holds a materialized element at a given position.
	NodeLeaf

	// NodeBranch is an interior node that exclusively owns exactly arity
	// children.
	NodeBranch

	// NodeForgotten is a compact stand-in for a subtree whose structure has
	// been discarded. Only its digest survives, exactly as it was at the
	// moment of forgetting.
	NodeForgotten
)

// Node is a tree node. Every node caches its own digest, so reading it never
// requires a recomputation. Which of the remaining fields are meaningful
// depends on Kind.
type Node struct {
	Kind     NodeKind
	Digest   hashing.Digest
	Pos      uint64
	Elem     []byte
	Children []*Node
}

func newEmpty(d Digester) *Node {
	return &Node{Kind: NodeEmpty, Digest: d.EmptyDigest()}
}

func newLeaf(d Digester, pos uint64, elem []byte) *Node {
	return &Node{Kind: NodeLeaf, Digest: d.LeafDigest(pos, elem), Pos: pos, Elem: elem}
}

func newBranch(d Digester, children []*Node) *Node {
	return &Node{Kind: NodeBranch, Digest: d.BranchDigest(digestsOf(children)...), Children: children}
}

func newForgotten(digest hashing.Digest) *Node {
	return &Node{Kind: NodeForgotten, Digest: digest}
}

func digestsOf(children []*Node) []hashing.Digest {
	digests := make([]hashing.Digest, len(children))
	for i, c := range children {
		digests[i] = c.Digest
	}
	return digests
}

// isFull reports whether no empty slot remains beneath this node. Forgotten
// subtrees count as full: only fully packed subtrees are ever forgotten.
func (n *Node) isFull() bool {
	switch n.Kind {
	case NodeLeaf, NodeForgotten:
		return true
	case NodeBranch:
		for _, c := range n.Children {
			if !c.isFull() {
				return false
			}
		}
		return true
	default:
		return false
	}
}
