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

import "github.com/bbva/frontier/log"

// elemCursor walks an element batch, letting the recursion peek whether
// anything remains before committing to a structural change.
type elemCursor struct {
	elems [][]byte
	next  int
}

func (c *elemCursor) remaining() bool {
	return c.next < len(c.elems)
}

func (c *elemCursor) take() []byte {
	elem := c.elems[c.next]
	c.next++
	return elem
}

// Push appends a single element. It is Extend with a one-element batch.
func (t *Tree) Push(elem []byte) error {
	return t.Extend([][]byte{elem})
}

// Extend appends the given elements in order, assigning them strictly
// sequential positions. If the batch exceeds the remaining capacity, every
// element that fits is inserted and kept, and only then a ParameterError is
// returned: partial insertion is the contract, not a bug, and is never
// rolled back. An empty batch always succeeds, even on a full tree.
func (t *Tree) Extend(elems [][]byte) error {
	if len(elems) == 0 {
		return nil
	}
	if t.isFull() {
		return newParameterError("tree is full: capacity %v exhausted", t.Capacity())
	}

	log.Debugf("Extending tree with %d elements from position %d", len(elems), t.numLeaves)

	path := traversalPath(t.numLeaves, t.height, t.arity)
	cursor := &elemCursor{elems: elems}
	pos := t.numLeaves
	inserted, err := t.extendSubtree(t.root, t.height, &pos, path, true, cursor)
	t.numLeaves += inserted
	insertTotal.Add(float64(inserted))

	if err != nil {
		return err
	}
	if cursor.remaining() {
		return newParameterError("exceeded tree capacity: %d of %d elements inserted",
			inserted, len(elems))
	}
	return nil
}

// extendSubtree grows the subtree rooted at n, filling leaf slots from the
// traversal path onward until either the batch or the subtree capacity runs
// out. Branch digests are recomputed bottom-up before returning, so the root
// digest is valid the moment Extend comes back.
//
// atFrontier marks the nodes lying on the path to the next free slot; only
// there does the descent follow the traversal path, and only there can
// fully packed left siblings still be materialized. Everywhere else the
// descent starts at the leftmost child. In light-weight mode a child is
// forgotten as soon as the descent moves past it with elements still left
// to place.
func (t *Tree) extendSubtree(n *Node, depth int, pos *uint64, path []int, atFrontier bool, cursor *elemCursor) (uint64, error) {
	if !cursor.remaining() {
		return 0, nil
	}

	switch n.Kind {
	case NodeForgotten:
		return 0, newParameterError("cannot extend a forgotten subtree")
	case NodeLeaf:
		return 0, newParameterError("leaf slot at position %d already occupied", n.Pos)
	case NodeEmpty:
		if depth == 0 {
			elem := cursor.take()
			n.Kind = NodeLeaf
			n.Pos = *pos
			n.Elem = elem
			n.Digest = t.digester.LeafDigest(*pos, elem)
			*pos++
			return 1, nil
		}
		n.Kind = NodeBranch
		n.Children = make([]*Node, t.arity)
		for i := range n.Children {
			n.Children[i] = newEmpty(t.digester)
		}
	}

	start := 0
	if atFrontier {
		start = path[depth-1]
		if t.light {
			for j := 0; j < start; j++ {
				child := n.Children[j]
				if child.Kind != NodeForgotten && child.isFull() {
					n.Children[j] = newForgotten(child.Digest)
					forgetTotal.Inc()
				}
			}
		}
	}

	var count uint64
	for f := start; f < t.arity; f++ {
		child := n.Children[f]
		inserted, err := t.extendSubtree(child, depth-1, pos, path, atFrontier && f == start, cursor)
		count += inserted
		if err != nil {
			n.Digest = t.digester.BranchDigest(digestsOf(n.Children)...)
			return count, err
		}
		if !cursor.remaining() || f+1 >= t.arity {
			break
		}
		// The child just became full and more elements remain: it is off
		// the frontier now.
		if t.light {
			n.Children[f] = newForgotten(child.Digest)
			forgetTotal.Inc()
		}
	}

	n.Digest = t.digester.BranchDigest(digestsOf(n.Children)...)
	return count, nil
}
