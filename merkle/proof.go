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
)

// Proof is a compact inclusion witness for the leaf at position Pos in a
// tree of the given height. Path holds one node snapshot per level, leaf
// first: Path[0] records the leaf's position and element, and Path[i] the
// sibling digests of the branch crossed at level i.
type Proof struct {
	Height int
	Pos    uint64
	Path   []*Node
}

// Verify checks a proof against a claimed root digest. It is pure and
// stateless: no live tree is involved. The leaf digest is recomputed from
// the recorded position and element, never read from the proof's cache, so
// tampering with either is always caught. It returns whether the recomputed
// root matches the claim; an error is returned only for structurally
// malformed proofs, which never reach digest comparison.
func Verify(digester Digester, rootDigest hashing.Digest, index uint64, proof *Proof) (bool, error) {
	verifyTotal.Inc()

	digests, err := proof.recompute(digester, index)
	if err != nil {
		return false, err
	}
	return bytes.Equal(digests[len(digests)-1], rootDigest), nil
}

// recompute rebuilds the digest of every path node bottom-up from the proof
// contents alone. digests[0] is the fresh leaf digest and digests[Height]
// the recomputed root. Whatever the proof recorded at the path slot of each
// branch is ignored: the recomputed digest of the level below takes its
// place.
func (p *Proof) recompute(digester Digester, index uint64) ([]hashing.Digest, error) {
	arity, err := p.checkShape(index)
	if err != nil {
		return nil, err
	}

	path := traversalPath(index, p.Height, arity)
	digests := make([]hashing.Digest, p.Height+1)

	leaf := p.Path[0]
	digests[0] = digester.LeafDigest(leaf.Pos, leaf.Elem)

	for i := 1; i <= p.Height; i++ {
		siblings := digestsOf(p.Path[i].Children)
		siblings[path[i-1]] = digests[i-1]
		digests[i] = digester.BranchDigest(siblings...)
	}
	return digests, nil
}

// checkShape validates the structure of the proof against the queried index
// before any digest work, and resolves the arity it was built for.
func (p *Proof) checkShape(index uint64) (int, error) {
	if p == nil {
		return 0, newProofShapeError("no proof given")
	}
	if p.Height < 1 {
		return 0, newProofShapeError("height must be at least 1, got %d", p.Height)
	}
	if len(p.Path) != p.Height+1 {
		return 0, newProofShapeError("path length %d does not match height %d", len(p.Path), p.Height)
	}
	if p.Pos != index {
		return 0, newProofShapeError("proof position %d does not match index %d", p.Pos, index)
	}

	leaf := p.Path[0]
	if leaf == nil || leaf.Kind != NodeLeaf {
		return 0, newProofShapeError("path must start with a leaf")
	}
	if leaf.Pos != index {
		return 0, newProofShapeError("leaf position %d does not match index %d", leaf.Pos, index)
	}

	arity := 0
	for i := 1; i <= p.Height; i++ {
		branch := p.Path[i]
		if branch == nil || branch.Kind != NodeBranch {
			return 0, newProofShapeError("path entry %d must be a branch", i)
		}
		if arity == 0 {
			arity = len(branch.Children)
			if arity < 2 {
				return 0, newProofShapeError("branches must have at least 2 children, got %d", arity)
			}
		} else if len(branch.Children) != arity {
			return 0, newProofShapeError("path entry %d has %d children, expected %d",
				i, len(branch.Children), arity)
		}
		for j, child := range branch.Children {
			if child == nil {
				return 0, newProofShapeError("path entry %d has no child at slot %d", i, j)
			}
		}
	}

	if !fitsCapacity(index+1, arity, p.Height) {
		return 0, newProofShapeError("index %d out of range for arity %d and height %d",
			index, arity, p.Height)
	}
	return arity, nil
}
