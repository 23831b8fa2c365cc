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
	"github.com/bbva/frontier/hashing"
	"github.com/bbva/frontier/util"
)

// Salts used to separate the leaf and interior digest domains, so a leaf
// digest can never be replayed as a branch digest.
var (
	leafSalt     = []byte{0x0}
	interiorSalt = []byte{0x1}
)

// Digester produces every digest the tree caches. It is the contract an
// external collaborator must fulfill to plug its own digest function into
// the tree.
type Digester interface {
	// LeafDigest digests a (position, element) pair.
	LeafDigest(pos uint64, elem []byte) hashing.Digest

	// BranchDigest digests an ordered sequence of child digests.
	BranchDigest(children ...hashing.Digest) hashing.Digest

	// EmptyDigest returns the fixed sentinel digest shared by every empty
	// slot at any depth.
	EmptyDigest() hashing.Digest
}

// TreeDigester is the default Digester, built on a hashing.Hasher. The leaf
// position is bound into the leaf digest, so moving an element to another
// position always changes the digest.
type TreeDigester struct {
	hasher hashing.Hasher
}

func NewTreeDigester(hasherF func() hashing.Hasher) *TreeDigester {
	return &TreeDigester{hasher: hasherF()}
}

func (d *TreeDigester) LeafDigest(pos uint64, elem []byte) hashing.Digest {
	return d.hasher.Salted(leafSalt, util.Uint64AsBytes(pos), elem)
}

func (d *TreeDigester) BranchDigest(children ...hashing.Digest) hashing.Digest {
	data := make([][]byte, len(children))
	for i, c := range children {
		data[i] = c
	}
	return d.hasher.Salted(interiorSalt, data...)
}

func (d *TreeDigester) EmptyDigest() hashing.Digest {
	return make(hashing.Digest, d.hasher.Len()/8)
}
