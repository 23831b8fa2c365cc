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
	"testing"

	assert "github.com/stretchr/testify/require"
)

func TestTreeRoundTrip(t *testing.T) {
	digester := newDigester()

	full, err := FromElems(digester, 3, 2, genElems(5))
	assert.NoError(t, err)
	light, err := FromElemsLightWeight(digester, 3, 2, genElems(5))
	assert.NoError(t, err)

	// A tree with explicitly forgotten leaves, to pin down that the
	// encoding preserves which nodes are forgotten.
	holed, err := FromElems(digester, 3, 2, genElems(5))
	assert.NoError(t, err)
	holed.Forget(1)
	holed.Forget(2)

	for _, tree := range []*Tree{full, light, holed} {
		buf, err := tree.Encode()
		assert.NoError(t, err)

		decoded, err := DecodeTree(buf, digester)
		assert.NoError(t, err)
		assert.Equal(t, tree, decoded, "Decoding must reproduce the tree exactly")

		// The decoded tree must stay fully operational.
		assert.NoError(t, decoded.Push([]byte("after decode")))
		assert.NoError(t, tree.Push([]byte("after decode")))
		assert.Equal(t, tree.RootDigest(), decoded.RootDigest())
	}
}

func TestProofRoundTrip(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(4))
	assert.NoError(t, err)

	result := tree.Lookup(2)
	assert.Equal(t, LookupFound, result.Code)

	buf, err := result.Proof.Encode()
	assert.NoError(t, err)
	decoded, err := DecodeProof(buf)
	assert.NoError(t, err)
	assert.Equal(t, result.Proof, decoded)

	valid, err := Verify(digester, tree.RootDigest(), 2, decoded)
	assert.NoError(t, err)
	assert.True(t, valid, "A decoded proof must still verify")
}

func TestNodeRoundTrip(t *testing.T) {
	digester := newDigester()

	branch := newBranch(digester, []*Node{
		newLeaf(digester, 0, []byte("left")),
		newForgotten(digester.LeafDigest(1, []byte("middle"))),
		newEmpty(digester),
	})

	testCases := []struct {
		desc string
		node *Node
	}{
		{"empty", newEmpty(digester)},
		{"leaf", newLeaf(digester, 42, []byte("an element"))},
		{"forgotten", newForgotten(digester.LeafDigest(7, []byte("gone")))},
		{"branch", branch},
	}

	for _, c := range testCases {
		buf, err := c.node.Encode()
		assert.NoError(t, err)

		decoded, err := DecodeNode(buf)
		assert.NoError(t, err)
		assert.Equal(t, c.node, decoded, "Node variant %q must round-trip exactly", c.desc)
	}
}

func TestCommitmentRoundTrip(t *testing.T) {
	tree, err := FromElems(newDigester(), 3, 2, genElems(6))
	assert.NoError(t, err)

	commitment := tree.Commitment()
	buf, err := commitment.Encode()
	assert.NoError(t, err)

	decoded, err := DecodeCommitment(buf)
	assert.NoError(t, err)
	assert.Equal(t, commitment, decoded)
}

func TestDecodeTreeRejectsGarbage(t *testing.T) {
	_, err := DecodeTree([]byte("not a tree"), newDigester())
	assert.Error(t, err)

	_, err = DecodeProof([]byte{0xc1})
	assert.Error(t, err)
}
