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

func TestForgetPreservesRootDigest(t *testing.T) {
	tree, err := FromElems(newDigester(), 3, 2, genElems(5))
	assert.NoError(t, err)
	root := tree.RootDigest()

	result := tree.Forget(1)
	assert.Equal(t, LookupFound, result.Code, "Forget must hand back what the leaf held")
	assert.Equal(t, []byte("event 1"), result.Elem)

	assert.Equal(t, root, tree.RootDigest(), "Forgetting must never alter the root digest")
	assert.Equal(t, LookupNotInMemory, tree.Lookup(1).Code)
	assert.Equal(t, LookupFound, tree.Lookup(0).Code, "Other leaves must stay materialized")
}

func TestForgetOutcomes(t *testing.T) {
	tree, err := FromElems(newDigester(), 3, 2, genElems(3))
	assert.NoError(t, err)

	assert.Equal(t, LookupNotFound, tree.Forget(7).Code, "Cannot forget what was never appended")

	assert.Equal(t, LookupFound, tree.Forget(2).Code)
	assert.Equal(t, LookupNotInMemory, tree.Forget(2).Code, "A leaf forgets only once")
}

func TestForgetDoesNotBlockAppends(t *testing.T) {
	input := genElems(9)
	tree, err := FromElems(newDigester(), 3, 2, input[:2])
	assert.NoError(t, err)

	// Forget the frontier leaf itself: its slot keeps the digest while the
	// empty slots beside it keep accepting appends.
	assert.Equal(t, LookupFound, tree.Forget(1).Code)
	assert.NoError(t, tree.Extend(input[2:]))
	assert.Equal(t, uint64(9), tree.NumLeaves())

	full, err := FromElems(newDigester(), 3, 2, input)
	assert.NoError(t, err)
	assert.Equal(t, full.RootDigest(), tree.RootDigest(),
		"Appending around a forgotten leaf must produce the same root")
}

func TestRememberRestoresForgottenLeaf(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(5))
	assert.NoError(t, err)

	forgotten := tree.Forget(3)
	assert.Equal(t, LookupFound, forgotten.Code)
	assert.Equal(t, LookupNotInMemory, tree.Lookup(3).Code)

	assert.NoError(t, tree.Remember(3, forgotten.Elem, forgotten.Proof))

	restored := tree.Lookup(3)
	assert.Equal(t, LookupFound, restored.Code)
	assert.Equal(t, []byte("event 3"), restored.Elem)

	valid, err := Verify(digester, tree.RootDigest(), 3, restored.Proof)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestRememberRejectsUnverifiedData(t *testing.T) {
	tree, err := FromElems(newDigester(), 3, 2, genElems(5))
	assert.NoError(t, err)

	forgotten := tree.Forget(3)
	assert.Equal(t, LookupFound, forgotten.Code)

	// A different element under the same proof must never get back in.
	err = tree.Remember(3, []byte("forged"), forgotten.Proof)
	assert.Error(t, err)
	assert.IsType(t, &ParameterError{}, err)

	// A proof with a tampered sibling digest must be rejected before any
	// re-materialization.
	bad := cloneProof(t, forgotten.Proof)
	bad.Path[1].Children[1].Digest[0] ^= 0xff
	err = tree.Remember(3, forgotten.Elem, bad)
	assert.Error(t, err)
	assert.IsType(t, &ParameterError{}, err)

	// A proof for another index is structurally unusable here.
	other := tree.Lookup(0)
	assert.Equal(t, LookupFound, other.Code)
	err = tree.Remember(3, other.Elem, other.Proof)
	assert.Error(t, err)
	assert.IsType(t, &ProofShapeError{}, err)

	assert.Equal(t, LookupNotInMemory, tree.Lookup(3).Code,
		"Nothing must have been re-materialized")
}

func TestRememberThroughCollapsedRoot(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 2, 1, genElems(2))
	assert.NoError(t, err)

	first := tree.Forget(0)
	assert.Equal(t, LookupFound, first.Code)
	second := tree.Forget(1)
	assert.Equal(t, LookupFound, second.Code)

	// With every child forgotten the root itself collapsed; remembering
	// must rebuild the path from the proof alone.
	assert.Equal(t, LookupNotInMemory, tree.Lookup(0).Code)

	assert.NoError(t, tree.Remember(0, first.Elem, first.Proof))
	restored := tree.Lookup(0)
	assert.Equal(t, LookupFound, restored.Code)
	assert.Equal(t, first.Elem, restored.Elem)
}

func TestRememberAlreadyMaterializedLeaf(t *testing.T) {
	tree, err := FromElems(newDigester(), 3, 2, genElems(4))
	assert.NoError(t, err)

	result := tree.Lookup(2)
	assert.Equal(t, LookupFound, result.Code)

	assert.NoError(t, tree.Remember(2, result.Elem, result.Proof),
		"Remembering an in-memory leaf is a no-op")
	assert.Equal(t, LookupFound, tree.Lookup(2).Code)
}
