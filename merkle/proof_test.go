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

// cloneProof round-trips a proof through its canonical encoding, giving the
// tests an independent copy to tamper with.
func cloneProof(t *testing.T, p *Proof) *Proof {
	t.Helper()
	buf, err := p.Encode()
	assert.NoError(t, err)
	clone, err := DecodeProof(buf)
	assert.NoError(t, err)
	return clone
}

func TestVerifyValidProof(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(5))
	assert.NoError(t, err)

	for i := uint64(0); i < 5; i++ {
		result := tree.Lookup(i)
		assert.Equal(t, LookupFound, result.Code)

		valid, err := Verify(digester, tree.RootDigest(), i, result.Proof)
		assert.NoError(t, err)
		assert.True(t, valid, "A genuine proof for leaf %d must verify", i)
	}
}

func TestVerifyAgainstLightWeightRoot(t *testing.T) {
	digester := newDigester()
	input := elems("e3", "e1", "e3", "e1")

	light, err := FromElemsLightWeight(digester, 3, 2, input[:2])
	assert.NoError(t, err)
	full, err := FromElems(digester, 3, 2, input[:2])
	assert.NoError(t, err)

	assert.NoError(t, light.Extend(input[2:]))
	assert.NoError(t, full.Extend(input[2:]))

	// The light tree no longer holds leaf 0, but a proof taken from the
	// full-retention twin must verify against the light tree's root.
	result := full.Lookup(0)
	assert.Equal(t, LookupFound, result.Code)
	assert.Equal(t, []byte("e3"), result.Elem)

	valid, err := Verify(digester, light.RootDigest(), 0, result.Proof)
	assert.NoError(t, err)
	assert.True(t, valid)
}

func TestVerifyTamperedElement(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(4))
	assert.NoError(t, err)
	result := tree.Lookup(0)
	assert.Equal(t, LookupFound, result.Code)

	bad := cloneProof(t, result.Proof)
	bad.Path[0].Elem = []byte("forged")

	// The leaf digest is recomputed from the recorded element, so the stale
	// cached digest cannot mask the tampering.
	valid, err := Verify(digester, tree.RootDigest(), 0, bad)
	assert.NoError(t, err, "A well-formed but false proof is not an error")
	assert.False(t, valid)
}

func TestVerifyForgedPosition(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(4))
	assert.NoError(t, err)
	result := tree.Lookup(0)
	assert.Equal(t, LookupFound, result.Code)

	// Claim that leaf 2 holds the value originally appended at index 0,
	// keeping the proof shape consistent with the claim.
	forged := cloneProof(t, result.Proof)
	forged.Pos = 2
	forged.Path[0].Pos = 2

	valid, err := Verify(digester, tree.RootDigest(), 2, forged)
	assert.NoError(t, err)
	assert.False(t, valid, "A relocated leaf must never verify")
}

func TestVerifyTamperedSiblingDigest(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(4))
	assert.NoError(t, err)
	result := tree.Lookup(1)
	assert.Equal(t, LookupFound, result.Code)

	bad := cloneProof(t, result.Proof)
	bad.Path[1].Children[0].Digest[0] ^= 0xff

	valid, err := Verify(digester, tree.RootDigest(), 1, bad)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyAgainstWrongRoot(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(4))
	assert.NoError(t, err)
	other, err := FromElems(digester, 3, 2, genElems(5))
	assert.NoError(t, err)

	result := tree.Lookup(0)
	assert.Equal(t, LookupFound, result.Code)

	valid, err := Verify(digester, other.RootDigest(), 0, result.Proof)
	assert.NoError(t, err)
	assert.False(t, valid)
}

func TestVerifyMalformedProofShape(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 3, 2, genElems(4))
	assert.NoError(t, err)
	result := tree.Lookup(1)
	assert.Equal(t, LookupFound, result.Code)
	root := tree.RootDigest()

	testCases := []struct {
		desc   string
		mutate func(p *Proof)
	}{
		{"nil proof", nil},
		{"truncated path", func(p *Proof) { p.Path = p.Path[:2] }},
		{"height mismatch", func(p *Proof) { p.Height = 3 }},
		{"position mismatch", func(p *Proof) { p.Pos = 2 }},
		{"leaf position mismatch", func(p *Proof) { p.Path[0].Pos = 2 }},
		{"leaf replaced by branch", func(p *Proof) { p.Path[0] = p.Path[1] }},
		{"branch replaced by leaf", func(p *Proof) { p.Path[2] = p.Path[0] }},
		{"missing child", func(p *Proof) { p.Path[1].Children = p.Path[1].Children[:2] }},
		{"nil child", func(p *Proof) { p.Path[2].Children[0] = nil }},
	}

	for _, c := range testCases {
		proof := cloneProof(t, result.Proof)
		if c.mutate != nil {
			c.mutate(proof)
		} else {
			proof = nil
		}

		_, err := Verify(digester, root, 1, proof)
		assert.Error(t, err, "Case %q must be a hard error, not a verification failure", c.desc)
		assert.IsType(t, &ProofShapeError{}, err, "Case %q", c.desc)
	}
}

func TestVerifyIndexOutOfRangeForHeight(t *testing.T) {
	digester := newDigester()
	tree, err := FromElems(digester, 2, 2, genElems(4))
	assert.NoError(t, err)
	result := tree.Lookup(3)
	assert.Equal(t, LookupFound, result.Code)

	forged := cloneProof(t, result.Proof)
	forged.Pos = 5
	forged.Path[0].Pos = 5

	_, err = Verify(digester, tree.RootDigest(), 5, forged)
	assert.Error(t, err, "An index beyond the declared capacity is a shape error")
	assert.IsType(t, &ProofShapeError{}, err)
}
