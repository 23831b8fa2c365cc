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
	"github.com/hashicorp/go-msgpack/codec"
)

// Trees, proofs and commitments cross the system boundary, so they carry a
// canonical msgpack encoding with exact round-trip fidelity, including which
// nodes are forgotten.

var handle = new(codec.MsgpackHandle)

func encodeMsgPack(in interface{}) ([]byte, error) {
	var buf []byte
	enc := codec.NewEncoderBytes(&buf, handle)
	if err := enc.Encode(in); err != nil {
		return nil, err
	}
	return buf, nil
}

func decodeMsgPack(buf []byte, out interface{}) error {
	dec := codec.NewDecoderBytes(buf, handle)
	return dec.Decode(out)
}

// Encode serializes a single node and, recursively, everything beneath it.
func (n *Node) Encode() ([]byte, error) {
	return encodeMsgPack(n)
}

// DecodeNode deserializes a node encoded with Node.Encode.
func DecodeNode(buf []byte) (*Node, error) {
	var n Node
	if err := decodeMsgPack(buf, &n); err != nil {
		return nil, err
	}
	return &n, nil
}

// Encode serializes a proof.
func (p *Proof) Encode() ([]byte, error) {
	return encodeMsgPack(p)
}

// DecodeProof deserializes a proof encoded with Proof.Encode. The result is
// structurally validated only when verified.
func DecodeProof(buf []byte) (*Proof, error) {
	var p Proof
	if err := decodeMsgPack(buf, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Encode serializes a commitment.
func (c *Commitment) Encode() ([]byte, error) {
	return encodeMsgPack(c)
}

// DecodeCommitment deserializes a commitment encoded with Commitment.Encode.
func DecodeCommitment(buf []byte) (*Commitment, error) {
	var c Commitment
	if err := decodeMsgPack(buf, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

// treeWire is the serialized form of a tree. The digester stays out: it is
// code, not state, and the caller must supply it again on decode.
type treeWire struct {
	Root      *Node
	Height    int
	NumLeaves uint64
	Arity     int
	Light     bool
}

// Encode serializes the whole tree, forgotten placeholders included.
func (t *Tree) Encode() ([]byte, error) {
	return encodeMsgPack(&treeWire{
		Root:      t.root,
		Height:    t.height,
		NumLeaves: t.numLeaves,
		Arity:     t.arity,
		Light:     t.light,
	})
}

// DecodeTree deserializes a tree encoded with Tree.Encode, reattaching the
// given digester. The digester must be the one the tree was built with,
// otherwise every digest check afterwards will fail.
func DecodeTree(buf []byte, digester Digester) (*Tree, error) {
	var w treeWire
	if err := decodeMsgPack(buf, &w); err != nil {
		return nil, err
	}
	if err := checkShape(w.Arity, w.Height); err != nil {
		return nil, err
	}
	if w.Root == nil {
		return nil, newParameterError("encoded tree has no root")
	}
	return &Tree{
		root:      w.Root,
		height:    w.Height,
		numLeaves: w.NumLeaves,
		arity:     w.Arity,
		light:     w.Light,
		digester:  digester,
	}, nil
}
