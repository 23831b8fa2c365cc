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

import "math/big"

// traversalPath returns the route from the root to the leaf at the given
// index: the index written in base arity, one child selector per level,
// least significant (leaf level) digit first. Descents read it from the
// back. The digit order is a wire-compatibility detail: proof verification
// depends on it, so it must never change.
func traversalPath(index uint64, height, arity int) []int {
	path := make([]int, height)
	for i := 0; i < height; i++ {
		path[i] = int(index % uint64(arity))
		index /= uint64(arity)
	}
	return path
}

// treeCapacity computes arity^height without overflowing, whatever the
// height.
func treeCapacity(arity, height int) *big.Int {
	return new(big.Int).Exp(big.NewInt(int64(arity)), big.NewInt(int64(height)), nil)
}

// fitsCapacity reports whether n leaves fit in a tree of the given shape.
func fitsCapacity(n uint64, arity, height int) bool {
	return new(big.Int).SetUint64(n).Cmp(treeCapacity(arity, height)) <= 0
}

// minHeight returns the minimal height whose capacity holds n elements,
// never less than 1.
func minHeight(n uint64, arity int) int {
	height := 1
	for !fitsCapacity(n, arity, height) {
		height++
	}
	return height
}
