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

import "fmt"

// ParameterError reports a request the tree cannot honor: a height or arity
// that cannot hold the given elements, an append past the remaining
// capacity, or a remember call whose proof does not match the tree.
type ParameterError struct {
	msg string
}

func newParameterError(format string, args ...interface{}) *ParameterError {
	return &ParameterError{msg: fmt.Sprintf(format, args...)}
}

func (e *ParameterError) Error() string {
	return fmt.Sprintf("merkle: %s", e.msg)
}

// ProofShapeError reports a structurally malformed proof: wrong path length,
// a position inconsistent with the queried index, or path entries of the
// wrong kind. A proof rejected this way never reaches digest comparison.
type ProofShapeError struct {
	msg string
}

func newProofShapeError(format string, args ...interface{}) *ProofShapeError {
	return &ProofShapeError{msg: fmt.Sprintf(format, args...)}
}

func (e *ProofShapeError) Error() string {
	return fmt.Sprintf("merkle: malformed proof: %s", e.msg)
}
