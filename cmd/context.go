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

package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	homedir "github.com/mitchellh/go-homedir"

	"github.com/bbva/frontier/hashing"
	"github.com/bbva/frontier/merkle"
)

// hasherF resolves the hasher named on the command line.
func hasherF(name string) (func() hashing.Hasher, error) {
	switch name {
	case "sha256":
		return hashing.NewSha256Hasher, nil
	case "blake2b":
		return hashing.NewBlake2bHasher, nil
	default:
		return nil, fmt.Errorf("unknown hasher %q: must be sha256 or blake2b", name)
	}
}

// readEvents loads one event per line from the given file. Events keep their
// input order: it decides their positions in the tree.
func readEvents(path string) ([][]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	lines := bytes.Split(data, []byte("\n"))
	events := make([][]byte, 0, len(lines))
	for _, line := range lines {
		if len(line) > 0 {
			events = append(events, line)
		}
	}
	return events, nil
}

// buildTree assembles a full-retention tree from the command parameters.
func buildTree(hasherName, eventsFile string, arity, height int) (*merkle.Tree, *merkle.TreeDigester, error) {
	hf, err := hasherF(hasherName)
	if err != nil {
		return nil, nil, err
	}
	events, err := readEvents(eventsFile)
	if err != nil {
		return nil, nil, err
	}
	digester := merkle.NewTreeDigester(hf)
	tree, err := merkle.FromElems(digester, arity, height, events)
	if err != nil {
		return nil, nil, err
	}
	return tree, digester, nil
}

// defaultOutPath resolves the default location for emitted proofs.
func defaultOutPath(name string) string {
	home, err := homedir.Dir()
	if err != nil {
		return name
	}
	return filepath.Join(home, ".frontier", name)
}
