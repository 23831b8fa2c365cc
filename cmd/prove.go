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
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	v "github.com/spf13/viper"

	"github.com/bbva/frontier/log"
	"github.com/bbva/frontier/merkle"
)

var proveCmd *cobra.Command = &cobra.Command{
	Use:   "prove",
	Short: "Emit an inclusion proof for an event position",
	RunE:  runProve,
}

var proveCtx struct {
	eventsFile string
	hasherName string
	arity      int
	height     int
	index      uint64
	outFile    string
}

func init() {
	f := proveCmd.Flags()
	f.StringVar(&proveCtx.eventsFile, "events", "", "File with one event per line")
	f.StringVar(&proveCtx.hasherName, "hasher", "sha256", "Hash function: sha256 or blake2b")
	f.IntVar(&proveCtx.arity, "arity", 3, "Number of children per interior node")
	f.IntVar(&proveCtx.height, "height", 0, "Tree height (0 picks the minimum that fits)")
	f.Uint64Var(&proveCtx.index, "index", 0, "Position of the event to prove")
	f.StringVar(&proveCtx.outFile, "out", "", "Write the encoded proof to this file")

	_ = v.BindPFlag("prove.events", f.Lookup("events"))
	_ = v.BindPFlag("prove.hasher", f.Lookup("hasher"))
	_ = v.BindPFlag("prove.arity", f.Lookup("arity"))
	_ = v.BindPFlag("prove.height", f.Lookup("height"))
	_ = v.BindPFlag("prove.index", f.Lookup("index"))
	_ = v.BindPFlag("prove.out", f.Lookup("out"))

	_ = proveCmd.MarkFlagRequired("events")
	_ = proveCmd.MarkFlagRequired("index")

	Root.AddCommand(proveCmd)
}

func runProve(cmd *cobra.Command, args []string) error {
	tree, _, err := buildTree(proveCtx.hasherName, proveCtx.eventsFile, proveCtx.arity, proveCtx.height)
	if err != nil {
		return err
	}

	result := tree.Lookup(proveCtx.index)
	switch result.Code {
	case merkle.LookupNotFound:
		return fmt.Errorf("position %d is beyond the last event", proveCtx.index)
	case merkle.LookupNotInMemory:
		return fmt.Errorf("position %d has been forgotten", proveCtx.index)
	}

	buf, err := result.Proof.Encode()
	if err != nil {
		return err
	}

	out := proveCtx.outFile
	if out == "" {
		out = defaultOutPath(fmt.Sprintf("proof-%d", proveCtx.index))
	}
	if err := os.MkdirAll(filepath.Dir(out), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(out, buf, 0644); err != nil {
		return err
	}

	log.Debugf("Proof for position %d spans %d levels", proveCtx.index, result.Proof.Height)

	fmt.Printf("Root: %s\n", hex.EncodeToString(tree.RootDigest()))
	fmt.Printf("Proof written to %s\n", out)
	return nil
}
