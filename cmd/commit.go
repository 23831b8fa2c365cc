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

	"github.com/spf13/cobra"
	v "github.com/spf13/viper"

	"github.com/bbva/frontier/log"
)

var commitCmd *cobra.Command = &cobra.Command{
	Use:   "commit",
	Short: "Build a tree from an events file and print its commitment",
	RunE:  runCommit,
}

var commitCtx struct {
	eventsFile string
	hasherName string
	arity      int
	height     int
	outFile    string
}

func init() {
	f := commitCmd.Flags()
	f.StringVar(&commitCtx.eventsFile, "events", "", "File with one event per line")
	f.StringVar(&commitCtx.hasherName, "hasher", "sha256", "Hash function: sha256 or blake2b")
	f.IntVar(&commitCtx.arity, "arity", 3, "Number of children per interior node")
	f.IntVar(&commitCtx.height, "height", 0, "Tree height (0 picks the minimum that fits)")
	f.StringVar(&commitCtx.outFile, "out", "", "Write the encoded commitment to this file")

	_ = v.BindPFlag("commit.events", f.Lookup("events"))
	_ = v.BindPFlag("commit.hasher", f.Lookup("hasher"))
	_ = v.BindPFlag("commit.arity", f.Lookup("arity"))
	_ = v.BindPFlag("commit.height", f.Lookup("height"))
	_ = v.BindPFlag("commit.out", f.Lookup("out"))

	_ = commitCmd.MarkFlagRequired("events")

	Root.AddCommand(commitCmd)
}

func runCommit(cmd *cobra.Command, args []string) error {
	tree, _, err := buildTree(commitCtx.hasherName, commitCtx.eventsFile, commitCtx.arity, commitCtx.height)
	if err != nil {
		return err
	}

	c := tree.Commitment()
	log.Debugf("Committed %d events with arity %d", c.NumLeaves, tree.Arity())

	fmt.Printf("Root: %s\n", hex.EncodeToString(c.RootDigest))
	fmt.Printf("Height: %d\n", c.Height)
	fmt.Printf("Leaves: %d\n", c.NumLeaves)

	if commitCtx.outFile != "" {
		buf, err := c.Encode()
		if err != nil {
			return err
		}
		if err := os.WriteFile(commitCtx.outFile, buf, 0644); err != nil {
			return err
		}
		fmt.Printf("Commitment written to %s\n", commitCtx.outFile)
	}
	return nil
}
