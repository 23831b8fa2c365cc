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

	"github.com/bbva/frontier/merkle"
)

var verifyCmd *cobra.Command = &cobra.Command{
	Use:   "verify",
	Short: "Verify an inclusion proof against a root digest",
	RunE:  runVerify,
}

var verifyCtx struct {
	proofFile  string
	hasherName string
	rootHex    string
	index      uint64
}

func init() {
	f := verifyCmd.Flags()
	f.StringVar(&verifyCtx.proofFile, "proof", "", "File with the encoded proof")
	f.StringVar(&verifyCtx.hasherName, "hasher", "sha256", "Hash function: sha256 or blake2b")
	f.StringVar(&verifyCtx.rootHex, "root", "", "Hex-encoded root digest to verify against")
	f.Uint64Var(&verifyCtx.index, "index", 0, "Position the proof claims")

	_ = v.BindPFlag("verify.proof", f.Lookup("proof"))
	_ = v.BindPFlag("verify.hasher", f.Lookup("hasher"))
	_ = v.BindPFlag("verify.root", f.Lookup("root"))
	_ = v.BindPFlag("verify.index", f.Lookup("index"))

	_ = verifyCmd.MarkFlagRequired("proof")
	_ = verifyCmd.MarkFlagRequired("root")
	_ = verifyCmd.MarkFlagRequired("index")

	Root.AddCommand(verifyCmd)
}

func runVerify(cmd *cobra.Command, args []string) error {
	hf, err := hasherF(verifyCtx.hasherName)
	if err != nil {
		return err
	}
	root, err := hex.DecodeString(verifyCtx.rootHex)
	if err != nil {
		return fmt.Errorf("malformed root digest: %v", err)
	}
	buf, err := os.ReadFile(verifyCtx.proofFile)
	if err != nil {
		return err
	}
	proof, err := merkle.DecodeProof(buf)
	if err != nil {
		return err
	}

	ok, err := merkle.Verify(merkle.NewTreeDigester(hf), root, verifyCtx.index, proof)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("proof is invalid for position %d", verifyCtx.index)
	}

	fmt.Printf("Verified event at position %d\n", verifyCtx.index)
	return nil
}
