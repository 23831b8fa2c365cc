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

// Package cmd implements the frontier command line commands.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	v "github.com/spf13/viper"

	"github.com/bbva/frontier/log"
)

var Root *cobra.Command = &cobra.Command{
	Use:   "frontier",
	Short: "Frontier append-only Merkle tree",
	Long: "Frontier maintains an append-only Merkle tree over a sequence of events and " +
		"produces compact commitments and inclusion proofs for them. This command builds " +
		"trees from event files, emits proofs and verifies them against a root digest.",
	// SilenceUsage is set to true -> https://github.com/spf13/cobra/issues/340
	SilenceUsage: true,
}

var logLevel string

func init() {
	f := Root.PersistentFlags()
	f.StringVarP(&logLevel, "log", "l", "error", "Verbosity: silent, error, info or debug")
	_ = v.BindPFlag("log", f.Lookup("log"))

	cobra.OnInitialize(func() {
		log.SetLogger("frontier", v.GetString("log"))
	})
}

var releaseVersion, releaseCommit, releaseDate = "dev", "none", "unknown"

// SetReleaseInfo records the build information shown by the version command.
func SetReleaseInfo(version, commit, date string) {
	releaseVersion = version
	releaseCommit = commit
	releaseDate = date
}

var versionCmd *cobra.Command = &cobra.Command{
	Use:   "version",
	Short: "Show the frontier build information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("frontier %s (commit %s, built %s)\n", releaseVersion, releaseCommit, releaseDate)
	},
}

func init() {
	Root.AddCommand(versionCmd)
}
