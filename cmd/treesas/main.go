// Copyright 2026 The LevelDB-Go and Pebble Authors. All rights reserved. Use
// of this source code is governed by a BSD-style license that can be found in
// the LICENSE file.

package main

import (
	"os"

	"github.com/cockroachdb/treesas/tool"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "treesas [command] (flags)",
	Short: "decision tree to SAS scoring code tool",
	Long:  ``,
}

func main() {
	cobra.EnableCommandSorting = false

	t := tool.New(tool.WithLogger(newLogger(os.Stderr)))
	rootCmd.AddCommand(t.Commands...)
	rootCmd.SilenceUsage = true

	if err := rootCmd.Execute(); err != nil {
		// Cobra has already printed the error message.
		os.Exit(1)
	}
}
