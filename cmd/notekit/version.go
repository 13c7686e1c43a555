// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of notekit",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout(), version, readRevision())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

// printVersion writes the release version, falling back to the VCS
// revision for untagged builds.
func printVersion(w io.Writer, v, revision string) {
	if v == "dev" && revision != "" {
		v = "dev-" + revision
	}
	fmt.Fprintf(w, "notekit %s (%s %s/%s)\n", v, runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// readRevision returns the short commit hash stamped by the Go toolchain.
func readRevision() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
