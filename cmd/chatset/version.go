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
	Short: "Print the chatset version and build details",
	Run: func(cmd *cobra.Command, args []string) {
		printVersion(cmd.OutOrStdout())
	},
}

// printVersion writes the release version, the VCS revision when the binary
// was built from a checkout, and the Go toolchain version.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "chatset %s", version)
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && len(s.Value) >= 12 {
				fmt.Fprintf(w, " (%s)", s.Value[:12])
			}
		}
	}
	fmt.Fprintf(w, " %s\n", runtime.Version())
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
