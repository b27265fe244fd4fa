// Command nd computes and applies recursive diffs for nested data
// structures stored as JSON or YAML files.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

// nd follows the diff(1) exit convention: 0 when inputs are equal, 1 when
// they differ, 2 on trouble
var exitStatus int

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(2)
	}
	os.Exit(exitStatus)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "nd",
		Short:         "recursive diff and patch for nested data structures",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newDiffCmd(), newPatchCmd())
	return root
}
