package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mr-mixas/nddiff"
)

type patchOptions struct {
	ifmt string
	ofmt string
}

func newPatchCmd() *cobra.Command {
	o := &patchOptions{}

	cmd := &cobra.Command{
		Use:   "patch TARGET_FILE PATCH_FILE",
		Short: "apply a diff to a structured data file",
		Long: `Apply a diff to a structured data file.

The target file is rewritten in place with the patched document.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(args)
		},
	}

	f := cmd.Flags()
	f.StringVar(&o.ifmt, "ifmt", fmtAuto, "input format: auto, json or yaml")
	f.StringVar(&o.ofmt, "ofmt", fmtAuto, "output format: auto, json or yaml")

	return cmd
}

func (o *patchOptions) run(args []string) error {
	target, err := loadFile(args[0], o.ifmt)
	if err != nil {
		return err
	}
	raw, err := loadFile(args[1], o.ifmt)
	if err != nil {
		return err
	}

	diff, ok := raw.(map[string]interface{})
	if !ok {
		return fmt.Errorf("%s: diff document is %T, want mapping", args[1], raw)
	}

	patched, err := nddiff.Patch(target, diff)
	if err != nil {
		return err
	}

	return saveFile(args[0], patched, o.ofmt)
}
