package main

import (
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mr-mixas/nddiff"
)

type diffOptions struct {
	noAdded     bool
	noNew       bool
	noOld       bool
	noRemoved   bool
	noUnchanged bool
	trimRemoved bool

	text bool
	ifmt string
	ofmt string
}

func newDiffCmd() *cobra.Command {
	o := &diffOptions{}

	cmd := &cobra.Command{
		Use:   "diff A_FILE B_FILE",
		Short: "compute the diff between two structured data files",
		Long: `Compute the recursive diff between two structured data files.

Exits with status 0 when the documents are equal, 1 when they differ
and 2 when something went wrong.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return o.run(cmd, args)
		},
	}

	f := cmd.Flags()
	f.BoolVar(&o.noAdded, "no-added", false, "omit added items from the diff")
	f.BoolVar(&o.noNew, "no-new", false, "omit new values of changed items")
	f.BoolVar(&o.noOld, "no-old", false, "omit old values of changed items")
	f.BoolVar(&o.noRemoved, "no-removed", false, "omit removed items from the diff")
	f.BoolVar(&o.noUnchanged, "no-unchanged", false, "omit unchanged items from the diff")
	f.BoolVar(&o.trimRemoved, "trim-removed", false, "replace removed values with null")
	f.BoolVar(&o.text, "text", false, "render a human readable report instead of a serialized diff")
	f.StringVar(&o.ifmt, "ifmt", fmtAuto, "input format: auto, json or yaml")
	f.StringVar(&o.ofmt, "ofmt", fmtJSON, "output format: json or yaml")

	return cmd
}

func (o *diffOptions) diffOpts(st *nddiff.Stats) []nddiff.DiffOption {
	opts := []nddiff.DiffOption{nddiff.OptionSetStats(st)}
	if o.noAdded {
		opts = append(opts, nddiff.OptionOmitAdded())
	}
	if o.noNew {
		opts = append(opts, nddiff.OptionOmitNew())
	}
	if o.noOld {
		opts = append(opts, nddiff.OptionOmitOld())
	}
	if o.noRemoved {
		opts = append(opts, nddiff.OptionOmitRemoved())
	}
	if o.noUnchanged {
		opts = append(opts, nddiff.OptionOmitUnchanged())
	}
	if o.trimRemoved {
		opts = append(opts, nddiff.OptionTrimRemoved())
	}
	return opts
}

func (o *diffOptions) run(cmd *cobra.Command, args []string) error {
	a, err := loadFile(args[0], o.ifmt)
	if err != nil {
		return err
	}
	b, err := loadFile(args[1], o.ifmt)
	if err != nil {
		return err
	}

	st := &nddiff.Stats{}
	diff := nddiff.Diff(a, b, o.diffOpts(st)...)

	if o.text {
		err = nddiff.FormatPretty(cmd.OutOrStdout(), diff, !color.NoColor)
	} else {
		err = dump(cmd.OutOrStdout(), diff, o.ofmt)
	}
	if err != nil {
		return err
	}

	if st.Changes() > 0 {
		exitStatus = 1
	}
	return nil
}
