// SPDX-License-Identifier: MIT

package main

import (
	"fmt"
	"io"

	"github.com/katalvlaran/lvsolve/problems"
	"github.com/spf13/cobra"
)

func newProblemsCmd(_ *app) *cobra.Command {
	return &cobra.Command{
		Use:   "problems",
		Short: "List the built-in problem catalogue",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return listProblems(cmd.OutOrStdout())
		},
	}
}

func listProblems(w io.Writer) error {
	for _, p := range problems.All() {
		root := "-"
		if p.Root != nil {
			root = fmt.Sprint(p.Root)
		}
		if _, err := fmt.Fprintf(w, "%-20s n=%-2d start=%-22v root=%-10s %s\n",
			p.Name, p.Dim, fmt.Sprint(p.Start), root, p.Description); err != nil {
			return err
		}
	}

	return nil
}
