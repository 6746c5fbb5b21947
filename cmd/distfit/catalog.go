// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/gof"
)

func newCatalogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "catalog",
		Short: "List the distribution families and tests",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			t := table.New().
				Border(lipgloss.RoundedBorder()).
				Headers("Family", "Key", "Kind", "Parameters", "Tests").
				StyleFunc(func(row, col int) lipgloss.Style {
					if row == table.HeaderRow {
						return headerStyle
					}
					return cellStyle
				})
			for _, ft := range family.All() {
				var tests []string
				for _, k := range gof.Applicable(gof.Kinds(), ft.Kind()) {
					tests = append(tests, k.Key())
				}
				t.Row(ft.String(), ft.Key(), ft.Kind().String(), strconv.Itoa(ft.NumParams()), strings.Join(tests, ", "))
			}
			fmt.Fprintln(cmd.OutOrStdout(), t.String())
			return nil
		},
	}
}
