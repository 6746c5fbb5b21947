// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/aclements/go-distfit/family"
	"github.com/aclements/go-distfit/fit"
	"github.com/aclements/go-distfit/gof"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	bestStyle   = cellStyle.Foreground(lipgloss.Color("42"))
	failStyle   = cellStyle.Foreground(lipgloss.Color("240"))
)

// renderRanking formats the ranked results of res as a table.
func renderRanking(res *fit.RunResult) string {
	headers := []string{"#", "Family", "Parameters"}
	for _, k := range gof.Kinds() {
		headers = append(headers, k.String())
	}
	headers = append(headers, "Score")

	var failed []int
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		Headers(headers...)
	for i, r := range res.Results {
		row := []string{strconv.Itoa(i + 1), r.Type.String()}
		if !r.OK() {
			failed = append(failed, i)
			row = append(row, r.Err.Error())
		} else {
			row = append(row, params(r.Dist))
		}
		for _, k := range gof.Kinds() {
			row = append(row, testCell(r, k))
		}
		row = append(row, r.Score.String())
		t.Row(row...)
	}
	t.StyleFunc(func(row, col int) lipgloss.Style {
		switch {
		case row == table.HeaderRow:
			return headerStyle
		case row == 0 && res.Results[0].Score.Defined:
			return bestStyle
		}
		for _, f := range failed {
			if f == row {
				return failStyle
			}
		}
		return cellStyle
	})
	return t.String()
}

func params(d *family.Fitted) string {
	s := ""
	for i, p := range d.Params {
		if i > 0 {
			s += " "
		}
		s += fmt.Sprintf("%s=%.4g", p.Name, p.Value)
	}
	return s
}

// testCell describes the result of test k for r.
func testCell(r fit.DistResult, k gof.Kind) string {
	for _, tr := range r.Tests {
		if tr.Kind != k {
			continue
		}
		switch {
		case tr.Err != nil:
			return "failed"
		case tr.Outcome.HasPValue:
			return fmt.Sprintf("p=%.4f", tr.Outcome.PValue)
		default:
			return fmt.Sprintf("stat=%.4g", tr.Outcome.Statistic)
		}
	}
	return "-"
}
