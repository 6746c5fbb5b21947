// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package sampleio

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestReadText(t *testing.T) {
	s, err := ReadText(strings.NewReader("# heights\n1.5 2\n\n  3e1\n-4\n"))
	require.NoError(t, err)
	assert.Equal(t, []float64{1.5, 2, 30, -4}, s.Xs)

	_, err = ReadText(strings.NewReader("1\n2\nthree\n"))
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "line 3", perr.Pos)
	assert.Equal(t, "three", perr.Text)
}

const table = `id,weight,height
1,70.5,180
2,,175
3,82,169.5
`

func TestReadCSV(t *testing.T) {
	s, err := ReadCSV(strings.NewReader(table), Column{Name: "Height"})
	require.NoError(t, err)
	assert.Equal(t, []float64{180, 175, 169.5}, s.Xs)

	// By index, the non-numeric header is skipped and empty
	// cells are ignored.
	s, err = ReadCSV(strings.NewReader(table), Column{Index: 1})
	require.NoError(t, err)
	assert.Equal(t, []float64{70.5, 82}, s.Xs)

	s, err = ReadCSV(strings.NewReader("4\n5\n6\n"), Column{})
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5, 6}, s.Xs)

	_, err = ReadCSV(strings.NewReader(table), Column{Name: "age"})
	assert.ErrorIs(t, err, ErrNoColumn)

	_, err = ReadCSV(strings.NewReader("x\n1\noops\n"), Column{Name: "x"})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "line 3, field 1", perr.Pos)
}

func writeWorkbook(t *testing.T, rows [][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	for i, row := range rows {
		for j, v := range row {
			cell, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue("Sheet1", cell, v))
		}
	}
	path := filepath.Join(t.TempDir(), "sample.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, [][]any{
		{"run", "latency"},
		{1, 12.5},
		{2, 9},
		{3, "slow"},
	})

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	_, err = ReadXLSX(f, "", Column{Name: "latency"})
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "Sheet1!B4", perr.Pos)

	s, err := ReadFile(path, "Sheet1", Column{Index: 0})
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, s.Xs)

	_, err = ReadFile(path, "Missing", Column{})
	assert.Error(t, err)
}

func TestReadFileText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.txt")
	require.NoError(t, os.WriteFile(path, []byte("3\n1\n2\n"), 0o666))
	s, err := ReadFile(path, "", Column{})
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, s.Xs)
}
