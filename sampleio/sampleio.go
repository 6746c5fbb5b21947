// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sampleio reads numeric samples from text, CSV, and Excel
// files.
package sampleio // import "github.com/aclements/go-distfit/sampleio"

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/aclements/go-distfit/stats"
)

var (
	ErrNoColumn = errors.New("column not found")
	ErrNoSheet  = errors.New("workbook has no sheets")
)

// ParseError reports a value that is not a number.
type ParseError struct {
	// Pos locates the value, such as "line 3" or "cell B4".
	Pos  string
	Text string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q is not a number", e.Pos, e.Text)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func parse(pos func() string, text string) (float64, error) {
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return 0, &ParseError{pos(), text, err}
	}
	return v, nil
}

// ReadText reads whitespace-separated numbers from r. Blank lines and
// lines starting with '#' are ignored.
func ReadText(r io.Reader) (stats.Sample, error) {
	var s stats.Sample
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		l := strings.TrimSpace(scanner.Text())
		if l == "" || strings.HasPrefix(l, "#") {
			continue
		}
		for _, f := range strings.Fields(l) {
			v, err := parse(func() string { return fmt.Sprintf("line %d", line) }, f)
			if err != nil {
				return stats.Sample{}, err
			}
			s.Xs = append(s.Xs, v)
		}
	}
	if err := scanner.Err(); err != nil {
		return stats.Sample{}, err
	}
	return s, nil
}

// Column selects a column of a table. If Name is set, the first row
// is a header and the column with that name is used. Otherwise Index
// selects the column, counting from 0, and a first row whose cell is
// not numeric is skipped as a header.
type Column struct {
	Index int
	Name  string
}

func (c Column) String() string {
	if c.Name != "" {
		return strconv.Quote(c.Name)
	}
	return strconv.Itoa(c.Index)
}

// column extracts a column of numbers from rows. Empty cells are
// skipped. pos names the cell at row i, column j.
func column(rows [][]string, c Column, pos func(i, j int) string) (stats.Sample, error) {
	var s stats.Sample
	if len(rows) == 0 {
		return s, nil
	}
	j, start := c.Index, 0
	if c.Name != "" {
		j = -1
		for k, h := range rows[0] {
			if strings.EqualFold(strings.TrimSpace(h), c.Name) {
				j = k
				break
			}
		}
		if j < 0 {
			return s, fmt.Errorf("%w: %s", ErrNoColumn, c)
		}
		start = 1
	} else if j < 0 {
		return s, fmt.Errorf("%w: %s", ErrNoColumn, c)
	} else if j < len(rows[0]) {
		if _, err := strconv.ParseFloat(strings.TrimSpace(rows[0][j]), 64); err != nil {
			start = 1
		}
	}

	for i := start; i < len(rows); i++ {
		if j >= len(rows[i]) {
			continue
		}
		text := strings.TrimSpace(rows[i][j])
		if text == "" {
			continue
		}
		v, err := parse(func() string { return pos(i, j) }, text)
		if err != nil {
			return stats.Sample{}, err
		}
		s.Xs = append(s.Xs, v)
	}
	return s, nil
}

// ReadCSV reads column c of the CSV table in r.
func ReadCSV(r io.Reader, c Column) (stats.Sample, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return stats.Sample{}, fmt.Errorf("reading CSV: %w", err)
	}
	return column(rows, c, func(i, j int) string {
		return fmt.Sprintf("line %d, field %d", i+1, j+1)
	})
}

// ReadXLSX reads column c of the named sheet of the Excel workbook in
// r. If sheet is empty, the first sheet is used.
func ReadXLSX(r io.Reader, sheet string, c Column) (stats.Sample, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return stats.Sample{}, fmt.Errorf("opening workbook: %w", err)
	}
	defer f.Close()
	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return stats.Sample{}, ErrNoSheet
		}
		sheet = sheets[0]
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return stats.Sample{}, fmt.Errorf("reading sheet %q: %w", sheet, err)
	}
	return column(rows, c, func(i, j int) string {
		cell, err := excelize.CoordinatesToCellName(j+1, i+1)
		if err != nil {
			return fmt.Sprintf("%s row %d column %d", sheet, i+1, j+1)
		}
		return fmt.Sprintf("%s!%s", sheet, cell)
	})
}

// ReadFile reads a sample from path, choosing the format by file
// extension: .csv and .xlsx are tables, anything else is text. A path
// of "-" reads text from standard input.
func ReadFile(path string, sheet string, c Column) (stats.Sample, error) {
	if path == "-" {
		return ReadText(os.Stdin)
	}
	f, err := os.Open(path)
	if err != nil {
		return stats.Sample{}, err
	}
	defer f.Close()

	var s stats.Sample
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		s, err = ReadCSV(f, c)
	case ".xlsx", ".xlsm":
		s, err = ReadXLSX(f, sheet, c)
	default:
		s, err = ReadText(f)
	}
	if err != nil {
		return stats.Sample{}, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}
