// Copyright 2026 Stock Parfait

// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at

//     http://www.apache.org/licenses/LICENSE-2.0

// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/stockparfait/errors"
	"golang.org/x/exp/slices"
)

// Column definition: its name and the kind of its non-null cells.
type Column struct {
	Name string
	Kind Kind
}

// Row of a table, one cell per column.
type Row []Cell

// CSV representation of the row, compatible with encoding/csv.
func (r Row) CSV() []string {
	res := make([]string, len(r))
	for i, c := range r {
		res[i] = c.String()
	}
	return res
}

// Table is an ordered sequence of rows with a common schema. Observations of a
// time series are typically ordered by time.
type Table struct {
	Columns []Column
	Rows    []Row
}

// NewTable creates an empty table with the given schema.
func NewTable(columns ...Column) *Table {
	return &Table{Columns: columns}
}

// AddRow adds one or more rows to the table. Each row is expected to have
// exactly one cell per column.
func (t *Table) AddRow(rows ...Row) {
	t.Rows = append(t.Rows, rows...)
}

// Len is the number of rows.
func (t *Table) Len() int { return len(t.Rows) }

// Header is the list of column names.
func (t *Table) Header() []string {
	h := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		h[i] = c.Name
	}
	return h
}

// ColumnIndex returns the index of the named column, or -1.
func (t *Table) ColumnIndex(name string) int {
	return slices.IndexFunc(t.Columns, func(c Column) bool { return c.Name == name })
}

// Column extracts all the cells of the named column.
func (t *Table) Column(name string) ([]Cell, error) {
	i := t.ColumnIndex(name)
	if i < 0 {
		return nil, errors.Reason("no such column: '%s'", name)
	}
	res := make([]Cell, len(t.Rows))
	for j, r := range t.Rows {
		if i >= len(r) {
			return nil, errors.Reason("row %d has %d cells, expected %d",
				j, len(r), len(t.Columns))
		}
		res[j] = r[i]
	}
	return res, nil
}

// Params are parameters for pretty-printing or CSV export of Table data.
type Params struct {
	Rows        int  // max. number of rows to write; 0 = unlimited (default)
	NoHeader    bool // whether to print the header, default - yes
	MaxColWidth int  // for WriteText only; 0 = unlimited, otherwise must be >= 4
}

// rows returns the rows to be written according to p.
func (t *Table) rows(p Params) []Row {
	if p.Rows > 0 && p.Rows < len(t.Rows) {
		return t.Rows[:p.Rows]
	}
	return t.Rows
}

func (t *Table) hasHeader(p Params) bool {
	return !p.NoHeader && len(t.Columns) > 0
}

// WriteCSV writes the table to w in CSV format.
func (t *Table) WriteCSV(w io.Writer, p Params) error {
	cw := csv.NewWriter(w)
	if t.hasHeader(p) {
		if err := cw.Write(t.Header()); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
	}
	for i, r := range t.rows(p) {
		if err := cw.Write(r.CSV()); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return errors.Annotate(err, "failed to flush written rows")
	}
	return nil
}

// textWidths computes the column widths for WriteText.
func (t *Table) textWidths(p Params) ([]int, error) {
	var lines [][]string
	if t.hasHeader(p) {
		lines = append(lines, t.Header())
	}
	for _, r := range t.rows(p) {
		lines = append(lines, r.CSV())
	}
	var widths []int
	for i, line := range lines {
		if len(line) == 0 {
			return nil, errors.Reason("line %d is empty", i)
		}
		if widths == nil {
			widths = make([]int, len(line))
		}
		if len(line) != len(widths) {
			return nil, errors.Reason("line %d has %d cells, expected %d",
				i, len(line), len(widths))
		}
		for j, s := range line {
			if n := len([]rune(s)); n > widths[j] {
				widths[j] = n
			}
			if p.MaxColWidth > 0 && widths[j] > p.MaxColWidth {
				widths[j] = p.MaxColWidth
			}
		}
	}
	return widths, nil
}

func writeTextLine(w io.Writer, line []string, widths []int) error {
	cells := make([]string, len(line))
	for i, s := range line {
		if r := []rune(s); len(r) > widths[i] {
			s = string(r[:widths[i]-2]) + ".."
		}
		cells[i] = fmt.Sprintf("%[2]*[1]s", s, widths[i])
	}
	_, err := fmt.Fprintf(w, "%s\n", strings.Join(cells, " | "))
	return err
}

// WriteText writes the table as right-aligned columns separated by '|'.
func (t *Table) WriteText(w io.Writer, p Params) error {
	if p.MaxColWidth != 0 && p.MaxColWidth < 4 {
		return errors.Reason("MaxColWidth [%d] must be 0 or >= 4", p.MaxColWidth)
	}
	widths, err := t.textWidths(p)
	if err != nil {
		return errors.Annotate(err, "failed to compute column widths")
	}
	if t.hasHeader(p) {
		if err := writeTextLine(w, t.Header(), widths); err != nil {
			return errors.Annotate(err, "failed to write header")
		}
		dashes := make([]string, len(widths))
		for i, n := range widths {
			dashes[i] = strings.Repeat("-", n)
		}
		if err := writeTextLine(w, dashes, widths); err != nil {
			return errors.Annotate(err, "failed to write header separator")
		}
	}
	for i, r := range t.rows(p) {
		if err := writeTextLine(w, r.CSV(), widths); err != nil {
			return errors.Annotate(err, "failed to write row %d", i)
		}
	}
	return nil
}
