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
	"github.com/stockparfait/errors"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary statistics of a numeric column. Null cells are counted separately
// and otherwise ignored.
type Summary struct {
	Column string
	Count  int // non-null samples
	Nulls  int
	Mean   float64
	StdDev float64 // sample standard deviation; 0 for less than 2 samples
	Min    float64
	Max    float64
}

// SummaryColumns is the schema of the Summary.Row() rows.
func SummaryColumns() []Column {
	return []Column{
		{Name: "Column", Kind: KindString},
		{Name: "Count", Kind: KindInt},
		{Name: "Nulls", Kind: KindInt},
		{Name: "Mean", Kind: KindFloat},
		{Name: "StdDev", Kind: KindFloat},
		{Name: "Min", Kind: KindFloat},
		{Name: "Max", Kind: KindFloat},
	}
}

// Row representation of the summary for printing it as a table.
func (s *Summary) Row() Row {
	return Row{
		String(s.Column),
		Int(int64(s.Count)),
		Int(int64(s.Nulls)),
		Float(s.Mean),
		Float(s.StdDev),
		Float(s.Min),
		Float(s.Max),
	}
}

// Summarize computes the summary statistics of a numeric column.
func (t *Table) Summarize(column string) (*Summary, error) {
	i := t.ColumnIndex(column)
	if i < 0 {
		return nil, errors.Reason("no such column: '%s'", column)
	}
	if k := t.Columns[i].Kind; !k.Numeric() {
		return nil, errors.Reason("column '%s' is not numeric: %s", column, k)
	}
	cells, err := t.Column(column)
	if err != nil {
		return nil, errors.Annotate(err, "failed to extract column '%s'", column)
	}
	s := Summary{Column: column}
	xs := make([]float64, 0, len(cells))
	for _, c := range cells {
		if c.IsNull() {
			s.Nulls++
			continue
		}
		xs = append(xs, c.Float())
	}
	s.Count = len(xs)
	if s.Count == 0 {
		return &s, nil
	}
	s.Min = floats.Min(xs)
	s.Max = floats.Max(xs)
	if s.Count < 2 {
		s.Mean = xs[0]
		return &s, nil
	}
	s.Mean, s.StdDev = stat.MeanStdDev(xs, nil)
	return &s, nil
}
