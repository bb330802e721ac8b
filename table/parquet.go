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
	"bytes"
	"io"
	"math"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/format"
	"github.com/stockparfait/errors"
)

// Julian day number of the unix epoch, for the legacy INT96 timestamps.
const julianEpochDay = 2440588

// readBatch is the number of rows read from a row group at a time.
const readBatch = 1024

// decoder converts a parquet value of a single column into a Cell.
type decoder func(v parquet.Value) (Cell, error)

func timestampDecoder(ts *format.TimestampType) decoder {
	return func(v parquet.Value) (Cell, error) {
		switch {
		case ts.Unit.Micros != nil:
			return Time(time.UnixMicro(v.Int64())), nil
		case ts.Unit.Nanos != nil:
			return Time(time.Unix(0, v.Int64())), nil
		}
		return Time(time.UnixMilli(v.Int64())), nil
	}
}

func unsigned(lt *format.LogicalType) bool {
	return lt != nil && lt.Integer != nil && !lt.Integer.IsSigned
}

func decodeUint64(v parquet.Value) (Cell, error) {
	u := uint64(v.Int64())
	if u > math.MaxInt64 {
		return Null(), errors.Reason("unsigned value %d overflows int64", u)
	}
	return Int(int64(u)), nil
}

// columnDecoder determines the kind and the decoder for a flat schema field.
func columnDecoder(f parquet.Field) (Kind, decoder, error) {
	if !f.Leaf() || f.Repeated() {
		return KindNull, nil, errors.Reason(
			"column '%s': nested and repeated columns are not supported", f.Name())
	}
	tp := f.Type()
	lt := tp.LogicalType()
	switch tp.Kind() {
	case parquet.Boolean:
		return KindBool, func(v parquet.Value) (Cell, error) {
			return Bool(v.Boolean()), nil
		}, nil
	case parquet.Int32:
		switch {
		case lt != nil && lt.Date != nil:
			return KindTime, func(v parquet.Value) (Cell, error) {
				return Time(time.Unix(int64(v.Int32())*86400, 0)), nil
			}, nil
		case unsigned(lt):
			return KindInt, func(v parquet.Value) (Cell, error) {
				return Int(int64(uint32(v.Int32()))), nil
			}, nil
		}
		return KindInt, func(v parquet.Value) (Cell, error) {
			return Int(int64(v.Int32())), nil
		}, nil
	case parquet.Int64:
		switch {
		case lt != nil && lt.Timestamp != nil:
			return KindTime, timestampDecoder(lt.Timestamp), nil
		case unsigned(lt):
			return KindInt, decodeUint64, nil
		}
		return KindInt, func(v parquet.Value) (Cell, error) { return Int(v.Int64()), nil }, nil
	case parquet.Int96:
		return KindTime, func(v parquet.Value) (Cell, error) {
			i96 := v.Int96()
			nanos := int64(i96[1])<<32 | int64(i96[0])
			days := int64(i96[2]) - julianEpochDay
			return Time(time.Unix(days*86400, nanos)), nil
		}, nil
	case parquet.Float:
		return KindFloat, func(v parquet.Value) (Cell, error) {
			return Float(float64(v.Float())), nil
		}, nil
	case parquet.Double:
		return KindFloat, func(v parquet.Value) (Cell, error) { return Float(v.Double()), nil }, nil
	case parquet.ByteArray, parquet.FixedLenByteArray:
		return KindString, func(v parquet.Value) (Cell, error) {
			return String(string(v.ByteArray())), nil
		}, nil
	}
	return KindNull, nil, errors.Reason("column '%s': unsupported type %s",
		f.Name(), tp.String())
}

// ReadParquet decodes a Parquet file with a flat schema into a Table. Rows are
// kept in the file order.
func ReadParquet(data []byte) (*Table, error) {
	if len(data) == 0 {
		return nil, errors.Reason("Parquet data is empty")
	}
	f, err := parquet.OpenFile(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, errors.Annotate(err, "failed to open Parquet file")
	}
	fields := f.Schema().Fields()
	columns := make([]Column, len(fields))
	decoders := make([]decoder, len(fields))
	for i, fld := range fields {
		kind, dec, err := columnDecoder(fld)
		if err != nil {
			return nil, errors.Annotate(err, "unsupported schema")
		}
		columns[i] = Column{Name: fld.Name(), Kind: kind}
		decoders[i] = dec
	}
	t := NewTable(columns...)
	t.Rows = make([]Row, 0, f.NumRows())
	buf := make([]parquet.Row, readBatch)
	for g, rg := range f.RowGroups() {
		if err := readRowGroup(t, rg, buf, decoders); err != nil {
			return nil, errors.Annotate(err, "failed to read row group %d", g)
		}
	}
	return t, nil
}

func readRowGroup(t *Table, rg parquet.RowGroup, buf []parquet.Row, decoders []decoder) error {
	rows := rg.Rows()
	defer rows.Close()
	for {
		n, err := rows.ReadRows(buf)
		for _, pr := range buf[:n] {
			row := make(Row, len(decoders))
			for _, v := range pr {
				col := v.Column()
				if col < 0 || col >= len(decoders) {
					return errors.Reason("value for unknown column %d", col)
				}
				if v.IsNull() {
					row[col] = Null()
					continue
				}
				c, err := decoders[col](v)
				if err != nil {
					return errors.Annotate(err, "column %d", col)
				}
				row[col] = c
			}
			t.AddRow(row)
		}
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errors.Annotate(err, "failed to read rows")
		}
		if n == 0 {
			return nil
		}
	}
}
