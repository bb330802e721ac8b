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
	"strconv"
	"time"
)

// Kind of a Cell or a column.
type Kind uint8

// Values of Kind.
const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindTime
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindTime:
		return "time"
	}
	return "Kind(" + strconv.Itoa(int(k)) + ")"
}

// Numeric kinds can be summarized and converted to float64.
func (k Kind) Numeric() bool { return k == KindInt || k == KindFloat }

// Cell is a single table value: a union of null, bool, int64, float64, string
// and time.
type Cell struct {
	kind Kind
	num  int64 // bool, int and unix seconds of time
	nsec int32 // nanoseconds of time
	f    float64
	s    string
}

// Constructors for each kind of Cell.
func Null() Cell           { return Cell{} }
func Int(i int64) Cell     { return Cell{kind: KindInt, num: i} }
func Float(f float64) Cell { return Cell{kind: KindFloat, f: f} }
func String(s string) Cell { return Cell{kind: KindString, s: s} }

func Bool(b bool) Cell {
	if b {
		return Cell{kind: KindBool, num: 1}
	}
	return Cell{kind: KindBool}
}

// Time cells have nanosecond precision and are always in UTC.
func Time(t time.Time) Cell {
	return Cell{kind: KindTime, num: t.Unix(), nsec: int32(t.Nanosecond())}
}

func (c Cell) Kind() Kind      { return c.kind }
func (c Cell) IsNull() bool    { return c.kind == KindNull }
func (c Cell) Bool() bool      { return c.kind == KindBool && c.num != 0 }
func (c Cell) Int() int64      { return c.num }
func (c Cell) Str() string     { return c.s }
func (c Cell) Time() time.Time { return time.Unix(c.num, int64(c.nsec)).UTC() }

// Float returns the numeric value of an int or float cell, and 0 otherwise.
func (c Cell) Float() float64 {
	switch c.kind {
	case KindInt:
		return float64(c.num)
	case KindFloat:
		return c.f
	}
	return 0
}

// String representation of the cell. Null is an empty string; times at
// midnight UTC print as dates.
func (c Cell) String() string {
	switch c.kind {
	case KindBool:
		if c.Bool() {
			return "TRUE"
		}
		return "FALSE"
	case KindInt:
		return strconv.FormatInt(c.num, 10)
	case KindFloat:
		return strconv.FormatFloat(c.f, 'g', -1, 64)
	case KindString:
		return c.s
	case KindTime:
		t := c.Time()
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
			return t.Format("2006-01-02")
		}
		return t.Format("2006-01-02 15:04:05")
	}
	return ""
}

// Less orders cells of the same kind by value. Nulls are smaller than
// anything else, and otherwise cells of different kinds are ordered by kind.
func (c Cell) Less(c2 Cell) bool {
	if c.kind != c2.kind {
		if c.kind.Numeric() && c2.kind.Numeric() {
			return c.Float() < c2.Float()
		}
		return c.kind < c2.kind
	}
	switch c.kind {
	case KindFloat:
		return c.f < c2.f
	case KindString:
		return c.s < c2.s
	case KindTime:
		if c.num == c2.num {
			return c.nsec < c2.nsec
		}
	}
	return c.num < c2.num
}
