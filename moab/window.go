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

package moab

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"
)

// Unit of a window Length.
type Unit int

// Values of Unit. A month is always 30 days, and a year is 365 days.
const (
	Second Unit = iota
	Minute
	Hour
	Day
	Week
	Month
	Year
)

var unitNames = []string{"second", "minute", "hour", "day", "week", "month", "year"}

// unitAliases maps all the accepted spellings to units, for ParseLength.
var unitAliases = map[string]Unit{
	"s": Second, "sec": Second, "secs": Second, "second": Second, "seconds": Second,
	"m": Minute, "min": Minute, "mins": Minute, "minute": Minute, "minutes": Minute,
	"h": Hour, "hr": Hour, "hrs": Hour, "hour": Hour, "hours": Hour,
	"d": Day, "day": Day, "days": Day,
	"w": Week, "wk": Week, "wks": Week, "week": Week, "weeks": Week,
	"mo": Month, "mon": Month, "month": Month, "months": Month,
	"y": Year, "yr": Year, "yrs": Year, "year": Year, "years": Year,
}

func (u Unit) String() string {
	if u < 0 || int(u) >= len(unitNames) {
		return fmt.Sprintf("Unit(%d)", int(u))
	}
	return unitNames[u]
}

// Duration of a single unit.
func (u Unit) Duration() time.Duration {
	day := 24 * time.Hour
	switch u {
	case Second:
		return time.Second
	case Minute:
		return time.Minute
	case Hour:
		return time.Hour
	case Day:
		return day
	case Week:
		return 7 * day
	case Month:
		return 30 * day
	case Year:
		return 365 * day
	}
	return 0
}

// Length is a symbolic duration of a window, e.g. 3 months.
type Length struct {
	Count int64
	Unit  Unit
}

func Seconds(n int64) Length { return Length{Count: n, Unit: Second} }
func Minutes(n int64) Length { return Length{Count: n, Unit: Minute} }
func Hours(n int64) Length   { return Length{Count: n, Unit: Hour} }
func Days(n int64) Length    { return Length{Count: n, Unit: Day} }
func Weeks(n int64) Length   { return Length{Count: n, Unit: Week} }
func Months(n int64) Length  { return Length{Count: n, Unit: Month} }
func Years(n int64) Length   { return Length{Count: n, Unit: Year} }

// Check that the length is positive and representable as time.Duration.
func (l Length) Check() error {
	unit := l.Unit.Duration()
	if unit == 0 {
		return newError(KindValidation, "unsupported length unit: %s", l.Unit)
	}
	if l.Count <= 0 {
		return newError(KindValidation, "length must be positive: %s", l)
	}
	if l.Count > math.MaxInt64/int64(unit) {
		return newError(KindValidation, "length is too large: %s", l)
	}
	return nil
}

// Duration of the length. The value is meaningful only when Check() passes.
func (l Length) Duration() time.Duration {
	return time.Duration(l.Count) * l.Unit.Duration()
}

func (l Length) String() string {
	s := fmt.Sprintf("%d %s", l.Count, l.Unit)
	if l.Count != 1 {
		s += "s"
	}
	return s
}

// ParseLength parses strings like "3 months", "1 year" or compact "3mo",
// "10d".
func ParseLength(s string) (Length, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := strings.IndexFunc(s, func(r rune) bool { return !unicode.IsDigit(r) })
	if i <= 0 {
		return Length{}, newError(KindValidation,
			"length must start with a number followed by a unit: '%s'", s)
	}
	n, err := strconv.ParseInt(s[:i], 10, 64)
	if err != nil {
		return Length{}, wrapError(KindValidation, err, "invalid length count in '%s'", s)
	}
	u, ok := unitAliases[strings.TrimSpace(s[i:])]
	if !ok {
		return Length{}, newError(KindValidation, "unknown length unit in '%s'", s)
	}
	l := Length{Count: n, Unit: u}
	if err := l.Check(); err != nil {
		return Length{}, err
	}
	return l, nil
}

// ParseTime parses a date or a timestamp in one of the common formats. Values
// without a timezone are interpreted as UTC.
func ParseTime(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, newError(KindValidation, "failed to parse time: '%s'", s)
}

// Window is a validated time range [Start, End] of a data request.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow creates a window with explicit bounds.
func NewWindow(start, end time.Time) (Window, error) {
	return NewWindowBuilder().Start(start).End(end).Build()
}

// Check the window invariant: Start < End.
func (w Window) Check() error {
	if w.Start.Equal(w.End) {
		return newError(KindValidation, "window is empty: %s", w)
	}
	if w.Start.After(w.End) {
		return newError(KindValidation, "window start is after its end: %s", w)
	}
	return nil
}

// Duration of the window.
func (w Window) Duration() time.Duration { return w.End.Sub(w.Start) }

func (w Window) String() string {
	return fmt.Sprintf("[%s, %s]",
		w.Start.Format(time.RFC3339), w.End.Format(time.RFC3339))
}

// WindowBuilder is a builder for a Window. A window is specified either by its
// start and end, or by its length and at most one of start or end. When only
// the length is given, the window ends at the current time.
//
// A typical use:
//
//	w, err := NewWindowBuilder().Length(Months(3)).Build()
type WindowBuilder struct {
	start     time.Time
	end       time.Time
	length    Length
	hasStart  bool
	hasEnd    bool
	hasLength bool
}

// NewWindowBuilder creates an empty builder.
func NewWindowBuilder() *WindowBuilder {
	return &WindowBuilder{}
}

// Copy the builder. All the builder methods return a copy, leaving the
// original intact.
func (b *WindowBuilder) Copy() *WindowBuilder {
	b2 := *b
	return &b2
}

// Start sets the start time of the window.
func (b *WindowBuilder) Start(t time.Time) *WindowBuilder {
	b2 := b.Copy()
	b2.start = t
	b2.hasStart = true
	return b2
}

// End sets the end time of the window.
func (b *WindowBuilder) End(t time.Time) *WindowBuilder {
	b2 := b.Copy()
	b2.end = t
	b2.hasEnd = true
	return b2
}

// Length sets the length of the window.
func (b *WindowBuilder) Length(l Length) *WindowBuilder {
	b2 := b.Copy()
	b2.length = l
	b2.hasLength = true
	return b2
}

// Build the window relative to the current time.
func (b *WindowBuilder) Build() (Window, error) {
	return b.BuildAt(time.Now().UTC())
}

// BuildAt builds the window with now as the current time. All failures are
// errors of KindValidation.
func (b *WindowBuilder) BuildAt(now time.Time) (Window, error) {
	var d time.Duration
	if b.hasLength {
		if err := b.length.Check(); err != nil {
			return Window{}, err
		}
		d = b.length.Duration()
	}
	var w Window
	switch {
	case b.hasStart && b.hasEnd:
		w = Window{Start: b.start, End: b.end}
		if b.hasLength && w.Duration() != d {
			return Window{}, newError(KindValidation,
				"window %s is inconsistent with length %s", w, b.length)
		}
	case b.hasStart && b.hasLength:
		w = Window{Start: b.start, End: b.start.Add(d)}
	case b.hasEnd && b.hasLength:
		w = Window{Start: b.end.Add(-d), End: b.end}
	case b.hasLength:
		w = Window{Start: now.Add(-d), End: now}
	default:
		return Window{}, newError(KindValidation,
			"window is underspecified: requires start and end, or length")
	}
	if err := w.Check(); err != nil {
		return Window{}, err
	}
	return w, nil
}
