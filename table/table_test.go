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
	"testing"
	"time"

	. "github.com/smartystreets/goconvey/convey"
)

func TestTable(t *testing.T) {
	t.Parallel()

	Convey("Table methods work", t, func() {
		t := NewTable(Column{"Make", KindString}, Column{"Year", KindInt})
		headless := NewTable()

		So(t.Header(), ShouldResemble, []string{"Make", "Year"})
		t.AddRow(Row{String("Toyota"), Int(2019)}, Row{String("Honda"), Null()})
		headless.AddRow(Row{String("Toyota"), Int(2019)}, Row{String("Honda"), Null()})

		Convey("AddRow worked", func() {
			So(t.Len(), ShouldEqual, 2)
			So(headless.Len(), ShouldEqual, 2)
		})

		Convey("Column", func() {
			So(t.ColumnIndex("Year"), ShouldEqual, 1)
			So(t.ColumnIndex("Model"), ShouldEqual, -1)
			c, err := t.Column("Make")
			So(err, ShouldBeNil)
			So(c, ShouldResemble, []Cell{String("Toyota"), String("Honda")})
			_, err = t.Column("Model")
			So(err, ShouldNotBeNil)
		})

		Convey("WriteCSV", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(t.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Make,Year
Toyota,2019
Honda,
`)
			})

			Convey("Default Params, headless", func() {
				var buf bytes.Buffer
				So(headless.WriteCSV(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Toyota,2019
Honda,
`)
			})

			Convey("Limited rows, no header", func() {
				var buf bytes.Buffer
				So(t.WriteCSV(&buf, Params{Rows: 1, NoHeader: true}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
Toyota,2019
`)
			})
		})

		Convey("WriteText", func() {
			Convey("Default Params", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
  Make | Year
------ | ----
Toyota | 2019
 Honda |     
`)
			})

			Convey("Limited rows and width, no header", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{Rows: 1, NoHeader: true, MaxColWidth: 4}), ShouldBeNil)
				So("\n"+buf.String(), ShouldEqual, `
To.. | 2019
`)
			})

			Convey("Invalid width", func() {
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{MaxColWidth: 3}), ShouldNotBeNil)
			})

			Convey("Mismatched row", func() {
				t.AddRow(Row{String("Ford")})
				var buf bytes.Buffer
				So(t.WriteText(&buf, Params{}), ShouldNotBeNil)
			})
		})
	})

	Convey("Cell", t, func() {
		Convey("String", func() {
			So(Null().String(), ShouldEqual, "")
			So(Bool(true).String(), ShouldEqual, "TRUE")
			So(Bool(false).String(), ShouldEqual, "FALSE")
			So(Int(-42).String(), ShouldEqual, "-42")
			So(Float(1.5).String(), ShouldEqual, "1.5")
			So(String("abc").String(), ShouldEqual, "abc")
			So(Time(time.Date(2020, 4, 9, 0, 0, 0, 0, time.UTC)).String(),
				ShouldEqual, "2020-04-09")
			So(Time(time.Date(2020, 4, 9, 22, 51, 22, 0, time.UTC)).String(),
				ShouldEqual, "2020-04-09 22:51:22")
		})

		Convey("accessors", func() {
			So(Null().IsNull(), ShouldBeTrue)
			So(Int(3).Kind(), ShouldEqual, KindInt)
			So(Int(3).Float(), ShouldEqual, 3.0)
			So(String("x").Float(), ShouldEqual, 0.0)
			So(Bool(true).Bool(), ShouldBeTrue)
			So(Int(1).Bool(), ShouldBeFalse)
			tm := time.Date(2020, 4, 9, 22, 51, 22, 5, time.UTC)
			So(Time(tm).Time().Equal(tm), ShouldBeTrue)
		})

		Convey("times beyond the nanosecond epoch range", func() {
			far := time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)
			early := time.Date(1600, 1, 1, 12, 0, 0, 1, time.UTC)
			So(Time(far).Time().Equal(far), ShouldBeTrue)
			So(Time(far).String(), ShouldEqual, "9999-12-31")
			So(Time(early).Time().Equal(early), ShouldBeTrue)
			So(Time(early).Less(Time(far)), ShouldBeTrue)
		})

		Convey("Less", func() {
			So(Null().Less(Int(0)), ShouldBeTrue)
			So(Int(1).Less(Float(1.5)), ShouldBeTrue)
			So(Float(2.5).Less(Int(2)), ShouldBeFalse)
			So(String("a").Less(String("b")), ShouldBeTrue)
			So(Time(time.Unix(1, 0)).Less(Time(time.Unix(2, 0))), ShouldBeTrue)
			So(Time(time.Unix(1, 5)).Less(Time(time.Unix(1, 7))), ShouldBeTrue)
			So(Time(time.Unix(1, 7)).Less(Time(time.Unix(1, 5))), ShouldBeFalse)
		})

		Convey("Kind.String", func() {
			So(KindTime.String(), ShouldEqual, "time")
			So(Kind(99).String(), ShouldEqual, "Kind(99)")
		})
	})
}
