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
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

type testWrapper struct{ err error }

func (w testWrapper) Error() string { return "wrapped: " + w.err.Error() }
func (w testWrapper) Unwrap() error { return w.err }

func TestErrors(t *testing.T) {
	t.Parallel()

	Convey("Error", t, func() {
		err := newError(KindAuth, "bad token for %s", "user")
		So(err.Error(), ShouldStartWith, "authorization error: ")
		So(err.Error(), ShouldContainSubstring, "bad token for user")
		So((&Error{Kind: KindData}).Error(), ShouldEqual, "data error")
		So(Kind(42).String(), ShouldEqual, "Kind(42)")

		Convey("KindOf", func() {
			So(KindOf(err), ShouldEqual, KindAuth)
			So(KindOf(testWrapper{err}), ShouldEqual, KindAuth)
			So(KindOf(nil), ShouldEqual, KindUnknown)
			So(KindOf(fmt.Errorf("foreign")), ShouldEqual, KindUnknown)
		})

		Convey("IsKind", func() {
			So(IsKind(err, KindAuth), ShouldBeTrue)
			So(IsKind(err, KindData), ShouldBeFalse)
			So(IsKind(nil, KindUnknown), ShouldBeFalse)
		})

		Convey("wrapError keeps the cause", func() {
			cause := fmt.Errorf("connection refused")
			e := wrapError(KindRequest, cause, "failed to fetch %s", "AAPL")
			So(KindOf(e), ShouldEqual, KindRequest)
			So(e.Error(), ShouldContainSubstring, "failed to fetch AAPL")
			So(e.Error(), ShouldContainSubstring, "connection refused")
		})
	})
}
