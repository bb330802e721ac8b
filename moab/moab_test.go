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
	"context"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestClient(t *testing.T) {
	t.Parallel()

	Convey("Client in the context", t, func() {
		ctx := context.Background()

		Convey("no client means anonymous access to the default URL", func() {
			So(GetClient(ctx), ShouldBeNil)
			c := getClient(ctx)
			So(c.url, ShouldEqual, URL)
			So(c.credentials, ShouldBeNil)
		})

		Convey("UseClient", func() {
			creds := NewCredentials("user", "token")
			c := GetClient(UseClient(ctx, creds))
			So(c, ShouldNotBeNil)
			So(c.url, ShouldEqual, URL)
			So(c.credentials, ShouldResemble, creds)
		})

		Convey("UseClientURL", func() {
			c := getClient(UseClientURL(ctx, "http://localhost/", nil))
			So(c.url, ShouldEqual, "http://localhost/")
			So(c.credentials, ShouldBeNil)
		})
	})
}
