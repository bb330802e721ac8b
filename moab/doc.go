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

// Package moab implements a client for the MoabDB financial data API.
//
// A request is scoped by a Window, built with WindowBuilder either from explicit
// start and end times or from a Length anchored at the start, the end or the
// current time:
//
//	w, err := moab.NewWindowBuilder().Length(moab.Months(3)).Build()
//	t, err := moab.GetEquity(ctx, "AAPL", w, false, nil)
//
// The query is sent as a base64 encoded protobuf message in the x-req header
// of an HTTP GET request. The response body is a base64 encoded protobuf
// message with a status code and the data as a Parquet file, which is decoded
// into a table.Table.
//
// The server URL is configured by injecting a Client into the context with
// UseClient. The HTTP client is the one injected with fetch.UseClient from
// github.com/stockparfait/fetch, or http.DefaultClient. All the errors
// returned by this package are of type *Error, classified by their Kind.
package moab
