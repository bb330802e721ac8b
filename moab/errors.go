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

	"github.com/stockparfait/errors"
)

// Kind classifies an Error.
type Kind int

// Values of Kind. KindUnknown is also reported for errors which did not
// originate in this package.
const (
	KindUnknown    Kind = iota
	KindValidation      // invalid window or query, detected before any request
	KindRequest         // transport failure or unexpected HTTP status
	KindAuth            // credentials rejected by the server
	KindData            // malformed or empty response payload
	KindBadRequest      // the server rejected the request as malformed
	KindNotFound        // no data for the ticker or dataset
	KindTimeout         // the server timed out producing the data
	KindServer          // internal server error
)

var kindNames = map[Kind]string{
	KindUnknown:    "unknown error",
	KindValidation: "validation error",
	KindRequest:    "request error",
	KindAuth:       "authorization error",
	KindData:       "data error",
	KindBadRequest: "bad request",
	KindNotFound:   "not found",
	KindTimeout:    "server timeout",
	KindServer:     "server error",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Error is the error type returned by all the public functions of this
// package.
type Error struct {
	Kind Kind
	Err  error // the underlying cause, with context
}

var _ error = &Error{}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error { return e.Err }

func newError(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Reason(format, args...)}
}

func wrapError(kind Kind, err error, format string, args ...interface{}) error {
	return &Error{Kind: kind, Err: errors.Annotate(err, format, args...)}
}

// KindOf finds the first *Error in the chain of wrapped errors and returns its
// Kind. It returns KindUnknown for nil and for errors of other types.
func KindOf(err error) Kind {
	for err != nil {
		if e, ok := err.(*Error); ok {
			return e.Kind
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			break
		}
		err = u.Unwrap()
	}
	return KindUnknown
}

// IsKind checks if err is an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}
