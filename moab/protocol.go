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
	"encoding/base64"
	"strings"

	"github.com/stockparfait/errors"
	"google.golang.org/protobuf/encoding/protowire"
)

// Protobuf field numbers of the request message.
const (
	requestSymbolField   protowire.Number = 1
	requestStartField    protowire.Number = 2
	requestEndField      protowire.Number = 3
	requestDatatypeField protowire.Number = 4
	requestUsernameField protowire.Number = 5
	requestTokenField    protowire.Number = 6
)

// Protobuf field numbers of the response message.
const (
	responseCodeField    protowire.Number = 1
	responseDataField    protowire.Number = 2
	responseMessageField protowire.Number = 3
)

// request is the query message sent in the request header.
type request struct {
	Symbol   string
	Start    uint32 // unix seconds
	End      uint32 // unix seconds
	Datatype string
	Username string
	Token    string
}

// response is the message in the response body.
type response struct {
	Code    int32
	Data    []byte // Parquet file
	Message string // optional human readable status
}

func appendString(b []byte, num protowire.Number, s string) []byte {
	if s == "" {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendString(b, s)
}

func appendBytes(b []byte, num protowire.Number, v []byte) []byte {
	if len(v) == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.BytesType)
	return protowire.AppendBytes(b, v)
}

func appendVarint(b []byte, num protowire.Number, v uint64) []byte {
	if v == 0 {
		return b
	}
	b = protowire.AppendTag(b, num, protowire.VarintType)
	return protowire.AppendVarint(b, v)
}

// marshal the request in the protobuf wire format. Zero values are omitted.
func (r *request) marshal() []byte {
	var b []byte
	b = appendString(b, requestSymbolField, r.Symbol)
	b = appendVarint(b, requestStartField, uint64(r.Start))
	b = appendVarint(b, requestEndField, uint64(r.End))
	b = appendString(b, requestDatatypeField, r.Datatype)
	b = appendString(b, requestUsernameField, r.Username)
	b = appendString(b, requestTokenField, r.Token)
	return b
}

// encode the request for the x-req header.
func (r *request) encode() string {
	return base64.StdEncoding.EncodeToString(r.marshal())
}

// fieldFunc consumes the value of a single field of type typ from b and
// returns the number of bytes consumed, or a negative protowire error code.
// It returns 0 when the field is not recognized.
type fieldFunc func(num protowire.Number, typ protowire.Type, b []byte) int

// unmarshal walks the fields of a protobuf message, skipping unknown ones.
func unmarshal(b []byte, f fieldFunc) error {
	for len(b) > 0 {
		num, typ, n := protowire.ConsumeTag(b)
		if n < 0 {
			return errors.Annotate(protowire.ParseError(n), "invalid field tag")
		}
		b = b[n:]
		n = f(num, typ, b)
		if n == 0 {
			n = protowire.ConsumeFieldValue(num, typ, b)
		}
		if n < 0 {
			return errors.Annotate(protowire.ParseError(n), "invalid value of field %d", num)
		}
		b = b[n:]
	}
	return nil
}

func consumeString(typ protowire.Type, b []byte, s *string) int {
	if typ != protowire.BytesType {
		return 0
	}
	v, n := protowire.ConsumeString(b)
	if n >= 0 {
		*s = v
	}
	return n
}

func consumeVarint(typ protowire.Type, b []byte, v *uint64) int {
	if typ != protowire.VarintType {
		return 0
	}
	x, n := protowire.ConsumeVarint(b)
	if n >= 0 {
		*v = x
	}
	return n
}

// parseRequest decodes the x-req header value.
func parseRequest(s string) (*request, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, errors.Annotate(err, "request is not valid base64")
	}
	var r request
	err = unmarshal(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		var v uint64
		switch num {
		case requestSymbolField:
			return consumeString(typ, b, &r.Symbol)
		case requestStartField:
			n := consumeVarint(typ, b, &v)
			if n > 0 {
				r.Start = uint32(v)
			}
			return n
		case requestEndField:
			n := consumeVarint(typ, b, &v)
			if n > 0 {
				r.End = uint32(v)
			}
			return n
		case requestDatatypeField:
			return consumeString(typ, b, &r.Datatype)
		case requestUsernameField:
			return consumeString(typ, b, &r.Username)
		case requestTokenField:
			return consumeString(typ, b, &r.Token)
		}
		return 0
	})
	if err != nil {
		return nil, errors.Annotate(err, "failed to decode request")
	}
	return &r, nil
}

// marshal the response in the protobuf wire format.
func (r *response) marshal() []byte {
	var b []byte
	// int32 is sign-extended to 64 bits on the wire.
	b = appendVarint(b, responseCodeField, uint64(int64(r.Code)))
	b = appendBytes(b, responseDataField, r.Data)
	b = appendString(b, responseMessageField, r.Message)
	return b
}

// parseResponse decodes the response body: a base64 encoded protobuf message.
func parseResponse(body []byte) (*response, error) {
	b, err := base64.StdEncoding.DecodeString(strings.TrimSpace(string(body)))
	if err != nil {
		return nil, errors.Annotate(err, "response is not valid base64")
	}
	var r response
	err = unmarshal(b, func(num protowire.Number, typ protowire.Type, b []byte) int {
		switch num {
		case responseCodeField:
			var v uint64
			n := consumeVarint(typ, b, &v)
			if n > 0 {
				r.Code = int32(v)
			}
			return n
		case responseDataField:
			if typ != protowire.BytesType {
				return 0
			}
			v, n := protowire.ConsumeBytes(b)
			if n >= 0 {
				r.Data = append([]byte(nil), v...)
			}
			return n
		case responseMessageField:
			return consumeString(typ, b, &r.Message)
		}
		return 0
	})
	if err != nil {
		return nil, errors.Annotate(err, "failed to decode response")
	}
	return &r, nil
}

// TestResponse generates the response body as returned by the MoabDB server.
// For use in tests.
func TestResponse(code int32, data []byte, message string) string {
	r := response{Code: code, Data: data, Message: message}
	return base64.StdEncoding.EncodeToString(r.marshal())
}

// TestRequest decodes the value of the request header into the symbol, the
// dataset and the username. For use in tests.
func TestRequest(header string) (symbol, dataset, username string, err error) {
	r, err := parseRequest(header)
	if err != nil {
		return "", "", "", err
	}
	return r.Symbol, r.Datatype, r.Username, nil
}

// RequestHeader is the name of the HTTP header carrying the encoded request.
const RequestHeader = requestHeader
