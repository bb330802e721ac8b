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
)

type contextKey int

const (
	clientContextKey contextKey = iota
)

// URL is the default URL of the MoabDB request API. It may be overwritten in
// tests before creating a new client.
var URL = "https://api.moabdb.com/request/v1/"

// Credentials of a MoabDB account. Requests without credentials are
// unauthenticated and may be limited by the server.
type Credentials struct {
	Username string
	Token    string // secret API token
}

// NewCredentials creates credentials for the given account.
func NewCredentials(username, token string) *Credentials {
	return &Credentials{Username: username, Token: token}
}

// Client for querying the MoabDB API.
type Client struct {
	url         string       // the request API endpoint
	credentials *Credentials // default credentials, may be nil
}

func newClient(url string, creds *Credentials) *Client {
	return &Client{url: url, credentials: creds}
}

// GetClient extracts the Client from the context, if any.
func GetClient(ctx context.Context) *Client {
	c, ok := ctx.Value(clientContextKey).(*Client)
	if !ok {
		return nil
	}
	return c
}

// UseClient creates a new client for the current URL with the default
// credentials, which may be nil, and injects it into the context.
func UseClient(ctx context.Context, creds *Credentials) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(URL, creds))
}

// UseClientURL is UseClient with an explicit API endpoint.
func UseClientURL(ctx context.Context, url string, creds *Credentials) context.Context {
	return context.WithValue(ctx, clientContextKey, newClient(url, creds))
}

// getClient returns the client from the context, or an unauthenticated client
// for the default URL.
func getClient(ctx context.Context) *Client {
	if c := GetClient(ctx); c != nil {
		return c
	}
	return newClient(URL, nil)
}
