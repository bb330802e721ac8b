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
	"io"
	"math"
	"net/http"
	"runtime"
	"strings"
	"time"

	"github.com/stockparfait/fetch"
	"github.com/stockparfait/iterator"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/moabdb/table"
)

// Datasets of equity prices.
const (
	DailyStocks    = "daily_stocks"
	IntradayStocks = "intraday_stocks"
)

// requestHeader carries the encoded request.
const requestHeader = "x-req"

// EquityQuery is a request for the price series of a single equity.
type EquityQuery struct {
	Ticker      string
	Window      Window
	Intraday    bool         // intraday bars instead of daily prices
	Credentials *Credentials // if nil, use the client's credentials
}

// Dataset the query is addressed to.
func (q *EquityQuery) Dataset() string {
	if q.Intraday {
		return IntradayStocks
	}
	return DailyStocks
}

func unixSeconds(t time.Time) (uint32, error) {
	s := t.Unix()
	if s < 0 || s > math.MaxUint32 {
		return 0, newError(KindValidation,
			"time %s is out of the supported range", t.Format(time.RFC3339))
	}
	return uint32(s), nil
}

// request validates the query and creates the wire request.
func (q *EquityQuery) request(defaultCreds *Credentials) (*request, error) {
	ticker := strings.TrimSpace(q.Ticker)
	if ticker == "" {
		return nil, newError(KindValidation, "ticker must not be empty")
	}
	if err := q.Window.Check(); err != nil {
		return nil, err
	}
	start, err := unixSeconds(q.Window.Start)
	if err != nil {
		return nil, err
	}
	end, err := unixSeconds(q.Window.End)
	if err != nil {
		return nil, err
	}
	r := request{
		Symbol:   ticker,
		Start:    start,
		End:      end,
		Datatype: q.Dataset(),
	}
	creds := q.Credentials
	if creds == nil {
		creds = defaultCreds
	}
	if creds != nil {
		r.Username = creds.Username
		r.Token = creds.Token
	}
	return &r, nil
}

// codeError converts the status code of a response into an error.
func codeError(r *response) error {
	var kind Kind
	switch {
	case r.Code == 200:
		return nil
	case r.Code == 400:
		kind = KindBadRequest
	case r.Code == 401 || r.Code == 403:
		kind = KindAuth
	case r.Code == 404:
		kind = KindNotFound
	case r.Code == 408 || r.Code == 504:
		kind = KindTimeout
	case r.Code >= 500 && r.Code < 600:
		kind = KindServer
	default:
		kind = KindUnknown
	}
	if r.Message == "" {
		return newError(kind, "server returned code %d", r.Code)
	}
	return newError(kind, "server returned code %d: %s", r.Code, r.Message)
}

// FetchEquity executes the query using the Client from the context, or the
// default unauthenticated client.
func FetchEquity(ctx context.Context, q *EquityQuery) (*table.Table, error) {
	client := getClient(ctx)
	req, err := q.request(client.credentials)
	if err != nil {
		return nil, err
	}
	logging.Debugf(ctx, "MoabDB: requesting %s for %s in %s",
		req.Datatype, req.Symbol, q.Window)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, client.url, nil)
	if err != nil {
		return nil, wrapError(KindRequest, err, "failed to create request for %s",
			req.Symbol)
	}
	httpReq.Header.Set(requestHeader, req.encode())
	hc := fetch.GetClient(ctx)
	if hc == nil {
		hc = http.DefaultClient
	}
	resp, err := hc.Do(httpReq)
	if err != nil {
		return nil, wrapError(KindRequest, err, "failed to fetch %s", req.Symbol)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, newError(KindRequest, "HTTP status %d for %s",
			resp.StatusCode, req.Symbol)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, wrapError(KindRequest, err, "failed to read response for %s",
			req.Symbol)
	}
	r, err := parseResponse(body)
	if err != nil {
		return nil, wrapError(KindData, err, "invalid response for %s", req.Symbol)
	}
	if err := codeError(r); err != nil {
		return nil, err
	}
	t, err := table.ReadParquet(r.Data)
	if err != nil {
		return nil, wrapError(KindData, err, "invalid data for %s", req.Symbol)
	}
	logging.Infof(ctx, "MoabDB: fetched %d rows of %s for %s",
		t.Len(), req.Datatype, req.Symbol)
	return t, nil
}

// GetEquity fetches daily or intraday prices of the ticker in the window. If
// creds is nil, the credentials of the Client in the context are used, if
// any.
func GetEquity(ctx context.Context, ticker string, w Window, intraday bool, creds *Credentials) (*table.Table, error) {
	return FetchEquity(ctx, &EquityQuery{
		Ticker:      ticker,
		Window:      w,
		Intraday:    intraday,
		Credentials: creds,
	})
}

// EquityResult is the outcome of a query for a single ticker in GetEquities.
type EquityResult struct {
	Ticker string
	Table  *table.Table // nil when Err != nil
	Err    error
	index  int
}

// GetEquities executes the query q for each of the tickers, ignoring
// q.Ticker, with up to the given number of concurrent requests (0 means
// 2*NumCPU). The results are in the order of tickers.
func GetEquities(ctx context.Context, tickers []string, q EquityQuery, workers int) []EquityResult {
	if workers <= 0 {
		workers = 2 * runtime.NumCPU()
	}
	results := make([]EquityResult, len(tickers))
	indices := make([]int, len(tickers))
	for i, t := range tickers {
		indices[i] = i
		results[i] = EquityResult{
			Ticker: t,
			Err:    newError(KindRequest, "request for %s was not executed", t),
			index:  i,
		}
	}
	f := func(i int) EquityResult {
		q2 := q
		q2.Ticker = tickers[i]
		t, err := FetchEquity(ctx, &q2)
		return EquityResult{Ticker: tickers[i], Table: t, Err: err, index: i}
	}
	pm := iterator.ParallelMap(ctx, workers, iterator.FromSlice(indices), f)
	return iterator.Reduce[EquityResult, []EquityResult](pm, results,
		func(r EquityResult, res []EquityResult) []EquityResult {
			res[r.index] = r
			return res
		})
}
