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

package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/stockparfait/errors"
	"github.com/stockparfait/logging"
	"github.com/stockparfait/moabdb/moab"
	"github.com/stockparfait/moabdb/table"
	"golang.org/x/exp/slices"

	toml "github.com/pelletier/go-toml/v2"
)

type Flags struct {
	CacheDir string // default: ~/.moabdb
	LogLevel logging.Level
	Tickers  []string // required
	Length   string   // e.g. "3 months"
	Start    string   // date or timestamp
	End      string   // date or timestamp
	Intraday bool
	CSV      bool   // dump CSV format; default: text.
	Rows     int    // max. rows per ticker; 0 = all
	Summary  string // print statistics of this column instead of the data
	Workers  int    // concurrent requests; 0 = 2*NumCPU
}

func parseFlags(args []string) (*Flags, error) {
	var flags Flags
	var tickers string
	fs := flag.NewFlagSet("moab-equity", flag.ExitOnError)
	fs.StringVar(&flags.CacheDir, "cache", filepath.Join(os.Getenv("HOME"), ".moabdb"),
		"directory with the config.toml file")
	flags.LogLevel = logging.Info
	fs.Var(&flags.LogLevel, "log-level", "Log level: debug, info, warning, error")
	fs.StringVar(&tickers, "tickers", "", "comma separated list of tickers (required)")
	fs.StringVar(&flags.Length, "length", "", "window length, e.g. '3 months'")
	fs.StringVar(&flags.Start, "start", "", "window start: YYYY-MM-DD or a timestamp")
	fs.StringVar(&flags.End, "end", "", "window end: YYYY-MM-DD or a timestamp")
	fs.BoolVar(&flags.Intraday, "intraday", false, "fetch intraday data; default: daily")
	fs.BoolVar(&flags.CSV, "csv", false, "print table in CSV format; default: text")
	fs.IntVar(&flags.Rows, "rows", 0, "max. number of rows to print per ticker")
	fs.StringVar(&flags.Summary, "summary", "", "print statistics of this column")
	fs.IntVar(&flags.Workers, "workers", 0, "number of concurrent requests")

	err := fs.Parse(args)
	if err != nil {
		return nil, err
	}
	for _, t := range strings.Split(tickers, ",") {
		t = strings.ToUpper(strings.TrimSpace(t))
		if t != "" && !slices.Contains(flags.Tickers, t) {
			flags.Tickers = append(flags.Tickers, t)
		}
	}
	if len(flags.Tickers) == 0 {
		return nil, errors.Reason("missing required -tickers argument")
	}
	if flags.Length == "" && (flags.Start == "" || flags.End == "") {
		return nil, errors.Reason("expected -length, or both -start and -end")
	}
	return &flags, nil
}

const configFile = "config.toml"

type Config struct {
	Username string `toml:"username"`
	Token    string `toml:"token"`
	URL      string `toml:"url"` // default: moab.URL
}

// Credentials from the config, or nil when not configured.
func (c *Config) Credentials() *moab.Credentials {
	if c.Username == "" && c.Token == "" {
		return nil
	}
	return moab.NewCredentials(c.Username, c.Token)
}

// parseConfig reads the config file. A missing file is not an error: the
// requests are then unauthenticated.
func parseConfig(ctx context.Context, filePath string) (*Config, error) {
	var c Config
	f, err := os.Open(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			logging.Infof(ctx, "config file '%s' does not exist, using anonymous access",
				filePath)
			c.URL = moab.URL
			return &c, nil
		}
		return nil, errors.Annotate(err, "failed to open config file %s", filePath)
	}
	defer f.Close()

	d := toml.NewDecoder(f)
	if err := d.Decode(&c); err != nil {
		return nil, errors.Annotate(err, "failed to read config file %s", filePath)
	}
	if c.URL == "" {
		c.URL = moab.URL
	}
	return &c, nil
}

func buildWindow(flags *Flags) (moab.Window, error) {
	b := moab.NewWindowBuilder()
	if flags.Start != "" {
		t, err := moab.ParseTime(flags.Start)
		if err != nil {
			return moab.Window{}, errors.Annotate(err, "invalid -start")
		}
		b = b.Start(t)
	}
	if flags.End != "" {
		t, err := moab.ParseTime(flags.End)
		if err != nil {
			return moab.Window{}, errors.Annotate(err, "invalid -end")
		}
		b = b.End(t)
	}
	if flags.Length != "" {
		l, err := moab.ParseLength(flags.Length)
		if err != nil {
			return moab.Window{}, errors.Annotate(err, "invalid -length")
		}
		b = b.Length(l)
	}
	return b.Build()
}

func writeTable(tbl *table.Table, flags *Flags, w io.Writer) error {
	p := table.Params{Rows: flags.Rows}
	if flags.CSV {
		if err := tbl.WriteCSV(w, p); err != nil {
			return errors.Annotate(err, "failed to print CSV")
		}
		return nil
	}
	if err := tbl.WriteText(w, p); err != nil {
		return errors.Annotate(err, "failed to print text")
	}
	return nil
}

func summaryTable(results []moab.EquityResult, column string) (*table.Table, error) {
	cols := append([]table.Column{{Name: "Ticker", Kind: table.KindString}},
		table.SummaryColumns()...)
	tbl := table.NewTable(cols...)
	for _, r := range results {
		s, err := r.Table.Summarize(column)
		if err != nil {
			return nil, errors.Annotate(err, "failed to summarize %s", r.Ticker)
		}
		tbl.AddRow(append(table.Row{table.String(r.Ticker)}, s.Row()...))
	}
	return tbl, nil
}

func printData(ctx context.Context, flags *Flags, w io.Writer) error {
	config, err := parseConfig(ctx, filepath.Join(flags.CacheDir, configFile))
	if err != nil {
		return errors.Annotate(err, "failed to parse config")
	}
	window, err := buildWindow(flags)
	if err != nil {
		return errors.Annotate(err, "invalid window")
	}
	ctx = moab.UseClientURL(ctx, config.URL, config.Credentials())
	q := moab.EquityQuery{Window: window, Intraday: flags.Intraday}
	results := moab.GetEquities(ctx, flags.Tickers, q, flags.Workers)
	for _, r := range results {
		if r.Err != nil {
			return errors.Annotate(r.Err, "failed to fetch %s", r.Ticker)
		}
	}
	if flags.Summary != "" {
		tbl, err := summaryTable(results, flags.Summary)
		if err != nil {
			return errors.Annotate(err, "failed to compute summary")
		}
		return writeTable(tbl, flags, w)
	}
	for _, r := range results {
		if len(results) > 1 {
			if _, err := fmt.Fprintf(w, "== %s ==\n", r.Ticker); err != nil {
				return errors.Annotate(err, "failed to print ticker heading")
			}
		}
		if err := writeTable(r.Table, flags, w); err != nil {
			return errors.Annotate(err, "failed to print %s", r.Ticker)
		}
	}
	return nil
}

func main() {
	ctx := context.Background()
	flags, err := parseFlags(os.Args[1:])
	if err != nil {
		ctx = logging.Use(ctx, logging.DefaultGoLogger(logging.Info))
		logging.Errorf(ctx, "failed to parse flags: %s", err.Error())
		os.Exit(1)
	}
	ctx = logging.Use(ctx, logging.DefaultGoLogger(flags.LogLevel))

	if err := printData(ctx, flags, os.Stdout); err != nil {
		logging.Errorf(ctx, "%s", err.Error())
		os.Exit(1)
	}
}
