// Package fetcher invokes the external chart subprocess and coordinates
// in-flight requests so the UI never blocks and never fetches the same
// chart twice concurrently.
package fetcher

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/studiowebux/stockterm/internal/market"
)

// Params is everything the subprocess needs for one invocation: the
// selection snapshot plus the chart area size in cells.
type Params struct {
	Selection market.Selection
	Columns   int
	Rows      int
}

// RawResult is the subprocess output before image decoding: summary stats
// and the base64 raster.
type RawResult struct {
	Quote     market.Quote
	ImageData string
}

// Runner is the black-box fetch capability. Implementations must honor ctx
// cancellation on the waiting side; killing the child is best-effort.
type Runner interface {
	Fetch(ctx context.Context, p Params) (*RawResult, error)
}

// envelope mirrors the subprocess JSON contract.
type envelope struct {
	Symbol    string  `json:"symbol"`
	Price     float64 `json:"price"`
	Open      float64 `json:"open"`
	High      float64 `json:"high"`
	Low       float64 `json:"low"`
	Volume    uint64  `json:"volume"`
	Change    float64 `json:"change"`
	PctChange float64 `json:"pct_change"`
	ImageData string  `json:"image_data"`
	Error     string  `json:"error"`
}

// ExecRunner invokes an external command, e.g. ["python3", "fetch_stock.py"].
type ExecRunner struct {
	Command []string
}

// NewExecRunner builds a runner for a fetcher command line.
func NewExecRunner(command []string) (*ExecRunner, error) {
	if len(command) == 0 {
		return nil, fmt.Errorf("empty fetcher command")
	}
	return &ExecRunner{Command: command}, nil
}

// Fetch runs the subprocess with arguments derived from the selection:
//
//	SYMBOL WIDTH HEIGHT INDICATORS TIMEFMT VIEWMODE RANGE INTERVAL CHARTTYPE
//
// and parses the JSON envelope from stdout. A non-zero exit maps to a fetch
// failure carrying stderr; an "error" field in the envelope is classified
// as NotFound when it names a missing ticker.
func (r *ExecRunner) Fetch(ctx context.Context, p Params) (*RawResult, error) {
	sel := p.Selection
	indicators := "None"
	if len(sel.Indicators) > 0 {
		indicators = strings.Join(sel.Indicators, ",")
	}

	args := append([]string(nil), r.Command[1:]...)
	args = append(args,
		sel.Symbol,
		strconv.Itoa(p.Columns),
		strconv.Itoa(p.Rows),
		indicators,
		string(sel.TimeFormat),
		string(sel.ViewMode),
		sel.Range,
		sel.Interval,
		string(sel.ChartType),
	)

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, r.Command[0], args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, wrapError(KindTimeout, ctx.Err(), fmt.Sprintf("fetch for %s timed out", sel.Symbol))
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, wrapError(KindFetchFailed, err, fmt.Sprintf("fetcher failed: %s", msg))
	}

	return parseEnvelope(stdout.Bytes())
}

// parseEnvelope decodes the subprocess stdout. Anything before the first
// '{' is tolerated; charting libraries are chatty on startup.
func parseEnvelope(out []byte) (*RawResult, error) {
	start := bytes.IndexByte(out, '{')
	if start < 0 {
		return nil, newError(KindFetchFailed, "fetcher produced no JSON output")
	}

	var env envelope
	if err := json.Unmarshal(out[start:], &env); err != nil {
		return nil, wrapError(KindFetchFailed, err, "fetcher produced malformed JSON")
	}

	if env.Error != "" {
		return nil, classifyEnvelopeError(env.Error)
	}
	if env.ImageData == "" {
		return nil, newError(KindFetchFailed, "fetcher returned no image")
	}

	return &RawResult{
		Quote: market.Quote{
			Symbol:    env.Symbol,
			Price:     env.Price,
			Open:      env.Open,
			High:      env.High,
			Low:       env.Low,
			Volume:    env.Volume,
			Change:    env.Change,
			PctChange: env.PctChange,
		},
		ImageData: env.ImageData,
	}, nil
}

// classifyEnvelopeError maps the subprocess error string onto the failure
// taxonomy. The "no data" phrasing comes from the fetcher's own not-found
// path.
func classifyEnvelopeError(msg string) error {
	lower := strings.ToLower(msg)
	for _, marker := range []string{"no data", "not found", "delisted", "invalid ticker", "no price data"} {
		if strings.Contains(lower, marker) {
			return newError(KindNotFound, "ticker not found: %s", msg)
		}
	}
	return newError(KindFetchFailed, "%s", msg)
}

// IsTimeout reports whether err is a deadline-style failure, regardless of
// which layer produced it.
func IsTimeout(err error) bool {
	return KindOf(err) == KindTimeout || errors.Is(err, context.DeadlineExceeded)
}
