package tui

import (
	"bytes"
	"context"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"io"
	"testing"

	"github.com/studiowebux/stockterm/internal/cache"
	"github.com/studiowebux/stockterm/internal/config"
	"github.com/studiowebux/stockterm/internal/fetcher"
	"github.com/studiowebux/stockterm/internal/imaging"
	"github.com/studiowebux/stockterm/internal/market"
	"github.com/studiowebux/stockterm/internal/tickers"
)

// stubRunner returns a canned envelope for every symbol. Fetches never
// leave the process, so TUI tests stay fast and deterministic.
type stubRunner struct {
	err func(sel market.Selection) error
}

func (r *stubRunner) Fetch(_ context.Context, p fetcher.Params) (*fetcher.RawResult, error) {
	if r.err != nil {
		if err := r.err(p.Selection); err != nil {
			return nil, err
		}
	}
	return &fetcher.RawResult{
		Quote: market.Quote{
			Symbol: p.Selection.Symbol,
			Price:  187.42,
			Change: 1.03,
		},
		ImageData: testChartB64(),
	}, nil
}

// testChartB64 returns a tiny valid PNG, base64 encoded like the fetch
// subprocess emits it.
func testChartB64() string {
	img := image.NewRGBA(image.Rect(0, 0, 4, 4))
	img.Set(0, 0, color.White)
	var buf bytes.Buffer
	png.Encode(&buf, img)
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

// CreateTestModel creates a Model wired to an in-process stub fetcher.
func CreateTestModel(t *testing.T) *Model {
	t.Helper()
	return CreateTestModelWithRunner(t, &stubRunner{})
}

// CreateTestModelWithRunner creates a Model whose dispatcher runs the
// given runner.
func CreateTestModelWithRunner(t *testing.T, runner fetcher.Runner) *Model {
	t.Helper()

	d := fetcher.NewDispatcher(runner, cache.New(cache.DefaultCapacity), 0, nil)
	catalog, err := tickers.Parse(bytes.NewReader([]byte("Symbol,Name\nAAPL,Apple Inc.\nMSFT,Microsoft Corporation\nSPY,SPDR S&P 500 ETF\n")))
	if err != nil {
		t.Fatalf("Failed to build test catalog: %v", err)
	}

	m := New(Options{
		Settings:   config.DefaultSettings(),
		Dispatcher: d,
		Catalog:    catalog,
		Geometry:   imaging.Geometry{Cols: 120, Rows: 40, CellWidth: 8, CellHeight: 16},
		Graphics:   false,
		ChartOut:   io.Discard,
	})
	return &m
}

// AssertModelField is a generic helper for checking model field values
func AssertModelField[T comparable](t *testing.T, fieldName string, got, want T) {
	t.Helper()
	if got != want {
		t.Errorf("%s = %v, want %v", fieldName, got, want)
	}
}
