package market

import (
	"sort"
	"strings"
)

// ChartType selects how the fetcher renders the price series.
type ChartType string

const (
	ChartLine   ChartType = "line"
	ChartCandle ChartType = "candle"
)

// ViewMode selects the Y axis of the chart.
type ViewMode string

const (
	ViewPercent ViewMode = "percent"
	ViewPrice   ViewMode = "price"
)

// TimeFormat selects the X axis label format.
type TimeFormat string

const (
	Time12h TimeFormat = "12h"
	Time24h TimeFormat = "24h"
)

// Ranges lists the supported chart ranges, in menu order.
var Ranges = []string{"1d", "5d", "1mo", "3mo", "6mo", "1y", "2y", "5y", "10y", "ytd", "max"}

// Intervals lists the supported candle intervals, in menu order.
var Intervals = []string{"1m", "2m", "5m", "15m", "30m", "1h", "1d", "1wk", "1mo"}

// Selection is the user's current view: which symbol to chart and how.
// It is a value type; fetch tasks receive a copy taken at submission time
// and the UI is the only writer.
type Selection struct {
	Symbol     string
	Range      string
	Interval   string
	ChartType  ChartType
	ViewMode   ViewMode
	TimeFormat TimeFormat
	Indicators []string // sorted, unique
}

// NewSelection returns the default view for a symbol: 1-day intraday
// percent-change line chart.
func NewSelection(symbol string) Selection {
	return Selection{
		Symbol:     NormalizeSymbol(symbol),
		Range:      "1d",
		Interval:   "1m",
		ChartType:  ChartLine,
		ViewMode:   ViewPercent,
		TimeFormat: Time12h,
	}
}

// NormalizeSymbol upper-cases and trims a ticker symbol.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}

// WithSymbol returns a copy of the selection pointing at another symbol.
func (s Selection) WithSymbol(symbol string) Selection {
	out := s.clone()
	out.Symbol = NormalizeSymbol(symbol)
	return out
}

// WithRange returns a copy with the range replaced and the interval switched
// to the one that makes sense for it (1m for intraday, weekly/monthly for
// multi-year ranges).
func (s Selection) WithRange(rng string) Selection {
	out := s.clone()
	out.Range = rng
	out.Interval = SuggestedInterval(rng)
	return out
}

// WithInterval returns a copy with the interval replaced.
func (s Selection) WithInterval(interval string) Selection {
	out := s.clone()
	out.Interval = interval
	return out
}

// ToggleChartType flips between line and candle charts. Candle charts plot
// absolute prices, so switching to candle also forces price view.
func (s Selection) ToggleChartType() Selection {
	out := s.clone()
	if out.ChartType == ChartLine {
		out.ChartType = ChartCandle
		out.ViewMode = ViewPrice
	} else {
		out.ChartType = ChartLine
	}
	return out
}

// ToggleViewMode flips between percent-change and price view.
func (s Selection) ToggleViewMode() Selection {
	out := s.clone()
	if out.ViewMode == ViewPercent {
		out.ViewMode = ViewPrice
	} else {
		out.ViewMode = ViewPercent
	}
	return out
}

// ToggleTimeFormat flips the axis clock between 12h and 24h.
func (s Selection) ToggleTimeFormat() Selection {
	out := s.clone()
	if out.TimeFormat == Time12h {
		out.TimeFormat = Time24h
	} else {
		out.TimeFormat = Time12h
	}
	return out
}

// ToggleIndicator adds or removes an indicator by name, keeping the set
// sorted. requiresPrice forces price view when enabling an indicator that
// only makes sense on a price axis.
func (s Selection) ToggleIndicator(name string, requiresPrice bool) Selection {
	out := s.clone()
	for i, n := range out.Indicators {
		if n == name {
			out.Indicators = append(out.Indicators[:i], out.Indicators[i+1:]...)
			return out
		}
	}
	out.Indicators = append(out.Indicators, name)
	sort.Strings(out.Indicators)
	if requiresPrice {
		out.ViewMode = ViewPrice
	}
	return out
}

// HasIndicator reports whether an indicator is enabled.
func (s Selection) HasIndicator(name string) bool {
	for _, n := range s.Indicators {
		if n == name {
			return true
		}
	}
	return false
}

func (s Selection) clone() Selection {
	out := s
	out.Indicators = append([]string(nil), s.Indicators...)
	return out
}

// SuggestedInterval picks a sensible default interval for a range.
func SuggestedInterval(rng string) string {
	switch rng {
	case "1d":
		return "1m"
	case "2y":
		return "1wk"
	case "5y", "10y":
		return "1mo"
	default:
		return "1d"
	}
}

// Fingerprint identifies a selection's fetch-relevant fields. Equal
// fingerprints mean the same chart; it is the cache key and the staleness
// check for in-flight results.
type Fingerprint string

// Fingerprint derives the canonical identity of the selection. The encoding
// is a joined string rather than a hash so it stays collision-free and
// readable in the fetch journal.
func (s Selection) Fingerprint() Fingerprint {
	parts := []string{
		s.Symbol,
		s.Range,
		s.Interval,
		string(s.ChartType),
		string(s.ViewMode),
		string(s.TimeFormat),
		strings.Join(s.Indicators, ","),
	}
	return Fingerprint(strings.Join(parts, "|"))
}
