package market

import (
	"fmt"
	"image"
	"time"
)

// Quote carries the summary stats reported alongside a chart.
type Quote struct {
	Symbol    string
	Price     float64
	Open      float64
	High      float64
	Low       float64
	Volume    uint64
	Change    float64
	PctChange float64
}

// FormatVolume renders a volume with K/M suffixes for the header line.
func FormatVolume(v uint64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("%.2fM", float64(v)/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("%.2fK", float64(v)/1_000)
	default:
		return fmt.Sprintf("%d", v)
	}
}

// Artifact is a successfully fetched chart: the decoded raster plus its
// provenance. Once inserted into the cache the cache owns it; readers treat
// it as immutable.
type Artifact struct {
	Fingerprint Fingerprint
	Image       image.Image
	Quote       Quote
	FetchedAt   time.Time

	// Cell geometry the chart was rendered at, kept so the render loop can
	// tell when a resize has outgrown the source raster.
	Columns int
	Rows    int
}
