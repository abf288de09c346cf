package imaging

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/sys/unix"
)

// Default cell size used when the terminal does not report pixel
// dimensions. Matches a common 8x16 bitmap cell.
const (
	defaultCellWidth  = 8
	defaultCellHeight = 16
)

// Geometry describes a displayable region of the terminal in cells plus the
// pixel size of a single cell.
type Geometry struct {
	Cols       int
	Rows       int
	CellWidth  int
	CellHeight int
}

// PixelWidth is the region width in pixels.
func (g Geometry) PixelWidth() int { return g.Cols * g.CellWidth }

// PixelHeight is the region height in pixels.
func (g Geometry) PixelHeight() int { return g.Rows * g.CellHeight }

// Resize returns the same cell metrics over a different cell region.
func (g Geometry) Resize(cols, rows int) Geometry {
	g.Cols = cols
	g.Rows = rows
	return g
}

// Detect queries the terminal for its cell and pixel dimensions. When the
// terminal does not report pixel sizes the default cell size is assumed.
func Detect(fd uintptr) (Geometry, error) {
	ws, err := unix.IoctlGetWinsize(int(fd), unix.TIOCGWINSZ)
	if err != nil {
		return Geometry{}, fmt.Errorf("query terminal size: %w", err)
	}
	g := Geometry{
		Cols:       int(ws.Col),
		Rows:       int(ws.Row),
		CellWidth:  defaultCellWidth,
		CellHeight: defaultCellHeight,
	}
	if ws.Col > 0 && ws.Xpixel > 0 {
		g.CellWidth = int(ws.Xpixel) / int(ws.Col)
	}
	if ws.Row > 0 && ws.Ypixel > 0 {
		g.CellHeight = int(ws.Ypixel) / int(ws.Row)
	}
	return g, nil
}

// Supported reports whether the terminal advertises the kitty graphics
// protocol. The check is environment-based; terminals that pass it but
// still reject the protocol simply show nothing in the chart region, which
// the caller treats the same as unsupported.
func Supported() bool {
	if os.Getenv("KITTY_WINDOW_ID") != "" {
		return true
	}
	if strings.Contains(os.Getenv("TERM"), "kitty") || strings.Contains(os.Getenv("TERM"), "ghostty") {
		return true
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "WezTerm", "ghostty":
		return true
	}
	if os.Getenv("KONSOLE_VERSION") != "" {
		return true
	}
	return false
}
