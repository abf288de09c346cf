package tui

import (
	"bytes"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/stockterm/internal/fetcher"
	"github.com/studiowebux/stockterm/internal/imaging"
	"github.com/studiowebux/stockterm/internal/market"
)

// Fallback chart size in cells for the initial fetch, before the first
// WindowSizeMsg has arrived.
const (
	fallbackChartCols = 100
	fallbackChartRows = 40
)

func (m *Model) settingsDebounce() time.Duration {
	return time.Duration(m.settings.SettingsDebounceMs) * time.Millisecond
}

func (m *Model) resizeDebounce() time.Duration {
	return time.Duration(m.settings.ResizeDebounceMs) * time.Millisecond
}

// dispatch submits the current selection and marks its fingerprint as the
// one whose completion may drive a redraw.
func (m *Model) dispatch() tea.Cmd {
	return m.dispatchWith(m.dispatcher.Submit)
}

// refetch forces a fresh subprocess invocation, replacing any cached chart
// for the current selection.
func (m *Model) refetch() tea.Cmd {
	return m.dispatchWith(m.dispatcher.Refresh)
}

func (m *Model) dispatchWith(submit func(market.Selection, int, int) *fetcher.Handle) tea.Cmd {
	fp := m.selection.Fingerprint()
	m.currentFP = fp
	m.dispatcher.SetCurrent(fp)
	m.loading = true
	m.artifact = nil
	m.errorMsg = ""
	m.statusMsg = fmt.Sprintf("Fetching %s...", m.selection.Symbol)

	cols, rows := m.chartCells()
	h := submit(m.selection, cols, rows)
	return tea.Batch(m.clearChartCmd(), awaitFetch(h))
}

// scheduleDispatch coalesces rapid selection changes: only the last change
// before a quiet gap actually fetches.
func (m *Model) scheduleDispatch() tea.Cmd {
	m.dispatchGen++
	return settingsQuiesceAfter(m.settingsDebounce(), m.dispatchGen)
}

// handleFetchResult applies a dispatcher completion. Results for a
// fingerprint the user has moved past are dropped; the dispatcher has
// already cached them for a future revisit.
func (m *Model) handleFetchResult(res fetcher.Result) tea.Cmd {
	if res.Fingerprint != m.currentFP {
		return nil
	}
	m.loading = false

	if res.Err != nil {
		m.mode = ModeError
		m.errorMsg = failureText(res.Err)
		m.statusMsg = ""
		// Keep the previous chart on screen under the error banner.
		if m.lastGood != nil {
			m.artifact = m.lastGood
			m.flushedKey = ""
			return m.flushChartCmd()
		}
		return nil
	}

	m.artifact = res.Artifact
	m.lastGood = res.Artifact
	m.errorMsg = ""
	m.statusMsg = ""
	if m.mode == ModeError {
		m.mode = ModeBrowsing
	}
	m.flushedKey = ""
	return m.flushChartCmd()
}

// failureText maps a fetch failure onto the footer message.
func failureText(err error) string {
	switch fetcher.KindOf(err) {
	case fetcher.KindNotFound:
		return "Ticker not found - check the symbol and try again"
	case fetcher.KindTimeout:
		return "Fetch timed out - press r to retry"
	case fetcher.KindDecode:
		return "Chart image was corrupt - press r to retry"
	default:
		return "Fetch failed: " + err.Error()
	}
}

// flushChartCmd transmits the current artifact to the terminal, re-encoded
// for the chart region's geometry. Identical (artifact, geometry,
// placement) tuples are not re-transmitted.
func (m *Model) flushChartCmd() tea.Cmd {
	if !m.graphics || m.artifact == nil || m.width == 0 {
		return nil
	}
	// Overlays draw over the chart region; hold the image until they close.
	// Every overlay-close path resets flushedKey and flushes again.
	if m.mode != ModeBrowsing && m.mode != ModeError {
		return nil
	}
	cols, rows := m.chartCells()
	if cols <= 0 || rows <= 0 {
		return nil
	}
	row, col := m.chartOrigin()
	key := fmt.Sprintf("%s@%dx%d+%d+%d", m.artifact.Fingerprint, cols, rows, row, col)
	if key == m.flushedKey {
		return nil
	}
	m.flushedKey = key

	img := m.artifact.Image
	geom := m.cellGeom.Resize(cols, rows)
	enc := m.encoder
	out := m.chartOut

	return func() tea.Msg {
		payload, err := enc.Render(img, geom)
		if err != nil {
			return chartErrorMsg{err: err}
		}
		var buf bytes.Buffer
		buf.WriteString("\x1b7") // save cursor
		fmt.Fprintf(&buf, "\x1b[%d;%dH", row, col)
		buf.Write(payload)
		buf.WriteString("\x1b8") // restore cursor
		if _, err := out.Write(buf.Bytes()); err != nil {
			return chartErrorMsg{err: err}
		}
		return nil
	}
}

// clearChartCmd removes any visible image placement, used when an overlay
// opens over the chart region or a new fetch begins.
func (m *Model) clearChartCmd() tea.Cmd {
	m.flushedKey = ""
	if !m.graphics {
		return nil
	}
	out := m.chartOut
	return func() tea.Msg {
		out.Write(imaging.DeleteSequence())
		return nil
	}
}

// sizeClassChanged reports whether the chart area moved far enough from
// the size the raster was rendered at that scaling would visibly degrade
// it. Either dimension growing or shrinking past 3:2 counts.
func sizeClassChanged(oldCols, oldRows, newCols, newRows int) bool {
	if oldCols <= 0 || oldRows <= 0 {
		return false
	}
	changed := func(old, cur int) bool {
		return cur*2 >= old*3 || old*2 >= cur*3
	}
	return changed(oldCols, newCols) || changed(oldRows, newRows)
}

// chartCells returns the chart region size in cells.
func (m *Model) chartCells() (cols, rows int) {
	if m.width == 0 || m.height == 0 {
		return fallbackChartCols, fallbackChartRows
	}
	cols = m.width - ChartBorderWidth
	rows = m.height - m.headerHeight() - FooterHeight - ChartBorderHeight
	if cols < MinChartCols {
		cols = MinChartCols
	}
	if rows < MinChartRows {
		rows = MinChartRows
	}
	return cols, rows
}

// chartOrigin returns the 1-based terminal row/column of the chart
// region's top-left cell, inside the box border.
func (m *Model) chartOrigin() (row, col int) {
	return m.headerHeight() + 2, 2
}

func (m *Model) headerHeight() int {
	if m.showHeader {
		return HeaderHeight
	}
	return 0
}

// yankStats copies the header stats line to the clipboard.
func (m *Model) yankStats() tea.Cmd {
	line := m.statsLine()
	return func() tea.Msg {
		if err := clipboard.WriteAll(line); err != nil {
			return statusMsg("Clipboard unavailable")
		}
		return statusMsg("Stats copied to clipboard")
	}
}

// statsLine formats the current quote as a single line.
func (m *Model) statsLine() string {
	if m.artifact == nil {
		return m.selection.Symbol
	}
	q := m.artifact.Quote
	return fmt.Sprintf("%s %.2f %+.2f (%+.2f%%) O:%.2f H:%.2f L:%.2f Vol:%s",
		q.Symbol, q.Price, q.Change, q.PctChange, q.Open, q.High, q.Low, market.FormatVolume(q.Volume))
}

// quit tears the program down; bubbletea restores the terminal mode.
func (m *Model) quit() tea.Cmd {
	return tea.Sequence(m.clearChartCmd(), m.persistSettings(), tea.Quit)
}

// persistSettings snapshots the live selection back into the settings file.
func (m *Model) persistSettings() tea.Cmd {
	if m.saveSettings == nil {
		return nil
	}
	s := m.settings
	s.DefaultSymbol = m.selection.Symbol
	s.Range = m.selection.Range
	s.Interval = m.selection.Interval
	s.ChartType = string(m.selection.ChartType)
	s.ViewMode = string(m.selection.ViewMode)
	s.TimeFormat = string(m.selection.TimeFormat)
	s.ShowHeader = m.showHeader
	save := m.saveSettings
	return func() tea.Msg {
		if err := save(s); err != nil {
			return statusMsg("Failed to save settings: " + err.Error())
		}
		return nil
	}
}
