package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/studiowebux/stockterm/internal/market"
)

// Adaptive color definitions for light/dark terminal support
var (
	colorGreen  = lipgloss.AdaptiveColor{Light: "#006400", Dark: "#00ff00"} // Dark green / Bright green
	colorRed    = lipgloss.AdaptiveColor{Light: "#8b0000", Dark: "#ff0000"} // Dark red / Bright red
	colorYellow = lipgloss.AdaptiveColor{Light: "#b8860b", Dark: "#ffff00"} // Dark goldenrod / Yellow
	colorGray   = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#888888"} // Dark gray / Light gray
	colorCyan   = lipgloss.AdaptiveColor{Light: "#008b8b", Dark: "#00ffff"} // Dark cyan / Cyan
)

// Style definitions
var (
	styleTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorCyan)

	styleSelected = lipgloss.NewStyle().
			Background(lipgloss.AdaptiveColor{Light: "#d3d3d3", Dark: "#3a3a3a"}).
			Foreground(lipgloss.AdaptiveColor{Light: "#000000", Dark: "#ffffff"})

	styleUp = lipgloss.NewStyle().
		Foreground(colorGreen)

	styleDown = lipgloss.NewStyle().
			Foreground(colorRed)

	styleError = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	styleWarning = lipgloss.NewStyle().
			Foreground(colorYellow)

	styleSubtle = lipgloss.NewStyle().
			Foreground(colorGray)
)

// renderMain renders the browsing view (header + chart box + status bar).
// The chart box body is left blank; the graphics payload is written
// directly to the terminal over it, outside bubbletea's frame.
func (m *Model) renderMain() string {
	var sections []string

	if m.showHeader {
		sections = append(sections, m.renderHeader())
	}

	chartCols, chartRows := m.chartCells()
	chartBox := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(chartCols).
		Height(chartRows).
		Render(m.renderChartBody(chartCols, chartRows))
	sections = append(sections, chartBox)

	sections = append(sections, m.renderStatusBar())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// renderHeader renders the one-line quote summary in a bordered box.
func (m *Model) renderHeader() string {
	width := m.width - 2

	var line string
	if m.artifact == nil {
		line = styleTitle.Render(m.selection.Symbol) + styleSubtle.Render("  (no data yet)")
	} else {
		q := m.artifact.Quote
		changeStyle := styleUp
		arrow := "▲"
		if q.Change < 0 {
			changeStyle = styleDown
			arrow = "▼"
		}
		line = fmt.Sprintf("%s  %s  %s  %s",
			styleTitle.Render(q.Symbol),
			fmt.Sprintf("%.2f", q.Price),
			changeStyle.Render(fmt.Sprintf("%s %+.2f (%+.2f%%)", arrow, q.Change, q.PctChange)),
			styleSubtle.Render(fmt.Sprintf("O:%.2f H:%.2f L:%.2f Vol:%s",
				q.Open, q.High, q.Low, market.FormatVolume(q.Volume))),
		)
	}

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorGray).
		Width(width).
		Render(line)
}

// renderChartBody fills the chart interior when there is no image to show.
func (m *Model) renderChartBody(cols, rows int) string {
	var text string
	switch {
	case m.mode == ModeError && m.artifact == nil:
		text = styleError.Render(m.errorMsg)
	case !m.graphics:
		text = styleWarning.Render("Chart images need a Kitty graphics capable terminal")
	case m.loading && m.artifact == nil:
		text = styleSubtle.Render(fmt.Sprintf("Fetching %s...", m.selection.Symbol))
	case m.artifact == nil:
		text = styleSubtle.Render("No chart")
	default:
		// Image overlays this region.
		return ""
	}

	return lipgloss.Place(cols, rows, lipgloss.Center, lipgloss.Center, text)
}

// renderStatusBar renders the bottom line: error or status on the left,
// selection summary and key hints on the right.
func (m *Model) renderStatusBar() string {
	var left string
	switch {
	case m.mode == ModeError && m.errorMsg != "":
		left = styleError.Render(m.errorMsg)
	case m.statusMsg != "":
		left = styleWarning.Render(m.statusMsg)
	case m.loading:
		left = styleSubtle.Render("Fetching...")
	default:
		left = styleSubtle.Render("o:ticker  s:settings  r:refetch  y:yank  h:header  q:quit")
	}

	right := styleSubtle.Render(fmt.Sprintf("%s  %s/%s  %s  %s",
		m.selection.Symbol, m.selection.Range, m.selection.Interval,
		m.selection.ChartType, m.selection.ViewMode))

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return left
	}
	return left + strings.Repeat(" ", gap) + right
}
