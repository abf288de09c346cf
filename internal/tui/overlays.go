package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/studiowebux/stockterm/internal/market"
)

// renderPrompt renders the open-ticker modal: a text input over a match
// list, centered on screen.
func (m *Model) renderPrompt() string {
	modalWidth := min(60, m.width-4)

	var b strings.Builder
	b.WriteString(styleTitle.Render("Open Ticker"))
	b.WriteString("\n\n")
	b.WriteString(m.promptInput.View())
	b.WriteString("\n\n")

	if m.promptInput.Value() == "" && len(m.recentSymbols) > 0 {
		b.WriteString(styleSubtle.Render("Recent"))
		b.WriteString("\n")
	}

	limit := min(PromptListLimit, len(m.promptMatches))
	if limit == 0 {
		b.WriteString(styleSubtle.Render("  no matches"))
		b.WriteString("\n")
	}
	for i := 0; i < limit; i++ {
		rec := m.promptMatches[i]
		line := "  " + rec.Symbol
		if rec.Name != "" {
			line += "  " + rec.Name
		}
		line = ansi.Truncate(line, modalWidth-4, "")
		if i == m.promptIndex {
			line = styleSelected.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(styleSubtle.Render("enter:open  up/down:select  esc:cancel"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(modalWidth).
		Padding(0, 1).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

// renderSettings renders the settings menu tree.
func (m *Model) renderSettings() string {
	var title string
	var items []string
	var index int

	switch m.mode {
	case ModeSettingsIndicators:
		title = "Indicators"
		index = m.indicatorIndex
		if len(m.indicatorDefs) == 0 {
			items = []string{styleSubtle.Render("no indicator definitions installed")}
			index = -1
		}
		for _, def := range m.indicatorDefs {
			marker := "[ ]"
			if m.selection.HasIndicator(def.Name) {
				marker = "[x]"
			}
			items = append(items, fmt.Sprintf("%s %s", marker, def.DisplayLabel()))
		}

	case ModeSettingsRange:
		title = "Range"
		index = m.rangeIndex
		for _, rng := range market.Ranges {
			items = append(items, choiceLabel(rng, rng == m.selection.Range))
		}

	case ModeSettingsInterval:
		title = "Interval"
		index = m.intervalIndex
		for _, iv := range market.Intervals {
			items = append(items, choiceLabel(iv, iv == m.selection.Interval))
		}

	default:
		title = "Settings"
		index = m.settingsIndex
		items = []string{
			fmt.Sprintf("Indicators (%d active)", len(m.selection.Indicators)),
			fmt.Sprintf("Range: %s", m.selection.Range),
			fmt.Sprintf("Interval: %s", m.selection.Interval),
			fmt.Sprintf("Chart type: %s", m.selection.ChartType),
			fmt.Sprintf("View mode: %s", m.selection.ViewMode),
			fmt.Sprintf("Time format: %s", m.selection.TimeFormat),
			fmt.Sprintf("Show header: %s", onOff(m.showHeader)),
			"Close",
		}
	}

	var b strings.Builder
	b.WriteString(styleTitle.Render(title))
	b.WriteString("\n\n")
	for i, item := range items {
		line := "  " + item
		if i == index {
			line = styleSelected.Render("> " + item)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	if m.mode == ModeSettingsMain {
		b.WriteString(styleSubtle.Render("enter:select  up/down:move  esc:close"))
	} else {
		b.WriteString(styleSubtle.Render("enter:apply  backspace:back  esc:close"))
	}

	modalWidth := min(44, m.width-4)
	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorCyan).
		Width(modalWidth).
		Padding(0, 1).
		Render(b.String())

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, modal)
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// choiceLabel marks the currently applied value in a single-choice list.
func choiceLabel(value string, active bool) string {
	if active {
		return "(*) " + value
	}
	return "( ) " + value
}

func min(a, b int) int {
	if a < b {
		return a
	}
	return b
}
