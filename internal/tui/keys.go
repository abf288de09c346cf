package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/stockterm/internal/keybinds"
	"github.com/studiowebux/stockterm/internal/market"
	"github.com/studiowebux/stockterm/internal/tickers"
)

// handleKeyPress routes a key through the registry for the active mode's
// context. The error banner keeps the browsing bindings so the user can
// retry or move on without a dedicated dismiss key.
func (m *Model) handleKeyPress(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()

	switch m.mode {
	case ModeBrowsing, ModeError:
		return m.handleBrowsingKey(key)
	case ModeTickerPrompt:
		return m.handlePromptKey(msg, key)
	case ModeSettingsMain:
		return m.handleSettingsMainKey(key)
	case ModeSettingsIndicators:
		return m.handleSettingsIndicatorsKey(key)
	case ModeSettingsRange:
		return m.handleSettingsRangeKey(key)
	case ModeSettingsInterval:
		return m.handleSettingsIntervalKey(key)
	}
	return nil
}

func (m *Model) handleBrowsingKey(key string) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextBrowsing, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuit, keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionOpenTicker:
		return m.openTickerPrompt()

	case keybinds.ActionSettings:
		m.mode = ModeSettingsMain
		m.settingsIndex = 0
		return m.clearChartCmd()

	case keybinds.ActionYank:
		return m.yankStats()

	case keybinds.ActionToggleHeader:
		m.showHeader = !m.showHeader
		m.flushedKey = ""
		return m.flushChartCmd()

	case keybinds.ActionRefetch:
		if m.mode == ModeError {
			m.mode = ModeBrowsing
		}
		return m.refetch()
	}
	return nil
}

// openTickerPrompt resets the prompt state and seeds the match list with
// recently viewed symbols.
func (m *Model) openTickerPrompt() tea.Cmd {
	m.mode = ModeTickerPrompt
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	m.promptIndex = 0
	m.recentSymbols = nil
	if m.recent != nil {
		if recents, err := m.recent.RecentSymbols(RecentSymbolLimit); err == nil {
			m.recentSymbols = recents
		}
	}
	m.refreshPromptMatches()
	return tea.Batch(m.clearChartCmd(), textinput.Blink)
}

func (m *Model) handlePromptKey(msg tea.KeyMsg, key string) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextPrompt, key)
	if ok {
		switch action {
		case keybinds.ActionQuitForce:
			return m.quit()

		case keybinds.ActionCancel:
			m.mode = ModeBrowsing
			m.promptInput.Blur()
			m.flushedKey = ""
			return m.flushChartCmd()

		case keybinds.ActionConfirm:
			return m.confirmTicker()

		case keybinds.ActionNavigateUp:
			if m.promptIndex > 0 {
				m.promptIndex--
			}
			return nil

		case keybinds.ActionNavigateDown:
			if m.promptIndex < len(m.promptMatches)-1 {
				m.promptIndex++
			}
			return nil
		}
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)
	m.refreshPromptMatches()
	return cmd
}

// refreshPromptMatches recomputes the match list for the current query.
// An empty query shows recently viewed symbols ahead of the catalog.
func (m *Model) refreshPromptMatches() {
	query := m.promptInput.Value()
	if query == "" && len(m.recentSymbols) > 0 {
		matches := make([]tickers.Record, 0, len(m.recentSymbols))
		for _, sym := range m.recentSymbols {
			if rec, ok := m.catalog.Lookup(sym); ok {
				matches = append(matches, rec)
			} else {
				matches = append(matches, tickers.Record{Symbol: sym})
			}
		}
		m.promptMatches = matches
		m.promptIndex = 0
		return
	}
	m.promptMatches = m.catalog.Search(query)
	if m.promptIndex >= len(m.promptMatches) {
		m.promptIndex = 0
	}
}

// confirmTicker switches the chart to the highlighted match, or to the raw
// query when nothing matched. Unchanged symbols just close the prompt.
func (m *Model) confirmTicker() tea.Cmd {
	symbol := market.NormalizeSymbol(m.promptInput.Value())
	if m.promptIndex < len(m.promptMatches) {
		symbol = m.promptMatches[m.promptIndex].Symbol
	}
	m.mode = ModeBrowsing
	m.promptInput.Blur()
	if symbol == "" || symbol == m.selection.Symbol {
		m.flushedKey = ""
		return m.flushChartCmd()
	}
	m.selection = m.selection.WithSymbol(symbol)
	return m.dispatch()
}

func (m *Model) handleSettingsMainKey(key string) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextSettings, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionCancel, keybinds.ActionBack:
		return m.closeSettings()

	case keybinds.ActionNavigateUp:
		if m.settingsIndex > 0 {
			m.settingsIndex--
		}
		return nil

	case keybinds.ActionNavigateDown:
		if m.settingsIndex < settingsItemCount-1 {
			m.settingsIndex++
		}
		return nil

	case keybinds.ActionConfirm:
		return m.activateSettingsItem()
	}
	return nil
}

// activateSettingsItem toggles the highlighted setting in place or descends
// into its submenu. Toggles re-dispatch after a quiet gap so a run of
// changes costs one fetch.
func (m *Model) activateSettingsItem() tea.Cmd {
	switch m.settingsIndex {
	case settingsItemIndicators:
		m.mode = ModeSettingsIndicators
		m.indicatorIndex = 0
		return nil
	case settingsItemRange:
		m.mode = ModeSettingsRange
		m.rangeIndex = indexOf(market.Ranges, m.selection.Range)
		return nil
	case settingsItemInterval:
		m.mode = ModeSettingsInterval
		m.intervalIndex = indexOf(market.Intervals, m.selection.Interval)
		return nil
	case settingsItemChartType:
		m.selection = m.selection.ToggleChartType()
		return m.scheduleDispatch()
	case settingsItemViewMode:
		m.selection = m.selection.ToggleViewMode()
		return m.scheduleDispatch()
	case settingsItemTimeFormat:
		m.selection = m.selection.ToggleTimeFormat()
		return m.scheduleDispatch()
	case settingsItemShowHeader:
		m.showHeader = !m.showHeader
		return nil
	case settingsItemClose:
		return m.closeSettings()
	}
	return nil
}

func (m *Model) handleSettingsIndicatorsKey(key string) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextSettings, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionCancel:
		return m.closeSettings()

	case keybinds.ActionBack:
		m.mode = ModeSettingsMain
		return nil

	case keybinds.ActionNavigateUp:
		if m.indicatorIndex > 0 {
			m.indicatorIndex--
		}
		return nil

	case keybinds.ActionNavigateDown:
		if m.indicatorIndex < len(m.indicatorDefs)-1 {
			m.indicatorIndex++
		}
		return nil

	case keybinds.ActionConfirm:
		if m.indicatorIndex < len(m.indicatorDefs) {
			def := m.indicatorDefs[m.indicatorIndex]
			m.selection = m.selection.ToggleIndicator(def.Name, def.RequiresPrice)
			return m.scheduleDispatch()
		}
		return nil
	}
	return nil
}

func (m *Model) handleSettingsRangeKey(key string) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextSettings, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionCancel:
		return m.closeSettings()

	case keybinds.ActionBack:
		m.mode = ModeSettingsMain
		return nil

	case keybinds.ActionNavigateUp:
		if m.rangeIndex > 0 {
			m.rangeIndex--
		}
		return nil

	case keybinds.ActionNavigateDown:
		if m.rangeIndex < len(market.Ranges)-1 {
			m.rangeIndex++
		}
		return nil

	case keybinds.ActionConfirm:
		m.selection = m.selection.WithRange(market.Ranges[m.rangeIndex])
		m.mode = ModeSettingsMain
		return m.scheduleDispatch()
	}
	return nil
}

func (m *Model) handleSettingsIntervalKey(key string) tea.Cmd {
	action, ok := m.keys.Match(keybinds.ContextSettings, key)
	if !ok {
		return nil
	}

	switch action {
	case keybinds.ActionQuitForce:
		return m.quit()

	case keybinds.ActionCancel:
		return m.closeSettings()

	case keybinds.ActionBack:
		m.mode = ModeSettingsMain
		return nil

	case keybinds.ActionNavigateUp:
		if m.intervalIndex > 0 {
			m.intervalIndex--
		}
		return nil

	case keybinds.ActionNavigateDown:
		if m.intervalIndex < len(market.Intervals)-1 {
			m.intervalIndex++
		}
		return nil

	case keybinds.ActionConfirm:
		m.selection = m.selection.WithInterval(market.Intervals[m.intervalIndex])
		m.mode = ModeSettingsMain
		return m.scheduleDispatch()
	}
	return nil
}

// closeSettings leaves the menu tree and persists settings. Any pending
// debounced dispatch fires on its own timer.
func (m *Model) closeSettings() tea.Cmd {
	m.mode = ModeBrowsing
	m.flushedKey = ""
	return tea.Batch(m.persistSettings(), m.flushChartCmd())
}

func indexOf(list []string, value string) int {
	for i, v := range list {
		if v == value {
			return i
		}
	}
	return 0
}
