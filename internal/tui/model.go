package tui

import (
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/stockterm/internal/config"
	"github.com/studiowebux/stockterm/internal/fetcher"
	"github.com/studiowebux/stockterm/internal/imaging"
	"github.com/studiowebux/stockterm/internal/indicators"
	"github.com/studiowebux/stockterm/internal/keybinds"
	"github.com/studiowebux/stockterm/internal/market"
	"github.com/studiowebux/stockterm/internal/tickers"
)

// Mode represents the current TUI mode
type Mode int

const (
	ModeBrowsing Mode = iota
	ModeTickerPrompt
	ModeSettingsMain
	ModeSettingsIndicators
	ModeSettingsRange
	ModeSettingsInterval
	ModeError
)

// RecentLister supplies recently viewed symbols for the ticker prompt.
// Implemented by the history manager; nil disables the recent list.
type RecentLister interface {
	RecentSymbols(limit int) ([]string, error)
}

// SettingsSaver persists the user's settings when the menu closes.
type SettingsSaver func(config.Settings) error

// Options wires the model's collaborators.
type Options struct {
	Settings      config.Settings
	Keybinds      *keybinds.Registry
	Dispatcher    *fetcher.Dispatcher
	Catalog       *tickers.Catalog
	Indicators    []indicators.Definition
	Recent        RecentLister
	SaveSettings  SettingsSaver
	Geometry      imaging.Geometry
	Graphics      bool
	ChartOut      io.Writer
	InitialSymbol string
}

// Model represents the TUI state
type Model struct {
	// Collaborators
	settings      config.Settings
	keys          *keybinds.Registry
	dispatcher    *fetcher.Dispatcher
	catalog       *tickers.Catalog
	indicatorDefs []indicators.Definition
	recent        RecentLister
	saveSettings  SettingsSaver
	encoder       imaging.Encoder
	cellGeom      imaging.Geometry
	graphics      bool
	chartOut      io.Writer

	// Core state
	mode      Mode
	selection market.Selection
	currentFP market.Fingerprint
	artifact  *market.Artifact // artifact for the current fingerprint, if any
	lastGood  *market.Artifact // retained across failures so the chart survives an error
	loading   bool
	errorMsg  string
	statusMsg string

	// Ticker prompt state
	promptInput   textinput.Model
	promptMatches []tickers.Record
	promptIndex   int
	recentSymbols []string

	// Settings state
	settingsIndex  int
	indicatorIndex int
	rangeIndex     int
	intervalIndex  int

	// Debounce generations; a quiesce message only fires when its
	// generation is still the latest.
	dispatchGen int
	resizeGen   int

	// UI state
	width      int
	height     int
	showHeader bool

	// flushedKey identifies the (artifact, geometry, placement) last sent
	// to the terminal so redraws don't re-transmit identical image data.
	flushedKey string
}

// New creates a new TUI model. The first fetch is triggered by Init.
func New(opts Options) Model {
	symbol := opts.InitialSymbol
	if symbol == "" {
		symbol = opts.Settings.DefaultSymbol
	}

	sel := market.NewSelection(symbol)
	sel.Range = opts.Settings.Range
	sel.Interval = opts.Settings.Interval
	sel.ChartType = market.ChartType(opts.Settings.ChartType)
	sel.ViewMode = market.ViewMode(opts.Settings.ViewMode)
	sel.TimeFormat = market.TimeFormat(opts.Settings.TimeFormat)

	keys := opts.Keybinds
	if keys == nil {
		keys = keybinds.NewDefaultRegistry()
	}
	out := opts.ChartOut
	if out == nil {
		out = os.Stdout
	}

	input := textinput.New()
	input.Placeholder = "symbol or name"
	input.CharLimit = 32
	input.Prompt = "> "

	return Model{
		settings:      opts.Settings,
		keys:          keys,
		dispatcher:    opts.Dispatcher,
		catalog:       opts.Catalog,
		indicatorDefs: opts.Indicators,
		recent:        opts.Recent,
		saveSettings:  opts.SaveSettings,
		cellGeom:      opts.Geometry,
		graphics:      opts.Graphics,
		chartOut:      out,
		mode:          ModeBrowsing,
		selection:     sel,
		promptInput:   input,
		showHeader:    opts.Settings.ShowHeader,
	}
}

// Init dispatches the initial fetch
func (m *Model) Init() tea.Cmd {
	return m.dispatch()
}

// Update routes messages to the appropriate handler
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m, m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resizeGen++
		return m, resizeQuiesceAfter(m.resizeDebounce(), m.resizeGen)

	case resizeQuiesceMsg:
		if msg.gen != m.resizeGen {
			return m, nil
		}
		// A resize usually just re-encodes the cached raster at the new
		// geometry. Only a large area change refetches, since the cached
		// raster was drawn for a different size class and would blur.
		if m.artifact != nil {
			cols, rows := m.chartCells()
			if sizeClassChanged(m.artifact.Columns, m.artifact.Rows, cols, rows) {
				return m, m.refetch()
			}
		}
		m.flushedKey = ""
		return m, m.flushChartCmd()

	case fetchResultMsg:
		return m, m.handleFetchResult(fetcher.Result(msg))

	case settingsQuiesceMsg:
		if msg.gen != m.dispatchGen {
			return m, nil
		}
		if m.selection.Fingerprint() == m.currentFP {
			return m, nil
		}
		return m, m.dispatch()

	case statusMsg:
		m.statusMsg = string(msg)
		return m, nil

	case chartErrorMsg:
		m.errorMsg = msg.err.Error()
		return m, nil
	}

	return m, nil
}

// View renders the current frame
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	switch m.mode {
	case ModeTickerPrompt:
		return m.renderPrompt()
	case ModeSettingsMain, ModeSettingsIndicators, ModeSettingsRange, ModeSettingsInterval:
		return m.renderSettings()
	default:
		return m.renderMain()
	}
}
