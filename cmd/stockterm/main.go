package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/studiowebux/stockterm/internal/cache"
	"github.com/studiowebux/stockterm/internal/config"
	"github.com/studiowebux/stockterm/internal/fetcher"
	"github.com/studiowebux/stockterm/internal/history"
	"github.com/studiowebux/stockterm/internal/imaging"
	"github.com/studiowebux/stockterm/internal/indicators"
	"github.com/studiowebux/stockterm/internal/keybinds"
	"github.com/studiowebux/stockterm/internal/tickers"
	"github.com/studiowebux/stockterm/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "stockterm [ticker]",
	Short: "Terminal stock chart viewer",
	Long: `Stockterm renders stock, ETF and commodity charts inline in the terminal
using the Kitty graphics protocol.

Charts are produced by an external fetcher command (a yfinance script by
default) and cached in memory, so revisiting a recent selection is instant.

Examples:
  stockterm                  # Open with the configured default symbol
  stockterm nvda             # Open with NVDA
  stockterm --fetcher "python3 /opt/fetch_stock.py" msft`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Initialize(flagConfigDir); err != nil {
			return fmt.Errorf("failed to initialize config: %w", err)
		}

		symbol := ""
		if len(args) > 0 {
			symbol = args[0]
		}
		return runTUI(symbol)
	},
}

var (
	flagConfigDir string
	flagFetcher   string
	flagTimeout   int
	flagCacheSize int
)

func init() {
	rootCmd.Flags().StringVar(&flagConfigDir, "config-dir", "", "Configuration directory (default ~/.stockterm)")
	rootCmd.Flags().StringVar(&flagFetcher, "fetcher", "", "Fetcher command, overrides the configured one")
	rootCmd.Flags().IntVar(&flagTimeout, "timeout", 0, "Fetch timeout in seconds")
	rootCmd.Flags().IntVar(&flagCacheSize, "cache-size", 0, "Number of charts kept in memory")
}

// runTUI assembles the pipeline and hands control to bubbletea.
func runTUI(symbol string) error {
	settings, err := config.LoadSettings()
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}
	if flagFetcher != "" {
		settings.FetcherCommand = strings.Fields(flagFetcher)
	}
	if flagTimeout > 0 {
		settings.TimeoutSeconds = flagTimeout
	}
	if flagCacheSize > 0 {
		settings.CacheCapacity = flagCacheSize
	}

	keys := keybinds.NewDefaultRegistry()
	if err := keybinds.LoadInto(keys, config.KeybindsFile); err != nil {
		return fmt.Errorf("failed to load keybinds: %w", err)
	}

	catalog, err := tickers.Load(config.TickersFile)
	if err != nil {
		return fmt.Errorf("failed to load ticker catalog: %w", err)
	}

	defs, err := indicators.LoadDir(config.IndicatorsDir)
	if err != nil {
		return fmt.Errorf("failed to load indicator definitions: %w", err)
	}

	// The journal is an aid, not a requirement; run without it if the
	// database cannot be opened.
	var journal fetcher.Journal
	var recent tui.RecentLister
	historyMgr, err := history.NewManager(config.DatabasePath)
	if err == nil {
		defer historyMgr.Close()
		journal = &journalAdapter{mgr: historyMgr}
		recent = historyMgr
	} else {
		fmt.Fprintf(os.Stderr, "Warning: fetch journal disabled: %v\n", err)
	}

	runner, err := fetcher.NewExecRunner(settings.FetcherCommand)
	if err != nil {
		return fmt.Errorf("invalid fetcher command: %w", err)
	}

	dispatcher := fetcher.NewDispatcher(
		runner,
		cache.New(settings.CacheCapacity),
		time.Duration(settings.TimeoutSeconds)*time.Second,
		journal,
	)

	geom, err := imaging.Detect(os.Stdout.Fd())
	if err != nil {
		geom = imaging.Geometry{}
	}

	m := tui.New(tui.Options{
		Settings:      settings,
		Keybinds:      keys,
		Dispatcher:    dispatcher,
		Catalog:       catalog,
		Indicators:    defs,
		Recent:        recent,
		SaveSettings:  config.SaveSettings,
		Geometry:      geom,
		Graphics:      imaging.Supported() && err == nil,
		ChartOut:      os.Stdout,
		InitialSymbol: symbol,
	})

	p := tea.NewProgram(&m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

// journalAdapter translates dispatcher completions into journal rows.
type journalAdapter struct {
	mgr *history.Manager
}

func (a *journalAdapter) Record(symbol, rng, interval, chartType string, duration time.Duration, err error) {
	e := history.Entry{
		Symbol:     symbol,
		Range:      rng,
		Interval:   interval,
		ChartType:  chartType,
		DurationMs: duration.Milliseconds(),
		Outcome:    history.OutcomeOK,
	}
	if err != nil {
		e.Error = err.Error()
		switch fetcher.KindOf(err) {
		case fetcher.KindNotFound:
			e.Outcome = history.OutcomeNotFound
		case fetcher.KindTimeout:
			e.Outcome = history.OutcomeTimeout
		case fetcher.KindDecode:
			e.Outcome = history.OutcomeDecodeError
		default:
			e.Outcome = history.OutcomeFetchFailed
		}
	}
	// Journal failures must never affect the fetch path.
	_ = a.mgr.Record(e)
}
