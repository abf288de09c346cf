package tui

import (
	"bytes"
	"errors"
	"image"
	"strings"
	"testing"
	"unicode/utf8"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/stockterm/internal/fetcher"
	"github.com/studiowebux/stockterm/internal/market"
	"github.com/studiowebux/stockterm/internal/tickers"
)

func TestNew_InitializesStateCorrectly(t *testing.T) {
	m := CreateTestModel(t)

	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	AssertModelField(t, "selection.Symbol", m.selection.Symbol, "AAPL")
	AssertModelField(t, "selection.Range", m.selection.Range, "1d")
	AssertModelField(t, "selection.Interval", m.selection.Interval, "1m")
	AssertModelField(t, "showHeader", m.showHeader, true)
	AssertModelField(t, "loading", m.loading, false)
}

func TestNew_InitialSymbolOverridesDefault(t *testing.T) {
	m := CreateTestModel(t)

	m2 := New(Options{
		Settings:      m.settings,
		Dispatcher:    m.dispatcher,
		Catalog:       m.catalog,
		InitialSymbol: "msft",
	})
	AssertModelField(t, "selection.Symbol", m2.selection.Symbol, "MSFT")
}

func TestUpdate_WindowSizeStoresDimensions(t *testing.T) {
	m := CreateTestModel(t)

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	AssertModelField(t, "width", m.width, 120)
	AssertModelField(t, "height", m.height, 40)
	AssertModelField(t, "resizeGen", m.resizeGen, 1)
}

func TestDispatch_MarksSelectionCurrent(t *testing.T) {
	m := CreateTestModel(t)

	cmd := m.dispatch()
	if cmd == nil {
		t.Fatal("dispatch should return a command")
	}

	AssertModelField(t, "loading", m.loading, true)
	AssertModelField(t, "currentFP", m.currentFP, m.selection.Fingerprint())
	if !m.dispatcher.IsCurrent(m.selection.Fingerprint()) {
		t.Error("dispatcher should consider the dispatched fingerprint current")
	}
}

func testArtifact(fp market.Fingerprint) *market.Artifact {
	return &market.Artifact{
		Fingerprint: fp,
		Image:       image.NewRGBA(image.Rect(0, 0, 4, 4)),
		Quote:       market.Quote{Symbol: "AAPL", Price: 187.42, Change: 1.03},
	}
}

func TestHandleFetchResult_AppliesCurrentResult(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()

	fp := m.selection.Fingerprint()
	m.Update(fetchResultMsg{Fingerprint: fp, Artifact: testArtifact(fp)})

	AssertModelField(t, "loading", m.loading, false)
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	if m.artifact == nil {
		t.Fatal("artifact should be set after a current result")
	}
	AssertModelField(t, "artifact.Fingerprint", m.artifact.Fingerprint, fp)
}

func TestHandleFetchResult_DropsStaleResult(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()

	stale := market.Fingerprint("ZZZZ|1d|1m|line|percent|12h|")
	m.Update(fetchResultMsg{Fingerprint: stale, Artifact: testArtifact(stale)})

	AssertModelField(t, "loading", m.loading, true)
	if m.artifact != nil {
		t.Error("stale result should not become the displayed artifact")
	}
}

func TestHandleFetchResult_ErrorEntersErrorMode(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()

	fp := m.selection.Fingerprint()
	err := &fetcher.Error{Kind: fetcher.KindNotFound, Message: "no data found for symbol"}
	m.Update(fetchResultMsg{Fingerprint: fp, Err: err})

	AssertModelField(t, "mode", m.mode, ModeError)
	AssertModelField(t, "loading", m.loading, false)
	if m.errorMsg == "" {
		t.Error("error mode should carry a message")
	}
}

func TestHandleFetchResult_ErrorRetainsLastGoodChart(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()
	fp := m.selection.Fingerprint()
	m.Update(fetchResultMsg{Fingerprint: fp, Artifact: testArtifact(fp)})

	m.selection = m.selection.WithSymbol("ZZZZ")
	m.dispatch()
	m.Update(fetchResultMsg{
		Fingerprint: m.selection.Fingerprint(),
		Err:         errors.New("exit status 1"),
	})

	AssertModelField(t, "mode", m.mode, ModeError)
	if m.artifact == nil {
		t.Fatal("previous chart should survive a failed fetch")
	}
	AssertModelField(t, "artifact.Quote.Symbol", m.artifact.Quote.Symbol, "AAPL")
}

func TestUpdate_RecoveryFromErrorMode(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()
	fp := m.selection.Fingerprint()
	m.Update(fetchResultMsg{Fingerprint: fp, Err: errors.New("exit status 1")})
	AssertModelField(t, "mode", m.mode, ModeError)

	// r retries from the error banner
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'r'}})
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	AssertModelField(t, "loading", m.loading, true)

	m.Update(fetchResultMsg{Fingerprint: fp, Artifact: testArtifact(fp)})
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	AssertModelField(t, "errorMsg", m.errorMsg, "")
}

func TestUpdate_SettingsQuiesceIgnoresStaleGeneration(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()
	fp := m.currentFP

	m.selection = m.selection.ToggleViewMode()
	m.scheduleDispatch()
	m.selection = m.selection.ToggleTimeFormat()
	m.scheduleDispatch()

	// The first timer fires with a superseded generation and must not fetch.
	m.Update(settingsQuiesceMsg{gen: 1})
	AssertModelField(t, "currentFP", m.currentFP, fp)

	// The latest generation fires and dispatches the combined change.
	m.Update(settingsQuiesceMsg{gen: 2})
	AssertModelField(t, "currentFP", m.currentFP, m.selection.Fingerprint())
}

func TestUpdate_SettingsQuiesceSkipsUnchangedFingerprint(t *testing.T) {
	m := CreateTestModel(t)
	m.dispatch()
	m.loading = false

	// Toggle twice: the selection is back where it started.
	m.selection = m.selection.ToggleViewMode()
	m.scheduleDispatch()
	m.selection = m.selection.ToggleViewMode()
	m.scheduleDispatch()

	m.Update(settingsQuiesceMsg{gen: m.dispatchGen})
	AssertModelField(t, "loading", m.loading, false)
}

func TestUpdate_ResizeQuiesceIgnoresStaleGeneration(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	m.flushedKey = "sentinel"
	m.Update(resizeQuiesceMsg{gen: 1})
	AssertModelField(t, "flushedKey", m.flushedKey, "sentinel")

	m.Update(resizeQuiesceMsg{gen: 2})
	AssertModelField(t, "flushedKey", m.flushedKey, "")
}

func TestUpdate_ResizeQuiesceRefetchesOnSizeClassChange(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.dispatch()

	fp := m.selection.Fingerprint()
	art := testArtifact(fp)
	art.Columns, art.Rows = m.chartCells()
	m.Update(fetchResultMsg{Fingerprint: fp, Artifact: art})
	AssertModelField(t, "loading", m.loading, false)

	// More than doubling the window crosses the size class boundary.
	m.Update(tea.WindowSizeMsg{Width: 220, Height: 60})
	m.Update(resizeQuiesceMsg{gen: m.resizeGen})
	AssertModelField(t, "loading", m.loading, true)
}

func TestUpdate_ResizeQuiesceSmallChangeOnlyReencodes(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.dispatch()

	fp := m.selection.Fingerprint()
	art := testArtifact(fp)
	art.Columns, art.Rows = m.chartCells()
	m.Update(fetchResultMsg{Fingerprint: fp, Artifact: art})

	m.Update(tea.WindowSizeMsg{Width: 110, Height: 32})
	m.flushedKey = "sentinel"
	m.Update(resizeQuiesceMsg{gen: m.resizeGen})
	AssertModelField(t, "loading", m.loading, false)
	AssertModelField(t, "flushedKey", m.flushedKey, "")
}

func TestHandleFetchResult_HoldsChartWhileOverlayOpen(t *testing.T) {
	m := CreateTestModel(t)
	var out bytes.Buffer
	m.graphics = true
	m.chartOut = &out
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.dispatch()

	// The settings menu is still open when the debounced fetch resolves.
	m.mode = ModeSettingsMain
	fp := m.selection.Fingerprint()
	cmd := m.handleFetchResult(fetcher.Result{Fingerprint: fp, Artifact: testArtifact(fp)})
	if cmd != nil {
		cmd()
	}
	if strings.Contains(out.String(), "\x1b_Ga=T") {
		t.Error("chart must not be transmitted over an open overlay")
	}
	if m.artifact == nil {
		t.Fatal("held artifact should still be applied to the model")
	}

	// Closing the overlay flushes the held artifact.
	m.mode = ModeBrowsing
	cmd = m.flushChartCmd()
	if cmd == nil {
		t.Fatal("closing the overlay should flush the chart")
	}
	cmd()
	if !strings.Contains(out.String(), "\x1b_Ga=T") {
		t.Error("chart should be transmitted once the overlay is closed")
	}
}

func TestView_ErrorWithoutChartShowsMessageInChartRegion(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.dispatch()

	err := &fetcher.Error{Kind: fetcher.KindNotFound, Message: "no data found for symbol"}
	m.Update(fetchResultMsg{Fingerprint: m.selection.Fingerprint(), Err: err})
	AssertModelField(t, "mode", m.mode, ModeError)

	// The message appears in the chart region as well as the footer.
	view := m.View()
	if got := strings.Count(view, "Ticker not found"); got != 2 {
		t.Errorf("error message rendered %d times, want chart region and footer", got)
	}
}

func TestPrompt_MatchLinesStayValidUTF8(t *testing.T) {
	m := CreateTestModel(t)
	catalog, err := tickers.Parse(strings.NewReader(
		"Symbol,Name\nGLE,Société Générale Société Générale Société Générale\n"))
	if err != nil {
		t.Fatalf("Failed to build test catalog: %v", err)
	}
	m.catalog = catalog

	// Narrow enough that the match line must be truncated mid-name.
	m.Update(tea.WindowSizeMsg{Width: 30, Height: 24})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'o'}})
	AssertModelField(t, "mode", m.mode, ModeTickerPrompt)

	view := m.View()
	if !utf8.ValidString(view) {
		t.Error("prompt view contains invalid UTF-8 after truncation")
	}
	if !strings.Contains(view, "GLE") {
		t.Error("match line should still show the symbol")
	}
}

func TestView_EmptyBeforeFirstWindowSize(t *testing.T) {
	m := CreateTestModel(t)
	if got := m.View(); got != "" {
		t.Errorf("View before sizing = %q, want empty", got)
	}
}

func TestView_RendersAfterSizing(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	if m.View() == "" {
		t.Error("View should render once sized")
	}
}
