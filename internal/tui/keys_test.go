package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func pressRune(m *Model, r rune) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
}

func press(m *Model, key tea.KeyType) {
	m.Update(tea.KeyMsg{Type: key})
}

func TestKeys_OpenAndCancelTickerPrompt(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 'o')
	AssertModelField(t, "mode", m.mode, ModeTickerPrompt)

	press(m, tea.KeyEsc)
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
}

func TestKeys_PromptSearchAndConfirm(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 'o')
	pressRune(m, 'm')
	pressRune(m, 's')
	pressRune(m, 'f')
	pressRune(m, 't')

	if len(m.promptMatches) == 0 {
		t.Fatal("query should match the catalog")
	}
	AssertModelField(t, "promptMatches[0].Symbol", m.promptMatches[0].Symbol, "MSFT")

	press(m, tea.KeyEnter)
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	AssertModelField(t, "selection.Symbol", m.selection.Symbol, "MSFT")
	AssertModelField(t, "loading", m.loading, true)
}

func TestKeys_PromptRawSymbolWithoutMatch(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 'o')
	for _, r := range "zzzz" {
		pressRune(m, r)
	}
	if len(m.promptMatches) != 0 {
		t.Fatalf("unexpected matches for zzzz: %v", m.promptMatches)
	}

	press(m, tea.KeyEnter)
	AssertModelField(t, "selection.Symbol", m.selection.Symbol, "ZZZZ")
}

func TestKeys_PromptConfirmSameSymbolDoesNotRefetch(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.dispatch()
	m.loading = false

	pressRune(m, 'o')
	press(m, tea.KeyEnter)

	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	AssertModelField(t, "loading", m.loading, false)
}

func TestKeys_PromptNavigation(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 'o')
	if len(m.promptMatches) < 2 {
		t.Fatalf("empty prompt should list the catalog, got %d matches", len(m.promptMatches))
	}

	press(m, tea.KeyDown)
	AssertModelField(t, "promptIndex", m.promptIndex, 1)
	press(m, tea.KeyUp)
	AssertModelField(t, "promptIndex", m.promptIndex, 0)
	press(m, tea.KeyUp)
	AssertModelField(t, "promptIndex", m.promptIndex, 0)
}

func TestKeys_SettingsMenuNavigation(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 's')
	AssertModelField(t, "mode", m.mode, ModeSettingsMain)

	pressRune(m, 'j')
	pressRune(m, 'j')
	AssertModelField(t, "settingsIndex", m.settingsIndex, 2)
	pressRune(m, 'k')
	AssertModelField(t, "settingsIndex", m.settingsIndex, 1)

	press(m, tea.KeyEsc)
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
}

func TestKeys_SettingsToggleChartTypeDebounces(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	m.dispatch()
	m.loading = false

	pressRune(m, 's')
	for i := 0; i < settingsItemChartType; i++ {
		pressRune(m, 'j')
	}
	press(m, tea.KeyEnter)

	// The toggle is staged, not fetched yet.
	AssertModelField(t, "selection.ChartType", string(m.selection.ChartType), "candle")
	AssertModelField(t, "loading", m.loading, false)
	AssertModelField(t, "dispatchGen", m.dispatchGen, 1)

	m.Update(settingsQuiesceMsg{gen: 1})
	AssertModelField(t, "loading", m.loading, true)
}

func TestKeys_SettingsRangeSubmenuAppliesSuggestedInterval(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 's')
	pressRune(m, 'j') // Range row
	press(m, tea.KeyEnter)
	AssertModelField(t, "mode", m.mode, ModeSettingsRange)

	// Move from 1d to 1y.
	for i := 0; i < 5; i++ {
		pressRune(m, 'j')
	}
	press(m, tea.KeyEnter)

	AssertModelField(t, "mode", m.mode, ModeSettingsMain)
	AssertModelField(t, "selection.Range", m.selection.Range, "1y")
	AssertModelField(t, "selection.Interval", m.selection.Interval, "1d")
}

func TestKeys_SettingsBackReturnsToMainMenu(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 's')
	press(m, tea.KeyEnter) // Indicators row
	AssertModelField(t, "mode", m.mode, ModeSettingsIndicators)

	press(m, tea.KeyBackspace)
	AssertModelField(t, "mode", m.mode, ModeSettingsMain)
}

func TestKeys_ToggleHeader(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	AssertModelField(t, "showHeader", m.showHeader, true)
	pressRune(m, 'h')
	AssertModelField(t, "showHeader", m.showHeader, false)
	pressRune(m, 'h')
	AssertModelField(t, "showHeader", m.showHeader, true)
}

func TestKeys_UnboundKeyIsIgnored(t *testing.T) {
	m := CreateTestModel(t)
	m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})

	pressRune(m, 'x')
	AssertModelField(t, "mode", m.mode, ModeBrowsing)
	AssertModelField(t, "loading", m.loading, false)
}
