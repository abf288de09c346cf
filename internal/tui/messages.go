package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/studiowebux/stockterm/internal/fetcher"
)

// fetchResultMsg delivers a dispatcher completion to the update loop.
type fetchResultMsg fetcher.Result

// settingsQuiesceMsg fires after the settings debounce window; only the
// latest generation is honored so rapid option cycling coalesces to one
// fetch.
type settingsQuiesceMsg struct {
	gen int
}

// resizeQuiesceMsg fires after the resize debounce window.
type resizeQuiesceMsg struct {
	gen int
}

// statusMsg updates the footer status line.
type statusMsg string

// chartErrorMsg reports an image pipeline failure.
type chartErrorMsg struct {
	err error
}

// awaitFetch blocks on a dispatch handle and forwards its single result.
func awaitFetch(h *fetcher.Handle) tea.Cmd {
	return func() tea.Msg {
		return fetchResultMsg(<-h.Done())
	}
}

// settingsQuiesceAfter schedules a quiesce check for a generation.
func settingsQuiesceAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return settingsQuiesceMsg{gen: gen}
	})
}

// resizeQuiesceAfter schedules a resize quiesce check for a generation.
func resizeQuiesceAfter(d time.Duration, gen int) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg {
		return resizeQuiesceMsg{gen: gen}
	})
}
