package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// statusDuration is how long a status message stays on screen
const statusDuration = 4 * time.Second

// Command factories for store feeds

// WaitForStateCmd blocks until the next snapshot arrives.
// It yields nil when the feed is closed, which ends the chain.
func WaitForStateCmd(states <-chan watchlist.State) tea.Cmd {
	return func() tea.Msg {
		st, ok := <-states
		if !ok {
			return nil
		}
		return StateMsg{State: st}
	}
}

// WaitForEffectCmd blocks until the next effect arrives.
// It yields nil when the stream is closed, which ends the chain.
func WaitForEffectCmd(effects <-chan watchlist.Effect) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-effects
		if !ok {
			return nil
		}
		return EffectMsg{Effect: e}
	}
}

// ClearStatusCmd returns a command that clears status after a delay
func ClearStatusCmd(seq int, delay time.Duration) tea.Cmd {
	return tea.Tick(delay, func(t time.Time) tea.Msg {
		return ClearStatusMsg{seq: seq}
	})
}

// OpenPageCmd opens the catalog page of movie
func OpenPageCmd(opener PageOpener, movie domain.Movie) tea.Cmd {
	return func() tea.Msg {
		if err := opener.OpenPage(movie); err != nil {
			return ErrMsg{Err: err, Context: "opening page"}
		}
		return StatusMsg{Message: "Opened " + movie.Title}
	}
}
