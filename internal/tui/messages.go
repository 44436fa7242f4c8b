package tui

import (
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Message types for the TUI

// StateMsg carries the latest store snapshot
type StateMsg struct {
	State watchlist.State
}

// EffectMsg carries a one-shot store effect
type EffectMsg struct {
	Effect watchlist.Effect
}

// ErrMsg represents an error
type ErrMsg struct {
	Err     error
	Context string
}

// Error implements the error interface
func (e ErrMsg) Error() string {
	if e.Context != "" {
		return e.Context + ": " + e.Err.Error()
	}
	return e.Err.Error()
}

// StatusMsg sets a temporary status message
type StatusMsg struct {
	Message string
	IsError bool
}

// ClearStatusMsg clears the status bar message
type ClearStatusMsg struct {
	seq int
}
