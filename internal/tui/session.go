package tui

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/watchlist"
)

// Session is the part of the watch-list store the TUI drives
type Session interface {
	Dispatch(intent watchlist.Intent) error
	Subscribe() (<-chan watchlist.State, func())
	Effects() <-chan watchlist.Effect
}

// PageOpener opens the catalog page of a movie
type PageOpener interface {
	OpenPage(movie domain.Movie) error
}
