package watchlist

import (
	"github.com/mmcdole/marquee/internal/domain"
	"github.com/mmcdole/marquee/internal/search"
)

// NoResultsMessage is shown when a search succeeds with nothing to show
const NoResultsMessage = "No movies found"

// Screen is the screen the presentation layer should be showing
type Screen int

const (
	ScreenList Screen = iota
	ScreenEdit
	ScreenSearch
)

// String returns the display name of the screen
func (s Screen) String() string {
	switch s {
	case ScreenList:
		return "List"
	case ScreenEdit:
		return "Edit"
	case ScreenSearch:
		return "Search"
	default:
		return "Unknown"
	}
}

// State is an immutable snapshot of everything the presentation renders.
// A new value is produced on every transition; slices are never modified
// after a State has been published.
type State struct {
	Saved         []domain.Movie // Full saved list, mirrored from the repository feed
	Visible       []domain.Movie // Saved entries matching Filter
	Filter        string
	SearchResults []domain.Movie
	Loading       bool
	Error         string // Empty when there is nothing to report

	SelectedCount       int // Always CountSelected(Saved)
	DeleteDialogVisible bool

	Screen     Screen
	EditTarget *domain.Movie // Entry under edit, nil when adding a new one
}

// HasResults reports whether search results are displayed
func (s State) HasResults() bool {
	return len(s.SearchResults) > 0
}

// withSaved derives every field that depends on the saved list
func (s State) withSaved(saved []domain.Movie) State {
	s.Saved = saved
	s.SelectedCount = domain.CountSelected(saved)
	s.Visible = search.FilterMovies(s.Filter, saved)
	return s
}

// withFilter re-derives Visible for a new filter
func (s State) withFilter(query string) State {
	s.Filter = query
	s.Visible = search.FilterMovies(query, s.Saved)
	return s
}
