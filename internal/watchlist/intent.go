package watchlist

import "github.com/mmcdole/marquee/internal/domain"

// Intent is a user request dispatched to the Store.
// The set is closed: only types in this package implement it.
type Intent interface {
	intent()
}

// LoadSaved subscribes State to the saved list for the rest of the session
type LoadSaved struct{}

// Search queries the catalog
type Search struct {
	Query string
}

// ClearSearchResults drops results and any error, superseding an in-flight search
type ClearSearchResults struct{}

// AddEntry persists a new entry
type AddEntry struct {
	Entry domain.Movie
}

// UpdateEntry persists edits to a saved entry
type UpdateEntry struct {
	Entry domain.Movie
}

// RequestAdd opens an empty edit form
type RequestAdd struct{}

// RequestEdit opens the edit form for Entry
type RequestEdit struct {
	Entry domain.Movie
}

// ToggleSelection flips the selection flag of a saved entry
type ToggleSelection struct {
	Entry domain.Movie
}

// RequestDelete shows the delete confirmation
type RequestDelete struct{}

// ConfirmDelete hides the confirmation and deletes every selected entry
type ConfirmDelete struct{}

// DismissDeleteDialog hides the confirmation
type DismissDeleteDialog struct{}

// DeleteSelected deletes every selected entry without confirmation
type DeleteSelected struct{}

// ClearSelections resets every selection flag
type ClearSelections struct{}

// RemoveEntry deletes a single saved entry
type RemoveEntry struct {
	Entry domain.Movie
}

// FilterSaved narrows Visible to saved entries matching Query
type FilterSaved struct {
	Query string
}

// NavigateBack returns to the previous screen
type NavigateBack struct{}

// RequestSearchScreen opens the catalog search screen
type RequestSearchScreen struct{}

func (LoadSaved) intent()           {}
func (Search) intent()              {}
func (ClearSearchResults) intent()  {}
func (AddEntry) intent()            {}
func (UpdateEntry) intent()         {}
func (RequestAdd) intent()          {}
func (RequestEdit) intent()         {}
func (ToggleSelection) intent()     {}
func (RequestDelete) intent()       {}
func (ConfirmDelete) intent()       {}
func (DismissDeleteDialog) intent() {}
func (DeleteSelected) intent()      {}
func (ClearSelections) intent()     {}
func (RemoveEntry) intent()         {}
func (FilterSaved) intent()         {}
func (NavigateBack) intent()        {}
func (RequestSearchScreen) intent() {}
