package domain

import (
	"context"
)

// MovieRepository is the persisted watch-list
type MovieRepository interface {
	// Watch returns a live feed of the full saved list: the current snapshot first,
	// then one snapshot per mutation in the order mutations were applied.
	// The channel is closed when ctx ends or the repository is closed.
	Watch(ctx context.Context) (<-chan []Movie, error)

	// List returns the saved list once
	List(ctx context.Context) ([]Movie, error)

	// Insert assigns identity, forces Selected=false and returns the saved entry
	Insert(ctx context.Context, movie Movie) (Movie, error)

	// Update replaces an entry by identity (ErrNotFound if unknown)
	Update(ctx context.Context, movie Movie) error

	// Delete removes a single entry by identity (ErrNotFound if unknown)
	Delete(ctx context.Context, id int64) error

	// DeleteSelected removes every selection-flagged entry atomically
	DeleteSelected(ctx context.Context) (int, error)

	// ClearSelections resets every selection flag atomically
	ClearSelections(ctx context.Context) error

	// CountSelected returns a point-in-time count of flagged entries
	CountSelected(ctx context.Context) (int, error)
}

// CatalogRepository searches an external movie catalog
type CatalogRepository interface {
	// Search returns candidate entries for a query.
	// An empty slice with a nil error means nothing matched.
	Search(ctx context.Context, query string) ([]Movie, error)
}

// DetailsRepository resolves extended metadata for a catalog entry
type DetailsRepository interface {
	// Details returns the catalog record for an IMDb identifier
	Details(ctx context.Context, imdbID string) (*Movie, error)
}
