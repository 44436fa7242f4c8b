package source

import (
	"fmt"
	"log/slog"

	"github.com/mmcdole/marquee/internal/adapter"
	"github.com/mmcdole/marquee/internal/adapter/source/omdb"
	"github.com/mmcdole/marquee/internal/domain"
)

// Catalog combines the repository interfaces a movie catalog backend implements.
type Catalog interface {
	domain.CatalogRepository // Search(query)
	domain.DetailsRepository // Details(imdbID)
}

// NewCatalogFromConfig creates the catalog client described by the application config
func NewCatalogFromConfig(cfg *adapter.Config, logger *slog.Logger) (Catalog, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is nil")
	}
	if !cfg.IsConfigured() {
		return nil, domain.ErrNotConfigured
	}

	baseURL := cfg.OMDb.BaseURL
	if baseURL == "" {
		baseURL = adapter.DefaultOMDbURL
	}

	return omdb.NewClient(baseURL, cfg.OMDb.APIKey, logger,
		omdb.WithTimeout(cfg.OMDb.Timeout),
		omdb.WithGenreEnrichment(cfg.OMDb.EnrichGenres),
	), nil
}
