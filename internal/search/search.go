package search

import (
	"context"
	"log/slog"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mmcdole/marquee/internal/domain"
)

// Service decorates a catalog with local ranking of its results
type Service struct {
	catalog domain.CatalogRepository
	logger  *slog.Logger
}

// NewService creates a new search service
func NewService(catalog domain.CatalogRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		catalog: catalog,
		logger:  logger,
	}
}

// Search queries the catalog and ranks the results against the query.
// A blank query matches nothing and never reaches the catalog.
func (s *Service) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Movie{}, nil
	}

	s.logger.Debug("searching catalog", "query", query)

	results, err := s.catalog.Search(ctx, query)
	if err != nil {
		s.logger.Warn("catalog search failed", "query", query, "error", err)
		return nil, err
	}

	ranked := rankResults(results, query)
	s.logger.Debug("search complete", "query", query, "results", len(ranked))
	return ranked, nil
}

// rankResults orders results by match quality, keeping catalog order for ties
func rankResults(items []domain.Movie, query string) []domain.Movie {
	if len(items) == 0 {
		return []domain.Movie{}
	}

	query = strings.ToLower(query)

	type rankedItem struct {
		item  domain.Movie
		score int
	}

	ranked := make([]rankedItem, 0, len(items))
	for _, item := range items {
		title := strings.ToLower(item.Title)
		ranked = append(ranked, rankedItem{item: item, score: calculateMatchScore(title, query)})
	}

	// Sort by score (lower is better)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score < ranked[j].score
	})

	results := make([]domain.Movie, len(ranked))
	for i, r := range ranked {
		results[i] = r.item
	}
	return results
}

// calculateMatchScore calculates a match score for ranking
// Lower score = better match
func calculateMatchScore(title, query string) int {
	// Exact match is best
	if title == query {
		return 0
	}

	// Prefix match is very good
	if strings.HasPrefix(title, query) {
		return 10
	}

	// Contains match is good
	if strings.Contains(title, query) {
		return 50
	}

	return 100 + fuzzy.LevenshteinDistance(query, title)
}
