package search

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/sahilm/fuzzy"
)

// movieTitles implements fuzzy.Source over lowercase titles
type movieTitles []string

func (t movieTitles) String(i int) string { return t[i] }
func (t movieTitles) Len() int            { return len(t) }

// FilterMovies returns the movies whose title fuzzy-matches query, best match
// first. A blank query returns every movie in its original order.
func FilterMovies(query string, movies []domain.Movie) []domain.Movie {
	query = strings.TrimSpace(query)
	if query == "" {
		return domain.CloneMovies(movies)
	}

	titles := make(movieTitles, len(movies))
	for i, m := range movies {
		titles[i] = strings.ToLower(m.Title)
	}

	matches := fuzzy.FindFrom(strings.ToLower(query), titles)
	if len(matches) == 0 {
		return nil
	}

	filtered := make([]domain.Movie, len(matches))
	for i, match := range matches {
		filtered[i] = movies[match.Index]
	}
	return filtered
}
