package omdb

import (
	"strings"

	"github.com/mmcdole/marquee/internal/domain"
)

// MapSearchResults converts search rows to unsaved movies
func MapSearchResults(results []SearchResult) []domain.Movie {
	movies := make([]domain.Movie, 0, len(results))
	for _, r := range results {
		movies = append(movies, mapSearchResult(r))
	}
	return movies
}

func mapSearchResult(r SearchResult) domain.Movie {
	return domain.Movie{
		Title:     strings.TrimSpace(r.Title),
		Year:      r.Year,
		PosterURL: normalizeText(r.Poster),
		ImdbID:    r.ImdbID,
	}
}

// MapDetails converts a detail lookup to an unsaved movie
func MapDetails(d DetailsResponse) domain.Movie {
	return domain.Movie{
		Title:     strings.TrimSpace(d.Title),
		Year:      d.Year,
		PosterURL: normalizeText(d.Poster),
		ImdbID:    d.ImdbID,
		Genre:     normalizeText(d.Genre),
	}
}

// normalizeText maps the catalog's "N/A" placeholder to empty
func normalizeText(s string) string {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, domain.PosterNotAvailable) {
		return ""
	}
	return s
}
