package domain

import (
	"strings"
	"time"
)

// PosterNotAvailable is the catalog placeholder for a missing poster
const PosterNotAvailable = "N/A"

// Movie is a single watch-list entry, saved or transient
type Movie struct {
	ID        int64     `json:"id"`                 // Assigned by the store on insert (0 = unsaved)
	Title     string    `json:"title"`              // Display title, required once saved
	Year      string    `json:"year"`               // Release year label, free text
	PosterURL string    `json:"poster_url"`         // Poster image URL, empty when absent
	ImdbID    string    `json:"imdb_id"`            // Catalog identifier, empty for manual entries
	Selected  bool      `json:"selected"`           // Multi-select flag
	Genre     string    `json:"genre,omitempty"`    // Optional genre label
	AddedAt   time.Time `json:"added_at,omitempty"` // Set by the store on insert
}

// IsSaved reports whether the store has assigned an identity
func (m Movie) IsSaved() bool {
	return m.ID != 0
}

// IsFromCatalog reports whether the entry came from a catalog search
func (m Movie) IsFromCatalog() bool {
	return m.ImdbID != ""
}

// HasPoster reports whether a usable poster reference is present
func (m Movie) HasPoster() bool {
	p := strings.TrimSpace(m.PosterURL)
	return p != "" && !strings.EqualFold(p, PosterNotAvailable)
}

// WithSelected returns a copy with the selection flag set
func (m Movie) WithSelected(selected bool) Movie {
	m.Selected = selected
	return m
}

// Description returns the secondary line shown under the title
func (m Movie) Description() string {
	parts := make([]string, 0, 2)
	if m.Year != "" {
		parts = append(parts, m.Year)
	}
	if m.Genre != "" {
		parts = append(parts, m.Genre)
	}
	return strings.Join(parts, " · ")
}

// CountSelected returns the number of selection-flagged entries
func CountSelected(movies []Movie) int {
	n := 0
	for _, m := range movies {
		if m.Selected {
			n++
		}
	}
	return n
}

// CloneMovies returns an independent copy of the slice
func CloneMovies(movies []Movie) []Movie {
	if len(movies) == 0 {
		return nil
	}
	dup := make([]Movie, len(movies))
	copy(dup, movies)
	return dup
}
