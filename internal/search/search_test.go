package search

import (
	"context"
	"errors"
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type catalogFunc func(ctx context.Context, query string) ([]domain.Movie, error)

func (f catalogFunc) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	return f(ctx, query)
}

func titles(movies []domain.Movie) []string {
	out := make([]string, len(movies))
	for i, m := range movies {
		out[i] = m.Title
	}
	return out
}

func TestServiceRanksResults(t *testing.T) {
	catalog := catalogFunc(func(ctx context.Context, query string) ([]domain.Movie, error) {
		return []domain.Movie{
			{Title: "Making 'The Matrix'"},
			{Title: "The Matrix Reloaded"},
			{Title: "Matrix"},
			{Title: "The Matrix"},
		}, nil
	})

	svc := NewService(catalog, nil)
	results, err := svc.Search(context.Background(), "The Matrix")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"The Matrix",
		"The Matrix Reloaded",
		"Making 'The Matrix'",
		"Matrix",
	}, titles(results))
}

func TestServiceBlankQuery(t *testing.T) {
	called := false
	catalog := catalogFunc(func(ctx context.Context, query string) ([]domain.Movie, error) {
		called = true
		return nil, nil
	})

	results, err := NewService(catalog, nil).Search(context.Background(), "   ")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
	assert.False(t, called)
}

func TestServicePropagatesErrors(t *testing.T) {
	catalog := catalogFunc(func(ctx context.Context, query string) ([]domain.Movie, error) {
		return nil, domain.ErrNetwork
	})

	_, err := NewService(catalog, nil).Search(context.Background(), "alien")
	assert.True(t, errors.Is(err, domain.ErrNetwork))
}

func TestServiceEmptyResults(t *testing.T) {
	catalog := catalogFunc(func(ctx context.Context, query string) ([]domain.Movie, error) {
		return nil, nil
	})

	results, err := NewService(catalog, nil).Search(context.Background(), "zzzzz")
	require.NoError(t, err)
	assert.NotNil(t, results)
	assert.Empty(t, results)
}

func TestCalculateMatchScore(t *testing.T) {
	tests := []struct {
		title string
		query string
		want  int
	}{
		{"heat", "heat", 0},
		{"heat wave", "heat", 10},
		{"the heat", "heat", 50},
		{"hear", "heat", 101},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			assert.Equal(t, tt.want, calculateMatchScore(tt.title, tt.query))
		})
	}
}

func TestFilterMovies(t *testing.T) {
	movies := []domain.Movie{
		{ID: 1, Title: "Alien"},
		{ID: 2, Title: "Blade Runner"},
		{ID: 3, Title: "Aliens"},
	}

	t.Run("blank query keeps order", func(t *testing.T) {
		got := FilterMovies("", movies)
		assert.Equal(t, movies, got)
		got[0].Title = "changed"
		assert.Equal(t, "Alien", movies[0].Title)
	})

	t.Run("case insensitive match", func(t *testing.T) {
		got := FilterMovies("ALIEN", movies)
		assert.ElementsMatch(t, []string{"Alien", "Aliens"}, titles(got))
	})

	t.Run("subsequence match", func(t *testing.T) {
		got := FilterMovies("bldrnr", movies)
		assert.Equal(t, []string{"Blade Runner"}, titles(got))
	})

	t.Run("no match", func(t *testing.T) {
		assert.Empty(t, FilterMovies("xyz", movies))
	})
}
