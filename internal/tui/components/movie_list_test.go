package components

import (
	"testing"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func movies(titles ...string) []domain.Movie {
	out := make([]domain.Movie, len(titles))
	for i, title := range titles {
		out[i] = domain.Movie{ID: int64(i + 1), Title: title}
	}
	return out
}

func TestMovieListCursorBounds(t *testing.T) {
	l := NewMovieList(true)
	_, ok := l.Selected()
	assert.False(t, ok)

	l.SetItems(movies("A", "B", "C"))
	l.MoveUp(1)
	assert.Equal(t, 0, l.Cursor())

	l.MoveDown(10)
	assert.Equal(t, 2, l.Cursor())

	l.Top()
	assert.Equal(t, 0, l.Cursor())
	l.Bottom()
	assert.Equal(t, 2, l.Cursor())
}

func TestMovieListSetItemsKeepsCursorOnEntry(t *testing.T) {
	l := NewMovieList(true)
	l.SetItems(movies("A", "B", "C"))
	l.MoveDown(2)

	// C moves to the front
	items := movies("A", "B", "C")
	l.SetItems([]domain.Movie{items[2], items[0], items[1]})
	cur, ok := l.Selected()
	require.True(t, ok)
	assert.Equal(t, "C", cur.Title)

	// Shrinking clamps the cursor
	l.MoveDown(2)
	l.SetItems(movies("A"))
	assert.Equal(t, 0, l.Cursor())

	l.SetItems(nil)
	_, ok = l.Selected()
	assert.False(t, ok)
}

func TestMovieListScrollsWithCursor(t *testing.T) {
	l := NewMovieList(false)
	l.SetSize(60, 2)
	l.SetItems(movies("A", "B", "C", "D"))

	l.MoveDown(3)
	view := l.View()
	assert.Contains(t, view, "D")
	assert.NotContains(t, view, "A")
	assert.Equal(t, 2, l.PageSize())
}

func TestMovieListMarks(t *testing.T) {
	items := movies("A", "B")
	items[1].Selected = true

	marked := NewMovieList(true)
	marked.SetSize(60, 5)
	marked.SetItems(items)
	assert.Contains(t, marked.View(), "✓")

	plain := NewMovieList(false)
	plain.SetSize(60, 5)
	plain.SetItems(items)
	assert.NotContains(t, plain.View(), "✓")
}
