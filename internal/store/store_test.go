package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *MovieStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "watchlist.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func nextSnapshot(t *testing.T, ch <-chan []domain.Movie) []domain.Movie {
	t.Helper()
	select {
	case snap, ok := <-ch:
		require.True(t, ok, "watch channel closed unexpectedly")
		return snap
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for snapshot")
		return nil
	}
}

func TestInsertAssignsIdentityAndClearsSelection(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	first, err := s.Insert(ctx, domain.Movie{Title: "The Matrix", Year: "1999", ImdbID: "tt0133093", Selected: true})
	require.NoError(t, err)
	second, err := s.Insert(ctx, domain.Movie{Title: "Home Movie"})
	require.NoError(t, err)

	assert.NotZero(t, first.ID)
	assert.Greater(t, second.ID, first.ID)
	assert.False(t, first.Selected)
	assert.False(t, first.AddedAt.IsZero())

	movies, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, "The Matrix", movies[0].Title)
	assert.Equal(t, "Home Movie", movies[1].Title)
}

func TestInsertRejectsConstraintViolations(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	_, err := s.Insert(ctx, domain.Movie{Title: "   "})
	assert.ErrorIs(t, err, domain.ErrStorage)

	_, err = s.Insert(ctx, domain.Movie{Title: "Alien", ImdbID: "tt0078748"})
	require.NoError(t, err)
	_, err = s.Insert(ctx, domain.Movie{Title: "Alien (again)", ImdbID: "tt0078748"})
	assert.ErrorIs(t, err, domain.ErrStorage)

	// Manual entries have no catalog id and never collide
	_, err = s.Insert(ctx, domain.Movie{Title: "Alien"})
	assert.NoError(t, err)
}

func TestUpdateUnknownIdentity(t *testing.T) {
	s := openTestStore(t)
	err := s.Update(context.Background(), domain.Movie{ID: 42, Title: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestUpdateKeepsAddedAtAndMovesIndex(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, err := s.Insert(ctx, domain.Movie{Title: "Heat", ImdbID: "tt0113277"})
	require.NoError(t, err)

	edited := m
	edited.Title = "Heat (1995)"
	edited.ImdbID = ""
	edited.AddedAt = time.Time{}
	require.NoError(t, s.Update(ctx, edited))

	movies, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Heat (1995)", movies[0].Title)
	assert.True(t, movies[0].AddedAt.Equal(m.AddedAt))

	// The old catalog id is free again
	_, err = s.Insert(ctx, domain.Movie{Title: "Heat", ImdbID: "tt0113277"})
	assert.NoError(t, err)
}

func TestDeleteSelectedAndClearSelections(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var saved []domain.Movie
	for _, title := range []string{"A", "B", "C"} {
		m, err := s.Insert(ctx, domain.Movie{Title: title})
		require.NoError(t, err)
		saved = append(saved, m)
	}

	require.NoError(t, s.Update(ctx, saved[0].WithSelected(true)))
	require.NoError(t, s.Update(ctx, saved[1].WithSelected(true)))

	count, err := s.CountSelected(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	require.NoError(t, s.ClearSelections(ctx))
	count, err = s.CountSelected(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, count)

	require.NoError(t, s.Update(ctx, saved[2].WithSelected(true)))
	deleted, err := s.DeleteSelected(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, deleted)

	movies, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 2)
	assert.Equal(t, []string{"A", "B"}, []string{movies[0].Title, movies[1].Title})
}

func TestDelete(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	m, err := s.Insert(ctx, domain.Movie{Title: "Up", ImdbID: "tt1049413"})
	require.NoError(t, err)
	require.NoError(t, s.Delete(ctx, m.ID))
	assert.ErrorIs(t, s.Delete(ctx, m.ID), domain.ErrNotFound)

	_, err = s.Insert(ctx, domain.Movie{Title: "Up", ImdbID: "tt1049413"})
	assert.NoError(t, err)
}

func TestWatchDeliversSnapshotsBeforeMutationReturns(t *testing.T) {
	s := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := s.Watch(ctx)
	require.NoError(t, err)
	assert.Empty(t, nextSnapshot(t, ch))

	m, err := s.Insert(ctx, domain.Movie{Title: "Dune"})
	require.NoError(t, err)

	// The snapshot is already buffered when Insert returns
	select {
	case snap := <-ch:
		require.Len(t, snap, 1)
		assert.Equal(t, m.ID, snap[0].ID)
	default:
		t.Fatal("mutation returned before its snapshot was delivered")
	}

	require.NoError(t, s.Update(ctx, m.WithSelected(true)))
	snap := nextSnapshot(t, ch)
	require.Len(t, snap, 1)
	assert.True(t, snap[0].Selected)

	_, err = s.DeleteSelected(ctx)
	require.NoError(t, err)
	assert.Empty(t, nextSnapshot(t, ch))
}

func TestWatchClosesOnCancelAndClose(t *testing.T) {
	s := openTestStore(t)

	ctx, cancel := context.WithCancel(context.Background())
	ch, err := s.Watch(ctx)
	require.NoError(t, err)
	nextSnapshot(t, ch)
	cancel()

	require.Eventually(t, func() bool {
		select {
		case _, ok := <-ch:
			return !ok
		default:
			return false
		}
	}, time.Second, 10*time.Millisecond)

	live, err := s.Watch(context.Background())
	require.NoError(t, err)
	nextSnapshot(t, live)
	require.NoError(t, s.Close())

	_, ok := <-live
	assert.False(t, ok)

	_, err = s.Watch(context.Background())
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestReopenPreservesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "watchlist.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	_, err = s.Insert(ctx, domain.Movie{Title: "Arrival", Year: "2016", Genre: "Drama"})
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()

	movies, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, movies, 1)
	assert.Equal(t, "Drama", movies[0].Genre)
}
