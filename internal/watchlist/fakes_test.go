package watchlist

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"github.com/mmcdole/marquee/internal/domain"
)

// fakeMovies is an in-memory MovieRepository whose feed is delivered before a
// mutation returns, like the bbolt store.
type fakeMovies struct {
	mu       sync.Mutex
	movies   []domain.Movie
	nextID   int64
	watchers []chan []domain.Movie
	calls    map[string]int

	insertErr error
	updateErr error
	watchErr  error
}

func newFakeMovies(titles ...string) *fakeMovies {
	f := &fakeMovies{calls: make(map[string]int)}
	for _, title := range titles {
		f.nextID++
		f.movies = append(f.movies, domain.Movie{ID: f.nextID, Title: title})
	}
	return f
}

func (f *fakeMovies) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeMovies) Watch(ctx context.Context) (<-chan []domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["watch"]++
	if f.watchErr != nil {
		return nil, f.watchErr
	}
	ch := make(chan []domain.Movie, 64)
	ch <- domain.CloneMovies(f.movies)
	f.watchers = append(f.watchers, ch)
	return ch, nil
}

func (f *fakeMovies) List(ctx context.Context) ([]domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.CloneMovies(f.movies), nil
}

func (f *fakeMovies) Insert(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["insert"]++
	if f.insertErr != nil {
		return domain.Movie{}, f.insertErr
	}
	f.nextID++
	movie.ID = f.nextID
	movie.Selected = false
	f.movies = append(f.movies, movie)
	f.publish()
	return movie, nil
}

func (f *fakeMovies) Update(ctx context.Context, movie domain.Movie) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["update"]++
	if f.updateErr != nil {
		return f.updateErr
	}
	for i := range f.movies {
		if f.movies[i].ID == movie.ID {
			f.movies[i] = movie
			f.publish()
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", domain.ErrNotFound, movie.ID)
}

func (f *fakeMovies) Delete(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["delete"]++
	for i := range f.movies {
		if f.movies[i].ID == id {
			f.movies = append(f.movies[:i:i], f.movies[i+1:]...)
			f.publish()
			return nil
		}
	}
	return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
}

func (f *fakeMovies) DeleteSelected(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["deleteSelected"]++
	kept := make([]domain.Movie, 0, len(f.movies))
	for _, m := range f.movies {
		if !m.Selected {
			kept = append(kept, m)
		}
	}
	deleted := len(f.movies) - len(kept)
	f.movies = kept
	f.publish()
	return deleted, nil
}

func (f *fakeMovies) ClearSelections(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls["clearSelections"]++
	for i := range f.movies {
		f.movies[i].Selected = false
	}
	f.publish()
	return nil
}

func (f *fakeMovies) CountSelected(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return domain.CountSelected(f.movies), nil
}

func (f *fakeMovies) publish() {
	for _, ch := range f.watchers {
		ch <- domain.CloneMovies(f.movies)
	}
}

// fakeCatalog answers searches with a function
type fakeCatalog struct {
	search func(ctx context.Context, query string) ([]domain.Movie, error)
}

func (f *fakeCatalog) Search(ctx context.Context, query string) ([]domain.Movie, error) {
	if f.search == nil {
		return []domain.Movie{}, nil
	}
	return f.search(ctx, query)
}

// logRecorder is a slog.Handler that keeps messages for assertions
type logRecorder struct {
	mu       sync.Mutex
	messages []string
}

func (r *logRecorder) Enabled(context.Context, slog.Level) bool { return true }

func (r *logRecorder) Handle(_ context.Context, rec slog.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.messages = append(r.messages, rec.Message)
	return nil
}

func (r *logRecorder) WithAttrs([]slog.Attr) slog.Handler { return r }
func (r *logRecorder) WithGroup(string) slog.Handler      { return r }

func (r *logRecorder) contains(substr string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.messages {
		if strings.Contains(m, substr) {
			return true
		}
	}
	return false
}
