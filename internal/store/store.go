package store

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
	bolt "go.etcd.io/bbolt"
)

// Bucket names
var (
	bucketMovies = []byte("movies")
	bucketImdb   = []byte("imdb") // imdbID -> movie key, enforces one entry per catalog title
)

// watchBuffer is the per-watcher snapshot backlog before a mutation blocks on delivery
const watchBuffer = 16

// MovieStore implements domain.MovieRepository using BoltDB.
type MovieStore struct {
	db  *bolt.DB
	now func() time.Time

	// publishMu serializes mutation+publish so watchers see snapshots in commit order
	publishMu sync.Mutex

	mu       sync.Mutex // Protects watchers and closed
	watchers map[*watcher]struct{}
	closed   bool
}

type watcher struct {
	ch   chan []domain.Movie
	done <-chan struct{}
}

// Open opens (or creates) the watch-list database at path.
func Open(path string) (*MovieStore, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: database path is required", domain.ErrStorage)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("failed to open bolt db: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, bucket := range [][]byte{bucketMovies, bucketImdb} {
			if _, err := tx.CreateBucketIfNotExists(bucket); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, err
	}

	return &MovieStore{
		db:       db,
		now:      time.Now,
		watchers: make(map[*watcher]struct{}),
	}, nil
}

// Close closes every live watch feed and the database.
func (s *MovieStore) Close() error {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	for w := range s.watchers {
		close(w.ch)
	}
	s.watchers = nil
	s.mu.Unlock()

	return s.db.Close()
}

// === Reads ===

func (s *MovieStore) List(ctx context.Context) ([]domain.Movie, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var movies []domain.Movie
	err := s.db.View(func(tx *bolt.Tx) error {
		var err error
		movies, err = readAll(tx)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStorage, err)
	}
	return movies, nil
}

func (s *MovieStore) CountSelected(ctx context.Context) (int, error) {
	movies, err := s.List(ctx)
	if err != nil {
		return 0, err
	}
	return domain.CountSelected(movies), nil
}

// Watch registers a live feed. The current snapshot is delivered first.
func (s *MovieStore) Watch(ctx context.Context) (<-chan []domain.Movie, error) {
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: store is closed", domain.ErrStorage)
	}
	s.mu.Unlock()

	current, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	w := &watcher{ch: make(chan []domain.Movie, watchBuffer), done: ctx.Done()}
	w.ch <- current

	s.mu.Lock()
	s.watchers[w] = struct{}{}
	s.mu.Unlock()

	go func() {
		<-ctx.Done()
		s.removeWatcher(w)
	}()

	return w.ch, nil
}

func (s *MovieStore) removeWatcher(w *watcher) {
	// publishMu keeps a close from racing an in-flight publish send
	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.watchers[w]; ok {
		delete(s.watchers, w)
		close(w.ch)
	}
}

// === Mutations ===

func (s *MovieStore) Insert(ctx context.Context, movie domain.Movie) (domain.Movie, error) {
	if err := validate(movie); err != nil {
		return domain.Movie{}, err
	}

	movie.Selected = false
	movie.AddedAt = s.now().UTC()

	err := s.mutate(ctx, func(tx *bolt.Tx) error {
		movies := tx.Bucket(bucketMovies)
		index := tx.Bucket(bucketImdb)

		if movie.ImdbID != "" && index.Get([]byte(movie.ImdbID)) != nil {
			return fmt.Errorf("%w: %q is already on the list", domain.ErrStorage, movie.ImdbID)
		}

		seq, err := movies.NextSequence()
		if err != nil {
			return err
		}
		movie.ID = int64(seq)

		if err := put(movies, movie); err != nil {
			return err
		}
		if movie.ImdbID != "" {
			return index.Put([]byte(movie.ImdbID), itob(movie.ID))
		}
		return nil
	})
	if err != nil {
		return domain.Movie{}, err
	}
	return movie, nil
}

func (s *MovieStore) Update(ctx context.Context, movie domain.Movie) error {
	if err := validate(movie); err != nil {
		return err
	}

	return s.mutate(ctx, func(tx *bolt.Tx) error {
		movies := tx.Bucket(bucketMovies)
		index := tx.Bucket(bucketImdb)

		existing, ok, err := get(movies, movie.ID)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, movie.ID)
		}

		if movie.ImdbID != existing.ImdbID {
			if movie.ImdbID != "" {
				if owner := index.Get([]byte(movie.ImdbID)); owner != nil && btoi(owner) != movie.ID {
					return fmt.Errorf("%w: %q is already on the list", domain.ErrStorage, movie.ImdbID)
				}
				if err := index.Put([]byte(movie.ImdbID), itob(movie.ID)); err != nil {
					return err
				}
			}
			if existing.ImdbID != "" {
				if err := index.Delete([]byte(existing.ImdbID)); err != nil {
					return err
				}
			}
		}

		// Identity and insert time are owned by the store
		movie.AddedAt = existing.AddedAt
		return put(movies, movie)
	})
}

func (s *MovieStore) Delete(ctx context.Context, id int64) error {
	return s.mutate(ctx, func(tx *bolt.Tx) error {
		movies := tx.Bucket(bucketMovies)
		existing, ok, err := get(movies, id)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("%w: id %d", domain.ErrNotFound, id)
		}
		if existing.ImdbID != "" {
			if err := tx.Bucket(bucketImdb).Delete([]byte(existing.ImdbID)); err != nil {
				return err
			}
		}
		return movies.Delete(itob(id))
	})
}

func (s *MovieStore) DeleteSelected(ctx context.Context) (int, error) {
	deleted := 0
	err := s.mutate(ctx, func(tx *bolt.Tx) error {
		movies := tx.Bucket(bucketMovies)
		index := tx.Bucket(bucketImdb)

		all, err := readAll(tx)
		if err != nil {
			return err
		}
		for _, m := range all {
			if !m.Selected {
				continue
			}
			if err := movies.Delete(itob(m.ID)); err != nil {
				return err
			}
			if m.ImdbID != "" {
				if err := index.Delete([]byte(m.ImdbID)); err != nil {
					return err
				}
			}
			deleted++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return deleted, nil
}

func (s *MovieStore) ClearSelections(ctx context.Context) error {
	return s.mutate(ctx, func(tx *bolt.Tx) error {
		movies := tx.Bucket(bucketMovies)
		all, err := readAll(tx)
		if err != nil {
			return err
		}
		for _, m := range all {
			if !m.Selected {
				continue
			}
			if err := put(movies, m.WithSelected(false)); err != nil {
				return err
			}
		}
		return nil
	})
}

// mutate runs fn in a write transaction and, on commit, hands the resulting
// snapshot to every watcher before returning.
func (s *MovieStore) mutate(ctx context.Context, fn func(tx *bolt.Tx) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.publishMu.Lock()
	defer s.publishMu.Unlock()

	var snapshot []domain.Movie
	err := s.db.Update(func(tx *bolt.Tx) error {
		if err := fn(tx); err != nil {
			return err
		}
		var err error
		snapshot, err = readAll(tx)
		return err
	})
	if err != nil {
		return wrapStorage(err)
	}

	s.publish(snapshot)
	return nil
}

// publish blocks until each watcher has buffered the snapshot or gone away
func (s *MovieStore) publish(snapshot []domain.Movie) {
	s.mu.Lock()
	targets := make([]*watcher, 0, len(s.watchers))
	for w := range s.watchers {
		targets = append(targets, w)
	}
	s.mu.Unlock()

	for _, w := range targets {
		select {
		case w.ch <- domain.CloneMovies(snapshot):
		case <-w.done:
		}
	}
}

// === Encoding helpers ===

func validate(movie domain.Movie) error {
	if strings.TrimSpace(movie.Title) == "" {
		return fmt.Errorf("%w: title is required", domain.ErrStorage)
	}
	return nil
}

func readAll(tx *bolt.Tx) ([]domain.Movie, error) {
	b := tx.Bucket(bucketMovies)
	movies := []domain.Movie{}
	err := b.ForEach(func(k, v []byte) error {
		var m domain.Movie
		if err := json.Unmarshal(v, &m); err != nil {
			return fmt.Errorf("decode movie %d: %w", btoi(k), err)
		}
		movies = append(movies, m)
		return nil
	})
	return movies, err
}

func get(b *bolt.Bucket, id int64) (domain.Movie, bool, error) {
	v := b.Get(itob(id))
	if v == nil {
		return domain.Movie{}, false, nil
	}
	var m domain.Movie
	if err := json.Unmarshal(v, &m); err != nil {
		return domain.Movie{}, false, err
	}
	return m, true, nil
}

func put(b *bolt.Bucket, movie domain.Movie) error {
	data, err := json.Marshal(movie)
	if err != nil {
		return err
	}
	return b.Put(itob(movie.ID), data)
}

// itob encodes an ID big-endian so cursor order is insertion order
func itob(id int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(id))
	return b
}

func btoi(b []byte) int64 {
	if len(b) != 8 {
		return 0
	}
	return int64(binary.BigEndian.Uint64(b))
}

func wrapStorage(err error) error {
	if errors.Is(err, domain.ErrStorage) || errors.Is(err, domain.ErrNotFound) {
		return err
	}
	return fmt.Errorf("%w: %v", domain.ErrStorage, err)
}
