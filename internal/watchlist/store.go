package watchlist

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mmcdole/marquee/internal/domain"
)

// eventBuffer is the backlog of intents and completions awaiting the loop
const eventBuffer = 64

// Options tunes a Store
type Options struct {
	EffectBuffer    int           // Effects buffered while nobody is reading
	SearchTimeout   time.Duration // Per catalog call, 0 = no limit
	MutationTimeout time.Duration // Per repository mutation, 0 = no limit
}

// DefaultOptions returns the options used when a field is left zero
func DefaultOptions() Options {
	return Options{
		EffectBuffer:    32,
		SearchTimeout:   15 * time.Second,
		MutationTimeout: 5 * time.Second,
	}
}

// Store owns the application State. Intents and async completions are
// applied one at a time by a single loop goroutine.
type Store struct {
	movies  domain.MovieRepository
	catalog domain.CatalogRepository
	opts    Options
	logger  *slog.Logger

	events   chan event
	effects  chan Effect
	loopDone chan struct{}
	workers  sync.WaitGroup

	lifeMu  sync.Mutex // Protects started, stopped, cancel
	started bool
	stopped bool
	ctx     context.Context
	cancel  context.CancelFunc

	mu    sync.RWMutex // Protects state and subs
	state State
	subs  map[chan State]struct{}

	// Owned by the loop goroutine
	searchSeq uint64
	watching  bool
}

// NewStore creates a Store. Call Start to begin processing intents.
func NewStore(movies domain.MovieRepository, catalog domain.CatalogRepository, opts Options, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	defaults := DefaultOptions()
	if opts.EffectBuffer <= 0 {
		opts.EffectBuffer = defaults.EffectBuffer
	}
	if opts.SearchTimeout < 0 {
		opts.SearchTimeout = 0
	}
	if opts.MutationTimeout < 0 {
		opts.MutationTimeout = 0
	}

	return &Store{
		movies:   movies,
		catalog:  catalog,
		opts:     opts,
		logger:   logger,
		events:   make(chan event, eventBuffer),
		effects:  make(chan Effect, opts.EffectBuffer),
		loopDone: make(chan struct{}),
		subs:     make(map[chan State]struct{}),
	}
}

// Start runs the event loop until Stop is called or ctx ends, and loads the
// saved list.
func (s *Store) Start(ctx context.Context) error {
	s.lifeMu.Lock()
	defer s.lifeMu.Unlock()

	if s.stopped {
		return domain.ErrSessionClosed
	}
	if s.started {
		return errors.New("watchlist: store already started")
	}
	s.started = true
	s.ctx, s.cancel = context.WithCancel(ctx)

	go s.loop()

	s.logger.Info("watchlist session started")
	return s.enqueue(LoadSaved{})
}

// Stop ends the session: the saved-list feed is torn down, in-flight work is
// abandoned, and the State and Effects channels are closed. Safe to call more
// than once.
func (s *Store) Stop() {
	s.lifeMu.Lock()
	if s.stopped {
		s.lifeMu.Unlock()
		return
	}
	s.stopped = true
	started := s.started
	s.lifeMu.Unlock()

	if started {
		s.cancel()
		<-s.loopDone
		s.workers.Wait()
	} else {
		close(s.loopDone)
	}

	s.mu.Lock()
	for ch := range s.subs {
		close(ch)
	}
	s.subs = nil
	s.mu.Unlock()

	close(s.effects)
	s.logger.Info("watchlist session stopped")
}

// Dispatch queues an intent. It returns domain.ErrSessionClosed once the
// session has stopped.
func (s *Store) Dispatch(intent Intent) error {
	if intent == nil {
		return errors.New("watchlist: nil intent")
	}

	s.lifeMu.Lock()
	stopped := s.stopped
	s.lifeMu.Unlock()
	if stopped {
		s.logger.Debug("intent dispatched after stop", "intent", fmt.Sprintf("%T", intent))
		return domain.ErrSessionClosed
	}
	return s.enqueue(intent)
}

func (s *Store) enqueue(intent Intent) error {
	select {
	case s.events <- intentEvent{intent: intent}:
		return nil
	case <-s.loopDone:
		s.logger.Debug("intent dispatched after stop", "intent", fmt.Sprintf("%T", intent))
		return domain.ErrSessionClosed
	}
}

// State returns the latest snapshot
func (s *Store) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Subscribe returns a feed of State snapshots starting with the current one.
// Slow readers only see the latest snapshot. The returned func unsubscribes.
func (s *Store) Subscribe() (<-chan State, func()) {
	ch := make(chan State, 1)

	s.mu.Lock()
	defer s.mu.Unlock()

	ch <- s.state
	if s.subs == nil {
		close(ch)
		return ch, func() {}
	}
	s.subs[ch] = struct{}{}

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if _, ok := s.subs[ch]; ok {
				delete(s.subs, ch)
				close(ch)
			}
		})
	}
}

// Effects returns the one-shot effect stream. Each effect is received by
// exactly one reader. The channel is closed by Stop.
func (s *Store) Effects() <-chan Effect {
	return s.effects
}

// === Event loop ===

type event interface{}

type intentEvent struct {
	intent Intent
}

type savedEvent struct {
	movies []domain.Movie
}

type searchDoneEvent struct {
	seq     uint64
	query   string
	results []domain.Movie
	err     error
}

type mutationDoneEvent struct {
	op        string
	err       error
	onSuccess *Effect
}

func (s *Store) loop() {
	defer close(s.loopDone)
	for {
		select {
		case <-s.ctx.Done():
			return
		case ev := <-s.events:
			s.apply(ev)
		}
	}
}

func (s *Store) apply(ev event) {
	switch ev := ev.(type) {
	case intentEvent:
		s.handle(ev.intent)
	case savedEvent:
		s.setState(s.current().withSaved(ev.movies))
	case searchDoneEvent:
		s.finishSearch(ev)
	case mutationDoneEvent:
		if ev.err != nil {
			s.fail(ev.op, ev.err)
			return
		}
		if ev.onSuccess != nil {
			s.emit(*ev.onSuccess)
		}
	}
}

func (s *Store) handle(intent Intent) {
	st := s.current()

	switch in := intent.(type) {
	case LoadSaved:
		s.loadSaved()

	case Search:
		s.searchSeq++
		st.Loading = true
		st.Error = ""
		s.setState(st)
		s.search(s.searchSeq, in.Query)

	case ClearSearchResults:
		// Supersedes any in-flight search
		s.searchSeq++
		st.SearchResults = nil
		st.Error = ""
		st.Loading = false
		s.setState(st)

	case AddEntry:
		entry := in.Entry
		s.mutate("insert", &Effect{Kind: EffectNavigateToList}, func(ctx context.Context) error {
			_, err := s.movies.Insert(ctx, entry)
			return err
		})

	case UpdateEntry:
		entry := in.Entry
		s.mutate("update", &Effect{Kind: EffectNavigateToList}, func(ctx context.Context) error {
			return s.movies.Update(ctx, entry)
		})

	case RequestAdd:
		s.emit(Effect{Kind: EffectNavigateToEdit})

	case RequestEdit:
		entry := in.Entry
		s.emit(Effect{Kind: EffectNavigateToEdit, Entry: &entry})

	case ToggleSelection:
		toggled := in.Entry.WithSelected(!in.Entry.Selected)
		s.mutate("toggle selection", nil, func(ctx context.Context) error {
			return s.movies.Update(ctx, toggled)
		})

	case RequestDelete:
		st.DeleteDialogVisible = true
		s.setState(st)

	case ConfirmDelete:
		st.DeleteDialogVisible = false
		s.setState(st)
		s.deleteSelected()

	case DismissDeleteDialog:
		st.DeleteDialogVisible = false
		s.setState(st)

	case DeleteSelected:
		s.deleteSelected()

	case ClearSelections:
		s.mutate("clear selections", nil, s.movies.ClearSelections)

	case RemoveEntry:
		id := in.Entry.ID
		s.mutate("delete", nil, func(ctx context.Context) error {
			return s.movies.Delete(ctx, id)
		})

	case FilterSaved:
		s.setState(st.withFilter(in.Query))

	case NavigateBack:
		s.emit(Effect{Kind: EffectNavigateBack})

	case RequestSearchScreen:
		s.emit(Effect{Kind: EffectNavigateToSearch})

	default:
		s.logger.Warn("unhandled intent", "intent", fmt.Sprintf("%T", intent))
	}
}

// loadSaved opens the saved-list feed once per session and forwards every
// snapshot onto the loop in feed order.
func (s *Store) loadSaved() {
	if s.watching {
		s.logger.Debug("saved list already loaded")
		return
	}
	s.watching = true

	s.workers.Add(1)
	go func() {
		defer s.workers.Done()

		feed, err := s.movies.Watch(s.ctx)
		if err != nil {
			s.post(mutationDoneEvent{op: "load saved", err: err})
			return
		}

		for {
			select {
			case <-s.ctx.Done():
				return
			case movies, ok := <-feed:
				if !ok {
					s.logger.Debug("saved list feed closed")
					return
				}
				if !s.post(savedEvent{movies: movies}) {
					return
				}
			}
		}
	}()
}

func (s *Store) search(seq uint64, query string) {
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()

		ctx, cancel := s.withTimeout(s.opts.SearchTimeout)
		defer cancel()

		results, err := s.catalog.Search(ctx, query)
		if err != nil && errors.Is(ctx.Err(), context.DeadlineExceeded) && !errors.Is(err, domain.ErrNetwork) {
			err = fmt.Errorf("%w: %v", domain.ErrNetwork, err)
		}
		s.post(searchDoneEvent{seq: seq, query: query, results: results, err: err})
	}()
}

func (s *Store) finishSearch(ev searchDoneEvent) {
	if ev.seq != s.searchSeq {
		s.logger.Debug("discarding stale search", "query", ev.query, "seq", ev.seq, "latest", s.searchSeq)
		return
	}

	st := s.current()
	st.Loading = false

	if ev.err != nil {
		s.logger.Error("search failed", "query", ev.query, "error", ev.err)
		msg := errorMessage(ev.err)
		st.SearchResults = nil
		st.Error = msg
		s.setState(st)
		s.emit(Effect{Kind: EffectShowError, Message: msg})
		return
	}

	var results []domain.Movie
	for _, m := range ev.results {
		results = append(results, m.WithSelected(false))
	}
	st.SearchResults = results
	st.Error = ""
	if len(results) == 0 {
		st.Error = NoResultsMessage
	}
	s.logger.Debug("search applied", "query", ev.query, "results", len(results))
	s.setState(st)
}

func (s *Store) deleteSelected() {
	s.mutate("delete selected", nil, func(ctx context.Context) error {
		n, err := s.movies.DeleteSelected(ctx)
		if err == nil {
			s.logger.Info("deleted selected movies", "count", n)
		}
		return err
	})
}

// mutate runs a repository call off the loop. Saved-list changes arrive via
// the feed; only the outcome is posted back.
func (s *Store) mutate(op string, onSuccess *Effect, fn func(ctx context.Context) error) {
	s.workers.Add(1)
	go func() {
		defer s.workers.Done()

		ctx, cancel := s.withTimeout(s.opts.MutationTimeout)
		defer cancel()

		s.post(mutationDoneEvent{op: op, err: fn(ctx), onSuccess: onSuccess})
	}()
}

// fail reports a failed operation once. The message is kept in State only
// when no search results are displayed.
func (s *Store) fail(op string, err error) {
	s.logger.Error("operation failed", "op", op, "error", err)
	msg := errorMessage(err)

	st := s.current()
	if !st.HasResults() {
		st.Error = msg
		s.setState(st)
	}
	s.emit(Effect{Kind: EffectShowError, Message: msg})
}

// emit updates navigation fields, then hands the effect to whoever reads next
func (s *Store) emit(e Effect) {
	if e.IsNavigation() {
		s.setState(s.current().navigate(e))
	}

	select {
	case s.effects <- e:
	default:
		s.logger.Warn("effect buffer full, dropping effect", "effect", e.Kind.String())
	}
}

func (s *Store) post(ev event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.ctx.Done():
		return false
	}
}

func (s *Store) withTimeout(d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(s.ctx)
	}
	return context.WithTimeout(s.ctx, d)
}

func (s *Store) current() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// setState publishes a new snapshot, replacing any unread one per subscriber
func (s *Store) setState(next State) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = next
	for ch := range s.subs {
		select {
		case <-ch:
		default:
		}
		select {
		case ch <- next:
		default:
		}
	}
}

func errorMessage(err error) string {
	return "Error: " + err.Error()
}
