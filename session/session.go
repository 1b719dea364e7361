// Package session drives interactive searching: keystrokes are debounced
// into searches, the last completed page is kept, and committing acts on
// that page without searching again.
package session

import (
	"log/slog"
	"sync"
	"time"
)

// DefaultDelay is the quiet period between the last keystroke and a search.
const DefaultDelay = 100 * time.Millisecond

// Target is where a commit navigates to.
type Target struct {
	Key        string `json:"key"`
	Title      string `json:"title"`
	URL        string `json:"url"`
	NewContext bool   `json:"new_context"`
}

// Option configures a Session.
type Option func(*Session)

// WithDelay sets the debounce delay. Non-positive values keep the default.
func WithDelay(d time.Duration) Option {
	return func(s *Session) {
		if d > 0 {
			s.delay = d
		}
	}
}

// WithOnResults registers a callback for every completed search. It runs on
// the goroutine that performed the search and must not block for long.
func WithOnResults(fn func(Page)) Option {
	return func(s *Session) { s.onResults = fn }
}

// WithLogger sets the logger used for search timings.
func WithLogger(l *slog.Logger) Option {
	return func(s *Session) {
		if l != nil {
			s.log = l
		}
	}
}

// Session holds the state of one interactive search: the runner, the
// current query and the last completed page.
type Session struct {
	mu        sync.Mutex
	runMu     sync.Mutex
	runner    Runner
	query     string
	page      Page
	debouncer Debouncer
	delay     time.Duration
	onResults func(Page)
	log       *slog.Logger
}

// New returns a session searching with runner.
func New(runner Runner, opts ...Option) *Session {
	s := &Session{
		runner: runner,
		delay:  DefaultDelay,
		log:    slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Init runs query immediately and returns its page. Used for the initial or
// stored query before any input arrives.
func (s *Session) Init(query string) Page {
	s.debouncer.Stop()
	s.mu.Lock()
	s.query = query
	s.mu.Unlock()
	return s.run(query)
}

// Input records a new query and schedules a search for it. Earlier pending
// searches are dropped.
func (s *Session) Input(query string) {
	s.mu.Lock()
	s.query = query
	delay := s.delay
	s.mu.Unlock()

	s.debouncer.Schedule(func() { s.run(query) }, delay)
}

// Flush runs a pending search now. It reports whether one was pending.
func (s *Session) Flush() bool {
	return s.debouncer.Flush()
}

// Commit returns the best result of the last completed page. It never
// searches, so a query still waiting in the debouncer is not considered.
func (s *Session) Commit(newContext bool) (Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.page.Empty() {
		return Target{}, false
	}
	u := s.page.Results[0].Unit
	return Target{
		Key:        u.Key,
		Title:      u.DisplayTitle(),
		URL:        u.Target(),
		NewContext: newContext,
	}, true
}

// Lucky runs query and commits to its best result in one step.
func (s *Session) Lucky(query string) (Target, bool) {
	s.Init(query)
	return s.Commit(false)
}

// SetRunner swaps the runner, e.g. after the content was re-indexed, and
// searches the current query again.
func (s *Session) SetRunner(r Runner) Page {
	s.mu.Lock()
	s.runner = r
	query := s.query
	s.mu.Unlock()
	return s.run(query)
}

// Query returns the latest query, searched or not.
func (s *Session) Query() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.query
}

// Page returns the last completed page.
func (s *Session) Page() Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Close drops any pending search.
func (s *Session) Close() {
	s.debouncer.Stop()
}

func (s *Session) run(query string) Page {
	s.runMu.Lock()
	defer s.runMu.Unlock()

	s.mu.Lock()
	runner := s.runner
	s.mu.Unlock()

	var page Page
	if runner != nil {
		start := time.Now()
		page = runner.Run(query)
		s.log.Debug("search", "query", query, "results", len(page.Results), "elapsed", time.Since(start))
	}
	page.Query = query

	s.mu.Lock()
	stale := s.query != query
	if !stale {
		s.page = page
	}
	onResults := s.onResults
	s.mu.Unlock()

	if stale {
		s.log.Debug("dropping stale page", "query", query)
		return page
	}
	if onResults != nil {
		onResults(page)
	}
	return page
}
