// Package session keeps the mounted landing pages in memory, keyed by an
// opaque cookie id, and evicts pages that stop talking to the server.
package session

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/wolfman30/cosmo-wb-landing/internal/observability/metrics"
	"github.com/wolfman30/cosmo-wb-landing/internal/page"
	"github.com/wolfman30/cosmo-wb-landing/internal/platform/clock"
	"github.com/wolfman30/cosmo-wb-landing/pkg/logging"
)

const (
	// DefaultTTL is how long an idle page stays mounted.
	DefaultTTL = 30 * time.Minute
	// DefaultSweepInterval is how often idle pages are evicted.
	DefaultSweepInterval = time.Minute
	// DefaultMaxPages bounds how many pages stay mounted at once.
	DefaultMaxPages = 5000
)

// Factory builds a fresh, mounted page controller.
type Factory func() *page.Controller

// Options configures a Store.
type Options struct {
	TTL           time.Duration
	SweepInterval time.Duration
	MaxPages      int
	Clock         clock.Clock
	Factory       Factory
	Metrics       *metrics.LandingMetrics
	Logger        *logging.Logger
}

type entry struct {
	page     *page.Controller
	lastSeen time.Time
}

// Store maps session ids to page controllers.
type Store struct {
	mu      sync.Mutex
	entries map[string]*entry

	ttl      time.Duration
	interval time.Duration
	maxPages int
	clock    clock.Clock
	factory  Factory
	metrics  *metrics.LandingMetrics
	logger   *logging.Logger

	stop      chan struct{}
	done      chan struct{}
	startOnce sync.Once
	closeOnce sync.Once
}

// NewStore returns an empty store. Call Start to begin background eviction.
func NewStore(opts Options) *Store {
	if opts.TTL <= 0 {
		opts.TTL = DefaultTTL
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = DefaultSweepInterval
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.Clock == nil {
		opts.Clock = clock.System{}
	}
	if opts.Factory == nil {
		opts.Factory = func() *page.Controller { return page.New(page.Options{Clock: opts.Clock}) }
	}
	if opts.Logger == nil {
		opts.Logger = logging.Default()
	}
	return &Store{
		entries:  make(map[string]*entry),
		ttl:      opts.TTL,
		interval: opts.SweepInterval,
		maxPages: opts.MaxPages,
		clock:    opts.Clock,
		factory:  opts.Factory,
		metrics:  opts.Metrics,
		logger:   opts.Logger,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

// Mount creates a fresh page. A valid existing id is reused and the page
// previously mounted under it is torn down, so a reload starts clean. When
// the store is full the least recently seen page is evicted first.
func (s *Store) Mount(existingID string) (string, *page.Controller) {
	id := existingID
	if _, err := uuid.Parse(id); err != nil {
		id = uuid.NewString()
	}
	ctrl := s.factory()

	s.mu.Lock()
	old := s.entries[id]
	delete(s.entries, id)
	var evicted *page.Controller
	if len(s.entries) >= s.maxPages {
		evicted = s.evictOldestLocked()
	}
	s.entries[id] = &entry{page: ctrl, lastSeen: s.clock.Now()}
	n := len(s.entries)
	s.mu.Unlock()

	if old != nil {
		old.page.Teardown()
	}
	if evicted != nil {
		evicted.Teardown()
		s.logger.Debug("session: store full, evicted least recently seen page", "max_pages", s.maxPages)
	}
	s.metrics.SetActiveSessions(n)
	return id, ctrl
}

// evictOldestLocked removes the least recently seen entry. s.mu must be held.
func (s *Store) evictOldestLocked() *page.Controller {
	var (
		oldestID string
		oldest   *entry
	)
	for id, e := range s.entries {
		if oldest == nil || e.lastSeen.Before(oldest.lastSeen) {
			oldestID, oldest = id, e
		}
	}
	if oldest == nil {
		return nil
	}
	delete(s.entries, oldestID)
	return oldest.page
}

// Get returns the page for id and marks it active.
func (s *Store) Get(id string) (*page.Controller, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return nil, fmt.Errorf("session: get %q: %w", id, ErrNotFound)
	}
	e.lastSeen = s.clock.Now()
	return e.page, nil
}

// Unmount tears down and forgets the page for id.
func (s *Store) Unmount(id string) error {
	s.mu.Lock()
	e, ok := s.entries[id]
	if ok {
		delete(s.entries, id)
	}
	n := len(s.entries)
	s.mu.Unlock()

	if !ok {
		return fmt.Errorf("session: unmount %q: %w", id, ErrNotFound)
	}
	e.page.Teardown()
	s.metrics.SetActiveSessions(n)
	return nil
}

// Len is the number of mounted pages.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Sweep tears down every page idle for longer than the TTL as of now.
func (s *Store) Sweep(now time.Time) int {
	cutoff := now.Add(-s.ttl)
	var expired []*page.Controller

	s.mu.Lock()
	for id, e := range s.entries {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, e.page)
			delete(s.entries, id)
		}
	}
	n := len(s.entries)
	s.mu.Unlock()

	for _, p := range expired {
		p.Teardown()
	}
	if len(expired) > 0 {
		s.logger.Debug("session: evicted idle pages", "count", len(expired), "remaining", n)
		s.metrics.SetActiveSessions(n)
	}
	return len(expired)
}

// Start runs the eviction loop until Close.
func (s *Store) Start() {
	s.startOnce.Do(func() {
		go s.run()
	})
}

func (s *Store) run() {
	defer close(s.done)
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-s.stop:
			return
		case <-ticker.C:
			s.Sweep(s.clock.Now())
		}
	}
}

// Close stops the eviction loop and tears down every page.
func (s *Store) Close() {
	s.closeOnce.Do(func() {
		close(s.stop)
		// Never started: mark the loop done so a later Start is a no-op.
		s.startOnce.Do(func() { close(s.done) })
		<-s.done

		s.mu.Lock()
		entries := s.entries
		s.entries = make(map[string]*entry)
		s.mu.Unlock()

		for _, e := range entries {
			e.page.Teardown()
		}
		s.metrics.SetActiveSessions(0)
	})
}
