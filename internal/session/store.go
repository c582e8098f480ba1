package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/neexbeast/islandhop/internal/catalog"
)

// DefaultIdleTTL is how long a session survives without being touched.
const DefaultIdleTTL = 2 * time.Hour

// ErrNotFound is returned for an unknown or expired session ID.
var ErrNotFound = errors.New("session not found")

type entry struct {
	mu      sync.Mutex
	s       *Session
	touched atomic.Int64 // unix nanoseconds
}

// Store keeps sessions in process memory. Calls on the same session are
// serialized so edits apply one at a time in arrival order. Sessions idle
// for longer than the TTL are dropped on the next sweep.
type Store struct {
	cfg     Config
	idleTTL time.Duration
	now     func() time.Time

	mu       sync.RWMutex
	sessions map[string]*entry
}

// NewStore constructs an empty Store with DefaultIdleTTL.
func NewStore(cfg Config) *Store {
	return &Store{
		cfg:      cfg,
		idleTTL:  DefaultIdleTTL,
		now:      time.Now,
		sessions: make(map[string]*entry),
	}
}

// WithIdleTTL returns the store with a custom idle TTL. A TTL of zero or
// less disables expiry.
func (st *Store) WithIdleTTL(ttl time.Duration) *Store {
	st.idleTTL = ttl
	return st
}

// WithClock replaces the clock used for idle tracking.
func (st *Store) WithClock(now func() time.Time) *Store {
	st.now = now
	return st
}

// Create registers a new session. A nil snapshot or a non-nil loadErr
// yields a session in the data-unavailable state. Expired sessions are
// swept first.
func (st *Store) Create(snap *catalog.Snapshot, loadErr error) View {
	st.Sweep()

	id := uuid.NewString()

	var s *Session
	if snap == nil || loadErr != nil {
		if loadErr == nil {
			loadErr = catalog.ErrDataUnavailable
		}
		s = Unavailable(id, loadErr)
	} else {
		s = New(id, snap, st.cfg)
	}

	e := &entry{s: s}
	e.touched.Store(st.now().UnixNano())

	st.mu.Lock()
	st.sessions[id] = e
	st.mu.Unlock()

	return s.View()
}

// Do runs fn with exclusive access to the session and marks it as used.
func (st *Store) Do(id string, fn func(*Session) error) error {
	st.mu.RLock()
	e, ok := st.sessions[id]
	st.mu.RUnlock()
	if !ok || st.expired(e, st.now()) {
		return ErrNotFound
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	e.touched.Store(st.now().UnixNano())
	return fn(e.s)
}

// Delete drops a session. Deleting an unknown session is not an error.
func (st *Store) Delete(id string) {
	st.mu.Lock()
	delete(st.sessions, id)
	st.mu.Unlock()
}

// Sweep drops every session idle for longer than the TTL and returns how
// many were removed.
func (st *Store) Sweep() int {
	if st.idleTTL <= 0 {
		return 0
	}
	now := st.now()

	st.mu.Lock()
	defer st.mu.Unlock()
	n := 0
	for id, e := range st.sessions {
		if st.expired(e, now) {
			delete(st.sessions, id)
			n++
		}
	}
	return n
}

// RunSweeper calls Sweep every interval until ctx is cancelled.
func (st *Store) RunSweeper(ctx context.Context, interval time.Duration, log *slog.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := st.Sweep(); n > 0 {
				log.Info("expired sessions swept", "count", n, "remaining", st.Len())
			}
		}
	}
}

// Len returns the number of stored sessions, including any not yet swept.
func (st *Store) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

func (st *Store) expired(e *entry, now time.Time) bool {
	if st.idleTTL <= 0 {
		return false
	}
	return now.Sub(time.Unix(0, e.touched.Load())) > st.idleTTL
}
