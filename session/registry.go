package session

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type entry struct {
	s    *Session
	seen time.Time
}

// Registry is an in-memory set of sessions keyed by id. Sessions idle for
// longer than the TTL are dropped unless an export is in flight.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*entry
	ttl      time.Duration
	stop     chan struct{}
	once     sync.Once
}

// NewRegistry creates a Registry and starts its expiry sweep.
func NewRegistry(ttl time.Duration) *Registry {
	r := &Registry{
		sessions: make(map[string]*entry),
		ttl:      ttl,
		stop:     make(chan struct{}),
	}
	go r.cleanup()
	return r
}

func (r *Registry) cleanup() {
	interval := r.ttl / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-r.stop:
			return
		case now := <-ticker.C:
			r.sweep(now)
		}
	}
}

func (r *Registry) sweep(now time.Time) int {
	cutoff := now.Add(-r.ttl)
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for id, e := range r.sessions {
		if e.seen.Before(cutoff) && !e.s.Exporting() {
			delete(r.sessions, id)
			n++
		}
	}
	return n
}

// Close stops the expiry sweep.
func (r *Registry) Close() {
	r.once.Do(func() { close(r.stop) })
}

// Get returns the session for id and marks it as seen.
func (r *Registry) Get(id string) (*Session, bool) {
	if id == "" {
		return nil, false
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	e, ok := r.sessions[id]
	if !ok {
		return nil, false
	}
	e.seen = time.Now()
	return e.s, true
}

// Create registers a fresh sample session under a new random id.
func (r *Registry) Create() (string, *Session) {
	id := uuid.NewString()
	s := New()
	r.mu.Lock()
	r.sessions[id] = &entry{s: s, seen: time.Now()}
	r.mu.Unlock()
	return id, s
}

// GetOrCreate returns the session for id, creating one under a new id when
// id is unknown or expired. created reports which happened.
func (r *Registry) GetOrCreate(id string) (sid string, s *Session, created bool) {
	if s, ok := r.Get(id); ok {
		return id, s, false
	}
	sid, s = r.Create()
	return sid, s, true
}

// Len returns the number of live sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
