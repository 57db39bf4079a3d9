// Package session holds the editable state of one bulletin. Every update
// publishes a fresh immutable snapshot, so a render or export that holds a
// snapshot never observes a later edit.
package session

import (
	"sync"
	"sync/atomic"

	"github.com/eringen/instantbulletin/document"
	"github.com/eringen/instantbulletin/layout"
	"github.com/eringen/instantbulletin/pagination"
	"github.com/eringen/instantbulletin/style"
)

// State is one immutable snapshot. Callers must not modify the slices or
// pointers reachable from it.
type State struct {
	Event  document.EventData `json:"event" yaml:"event"`
	Config style.Config       `json:"config" yaml:"config"`
	// Version increases with every successful update.
	Version uint64 `json:"version" yaml:"-"`
}

// Tree renders the snapshot.
func (st State) Tree() layout.Tree {
	return pagination.Assemble(st.Event, st.Config)
}

// Session is a copy-on-write state holder. Reads never block; writers are
// serialized.
type Session struct {
	mu        sync.Mutex
	state     atomic.Pointer[State]
	exporting atomic.Int32
}

// New returns a session seeded with the sample bulletin.
func New() *Session {
	return NewWith(document.Default(), style.Default())
}

// NewWith returns a session holding data and cfg.
func NewWith(data document.EventData, cfg style.Config) *Session {
	s := &Session{}
	cfg = cfg.Normalize()
	data = pagination.Sync(data.Clone(), 1, cfg.PageCount)
	s.state.Store(&State{Event: data, Config: cfg})
	return s
}

// Snapshot returns the current state.
func (s *Session) Snapshot() State {
	return *s.state.Load()
}

func (s *Session) update(fn func(State) (State, error)) (State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prev := *s.state.Load()
	next, err := fn(prev)
	if err != nil {
		return prev, err
	}
	next.Version = prev.Version + 1
	s.state.Store(&next)
	return next, nil
}

// UpdateEventData merges p into the document. If p replaces the page list
// with a shorter one, empty records are appended to cover the page count.
func (s *Session) UpdateEventData(p document.EventPatch) State {
	st, _ := s.update(func(st State) (State, error) {
		st.Event = st.Event.Apply(p)
		st.Event = pagination.Sync(st.Event, len(st.Event.AdditionalPages)+1, st.Config.PageCount)
		return st, nil
	})
	return st
}

// UpdateConfig merges p into the configuration. Raising the page count
// appends empty supplemental pages; lowering it keeps them.
func (s *Session) UpdateConfig(p style.Patch) State {
	st, _ := s.update(func(st State) (State, error) {
		prev := st.Config.PageCount
		st.Config = st.Config.Apply(p).Normalize()
		st.Event = pagination.Sync(st.Event, prev, st.Config.PageCount)
		return st, nil
	})
	return st
}

// UpdatePage patches the text of supplemental page i (array index).
func (s *Session) UpdatePage(i int, p document.PagePatch) (State, error) {
	return s.update(func(st State) (State, error) {
		ev, err := st.Event.WithPage(i, p)
		st.Event = ev
		return st, err
	})
}

// SetImage replaces the image in slot; nil empties it.
func (s *Session) SetImage(slot document.Slot, img *document.ImageMetadata) (State, error) {
	return s.update(func(st State) (State, error) {
		ev, err := st.Event.WithImage(slot, img)
		st.Event = ev
		return st, err
	})
}

// FrameImage adjusts the fit, zoom or pan of the image in slot.
func (s *Session) FrameImage(slot document.Slot, p document.ImagePatch) (State, error) {
	return s.update(func(st State) (State, error) {
		ev, err := st.Event.FrameImage(slot, p)
		st.Event = ev
		return st, err
	})
}

// BeginExport returns the snapshot to export and marks the session busy
// until done is called.
func (s *Session) BeginExport() (st State, done func()) {
	s.exporting.Add(1)
	var once sync.Once
	return s.Snapshot(), func() {
		once.Do(func() { s.exporting.Add(-1) })
	}
}

// Exporting reports whether an export is in flight.
func (s *Session) Exporting() bool {
	return s.exporting.Load() > 0
}
