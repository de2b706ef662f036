// Package state holds the per-folder collapse flags and writes them through
// to a storage backend after every change.
package state

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	"github.com/nikbrunner/bmdash/internal/model"
	"github.com/nikbrunner/bmdash/internal/storage"
)

// Key is the single storage key holding the whole collapse map.
const Key = "collapsedStates"

// writeTimeout bounds a single background write.
const writeTimeout = 5 * time.Second

// Store is the in-memory collapse map with write-through persistence.
// Writes are fire-and-forget: SetCollapsed returns before the backend is
// updated and write failures are only logged.
type Store struct {
	backend storage.Storage
	logger  *zap.Logger

	mu     sync.Mutex
	states model.CollapseStates
	seq    uint64

	writeMu sync.Mutex
	written uint64 // seq of the newest snapshot that reached the backend
	pending sync.WaitGroup
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for silent degradations.
func WithLogger(l *zap.Logger) Option {
	return func(s *Store) {
		if l != nil {
			s.logger = l
		}
	}
}

// New creates an empty Store over backend. Call Load before reading.
func New(backend storage.Storage, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		logger:  zap.NewNop(),
		states:  model.CollapseStates{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load replaces the in-memory map with the persisted one and returns a copy.
// A missing, unreadable or malformed blob yields an empty map; the error is
// logged and never returned to the caller.
func (s *Store) Load(ctx context.Context) model.CollapseStates {
	states := model.CollapseStates{}

	data, err := s.backend.Get(ctx, Key)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		s.logger.Debug("no persisted collapse state")
	case err != nil:
		s.logger.Warn("read collapse state", zap.Error(err))
	default:
		if err := json.Unmarshal(data, &states); err != nil {
			s.logger.Warn("decode collapse state", zap.Error(err))
			states = model.CollapseStates{}
		}
		if states == nil {
			states = model.CollapseStates{}
		}
	}

	s.mu.Lock()
	s.states = states
	s.mu.Unlock()

	s.logger.Debug("collapse state loaded", zap.Int("entries", len(states)))
	return states.Clone()
}

// IsCollapsed reports the flag for id. Unknown ids are expanded.
func (s *Store) IsCollapsed(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states[id]
}

// SetCollapsed updates id and schedules a full-map write.
func (s *Store) SetCollapsed(id string, collapsed bool) {
	s.mu.Lock()
	s.states[id] = collapsed
	s.seq++
	seq := s.seq
	snapshot := s.states.Clone()
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.write(seq, snapshot)
	}()
}

// Toggle flips id, persists it and returns the new value.
func (s *Store) Toggle(id string) bool {
	collapsed := !s.IsCollapsed(id)
	s.SetCollapsed(id, collapsed)
	return collapsed
}

// Snapshot returns a copy of the current map.
func (s *Store) Snapshot() model.CollapseStates {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.states.Clone()
}

// Reset clears every flag and persists the empty map.
func (s *Store) Reset() {
	s.mu.Lock()
	s.states = model.CollapseStates{}
	s.seq++
	seq := s.seq
	s.mu.Unlock()

	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		s.write(seq, model.CollapseStates{})
	}()
}

// Wait blocks until every scheduled write has finished.
func (s *Store) Wait() {
	s.pending.Wait()
}

// write persists snapshot unless a newer one has already landed.
func (s *Store) write(seq uint64, snapshot model.CollapseStates) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if seq <= s.written {
		return
	}

	data, err := json.Marshal(snapshot)
	if err != nil {
		s.logger.Warn("encode collapse state", zap.Error(err))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), writeTimeout)
	defer cancel()

	if err := s.backend.Set(ctx, Key, data); err != nil {
		// Dropped: the next toggle rewrites the full map anyway.
		s.logger.Warn("write collapse state", zap.Uint64("seq", seq), zap.Error(err))
		return
	}
	s.written = seq
}
