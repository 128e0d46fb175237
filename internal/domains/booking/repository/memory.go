package repository

import (
	"context"
	"micelio/internal/domains/booking/model"
	"slices"
	"sync"
)

// MemoryBackend is a process-local stand-in for a shared storage key. Every
// Snapshot it hands out sees the same value, and a save through one of them
// is reported as an external change to the others. Reports are delivered
// from a goroutine per handle, never from inside Save, and back-to-back
// saves may be coalesced into one report.
type MemoryBackend struct {
	mu      sync.Mutex
	data    []byte
	fail    error
	handles map[*memorySnapshot]struct{}
}

func NewMemoryBackend() *MemoryBackend {
	return &MemoryBackend{
		handles: map[*memorySnapshot]struct{}{},
	}
}

// Snapshot returns a new handle, the equivalent of one open browser tab.
func (m *MemoryBackend) Snapshot() Snapshot {
	handle := &memorySnapshot{
		backend: m,
		pending: make(chan struct{}, 1),
	}
	handle.watchers = newWatchers(handle.deliver)

	return handle
}

// SetRaw overwrites the stored bytes without notifying anyone.
func (m *MemoryBackend) SetRaw(data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = slices.Clone(data)
}

func (m *MemoryBackend) Raw() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()

	return slices.Clone(m.data)
}

// FailWith makes every Load and Save return err until called with nil.
func (m *MemoryBackend) FailWith(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fail = err
}

type memorySnapshot struct {
	backend  *MemoryBackend
	watchers *watchers
	pending  chan struct{}
}

func (s *memorySnapshot) Load(_ context.Context) ([]model.Booking, error) {
	s.backend.mu.Lock()
	data, fail := slices.Clone(s.backend.data), s.backend.fail
	s.backend.mu.Unlock()

	if fail != nil {
		return nil, fail
	}

	return Decode(data)
}

func (s *memorySnapshot) Save(_ context.Context, bookings []model.Booking) error {
	data, err := Encode(bookings)
	if err != nil {
		return err
	}

	s.backend.mu.Lock()
	if s.backend.fail != nil {
		err := s.backend.fail
		s.backend.mu.Unlock()

		return err
	}

	s.backend.data = data

	for handle := range s.backend.handles {
		if handle != s {
			handle.signal()
		}
	}
	s.backend.mu.Unlock()

	return nil
}

func (s *memorySnapshot) OnExternalChange(fn func()) func() {
	return s.watchers.add(fn)
}

// signal marks a change as pending without blocking the saving handle.
func (s *memorySnapshot) signal() {
	select {
	case s.pending <- struct{}{}:
	default:
	}
}

// deliver runs while the handle has watchers.
func (s *memorySnapshot) deliver() func() {
	s.backend.mu.Lock()
	s.backend.handles[s] = struct{}{}
	s.backend.mu.Unlock()

	done := make(chan struct{})
	stopped := make(chan struct{})

	go func() {
		defer close(stopped)

		for {
			select {
			case <-done:
				return
			case <-s.pending:
				s.watchers.fire()
			}
		}
	}()

	return func() {
		s.backend.mu.Lock()
		delete(s.backend.handles, s)
		s.backend.mu.Unlock()

		close(done)
		<-stopped
	}
}
