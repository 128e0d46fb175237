// Package store holds the authoritative booking collection of one process and
// mirrors it to a repository.Snapshot.
//
// Every mutation rewrites the whole snapshot and then notifies subscribers
// with a full copy of the collection. Storage failures are logged and never
// returned. A failed initial load yields an empty collection, a failed reload
// keeps the current one and a failed save keeps the in-memory change. The
// store does not check for conflicts.
package store

//go:generate go run go.uber.org/mock/mockgen -source=./store.go -destination=../mocks/store_mock.go -package=mocks

import (
	"context"
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/repository"
	"micelio/shared/logger"
	"micelio/shared/metrics"
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	operationLoad = "load"
	operationSave = "save"
)

const maxReloadAttempts = 3

// Bookings is the store surface used by services and handlers.
type Bookings interface {
	GetAll() []model.Booking
	Get(id string) (model.Booking, bool)
	Add(ctx context.Context, draft model.Draft) model.Booking
	Update(ctx context.Context, booking model.Booking) bool
	Delete(ctx context.Context, id string) bool
	Subscribe(fn func([]model.Booking)) (unsubscribe func())
}

type subscriber struct {
	id int
	fn func([]model.Booking)
}

type Store struct {
	snapshot repository.Snapshot
	metrics  *metrics.BookingMetrics
	log      zerolog.Logger

	mu          sync.Mutex
	bookings    []model.Booking
	subscribers []subscriber
	nextSubID   int
	version     uint64
	cancelFeed  func()
	closed      bool

	// serializes delivery so a newer collection is never followed by an
	// older one
	notifyMu  sync.Mutex
	delivered uint64
}

// New loads the collection from snapshot and starts following external
// changes. Subscriber callbacks run synchronously after the mutation that
// caused them and must not call Add, Update or Delete themselves.
func New(ctx context.Context, snapshot repository.Snapshot, m *metrics.BookingMetrics) *Store {
	if snapshot == nil {
		panic("store: nil snapshot")
	}

	s := &Store{
		snapshot: snapshot,
		metrics:  m,
		log:      logger.Component("booking_store"),
	}

	s.bookings = s.load(ctx)
	s.cancelFeed = snapshot.OnExternalChange(func() {
		s.Reload(context.Background())
	})

	return s
}

// Provide builds the process-wide store for dependency injection. The
// returned cleanup detaches it from the storage change feed.
func Provide(snapshot repository.Snapshot, m *metrics.BookingMetrics) (*Store, func()) {
	s := New(context.Background(), snapshot, m)

	return s, s.Close
}

func (s *Store) GetAll() []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	return slices.Clone(s.bookings)
}

func (s *Store) Get(id string) (model.Booking, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx == -1 {
		return model.Booking{}, false
	}

	return s.bookings[idx], true
}

// Add assigns a fresh id, appends the booking and persists the collection.
func (s *Store) Add(ctx context.Context, draft model.Draft) model.Booking {
	booking := draft.WithID(uuid.NewString())

	s.mu.Lock()
	s.bookings = append(s.bookings, booking)
	version, list, subs := s.commit(ctx)
	s.mu.Unlock()

	s.notify(version, list, subs)

	return booking
}

// Update replaces the booking with the same id. It reports false, without
// writing or notifying, when no such booking exists.
func (s *Store) Update(ctx context.Context, booking model.Booking) bool {
	s.mu.Lock()
	idx := s.indexOf(booking.ID)
	if idx == -1 {
		s.mu.Unlock()

		return false
	}

	s.bookings[idx] = booking.Normalize()
	version, list, subs := s.commit(ctx)
	s.mu.Unlock()

	s.notify(version, list, subs)

	return true
}

// Delete removes the booking with id. It reports false and does nothing when
// no such booking exists.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	idx := s.indexOf(id)
	if idx == -1 {
		s.mu.Unlock()

		return false
	}

	s.bookings = slices.Delete(s.bookings, idx, idx+1)
	version, list, subs := s.commit(ctx)
	s.mu.Unlock()

	s.notify(version, list, subs)

	return true
}

// Subscribe registers fn. Callbacks are invoked in registration order.
func (s *Store) Subscribe(fn func([]model.Booking)) func() {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})
	s.metrics.SetSubscribers(len(s.subscribers))
	s.mu.Unlock()

	var once sync.Once

	return func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()

			s.subscribers = slices.DeleteFunc(s.subscribers, func(sub subscriber) bool {
				return sub.id == id
			})
			s.metrics.SetSubscribers(len(s.subscribers))
		})
	}
}

// Reload replaces the collection with what the snapshot holds and notifies.
// A load that raced with a local mutation is discarded and retried, so an
// acknowledged write is never replaced by an older snapshot. A failed load
// keeps the current collection.
func (s *Store) Reload(ctx context.Context) {
	for attempt := 1; ; attempt++ {
		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()

			return
		}
		seen := s.version
		s.mu.Unlock()

		bookings, ok := s.fetch(ctx)
		if !ok {
			return
		}

		s.mu.Lock()
		if s.closed {
			s.mu.Unlock()

			return
		}

		if s.version != seen {
			s.mu.Unlock()

			if attempt < maxReloadAttempts {
				continue
			}

			// every local commit has already been saved over storage
			s.log.Warn().Int("attempts", attempt).Msg("skipped reload, collection kept changing locally")

			return
		}

		s.bookings = bookings
		s.version++
		version, list, subs := s.version, slices.Clone(s.bookings), slices.Clone(s.subscribers)
		s.mu.Unlock()

		s.log.Debug().Int("bookings", len(list)).Msg("reloaded bookings after external change")

		s.notify(version, list, subs)

		return
	}
}

// Close stops following external changes and drops all subscribers.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()

		return
	}

	s.closed = true
	s.subscribers = nil
	cancel := s.cancelFeed
	s.mu.Unlock()

	s.metrics.SetSubscribers(0)

	if cancel != nil {
		cancel()
	}
}

// commit persists the current collection and captures what to deliver.
// Callers hold s.mu, which keeps saves in mutation order.
func (s *Store) commit(ctx context.Context) (uint64, []model.Booking, []subscriber) {
	if err := s.snapshot.Save(ctx, s.bookings); err != nil {
		s.log.Error().Err(err).Int("bookings", len(s.bookings)).Msg("failed to persist bookings, keeping in-memory change")
		s.metrics.ObserveStorageFailure(operationSave)
	}

	s.version++

	return s.version, slices.Clone(s.bookings), slices.Clone(s.subscribers)
}

func (s *Store) notify(version uint64, bookings []model.Booking, subs []subscriber) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	if version <= s.delivered {
		return
	}

	s.delivered = version

	for _, sub := range subs {
		sub.fn(slices.Clone(bookings))
	}
}

func (s *Store) load(ctx context.Context) []model.Booking {
	bookings, ok := s.fetch(ctx)
	if !ok {
		return []model.Booking{}
	}

	return bookings
}

func (s *Store) fetch(ctx context.Context) ([]model.Booking, bool) {
	bookings, err := s.snapshot.Load(ctx)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to load bookings")
		s.metrics.ObserveStorageFailure(operationLoad)

		return nil, false
	}

	s.log.Info().Int("bookings", len(bookings)).Msg("loaded bookings")

	return bookings, true
}

func (s *Store) indexOf(id string) int {
	return slices.IndexFunc(s.bookings, func(b model.Booking) bool {
		return b.ID == id
	})
}
