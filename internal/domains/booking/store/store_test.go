package store_test

import (
	"context"
	"errors"
	"micelio/internal/domains/booking/mocks"
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/repository"
	"micelio/internal/domains/booking/store"
	"micelio/shared/metrics"
	"micelio/shared/timezone"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func draft(guest string, startDay, endDay int) model.Draft {
	return model.Draft{
		RoomSlug:  "dorm-6",
		GuestName: guest,
		StartDate: timezone.Date(2024, time.June, startDay),
		EndDate:   timezone.Date(2024, time.June, endDay),
		Color:     "#a3e635",
	}
}

func newStore(t *testing.T, snap repository.Snapshot) *store.Store {
	t.Helper()

	s := store.New(context.Background(), snap, metrics.NewBookingMetrics(prometheus.NewRegistry()))
	t.Cleanup(s.Close)

	return s
}

func TestStore_RoundTripPersistence(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()

	first := newStore(t, backend.Snapshot())
	added := first.Add(ctx, draft("Ana", 10, 15))

	assert.NotEmpty(t, added.ID)

	reloaded := newStore(t, backend.Snapshot())
	all := reloaded.GetAll()

	require.Len(t, all, 1)
	assert.Equal(t, added.ID, all[0].ID)
	assert.Equal(t, "dorm-6", all[0].RoomSlug)
	assert.Equal(t, "Ana", all[0].GuestName)
	assert.True(t, all[0].StartDate.Equal(timezone.Date(2024, time.June, 10)))
	assert.True(t, all[0].EndDate.Equal(timezone.Date(2024, time.June, 15)))
}

func TestStore_SubscriberFanOutOnDelete(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryBackend().Snapshot())

	keep := s.Add(ctx, draft("Ana", 1, 3))
	gone := s.Add(ctx, draft("Ben", 3, 5))

	var first, second [][]model.Booking
	s.Subscribe(func(b []model.Booking) { first = append(first, b) })
	s.Subscribe(func(b []model.Booking) { second = append(second, b) })

	assert.True(t, s.Delete(ctx, gone.ID))

	require.Len(t, first, 1)
	require.Len(t, second, 1)

	for _, got := range [][]model.Booking{first[0], second[0]} {
		require.Len(t, got, 1)
		assert.Equal(t, keep.ID, got[0].ID)
	}
}

func TestStore_SubscriberOrderAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryBackend().Snapshot())

	var calls []string
	unsubA := s.Subscribe(func([]model.Booking) { calls = append(calls, "a") })
	s.Subscribe(func([]model.Booking) { calls = append(calls, "b") })

	s.Add(ctx, draft("Ana", 1, 2))
	assert.Equal(t, []string{"a", "b"}, calls)

	unsubA()
	unsubA()

	s.Add(ctx, draft("Ben", 2, 3))
	assert.Equal(t, []string{"a", "b", "b"}, calls)
}

func TestStore_SubscribersGetIndependentCopies(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryBackend().Snapshot())

	s.Subscribe(func(b []model.Booking) { b[0].GuestName = "mutated" })

	var seen string
	s.Subscribe(func(b []model.Booking) { seen = b[0].GuestName })

	s.Add(ctx, draft("Ana", 1, 2))

	assert.Equal(t, "Ana", seen)
	assert.Equal(t, "Ana", s.GetAll()[0].GuestName)
}

func TestStore_UpdateAndDeleteMissing(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()
	s := newStore(t, backend.Snapshot())

	var calls int
	s.Subscribe(func([]model.Booking) { calls++ })

	assert.False(t, s.Update(ctx, model.Booking{ID: "missing"}))
	assert.False(t, s.Delete(ctx, "missing"))
	assert.Equal(t, 0, calls)
	assert.Empty(t, backend.Raw())
}

func TestStore_UpdateReplacesWholeRecord(t *testing.T) {
	ctx := context.Background()
	s := newStore(t, repository.NewMemoryBackend().Snapshot())

	added := s.Add(ctx, draft("Ana", 1, 4))
	added.GuestName = "Ana Maria"
	added.Notes = ""
	added.EndDate = timezone.Date(2024, time.June, 6).Add(10 * time.Hour)

	assert.True(t, s.Update(ctx, added))

	got, ok := s.Get(added.ID)
	require.True(t, ok)
	assert.Equal(t, "Ana Maria", got.GuestName)
	assert.True(t, got.EndDate.Equal(timezone.Date(2024, time.June, 6)))
}

func TestStore_CrossTabChange(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()

	tabA := newStore(t, backend.Snapshot())
	tabB := newStore(t, backend.Snapshot())

	var (
		mu       sync.Mutex
		notified [][]model.Booking
	)

	tabB.Subscribe(func(b []model.Booking) {
		mu.Lock()
		defer mu.Unlock()

		notified = append(notified, b)
	})

	added := tabA.Add(ctx, draft("Ana", 1, 2))

	require.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()

		return len(notified) == 1
	}, time.Second, 5*time.Millisecond)

	mu.Lock()
	require.Len(t, notified[0], 1)
	assert.Equal(t, added.ID, notified[0][0].ID)
	mu.Unlock()

	assert.Len(t, tabB.GetAll(), 1)
}

func TestStore_WritesSeeExternalChanges(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()

	tabA := newStore(t, backend.Snapshot())
	tabB := newStore(t, backend.Snapshot())

	tabA.Add(ctx, draft("Ana", 1, 2))
	require.Eventually(t, func() bool { return len(tabB.GetAll()) == 1 }, time.Second, 5*time.Millisecond)

	tabB.Add(ctx, draft("Ben", 3, 4))

	reloaded := newStore(t, backend.Snapshot())
	assert.Len(t, reloaded.GetAll(), 2)
}

// gatedSnapshot reads storage, then parks the next Load until released.
type gatedSnapshot struct {
	repository.Snapshot

	mu      sync.Mutex
	entered chan struct{}
	release chan struct{}
}

func (g *gatedSnapshot) arm() (entered, release chan struct{}) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.entered = make(chan struct{})
	g.release = make(chan struct{})

	return g.entered, g.release
}

func (g *gatedSnapshot) Load(ctx context.Context) ([]model.Booking, error) {
	bookings, err := g.Snapshot.Load(ctx)

	g.mu.Lock()
	entered, release := g.entered, g.release
	g.entered, g.release = nil, nil
	g.mu.Unlock()

	if entered != nil {
		close(entered)
		<-release
	}

	return bookings, err
}

func TestStore_ReloadKeepsConcurrentAdd(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()
	snap := &gatedSnapshot{Snapshot: backend.Snapshot()}

	s := newStore(t, snap)
	entered, release := snap.arm()

	done := make(chan struct{})
	go func() {
		defer close(done)
		s.Reload(ctx)
	}()

	<-entered
	ana := s.Add(ctx, draft("Ana", 1, 2))
	close(release)
	<-done

	_, ok := s.Get(ana.ID)
	require.True(t, ok, "acknowledged booking dropped by a stale reload")

	s.Add(ctx, draft("Ben", 3, 4))

	stored, err := repository.Decode(backend.Raw())
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestStore_ReloadFailureKeepsCollection(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()
	s := newStore(t, backend.Snapshot())

	added := s.Add(ctx, draft("Ana", 1, 2))

	var calls int
	s.Subscribe(func([]model.Booking) { calls++ })

	backend.FailWith(errors.New("storage unavailable"))
	s.Reload(ctx)

	assert.Equal(t, 0, calls)
	assert.Equal(t, []model.Booking{added}, s.GetAll())
}

func TestStore_ConcurrentWritesAcrossTabs(t *testing.T) {
	ctx := context.Background()
	backend := repository.NewMemoryBackend()

	tabA := newStore(t, backend.Snapshot())
	tabB := newStore(t, backend.Snapshot())

	const writers = 200

	var wg sync.WaitGroup
	for i := range writers {
		for _, tab := range []*store.Store{tabA, tabB} {
			wg.Add(1)

			go func() {
				defer wg.Done()
				tab.Add(ctx, draft("guest", i%28+1, i%28+2))
			}()
		}
	}

	finished := make(chan struct{})
	go func() {
		wg.Wait()
		close(finished)
	}()

	select {
	case <-finished:
	case <-time.After(10 * time.Second):
		t.Fatal("concurrent writes across two stores did not finish")
	}

	// once quiet, both tabs converge on whatever was written last
	require.Eventually(t, func() bool {
		stored, err := repository.Decode(backend.Raw())
		if err != nil {
			return false
		}

		return len(tabA.GetAll()) == len(stored) && len(tabB.GetAll()) == len(stored)
	}, 2*time.Second, 10*time.Millisecond)
}

func TestStore_LoadFailureFallsBackToEmpty(t *testing.T) {
	backend := repository.NewMemoryBackend()
	backend.SetRaw([]byte("{not json"))

	s := newStore(t, backend.Snapshot())

	assert.NotNil(t, s.GetAll())
	assert.Empty(t, s.GetAll())
}

func TestStore_SaveFailureKeepsChange(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)

	snap := mocks.NewMockSnapshot(ctrl)
	snap.EXPECT().Load(gomock.Any()).Return(nil, errors.New("storage disabled"))
	snap.EXPECT().OnExternalChange(gomock.Any()).Return(func() {})
	snap.EXPECT().Save(gomock.Any(), gomock.Any()).Return(errors.New("quota exceeded"))

	s := newStore(t, snap)

	var calls int
	s.Subscribe(func([]model.Booking) { calls++ })

	added := s.Add(ctx, draft("Ana", 1, 2))

	assert.Equal(t, 1, calls)
	assert.Equal(t, []model.Booking{added}, s.GetAll())
}

func TestStore_CloseStopsFeed(t *testing.T) {
	ctrl := gomock.NewController(t)

	var cancelled int

	snap := mocks.NewMockSnapshot(ctrl)
	snap.EXPECT().Load(gomock.Any()).Return([]model.Booking{}, nil)
	snap.EXPECT().OnExternalChange(gomock.Any()).Return(func() { cancelled++ })

	s := store.New(context.Background(), snap, nil)

	var calls int
	s.Subscribe(func([]model.Booking) { calls++ })

	s.Close()
	s.Close()

	assert.Equal(t, 1, cancelled)

	s.Reload(context.Background())
	assert.Equal(t, 0, calls)
}

func TestStore_NilSnapshotPanics(t *testing.T) {
	assert.Panics(t, func() {
		store.New(context.Background(), nil, nil)
	})
}
