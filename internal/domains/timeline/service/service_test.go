package service_test

import (
	"context"
	"errors"
	"fmt"
	"micelio/config"
	"micelio/infras/otel/mocks"
	bookingMocks "micelio/internal/domains/booking/mocks"
	"micelio/internal/domains/booking/model"
	roomMocks "micelio/internal/domains/room/mocks"
	roomModel "micelio/internal/domains/room/model"
	"micelio/internal/domains/timeline/dto"
	"micelio/internal/domains/timeline/service"
	cacheMocks "micelio/shared/cache/mocks"
	"micelio/shared/failure"
	"micelio/shared/timezone"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type fixture struct {
	svc      service.Timeline
	store    *bookingMocks.MockBookings
	room     *roomMocks.MockRoom
	cache    *cacheMocks.MockRedisCache
	onChange func([]model.Booking)
}

// timelineKey matches a cache key for the window start at one generation;
// the instance segment is random.
func timelineKey(generation int, start string) gomock.Matcher {
	return gomock.Cond(func(x any) bool {
		key, ok := x.(string)

		return ok &&
			strings.HasPrefix(key, "timeline:get:") &&
			strings.HasSuffix(key, fmt.Sprintf(":%d:%s", generation, start))
	})
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	ctrl := gomock.NewController(t)
	f := &fixture{
		store: bookingMocks.NewMockBookings(ctrl),
		room:  roomMocks.NewMockRoom(ctrl),
		cache: cacheMocks.NewMockRedisCache(ctrl),
	}

	f.store.EXPECT().Subscribe(gomock.Any()).DoAndReturn(func(fn func([]model.Booking)) func() {
		f.onChange = fn

		return func() {}
	})

	cfg := &config.Config{}
	cfg.Cache.TTL = 60
	cfg.Timeline.CellWidth = 32

	f.svc = service.New(f.store, f.room, cfg, f.cache, mocks.NewOtel())

	return f
}

func TestTimelineService_GetBuildsAndCaches(t *testing.T) {
	f := newFixture(t)

	saved := make(chan string, 1)

	f.cache.EXPECT().Get(gomock.Any(), timelineKey(0, "2024-07-01"), gomock.Any()).Return(errors.New("miss"))
	f.cache.EXPECT().Save(gomock.Any(), timelineKey(0, "2024-07-01"), gomock.Any(), 60).DoAndReturn(func(_ context.Context, key string, _ any, _ int) error {
		saved <- key

		return nil
	})
	f.room.EXPECT().GetAll(gomock.Any()).Return([]roomModel.Room{{Slug: "r1", Name: "Room 1"}}, nil)
	f.store.EXPECT().GetAll().Return([]model.Booking{
		{ID: "a", RoomSlug: "r1", StartDate: timezone.Date(2024, time.July, 1), EndDate: timezone.Date(2024, time.July, 3)},
	})

	res, err := f.svc.Get(context.Background(), "2024-07-20")
	require.NoError(t, err)

	assert.Equal(t, "2024-07-01", res.Start)
	assert.Equal(t, "2024-08-31", res.End)
	assert.Equal(t, 62, res.Days)
	assert.Equal(t, 32.0, res.CellWidth)
	require.Len(t, res.Rows, 1)
	require.Len(t, res.Chips, 1)
	assert.Equal(t, 16.0, res.Chips[0].Left)
	assert.Equal(t, 64.0, res.Chips[0].Width)
	assert.Equal(t, 1, res.Occupancy[0].Occupied)
	assert.Equal(t, 0, res.Occupancy[2].Occupied)

	select {
	case key := <-saved:
		assert.True(t, strings.HasPrefix(key, "timeline:get:"))
		assert.True(t, strings.HasSuffix(key, ":0:2024-07-01"))
	case <-time.After(time.Second):
		t.Fatal("timeline was not cached")
	}
}

func TestTimelineService_GetCacheHit(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Get(gomock.Any(), timelineKey(0, "2024-07-01"), gomock.Any()).DoAndReturn(func(_ context.Context, _ string, value any) error {
		value.(*dto.TimelineResponse).Start = "cached"

		return nil
	})

	res, err := f.svc.Get(context.Background(), "2024-07-01")
	require.NoError(t, err)
	assert.Equal(t, "cached", res.Start)
}

func TestTimelineService_InvalidStart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Get(context.Background(), "July")
	assert.Equal(t, http.StatusBadRequest, failure.GetCode(err))
}

func TestTimelineService_ChangeClearsCache(t *testing.T) {
	f := newFixture(t)

	f.cache.EXPECT().Clear(gomock.Any(), "timeline:get:*").Return(nil)

	require.NotNil(t, f.onChange)
	f.onChange(nil)
}

func TestTimelineService_RenderBeforeChangeIsNeverServed(t *testing.T) {
	f := newFixture(t)

	saved := make(chan string, 2)
	save := func(_ context.Context, key string, _ any, _ int) error {
		saved <- key

		return nil
	}

	f.room.EXPECT().GetAll(gomock.Any()).Return([]roomModel.Room{{Slug: "r1"}}, nil).Times(2)
	f.store.EXPECT().GetAll().Return(nil).Times(2)
	f.cache.EXPECT().Clear(gomock.Any(), "timeline:get:*").Return(nil)

	f.cache.EXPECT().Get(gomock.Any(), timelineKey(0, "2024-07-01"), gomock.Any()).Return(errors.New("miss"))
	f.cache.EXPECT().Save(gomock.Any(), timelineKey(0, "2024-07-01"), gomock.Any(), 60).DoAndReturn(save)

	_, err := f.svc.Get(context.Background(), "2024-07-01")
	require.NoError(t, err)

	// a booking change lands while the first render is still being written
	f.onChange(nil)

	var first string
	select {
	case first = <-saved:
	case <-time.After(time.Second):
		t.Fatal("timeline was not cached")
	}

	f.cache.EXPECT().Get(gomock.Any(), timelineKey(1, "2024-07-01"), gomock.Any()).Return(errors.New("miss"))
	f.cache.EXPECT().Save(gomock.Any(), timelineKey(1, "2024-07-01"), gomock.Any(), 60).DoAndReturn(save)

	_, err = f.svc.Get(context.Background(), "2024-07-01")
	require.NoError(t, err)

	select {
	case second := <-saved:
		assert.NotEqual(t, first, second)
	case <-time.After(time.Second):
		t.Fatal("timeline was not cached")
	}
}

func TestTimelineService_ZeroInsetIsKept(t *testing.T) {
	ctrl := gomock.NewController(t)
	bookings := bookingMocks.NewMockBookings(ctrl)
	rooms := roomMocks.NewMockRoom(ctrl)
	redisCache := cacheMocks.NewMockRedisCache(ctrl)

	bookings.EXPECT().Subscribe(gomock.Any()).Return(func() {})
	redisCache.EXPECT().Get(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("miss"))
	redisCache.EXPECT().Save(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	rooms.EXPECT().GetAll(gomock.Any()).Return([]roomModel.Room{{Slug: "r1"}}, nil)
	bookings.EXPECT().GetAll().Return([]model.Booking{
		{ID: "a", RoomSlug: "r1", StartDate: timezone.Date(2024, time.July, 1), EndDate: timezone.Date(2024, time.July, 3)},
		{ID: "b", RoomSlug: "r1", StartDate: timezone.Date(2024, time.July, 3), EndDate: timezone.Date(2024, time.July, 5)},
	})

	cfg := &config.Config{}
	cfg.Timeline.CellWidth = 32

	svc := service.New(bookings, rooms, cfg, redisCache, mocks.NewOtel())

	res, err := svc.Get(context.Background(), "2024-07-01")
	require.NoError(t, err)
	require.Len(t, res.Chips, 2)

	// without an inset the turnover neighbours meet at the shared midpoint
	assert.Equal(t, res.Chips[0].Left+res.Chips[0].Width, res.Chips[1].Left)
}
