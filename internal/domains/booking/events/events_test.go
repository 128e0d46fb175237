package events_test

import (
	"context"
	"errors"
	"micelio/config"
	"micelio/infras/kafka"
	kafkaMocks "micelio/infras/kafka/mocks"
	"micelio/internal/domains/booking/events"
	"micelio/internal/domains/booking/model/dto"
	"micelio/shared/constant"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestBroker_SendsInOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	var keys []string

	client.EXPECT().SendMessages(gomock.Any(), constant.DefaultEventsTopic, gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			if assert.Len(t, messages, 1) {
				keys = append(keys, messages[0].Key)
			}

			return nil
		}).Times(3)

	broker := events.NewBroker(client, "", 8)

	broker.Publish(context.Background(), events.NewEvent(events.BookingCreated, dto.BookingResponse{ID: "a"}))
	broker.Publish(context.Background(), events.NewEvent(events.BookingUpdated, dto.BookingResponse{ID: "b"}))
	broker.Publish(context.Background(), events.Deleted("c"))
	broker.Close()

	assert.Equal(t, []string{"a", "b", "c"}, keys)

	// after close nothing reaches the client
	broker.Publish(context.Background(), events.Deleted("d"))
	broker.Close()
}

func TestBroker_ContinuesAfterSendError(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	gomock.InOrder(
		client.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(errors.New("broker down")),
		client.EXPECT().SendMessages(gomock.Any(), "bookings", gomock.Any()).Return(nil),
	)

	broker := events.NewBroker(client, "bookings", 8)
	broker.Publish(context.Background(), events.Deleted("a"))
	broker.Publish(context.Background(), events.Deleted("b"))
	broker.Close()
}

func TestBroker_DropsWhenQueueFull(t *testing.T) {
	ctrl := gomock.NewController(t)
	client := kafkaMocks.NewMockClient(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})

	var sent []string

	client.EXPECT().SendMessages(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, messages ...kafka.Message) error {
			if len(sent) == 0 {
				close(started)
				<-release
			}

			sent = append(sent, messages[0].Key)

			return nil
		}).Times(2)

	broker := events.NewBroker(client, "bookings", 1)

	broker.Publish(context.Background(), events.Deleted("first"))
	<-started

	broker.Publish(context.Background(), events.Deleted("queued"))
	broker.Publish(context.Background(), events.Deleted("dropped"))

	close(release)
	broker.Close()

	assert.Equal(t, []string{"first", "queued"}, sent)
}

func TestNewEvent(t *testing.T) {
	event := events.NewEvent(events.BookingCreated, dto.BookingResponse{ID: "a", RoomSlug: "dorm-6"})

	assert.Equal(t, "a", event.ID)
	require.NotNil(t, event.Booking)
	assert.Equal(t, "dorm-6", event.Booking.RoomSlug)
	assert.False(t, event.OccurredAt.IsZero())

	deleted := events.Deleted("a")
	assert.Equal(t, events.BookingDeleted, deleted.Type)
	assert.Nil(t, deleted.Booking)
}

func TestProvide_NoBrokers(t *testing.T) {
	cfg := &config.Config{}

	publisher, cleanup := events.Provide(cfg)
	defer cleanup()

	assert.Equal(t, events.Noop(), publisher)
	publisher.Publish(context.Background(), events.Deleted("a"))
}
