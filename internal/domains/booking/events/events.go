// Package events publishes booking mutations to a message broker so that
// systems outside the timeline can follow reservations.
package events

//go:generate go run go.uber.org/mock/mockgen -source=./events.go -destination=../mocks/events_mock.go -package=mocks

import (
	"context"
	"micelio/config"
	"micelio/infras/kafka"
	"micelio/internal/domains/booking/model/dto"
	"micelio/shared/constant"
	"micelio/shared/logger"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type Type string

const (
	BookingCreated Type = "booking.created"
	BookingUpdated Type = "booking.updated"
	BookingDeleted Type = "booking.deleted"
)

const sendTimeout = 10 * time.Second

type Event struct {
	Type       Type                 `json:"type"`
	ID         string               `json:"id"`
	Booking    *dto.BookingResponse `json:"booking,omitempty"`
	OccurredAt time.Time            `json:"occurred_at"`
}

func NewEvent(eventType Type, booking dto.BookingResponse) Event {
	return Event{
		Type:       eventType,
		ID:         booking.ID,
		Booking:    &booking,
		OccurredAt: time.Now().UTC(),
	}
}

// Deleted carries only the id, the booking is gone by the time it is sent.
func Deleted(id string) Event {
	return Event{
		Type:       BookingDeleted,
		ID:         id,
		OccurredAt: time.Now().UTC(),
	}
}

type Publisher interface {
	Publish(ctx context.Context, event Event)
}

type noop struct{}

func (noop) Publish(context.Context, Event) {}

// Noop returns a publisher that drops every event.
func Noop() Publisher {
	return noop{}
}

// Broker queues events and sends them from a single goroutine, in the order
// they were published. Publish never blocks: when the queue is full the event
// is dropped and logged.
type Broker struct {
	client kafka.Client
	topic  string
	log    zerolog.Logger

	mu     sync.Mutex
	queue  chan Event
	closed bool
	done   chan struct{}
}

func NewBroker(client kafka.Client, topic string, size int) *Broker {
	if client == nil {
		panic("events: nil kafka client")
	}

	if topic == constant.Empty {
		topic = constant.DefaultEventsTopic
	}

	b := &Broker{
		client: client,
		topic:  topic,
		log:    logger.Component("booking_events"),
		queue:  make(chan Event, size),
		done:   make(chan struct{}),
	}

	go b.run()

	return b
}

func (b *Broker) Publish(_ context.Context, event Event) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		b.log.Warn().Str("type", string(event.Type)).Msg("event dropped, publisher closed")

		return
	}

	select {
	case b.queue <- event:
	default:
		b.log.Warn().Str("type", string(event.Type)).Str("id", event.ID).Msg("event dropped, queue full")
	}
}

// Close stops accepting events and waits until the queued ones are sent.
func (b *Broker) Close() {
	b.mu.Lock()
	if !b.closed {
		b.closed = true
		close(b.queue)
	}
	b.mu.Unlock()

	<-b.done
}

func (b *Broker) run() {
	defer close(b.done)

	for event := range b.queue {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)

		err := b.client.SendMessages(ctx, b.topic, kafka.Message{Key: event.ID, Value: event})
		if err != nil {
			b.log.Error().Err(err).Str("type", string(event.Type)).Str("id", event.ID).Msg("failed to publish booking event")
		}

		cancel()
	}
}

// Provide returns the kafka backed publisher when brokers are configured and
// a no-op publisher otherwise.
func Provide(cfg *config.Config) (Publisher, func()) {
	if !kafka.Enabled(cfg) {
		return Noop(), func() {}
	}

	client, closeClient := kafka.Provide(cfg)
	broker := NewBroker(client, cfg.External.Kafka.Topic, constant.EventQueueSize)

	return broker, func() {
		broker.Close()
		closeClient()
	}
}
