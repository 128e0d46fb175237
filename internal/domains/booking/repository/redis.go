package repository

import (
	"context"
	"errors"
	"fmt"
	"micelio/infras/otel"
	"micelio/internal/domains/booking/model"
	"micelio/shared/constant"
	"sync"
	"time"

	"github.com/google/uuid"
	goRedis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	changedChannelSuffix = ":changed"
	subscribeTimeout     = 5 * time.Second
)

type redisSnapshot struct {
	client   *goRedis.Client
	key      string
	channel  string
	origin   string
	otel     otel.Otel
	watchers *watchers
}

// NewRedis stores the collection as a string value under key and announces
// every save on "<key>:changed" with the writer's origin id.
func NewRedis(client *goRedis.Client, key string, otel otel.Otel) Snapshot {
	s := &redisSnapshot{
		client:  client,
		key:     key,
		channel: key + changedChannelSuffix,
		origin:  uuid.NewString(),
		otel:    otel,
	}
	s.watchers = newWatchers(s.subscribe)

	return s
}

func (s *redisSnapshot) Load(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".redis.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, "GET "+s.key)

	data, err := s.client.Get(ctx, s.key).Bytes()
	if errors.Is(err, goRedis.Nil) {
		return []model.Booking{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read bookings from redis: %w", err)
	}

	return Decode(data)
}

func (s *redisSnapshot) Save(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".redis.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, "SET "+s.key)

	data, err := Encode(bookings)
	if err != nil {
		return err
	}

	_, err = s.client.TxPipelined(ctx, func(pipe goRedis.Pipeliner) error {
		pipe.Set(ctx, s.key, data, 0)
		pipe.Publish(ctx, s.channel, s.origin)

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to write bookings to redis: %w", err)
	}

	return nil
}

func (s *redisSnapshot) OnExternalChange(fn func()) func() {
	return s.watchers.add(fn)
}

// subscribe waits for the subscription to be confirmed so a save issued right
// after OnExternalChange returns is not missed.
func (s *redisSnapshot) subscribe() func() {
	ctx, cancel := context.WithCancel(context.Background())

	pubsub := s.client.Subscribe(ctx, s.channel)

	receiveCtx, receiveCancel := context.WithTimeout(ctx, subscribeTimeout)
	defer receiveCancel()

	if _, err := pubsub.Receive(receiveCtx); err != nil {
		log.Error().Err(err).Str("channel", s.channel).Msg("failed to subscribe to booking changes")
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for msg := range pubsub.Channel() {
			if msg.Payload == s.origin {
				continue
			}

			log.Debug().Str("channel", s.channel).Str("origin", msg.Payload).Msg("bookings changed by another writer")
			s.watchers.fire()
		}
	}()

	return func() {
		cancel()

		if err := pubsub.Close(); err != nil {
			log.Error().Err(err).Str("channel", s.channel).Msg("failed to close booking change subscription")
		}

		wg.Wait()
	}
}
