package repository

import (
	"context"
	"errors"
	"fmt"
	"micelio/infras/otel"
	"micelio/infras/s3"
	"micelio/internal/domains/booking/model"
	"micelio/shared/constant"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const defaultPollInterval = 30 * time.Second

type s3Snapshot struct {
	client   s3.S3
	key      string
	interval time.Duration
	otel     otel.Otel
	watchers *watchers

	mu       sync.Mutex
	lastETag string
}

// NewS3 keeps the collection in a single object. Other writers are detected
// by polling the object's ETag every interval.
func NewS3(client s3.S3, key string, interval time.Duration, otel otel.Otel) Snapshot {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	s := &s3Snapshot{
		client:   client,
		key:      key + ".json",
		interval: interval,
		otel:     otel,
	}
	s.watchers = newWatchers(s.poll)

	return s
}

func (s *s3Snapshot) Load(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".s3.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	body, etag, err := s.client.GetObject(ctx, s.key)
	if errors.Is(err, s3.ErrNotFound) {
		return []model.Booking{}, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to read bookings object: %w", err)
	}

	s.setETag(etag)

	return Decode(body)
}

func (s *s3Snapshot) Save(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".s3.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	body, err := Encode(bookings)
	if err != nil {
		return err
	}

	etag, err := s.client.PutObject(ctx, s.key, constant.ContentTypeJSON, body)
	if err != nil {
		return fmt.Errorf("failed to write bookings object: %w", err)
	}

	s.setETag(etag)

	return nil
}

func (s *s3Snapshot) OnExternalChange(fn func()) func() {
	return s.watchers.add(fn)
}

// check compares the current ETag with the last one seen through this
// snapshot and reports whether someone else replaced the object.
func (s *s3Snapshot) check(ctx context.Context) bool {
	etag, err := s.client.HeadObject(ctx, s.key)
	if errors.Is(err, s3.ErrNotFound) {
		etag = constant.Empty
	} else if err != nil {
		log.Warn().Err(err).Str("key", s.key).Msg("failed to poll bookings object")

		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if etag == s.lastETag {
		return false
	}

	s.lastETag = etag

	return true
}

func (s *s3Snapshot) setETag(etag string) {
	s.mu.Lock()
	s.lastETag = etag
	s.mu.Unlock()
}

func (s *s3Snapshot) poll() func() {
	ctx, cancel := context.WithCancel(context.Background())

	// baseline so an object that existed before polling started is not
	// reported as a change
	if s.currentETag() == constant.Empty {
		s.check(ctx)
	}

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		ticker := time.NewTicker(s.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if s.check(ctx) {
					s.watchers.fire()
				}
			}
		}
	}()

	return func() {
		cancel()
		wg.Wait()
	}
}

func (s *s3Snapshot) currentETag() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.lastETag
}
