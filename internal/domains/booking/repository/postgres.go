package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"micelio/infras/otel"
	"micelio/infras/postgres"
	"micelio/internal/domains/booking/model"
	"micelio/shared/constant"
	"micelio/shared/timezone"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/rs/zerolog/log"
)

const (
	snapshotTable       = "booking_snapshots"
	notifyChannel       = "booking_snapshots_changed"
	listenerMinInterval = 10 * time.Second
	listenerMaxInterval = time.Minute
)

const (
	querySelectSnapshot = `SELECT payload FROM booking_snapshots WHERE key = $1`
	queryUpsertSnapshot = `INSERT INTO booking_snapshots (key, payload, origin, updated_at)
		VALUES (:key, :payload, :origin, :updated_at)
		ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, origin = EXCLUDED.origin, updated_at = EXCLUDED.updated_at`
	queryNotifySnapshot = `SELECT pg_notify($1, $2)`
)

type snapshotRow struct {
	Key       string    `db:"key"`
	Payload   []byte    `db:"payload"`
	Origin    string    `db:"origin"`
	UpdatedAt time.Time `db:"updated_at"`
}

type changeNotice struct {
	Key    string `json:"key"`
	Origin string `json:"origin"`
}

type postgresSnapshot struct {
	db       *postgres.Connection
	key      string
	origin   string
	otel     otel.Otel
	watchers *watchers
}

// NewPostgres keeps the collection in one booking_snapshots row and uses
// LISTEN/NOTIFY to learn about saves from other processes.
func NewPostgres(db *postgres.Connection, key string, otel otel.Otel) Snapshot {
	s := &postgresSnapshot{
		db:     db,
		key:    key,
		origin: uuid.NewString(),
		otel:   otel,
	}
	s.watchers = newWatchers(s.listen)

	return s
}

func (s *postgresSnapshot) Load(ctx context.Context) (res []model.Booking, err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".postgres.Load")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, querySelectSnapshot)

	var payload []byte
	if err = s.db.Read.GetContext(ctx, &payload, querySelectSnapshot, s.key); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return []model.Booking{}, nil
		}

		return nil, fmt.Errorf("failed to select %s: %w", snapshotTable, err)
	}

	return Decode(payload)
}

func (s *postgresSnapshot) Save(ctx context.Context, bookings []model.Booking) (err error) {
	ctx, scope := s.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".postgres.Save")
	defer scope.End()
	defer scope.TraceIfError(err)

	scope.SetAttribute(constant.OtelQueryAttributeKey, queryUpsertSnapshot)

	payload, err := Encode(bookings)
	if err != nil {
		return err
	}

	notice, err := json.Marshal(changeNotice{Key: s.key, Origin: s.origin})
	if err != nil {
		return fmt.Errorf("failed to encode change notice: %w", err)
	}

	tx, err := s.db.Write.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(); rbErr != nil {
				log.Error().Err(rbErr).Msg("failed to rollback snapshot transaction")
			}
		}
	}()

	row := snapshotRow{
		Key:       s.key,
		Payload:   payload,
		Origin:    s.origin,
		UpdatedAt: timezone.Now(),
	}

	if _, err = tx.NamedExecContext(ctx, queryUpsertSnapshot, row); err != nil {
		return fmt.Errorf("failed to upsert %s: %w", snapshotTable, err)
	}

	if _, err = tx.ExecContext(ctx, queryNotifySnapshot, notifyChannel, string(notice)); err != nil {
		return fmt.Errorf("failed to notify snapshot change: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	return nil
}

func (s *postgresSnapshot) OnExternalChange(fn func()) func() {
	return s.watchers.add(fn)
}

// handle reports whether a notification concerns another writer of our key.
// A nil notification means the listener reconnected and may have missed
// events, so it counts as a change.
func (s *postgresSnapshot) handle(n *pq.Notification) bool {
	if n == nil {
		return true
	}

	var notice changeNotice
	if err := json.Unmarshal([]byte(n.Extra), &notice); err != nil {
		log.Warn().Err(err).Str("payload", n.Extra).Msg("ignoring malformed snapshot notification")

		return false
	}

	return notice.Key == s.key && notice.Origin != s.origin
}

func (s *postgresSnapshot) listen() func() {
	listener := pq.NewListener(s.db.WriteDSN, listenerMinInterval, listenerMaxInterval, func(ev pq.ListenerEventType, err error) {
		if err != nil {
			log.Error().Err(err).Int("event", int(ev)).Msg("snapshot listener event")
		}
	})

	if err := listener.Listen(notifyChannel); err != nil {
		log.Error().Err(err).Str("channel", notifyChannel).Msg("failed to listen for snapshot changes")
	}

	done := make(chan struct{})

	var wg sync.WaitGroup

	wg.Add(1)

	go func() {
		defer wg.Done()

		for {
			select {
			case <-done:
				return
			case n, ok := <-listener.Notify:
				if !ok {
					return
				}

				if s.handle(n) {
					s.watchers.fire()
				}
			}
		}
	}()

	return func() {
		close(done)

		if err := listener.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close snapshot listener")
		}

		wg.Wait()
	}
}
