package booking

import (
	"micelio/internal/domains/booking/model"
	"micelio/internal/domains/booking/model/dto"
	"micelio/internal/domains/booking/store"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	streamWriteWait  = 10 * time.Second
	streamPongWait   = 60 * time.Second
	streamPingPeriod = streamPongWait * 9 / 10
)

// StreamMessage is pushed on connect and after every change.
type StreamMessage struct {
	Type     string                `json:"type"`
	Bookings []dto.BookingResponse `json:"bookings"`
}

// Stream fans store notifications out to websocket clients. A slow client
// only ever gets the latest collection; intermediate ones are dropped.
type Stream struct {
	store    store.Bookings
	upgrader websocket.Upgrader
}

func NewStream(store store.Bookings) *Stream {
	return &Stream{
		store: store,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

func (s *Stream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade booking stream")

		return
	}
	defer conn.Close()

	updates := make(chan []model.Booking, 1)
	push := func(bookings []model.Booking) {
		select {
		case <-updates:
		default:
		}
		updates <- bookings
	}

	unsubscribe := s.store.Subscribe(push)
	defer unsubscribe()

	if err := write(conn, "snapshot", s.store.GetAll()); err != nil {
		log.Debug().Err(err).Msg("booking stream closed before snapshot")

		return
	}

	closed := make(chan struct{})
	go readUntilClosed(conn, closed)

	ticker := time.NewTicker(streamPingPeriod)
	defer ticker.Stop()

	for {
		select {
		case <-closed:
			return
		case bookings := <-updates:
			if err := write(conn, "changed", bookings); err != nil {
				log.Debug().Err(err).Msg("booking stream write failed")

				return
			}
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(streamWriteWait)); err != nil {
				return
			}
		}
	}
}

func write(conn *websocket.Conn, kind string, bookings []model.Booking) error {
	var list dto.GetBookingsResponse
	list.FromModels(bookings)

	if err := conn.SetWriteDeadline(time.Now().Add(streamWriteWait)); err != nil {
		return err
	}

	return conn.WriteJSON(StreamMessage{Type: kind, Bookings: list.Bookings})
}

// readUntilClosed drains client frames so pongs and close frames are seen.
func readUntilClosed(conn *websocket.Conn, closed chan<- struct{}) {
	defer close(closed)

	_ = conn.SetReadDeadline(time.Now().Add(streamPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(streamPongWait))
	})

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
