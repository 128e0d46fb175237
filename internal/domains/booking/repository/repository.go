package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"micelio/internal/domains/booking/model"
)

// Snapshot persists the whole booking collection as one value.
//
// Save replaces whatever was stored before. OnExternalChange registers fn to
// be called when another writer replaces the stored value; writes made through
// the same Snapshot do not trigger it. The returned cancel func is idempotent.
type Snapshot interface {
	Load(ctx context.Context) ([]model.Booking, error)
	Save(ctx context.Context, bookings []model.Booking) error
	OnExternalChange(fn func()) (cancel func())
}
