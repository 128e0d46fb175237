package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"micelio/infras/otel"
	"micelio/internal/domains/room/model"
	"micelio/shared/constant"
	"slices"

	"github.com/rs/zerolog/log"
)

//go:embed catalog.json
var catalogData []byte

// Room is the read-only room catalog.
type Room interface {
	GetAll(ctx context.Context) ([]model.Room, error)
	Get(ctx context.Context, slug string) (model.Room, error)
	Exist(ctx context.Context, slug string) (bool, error)
}

type repositoryImpl struct {
	rooms []model.Room
	otel  otel.Otel
}

// New loads the embedded catalog. A catalog that does not decode is a build
// defect, so it panics.
func New(otel otel.Otel) Room {
	rooms, err := Decode(catalogData)
	if err != nil {
		panic(err)
	}

	log.Info().Int("rooms", len(rooms)).Msg("Successfully loaded embedded room catalog")

	return NewFromRooms(rooms, otel)
}

// NewFromRooms builds a catalog from an explicit list, keeping its order.
func NewFromRooms(rooms []model.Room, otel otel.Otel) Room {
	return &repositoryImpl{
		rooms: slices.Clone(rooms),
		otel:  otel,
	}
}

// Decode parses a JSON room list. Entries without a slug are dropped.
func Decode(data []byte) ([]model.Room, error) {
	var rooms []model.Room
	if err := json.Unmarshal(data, &rooms); err != nil {
		return nil, fmt.Errorf("failed to decode room catalog: %w", err)
	}

	return slices.DeleteFunc(rooms, func(r model.Room) bool {
		return r.Slug == constant.Empty
	}), nil
}

func (repo *repositoryImpl) GetAll(ctx context.Context) ([]model.Room, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.GetAll")
	defer scope.End()

	return slices.Clone(repo.rooms), nil
}

// Get returns the zero Room when slug is unknown.
func (repo *repositoryImpl) Get(ctx context.Context, slug string) (model.Room, error) {
	_, scope := repo.otel.NewScope(ctx, constant.OtelRepositoryScopeName, constant.OtelRepositoryScopeName+".room.Get")
	defer scope.End()

	scope.SetAttribute(model.FieldSlug, slug)

	idx := slices.IndexFunc(repo.rooms, func(r model.Room) bool {
		return r.Slug == slug
	})
	if idx == -1 {
		return model.Room{}, nil
	}

	return repo.rooms[idx], nil
}

func (repo *repositoryImpl) Exist(ctx context.Context, slug string) (bool, error) {
	room, err := repo.Get(ctx, slug)

	return room.Slug != constant.Empty, err
}
