package dto

import (
	"micelio/internal/domains/room/model"
)

type RoomResponse struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}

func (r *RoomResponse) FromModel(model model.Room) {
	r.Slug = model.Slug
	r.Name = model.Name
	r.Capacity = model.Capacity
	r.Description = model.Description
}

type GetRoomsResponse struct {
	Rooms     []RoomResponse `json:"rooms"`
	TotalData int            `json:"total_data"`
}

func (r *GetRoomsResponse) FromModels(models []model.Room) {
	r.TotalData = len(models)

	r.Rooms = make([]RoomResponse, len(models))
	for i, mod := range models {
		r.Rooms[i].FromModel(mod)
	}
}
