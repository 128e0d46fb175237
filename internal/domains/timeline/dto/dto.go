package dto

import (
	"micelio/internal/domains/timeline"
	"micelio/shared/constant"
	"micelio/shared/timezone"
)

type RowResponse struct {
	Index    int    `json:"index"`
	RoomSlug string `json:"room_slug"`
	Name     string `json:"name"`
}

type ChipResponse struct {
	BookingID       string  `json:"booking_id"`
	RoomSlug        string  `json:"room_slug"`
	Row             int     `json:"row"`
	GuestName       string  `json:"guest_name"`
	Color           string  `json:"color"`
	Left            float64 `json:"left"`
	Width           float64 `json:"width"`
	ContinuesBefore bool    `json:"continues_before"`
	ContinuesAfter  bool    `json:"continues_after"`
	TurnoverStart   bool    `json:"turnover_start"`
	TurnoverEnd     bool    `json:"turnover_end"`
}

func (c *ChipResponse) FromChip(chip timeline.Chip) {
	c.BookingID = chip.BookingID
	c.RoomSlug = chip.RoomSlug
	c.Row = chip.Row
	c.GuestName = chip.GuestName
	c.Color = chip.Color
	c.Left = chip.Left
	c.Width = chip.Width
	c.ContinuesBefore = chip.ContinuesBefore
	c.ContinuesAfter = chip.ContinuesAfter
	c.TurnoverStart = chip.TurnoverStart
	c.TurnoverEnd = chip.TurnoverEnd
}

type OccupancyResponse struct {
	Date     string `json:"date"`
	Occupied int    `json:"occupied"`
	Total    int    `json:"total"`
}

type TimelineResponse struct {
	Start     string              `json:"start"`
	End       string              `json:"end"`
	Days      int                 `json:"days"`
	CellWidth float64             `json:"cell_width"`
	Rows      []RowResponse       `json:"rows"`
	Chips     []ChipResponse      `json:"chips"`
	Occupancy []OccupancyResponse `json:"occupancy"`
}

func (r *TimelineResponse) FromLayout(w timeline.Window, rows []timeline.Row, chips []timeline.Chip, occupancy []timeline.DayOccupancy, geometry timeline.Geometry) {
	r.Start = timezone.Format(w.Start, constant.DayFormat)
	r.End = timezone.Format(w.End, constant.DayFormat)
	r.Days = w.Len()
	r.CellWidth = geometry.CellWidth

	r.Rows = make([]RowResponse, len(rows))
	for i, row := range rows {
		r.Rows[i] = RowResponse{Index: row.Index, RoomSlug: row.Room.Slug, Name: row.Room.Name}
	}

	r.Chips = make([]ChipResponse, len(chips))
	for i, chip := range chips {
		r.Chips[i].FromChip(chip)
	}

	r.Occupancy = make([]OccupancyResponse, len(occupancy))
	for i, o := range occupancy {
		r.Occupancy[i] = OccupancyResponse{
			Date:     timezone.Format(o.Date, constant.DayFormat),
			Occupied: o.Occupied,
			Total:    o.Total,
		}
	}
}
