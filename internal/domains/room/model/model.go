package model

const (
	EntityName = "room"

	FieldSlug = "slug"
)

// Room is an entry of the static room catalog. Slug is the lookup key used
// by bookings and the timeline rows.
type Room struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Description string `json:"description"`
}
