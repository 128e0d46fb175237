package model

import "math/rand/v2"

// Palette holds the chip colors handed to bookings created without one.
var Palette = []string{
	"#f87171",
	"#fb923c",
	"#facc15",
	"#a3e635",
	"#34d399",
	"#22d3ee",
	"#60a5fa",
	"#a78bfa",
	"#f472b6",
}

// ColorPicker returns a display color for a new booking.
type ColorPicker func() string

// RandomColor picks uniformly from Palette.
func RandomColor() string {
	return Palette[rand.IntN(len(Palette))]
}

func NewColorPicker() ColorPicker {
	return RandomColor
}
