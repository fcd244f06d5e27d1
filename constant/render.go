package constant

import "time"

// OLED Panel Geometry
const (
	// OLEDColumns and OLEDRows are the text cells of a 128x64 panel with an 8x8 font
	OLEDColumns = 21
	OLEDRows    = 8

	// OLEDMarginX is the left text offset in cells (5px on the device, rounded)
	OLEDMarginX = 1
)

// Scoreboard Rows
const (
	ScoreboardTimeRow  = 2
	ScoreboardScoreRow = 4
)

// KeyHold is how long a key press keeps a button reading as pressed,
// terminals report no key release
const KeyHold = 150 * time.Millisecond
