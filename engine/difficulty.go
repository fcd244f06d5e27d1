package engine

import (
	"time"

	"github.com/lixenwraith/reflex/constant"
)

// Difficulty tracks the response window between rounds
type Difficulty struct {
	window time.Duration
	min    time.Duration
}

// NewDifficulty creates a difficulty starting at initial, floored at min on speed-ups
func NewDifficulty(initial, min time.Duration) *Difficulty {
	return &Difficulty{window: initial, min: min}
}

// Window returns the current response budget, excluding grace
func (d *Difficulty) Window() time.Duration {
	return d.window
}

// Hit applies a speed-up when score lands on a HitsPerSpeedup multiple.
// A skipped multiple simply skips that speed-up.
func (d *Difficulty) Hit(score int64) {
	if score%constant.HitsPerSpeedup != 0 || d.window <= d.min {
		return
	}
	d.window -= constant.SpeedupStep
	if d.window < d.min {
		d.window = d.min
	}
}

// Miss slows the game down, without upper bound
func (d *Difficulty) Miss() {
	d.window += constant.MissPenalty
}
