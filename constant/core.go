package constant

import "time"

// Game Loop Timing
const (
	// InitialSeconds is the countdown length of one game
	InitialSeconds = 60

	// RenderInterval is the scoreboard refresh period, independent of the 1 Hz countdown
	RenderInterval = 100 * time.Millisecond

	// PollInterval is the input sampling period inside the response window
	PollInterval = 10 * time.Millisecond

	// CountdownStep is the amount of elapsed time consumed by one countdown decrement
	CountdownStep = time.Second

	// GameOverFrames is the number of GAME OVER renders before the final clear
	GameOverFrames = 50
)

// Difficulty
const (
	// InitialWindow is the response budget of the first round, excluding grace
	InitialWindow = 1000 * time.Millisecond

	// MinWindow is the floor applied when a hit streak speeds the game up
	MinWindow = 300 * time.Millisecond

	// TimeoutGrace is added to the window before a miss is declared
	TimeoutGrace = 200 * time.Millisecond

	// HitsPerSpeedup is the score multiple that triggers a window decrease
	HitsPerSpeedup = 3

	// SpeedupStep is the window decrease on every HitsPerSpeedup-th hit
	SpeedupStep = 100 * time.Millisecond

	// MissPenalty is the window increase on a miss, unbounded
	MissPenalty = 50 * time.Millisecond
)
