package engine

import (
	"fmt"
	"log"
	"time"

	"github.com/lixenwraith/reflex/config"
	"github.com/lixenwraith/reflex/constant"
	"github.com/lixenwraith/reflex/peripheral"
)

// Scoreboard advances the countdown at 1 Hz, renders time and score, and is the
// only component that ends the game
type Scoreboard struct {
	state   *State
	display peripheral.Display
	clock   peripheral.Clock

	renderInterval time.Duration
	gameOverFrames int

	// lastTick advances in whole CountdownStep increments, so render jitter
	// never accumulates into countdown drift
	lastTick time.Time

	done chan struct{}
}

// NewScoreboard creates the countdown loop over board's display and clock
func NewScoreboard(state *State, board peripheral.Board, cfg config.Config) *Scoreboard {
	return &Scoreboard{
		state:          state,
		display:        board.Display,
		clock:          board.Clock,
		renderInterval: cfg.RenderInterval,
		gameOverFrames: cfg.GameOverFrames,
		done:           make(chan struct{}),
	}
}

// Run counts down to zero, terminates the game, shows the final score and clears
// the display. A Scoreboard runs once.
func (sb *Scoreboard) Run() {
	defer close(sb.done)

	sb.lastTick = sb.clock.Now()
	for sb.state.Remaining() > 0 {
		sb.display.Render(
			fmt.Sprintf("Time: %02d", sb.state.Remaining()), constant.ScoreboardTimeRow,
			fmt.Sprintf("Score: %d", sb.state.Score()), constant.ScoreboardScoreRow,
		)
		sb.clock.Sleep(sb.renderInterval)
		sb.advance(sb.clock.Now())
	}

	if sb.state.terminate() {
		log.Printf("countdown finished, final score %d", sb.state.Score())
	}

	// Iteration driven, scheduling delay stretches the screen time
	for i := 0; i < sb.gameOverFrames; i++ {
		sb.display.Render(
			"GAME OVER!", constant.ScoreboardTimeRow,
			fmt.Sprintf("Score: %d", sb.state.Score()), constant.ScoreboardScoreRow,
		)
		sb.clock.Sleep(sb.renderInterval)
	}

	sb.display.Render("", 0, "", 0)
}

// Done is closed after the final clearing render
func (sb *Scoreboard) Done() <-chan struct{} {
	return sb.done
}

// advance consumes every whole second elapsed since lastTick, returns the decrement count
func (sb *Scoreboard) advance(now time.Time) int {
	n := 0
	for sb.state.Remaining() > 0 && now.Sub(sb.lastTick) >= constant.CountdownStep {
		sb.lastTick = sb.lastTick.Add(constant.CountdownStep)
		sb.state.tickDown()
		n++
	}
	return n
}
