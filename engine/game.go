package engine

import (
	"errors"
	"fmt"
	"math/rand"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/reflex/config"
	"github.com/lixenwraith/reflex/core"
	"github.com/lixenwraith/reflex/peripheral"
)

// ErrAlreadyStarted is returned by Start on a game that is already running or finished
var ErrAlreadyStarted = errors.New("game already started")

// Result is the outcome of a finished game
type Result struct {
	Score int64
	Stats RoundStats
}

// Game owns the shared state and launches both game loops
type Game struct {
	state      *State
	engine     *StimulusEngine
	scoreboard *Scoreboard

	crashHandler func(any)
	started      atomic.Bool
}

// NewGame validates cfg and builds a game over board, ready to Start
func NewGame(cfg config.Config, board peripheral.Board) (*Game, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if board.Visual == nil || board.Audio == nil || board.Input == nil || board.Display == nil || board.Clock == nil {
		return nil, fmt.Errorf("board is missing a peripheral")
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	state := NewState(cfg.InitialSeconds)
	return &Game{
		state:        state,
		engine:       NewStimulusEngine(state, board, cfg, rand.New(rand.NewSource(seed))),
		scoreboard:   NewScoreboard(state, board, cfg),
		crashHandler: core.HandleCrash,
	}, nil
}

// SetCrashHandler replaces the handler for panics raised inside the game loops,
// must be called before Start
func (g *Game) SetCrashHandler(handler func(any)) {
	g.crashHandler = handler
}

// Start launches the stimulus and scoreboard loops and returns without joining them
func (g *Game) Start() error {
	if !g.started.CompareAndSwap(false, true) {
		return ErrAlreadyStarted
	}
	core.GoWith(g.crashHandler, g.engine.Run)
	core.GoWith(g.crashHandler, g.scoreboard.Run)
	return nil
}

// Done is closed when the scoreboard clears the display, the game's only completion signal
func (g *Game) Done() <-chan struct{} {
	return g.scoreboard.Done()
}

// Stopped is closed once the stimulus loop has observed termination and
// switched its outputs off
func (g *Game) Stopped() <-chan struct{} {
	return g.engine.Done()
}

// State exposes the shared state for read-only observation
func (g *Game) State() *State {
	return g.state
}

// Result snapshots score and round statistics; final once the stimulus loop has stopped
func (g *Game) Result() Result {
	return Result{
		Score: g.state.Score(),
		Stats: g.engine.Stats(),
	}
}
