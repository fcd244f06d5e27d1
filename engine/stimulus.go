package engine

import (
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/lixenwraith/reflex/config"
	"github.com/lixenwraith/reflex/constant"
	"github.com/lixenwraith/reflex/peripheral"
)

// Stimulus is the color cue presented in one round
type Stimulus int

const (
	StimulusGreen Stimulus = iota
	StimulusRed
	StimulusYellow
	stimulusCount
)

func (s Stimulus) String() string {
	switch s {
	case StimulusGreen:
		return "green"
	case StimulusRed:
		return "red"
	case StimulusYellow:
		return "yellow"
	default:
		return "unknown"
	}
}

// Lights returns the visual channels of the stimulus, yellow mixes green and red
func (s Stimulus) Lights() []peripheral.Light {
	switch s {
	case StimulusGreen:
		return []peripheral.Light{peripheral.LightGreen}
	case StimulusRed:
		return []peripheral.Light{peripheral.LightRed}
	case StimulusYellow:
		return []peripheral.Light{peripheral.LightGreen, peripheral.LightRed}
	default:
		return nil
	}
}

// Button returns the only input that answers the stimulus
func (s Stimulus) Button() peripheral.Button {
	switch s {
	case StimulusGreen:
		return peripheral.ButtonA
	case StimulusRed:
		return peripheral.ButtonB
	default:
		return peripheral.ButtonJoystick
	}
}

// Tone returns the buzzer and pitch of the stimulus.
// Red and yellow share buzzer B and differ only by pitch.
func (s Stimulus) Tone() (peripheral.Buzzer, int) {
	switch s {
	case StimulusGreen:
		return peripheral.BuzzerA, constant.NoteGreenHz
	case StimulusRed:
		return peripheral.BuzzerB, constant.NoteRedHz
	default:
		return peripheral.BuzzerB, constant.NoteYellowHz
	}
}

// Outcome is the result of one round
type Outcome int

const (
	OutcomeMiss Outcome = iota
	OutcomeHit
)

func (o Outcome) String() string {
	if o == OutcomeHit {
		return "hit"
	}
	return "miss"
}

// StimulusEngine runs rounds until the shared state is terminated
type StimulusEngine struct {
	state  *State
	visual peripheral.Visual
	audio  peripheral.Audio
	input  peripheral.Input
	clock  peripheral.Clock

	rng        *rand.Rand
	difficulty *Difficulty

	grace time.Duration
	poll  time.Duration
	note  time.Duration

	statsMu sync.Mutex
	stats   RoundStats

	done chan struct{}
}

// NewStimulusEngine creates the stimulus-response loop over board
func NewStimulusEngine(state *State, board peripheral.Board, cfg config.Config, rng *rand.Rand) *StimulusEngine {
	return &StimulusEngine{
		state:      state,
		visual:     board.Visual,
		audio:      board.Audio,
		input:      board.Input,
		clock:      board.Clock,
		rng:        rng,
		difficulty: NewDifficulty(cfg.InitialWindow, cfg.MinWindow),
		grace:      cfg.TimeoutGrace,
		poll:       cfg.PollInterval,
		note:       cfg.NoteDuration,
		done:       make(chan struct{}),
	}
}

// Run plays rounds until termination, then forces every output off
func (e *StimulusEngine) Run() {
	defer close(e.done)

	for !e.state.Terminated() {
		e.playRound(Stimulus(e.rng.Intn(int(stimulusCount))))
	}

	peripheral.AllLightsOff(e.visual)
	e.audio.Silence()

	stats := e.Stats()
	log.Printf("stimulus loop stopped: %d rounds, %d hits, %d misses, best %v, mean %v",
		stats.Rounds, stats.Hits, stats.Misses, stats.BestReaction, stats.MeanReaction())
}

// Done is closed once Run has returned
func (e *StimulusEngine) Done() <-chan struct{} {
	return e.done
}

// Window returns the current difficulty window, only safe from the Run goroutine or after Done
func (e *StimulusEngine) Window() time.Duration {
	return e.difficulty.Window()
}

// Stats returns a snapshot of the round statistics
func (e *StimulusEngine) Stats() RoundStats {
	e.statsMu.Lock()
	defer e.statsMu.Unlock()
	return e.stats
}

func (e *StimulusEngine) playRound(s Stimulus) Outcome {
	window := e.difficulty.Window()

	for _, l := range s.Lights() {
		e.visual.SetLight(l, true)
	}
	// Blocks for the whole note, termination is only seen afterwards
	buzzer, freq := s.Tone()
	e.audio.PlayTone(buzzer, freq, e.note)

	outcome, reaction := e.awaitResponse(s, window)

	peripheral.AllLightsOff(e.visual)

	if outcome == OutcomeHit {
		e.difficulty.Hit(e.state.addHit())
	} else {
		e.difficulty.Miss()
	}

	e.statsMu.Lock()
	e.stats.record(outcome, reaction)
	round := e.stats.Rounds
	e.statsMu.Unlock()

	log.Printf("round %d: %s %s after %v, window now %v", round, s, outcome, reaction, e.difficulty.Window())

	if !e.state.Terminated() {
		e.clock.Sleep(e.difficulty.Window())
	}
	return outcome
}

// awaitResponse polls the stimulus button until it is pressed, the window plus
// grace runs out, or the game terminates. A reading taken at exactly the deadline
// is late. Other buttons are ignored.
func (e *StimulusEngine) awaitResponse(s Stimulus, window time.Duration) (Outcome, time.Duration) {
	onset := e.clock.Now()
	deadline := window + e.grace
	button := s.Button()

	for !e.state.Terminated() {
		elapsed := e.clock.Now().Sub(onset)
		if elapsed >= deadline {
			return OutcomeMiss, elapsed
		}
		if e.input.Pressed(button) {
			return OutcomeHit, elapsed
		}
		e.clock.Sleep(e.poll)
	}
	return OutcomeMiss, e.clock.Now().Sub(onset)
}
