package engine

import (
	"math/rand"
	"testing"
	"time"

	"github.com/lixenwraith/reflex/config"
	"github.com/lixenwraith/reflex/peripheral"
)

type stimulusHarness struct {
	engine *StimulusEngine
	state  *State
	clock  *peripheral.MockClock
	visual *peripheral.RecordingVisual
	audio  *peripheral.RecordingAudio
}

func newStimulusHarness(input peripheral.Input) *stimulusHarness {
	clock := peripheral.NewMockClock(time.Unix(1000, 0))
	board, visual, audio, _ := peripheral.NewMockBoard(clock, input)
	cfg := config.Default()
	state := NewState(cfg.InitialSeconds)
	return &stimulusHarness{
		engine: NewStimulusEngine(state, board, cfg, rand.New(rand.NewSource(1))),
		state:  state,
		clock:  clock,
		visual: visual,
		audio:  audio,
	}
}

// pressAt returns an input where only button reads pressed, from offset after *onset onwards
func pressAt(clock peripheral.Clock, onset *time.Time, button peripheral.Button, offset time.Duration) peripheral.Input {
	return peripheral.InputFunc(func(b peripheral.Button) bool {
		return b == button && !clock.Now().Before(onset.Add(offset))
	})
}

// perfectPlayer presses whatever button matches the lit lights
func perfectPlayer(visual func() *peripheral.RecordingVisual) peripheral.Input {
	return peripheral.InputFunc(func(b peripheral.Button) bool {
		v := visual()
		green, red := v.Lit(peripheral.LightGreen), v.Lit(peripheral.LightRed)
		switch {
		case green && red:
			return b == peripheral.ButtonJoystick
		case green:
			return b == peripheral.ButtonA
		case red:
			return b == peripheral.ButtonB
		}
		return false
	})
}

func TestStimulusMapping(t *testing.T) {
	tests := []struct {
		stimulus Stimulus
		lights   []peripheral.Light
		button   peripheral.Button
		buzzer   peripheral.Buzzer
		freq     int
	}{
		{StimulusGreen, []peripheral.Light{peripheral.LightGreen}, peripheral.ButtonA, peripheral.BuzzerA, 3000},
		{StimulusRed, []peripheral.Light{peripheral.LightRed}, peripheral.ButtonB, peripheral.BuzzerB, 3500},
		{StimulusYellow, []peripheral.Light{peripheral.LightGreen, peripheral.LightRed}, peripheral.ButtonJoystick, peripheral.BuzzerB, 4000},
	}

	for _, tt := range tests {
		t.Run(tt.stimulus.String(), func(t *testing.T) {
			lights := tt.stimulus.Lights()
			if len(lights) != len(tt.lights) {
				t.Fatalf("Expected lights %v, got %v", tt.lights, lights)
			}
			for i := range lights {
				if lights[i] != tt.lights[i] {
					t.Errorf("Expected lights %v, got %v", tt.lights, lights)
				}
			}
			if tt.stimulus.Button() != tt.button {
				t.Errorf("Expected button %s, got %s", tt.button, tt.stimulus.Button())
			}
			buzzer, freq := tt.stimulus.Tone()
			if buzzer != tt.buzzer || freq != tt.freq {
				t.Errorf("Expected tone %s@%d, got %s@%d", tt.buzzer, tt.freq, buzzer, freq)
			}
		})
	}
}

func TestPlayRoundPresentsAndClearsYellow(t *testing.T) {
	var h *stimulusHarness
	h = newStimulusHarness(perfectPlayer(func() *peripheral.RecordingVisual { return h.visual }))

	if outcome := h.engine.playRound(StimulusYellow); outcome != OutcomeHit {
		t.Fatalf("Expected hit, got %s", outcome)
	}

	events := h.visual.Events()
	if len(events) < 2 || !events[0].On || !events[1].On ||
		events[0].Light != peripheral.LightGreen || events[1].Light != peripheral.LightRed {
		t.Errorf("Expected green and red switched on first, got %+v", events)
	}
	for l := peripheral.Light(0); l < peripheral.LightCount; l++ {
		if h.visual.Lit(l) {
			t.Errorf("Expected %s off after round", l)
		}
	}

	tones := h.audio.Tones()
	if len(tones) != 1 || tones[0].Buzzer != peripheral.BuzzerB || tones[0].FreqHz != 4000 || tones[0].Duration != 300*time.Millisecond {
		t.Errorf("Unexpected tones: %+v", tones)
	}
	if h.state.Score() != 1 {
		t.Errorf("Expected score 1, got %d", h.state.Score())
	}
}

func TestYellowIgnoresWrongButtons(t *testing.T) {
	var onset time.Time
	h := newStimulusHarness(nil)
	h.engine.input = peripheral.InputFunc(func(b peripheral.Button) bool {
		return b == peripheral.ButtonA || b == peripheral.ButtonB
	})

	onset = h.clock.Now()
	outcome, elapsed := h.engine.awaitResponse(StimulusYellow, 1000*time.Millisecond)

	if outcome != OutcomeMiss {
		t.Errorf("Expected miss when only A and B pressed, got %s", outcome)
	}
	if elapsed != 1200*time.Millisecond {
		t.Errorf("Expected wait to run to the 1200ms deadline, got %v", elapsed)
	}
	if h.clock.Now().Sub(onset) != 1200*time.Millisecond {
		t.Errorf("Expected 1200ms of polling, got %v", h.clock.Now().Sub(onset))
	}
}

func TestYellowResponseWindow(t *testing.T) {
	tests := []struct {
		name    string
		pressAt time.Duration
		want    Outcome
	}{
		{"immediate", 0, OutcomeHit},
		{"inside window", 500 * time.Millisecond, OutcomeHit},
		{"inside grace", 1150 * time.Millisecond, OutcomeHit},
		{"last poll before deadline", 1190 * time.Millisecond, OutcomeHit},
		{"exactly at deadline", 1200 * time.Millisecond, OutcomeMiss},
		{"after deadline", 1500 * time.Millisecond, OutcomeMiss},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var onset time.Time
			h := newStimulusHarness(nil)
			h.engine.input = pressAt(h.clock, &onset, peripheral.ButtonJoystick, tt.pressAt)

			onset = h.clock.Now()
			outcome, elapsed := h.engine.awaitResponse(StimulusYellow, 1000*time.Millisecond)

			if outcome != tt.want {
				t.Errorf("Expected %s, got %s after %v", tt.want, outcome, elapsed)
			}
			if outcome == OutcomeHit && elapsed != tt.pressAt {
				t.Errorf("Expected reaction %v, got %v", tt.pressAt, elapsed)
			}
		})
	}
}

func TestAwaitResponseStopsOnTermination(t *testing.T) {
	h := newStimulusHarness(nil)
	start := h.clock.Now()
	h.clock.OnSleep = func(now time.Time) {
		if now.Sub(start) >= 50*time.Millisecond {
			h.state.terminate()
		}
	}

	outcome, _ := h.engine.awaitResponse(StimulusGreen, 1000*time.Millisecond)

	if outcome != OutcomeMiss {
		t.Errorf("Expected miss on termination, got %s", outcome)
	}
	if got := h.clock.Now().Sub(start); got != 50*time.Millisecond {
		t.Errorf("Expected poll to stop at 50ms, got %v", got)
	}
}

func TestPlayRoundAdaptsDifficulty(t *testing.T) {
	var h *stimulusHarness
	h = newStimulusHarness(perfectPlayer(func() *peripheral.RecordingVisual { return h.visual }))

	for i := 0; i < 3; i++ {
		h.engine.playRound(Stimulus(i))
	}
	if h.engine.Window() != 900*time.Millisecond {
		t.Errorf("Expected 900ms after 3 hits, got %v", h.engine.Window())
	}

	h.engine.input = peripheral.InputFunc(func(peripheral.Button) bool { return false })
	before := h.clock.Now()
	if outcome := h.engine.playRound(StimulusRed); outcome != OutcomeMiss {
		t.Fatalf("Expected miss, got %s", outcome)
	}
	if h.engine.Window() != 950*time.Millisecond {
		t.Errorf("Expected 950ms after miss, got %v", h.engine.Window())
	}

	// note + deadline on the old window + sleep on the new window
	want := 300*time.Millisecond + 1100*time.Millisecond + 950*time.Millisecond
	if got := h.clock.Now().Sub(before); got != want {
		t.Errorf("Expected round to take %v, got %v", want, got)
	}

	stats := h.engine.Stats()
	if stats.Rounds != 4 || stats.Hits != 3 || stats.Misses != 1 {
		t.Errorf("Unexpected stats: %+v", stats)
	}
	if stats.BestReaction != 0 || stats.MeanReaction() != 0 {
		t.Errorf("Expected instant reactions, got best %v mean %v", stats.BestReaction, stats.MeanReaction())
	}
}

func TestRunStopsWithoutNewRoundAfterTermination(t *testing.T) {
	var h *stimulusHarness
	h = newStimulusHarness(perfectPlayer(func() *peripheral.RecordingVisual { return h.visual }))

	// Stand-in for the scoreboard: the countdown of 5 seconds ends the game
	start := h.clock.Now()
	var terminatedAt time.Time
	h.clock.OnSleep = func(now time.Time) {
		if now.Sub(start) >= 5*time.Second && h.state.terminate() {
			terminatedAt = now
		}
	}

	h.engine.Run()

	select {
	case <-h.engine.Done():
	default:
		t.Fatal("Expected Done closed after Run")
	}
	if terminatedAt.IsZero() {
		t.Fatal("Expected termination during run")
	}

	for _, ev := range h.visual.Events() {
		if ev.On && !ev.At.Before(terminatedAt) {
			t.Errorf("Light %s switched on at %v, after termination at %v", ev.Light, ev.At.Sub(start), terminatedAt.Sub(start))
		}
	}
	for _, tone := range h.audio.Tones() {
		if !tone.At.Before(terminatedAt) {
			t.Errorf("Tone started at %v, after termination", tone.At.Sub(start))
		}
	}

	// The inter-round sleep is skipped once terminated
	if !h.clock.Now().Equal(terminatedAt) {
		t.Errorf("Expected no sleep after termination, clock moved %v", h.clock.Now().Sub(terminatedAt))
	}
	for l := peripheral.Light(0); l < peripheral.LightCount; l++ {
		if h.visual.Lit(l) {
			t.Errorf("Expected %s off at exit", l)
		}
	}
	if h.audio.Silenced() != 1 {
		t.Errorf("Expected audio silenced once at exit, got %d", h.audio.Silenced())
	}
	if h.state.Score() == 0 {
		t.Error("Expected a perfect player to score")
	}
}

func TestRunSkipsRoundsWhenAlreadyTerminated(t *testing.T) {
	h := newStimulusHarness(nil)
	h.state.terminate()

	h.engine.Run()

	if len(h.audio.Tones()) != 0 {
		t.Errorf("Expected no rounds, got %d tones", len(h.audio.Tones()))
	}
	if h.audio.Silenced() != 1 {
		t.Errorf("Expected audio silenced at exit, got %d", h.audio.Silenced())
	}
}
