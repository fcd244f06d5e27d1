// Package audio plays stimulus tones through the system speaker with beep.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/reflex/constant"
	"github.com/lixenwraith/reflex/peripheral"
)

const sampleRate = beep.SampleRate(constant.AudioSampleRate)

// Buzzers drives the two board buzzers as panned speaker voices.
// Without an initialized speaker every tone still blocks for its duration.
type Buzzers struct {
	mu          sync.Mutex
	clock       peripheral.Clock
	mixer       *beep.Mixer
	active      [peripheral.BuzzerCount]*beep.Ctrl
	volume      float64
	initialized bool
}

// NewBuzzers creates buzzers at the given master volume, timing tones on clock
func NewBuzzers(volume float64, clock peripheral.Clock) *Buzzers {
	return &Buzzers{
		clock:  clock,
		mixer:  &beep.Mixer{},
		volume: volume,
	}
}

// Initialize sets up the speaker, a failure leaves the buzzers silent
func (b *Buzzers) Initialize() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(constant.AudioBufferDuration)); err != nil {
		return err
	}

	speaker.Play(b.mixer)
	b.initialized = true
	return nil
}

// Cleanup stops all sounds and closes the speaker
func (b *Buzzers) Cleanup() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}

	b.silenceLocked()
	speaker.Close()
	b.initialized = false
}

// PlayTone sounds buzzer at freqHz and blocks for d on the clock, then silences it
func (b *Buzzers) PlayTone(buzzer peripheral.Buzzer, freqHz int, d time.Duration) {
	ctrl := b.start(buzzer, freqHz, d)

	b.clock.Sleep(d)

	if ctrl != nil {
		speaker.Lock()
		ctrl.Paused = true
		speaker.Unlock()
	}
}

// Silence forces both buzzers off
func (b *Buzzers) Silence() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized {
		return
	}
	b.silenceLocked()
}

func (b *Buzzers) start(buzzer peripheral.Buzzer, freqHz int, d time.Duration) *beep.Ctrl {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.initialized || buzzer < 0 || buzzer >= peripheral.BuzzerCount {
		return nil
	}

	tone := CreateTone(freqHz, d, BuzzerPan(buzzer), b.volume, sampleRate)
	ctrl := &beep.Ctrl{Streamer: tone, Paused: false}

	speaker.Lock()
	// A buzzer plays one pitch at a time
	if prev := b.active[buzzer]; prev != nil {
		prev.Paused = true
	}
	b.mixer.Add(ctrl)
	speaker.Unlock()

	b.active[buzzer] = ctrl
	return ctrl
}

func (b *Buzzers) silenceLocked() {
	speaker.Lock()
	for i, ctrl := range b.active {
		if ctrl != nil {
			ctrl.Paused = true
		}
		b.active[i] = nil
	}
	b.mixer.Clear()
	speaker.Unlock()
}

// BuzzerPan places buzzer A left and buzzer B right
func BuzzerPan(buzzer peripheral.Buzzer) float64 {
	if buzzer == peripheral.BuzzerA {
		return -constant.BuzzerPan
	}
	return constant.BuzzerPan
}
