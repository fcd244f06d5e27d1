package peripheral

import (
	"sync"
	"time"
)

// MockClock is a virtual clock: Sleep advances time instead of blocking
type MockClock struct {
	mu          sync.Mutex
	currentTime time.Time
	slept       time.Duration

	// OnSleep runs after every Sleep with the advanced time, outside the lock
	OnSleep func(now time.Time)
}

// NewMockClock creates a virtual clock starting at startTime
func NewMockClock(startTime time.Time) *MockClock {
	return &MockClock{currentTime: startTime}
}

// Now returns the current virtual time
func (m *MockClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentTime
}

// Sleep advances virtual time by d and returns immediately
func (m *MockClock) Sleep(d time.Duration) {
	m.mu.Lock()
	m.currentTime = m.currentTime.Add(d)
	m.slept += d
	now := m.currentTime
	hook := m.OnSleep
	m.mu.Unlock()

	if hook != nil {
		hook(now)
	}
}

// Advance moves virtual time forward without counting as a sleep
func (m *MockClock) Advance(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.currentTime = m.currentTime.Add(d)
}

// Slept returns the total duration passed to Sleep
func (m *MockClock) Slept() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.slept
}

// LightEvent is one recorded SetLight call
type LightEvent struct {
	At    time.Time
	Light Light
	On    bool
}

// RecordingVisual records light changes and tracks current state
type RecordingVisual struct {
	mu     sync.Mutex
	clock  Clock
	state  [LightCount]bool
	events []LightEvent
}

// NewRecordingVisual creates a visual fake timestamping events from clock
func NewRecordingVisual(clock Clock) *RecordingVisual {
	return &RecordingVisual{clock: clock}
}

func (v *RecordingVisual) SetLight(light Light, on bool) {
	at := v.clock.Now()
	v.mu.Lock()
	defer v.mu.Unlock()
	if light >= 0 && light < LightCount {
		v.state[light] = on
	}
	v.events = append(v.events, LightEvent{At: at, Light: light, On: on})
}

// Lit reports the current state of a light
func (v *RecordingVisual) Lit(light Light) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state[light]
}

// Events returns a copy of all recorded changes
func (v *RecordingVisual) Events() []LightEvent {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]LightEvent, len(v.events))
	copy(out, v.events)
	return out
}

// ToneEvent is one recorded PlayTone call
type ToneEvent struct {
	At       time.Time
	Buzzer   Buzzer
	FreqHz   int
	Duration time.Duration
}

// RecordingAudio records tones and blocks on its clock for each one
type RecordingAudio struct {
	mu       sync.Mutex
	clock    Clock
	tones    []ToneEvent
	silenced int
}

// NewRecordingAudio creates an audio fake that sleeps on clock for each tone
func NewRecordingAudio(clock Clock) *RecordingAudio {
	return &RecordingAudio{clock: clock}
}

func (a *RecordingAudio) PlayTone(buzzer Buzzer, freqHz int, d time.Duration) {
	at := a.clock.Now()
	a.mu.Lock()
	a.tones = append(a.tones, ToneEvent{At: at, Buzzer: buzzer, FreqHz: freqHz, Duration: d})
	a.mu.Unlock()

	a.clock.Sleep(d)
}

func (a *RecordingAudio) Silence() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.silenced++
}

// Tones returns a copy of all recorded tones
func (a *RecordingAudio) Tones() []ToneEvent {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]ToneEvent, len(a.tones))
	copy(out, a.tones)
	return out
}

// Silenced returns how many times Silence was called
func (a *RecordingAudio) Silenced() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.silenced
}

// InputFunc adapts a function to the Input interface
type InputFunc func(button Button) bool

func (f InputFunc) Pressed(button Button) bool {
	return f(button)
}

// Frame is one recorded full-frame render
type Frame struct {
	At    time.Time
	Line1 string
	Row1  int
	Line2 string
	Row2  int
}

// RecordingDisplay records every render
type RecordingDisplay struct {
	mu     sync.Mutex
	clock  Clock
	frames []Frame
}

// NewRecordingDisplay creates a display fake timestamping frames from clock
func NewRecordingDisplay(clock Clock) *RecordingDisplay {
	return &RecordingDisplay{clock: clock}
}

func (d *RecordingDisplay) Render(line1 string, row1 int, line2 string, row2 int) {
	at := d.clock.Now()
	d.mu.Lock()
	defer d.mu.Unlock()
	d.frames = append(d.frames, Frame{At: at, Line1: line1, Row1: row1, Line2: line2, Row2: row2})
}

// Frames returns a copy of all recorded frames
func (d *RecordingDisplay) Frames() []Frame {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]Frame, len(d.frames))
	copy(out, d.frames)
	return out
}

// NewMockBoard wires recording fakes around one virtual clock
func NewMockBoard(clock *MockClock, input Input) (Board, *RecordingVisual, *RecordingAudio, *RecordingDisplay) {
	visual := NewRecordingVisual(clock)
	audio := NewRecordingAudio(clock)
	display := NewRecordingDisplay(clock)
	if input == nil {
		input = InputFunc(func(Button) bool { return false })
	}
	return Board{
		Visual:  visual,
		Audio:   audio,
		Input:   input,
		Display: display,
		Clock:   clock,
	}, visual, audio, display
}
