package constant

import "time"

// Audio Hardware Settings
const (
	AudioSampleRate = 44100

	// AudioBufferDuration determines speaker latency
	AudioBufferDuration = 50 * time.Millisecond
)

// Stimulus Tones
const (
	// NoteDuration is the blocking length of every stimulus tone
	NoteDuration = 300 * time.Millisecond

	NoteGreenHz  = 3000
	NoteRedHz    = 3500
	NoteYellowHz = 4000

	// ToneDutyCycle matches the buzzer PWM level (30% of wrap)
	ToneDutyCycle = 0.3

	ToneAttack  = 5 * time.Millisecond
	ToneRelease = 20 * time.Millisecond

	// BuzzerPan spreads the two buzzers across stereo channels
	BuzzerPan = 0.6
)
