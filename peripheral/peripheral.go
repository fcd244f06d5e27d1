// Package peripheral declares the narrow hardware capabilities the game core
// drives: lights, buzzers, buttons, a two-line display and a monotonic clock.
package peripheral

import "time"

// Light is a logical visual output channel
type Light int

const (
	LightGreen Light = iota
	LightRed
	LightBlue // present on the board, unused by game logic
	LightCount
)

func (l Light) String() string {
	switch l {
	case LightGreen:
		return "green"
	case LightRed:
		return "red"
	case LightBlue:
		return "blue"
	default:
		return "unknown"
	}
}

// Buzzer is a logical audio output channel
type Buzzer int

const (
	BuzzerA Buzzer = iota
	BuzzerB
	BuzzerCount
)

func (b Buzzer) String() string {
	switch b {
	case BuzzerA:
		return "A"
	case BuzzerB:
		return "B"
	default:
		return "unknown"
	}
}

// Button is a logical input channel
type Button int

const (
	ButtonA Button = iota
	ButtonB
	ButtonJoystick
	ButtonCount
)

func (b Button) String() string {
	switch b {
	case ButtonA:
		return "A"
	case ButtonB:
		return "B"
	case ButtonJoystick:
		return "joystick"
	default:
		return "unknown"
	}
}

// Visual switches lights on and off
type Visual interface {
	SetLight(light Light, on bool)
}

// Audio plays tones on the buzzers
type Audio interface {
	// PlayTone blocks until the tone has played for d and leaves the buzzer silent
	PlayTone(buzzer Buzzer, freqHz int, d time.Duration)
	// Silence forces every buzzer off
	Silence()
}

// Input samples button state
type Input interface {
	Pressed(button Button) bool
}

// Display redraws the whole frame with two text lines at the given rows
type Display interface {
	Render(line1 string, row1 int, line2 string, row2 int)
}

// Clock is the time source and the only way the game loops yield
type Clock interface {
	Now() time.Time
	Sleep(d time.Duration)
}

// Board bundles every capability of one physical (or simulated) device
type Board struct {
	Visual  Visual
	Audio   Audio
	Input   Input
	Display Display
	Clock   Clock
}

// AllLightsOff drives every light channel low
func AllLightsOff(v Visual) {
	for l := Light(0); l < LightCount; l++ {
		v.SetLight(l, false)
	}
}
