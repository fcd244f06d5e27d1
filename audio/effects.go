package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"

	"github.com/lixenwraith/reflex/constant"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
)

// oscillator generates raw audio waves
type oscillator struct {
	freq     float64
	phase    float64
	duty     float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
}

// NewOscillator creates a new oscillator for wave generation.
// duty is the high fraction of a square period, ignored for sine.
func NewOscillator(freq float64, duration time.Duration, wave WaveType, duty float64, rate beep.SampleRate) beep.Streamer {
	if duty <= 0 || duty >= 1 {
		duty = 0.5
	}
	return &oscillator{
		freq:     freq,
		duty:     duty,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < o.duty {
				val = 1.0
			} else {
				val = -1.0
			}
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope creates an attack/release envelope over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	total := rate.N(duration)
	att := rate.N(attack)
	rel := rate.N(release)
	if att+rel > total {
		att, rel = total/2, total-total/2
	}

	return &envelope{
		streamer:       s,
		attackSamples:  att,
		releaseSamples: rel,
		totalSamples:   total,
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		releaseStart := e.totalSamples - e.releaseSamples
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = float64(e.totalSamples-e.position) / float64(e.releaseSamples)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}

	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so 0 volume is handled by making it silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

// CreateTone generates a buzzer note: a 30% duty square wave, enveloped to
// avoid clicks, panned to the buzzer's side
func CreateTone(freqHz int, duration time.Duration, pan, volume float64, rate beep.SampleRate) beep.Streamer {
	osc := NewOscillator(float64(freqHz), duration, WaveSquare, constant.ToneDutyCycle, rate)
	shaped := NewEnvelope(osc, duration, constant.ToneAttack, constant.ToneRelease, rate)
	return &effects.Pan{Streamer: newVolume(shaped, volume), Pan: pan}
}
