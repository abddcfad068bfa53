// Package audio synthesizes the game's sound effects and music.
package audio

import (
	"math"
	"math/rand/v2"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// Sound identifies a sound effect
type Sound int

const (
	SoundShoot Sound = iota
	SoundExplode
	SoundDie
)

// String returns the sound name
func (s Sound) String() string {
	switch s {
	case SoundShoot:
		return "shoot"
	case SoundExplode:
		return "explode"
	case SoundDie:
		return "die"
	default:
		return "unknown"
	}
}

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a wave whose frequency slides linearly from
// freq to endFreq over its duration
type oscillator struct {
	freq     float64
	endFreq  float64
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	rng      *rand.Rand
}

// NewOscillator creates a finite oscillator. rng is only used by WaveNoise.
func NewOscillator(freq, endFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate, rng *rand.Rand) beep.Streamer {
	return &oscillator{
		freq:     freq,
		endFreq:  endFreq,
		duration: rate.N(duration),
		wave:     wave,
		rate:     rate,
		rng:      rng,
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
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.rng.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		progress := float64(o.position) / float64(o.duration)
		freq := o.freq + (o.endFreq-o.freq)*progress
		o.phase += freq / float64(o.rate)
		o.phase -= math.Floor(o.phase)
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies a linear attack and an exponential release
type envelope struct {
	streamer      beep.Streamer
	position      int
	attackSamples int
	totalSamples  int
	decay         float64 // release time constant in samples
}

// NewEnvelope shapes s over duration
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:      s,
		attackSamples: rate.N(attack),
		totalSamples:  rate.N(duration),
		decay:         math.Max(float64(rate.N(release)), 1),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)

	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}

		vol := 1.0
		if e.position < e.attackSamples {
			vol = float64(e.position) / float64(e.attackSamples)
		} else {
			vol = math.Exp(-float64(e.position-e.attackSamples) / e.decay)
		}

		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// newVolume scales s linearly; a zero volume is silent
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol)}
}

// CreateSound builds a fresh streamer for one play of s
func CreateSound(s Sound, rate beep.SampleRate, volume float64, rng *rand.Rand) beep.Streamer {
	switch s {
	case SoundShoot:
		d := 90 * time.Millisecond
		chirp := NewOscillator(1400, 300, d, WaveSquare, rate, rng)
		return newVolume(NewEnvelope(chirp, d, 2*time.Millisecond, 30*time.Millisecond, rate), 0.25*volume)

	case SoundExplode:
		d := 450 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate, rng), d, 3*time.Millisecond, 90*time.Millisecond, rate)
		thump := NewEnvelope(NewOscillator(140, 40, d, WaveSine, rate, rng), d, 3*time.Millisecond, 150*time.Millisecond, rate)
		return newVolume(beep.Mix(newVolume(noise, 0.6), newVolume(thump, 0.8)), 0.5*volume)

	case SoundDie:
		d := 1500 * time.Millisecond
		noise := NewEnvelope(NewOscillator(0, 0, d, WaveNoise, rate, rng), d, 5*time.Millisecond, 400*time.Millisecond, rate)
		fall := NewEnvelope(NewOscillator(220, 30, d, WaveSaw, rate, rng), d, 5*time.Millisecond, 600*time.Millisecond, rate)
		return newVolume(beep.Mix(newVolume(noise, 0.5), newVolume(fall, 0.5)), 0.7*volume)

	default:
		return nil
	}
}
