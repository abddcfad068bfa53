package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

// bassline is an A minor arpeggio, one note per step
var bassline = []float64{110.00, 130.81, 164.81, 196.00, 164.81, 130.81, 110.00, 98.00}

// musicGenerator loops the bassline forever with a pulsing pad on top
type musicGenerator struct {
	rate     beep.SampleRate
	step     int // samples per note
	position int
	phase    float64
	padPhase float64
}

// NewMusic returns an endless background track
func NewMusic(rate beep.SampleRate) beep.Streamer {
	return &musicGenerator{rate: rate, step: rate.N(220 * time.Millisecond)}
}

func (g *musicGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		note := (g.position / g.step) % len(bassline)
		inNote := float64(g.position%g.step) / float64(g.step)
		freq := bassline[note]

		// plucked saw bass
		bass := 2.0*(g.phase-0.5)*math.Exp(-inNote*4)*0.35
		// slow pad an octave up
		pad := math.Sin(2*math.Pi*g.padPhase) * 0.12 * (0.6 + 0.4*math.Sin(2*math.Pi*float64(g.position)/float64(g.rate.N(4*time.Second))))

		s := bass + pad
		samples[i][0] = s
		samples[i][1] = s

		g.phase += freq / float64(g.rate)
		g.phase -= math.Floor(g.phase)
		g.padPhase += 2 * bassline[0] / float64(g.rate)
		g.padPhase -= math.Floor(g.padPhase)
		g.position++
	}
	return len(samples), true
}

func (g *musicGenerator) Err() error { return nil }
