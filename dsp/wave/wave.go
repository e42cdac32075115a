// Package wave evaluates classic synthesizer waveforms from a phase angle.
package wave

import (
	"fmt"
	"math"
)

// Shape identifies a waveform.
type Shape int

const (
	// Sine is a pure sinusoid.
	Sine Shape = iota
	// Saw is a rising sawtooth in [-1, 1].
	Saw
	// Square alternates between +1 and -1 at half period.
	Square
	// Triangle rises then falls linearly in [-1, 1].
	Triangle
)

// String returns the canonical lower-case name of the shape.
func (s Shape) String() string {
	switch s {
	case Sine:
		return "sine"
	case Saw:
		return "saw"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape converts a waveform name into a Shape.
func ParseShape(name string) (Shape, error) {
	switch name {
	case "sine":
		return Sine, nil
	case "saw":
		return Saw, nil
	case "square":
		return Square, nil
	case "triangle":
		return Triangle, nil
	default:
		return Sine, fmt.Errorf("unknown waveform %q", name)
	}
}

// Sample evaluates the shape at phase, in radians. Phase is interpreted
// modulo 2*pi; callers are expected to keep accumulators wrapped into
// [0, 2*pi) via WrapPhase.
func Sample(s Shape, phase float64) float64 {
	switch s {
	case Sine:
		return math.Sin(phase)
	case Saw:
		return 2*(phase/(2*math.Pi)) - 1
	case Square:
		if phase < math.Pi {
			return 1
		}
		return -1
	case Triangle:
		if phase < math.Pi {
			return 2*phase/math.Pi - 1
		}
		return 3 - 2*phase/math.Pi
	default:
		return 0
	}
}

// WrapPhase folds phase into [0, 2*pi).
func WrapPhase(phase float64) float64 {
	for phase >= 2*math.Pi {
		phase -= 2 * math.Pi
	}
	for phase < 0 {
		phase += 2 * math.Pi
	}
	return phase
}

// PhaseIncrement returns the per-sample phase advance for a waveform at
// freq Hz rendered at sampleRate.
func PhaseIncrement(freq, sampleRate float64) float64 {
	if sampleRate <= 0 {
		return 0
	}
	return 2 * math.Pi * freq / sampleRate
}
