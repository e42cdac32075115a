package stage

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/wave"
	"github.com/cwbudde/algo-synth/synth/param"
)

// LFO adds a slow periodic modulation signal to the incoming block. Unlike
// Oscillator there is no gain on the carried input; the waveform is scaled
// by depth and summed in.
type LFO struct {
	rate  param.Ranged
	depth param.Ranged
	shape wave.Shape

	sampleRate float64
	phase      float64
	out        []float64
}

// NewLFO builds a sine LFO at 1 Hz with depth 0.5.
func NewLFO(sampleRate float64) *LFO {
	return &LFO{
		rate:       param.NewRanged("rate", 1, 0.01, 20),
		depth:      param.NewRanged("depth", 0.5, 0, 1),
		shape:      wave.Sine,
		sampleRate: sampleRate,
	}
}

// Process renders one block. The returned slice is reused across calls.
func (l *LFO) Process(input []float64) []float64 {
	l.out = core.EnsureLen(l.out, len(input))

	inc := wave.PhaseIncrement(l.rate.Value(), l.sampleRate)
	depth := l.depth.Value()

	for i, x := range input {
		l.out[i] = x + wave.Sample(l.shape, l.phase)*depth
		l.phase = wave.WrapPhase(l.phase + inc)
	}
	return l.out
}

// SetParameter updates one of rate, depth, or waveType.
func (l *LFO) SetParameter(name string, value param.Value) error {
	switch name {
	case "rate":
		v, err := floatArg(TypeLFO, name, value)
		if err != nil {
			return err
		}
		return l.rate.Set(v)
	case "depth":
		v, err := floatArg(TypeLFO, name, value)
		if err != nil {
			return err
		}
		return l.depth.Set(v)
	case "waveType":
		s, err := stringArg(TypeLFO, name, value)
		if err != nil {
			return err
		}
		shape, err := wave.ParseShape(s)
		if err != nil {
			return err
		}
		l.shape = shape
		return nil
	default:
		return unknownParam(TypeLFO, name)
	}
}

// Parameter returns the current value of a named parameter.
func (l *LFO) Parameter(name string) (param.Value, error) {
	switch name {
	case "rate":
		return param.Float(l.rate.Value()), nil
	case "depth":
		return param.Float(l.depth.Value()), nil
	case "waveType":
		return param.String(l.shape.String()), nil
	default:
		return param.Value{}, unknownParam(TypeLFO, name)
	}
}

// ParameterNames lists the parameters this stage exposes.
func (l *LFO) ParameterNames() []string {
	return []string{"rate", "depth", "waveType"}
}

// Reset clears the phase accumulator. Parameter values are untouched.
func (l *LFO) Reset() {
	l.phase = 0
}

// Type returns the stage kind name.
func (l *LFO) Type() string { return TypeLFO }

// Description summarizes the current configuration.
func (l *LFO) Description() string {
	return fmt.Sprintf("LFO: %s at %g Hz, depth %g", l.shape, l.rate.Value(), l.depth.Value())
}

// SetSampleRate changes the rate used for phase increments.
func (l *LFO) SetSampleRate(sampleRate float64) {
	l.sampleRate = sampleRate
}
