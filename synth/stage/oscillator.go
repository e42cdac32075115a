package stage

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/dsp/wave"
	"github.com/cwbudde/algo-synth/synth/param"
)

// Oscillator generates a periodic waveform and adds it to the incoming
// block, so oscillators can be layered in a chain. The phase parameter is a
// normalized offset in [0, 1] applied on top of the running accumulator.
type Oscillator struct {
	frequency param.Ranged
	amplitude param.Ranged
	phase     param.Ranged
	shape     wave.Shape

	sampleRate float64
	phaseAcc   float64
	out        []float64
}

// NewOscillator builds a sine oscillator at 440 Hz with amplitude 0.5.
func NewOscillator(sampleRate float64) *Oscillator {
	return &Oscillator{
		frequency:  param.NewRanged("frequency", 440, 20, 20000),
		amplitude:  param.NewRanged("amplitude", 0.5, 0, 1),
		phase:      param.NewRanged("phase", 0, 0, 1),
		shape:      wave.Sine,
		sampleRate: sampleRate,
	}
}

// Process renders one block. The returned slice is reused across calls.
func (o *Oscillator) Process(input []float64) []float64 {
	o.out = core.EnsureLen(o.out, len(input))

	inc := wave.PhaseIncrement(o.frequency.Value(), o.sampleRate)
	amp := o.amplitude.Value()
	offset := o.phase.Value() * 2 * math.Pi

	for i, x := range input {
		s := wave.Sample(o.shape, wave.WrapPhase(o.phaseAcc+offset))
		o.out[i] = s*amp + x
		o.phaseAcc = wave.WrapPhase(o.phaseAcc + inc)
	}
	return o.out
}

// SetParameter updates one of frequency, amplitude, phase, or waveType.
func (o *Oscillator) SetParameter(name string, value param.Value) error {
	switch name {
	case "frequency":
		v, err := floatArg(TypeOscillator, name, value)
		if err != nil {
			return err
		}
		return o.frequency.Set(v)
	case "amplitude":
		v, err := floatArg(TypeOscillator, name, value)
		if err != nil {
			return err
		}
		return o.amplitude.Set(v)
	case "phase":
		v, err := floatArg(TypeOscillator, name, value)
		if err != nil {
			return err
		}
		return o.phase.Set(v)
	case "waveType":
		s, err := stringArg(TypeOscillator, name, value)
		if err != nil {
			return err
		}
		shape, err := wave.ParseShape(s)
		if err != nil {
			return err
		}
		o.shape = shape
		return nil
	default:
		return unknownParam(TypeOscillator, name)
	}
}

// Parameter returns the current value of a named parameter.
func (o *Oscillator) Parameter(name string) (param.Value, error) {
	switch name {
	case "frequency":
		return param.Float(o.frequency.Value()), nil
	case "amplitude":
		return param.Float(o.amplitude.Value()), nil
	case "phase":
		return param.Float(o.phase.Value()), nil
	case "waveType":
		return param.String(o.shape.String()), nil
	default:
		return param.Value{}, unknownParam(TypeOscillator, name)
	}
}

// ParameterNames lists the parameters this stage exposes.
func (o *Oscillator) ParameterNames() []string {
	return []string{"frequency", "amplitude", "phase", "waveType"}
}

// Reset clears the phase accumulator. Parameter values are untouched.
func (o *Oscillator) Reset() {
	o.phaseAcc = 0
}

// Type returns the stage kind name.
func (o *Oscillator) Type() string { return TypeOscillator }

// Description summarizes the current configuration.
func (o *Oscillator) Description() string {
	return fmt.Sprintf("Oscillator: %s wave at %g Hz", o.shape, o.frequency.Value())
}

// SetSampleRate changes the rate used for phase increments.
func (o *Oscillator) SetSampleRate(sampleRate float64) {
	o.sampleRate = sampleRate
}

// Amplitude returns the current amplitude. The safety layer uses it as the
// stage's gain estimate.
func (o *Oscillator) Amplitude() float64 {
	return o.amplitude.Value()
}
