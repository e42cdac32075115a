package stage

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/param"
)

// gateThreshold is the input level that opens and closes the envelope gate.
const gateThreshold = 0.001

// envState is the position of an Envelope in its state machine.
type envState int

const (
	envIdle envState = iota
	envAttack
	envDecay
	envSustain
	envRelease
)

func (s envState) String() string {
	switch s {
	case envIdle:
		return "idle"
	case envAttack:
		return "attack"
	case envDecay:
		return "decay"
	case envSustain:
		return "sustain"
	case envRelease:
		return "release"
	default:
		return fmt.Sprintf("envState(%d)", int(s))
	}
}

// Envelope is a gated ADSR amplitude envelope with linear ramps. The gate
// opens when the input rises above a small threshold and closes when it
// falls back below.
type Envelope struct {
	attack  param.Ranged
	decay   param.Ranged
	sustain param.Ranged
	release param.Ranged

	sampleRate float64
	state      envState
	level      float64
	rate       float64
	out        []float64
}

// NewEnvelope builds an envelope with 10 ms attack, 100 ms decay, sustain
// 0.7, and 500 ms release.
func NewEnvelope(sampleRate float64) *Envelope {
	return &Envelope{
		attack:     param.NewRanged("attack", 0.01, 0.001, 2),
		decay:      param.NewRanged("decay", 0.1, 0.001, 2),
		sustain:    param.NewRanged("sustain", 0.7, 0, 1),
		release:    param.NewRanged("release", 0.5, 0.001, 5),
		sampleRate: sampleRate,
	}
}

// Process shapes one block. Each output sample is the input scaled by the
// current envelope level.
func (e *Envelope) Process(input []float64) []float64 {
	e.out = core.EnsureLen(e.out, len(input))

	sustain := e.sustain.Value()

	for i, x := range input {
		if x > gateThreshold && e.state == envIdle {
			e.state = envAttack
			e.level = 0
			e.rate = 1 / (e.attack.Value() * e.sampleRate)
		} else if x <= gateThreshold && e.state != envIdle && e.state != envRelease {
			e.state = envRelease
			e.rate = 1 / (e.release.Value() * e.sampleRate)
		}

		switch e.state {
		case envAttack:
			e.level += e.rate
			if e.level >= 1 {
				e.level = 1
				e.state = envDecay
				e.rate = (1 - sustain) / (e.decay.Value() * e.sampleRate)
			}
		case envDecay:
			e.level -= e.rate
			if e.level <= sustain {
				e.level = sustain
				e.state = envSustain
			}
		case envSustain:
			e.level = sustain
		case envRelease:
			e.level -= e.rate
			if e.level <= 0 {
				e.level = 0
				e.state = envIdle
			}
		case envIdle:
			e.level = 0
		}

		e.out[i] = x * e.level
	}
	return e.out
}

// SetParameter updates one of attack, decay, sustain, or release.
func (e *Envelope) SetParameter(name string, value param.Value) error {
	var target *param.Ranged
	switch name {
	case "attack":
		target = &e.attack
	case "decay":
		target = &e.decay
	case "sustain":
		target = &e.sustain
	case "release":
		target = &e.release
	default:
		return unknownParam(TypeEnvelope, name)
	}

	v, err := floatArg(TypeEnvelope, name, value)
	if err != nil {
		return err
	}
	return target.Set(v)
}

// Parameter returns the current value of a named parameter.
func (e *Envelope) Parameter(name string) (param.Value, error) {
	switch name {
	case "attack":
		return param.Float(e.attack.Value()), nil
	case "decay":
		return param.Float(e.decay.Value()), nil
	case "sustain":
		return param.Float(e.sustain.Value()), nil
	case "release":
		return param.Float(e.release.Value()), nil
	default:
		return param.Value{}, unknownParam(TypeEnvelope, name)
	}
}

// ParameterNames lists the parameters this stage exposes.
func (e *Envelope) ParameterNames() []string {
	return []string{"attack", "decay", "sustain", "release"}
}

// Reset returns the state machine to idle. Parameter values are untouched.
func (e *Envelope) Reset() {
	e.state = envIdle
	e.level = 0
	e.rate = 0
}

// Type returns the stage kind name.
func (e *Envelope) Type() string { return TypeEnvelope }

// Description summarizes the current configuration.
func (e *Envelope) Description() string {
	return fmt.Sprintf("Envelope: A=%gs D=%gs S=%g R=%gs",
		e.attack.Value(), e.decay.Value(), e.sustain.Value(), e.release.Value())
}

// SetSampleRate changes the rate used for ramp slopes. Slopes of an active
// segment are recomputed on the next state transition.
func (e *Envelope) SetSampleRate(sampleRate float64) {
	e.sampleRate = sampleRate
}

// State exposes the envelope position for tests and diagnostics.
func (e *Envelope) State() string {
	return e.state.String()
}
