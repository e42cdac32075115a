// Package stage implements the processing stages of a synthesis graph:
// oscillators, filters, envelopes, and low-frequency oscillators. Stages
// process blocks of samples and expose their tunable state through named,
// range-checked parameters.
package stage

import (
	"fmt"

	"github.com/cwbudde/algo-synth/synth/param"
)

// Stage kind names as used by preset descriptions.
const (
	TypeOscillator = "oscillator"
	TypeFilter     = "filter"
	TypeEnvelope   = "envelope"
	TypeLFO        = "lfo"
)

// Stage is a block processor with named parameters. Process returns a block
// of the same length as its input. Reset clears time-varying state (phase
// accumulators, filter history, envelope position) but never parameter
// values.
type Stage interface {
	Process(input []float64) []float64
	SetParameter(name string, value param.Value) error
	Parameter(name string) (param.Value, error)
	ParameterNames() []string
	Reset()
	Type() string
	Description() string
	SetSampleRate(sampleRate float64)
}

// New constructs a stage by type name. Unknown names return an
// *UnknownTypeError.
func New(typeName string, sampleRate float64) (Stage, error) {
	switch typeName {
	case TypeOscillator:
		return NewOscillator(sampleRate), nil
	case TypeFilter:
		return NewFilter(sampleRate), nil
	case TypeEnvelope:
		return NewEnvelope(sampleRate), nil
	case TypeLFO:
		return NewLFO(sampleRate), nil
	default:
		return nil, &UnknownTypeError{Type: typeName}
	}
}

// UnknownTypeError reports a stage type name New does not recognize.
type UnknownTypeError struct {
	Type string
}

func (e *UnknownTypeError) Error() string {
	return fmt.Sprintf("unknown stage type %q", e.Type)
}

func unknownParam(stageType, name string) error {
	return fmt.Errorf("%s stage: %w: %q", stageType, param.ErrUnknownParameter, name)
}

func floatArg(stageType, name string, value param.Value) (float64, error) {
	v, err := value.AsFloat()
	if err != nil {
		return 0, fmt.Errorf("%s stage, parameter %q: %w", stageType, name, err)
	}
	return v, nil
}

func stringArg(stageType, name string, value param.Value) (string, error) {
	v, err := value.AsString()
	if err != nil {
		return "", fmt.Errorf("%s stage, parameter %q: %w", stageType, name, err)
	}
	return v, nil
}
