package stage

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/biquad"
	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/param"
)

// Filter is a two-pole IIR filter with RBJ cookbook coefficients. The
// resonance parameter acts directly as the quality factor; resonance 0 falls
// back to a Butterworth response. Filter history persists across blocks.
type Filter struct {
	cutoff     param.Ranged
	resonance  param.Ranged
	filterType string

	sampleRate float64
	section    biquad.Section
	out        []float64
}

// NewFilter builds a lowpass filter at 1 kHz with resonance 0.1.
func NewFilter(sampleRate float64) *Filter {
	return &Filter{
		cutoff:     param.NewRanged("cutoff", 1000, 20, 20000),
		resonance:  param.NewRanged("resonance", 0.1, 0, 0.99),
		filterType: "lowpass",
		sampleRate: sampleRate,
	}
}

// Process filters one block. Coefficients are rederived per block so cutoff
// and resonance changes take effect on the next call.
func (f *Filter) Process(input []float64) []float64 {
	f.out = core.EnsureLen(f.out, len(input))

	var coeff biquad.Coefficients
	switch f.filterType {
	case "highpass":
		coeff = biquad.HighpassRBJ(f.cutoff.Value(), f.resonance.Value(), f.sampleRate)
	default:
		coeff = biquad.LowpassRBJ(f.cutoff.Value(), f.resonance.Value(), f.sampleRate)
	}
	f.section.SetCoefficients(coeff)
	f.section.ProcessBlockTo(f.out, input)
	return f.out
}

// SetParameter updates one of cutoff, resonance, or filterType.
func (f *Filter) SetParameter(name string, value param.Value) error {
	switch name {
	case "cutoff":
		v, err := floatArg(TypeFilter, name, value)
		if err != nil {
			return err
		}
		return f.cutoff.Set(v)
	case "resonance":
		v, err := floatArg(TypeFilter, name, value)
		if err != nil {
			return err
		}
		return f.resonance.Set(v)
	case "filterType":
		s, err := stringArg(TypeFilter, name, value)
		if err != nil {
			return err
		}
		f.filterType = s
		return nil
	default:
		return unknownParam(TypeFilter, name)
	}
}

// Parameter returns the current value of a named parameter.
func (f *Filter) Parameter(name string) (param.Value, error) {
	switch name {
	case "cutoff":
		return param.Float(f.cutoff.Value()), nil
	case "resonance":
		return param.Float(f.resonance.Value()), nil
	case "filterType":
		return param.String(f.filterType), nil
	default:
		return param.Value{}, unknownParam(TypeFilter, name)
	}
}

// ParameterNames lists the parameters this stage exposes.
func (f *Filter) ParameterNames() []string {
	return []string{"cutoff", "resonance", "filterType"}
}

// Reset zeroes the filter history. Parameter values are untouched.
func (f *Filter) Reset() {
	f.section.Reset()
}

// Type returns the stage kind name.
func (f *Filter) Type() string { return TypeFilter }

// Description summarizes the current configuration.
func (f *Filter) Description() string {
	return fmt.Sprintf("Filter: %s at %g Hz", f.filterType, f.cutoff.Value())
}

// SetSampleRate changes the rate used for coefficient design.
func (f *Filter) SetSampleRate(sampleRate float64) {
	f.sampleRate = sampleRate
}
