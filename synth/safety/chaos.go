package safety

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/measure/spectral"
	"github.com/cwbudde/algo-synth/stats"
	"github.com/cwbudde/algo-synth/synth/graph"
	"github.com/cwbudde/algo-synth/synth/param"
)

// Bounds for runaway parameter detection. Finite values beyond the extreme
// bound are clamped back into it; NaN and Inf are reset outright.
const (
	extremeValueBound = 1000.0
	chaosVarianceGate = 1.0
	chaosFlatnessGate = 0.5
)

// PreventChaos sanitizes every float parameter in the graph: NaN and Inf
// become 0, finite values beyond ±1000 are clamped. When the sanitized
// value falls outside the parameter's own range, the nearest range bound is
// written instead.
func PreventChaos(g *graph.Graph) {
	for _, name := range g.StageNames() {
		s := g.Stage(name)
		for _, pn := range s.ParameterNames() {
			v, err := s.Parameter(pn)
			if err != nil || v.Kind() != param.KindFloat {
				continue
			}
			value, _ := v.AsFloat()

			var sanitized float64
			switch {
			case !core.IsFiniteNumber(value):
				sanitized = 0
			case math.Abs(value) > extremeValueBound:
				sanitized = core.Clamp(value, -extremeValueBound, extremeValueBound)
			default:
				continue
			}

			err = s.SetParameter(pn, param.Float(sanitized))
			var re *param.RangeError
			if errors.As(err, &re) {
				_ = s.SetParameter(pn, param.Float(core.Clamp(sanitized, re.Min, re.Max)))
			}
		}
	}
}

// ChaosIndicators reports every parameter that is NaN, infinite, or beyond
// the extreme value bound.
func ChaosIndicators(g *graph.Graph) []string {
	var indicators []string
	for _, name := range g.StageNames() {
		s := g.Stage(name)
		for _, pn := range s.ParameterNames() {
			v, err := s.Parameter(pn)
			if err != nil || v.Kind() != param.KindFloat {
				continue
			}
			value, _ := v.AsFloat()
			if !core.IsFiniteNumber(value) {
				indicators = append(indicators, fmt.Sprintf("stage %q parameter %q is NaN/Inf", name, pn))
			} else if math.Abs(value) > extremeValueBound {
				indicators = append(indicators,
					fmt.Sprintf("stage %q parameter %q has extreme value: %g", name, pn, value))
			}
		}
	}
	return indicators
}

// CheckParameterBounds reports whether every float parameter in the graph
// is finite and within the extreme value bound.
func CheckParameterBounds(g *graph.Graph) bool {
	for _, name := range g.StageNames() {
		s := g.Stage(name)
		for _, pn := range s.ParameterNames() {
			v, err := s.Parameter(pn)
			if err != nil || v.Kind() != param.KindFloat {
				continue
			}
			value, _ := v.AsFloat()
			if !core.IsFiniteNumber(value) || math.Abs(value) > extremeValueBound {
				return false
			}
		}
	}
	return true
}

// DetectChaos flags a rendered block as chaotic when its variance exceeds
// the gate, or when a clearly non-silent block has a broadband, noise-like
// spectrum. Graphs built from pure oscillators produce line spectra with
// flatness well below the gate; noise-like flatness points at runaway
// feedback or parameter corruption.
func DetectChaos(audio []float64, sampleRate float64) bool {
	if len(audio) == 0 {
		return false
	}

	st := stats.Calculate(audio)
	if st.Variance > chaosVarianceGate {
		return true
	}

	if st.RMS < 0.01 {
		return false
	}
	analysis, err := spectral.Analyze(audio, sampleRate)
	if err != nil {
		return false
	}
	return analysis.Flatness > chaosFlatnessGate
}
