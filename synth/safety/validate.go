package safety

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/stats"
	"github.com/cwbudde/algo-synth/synth/graph"
	"github.com/cwbudde/algo-synth/synth/param"
)

// Detection thresholds for rendered audio.
const (
	clipLevel       = 1.0
	dcOffsetLevel   = 0.001
	silenceRMSLevel = 0.001
)

// ValidateAudio aggregates every problem found in a rendered block as plain
// strings: clipping, DC offset, silence, and denormal samples.
func ValidateAudio(audio []float64) []string {
	var issues []string

	if CheckClipping(audio) {
		issues = append(issues, "audio clipping detected")
	}
	if CheckDCOffset(audio) {
		issues = append(issues, "DC offset detected")
	}
	if CheckSilence(audio) {
		issues = append(issues, "audio is silent or too quiet")
	}
	if CheckDenormals(audio) {
		issues = append(issues, "denormal numbers detected")
	}

	return issues
}

// CheckClipping reports whether any sample reaches full scale.
func CheckClipping(audio []float64) bool {
	for _, s := range audio {
		if math.Abs(s) >= clipLevel {
			return true
		}
	}
	return false
}

// CheckDCOffset reports whether the block mean exceeds the DC threshold.
func CheckDCOffset(audio []float64) bool {
	if len(audio) == 0 {
		return false
	}
	return math.Abs(stats.DC(audio)) > dcOffsetLevel
}

// CheckSilence reports whether the block RMS is below the silence threshold.
func CheckSilence(audio []float64) bool {
	return stats.RMS(audio) < silenceRMSLevel
}

// CheckDenormals reports whether any sample is subnormal.
func CheckDenormals(audio []float64) bool {
	return stats.HasSubnormal(audio)
}

// ValidateGraph reports structural graph problems together with any
// parameter that is NaN/Inf or fails to read back.
func ValidateGraph(g *graph.Graph) []string {
	var issues []string

	if g.HasCycles() {
		issues = append(issues, "graph contains cycles")
	}
	if !g.IsConnected() {
		issues = append(issues, "graph has disconnected components")
	}

	for _, name := range g.StageNames() {
		s := g.Stage(name)
		for _, pn := range s.ParameterNames() {
			v, err := s.Parameter(pn)
			if err != nil {
				issues = append(issues, fmt.Sprintf("stage %q parameter %q error: %v", name, pn, err))
				continue
			}
			if v.Kind() != param.KindFloat {
				continue
			}
			value, _ := v.AsFloat()
			if !core.IsFiniteNumber(value) {
				issues = append(issues, fmt.Sprintf("stage %q parameter %q is invalid", name, pn))
			}
		}
	}

	return issues
}
