package safety

import "github.com/cwbudde/algo-synth/synth/graph"

// stableGainLimit leaves a safety margin below unity loop gain.
const stableGainLimit = 0.99

// LoopGain estimates the graph's feedback loop gain. It delegates to
// Graph.TotalGain, a coarse product-of-amplitudes heuristic.
func LoopGain(g *graph.Graph) float64 {
	return g.TotalGain()
}

// IsStableGain reports whether a loop gain is safely below unity.
func IsStableGain(gain float64) bool {
	return gain < stableGainLimit
}

// CheckFeedbackStability reports whether the graph's estimated loop gain is
// safely below unity.
func CheckFeedbackStability(g *graph.Graph) bool {
	return IsStableGain(LoopGain(g))
}

// CheckRootLocusStability applies the strict unity criterion without the
// safety margin.
func CheckRootLocusStability(g *graph.Graph) bool {
	return LoopGain(g) < 1.0
}

// ApplyFeedbackProtection gain-stages the graph when its estimated loop
// gain is unstable. Stable graphs are left untouched.
func ApplyFeedbackProtection(g *graph.Graph) {
	if !CheckFeedbackStability(g) {
		AutoGainStage(g)
	}
}
