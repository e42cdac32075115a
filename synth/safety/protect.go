package safety

import (
	"strings"

	"github.com/cwbudde/algo-synth/synth/graph"
)

// emergencyHardLimitDB is the clamp applied before true-peak limiting,
// as a last resort on rendered audio.
const emergencyHardLimitDB = -0.1

// ApplyProtection runs the basic and advanced protection passes over the
// graph. The graph-level passes deliberately keep their built-in targets,
// which match DefaultConstraints; buffer-level constraint values
// (TruePeakLimitDB, MaxLatencyMs) are consumed by the renderer instead.
func ApplyProtection(g *graph.Graph, _ Constraints) {
	ApplyBasicProtection(g)
	ApplyAdvancedProtection(g)
}

// ApplyBasicProtection gain-stages the graph and guards against feedback.
func ApplyBasicProtection(g *graph.Graph) {
	AutoGainStage(g)
	ApplyFeedbackProtection(g)
}

// ApplyAdvancedProtection sanitizes runaway parameters and applies headroom
// management.
func ApplyAdvancedProtection(g *graph.Graph) {
	PreventChaos(g)
	ManageHeadroom(g, defaultHeadroomDB)
}

// ApplyEmergencyProtection hard-limits a rendered block in place, then
// pulls its true peak down to truePeakLimitDB. It never fails: audio handed
// downstream must be free of hard clips whatever state the graph is in.
func ApplyEmergencyProtection(audio []float64, truePeakLimitDB float64) {
	HardLimit(audio, emergencyHardLimitDB)
	LimitTruePeak(audio, truePeakLimitDB)
}

// IsProtected reports whether the graph carries protection stages,
// recognized by "limiter" or "protection" in a stage name.
func IsProtected(g *graph.Graph) bool {
	for _, name := range g.StageNames() {
		if strings.Contains(name, "limiter") || strings.Contains(name, "protection") {
			return true
		}
	}
	return false
}
