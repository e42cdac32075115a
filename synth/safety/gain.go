package safety

import (
	"fmt"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/graph"
	"github.com/cwbudde/algo-synth/synth/param"
	"github.com/cwbudde/algo-synth/synth/stage"
)

// defaultGainTargetDB is the gain staging target; oscillators louder than
// this plus the tolerance are pulled back to it.
const (
	defaultGainTargetDB = -18.0
	gainToleranceDB     = 3.0
)

// AutoGainStage pulls every over-loud oscillator back to the default
// -18 dB target.
func AutoGainStage(g *graph.Graph) {
	StageGain(g, defaultGainTargetDB)
}

// StageGain rewrites the amplitude of any oscillator whose estimated gain
// exceeds targetDB by more than 3 dB so its gain equals targetDB. Other
// stage kinds have no gain estimate and are left alone.
func StageGain(g *graph.Graph, targetDB float64) {
	for _, name := range g.StageNames() {
		s := g.Stage(name)
		gain, ok := stageGainDB(s)
		if !ok {
			continue
		}
		if gain > targetDB+gainToleranceDB {
			// Amplitude is in [0, 1]; a negative target always fits.
			_ = s.SetParameter("amplitude", param.Float(core.DBToLinear(targetDB)))
		}
	}
}

// CheckGainStaging reports stages with positive gain or gain below -30 dB.
func CheckGainStaging(g *graph.Graph) []string {
	var issues []string
	for _, name := range g.StageNames() {
		gain, ok := stageGainDB(g.Stage(name))
		if !ok {
			continue
		}
		if gain > 0 {
			issues = append(issues, fmt.Sprintf("stage %q has positive gain: %g dB", name, gain))
		}
		if gain < -30 {
			issues = append(issues, fmt.Sprintf("stage %q has very low gain: %g dB", name, gain))
		}
	}
	return issues
}

// stageGainDB estimates a stage's gain in dB. Only oscillators carry a
// meaningful estimate, via their amplitude.
func stageGainDB(s stage.Stage) (float64, bool) {
	osc, ok := s.(*stage.Oscillator)
	if !ok {
		return 0, false
	}
	return core.LinearToDBFloored(osc.Amplitude()), true
}
