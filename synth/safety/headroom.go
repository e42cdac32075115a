package safety

import (
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/graph"
	"github.com/cwbudde/algo-synth/synth/param"
	"github.com/cwbudde/algo-synth/synth/stage"
)

// Headroom defaults in dB.
const (
	defaultHeadroomDB = 6.0
	minHeadroomDB     = 3.0
)

// Headroom returns the distance in dB between the block's peak and full
// scale, 20*log10(1/peak). A silent block reports 0.
func Headroom(audio []float64) float64 {
	peak := TruePeak(audio)
	if peak <= 0 {
		return 0
	}
	return core.LinearToDB(1 / peak)
}

// ManageHeadroom scales every oscillator's amplitude down by the target
// headroom so the rendered level leaves that much room to full scale.
func ManageHeadroom(g *graph.Graph, targetDB float64) {
	gain := core.DBToLinear(-targetDB)
	for _, name := range g.StageNames() {
		osc, ok := g.Stage(name).(*stage.Oscillator)
		if !ok {
			continue
		}
		// Scaling down keeps amplitude within [0, 1] for positive targets.
		_ = osc.SetParameter("amplitude", param.Float(osc.Amplitude()*gain))
	}
}

// AdjustHeadroom attenuates the block when its headroom is below targetDB.
// Blocks already at or above the target pass unchanged.
func AdjustHeadroom(audio []float64, targetDB float64) {
	current := Headroom(audio)
	if current < targetDB {
		vecmath.ScaleBlockInPlace(audio, core.DBToLinear(current-targetDB))
	}
}

// MonitorHeadroom reports whether the block keeps at least minDB headroom.
func MonitorHeadroom(audio []float64, minDB float64) bool {
	return Headroom(audio) >= minDB
}
