package safety

import (
	"math"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/stats"
)

// Metrics is the aggregate safety picture of one rendered block. All dB
// values are floored so silence stays finite.
type Metrics struct {
	TruePeakDB    float64
	RMSDB         float64
	CrestFactorDB float64
	DCOffsetDB    float64
	Clipping      bool
	Denormals     bool
	HeadroomDB    float64
}

// Pass/fail thresholds for Metrics. The headroom floor is minHeadroomDB.
const (
	maxTruePeakDB = -0.1
	maxDCOffsetDB = -60.0
)

// MeasureSafety computes the safety metrics of one block.
func MeasureSafety(audio []float64) Metrics {
	st := stats.Calculate(audio)
	peak := st.Peak

	m := Metrics{
		TruePeakDB: core.LinearToDBFloored(peak),
		RMSDB:      core.LinearToDBFloored(st.RMS),
		DCOffsetDB: core.LinearToDBFloored(math.Abs(st.DC)),
		Clipping:   CheckClipping(audio),
		Denormals:  CheckDenormals(audio),
		HeadroomDB: -core.LinearToDBFloored(peak),
	}
	if st.RMS > 0 {
		m.CrestFactorDB = core.LinearToDB(peak / st.RMS)
	}
	return m
}

// WithinThresholds is the pass/fail gate over a block's metrics: clipping,
// denormals, a true peak above -0.1 dB, DC above -60 dB, or headroom under
// 3 dB all fail.
func WithinThresholds(m Metrics) bool {
	switch {
	case m.Clipping, m.Denormals:
		return false
	case m.TruePeakDB > maxTruePeakDB:
		return false
	case m.DCOffsetDB > maxDCOffsetDB:
		return false
	case m.HeadroomDB < minHeadroomDB:
		return false
	default:
		return true
	}
}

// MonitorSafety measures one block and applies the threshold gate.
func MonitorSafety(audio []float64) bool {
	return WithinThresholds(MeasureSafety(audio))
}
