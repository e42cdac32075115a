package safety

import (
	"math"

	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/core"
)

// TruePeak returns the largest absolute sample value in the block.
func TruePeak(audio []float64) float64 {
	return vecmath.MaxAbs(audio)
}

// LimitTruePeak scales the whole block down so its peak does not exceed
// limitDB. Blocks already under the limit pass unchanged.
func LimitTruePeak(audio []float64, limitDB float64) {
	peak := TruePeak(audio)
	limit := core.DBToLinear(limitDB)
	if peak > limit {
		vecmath.ScaleBlockInPlace(audio, limit/peak)
	}
}

// SoftLimit applies a knee above thresholdDB: the excess over the threshold
// is divided by ratio, sign preserved. Samples below the threshold pass
// unchanged.
func SoftLimit(audio []float64, thresholdDB, ratio float64) {
	threshold := core.DBToLinear(thresholdDB)
	inv := 1 / ratio

	for i, s := range audio {
		a := math.Abs(s)
		if a <= threshold {
			continue
		}
		limited := threshold + (a-threshold)*inv
		if s < 0 {
			audio[i] = -limited
		} else {
			audio[i] = limited
		}
	}
}

// HardLimit clamps every sample to ±10^(limitDB/20).
func HardLimit(audio []float64, limitDB float64) {
	limit := core.DBToLinear(limitDB)
	for i, s := range audio {
		if s > limit {
			audio[i] = limit
		} else if s < -limit {
			audio[i] = -limit
		}
	}
}
