// Package stats computes time-domain signal statistics used by the safety
// layer: peak, RMS, DC offset, and crest factor, each with dB variants.
package stats

import "math"

// Stats holds time-domain signal statistics.
//
//nolint:revive
type Stats struct {
	Length         int
	DC             float64 // mean
	DC_dB          float64
	RMS            float64
	RMS_dB         float64
	Peak           float64 // max absolute amplitude
	Peak_dB        float64
	CrestFactor    float64 // peak / RMS (linear)
	CrestFactor_dB float64
	Variance       float64
	Energy         float64 // sum of squares
}

// ampTodB converts an amplitude value to decibels: 20 * log10(|value|).
// Returns -Inf for zero values.
func ampTodB(value float64) float64 {
	a := math.Abs(value)
	if a == 0 {
		return math.Inf(-1)
	}

	return 20 * math.Log10(a)
}

// emptyStats returns a zero-valued Stats with -Inf for all dB fields.
func emptyStats() Stats {
	return Stats{
		DC_dB:          math.Inf(-1),
		RMS_dB:         math.Inf(-1),
		Peak_dB:        math.Inf(-1),
		CrestFactor_dB: math.Inf(-1),
	}
}

// Calculate computes all statistics in a single pass over the signal.
func Calculate(signal []float64) Stats {
	n := len(signal)
	if n == 0 {
		return emptyStats()
	}

	var (
		sum   float64
		sumSq float64
		peak  float64
	)

	for _, x := range signal {
		sum += x
		sumSq += x * x

		a := math.Abs(x)
		if a > peak {
			peak = a
		}
	}

	nf := float64(n)
	mean := sum / nf
	rms := math.Sqrt(sumSq / nf)
	variance := sumSq/nf - mean*mean
	if variance < 0 {
		variance = 0
	}

	var crest, crestdB float64
	if rms == 0 {
		crest = 0
		crestdB = 0
	} else {
		crest = peak / rms
		crestdB = ampTodB(crest)
	}

	return Stats{
		Length:         n,
		DC:             mean,
		DC_dB:          ampTodB(mean),
		RMS:            rms,
		RMS_dB:         ampTodB(rms),
		Peak:           peak,
		Peak_dB:        ampTodB(peak),
		CrestFactor:    crest,
		CrestFactor_dB: crestdB,
		Variance:       variance,
		Energy:         sumSq,
	}
}

// RMS returns the root-mean-square of the signal.
func RMS(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	var sumSq float64
	for _, x := range signal {
		sumSq += x * x
	}

	return math.Sqrt(sumSq / float64(len(signal)))
}

// DC returns the mean (DC offset) of the signal.
func DC(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}
	// Use Kahan summation for numerical stability.
	var sum, c float64
	for _, x := range signal {
		y := x - c
		t := sum + y
		c = (t - sum) - y
		sum = t
	}

	return sum / float64(len(signal))
}

// Peak returns the peak absolute amplitude of the signal.
func Peak(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	peak := math.Abs(signal[0])
	for _, x := range signal[1:] {
		a := math.Abs(x)
		if a > peak {
			peak = a
		}
	}

	return peak
}

// CrestFactor returns the crest factor (peak / RMS) of the signal.
// Returns 0 if RMS is zero.
func CrestFactor(signal []float64) float64 {
	r := RMS(signal)
	if r == 0 {
		return 0
	}

	return Peak(signal) / r
}

// Variance returns the population variance of the signal.
func Variance(signal []float64) float64 {
	if len(signal) == 0 {
		return 0
	}

	mean := DC(signal)

	var sumSq float64
	for _, x := range signal {
		d := x - mean
		sumSq += d * d
	}

	return sumSq / float64(len(signal))
}

// smallestNormal is the smallest positive normal float64.
const smallestNormal = 0x1p-1022

// HasSubnormal reports whether the signal contains any subnormal value.
// Subnormals cause severe slowdowns in recursive DSP loops on some CPUs.
func HasSubnormal(signal []float64) bool {
	for _, x := range signal {
		a := math.Abs(x)
		if a > 0 && a < smallestNormal {
			return true
		}
	}

	return false
}
