// Package spectral analyzes rendered audio blocks in the frequency domain.
// The safety layer uses its flatness measure as a chaos indicator: broadband,
// noise-like output from a graph of pure oscillators points at runaway
// feedback or parameter corruption.
package spectral

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-vecmath"

	"github.com/cwbudde/algo-synth/dsp/window"
)

// Analysis holds one-sided spectrum descriptors for a single block.
type Analysis struct {
	BinCount int
	Flatness float64 // Wiener entropy, 0..1; 1 is white-noise flat
	Centroid float64 // spectral centroid in Hz
	PeakBin  int
	PeakMag  float64
}

// Analyze Hann-windows the block, computes an FFT (zero-padded to the next
// power of two), and returns one-sided spectrum descriptors.
func Analyze(block []float64, sampleRate float64) (Analysis, error) {
	if len(block) < 2 {
		return Analysis{}, fmt.Errorf("spectral analysis requires at least 2 samples: %d", len(block))
	}
	if sampleRate <= 0 {
		return Analysis{}, fmt.Errorf("spectral analysis sample rate must be > 0: %f", sampleRate)
	}

	fftSize := nextPow2(len(block))

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return Analysis{}, fmt.Errorf("fft plan: %w", err)
	}

	// Hann window against leakage; the block is copied so callers keep
	// their samples.
	windowed := make([]float64, len(block))
	copy(windowed, block)
	window.ApplyType(window.TypeHann, windowed)

	in := make([]complex128, fftSize)
	for i, x := range windowed {
		in[i] = complex(x, 0)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return Analysis{}, fmt.Errorf("fft forward: %w", err)
	}

	// One-sided spectrum: bins 0..Nyquist.
	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for i := range bins {
		re[i] = real(out[i])
		im[i] = imag(out[i])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)

	a := Analysis{BinCount: bins}
	a.Flatness = flatness(mag)
	a.Centroid = centroid(mag, sampleRate)
	a.PeakBin, a.PeakMag = peak(mag)

	return a, nil
}

func nextPow2(n int) int {
	size := 1
	for size < n {
		size <<= 1
	}
	return size
}

// flatness returns the spectral flatness (Wiener entropy) in the range 0..1.
//
//	flatness = exp(mean(log(|X_i|))) / mean(|X_i|)
//
// The DC bin is excluded. If any considered bin is zero the geometric mean
// is zero, so flatness is zero.
func flatness(magnitude []float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	nBins := n - 1
	sumLin := 0.0
	sumLog := 0.0
	hasZero := false

	for i := 1; i < n; i++ {
		v := magnitude[i]
		sumLin += v
		if v > 0 {
			sumLog += math.Log(v)
		} else {
			hasZero = true
		}
	}

	meanLin := sumLin / float64(nBins)
	if meanLin == 0 || hasZero {
		return 0
	}

	return math.Exp(sumLog/float64(nBins)) / meanLin
}

// centroid returns the spectral centroid in Hz:
//
//	centroid = sum(f_i * |X_i|) / sum(|X_i|)
func centroid(magnitude []float64, sampleRate float64) float64 {
	n := len(magnitude)
	if n < 2 {
		return 0
	}

	sum := 0.0
	weighted := 0.0
	for i, v := range magnitude {
		sum += v
		weighted += binFreq(i, sampleRate, n) * v
	}

	if sum == 0 {
		return 0
	}

	return weighted / sum
}

func peak(magnitude []float64) (int, float64) {
	bin := 0
	val := 0.0
	for i, v := range magnitude {
		if v > val {
			val = v
			bin = i
		}
	}
	return bin, val
}

// binFreq returns the frequency in Hz of a given one-sided bin index.
// fftSize = 2 * (binCount - 1).
func binFreq(i int, sampleRate float64, binCount int) float64 {
	return float64(i) * sampleRate / float64(2*(binCount-1))
}
