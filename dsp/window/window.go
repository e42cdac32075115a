// Package window generates taper functions applied to blocks before
// spectral analysis to reduce leakage.
package window

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

// Type identifies a window function.
type Type int

const (
	TypeRectangular Type = iota
	TypeHann
	TypeHamming
	TypeBlackman
)

// String returns the window name.
func (t Type) String() string {
	switch t {
	case TypeRectangular:
		return "rectangular"
	case TypeHann:
		return "hann"
	case TypeHamming:
		return "hamming"
	case TypeBlackman:
		return "blackman"
	default:
		return "unknown"
	}
}

// Coefficients returns the symmetric window of length n. Length 0 returns
// nil; length 1 returns a single unity coefficient.
func Coefficients(t Type, n int) []float64 {
	if n <= 0 {
		return nil
	}
	coeffs := make([]float64, n)
	if n == 1 {
		coeffs[0] = 1
		return coeffs
	}

	for i := range coeffs {
		x := float64(i) / float64(n-1)
		switch t {
		case TypeHann:
			coeffs[i] = 0.5 - 0.5*math.Cos(2*math.Pi*x)
		case TypeHamming:
			coeffs[i] = 0.54 - 0.46*math.Cos(2*math.Pi*x)
		case TypeBlackman:
			coeffs[i] = 0.42 - 0.5*math.Cos(2*math.Pi*x) + 0.08*math.Cos(4*math.Pi*x)
		default:
			coeffs[i] = 1
		}
	}
	return coeffs
}

// Apply multiplies buf by the window in place. The coefficient slice must
// have the same length as buf.
func Apply(buf, coeffs []float64) {
	vecmath.MulBlockInPlace(buf, coeffs)
}

// ApplyType windows buf in place with a freshly generated window of the
// given type.
func ApplyType(t Type, buf []float64) {
	if t == TypeRectangular {
		return
	}
	Apply(buf, Coefficients(t, len(buf)))
}
