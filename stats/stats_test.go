package stats

import (
	"math"
	"testing"
)

func TestCalculateEmpty(t *testing.T) {
	t.Parallel()

	s := Calculate(nil)
	if s.Length != 0 {
		t.Errorf("length = %d, want 0", s.Length)
	}

	if !math.IsInf(s.Peak_dB, -1) {
		t.Errorf("Peak_dB = %v, want -Inf", s.Peak_dB)
	}
}

func TestCalculateConstantSignal(t *testing.T) {
	t.Parallel()

	signal := make([]float64, 100)
	for i := range signal {
		signal[i] = 0.5
	}

	s := Calculate(signal)

	if math.Abs(s.DC-0.5) > 1e-12 {
		t.Errorf("DC = %v, want 0.5", s.DC)
	}

	if math.Abs(s.RMS-0.5) > 1e-12 {
		t.Errorf("RMS = %v, want 0.5", s.RMS)
	}

	if math.Abs(s.Peak-0.5) > 1e-12 {
		t.Errorf("Peak = %v, want 0.5", s.Peak)
	}

	if math.Abs(s.CrestFactor-1) > 1e-12 {
		t.Errorf("CrestFactor = %v, want 1", s.CrestFactor)
	}

	if s.Variance > 1e-12 {
		t.Errorf("Variance = %v, want 0", s.Variance)
	}
}

func TestCalculateSine(t *testing.T) {
	t.Parallel()

	const n = 44100

	signal := make([]float64, n)
	for i := range signal {
		signal[i] = math.Sin(2 * math.Pi * 100 * float64(i) / n)
	}

	s := Calculate(signal)

	// Full cycles of a unit sine: RMS = 1/sqrt(2), peak = 1, crest = sqrt(2).
	if math.Abs(s.RMS-1/math.Sqrt2) > 1e-3 {
		t.Errorf("RMS = %v, want %v", s.RMS, 1/math.Sqrt2)
	}

	if math.Abs(s.Peak-1) > 1e-3 {
		t.Errorf("Peak = %v, want 1", s.Peak)
	}

	if math.Abs(s.CrestFactor_dB-3.0103) > 0.05 {
		t.Errorf("CrestFactor_dB = %v, want ~3.01", s.CrestFactor_dB)
	}

	if math.Abs(s.DC) > 1e-6 {
		t.Errorf("DC = %v, want ~0", s.DC)
	}
}

func TestCalculateMatchesHelpers(t *testing.T) {
	t.Parallel()

	signal := []float64{0.1, -0.4, 0.9, -0.2, 0.05}
	s := Calculate(signal)

	if math.Abs(s.RMS-RMS(signal)) > 1e-12 {
		t.Errorf("RMS mismatch: %v != %v", s.RMS, RMS(signal))
	}

	if math.Abs(s.Peak-Peak(signal)) > 1e-12 {
		t.Errorf("Peak mismatch: %v != %v", s.Peak, Peak(signal))
	}

	if math.Abs(s.DC-DC(signal)) > 1e-12 {
		t.Errorf("DC mismatch: %v != %v", s.DC, DC(signal))
	}

	if math.Abs(s.CrestFactor-CrestFactor(signal)) > 1e-12 {
		t.Errorf("CrestFactor mismatch: %v != %v", s.CrestFactor, CrestFactor(signal))
	}
}

func TestVariance(t *testing.T) {
	t.Parallel()

	if got := Variance([]float64{1, -1, 1, -1}); math.Abs(got-1) > 1e-12 {
		t.Errorf("Variance = %v, want 1", got)
	}

	if got := Variance(nil); got != 0 {
		t.Errorf("Variance(nil) = %v, want 0", got)
	}
}

func TestHasSubnormal(t *testing.T) {
	t.Parallel()

	if HasSubnormal([]float64{0, 0.5, -1}) {
		t.Error("normal values flagged as subnormal")
	}

	if !HasSubnormal([]float64{0.5, 1e-310}) {
		t.Error("subnormal value not detected")
	}
}
