package core

import (
	"math"
	"testing"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name            string
		value, min, max float64
		want            float64
	}{
		{"inside range", 5, 0, 10, 5},
		{"below min", -5, 0, 10, 0},
		{"above max", 15, 0, 10, 10},
		{"swapped bounds", 5, 10, 0, 5},
		{"at min", 0, 0, 10, 0},
		{"at max", 10, 0, 10, 10},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := Clamp(tc.value, tc.min, tc.max)
			if got != tc.want {
				t.Errorf("Clamp(%v, %v, %v) = %v, want %v", tc.value, tc.min, tc.max, got, tc.want)
			}
		})
	}
}

func TestDBConversions(t *testing.T) {
	t.Parallel()

	if got := DBToLinear(0); !NearlyEqual(got, 1, 1e-12) {
		t.Errorf("DBToLinear(0) = %v, want 1", got)
	}

	if got := DBToLinear(-20); !NearlyEqual(got, 0.1, 1e-12) {
		t.Errorf("DBToLinear(-20) = %v, want 0.1", got)
	}

	if got := LinearToDB(1); !NearlyEqual(got, 0, 1e-12) {
		t.Errorf("LinearToDB(1) = %v, want 0", got)
	}

	if got := LinearToDB(0); !math.IsInf(got, -1) {
		t.Errorf("LinearToDB(0) = %v, want -Inf", got)
	}

	if got := LinearToDB(-1); !math.IsNaN(got) {
		t.Errorf("LinearToDB(-1) = %v, want NaN", got)
	}
}

func TestLinearToDBFloored(t *testing.T) {
	t.Parallel()

	if got := LinearToDBFloored(0); !NearlyEqual(got, -200, 1e-9) {
		t.Errorf("LinearToDBFloored(0) = %v, want -200", got)
	}

	if got := LinearToDBFloored(1); !NearlyEqual(got, 0, 1e-12) {
		t.Errorf("LinearToDBFloored(1) = %v, want 0", got)
	}
}

func TestFlushDenormals(t *testing.T) {
	t.Parallel()

	if got := FlushDenormals(1e-40); got != 0 {
		t.Errorf("FlushDenormals(1e-40) = %v, want 0", got)
	}

	if got := FlushDenormals(0.5); got != 0.5 {
		t.Errorf("FlushDenormals(0.5) = %v, want 0.5", got)
	}
}

func TestIsFiniteNumber(t *testing.T) {
	t.Parallel()

	if IsFiniteNumber(math.NaN()) {
		t.Error("NaN reported as finite")
	}

	if IsFiniteNumber(math.Inf(1)) {
		t.Error("+Inf reported as finite")
	}

	if !IsFiniteNumber(0) {
		t.Error("0 reported as non-finite")
	}
}

func TestEnsureLen(t *testing.T) {
	t.Parallel()

	buf := make([]float64, 4, 16)

	grown := EnsureLen(buf, 8)
	if len(grown) != 8 {
		t.Fatalf("expected len 8, got %d", len(grown))
	}

	if &grown[0] != &buf[0] {
		t.Error("expected capacity reuse for n <= cap")
	}

	fresh := EnsureLen(buf, 32)
	if len(fresh) != 32 {
		t.Fatalf("expected len 32, got %d", len(fresh))
	}
}

func TestApplyProcessorOptions(t *testing.T) {
	t.Parallel()

	cfg := ApplyProcessorOptions(WithSampleRate(48000), WithBlockSize(512))
	if cfg.SampleRate != 48000 {
		t.Errorf("sample rate = %v, want 48000", cfg.SampleRate)
	}

	if cfg.BlockSize != 512 {
		t.Errorf("block size = %d, want 512", cfg.BlockSize)
	}

	def := ApplyProcessorOptions(WithSampleRate(-1), nil)
	if def.SampleRate != 44100 || def.BlockSize != 1024 {
		t.Errorf("invalid options must keep defaults, got %+v", def)
	}
}
