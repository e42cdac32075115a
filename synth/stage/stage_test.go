package stage

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/synth/param"
)

const sampleRate = 44100.0

func TestNewByType(t *testing.T) {
	t.Parallel()

	for _, typeName := range []string{TypeOscillator, TypeFilter, TypeEnvelope, TypeLFO} {
		s, err := New(typeName, sampleRate)
		if err != nil {
			t.Fatalf("New(%q) error: %v", typeName, err)
		}
		if s.Type() != typeName {
			t.Errorf("Type() = %q, want %q", s.Type(), typeName)
		}
	}

	var ute *UnknownTypeError
	if _, err := New("reverb", sampleRate); !errors.As(err, &ute) {
		t.Fatalf("New(%q) error = %v, want *UnknownTypeError", "reverb", err)
	}
}

func TestOscillatorSineRangeAndPeriod(t *testing.T) {
	t.Parallel()

	osc := NewOscillator(sampleRate)
	if err := osc.SetParameter("frequency", param.Float(441)); err != nil {
		t.Fatal(err)
	}
	if err := osc.SetParameter("amplitude", param.Float(0.8)); err != nil {
		t.Fatal(err)
	}

	in := make([]float64, 1000)
	out := osc.Process(in)
	if len(out) != len(in) {
		t.Fatalf("output length %d, want %d", len(out), len(in))
	}

	for i, s := range out {
		if s < -0.8-1e-9 || s > 0.8+1e-9 {
			t.Fatalf("sample %d = %g outside [-0.8, 0.8]", i, s)
		}
	}

	// 441 Hz at 44100 Hz: one cycle every 100 samples.
	period := int(sampleRate / 441)
	if math.Abs(out[0]-out[period]) > 1e-9 {
		t.Errorf("out[0] = %g, out[%d] = %g; expected one full cycle", out[0], period, out[period])
	}
}

func TestOscillatorAdditive(t *testing.T) {
	t.Parallel()

	osc := NewOscillator(sampleRate)
	if err := osc.SetParameter("amplitude", param.Float(0)); err != nil {
		t.Fatal(err)
	}

	in := []float64{0.25, -0.5, 1}
	out := osc.Process(in)
	for i := range in {
		if out[i] != in[i] {
			t.Errorf("out[%d] = %g, want carried input %g", i, out[i], in[i])
		}
	}
}

func TestOscillatorSquareWave(t *testing.T) {
	t.Parallel()

	osc := NewOscillator(sampleRate)
	if err := osc.SetParameter("waveType", param.String("square")); err != nil {
		t.Fatal(err)
	}
	if err := osc.SetParameter("frequency", param.Float(880)); err != nil {
		t.Fatal(err)
	}
	if err := osc.SetParameter("amplitude", param.Float(0.7)); err != nil {
		t.Fatal(err)
	}

	out := osc.Process(make([]float64, 1024))
	for i, s := range out {
		if math.Abs(s) < 0.7-1e-9 || math.Abs(s) > 0.7+1e-9 {
			t.Fatalf("sample %d = %g, want ±0.7", i, s)
		}
	}
	if out[0] != 0.7 {
		t.Errorf("out[0] = %g, want +0.7 at phase 0", out[0])
	}
}

func TestOscillatorParameterErrors(t *testing.T) {
	t.Parallel()

	osc := NewOscillator(sampleRate)

	if err := osc.SetParameter("frequency", param.Float(5)); err == nil {
		t.Error("SetParameter(frequency, 5): expected range error")
	}
	var re *param.RangeError
	if err := osc.SetParameter("amplitude", param.Float(2)); !errors.As(err, &re) {
		t.Errorf("SetParameter(amplitude, 2) error = %v, want *param.RangeError", err)
	}
	if err := osc.SetParameter("frequency", param.String("high")); err == nil {
		t.Error("SetParameter(frequency, string): expected type error")
	}
	if err := osc.SetParameter("cutoff", param.Float(1000)); !errors.Is(err, param.ErrUnknownParameter) {
		t.Errorf("SetParameter(cutoff) error = %v, want ErrUnknownParameter", err)
	}
	if err := osc.SetParameter("waveType", param.String("noise")); err == nil {
		t.Error("SetParameter(waveType, noise): expected parse error")
	}
}

func TestFilterLowpassDCPass(t *testing.T) {
	t.Parallel()

	f := NewFilter(sampleRate)

	in := make([]float64, 4096)
	for i := range in {
		in[i] = 1
	}
	out := f.Process(in)
	if got := out[len(out)-1]; math.Abs(got-1) > 0.01 {
		t.Errorf("lowpass DC response converged to %g, want ~1", got)
	}
}

func TestFilterResetClearsHistoryOnly(t *testing.T) {
	t.Parallel()

	f := NewFilter(sampleRate)
	if err := f.SetParameter("cutoff", param.Float(500)); err != nil {
		t.Fatal(err)
	}

	first := append([]float64(nil), f.Process([]float64{1, 1, 1, 1})...)
	f.Reset()
	second := f.Process([]float64{1, 1, 1, 1})

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("sample %d differs after Reset: %g vs %g", i, first[i], second[i])
		}
	}
	if v, err := f.Parameter("cutoff"); err != nil {
		t.Fatal(err)
	} else if got, _ := v.AsFloat(); got != 500 {
		t.Errorf("cutoff = %g after Reset, want 500 preserved", got)
	}
}

func TestEnvelopeADSRTrajectory(t *testing.T) {
	t.Parallel()

	env := NewEnvelope(sampleRate)
	if err := env.SetParameter("attack", param.Float(0.001)); err != nil {
		t.Fatal(err)
	}
	if err := env.SetParameter("decay", param.Float(0.001)); err != nil {
		t.Fatal(err)
	}
	if err := env.SetParameter("sustain", param.Float(0.5)); err != nil {
		t.Fatal(err)
	}
	if err := env.SetParameter("release", param.Float(0.001)); err != nil {
		t.Fatal(err)
	}

	// Sustained gate: expect attack to 1.0, decay to sustain, then hold.
	gate := make([]float64, 512)
	for i := range gate {
		gate[i] = 1
	}
	out := env.Process(gate)

	peak := 0.0
	peakIdx := 0
	for i, s := range out {
		if s > peak {
			peak = s
			peakIdx = i
		}
	}
	if math.Abs(peak-1) > 1e-9 {
		t.Fatalf("attack peak = %g, want 1.0", peak)
	}
	for i := 1; i <= peakIdx; i++ {
		if out[i] < out[i-1] {
			t.Fatalf("attack not monotonic at sample %d", i)
		}
	}
	if got := out[len(out)-1]; math.Abs(got-0.5) > 1e-9 {
		t.Errorf("sustain level = %g, want 0.5", got)
	}
	if env.State() != "sustain" {
		t.Errorf("state = %q, want sustain", env.State())
	}

	// Closing the gate with a sub-threshold positive input keeps the
	// release ramp visible in the output instead of multiplying it by zero.
	tail := make([]float64, 512)
	for i := range tail {
		tail[i] = 0.0005
	}
	out = env.Process(tail)
	if out[0] <= 0 {
		t.Fatalf("out[0] = %g at release start, want > 0", out[0])
	}
	for i := 1; i < len(out); i++ {
		if out[i] > out[i-1] {
			t.Fatalf("release not monotonic at sample %d: %g > %g", i, out[i], out[i-1])
		}
	}
	if got := out[len(out)-1]; got != 0 {
		t.Errorf("release tail = %g, want 0", got)
	}
	if env.State() != "idle" {
		t.Errorf("state = %q after release, want idle", env.State())
	}
}

func TestProcessEmptyBlock(t *testing.T) {
	t.Parallel()

	stages := []Stage{
		NewOscillator(sampleRate),
		NewFilter(sampleRate),
		NewEnvelope(sampleRate),
		NewLFO(sampleRate),
	}

	for _, s := range stages {
		t.Run(s.Type(), func(t *testing.T) {
			t.Parallel()

			if out := s.Process(nil); len(out) != 0 {
				t.Errorf("Process(nil) returned %d samples, want 0", len(out))
			}
			if out := s.Process([]float64{}); len(out) != 0 {
				t.Errorf("Process(empty) returned %d samples, want 0", len(out))
			}
		})
	}
}

func TestLFOAdditiveModulation(t *testing.T) {
	t.Parallel()

	lfo := NewLFO(sampleRate)
	if err := lfo.SetParameter("depth", param.Float(0.25)); err != nil {
		t.Fatal(err)
	}

	in := make([]float64, 256)
	for i := range in {
		in[i] = 0.5
	}
	out := lfo.Process(in)
	for i, s := range out {
		if s < 0.25-1e-9 || s > 0.75+1e-9 {
			t.Fatalf("sample %d = %g outside [0.25, 0.75]", i, s)
		}
	}
}

func TestResetPreservesParameters(t *testing.T) {
	t.Parallel()

	stages := []Stage{
		NewOscillator(sampleRate),
		NewFilter(sampleRate),
		NewEnvelope(sampleRate),
		NewLFO(sampleRate),
	}

	for _, s := range stages {
		t.Run(s.Type(), func(t *testing.T) {
			t.Parallel()

			before := make(map[string]param.Value)
			for _, name := range s.ParameterNames() {
				v, err := s.Parameter(name)
				if err != nil {
					t.Fatalf("Parameter(%q): %v", name, err)
				}
				before[name] = v
			}

			s.Process(make([]float64, 64))
			s.Reset()

			for name, want := range before {
				got, err := s.Parameter(name)
				if err != nil {
					t.Fatalf("Parameter(%q) after Reset: %v", name, err)
				}
				if got != want {
					t.Errorf("parameter %q = %#v after Reset, want %#v", name, got, want)
				}
			}
		})
	}
}
