package preset

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-synth/synth/param"
	"github.com/cwbudde/algo-synth/synth/stage"
)

const presetJSON = `{
  "stages": {
    "osc": {
      "type": "oscillator",
      "parameters": {"frequency": 880, "amplitude": 0.7, "waveType": "square"}
    },
    "env": {
      "type": "envelope",
      "parameters": {"attack": 0.005, "sustain": 0.8}
    }
  },
  "connections": [
    {"source": "osc", "destination": "env"}
  ]
}`

func TestParseJSON(t *testing.T) {
	t.Parallel()

	doc, err := ParseJSON([]byte(presetJSON))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}

	if len(doc.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(doc.Stages))
	}
	osc, ok := doc.Stages["osc"]
	if !ok || osc.Type != "oscillator" {
		t.Fatalf("stage osc = %+v, want oscillator", osc)
	}
	if v := osc.Parameters["frequency"]; v != param.Float(880) {
		t.Errorf("frequency = %#v, want 880", v)
	}
	if v := osc.Parameters["waveType"]; v != param.String("square") {
		t.Errorf("waveType = %#v, want square", v)
	}

	if len(doc.Connections) != 1 {
		t.Fatalf("connections = %d, want 1", len(doc.Connections))
	}
	c := doc.Connections[0]
	if c.Parameter != "" || c.Amount != 1 || !c.Enabled {
		t.Errorf("connection defaults = %+v, want parameter \"\", amount 1, enabled true", c)
	}
}

func TestParseJSONMalformed(t *testing.T) {
	t.Parallel()

	var pe *ParseError
	if _, err := ParseJSON([]byte(`{"stages": [`)); !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestBuild(t *testing.T) {
	t.Parallel()

	doc, err := ParseJSON([]byte(presetJSON))
	if err != nil {
		t.Fatal(err)
	}

	g, err := Build(doc)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	names := g.StageNames()
	if len(names) != 2 || names[0] != "env" || names[1] != "osc" {
		t.Fatalf("StageNames() = %v, want [env osc]", names)
	}
	if g.Stage("osc").Type() != stage.TypeOscillator {
		t.Errorf("osc type = %q", g.Stage("osc").Type())
	}
	v, err := g.Stage("env").Parameter("sustain")
	if err != nil {
		t.Fatal(err)
	}
	if got, _ := v.AsFloat(); got != 0.8 {
		t.Errorf("env sustain = %g, want 0.8", got)
	}
}

func TestBuildUnknownStageType(t *testing.T) {
	t.Parallel()

	doc := &Document{Stages: map[string]StageSpec{
		"fx": {Type: "reverb"},
	}}

	var ute *stage.UnknownTypeError
	if _, err := Build(doc); !errors.As(err, &ute) {
		t.Fatalf("Build error = %v, want *stage.UnknownTypeError", err)
	} else if ute.Type != "reverb" {
		t.Errorf("UnknownTypeError.Type = %q, want reverb", ute.Type)
	}
}

func TestBuildOutOfRangeParameter(t *testing.T) {
	t.Parallel()

	doc := &Document{Stages: map[string]StageSpec{
		"osc": {Type: "oscillator", Parameters: map[string]param.Value{
			"frequency": param.Float(99999),
		}},
	}}

	var re *param.RangeError
	if _, err := Build(doc); !errors.As(err, &re) {
		t.Fatalf("Build error = %v, want *param.RangeError", err)
	}
}

func TestBuildMalformedConnection(t *testing.T) {
	t.Parallel()

	doc := &Document{
		Stages: map[string]StageSpec{"osc": {Type: "oscillator"}},
		Connections: []ConnectionSpec{
			{Source: "osc", Destination: "out", Amount: 1, Enabled: true},
			{Source: "", Destination: "out", Amount: 1, Enabled: true},
		},
	}

	var mce *MalformedConnectionError
	if _, err := Build(doc); !errors.As(err, &mce) {
		t.Fatalf("Build error = %v, want *MalformedConnectionError", err)
	}
	if mce.Index != 1 {
		t.Errorf("MalformedConnectionError.Index = %d, want 1", mce.Index)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	t.Parallel()

	doc, err := ParseJSON([]byte(presetJSON))
	if err != nil {
		t.Fatal(err)
	}
	g, err := Build(doc)
	if err != nil {
		t.Fatal(err)
	}

	snap, err := Snapshot(g)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	data, err := MarshalJSON(snap)
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}
	doc2, err := ParseJSON(data)
	if err != nil {
		t.Fatalf("reparse: %v", err)
	}
	g2, err := Build(doc2)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}

	if got, want := g2.StageNames(), g.StageNames(); len(got) != len(want) {
		t.Fatalf("stage names %v, want %v", got, want)
	}
	for _, name := range g.StageNames() {
		s1, s2 := g.Stage(name), g2.Stage(name)
		if s1.Type() != s2.Type() {
			t.Errorf("stage %q type %q vs %q", name, s1.Type(), s2.Type())
		}
		for _, pn := range s1.ParameterNames() {
			v1, err := s1.Parameter(pn)
			if err != nil {
				t.Fatal(err)
			}
			v2, err := s2.Parameter(pn)
			if err != nil {
				t.Fatal(err)
			}
			if v1.Kind() == param.KindFloat {
				f1, _ := v1.AsFloat()
				f2, _ := v2.AsFloat()
				if math.Abs(f1-f2) > 1e-12 {
					t.Errorf("stage %q parameter %q = %g, want %g", name, pn, f2, f1)
				}
			} else if v1 != v2 {
				t.Errorf("stage %q parameter %q = %#v, want %#v", name, pn, v2, v1)
			}
		}
	}
	if len(g2.Connections()) != len(g.Connections()) {
		t.Errorf("connections %d, want %d", len(g2.Connections()), len(g.Connections()))
	}
}

func TestParseHCL(t *testing.T) {
	t.Parallel()

	src := `
stage "osc" {
  type = "oscillator"
  parameters = {
    frequency = 880
    amplitude = 0.7
    waveType  = "square"
  }
}

stage "flt" {
  type = "filter"
  parameters = {
    cutoff = 2000
  }
}

connection {
  source      = "osc"
  destination = "flt"
  amount      = 0.5
  enabled     = false
}
`
	doc, err := ParseHCL("preset.hcl", []byte(src))
	if err != nil {
		t.Fatalf("ParseHCL: %v", err)
	}

	if len(doc.Stages) != 2 {
		t.Fatalf("stages = %d, want 2", len(doc.Stages))
	}
	if v := doc.Stages["osc"].Parameters["frequency"]; v != param.Float(880) {
		t.Errorf("frequency = %#v, want 880", v)
	}
	if v := doc.Stages["osc"].Parameters["waveType"]; v != param.String("square") {
		t.Errorf("waveType = %#v, want square", v)
	}

	if len(doc.Connections) != 1 {
		t.Fatalf("connections = %d, want 1", len(doc.Connections))
	}
	c := doc.Connections[0]
	if c.Amount != 0.5 || c.Enabled {
		t.Errorf("connection = %+v, want amount 0.5 enabled false", c)
	}

	if _, err := Build(doc); err != nil {
		t.Fatalf("Build from HCL: %v", err)
	}
}

func TestParseHCLBadSyntax(t *testing.T) {
	t.Parallel()

	var pe *ParseError
	if _, err := ParseHCL("bad.hcl", []byte(`stage "x" {`)); !errors.As(err, &pe) {
		t.Fatalf("error = %v, want *ParseError", err)
	}
}

func TestParseTOML(t *testing.T) {
	t.Parallel()

	src := `
[stages.osc]
type = "oscillator"

[stages.osc.parameters]
frequency = 880
amplitude = 0.7
waveType  = "square"

[[connections]]
source      = "osc"
destination = "osc2"
parameter   = "frequency"
`
	doc, err := ParseTOML([]byte(src))
	if err != nil {
		t.Fatalf("ParseTOML: %v", err)
	}

	osc := doc.Stages["osc"]
	if osc.Type != "oscillator" {
		t.Fatalf("type = %q, want oscillator", osc.Type)
	}
	// TOML integers decode as int64 and land as floats.
	if v := osc.Parameters["frequency"]; v != param.Float(880) {
		t.Errorf("frequency = %#v, want 880", v)
	}

	c := doc.Connections[0]
	if c.Parameter != "frequency" || c.Amount != 1 || !c.Enabled {
		t.Errorf("connection = %+v, want parameter frequency with defaults", c)
	}
}
