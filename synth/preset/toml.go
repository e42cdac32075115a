package preset

import (
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/cwbudde/algo-synth/synth/param"
)

// TOML preset layout:
//
//	[stages.osc]
//	type = "oscillator"
//	[stages.osc.parameters]
//	frequency = 880.0
//	waveType  = "square"
//
//	[[connections]]
//	source      = "osc"
//	destination = "env"
type tomlDocument struct {
	Stages      map[string]tomlStage `toml:"stages"`
	Connections []tomlConnection     `toml:"connections"`
}

type tomlStage struct {
	Type       string         `toml:"type"`
	Parameters map[string]any `toml:"parameters"`
}

type tomlConnection struct {
	Source      string   `toml:"source"`
	Destination string   `toml:"destination"`
	Parameter   *string  `toml:"parameter"`
	Amount      *float64 `toml:"amount"`
	Enabled     *bool    `toml:"enabled"`
}

// ParseTOML decodes a TOML preset into a Document.
func ParseTOML(data []byte) (*Document, error) {
	var wire tomlDocument
	if err := toml.Unmarshal(data, &wire); err != nil {
		return nil, &ParseError{Format: "toml", Err: err}
	}

	doc := &Document{Stages: make(map[string]StageSpec, len(wire.Stages))}

	for name, ws := range wire.Stages {
		spec := StageSpec{Type: ws.Type, Parameters: make(map[string]param.Value, len(ws.Parameters))}
		for pn, raw := range ws.Parameters {
			v, err := valueFromAny(raw)
			if err != nil {
				return nil, &ParseError{Format: "toml", Err: fmt.Errorf("stage %q parameter %q: %w", name, pn, err)}
			}
			spec.Parameters[pn] = v
		}
		doc.Stages[name] = spec
	}

	for _, wc := range wire.Connections {
		doc.Connections = append(doc.Connections, normalizeConnection(
			wc.Source, wc.Destination, wc.Parameter, wc.Amount, wc.Enabled))
	}

	return doc, nil
}
