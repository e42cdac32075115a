package preset

import (
	"fmt"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"

	"github.com/cwbudde/algo-synth/synth/param"
)

// HCL preset layout:
//
//	stage "osc" {
//	  type = "oscillator"
//	  parameters = {
//	    frequency = 880
//	    waveType  = "square"
//	  }
//	}
//
//	connection {
//	  source      = "osc"
//	  destination = "env"
//	}
type hclDocument struct {
	Stages      []hclStage      `hcl:"stage,block"`
	Connections []hclConnection `hcl:"connection,block"`
}

type hclStage struct {
	Name       string    `hcl:"name,label"`
	Type       string    `hcl:"type"`
	Parameters cty.Value `hcl:"parameters,optional"`
}

type hclConnection struct {
	Source      string   `hcl:"source"`
	Destination string   `hcl:"destination"`
	Parameter   *string  `hcl:"parameter,optional"`
	Amount      *float64 `hcl:"amount,optional"`
	Enabled     *bool    `hcl:"enabled,optional"`
}

// ParseHCL decodes an HCL preset into a Document. The filename is used in
// diagnostics only.
func ParseHCL(filename string, src []byte) (*Document, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, &ParseError{Format: "hcl", Err: diags}
	}

	var wire hclDocument
	if diags := gohcl.DecodeBody(file.Body, nil, &wire); diags.HasErrors() {
		return nil, &ParseError{Format: "hcl", Err: diags}
	}

	doc := &Document{Stages: make(map[string]StageSpec, len(wire.Stages))}

	for _, ws := range wire.Stages {
		spec := StageSpec{Type: ws.Type, Parameters: make(map[string]param.Value)}
		if !ws.Parameters.IsNull() {
			if !ws.Parameters.Type().IsObjectType() && !ws.Parameters.Type().IsMapType() {
				return nil, &ParseError{Format: "hcl",
					Err: fmt.Errorf("stage %q: parameters must be an object", ws.Name)}
			}
			for pn, cv := range ws.Parameters.AsValueMap() {
				v, err := valueFromCty(cv)
				if err != nil {
					return nil, &ParseError{Format: "hcl",
						Err: fmt.Errorf("stage %q parameter %q: %w", ws.Name, pn, err)}
				}
				spec.Parameters[pn] = v
			}
		}
		doc.Stages[ws.Name] = spec
	}

	for _, wc := range wire.Connections {
		doc.Connections = append(doc.Connections, normalizeConnection(
			wc.Source, wc.Destination, wc.Parameter, wc.Amount, wc.Enabled))
	}

	return doc, nil
}

func valueFromCty(v cty.Value) (param.Value, error) {
	if v.IsNull() {
		return param.Value{}, fmt.Errorf("null parameter value")
	}
	switch v.Type() {
	case cty.Number:
		f, _ := v.AsBigFloat().Float64()
		return param.Float(f), nil
	case cty.String:
		return param.String(v.AsString()), nil
	case cty.Bool:
		return param.Bool(v.True()), nil
	default:
		return param.Value{}, fmt.Errorf("unsupported parameter value type %s", v.Type().FriendlyName())
	}
}
