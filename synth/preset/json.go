package preset

import (
	"encoding/json"
	"fmt"

	"github.com/cwbudde/algo-synth/synth/param"
)

type jsonDocument struct {
	Stages      map[string]jsonStage `json:"stages"`
	Connections []jsonConnection     `json:"connections,omitempty"`
}

type jsonStage struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}

type jsonConnection struct {
	Source      string   `json:"source"`
	Destination string   `json:"destination"`
	Parameter   *string  `json:"parameter,omitempty"`
	Amount      *float64 `json:"amount,omitempty"`
	Enabled     *bool    `json:"enabled,omitempty"`
}

// ParseJSON decodes a JSON preset into a Document.
func ParseJSON(data []byte) (*Document, error) {
	var wire jsonDocument
	if err := json.Unmarshal(data, &wire); err != nil {
		return nil, &ParseError{Format: "json", Err: err}
	}

	doc := &Document{Stages: make(map[string]StageSpec, len(wire.Stages))}

	for name, ws := range wire.Stages {
		spec := StageSpec{Type: ws.Type, Parameters: make(map[string]param.Value, len(ws.Parameters))}
		for pn, raw := range ws.Parameters {
			v, err := valueFromAny(raw)
			if err != nil {
				return nil, &ParseError{Format: "json", Err: fmt.Errorf("stage %q parameter %q: %w", name, pn, err)}
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

// MarshalJSON encodes a Document as indented JSON.
func MarshalJSON(doc *Document) ([]byte, error) {
	wire := jsonDocument{Stages: make(map[string]jsonStage, len(doc.Stages))}

	for name, spec := range doc.Stages {
		ws := jsonStage{Type: spec.Type, Parameters: make(map[string]any, len(spec.Parameters))}
		for pn, v := range spec.Parameters {
			ws.Parameters[pn] = anyFromValue(v)
		}
		wire.Stages[name] = ws
	}

	for _, c := range doc.Connections {
		c := c
		wire.Connections = append(wire.Connections, jsonConnection{
			Source:      c.Source,
			Destination: c.Destination,
			Parameter:   &c.Parameter,
			Amount:      &c.Amount,
			Enabled:     &c.Enabled,
		})
	}

	return json.MarshalIndent(&wire, "", "  ")
}

// valueFromAny converts a decoded wire value into a param.Value. Integer
// types appear when decoding TOML; JSON numbers always arrive as float64.
func valueFromAny(raw any) (param.Value, error) {
	switch v := raw.(type) {
	case float64:
		return param.Float(v), nil
	case int64:
		return param.Float(float64(v)), nil
	case int:
		return param.Float(float64(v)), nil
	case string:
		return param.String(v), nil
	case bool:
		return param.Bool(v), nil
	default:
		return param.Value{}, fmt.Errorf("unsupported parameter value type %T", raw)
	}
}

func anyFromValue(v param.Value) any {
	switch v.Kind() {
	case param.KindFloat:
		f, _ := v.AsFloat()
		return f
	case param.KindString:
		s, _ := v.AsString()
		return s
	case param.KindBool:
		b, _ := v.AsBool()
		return b
	default:
		return nil
	}
}

// normalizeConnection applies the wire-format defaults: parameter "",
// amount 1.0, enabled true.
func normalizeConnection(source, destination string, parameter *string, amount *float64, enabled *bool) ConnectionSpec {
	c := ConnectionSpec{
		Source:      source,
		Destination: destination,
		Amount:      1,
		Enabled:     true,
	}
	if parameter != nil {
		c.Parameter = *parameter
	}
	if amount != nil {
		c.Amount = *amount
	}
	if enabled != nil {
		c.Enabled = *enabled
	}
	return c
}
