// Package preset loads and saves synthesis graph descriptions. A preset
// names a set of stages with their parameters and the connections between
// them; JSON, HCL, and TOML front-ends all decode into the same Document
// before a graph is built.
package preset

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/graph"
	"github.com/cwbudde/algo-synth/synth/param"
	"github.com/cwbudde/algo-synth/synth/stage"
)

// StageSpec describes one stage entry: its type name and initial parameters.
type StageSpec struct {
	Type       string
	Parameters map[string]param.Value
}

// ConnectionSpec describes one edge entry. Parameter, Amount, and Enabled
// are optional in all wire formats and default to "", 1.0, and true.
type ConnectionSpec struct {
	Source      string
	Destination string
	Parameter   string
	Amount      float64
	Enabled     bool
}

// Document is the format-agnostic preset model.
type Document struct {
	Stages      map[string]StageSpec
	Connections []ConnectionSpec
}

// Build instantiates a graph from the document. The first error aborts the
// whole build; a partial graph is never returned. Stage entries are applied
// in sorted name order so failures are deterministic.
func Build(doc *Document, opts ...core.ProcessorOption) (*graph.Graph, error) {
	g := graph.New(opts...)

	names := make([]string, 0, len(doc.Stages))
	for name := range doc.Stages {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := doc.Stages[name]
		s, err := stage.New(spec.Type, g.SampleRate())
		if err != nil {
			return nil, fmt.Errorf("stage %q: %w", name, err)
		}

		paramNames := make([]string, 0, len(spec.Parameters))
		for pn := range spec.Parameters {
			paramNames = append(paramNames, pn)
		}
		sort.Strings(paramNames)

		for _, pn := range paramNames {
			if err := s.SetParameter(pn, spec.Parameters[pn]); err != nil {
				return nil, fmt.Errorf("stage %q: %w", name, err)
			}
		}
		g.AddStage(name, s)
	}

	for i, c := range doc.Connections {
		if c.Source == "" || c.Destination == "" {
			return nil, &MalformedConnectionError{Index: i, Source: c.Source, Destination: c.Destination}
		}
		g.AddConnection(graph.Connection{
			Source:      c.Source,
			Destination: c.Destination,
			Parameter:   c.Parameter,
			Amount:      c.Amount,
			Enabled:     c.Enabled,
		})
	}

	return g, nil
}

// Snapshot captures a graph back into a Document, reading every stage's
// current parameter values. Together with MarshalJSON it round-trips a
// preset through a graph.
func Snapshot(g *graph.Graph) (*Document, error) {
	doc := &Document{Stages: make(map[string]StageSpec, len(g.StageNames()))}

	for _, name := range g.StageNames() {
		s := g.Stage(name)
		spec := StageSpec{
			Type:       s.Type(),
			Parameters: make(map[string]param.Value),
		}
		for _, pn := range s.ParameterNames() {
			v, err := s.Parameter(pn)
			if err != nil {
				return nil, fmt.Errorf("stage %q parameter %q: %w", name, pn, err)
			}
			spec.Parameters[pn] = v
		}
		doc.Stages[name] = spec
	}

	for _, c := range g.Connections() {
		doc.Connections = append(doc.Connections, ConnectionSpec{
			Source:      c.Source,
			Destination: c.Destination,
			Parameter:   c.Parameter,
			Amount:      c.Amount,
			Enabled:     c.Enabled,
		})
	}

	return doc, nil
}
