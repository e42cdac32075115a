// Package graph assembles stages into a directed signal-flow graph and runs
// them block-synchronously in topological order.
package graph

import (
	"fmt"
	"sort"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/synth/stage"
)

// Connection is a directed edge between two named stages. Parameter names a
// modulation target on the destination; it is metadata for external policy
// layers and is not executed during Process. Amount scales such modulation;
// Enabled gates the edge.
type Connection struct {
	Source      string
	Destination string
	Parameter   string
	Amount      float64
	Enabled     bool
}

// Graph owns a set of named stages and the connections between them. Stages
// are referenced by name; dangling names are reported by Validate rather
// than rejected at insertion. The graph provides no internal locking: a
// caller that mutates the graph while Process runs must serialize access
// itself.
type Graph struct {
	stages      map[string]stage.Stage
	connections []Connection
	sampleRate  float64
}

// New builds an empty graph. Stages added to it are switched to the
// configured sample rate.
func New(opts ...core.ProcessorOption) *Graph {
	cfg := core.ApplyProcessorOptions(opts...)
	return &Graph{
		stages:     make(map[string]stage.Stage),
		sampleRate: cfg.SampleRate,
	}
}

// SampleRate returns the rate stages in this graph run at.
func (g *Graph) SampleRate() float64 {
	return g.sampleRate
}

// AddStage registers a stage under name, overwriting any existing stage of
// that name. The stage is switched to the graph's sample rate.
func (g *Graph) AddStage(name string, s stage.Stage) {
	s.SetSampleRate(g.sampleRate)
	g.stages[name] = s
}

// RemoveStage drops the named stage and every connection touching it.
func (g *Graph) RemoveStage(name string) {
	delete(g.stages, name)

	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.Source != name && c.Destination != name {
			kept = append(kept, c)
		}
	}
	g.connections = kept
}

// AddConnection appends a directed edge.
func (g *Graph) AddConnection(c Connection) {
	g.connections = append(g.connections, c)
}

// RemoveConnection drops every edge from source to destination.
func (g *Graph) RemoveConnection(source, destination string) {
	kept := g.connections[:0]
	for _, c := range g.connections {
		if c.Source != source || c.Destination != destination {
			kept = append(kept, c)
		}
	}
	g.connections = kept
}

// Stage returns the named stage, or nil if absent.
func (g *Graph) Stage(name string) stage.Stage {
	return g.stages[name]
}

// StageNames returns all stage names in sorted order.
func (g *Graph) StageNames() []string {
	names := make([]string, 0, len(g.stages))
	for name := range g.stages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Connections returns a copy of the edge list in insertion order.
func (g *Graph) Connections() []Connection {
	out := make([]Connection, len(g.connections))
	copy(out, g.connections)
	return out
}

// HasCycles reports whether the directed graph contains a cycle.
func (g *Graph) HasCycles() bool {
	visited := make(map[string]bool, len(g.stages))
	onStack := make(map[string]bool, len(g.stages))

	var visit func(name string) bool
	visit = func(name string) bool {
		visited[name] = true
		onStack[name] = true

		for _, c := range g.connections {
			if c.Source != name {
				continue
			}
			if onStack[c.Destination] {
				return true
			}
			if !visited[c.Destination] {
				if visit(c.Destination) {
					return true
				}
			}
		}

		onStack[name] = false
		return false
	}

	for _, name := range g.StageNames() {
		if !visited[name] && visit(name) {
			return true
		}
	}
	return false
}

// TopologicalOrder returns the stage names in dependency order: every
// connection's source precedes its destination. The traversal terminates on
// cyclic graphs, but the returned order is only meaningful when HasCycles
// is false; callers must check that first.
func (g *Graph) TopologicalOrder() []string {
	visited := make(map[string]bool, len(g.stages))
	order := make([]string, 0, len(g.stages))

	var visit func(name string)
	visit = func(name string) {
		visited[name] = true
		for _, c := range g.connections {
			if c.Source == name && !visited[c.Destination] {
				if _, ok := g.stages[c.Destination]; ok {
					visit(c.Destination)
				}
			}
		}
		order = append(order, name)
	}

	for _, name := range g.StageNames() {
		if !visited[name] {
			visit(name)
		}
	}

	// Post-order lists dependents first; reverse for execution order.
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// IsConnected reports whether the graph, viewed undirected, forms a single
// component. The empty graph counts as connected.
func (g *Graph) IsConnected() bool {
	if len(g.stages) == 0 {
		return true
	}

	visited := make(map[string]bool, len(g.stages))
	queue := []string{g.StageNames()[0]}
	visited[queue[0]] = true

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		for _, c := range g.connections {
			if c.Source == current && !visited[c.Destination] {
				if _, ok := g.stages[c.Destination]; ok {
					visited[c.Destination] = true
					queue = append(queue, c.Destination)
				}
			}
			if c.Destination == current && !visited[c.Source] {
				if _, ok := g.stages[c.Source]; ok {
					visited[c.Source] = true
					queue = append(queue, c.Source)
				}
			}
		}
	}

	return len(visited) == len(g.stages)
}

// Process runs one block through every stage in topological order, each
// stage consuming the previous stage's output. A graph with no stages is an
// identity passthrough. Process does not allocate for the input; the
// returned slice belongs to the last stage and is reused across calls.
func (g *Graph) Process(input []float64) []float64 {
	if len(g.stages) == 0 {
		return input
	}

	order := g.TopologicalOrder()
	if len(order) == 0 {
		return input
	}

	current := input
	for _, name := range order {
		s, ok := g.stages[name]
		if !ok {
			continue
		}
		current = s.Process(current)
	}
	return current
}

// Reset clears the time-varying state of every stage.
func (g *Graph) Reset() {
	for _, s := range g.stages {
		s.Reset()
	}
}

// TotalGain estimates the graph's loop gain as the product of every
// oscillator's amplitude. This is a coarse heuristic: it ignores whether the
// oscillators actually lie on a cyclic path. The safety layer interprets it
// as an upper bound on feedback gain.
func (g *Graph) TotalGain() float64 {
	total := 1.0
	for _, s := range g.stages {
		osc, ok := s.(*stage.Oscillator)
		if !ok {
			continue
		}
		total *= osc.Amplitude()
	}
	return total
}

// Validate aggregates every structural problem found as plain strings:
// cycles, disconnected components, gain at or above unity, dangling
// connection endpoints, and parameters that fail to read back.
func (g *Graph) Validate() []string {
	var issues []string

	if g.HasCycles() {
		issues = append(issues, "graph contains cycles")
	}
	if !g.IsConnected() {
		issues = append(issues, "graph has disconnected components")
	}
	if g.TotalGain() >= 1.0 {
		issues = append(issues, "total gain >= 1.0, potential feedback instability")
	}

	for _, c := range g.connections {
		if _, ok := g.stages[c.Source]; !ok {
			issues = append(issues, fmt.Sprintf("connection references missing source %q", c.Source))
		}
		if _, ok := g.stages[c.Destination]; !ok {
			issues = append(issues, fmt.Sprintf("connection references missing destination %q", c.Destination))
		}
	}

	for _, name := range g.StageNames() {
		s := g.stages[name]
		for _, paramName := range s.ParameterNames() {
			if _, err := s.Parameter(paramName); err != nil {
				issues = append(issues, fmt.Sprintf("stage %q parameter %q: %v", name, paramName, err))
			}
		}
	}

	return issues
}
