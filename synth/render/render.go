// Package render drives a graph block by block to produce a finished
// buffer, timing each block against the latency budget and optionally
// applying emergency output protection.
package render

import (
	"context"
	"fmt"
	"time"

	"github.com/cwbudde/algo-synth/dsp/core"
	"github.com/cwbudde/algo-synth/internal/ctxlog"
	"github.com/cwbudde/algo-synth/synth/graph"
	"github.com/cwbudde/algo-synth/synth/safety"
)

// Result is one finished render: the samples, per-run timing, and the
// safety metrics of the final buffer.
type Result struct {
	Samples        []float64
	Blocks         int
	Elapsed        time.Duration
	BudgetExceeded bool
	Metrics        safety.Metrics
}

// Renderer runs graphs offline. Budgets from the constraints are reported,
// never enforced: a slow block is flagged in the result and logged, and the
// render still completes.
type Renderer struct {
	cfg         core.ProcessorConfig
	constraints safety.Constraints
	emergency   bool
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithConstraints replaces the default constraints.
func WithConstraints(c safety.Constraints) Option {
	return func(r *Renderer) {
		r.constraints = c
	}
}

// WithEmergencyProtection toggles the hard-limit/true-peak pass over the
// finished buffer. It is on by default so rendered output never carries
// hard clips.
func WithEmergencyProtection(enabled bool) Option {
	return func(r *Renderer) {
		r.emergency = enabled
	}
}

// WithProcessorOptions forwards sample rate and block size settings.
func WithProcessorOptions(opts ...core.ProcessorOption) Option {
	return func(r *Renderer) {
		r.cfg = core.ApplyProcessorOptions(opts...)
	}
}

// New builds a Renderer with default constraints and configuration.
func New(opts ...Option) *Renderer {
	r := &Renderer{
		cfg:         core.DefaultProcessorConfig(),
		constraints: safety.DefaultConstraints(),
		emergency:   true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// SampleRate returns the renderer's sample rate.
func (r *Renderer) SampleRate() float64 {
	return r.cfg.SampleRate
}

// Render produces numSamples of audio from the graph, processing zero-input
// blocks of the configured size. Cancelling the context stops the render
// between blocks.
func (r *Renderer) Render(ctx context.Context, g *graph.Graph, numSamples int) (*Result, error) {
	if numSamples <= 0 {
		return nil, fmt.Errorf("render: sample count %d must be positive", numSamples)
	}

	log := ctxlog.FromContext(ctx)
	budget := time.Duration(r.constraints.MaxLatencyMs * float64(time.Millisecond))

	result := &Result{Samples: make([]float64, 0, numSamples)}
	input := make([]float64, r.cfg.BlockSize)
	start := time.Now()

	for len(result.Samples) < numSamples {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}

		need := numSamples - len(result.Samples)
		if need > len(input) {
			need = len(input)
		}

		blockStart := time.Now()
		out := g.Process(input[:need])
		blockElapsed := time.Since(blockStart)

		if budget > 0 && blockElapsed > budget {
			result.BudgetExceeded = true
			log.Warn("block exceeded latency budget",
				"block", result.Blocks,
				"elapsed", blockElapsed,
				"budget", budget)
		}

		result.Samples = append(result.Samples, out...)
		result.Blocks++
	}

	result.Elapsed = time.Since(start)

	if r.emergency {
		safety.ApplyEmergencyProtection(result.Samples, r.constraints.TruePeakLimitDB)
	}
	result.Metrics = safety.MeasureSafety(result.Samples)

	log.Debug("render complete",
		"samples", len(result.Samples),
		"blocks", result.Blocks,
		"elapsed", result.Elapsed,
		"true_peak_db", result.Metrics.TruePeakDB)

	return result, nil
}
