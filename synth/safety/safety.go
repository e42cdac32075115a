// Package safety keeps synthesis graphs and their rendered audio inside
// sane numerical and loudness bounds. Structural problems are reported as
// issue-string lists so several can surface at once; only the emergency
// path mutates audio silently, since a rendered block must never carry
// NaN, Inf, or hard clips downstream.
package safety

// Constraints are the externally imposed limits a rendered graph should
// satisfy. The engine reports violations; it does not enforce MaxCPU or
// MaxLatencyMs itself.
type Constraints struct {
	MaxCPU          float64
	MaxLatencyMs    float64
	NoHardClips     bool
	TruePeakLimitDB float64
	LUFSTargetDB    float64
	CrestFactorMin  float64
	CrestFactorMax  float64
}

// DefaultConstraints returns the broadcast-oriented defaults.
func DefaultConstraints() Constraints {
	return Constraints{
		MaxCPU:          1.0,
		MaxLatencyMs:    10.0,
		NoHardClips:     true,
		TruePeakLimitDB: -1.0,
		LUFSTargetDB:    -18.0,
		CrestFactorMin:  6.0,
		CrestFactorMax:  14.0,
	}
}
