package param

// Ranged is a named float64 parameter constrained to a closed interval.
// Assignments outside the interval fail without mutating the stored value.
type Ranged struct {
	name  string
	value float64
	min   float64
	max   float64
}

// NewRanged builds a ranged parameter with the given default. The default
// must lie within [min, max]; NewRanged clamps it if it does not.
func NewRanged(name string, def, min, max float64) Ranged {
	if def < min {
		def = min
	}
	if def > max {
		def = max
	}
	return Ranged{name: name, value: def, min: min, max: max}
}

// Name returns the parameter name.
func (r *Ranged) Name() string { return r.name }

// Value returns the current value.
func (r *Ranged) Value() float64 { return r.value }

// Min returns the lower bound.
func (r *Ranged) Min() float64 { return r.min }

// Max returns the upper bound.
func (r *Ranged) Max() float64 { return r.max }

// Set assigns v if it lies within [Min, Max]. Out-of-range values return a
// *RangeError and leave the stored value unchanged.
func (r *Ranged) Set(v float64) error {
	if v < r.min || v > r.max {
		return &RangeError{Name: r.name, Value: v, Min: r.min, Max: r.max}
	}
	r.value = v
	return nil
}

// InRange reports whether v would be accepted by Set.
func (r *Ranged) InRange(v float64) bool {
	return v >= r.min && v <= r.max
}
