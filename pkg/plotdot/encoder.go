package plotdot

import "math"

const (
	// DefaultLevels is the number of magnitude bands per value.
	DefaultLevels = 3
	// DefaultMinRadius is the smallest radius that is still emitted.
	DefaultMinRadius = 0.05
)

// Dot is one encoded glyph before it is attached to an anchor. Radius is a
// unit-free fraction of the caller's scale; Color is the colour parameter
// in [-1, 1] (diverging) or [0, 1] (sequential).
type Dot struct {
	Radius float64
	Color  float64
}

// Encoder converts shading values into dots.
type Encoder struct {
	levels    int
	minRadius float64
}

// Option configures an Encoder.
type Option func(*Encoder)

// WithLevels sets the number of magnitude bands. Values below 1 are ignored.
func WithLevels(n int) Option {
	return func(e *Encoder) {
		if n >= 1 {
			e.levels = n
		}
	}
}

// WithMinRadius sets the visibility threshold. Negative values are ignored.
func WithMinRadius(r float64) Option {
	return func(e *Encoder) {
		if r >= 0 {
			e.minRadius = r
		}
	}
}

// NewEncoder returns an encoder with DefaultLevels and DefaultMinRadius
// unless overridden.
func NewEncoder(opts ...Option) *Encoder {
	e := &Encoder{levels: DefaultLevels, minRadius: DefaultMinRadius}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Levels returns the configured number of bands.
func (e *Encoder) Levels() int { return e.levels }

// MinRadius returns the configured visibility threshold.
func (e *Encoder) MinRadius() float64 { return e.minRadius }

// Encode returns the dots for v, largest first. The result is empty when
// v is zero (after clamping) or too small to be visible.
func (e *Encoder) Encode(v float64, diverging bool) []Dot {
	v = Clamp(v, diverging)
	m := math.Abs(v)
	if m == 0 {
		return nil
	}
	sign := 1.0
	if v < 0 {
		sign = -1
	}

	levels := float64(e.levels)
	base := math.Sqrt(m)
	var dots []Dot
	for k := 0; k < e.levels; k++ {
		lo := float64(k) / levels
		if m <= lo {
			break
		}
		r := base * (1 - lo)
		if r < e.minRadius || r <= 0 {
			break
		}
		dots = append(dots, Dot{
			Radius: r,
			Color:  sign * math.Min(m, float64(k+1)/levels),
		})
	}
	return dots
}

// EncodeBatch encodes every value independently. Element i of the result
// belongs to values[i]; values that encode to nothing yield a nil entry.
func (e *Encoder) EncodeBatch(values []float64, diverging bool) [][]Dot {
	out := make([][]Dot, len(values))
	for i, v := range values {
		out[i] = e.Encode(v, diverging)
	}
	return out
}

// Dominant returns the radius of the largest dot for v, or 0 if v encodes
// to nothing.
func (e *Encoder) Dominant(v float64, diverging bool) float64 {
	if dots := e.Encode(v, diverging); len(dots) > 0 {
		return dots[0].Radius
	}
	return 0
}

// Clamp maps v into the encodable range: [-1, 1] when diverging, [0, 1]
// otherwise. NaN becomes 0.
func Clamp(v float64, diverging bool) float64 {
	if math.IsNaN(v) {
		return 0
	}
	lo := -1.0
	if !diverging {
		lo = 0
	}
	return math.Max(lo, math.Min(1, v))
}

// ColorParam maps a dot's colour parameter to the [0, 1] input expected by
// a colour map. Diverging parameters are shifted from [-1, 1]; sequential
// ones pass through.
func ColorParam(c float64, diverging bool) float64 {
	if diverging {
		return (c + 1) / 2
	}
	return c
}
