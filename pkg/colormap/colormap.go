// Package colormap maps colour parameters in [0, 1] to colours.
//
// Maps are plain functions ([Func]) collected in an explicit [Registry]
// that the host application builds once and passes to whoever needs it.
// [Default] returns a registry holding the built-in white-centred
// diverging maps:
//
//	reg := colormap.Default()
//	fn, err := reg.Lookup("xenosite")
//	if err != nil {
//	    return err
//	}
//	fill := colormap.RGB(fn(0.75)) // "rgb(...)"
//
// Interpolation happens in CIE L*a*b* space using go-colorful, so
// perceived lightness changes evenly along a ramp.
package colormap

import (
	"fmt"
	"math"
	"slices"
	"sync"

	"github.com/lucasb-eyer/go-colorful"

	"github.com/matzehuels/xenopict/pkg/errors"
)

// Func maps t in [0, 1] to a colour. Values outside the range are clamped
// by the built-in maps.
type Func func(t float64) colorful.Color

// Registry holds named colour maps. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	maps  map[string]Func
	order []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{maps: make(map[string]Func)}
}

// Register adds fn under name. Registering a name twice is an error.
func (r *Registry) Register(name string, fn Func) error {
	if err := errors.ValidateName("colormap name", name); err != nil {
		return err
	}
	if fn == nil {
		return errors.New(errors.ErrCodeInvalidInput, "colormap %q: nil function", name)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.maps[name]; ok {
		return errors.New(errors.ErrCodeInvalidInput, "colormap %q already registered", name)
	}
	r.maps[name] = fn
	r.order = append(r.order, name)
	return nil
}

// Lookup returns the map registered under name.
func (r *Registry) Lookup(name string) (Func, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	fn, ok := r.maps[name]
	if !ok {
		return nil, errors.New(errors.ErrCodeUnknownColormap, "unknown colormap %q", name)
	}
	return fn, nil
}

// Names returns registered names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Ramp interpolates through stops spaced evenly over [0, 1].
// It panics if stops is empty.
func Ramp(stops ...colorful.Color) Func {
	if len(stops) == 0 {
		panic("colormap: Ramp needs at least one stop")
	}
	stops = slices.Clone(stops)
	return func(t float64) colorful.Color {
		t = clamp01(t)
		if len(stops) == 1 {
			return stops[0]
		}
		x := t * float64(len(stops)-1)
		i := int(math.Floor(x))
		if i >= len(stops)-1 {
			return stops[len(stops)-1]
		}
		f := x - float64(i)
		if f == 0 {
			return stops[i]
		}
		return stops[i].BlendLab(stops[i+1], f).Clamped()
	}
}

// Diverging builds a map centred on center at t = 0.5. The lower half
// runs from the last low stop (t = 0) through the preceding low stops to
// center; the upper half runs from center through high to its last stop
// (t = 1). Stops within a ramp are ordered light to dark.
func Diverging(center colorful.Color, low, high []colorful.Color) Func {
	down := Ramp(append([]colorful.Color{center}, low...)...)
	up := Ramp(append([]colorful.Color{center}, high...)...)
	return func(t float64) colorful.Color {
		t = clamp01(t)
		if t < 0.5 {
			return down((0.5 - t) * 2)
		}
		return up((t - 0.5) * 2)
	}
}

// RGB formats c as an SVG rgb() colour with integer channels in 0..255.
// Channels are truncated, not rounded.
func RGB(c colorful.Color) string {
	c = c.Clamped()
	return fmt.Sprintf("rgb(%d,%d,%d)", int(c.R*255), int(c.G*255), int(c.B*255))
}

func clamp01(t float64) float64 {
	if math.IsNaN(t) {
		return 0.5
	}
	return math.Max(0, math.Min(1, t))
}
