package plotdot

import (
	"cmp"
	"slices"
)

// Glyph is a dot attached to an anchor, ready to be drawn.
// A is a point for atom and bond shading, a region for substructures.
type Glyph[A any] struct {
	Radius float64
	Color  float64
	Anchor A
}

// GlyphSet holds the dots of one input value together with its anchor.
// Index is the position of the value in the input.
type GlyphSet[A any] struct {
	Index  int
	Anchor A
	Dots   []Dot
}

// Glyphs attaches the set's anchor to each of its dots.
func (s GlyphSet[A]) Glyphs() []Glyph[A] {
	out := make([]Glyph[A], len(s.Dots))
	for i, d := range s.Dots {
		out[i] = Glyph[A]{Radius: d.Radius, Color: d.Color, Anchor: s.Anchor}
	}
	return out
}

// Place encodes values[i] at anchors[i] and flattens the result in input
// order. Extra values or anchors beyond the shorter slice are ignored.
func Place[A any](enc *Encoder, values []float64, anchors []A, diverging bool) []Glyph[A] {
	n := min(len(values), len(anchors))
	var out []Glyph[A]
	for i := range n {
		for _, d := range enc.Encode(values[i], diverging) {
			out = append(out, Glyph[A]{Radius: d.Radius, Color: d.Color, Anchor: anchors[i]})
		}
	}
	return out
}

// Batch encodes values[i] at anchors[i], keeping input order. Entries whose
// anchor is empty are skipped rather than padded; a nil empty func treats
// every anchor as present. Values that encode to nothing still produce a
// set with no dots so that Index stays meaningful.
func Batch[A any](enc *Encoder, values []float64, anchors []A, diverging bool, empty func(A) bool) []GlyphSet[A] {
	n := min(len(values), len(anchors))
	out := make([]GlyphSet[A], 0, n)
	for i := range n {
		if empty != nil && empty(anchors[i]) {
			continue
		}
		out = append(out, GlyphSet[A]{
			Index:  i,
			Anchor: anchors[i],
			Dots:   enc.Encode(values[i], diverging),
		})
	}
	return out
}

// Flatten concatenates the glyphs of all sets in order.
func Flatten[A any](sets []GlyphSet[A]) []Glyph[A] {
	var out []Glyph[A]
	for _, s := range sets {
		out = append(out, s.Glyphs()...)
	}
	return out
}

// Sort orders glyphs in place by decreasing radius so that larger glyphs
// are painted first. Glyphs with equal radius keep their relative order.
func Sort[A any](glyphs []Glyph[A]) {
	slices.SortStableFunc(glyphs, func(a, b Glyph[A]) int {
		return cmp.Compare(b.Radius, a.Radius)
	})
}
