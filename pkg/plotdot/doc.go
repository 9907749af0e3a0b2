// Package plotdot encodes scalar shading values as stacked circular glyphs.
//
// # Overview
//
// A shading value in [-1, 1] is drawn as one or more concentric dots at an
// anchor (an atom, a bond midpoint, or a substructure outline). The
// [Encoder] maps a single value to an ordered list of [Dot]s; [Place] and
// [Batch] pair encoded values with anchors; [Sort] fixes the paint order
// across everything that is about to be drawn.
//
// # Glyph Stacking
//
// Magnitudes are split into Levels equal bands (three by default). With
// m = |v|, band k (k = 0 .. Levels-1) contributes a dot when m > k/Levels:
//
//	radius = sqrt(m) * (1 - k/Levels)
//	color  = sign(v) * min(m, (k+1)/Levels)
//
// The first dot is the dominant one. Its area is proportional to |v|, so
// its radius never decreases as |v| grows. Further dots are smaller and
// carry a more saturated colour parameter, which makes strong values read
// as a darker core inside a lighter rim. Dots whose radius falls below
// MinRadius are dropped, so v = 0 produces nothing.
//
// # Out-of-range Values
//
// Values outside the contract are clamped: diverging values to [-1, 1],
// sequential values to [0, 1]. NaN is treated as 0.
//
// # Paint Order
//
// Glyphs must be appended to the canvas largest first so that small dots
// are never hidden behind large ones:
//
//	glyphs := plotdot.Place(enc, values, anchors, true)
//	plotdot.Sort(glyphs)
//	for _, g := range glyphs {
//	    // draw g
//	}
package plotdot
