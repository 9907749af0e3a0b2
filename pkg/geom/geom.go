// Package geom builds planar regions from points and line segments and
// serializes their boundaries as SVG path data.
//
// # Regions
//
// [Build] grows a set of points and segments outward by a fixed offset and
// returns the union as a [Region]. Points become discs and segments become
// capsules (rectangles with semicircular caps); every circular arc is
// approximated with resolution line segments per quarter turn:
//
//	r := geom.Build(atoms, bonds, 20, 6)
//	if !r.Empty() {
//	    d := r.PathData(1) // "M 10.0,0.0 L ... Z"
//	}
//
// A region may be empty, a single ring, or several disjoint rings. Outer
// rings run counter-clockwise (positive [Ring.Area]) and holes clockwise, so
// the default SVG nonzero fill rule renders holes correctly.
//
// # Determinism
//
// For a fixed input, offset and resolution, the output rings, their
// starting vertices and their vertex order are reproducible. Nothing in
// the construction is randomized and primitives are processed in input
// order.
package geom

import (
	"math"
	"strconv"
	"strings"
)

// Point is a 2D coordinate in diagram space.
type Point struct {
	X, Y float64
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y float64) Point { return Point{X: x, Y: y} }

// Add returns p+q.
func (p Point) Add(q Point) Point { return Point{p.X + q.X, p.Y + q.Y} }

// Sub returns p-q.
func (p Point) Sub(q Point) Point { return Point{p.X - q.X, p.Y - q.Y} }

// Scale returns p multiplied by f.
func (p Point) Scale(f float64) Point { return Point{p.X * f, p.Y * f} }

// Dot returns the dot product of p and q.
func (p Point) Dot(q Point) float64 { return p.X*q.X + p.Y*q.Y }

// Cross returns the z component of the cross product of p and q. It is
// positive when q lies counter-clockwise of p.
func (p Point) Cross(q Point) float64 { return p.X*q.Y - p.Y*q.X }

// Len returns the distance of p from the origin.
func (p Point) Len() float64 { return math.Hypot(p.X, p.Y) }

// Dist returns the distance between p and q.
func (p Point) Dist(q Point) float64 { return p.Sub(q).Len() }

// Mid returns the midpoint of p and q.
func (p Point) Mid(q Point) Point { return Point{(p.X + q.X) / 2, (p.Y + q.Y) / 2} }

func (p Point) finite() bool          { return !math.IsNaN(p.X+p.Y) && !math.IsInf(p.X+p.Y, 0) }
func (p Point) less(q Point) bool     { return p.X < q.X || (p.X == q.X && p.Y < q.Y) }
func (p Point) near(q Point, d float64) bool {
	return math.Abs(p.X-q.X) <= d && math.Abs(p.Y-q.Y) <= d
}

// Segment is a straight line between two points.
type Segment struct {
	A, B Point
}

// Seg is shorthand for Segment{a, b}.
func Seg(a, b Point) Segment { return Segment{A: a, B: b} }

// Len returns the segment length.
func (s Segment) Len() float64 { return s.A.Dist(s.B) }

// Mid returns the segment midpoint.
func (s Segment) Mid() Point { return s.A.Mid(s.B) }

// DistTo returns the distance from p to the closest point on s.
func (s Segment) DistTo(p Point) float64 {
	d := s.B.Sub(s.A)
	l2 := d.Dot(d)
	if l2 == 0 {
		return p.Dist(s.A)
	}
	t := math.Max(0, math.Min(1, p.Sub(s.A).Dot(d)/l2))
	return p.Dist(s.A.Add(d.Scale(t)))
}

// normalized orders the endpoints so equal segments compare equal
// regardless of direction.
func (s Segment) normalized() Segment {
	if s.B.less(s.A) {
		return Segment{A: s.B, B: s.A}
	}
	return s
}

// Ring is a closed polyline. The closing edge from the last vertex back to
// the first is implicit; the first vertex is not repeated.
type Ring []Point

// Area returns the signed shoelace area: positive for counter-clockwise
// rings in a y-up frame, negative for clockwise ones.
func (r Ring) Area() float64 {
	var a float64
	for i, p := range r {
		q := r[(i+1)%len(r)]
		a += p.Cross(q)
	}
	return a / 2
}

// Region is a union of rings. The zero value is the empty region.
type Region struct {
	rings []Ring
}

// Empty reports whether the region has no rings.
func (r Region) Empty() bool { return len(r.rings) == 0 }

// NumRings returns the number of boundary rings.
func (r Region) NumRings() int { return len(r.rings) }

// Rings returns a copy of the boundary rings.
func (r Region) Rings() []Ring {
	out := make([]Ring, len(r.rings))
	for i, ring := range r.rings {
		out[i] = append(Ring(nil), ring...)
	}
	return out
}

// Area returns the sum of signed ring areas (holes subtract).
func (r Region) Area() float64 {
	var a float64
	for _, ring := range r.rings {
		a += ring.Area()
	}
	return a
}

// Bounds returns the bounding box of all ring vertices.
// ok is false for an empty region.
func (r Region) Bounds() (lo, hi Point, ok bool) {
	for _, ring := range r.rings {
		for _, p := range ring {
			if !ok {
				lo, hi, ok = p, p, true
				continue
			}
			lo = Point{math.Min(lo.X, p.X), math.Min(lo.Y, p.Y)}
			hi = Point{math.Max(hi.X, p.X), math.Max(hi.Y, p.Y)}
		}
	}
	return lo, hi, ok
}

// PathData serializes the region boundary as SVG path commands: one
// "M x,y" per ring, "L x,y" for every following vertex and "Z" to close.
// Coordinates use fixed-point notation with precision decimal places.
// An empty region yields "".
func (r Region) PathData(precision int) string {
	var b strings.Builder
	for _, ring := range r.rings {
		if len(ring) == 0 {
			continue
		}
		for i, p := range ring {
			if i == 0 {
				b.WriteString("M ")
			} else {
				b.WriteString("L ")
			}
			b.WriteString(FormatCoord(p.X, precision))
			b.WriteByte(',')
			b.WriteString(FormatCoord(p.Y, precision))
			b.WriteByte(' ')
		}
		b.WriteString("Z ")
	}
	return strings.TrimSuffix(b.String(), " ")
}

// FormatCoord formats v in fixed-point notation with precision decimals.
// Values that round to zero are written without a sign.
func FormatCoord(v float64, precision int) string {
	s := strconv.FormatFloat(v, 'f', precision, 64)
	if strings.HasPrefix(s, "-") && strings.Trim(s[1:], "0.") == "" {
		return s[1:]
	}
	return s
}
