package geom

import (
	"math"
	"slices"

	"github.com/tdewolff/canvas"
)

// Build returns the union of points and segments grown outward by offset.
//
// Each point becomes a disc with 4*resolution vertices and each segment a
// capsule whose semicircular caps have 2*resolution edges. Duplicate
// primitives are ignored, as are points that coincide with a segment
// endpoint (their disc lies inside the segment's capsule). A zero-length
// segment is treated as a point. Non-finite coordinates are skipped.
//
// The primitives are overlaid as subpaths of one [canvas.Path] and settled
// with the nonzero fill rule, which resolves their union. The settled
// outline is read back as rings: outer rings counter-clockwise, holes
// clockwise, each starting at its lowest-left vertex.
//
// Empty input, or an offset that is not positive, yields an empty region.
// A resolution below 1 is treated as 1.
func Build(points []Point, segments []Segment, offset float64, resolution int) Region {
	if !(offset > 0) || math.IsInf(offset, 0) {
		return Region{}
	}
	resolution = max(resolution, 1)

	discs, capsules := primitives(points, segments)
	if len(discs) == 0 && len(capsules) == 0 {
		return Region{}
	}

	polys := make([]Ring, 0, len(discs)+len(capsules))
	for _, c := range discs {
		polys = append(polys, disc(c, offset, resolution))
	}
	for _, s := range capsules {
		polys = append(polys, capsule(s, offset, resolution))
	}

	if len(polys) == 1 {
		return Region{rings: polys}
	}
	return union(polys, tolerance(polys, offset))
}

// primitives deduplicates the input and splits it into disc centres and
// capsule segments, preserving first-seen order.
func primitives(points []Point, segments []Segment) ([]Point, []Segment) {
	var capsules []Segment
	var degenerate []Point
	seenSeg := make(map[Segment]bool)
	endpoints := make(map[Point]bool)
	for _, s := range segments {
		if !s.A.finite() || !s.B.finite() {
			continue
		}
		if s.A == s.B {
			degenerate = append(degenerate, s.A)
			continue
		}
		key := s.normalized()
		if seenSeg[key] {
			continue
		}
		seenSeg[key] = true
		endpoints[s.A] = true
		endpoints[s.B] = true
		capsules = append(capsules, s)
	}

	var discs []Point
	seenPt := make(map[Point]bool)
	for _, p := range slices.Concat(points, degenerate) {
		if !p.finite() || seenPt[p] || endpoints[p] {
			continue
		}
		seenPt[p] = true
		discs = append(discs, p)
	}
	return discs, capsules
}

// disc approximates a circle counter-clockwise starting at angle zero.
func disc(c Point, r float64, resolution int) Ring {
	n := 4 * resolution
	pts := make(Ring, n)
	for k := range n {
		theta := 2 * math.Pi * float64(k) / float64(n)
		pts[k] = Point{c.X + r*math.Cos(theta), c.Y + r*math.Sin(theta)}
	}
	return pts
}

// capsule approximates the set of points within r of s, counter-clockwise:
// the cap around B from its right tangent to its left tangent, then the cap
// around A from its left tangent back to its right tangent. The straight
// sides are the two implicit edges joining the caps.
func capsule(s Segment, r float64, resolution int) Ring {
	n := 2 * resolution
	phi := math.Atan2(s.B.Y-s.A.Y, s.B.X-s.A.X)
	pts := make(Ring, 0, 2*n+2)
	for _, end := range []struct {
		c     Point
		start float64
	}{{s.B, phi - math.Pi/2}, {s.A, phi + math.Pi/2}} {
		for k := 0; k <= n; k++ {
			theta := end.start + math.Pi*float64(k)/float64(n)
			pts = append(pts, Point{end.c.X + r*math.Cos(theta), end.c.Y + r*math.Sin(theta)})
		}
	}
	return pts
}

// tolerance scales the absolute geometric tolerance with the magnitude of
// the coordinates involved.
func tolerance(polys []Ring, offset float64) float64 {
	m := math.Max(1, offset)
	for _, ring := range polys {
		for _, p := range ring {
			m = math.Max(m, math.Max(math.Abs(p.X), math.Abs(p.Y)))
		}
	}
	return 1e-9 * m
}

// union merges counter-clockwise polygons into the rings of their union.
func union(polys []Ring, eps float64) Region {
	p := &canvas.Path{}
	for _, ring := range polys {
		p.MoveTo(ring[0].X, ring[0].Y)
		for _, q := range ring[1:] {
			p.LineTo(q.X, q.Y)
		}
		p.Close()
	}

	var rings []Ring
	for _, ring := range readRings(p.Settle(canvas.NonZero)) {
		if ring = clean(ring, eps); len(ring) >= 3 && math.Abs(ring.Area()) > eps {
			rings = append(rings, ring)
		}
	}
	orient(rings)
	return Region{rings: rings}
}

// readRings collects the subpaths of a path made of straight lines.
func readRings(p *canvas.Path) []Ring {
	var rings []Ring
	var cur Ring
	flush := func() {
		if len(cur) > 0 {
			rings = append(rings, cur)
		}
		cur = nil
	}
	s := p.Scanner()
	for s.Scan() {
		end := s.End()
		switch s.Cmd() {
		case canvas.MoveToCmd:
			flush()
			cur = Ring{{X: end.X, Y: end.Y}}
		case canvas.CloseCmd:
			flush()
		default:
			cur = append(cur, Point{X: end.X, Y: end.Y})
		}
	}
	flush()
	return rings
}

// orient makes rings nested at even depth counter-clockwise and holes
// clockwise, and rotates each ring to start at its lowest-left vertex.
func orient(rings []Ring) {
	for i, r := range rings {
		depth := 0
		for j, other := range rings {
			if i != j && other.contains(r[0]) {
				depth++
			}
		}
		if hole := depth%2 == 1; hole == (r.Area() > 0) {
			slices.Reverse(r)
		}
		first := 0
		for k, p := range r {
			if p.less(r[first]) {
				first = k
			}
		}
		rings[i] = append(r[first:len(r):len(r)], r[:first]...)
	}
}

// contains reports whether p lies inside r by the even-odd rule.
func (r Ring) contains(p Point) bool {
	in := false
	for i, a := range r {
		b := r[(i+1)%len(r)]
		if (a.Y > p.Y) != (b.Y > p.Y) && p.X < a.X+(p.Y-a.Y)*(b.X-a.X)/(b.Y-a.Y) {
			in = !in
		}
	}
	return in
}

// clean drops consecutive vertices closer than d, including a closing
// vertex that repeats the first.
func clean(r Ring, d float64) Ring {
	out := r[:0:0]
	for _, p := range r {
		if len(out) > 0 && out[len(out)-1].near(p, d) {
			continue
		}
		out = append(out, p)
	}
	for len(out) > 1 && out[len(out)-1].near(out[0], d) {
		out = out[:len(out)-1]
	}
	return out
}
