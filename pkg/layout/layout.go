// Package layout generates 2D atom coordinates for molecules that have none.
//
// # Overview
//
// Coordinates come from Graphviz's neato spring model, run in-process via
// [github.com/goccy/go-graphviz]. The molecule is written as an undirected
// DOT graph with one point-shaped node per atom and one edge per bond,
// rendered to SVG, and the node centres are read back. The result is
// rescaled so that the mean bond length equals the requested bond length
// and translated so that the smallest x and y are zero.
//
//	pts, err := layout.Coords(ctx, mol)
//	if err != nil {
//	    return err
//	}
//	mol.SetCoords(pts)
//
// Neato is seeded (start=1), so repeated runs on the same molecule produce
// the same coordinates. The output is a readable diagram, not a chemically
// correct depiction.
package layout

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/svg"
)

// DefaultBondLength is the mean bond length of generated coordinates in
// diagram units. It equals the default picture scale, so a full-size dot
// reaches the neighbouring atom.
const DefaultBondLength = 20.0

// Option configures coordinate generation.
type Option func(*options)

type options struct {
	bondLength float64
	seed       int
}

// WithBondLength sets the target mean bond length. Non-positive values are
// ignored.
func WithBondLength(l float64) Option {
	return func(o *options) {
		if l > 0 {
			o.bondLength = l
		}
	}
}

// WithSeed sets neato's random start. Different seeds give different but
// individually reproducible layouts.
func WithSeed(seed int) Option { return func(o *options) { o.seed = seed } }

// ToDOT writes m as an undirected DOT graph for neato. Atoms are named
// "a<i>"; bond length hints are scaled by bond order so multiple bonds
// are drawn slightly shorter.
func ToDOT(m *molecule.Molecule, seed int) string {
	var buf bytes.Buffer
	buf.WriteString("graph G {\n")
	fmt.Fprintf(&buf, "  start=%d;\n", seed)
	buf.WriteString("  overlap=false;\n")
	buf.WriteString("  node [shape=point, width=0.05];\n")
	buf.WriteString("  edge [len=1.0];\n")
	buf.WriteString("\n")
	for i := range m.Atoms {
		fmt.Fprintf(&buf, "  a%d;\n", i)
	}
	buf.WriteString("\n")
	for _, b := range m.Bonds {
		if b.BondOrder() > 1 {
			fmt.Fprintf(&buf, "  a%d -- a%d [len=0.9];\n", b.Begin, b.End)
			continue
		}
		fmt.Fprintf(&buf, "  a%d -- a%d;\n", b.Begin, b.End)
	}
	buf.WriteString("}\n")
	return buf.String()
}

// Coords computes coordinates for every atom of m. Existing coordinates
// are ignored.
func Coords(ctx context.Context, m *molecule.Molecule, opts ...Option) ([]geom.Point, error) {
	o := options{bondLength: DefaultBondLength, seed: 1}
	for _, opt := range opts {
		opt(&o)
	}
	if m.NumAtoms() == 0 {
		return nil, errors.New(errors.ErrCodeInvalidMolecule, "layout: molecule has no atoms")
	}
	if m.NumAtoms() == 1 {
		return []geom.Point{{}}, nil
	}

	out, err := renderNeato(ctx, ToDOT(m, o.seed))
	if err != nil {
		return nil, err
	}
	pts, err := nodePositions(out, m.NumAtoms())
	if err != nil {
		return nil, err
	}
	normalize(pts, m.BondPairs(), o.bondLength)
	return pts, nil
}

// Ensure fills in coordinates when m has none. It reports whether
// coordinates were generated.
func Ensure(ctx context.Context, m *molecule.Molecule, opts ...Option) (bool, error) {
	if m.HasCoords() {
		return false, nil
	}
	pts, err := Coords(ctx, m, opts...)
	if err != nil {
		return false, err
	}
	return true, m.SetCoords(pts)
}

func renderNeato(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()
	gv.SetLayout(graphviz.NEATO)

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// nodePositions reads node centres from Graphviz SVG output. Each node is
// a <g class="node"> whose <title> is the node name and whose first
// ellipse gives the centre.
func nodePositions(out []byte, n int) ([]geom.Point, error) {
	root, err := svg.Parse(bytes.NewReader(out))
	if err != nil {
		return nil, fmt.Errorf("read layout: %w", err)
	}

	pts := make([]geom.Point, n)
	found := make([]bool, n)
	for _, g := range root.Find("g") {
		if !g.HasClass("node") {
			continue
		}
		idx, ok := nodeIndex(g)
		if !ok || idx >= n {
			continue
		}
		ellipses := g.Find("ellipse")
		if len(ellipses) == 0 {
			continue
		}
		x, errX := strconv.ParseFloat(ellipses[0].Value("cx"), 64)
		y, errY := strconv.ParseFloat(ellipses[0].Value("cy"), 64)
		if errX != nil || errY != nil {
			return nil, errors.New(errors.ErrCodeInternal, "layout: bad position for node a%d", idx)
		}
		pts[idx], found[idx] = geom.Pt(x, y), true
	}
	for i, ok := range found {
		if !ok {
			return nil, errors.New(errors.ErrCodeInternal, "layout: no position for atom %d", i)
		}
	}
	return pts, nil
}

func nodeIndex(g *svg.Element) (int, bool) {
	for _, c := range g.Elements() {
		if c.Name != "title" || len(c.Children) == 0 {
			continue
		}
		name := strings.TrimSpace(c.Children[0].Text)
		if !strings.HasPrefix(name, "a") {
			return 0, false
		}
		i, err := strconv.Atoi(name[1:])
		return i, err == nil && i >= 0
	}
	return 0, false
}

// normalize scales pts so the mean bond length is bondLength and moves the
// bounding box to the origin. Without bonds the spacing is left as is.
func normalize(pts []geom.Point, bonds [][2]int, bondLength float64) {
	var total float64
	for _, b := range bonds {
		total += pts[b[0]].Dist(pts[b[1]])
	}
	f := 1.0
	if len(bonds) > 0 && total > 0 {
		f = bondLength / (total / float64(len(bonds)))
	}

	lo := geom.Pt(math.Inf(1), math.Inf(1))
	for _, p := range pts {
		lo = geom.Pt(math.Min(lo.X, p.X), math.Min(lo.Y, p.Y))
	}
	for i, p := range pts {
		pts[i] = p.Sub(lo).Scale(f)
	}
}
