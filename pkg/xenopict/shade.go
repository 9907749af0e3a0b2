package xenopict

import (
	"github.com/matzehuels/xenopict/pkg/colormap"
	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/plotdot"
	"github.com/matzehuels/xenopict/pkg/style"
	"github.com/matzehuels/xenopict/pkg/svg"
)

const (
	dotScale     = 0.9
	dualDotScale = 0.8
)

// Shade draws per-atom and per-bond dots. Either channel may be nil; atoms
// must then have one value per atom. Dots are smaller when both channels
// are given so that bond dots stay visible between atom dots.
func (p *Picture) Shade(atoms []float64, bonds *BondShading) *Picture {
	if atoms == nil && bonds == nil {
		return p
	}
	if atoms != nil && p.fail(errors.ValidateShadingValues("atom shading", atoms, p.NumAtoms())) {
		return p
	}
	if bonds != nil && p.fail(p.validateBonds(bonds)) {
		return p
	}

	scale := p.cfg.scale * dotScale
	if atoms != nil && bonds != nil {
		scale = p.cfg.scale * dualDotScale
	}

	glyphs := plotdot.Place(p.cfg.enc, atoms, p.coords, p.cfg.diverging)
	if bonds != nil {
		mids := make([]geom.Point, len(bonds.Values))
		for i := range mids {
			mids[i] = p.coords[bonds.Begin[i]].Mid(p.coords[bonds.End[i]])
		}
		glyphs = append(glyphs, plotdot.Place(p.cfg.enc, bonds.Values, mids, p.cfg.diverging)...)
	}
	plotdot.Sort(glyphs)

	for _, g := range glyphs {
		p.layers[Shading].Append(circle(g.Anchor, g.Radius*scale, p.fill(g.Color)))
	}
	return p
}

func (p *Picture) validateBonds(b *BondShading) error {
	if len(b.Begin) != len(b.Values) || len(b.End) != len(b.Values) {
		return errors.New(errors.ErrCodeInvalidShading,
			"bond shading: begin, end and values have lengths %d, %d, %d", len(b.Begin), len(b.End), len(b.Values))
	}
	if err := errors.ValidateShadingIndices("bond shading", b.Begin, p.NumAtoms()); err != nil {
		return err
	}
	if err := errors.ValidateShadingIndices("bond shading", b.End, p.NumAtoms()); err != nil {
		return err
	}
	return errors.ValidateShadingValues("bond shading", b.Values, -1)
}

// substructure is the skeleton of a set of atoms: its atom positions and
// the bonds with both ends in the set.
type substructure struct {
	points   []geom.Point
	segments []geom.Segment
}

func (s substructure) empty() bool { return len(s.points) == 0 }

func (p *Picture) substructure(atoms []int) substructure {
	in := make(map[int]bool, len(atoms))
	var s substructure
	for _, a := range atoms {
		if in[a] {
			continue
		}
		in[a] = true
		s.points = append(s.points, p.coords[a])
	}
	for _, b := range p.bonds {
		if in[b[0]] && in[b[1]] {
			s.segments = append(s.segments, geom.Seg(p.coords[b[0]], p.coords[b[1]]))
		}
	}
	return s
}

// ShadeSubstructure fills the outline of each substructure with a value
// from values. Empty substructures are skipped.
func (p *Picture) ShadeSubstructure(substructures [][]int, values []float64) *Picture {
	if len(substructures) != len(values) {
		p.fail(errors.New(errors.ErrCodeInvalidShading,
			"substructure shading: %d substructures, %d values", len(substructures), len(values)))
		return p
	}
	if p.fail(errors.ValidateShadingValues("substructure shading", values, -1)) {
		return p
	}
	for _, atoms := range substructures {
		if p.fail(errors.ValidateShadingIndices("substructure shading", atoms, p.NumAtoms())) {
			return p
		}
	}

	anchors := make([]substructure, len(substructures))
	for i, atoms := range substructures {
		anchors[i] = p.substructure(atoms)
	}
	sets := plotdot.Batch(p.cfg.enc, values, anchors, p.cfg.diverging, substructure.empty)
	glyphs := plotdot.Flatten(sets)
	plotdot.Sort(glyphs)

	for _, g := range glyphs {
		region := geom.Build(g.Anchor.points, g.Anchor.segments, g.Radius*p.cfg.scale*dotScale, p.cfg.resolution)
		if region.Empty() {
			continue
		}
		path := svg.New("path", "d", region.PathData(1))
		path.SetStyle(p.fill(g.Color))
		p.layers[Shading].Append(path)
	}
	return p
}

// fill returns the style painting a dot of colour parameter c.
func (p *Picture) fill(c float64) style.Style {
	rgb := colormap.RGB(p.cfg.cmap(plotdot.ColorParam(c, p.cfg.diverging)))
	return style.FromPairs("fill", rgb)
}

func circle(at geom.Point, r float64, st style.Style) *svg.Element {
	c := svg.New("circle",
		"r", geom.FormatCoord(r, 1),
		"cx", geom.FormatCoord(at.X, 1),
		"cy", geom.FormatCoord(at.Y, 1),
	)
	return c.SetStyle(st)
}
