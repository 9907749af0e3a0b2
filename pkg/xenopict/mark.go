package xenopict

import (
	"fmt"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/style"
	"github.com/matzehuels/xenopict/pkg/svg"
)

// MarkSubstructure outlines atoms and the bonds between them. An empty
// list is a no-op.
func (p *Picture) MarkSubstructure(atoms []int) *Picture {
	if len(atoms) == 0 {
		return p
	}
	if p.fail(errors.ValidateAtomIndices("mark", atoms, p.NumAtoms())) {
		return p
	}
	s := p.substructure(atoms)
	region := geom.Build(s.points, s.segments, p.cfg.scale*MarkScale, p.cfg.resolution)
	if region.Empty() {
		return p
	}
	p.appendMark(svg.New("path", "d", region.PathData(1)))
	return p
}

// MarkAtoms draws an outline circle around each atom.
func (p *Picture) MarkAtoms(atoms []int) *Picture {
	if len(atoms) == 0 {
		return p
	}
	if p.fail(errors.ValidateAtomIndices("mark atoms", atoms, p.NumAtoms())) {
		return p
	}
	for _, a := range atoms {
		c := circle(p.coords[a], p.cfg.scale*MarkScale, style.Style{})
		c.Set("class", fmt.Sprintf("atom-%d", a))
		p.appendMark(c)
	}
	return p
}

// appendMark adds e to the mark group and a copy of it to the halo group
// drawn underneath.
func (p *Picture) appendMark(e *svg.Element) {
	if p.marks == nil {
		p.marks = &markLayers{
			halo: svg.New("g", "class", "halo", "stroke", "#555", "opacity", "0.45",
				"style", "fill:none;stroke-width:4"),
			mark: svg.New("g", "class", "mark", "stroke", "white",
				"style", "fill:none;stroke-width:2;opacity:0.7"),
		}
		p.layers[Overlay].Append(p.marks.halo, p.marks.mark)
	}
	p.marks.mark.Append(e)
	p.marks.halo.Append(e.Clone())
}

// Halo draws a white outline behind bond lines and labels, replacing any
// earlier halo.
func (p *Picture) Halo() *Picture {
	lines := p.layers[Lines].Clone()
	lines.SetStyle(style.FromPairs("stroke-width", "3"))
	text := p.layers[Text].Clone()
	text.SetStyle(style.FromPairs("stroke-width", "2"))

	h := p.layers[MolHalo]
	h.Children = []*svg.Element{lines, text}
	h.SetStyle(style.FromPairs(
		"stroke", "white",
		"opacity", "0.5",
		"stroke-linecap", "round",
		"stroke-linejoin", "round",
	))
	return p
}
