package xenopict

import (
	"fmt"
	"maps"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/svg"
)

// Filter removes bond lines and labels that belong to atoms outside the
// given set. An element belongs to the atoms named by its "atom-<i>"
// classes and is kept when all of them are in the set; untagged elements
// are kept. Filtering twice with the same atoms changes nothing.
//
// The set is remembered and used by Reframe when no atoms are given.
func (p *Picture) Filter(atoms []int) *Picture {
	if p.fail(errors.ValidateAtomIndices("filter", atoms, p.NumAtoms())) {
		return p
	}
	keep := make(map[int]bool, len(atoms))
	for _, a := range atoms {
		keep[a] = true
	}
	for _, l := range []Layer{Lines, Text} {
		g := p.layers[l]
		var kept []*svg.Element
		for _, c := range g.Children {
			if c.IsText() || belongsTo(c, keep) {
				kept = append(kept, c)
			}
		}
		g.Children = kept
	}

	p.filter = slices.Sorted(maps.Keys(keep))
	return p
}

func belongsTo(e *svg.Element, atoms map[int]bool) bool {
	for _, a := range AtomTags(e) {
		if !atoms[a] {
			return false
		}
	}
	return true
}

// AtomTags returns the atom indices named by e's "atom-<i>" classes.
// Classes with a non-numeric suffix are ignored.
func AtomTags(e *svg.Element) []int {
	var out []int
	for _, c := range e.Classes() {
		s, ok := strings.CutPrefix(c, "atom-")
		if !ok {
			continue
		}
		if i, err := strconv.Atoi(s); err == nil {
			out = append(out, i)
		}
	}
	return out
}

// Reframe fits the view box around atoms, or around the filtered atoms,
// or around all atoms, with padding*Scale on every side.
func (p *Picture) Reframe(padding float64, atoms []int) *Picture {
	if p.fail(errors.ValidateAtomIndices("reframe", atoms, p.NumAtoms())) {
		return p
	}
	switch {
	case len(atoms) > 0:
	case len(p.filter) > 0:
		atoms = p.filter
	default:
		atoms = nil
	}

	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)
	visit := func(i int) {
		c := p.coords[i]
		minX, minY = math.Min(minX, c.X), math.Min(minY, c.Y)
		maxX, maxY = math.Max(maxX, c.X), math.Max(maxY, c.Y)
	}
	if atoms == nil {
		for i := range p.coords {
			visit(i)
		}
	} else {
		for _, a := range atoms {
			visit(a)
		}
	}

	pad := p.cfg.scale * padding
	x, y := minX-pad, minY-pad
	w, h := maxX-minX+2*pad, maxY-minY+2*pad
	p.root.Set("viewBox", fmt.Sprintf("%0.1f %0.1f %0.1f %0.1f", x, y, w, h))
	p.root.Set("width", fmt.Sprintf("%0.1f", w))
	p.root.Set("height", fmt.Sprintf("%0.1f", h))
	return p
}

// SubstructureFocus shows only atoms and frames the picture around them.
// An empty list is a no-op.
func (p *Picture) SubstructureFocus(atoms []int) *Picture {
	if len(atoms) == 0 {
		return p
	}
	if p.fail(errors.ValidateAtomIndices("focus", atoms, p.NumAtoms())) {
		return p
	}
	return p.Filter(atoms).Reframe(DefaultPadding, nil)
}
