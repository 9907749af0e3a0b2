// Package xenopict composites shading data onto 2D molecule diagrams.
//
// # Overview
//
// A [Picture] is built from a [Source]: atom coordinates, bonds, and a
// base diagram whose elements carry "atom-<i>" classes. The base diagram
// is split into five layers that are written in a fixed order:
//
//	shading   dots and filled regions from Shade and ShadeSubstructure
//	mol_halo  white outlines behind the structure, from Halo
//	lines     bond strokes of the base diagram
//	text      atom labels and everything else of the base diagram
//	overlay   outlines from MarkSubstructure and MarkAtoms
//
// # Usage
//
//	pic, err := xenopict.New(src)
//	if err != nil {
//	    return err
//	}
//	pic.Shade(values, nil).MarkSubstructure([]int{0, 1, 2})
//	if err := pic.Err(); err != nil {
//	    return err
//	}
//	os.WriteFile("out.svg", pic.SVG(), 0o644)
//
// Operations chain. An operation given invalid input (an atom index out
// of range, a value that is not finite, mismatched lengths) changes
// nothing and records the error, which [Picture.Err] returns. Later
// operations still run; the first error is kept.
//
// # Shading
//
// Each value is encoded by a [plotdot.Encoder] into one or more stacked
// dots whose area follows the magnitude. Dots of every anchor are painted
// together in decreasing radius, so small dots are never hidden under
// large ones. Atom dots sit on atoms and bond dots on bond midpoints;
// substructure dots are the union of the substructure's atoms and
// internal bonds, grown by the dot radius.
//
// Pictures are not safe for concurrent mutation. [Picture.Copy] returns
// an independent value.
package xenopict
