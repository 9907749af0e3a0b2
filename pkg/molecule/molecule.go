package molecule

import (
	"math"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
)

// Atom is a labelled vertex. X and Y are nil when the molecule has no
// coordinates yet.
type Atom struct {
	Symbol string   `json:"symbol"`
	Charge int      `json:"charge,omitempty"`
	X      *float64 `json:"x,omitempty"`
	Y      *float64 `json:"y,omitempty"`
}

// Bond joins two atoms by index.
type Bond struct {
	Begin int `json:"begin"`
	End   int `json:"end"`
	Order int `json:"order,omitempty"`
}

// Molecule is a diagram source.
type Molecule struct {
	Name  string `json:"name,omitempty"`
	Atoms []Atom `json:"atoms"`
	Bonds []Bond `json:"bonds"`
	SVG   string `json:"svg,omitempty"`
}

// NumAtoms returns the number of atoms.
func (m *Molecule) NumAtoms() int { return len(m.Atoms) }

// NumBonds returns the number of bonds.
func (m *Molecule) NumBonds() int { return len(m.Bonds) }

// HasCoords reports whether every atom has coordinates. A molecule without
// atoms has none.
func (m *Molecule) HasCoords() bool {
	if len(m.Atoms) == 0 {
		return false
	}
	for _, a := range m.Atoms {
		if a.X == nil || a.Y == nil {
			return false
		}
	}
	return true
}

// Coords returns atom positions in atom order, or nil if HasCoords is false.
func (m *Molecule) Coords() []geom.Point {
	if !m.HasCoords() {
		return nil
	}
	out := make([]geom.Point, len(m.Atoms))
	for i, a := range m.Atoms {
		out[i] = geom.Pt(*a.X, *a.Y)
	}
	return out
}

// SetCoords assigns positions to atoms in order.
func (m *Molecule) SetCoords(pts []geom.Point) error {
	if len(pts) != len(m.Atoms) {
		return errors.New(errors.ErrCodeInvalidMolecule, "got %d coordinates for %d atoms", len(pts), len(m.Atoms))
	}
	for i, p := range pts {
		x, y := p.X, p.Y
		m.Atoms[i].X, m.Atoms[i].Y = &x, &y
	}
	return nil
}

// BondPairs returns each bond as a [begin, end] atom index pair.
func (m *Molecule) BondPairs() [][2]int {
	out := make([][2]int, len(m.Bonds))
	for i, b := range m.Bonds {
		out[i] = [2]int{b.Begin, b.End}
	}
	return out
}

// Validate checks the molecule for structural problems:
//   - at least one atom, each with a valid symbol
//   - bond indices in range, no self-bonds, no duplicate bonds
//   - bond order 0 (meaning single), 1, 2 or 3
//   - coordinates all-or-none and finite
func (m *Molecule) Validate() error {
	if len(m.Atoms) == 0 {
		return errors.New(errors.ErrCodeInvalidMolecule, "molecule has no atoms")
	}

	withCoords := 0
	for i, a := range m.Atoms {
		if err := errors.ValidateName("atom symbol", a.Symbol); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidMolecule, err, "atom %d", i)
		}
		if (a.X == nil) != (a.Y == nil) {
			return errors.New(errors.ErrCodeInvalidMolecule, "atom %d: x and y must be given together", i)
		}
		if a.X != nil {
			if !finite(*a.X) || !finite(*a.Y) {
				return errors.New(errors.ErrCodeInvalidMolecule, "atom %d: coordinates are not finite", i)
			}
			withCoords++
		}
	}
	if withCoords != 0 && withCoords != len(m.Atoms) {
		return errors.New(errors.ErrCodeInvalidMolecule, "%d of %d atoms have coordinates, want all or none", withCoords, len(m.Atoms))
	}

	seen := make(map[[2]int]bool, len(m.Bonds))
	for i, b := range m.Bonds {
		if b.Begin < 0 || b.Begin >= len(m.Atoms) || b.End < 0 || b.End >= len(m.Atoms) {
			return errors.New(errors.ErrCodeInvalidMolecule, "bond %d: atom index out of range [0, %d)", i, len(m.Atoms))
		}
		if b.Begin == b.End {
			return errors.New(errors.ErrCodeInvalidMolecule, "bond %d: atom %d bonded to itself", i, b.Begin)
		}
		if b.Order < 0 || b.Order > 3 {
			return errors.New(errors.ErrCodeInvalidMolecule, "bond %d: order %d not in 1..3", i, b.Order)
		}
		key := [2]int{min(b.Begin, b.End), max(b.Begin, b.End)}
		if seen[key] {
			return errors.New(errors.ErrCodeInvalidMolecule, "bond %d: duplicate bond %d-%d", i, key[0], key[1])
		}
		seen[key] = true
	}
	return nil
}

// BondOrder returns the bond order with the zero value read as single.
func (b Bond) BondOrder() int {
	if b.Order == 0 {
		return 1
	}
	return b.Order
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
