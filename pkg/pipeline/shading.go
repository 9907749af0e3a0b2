package pipeline

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/xenopict"
)

// Shading describes what to draw on a picture. Every field is optional;
// an empty channel is treated as absent.
type Shading struct {
	Atoms         []float64           `json:"atoms,omitempty"`
	Bonds         *BondValues         `json:"bonds,omitempty"`
	Substructures []SubstructureValue `json:"substructures,omitempty"`
	Mark          [][]int             `json:"mark,omitempty"`
	MarkAtoms     []int               `json:"mark_atoms,omitempty"`
	Focus         []int               `json:"focus,omitempty"`
	Halo          bool                `json:"halo,omitempty"`
}

// BondValues is a per-bond channel given as parallel arrays.
type BondValues struct {
	Begin  []int     `json:"begin"`
	End    []int     `json:"end"`
	Values []float64 `json:"values"`
}

// SubstructureValue shades the region spanned by Atoms with Value.
type SubstructureValue struct {
	Atoms []int   `json:"atoms"`
	Value float64 `json:"value"`
}

// ReadShadingJSON decodes a shading request.
func ReadShadingJSON(r io.Reader) (*Shading, error) {
	var s Shading
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&s); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidShading, err, "decode shading")
	}
	return &s, nil
}

// ImportShadingJSON reads a shading request from a file.
func ImportShadingJSON(path string) (*Shading, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "shading file %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadShadingJSON(f)
}

// IsEmpty reports whether s draws nothing.
func (s *Shading) IsEmpty() bool {
	return s == nil || (len(s.Atoms) == 0 && !s.hasBonds() && len(s.Substructures) == 0 &&
		len(s.Mark) == 0 && len(s.MarkAtoms) == 0 && len(s.Focus) == 0 && !s.Halo)
}

func (s *Shading) hasBonds() bool {
	return s.Bonds != nil && (len(s.Bonds.Begin) > 0 || len(s.Bonds.End) > 0 || len(s.Bonds.Values) > 0)
}

// Validate checks every channel against a molecule of numAtoms atoms.
func (s *Shading) Validate(numAtoms int) error {
	if s == nil {
		return nil
	}
	if len(s.Atoms) > 0 {
		if err := errors.ValidateShadingValues("atom shading", s.Atoms, numAtoms); err != nil {
			return err
		}
	}
	if s.hasBonds() {
		b := s.Bonds
		if len(b.Begin) != len(b.End) {
			return errors.New(errors.ErrCodeInvalidShading,
				"bond shading has %d begin and %d end atoms", len(b.Begin), len(b.End))
		}
		if err := errors.ValidateShadingValues("bond shading", b.Values, len(b.Begin)); err != nil {
			return err
		}
		if err := errors.ValidateShadingIndices("bond shading", b.Begin, numAtoms); err != nil {
			return err
		}
		if err := errors.ValidateShadingIndices("bond shading", b.End, numAtoms); err != nil {
			return err
		}
	}
	for _, sub := range s.Substructures {
		if err := errors.ValidateShadingIndices("substructure", sub.Atoms, numAtoms); err != nil {
			return err
		}
		if err := errors.ValidateShadingValues("substructure", []float64{sub.Value}, 1); err != nil {
			return err
		}
	}
	for _, m := range s.Mark {
		if err := errors.ValidateAtomIndices("mark", m, numAtoms); err != nil {
			return err
		}
	}
	if err := errors.ValidateAtomIndices("mark_atoms", s.MarkAtoms, numAtoms); err != nil {
		return err
	}
	return errors.ValidateAtomIndices("focus", s.Focus, numAtoms)
}

// Apply draws s on p. Shading comes first, then the halo, marks and the
// focus filter. Framing is left to the caller. The first error recorded
// on p is returned.
func (s *Shading) Apply(p *xenopict.Picture, halo bool) error {
	if s == nil {
		if halo {
			p.Halo()
		}
		return p.Err()
	}

	var atoms []float64
	if len(s.Atoms) > 0 {
		atoms = s.Atoms
	}
	var bonds *xenopict.BondShading
	if s.hasBonds() {
		bonds = &xenopict.BondShading{Begin: s.Bonds.Begin, End: s.Bonds.End, Values: s.Bonds.Values}
	}
	if atoms != nil || bonds != nil {
		p.Shade(atoms, bonds)
	}

	if len(s.Substructures) > 0 {
		subs := make([][]int, len(s.Substructures))
		vals := make([]float64, len(s.Substructures))
		for i, sub := range s.Substructures {
			subs[i], vals[i] = sub.Atoms, sub.Value
		}
		p.ShadeSubstructure(subs, vals)
	}

	if halo || s.Halo {
		p.Halo()
	}
	for _, m := range s.Mark {
		p.MarkSubstructure(m)
	}
	if len(s.MarkAtoms) > 0 {
		p.MarkAtoms(s.MarkAtoms)
	}
	if len(s.Focus) > 0 {
		p.Filter(s.Focus)
	}
	return p.Err()
}
