package molecule

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/xenopict/pkg/errors"
)

// ReadJSON decodes and validates a molecule from r.
//
// ReadJSON returns an INVALID_MOLECULE error if the JSON is malformed or
// the molecule fails [Molecule.Validate]. It does not close r.
func ReadJSON(r io.Reader) (*Molecule, error) {
	var m Molecule
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidMolecule, err, "decode molecule")
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

// ImportJSON reads a molecule from the JSON file at path.
// A missing file yields a FILE_NOT_FOUND error.
func ImportJSON(path string) (*Molecule, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "open %s", path)
		}
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	m, err := ReadJSON(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// WriteJSON encodes m as indented JSON.
func WriteJSON(m *Molecule, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// ExportJSON writes m to a JSON file at path.
func ExportJSON(m *Molecule, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := WriteJSON(m, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
