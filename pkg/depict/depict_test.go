package depict

import (
	"strings"
	"testing"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/molecule"
)

func acetaldehyde(t *testing.T) *molecule.Molecule {
	t.Helper()
	m := &molecule.Molecule{
		Atoms: []molecule.Atom{{Symbol: "C"}, {Symbol: "C"}, {Symbol: "O"}},
		Bonds: []molecule.Bond{{Begin: 0, End: 1}, {Begin: 1, End: 2, Order: 2}},
	}
	if err := m.SetCoords([]geom.Point{geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(30, 30)}); err != nil {
		t.Fatal(err)
	}
	return m
}

func TestDrawStructure(t *testing.T) {
	root, err := Draw(acetaldehyde(t))
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if got := root.Value("viewBox"); got != "-20.0 -20.0 70.0 70.0" {
		t.Errorf("viewBox = %q", got)
	}

	kids := root.Elements()
	// rect, one single-bond path, two double-bond paths, one label
	if len(kids) != 5 {
		t.Fatalf("children = %d, want 5: %s", len(kids), root)
	}
	if kids[0].Name != "rect" {
		t.Errorf("first child = %s, want rect", kids[0].Name)
	}
	for _, p := range kids[1:4] {
		if p.Name != "path" {
			t.Errorf("child = %s, want path", p.Name)
		}
		if _, ok := p.Get("style"); !ok {
			t.Error("bond path without style")
		}
	}
	if got := kids[2].Value("class"); got != "bond-1 atom-1 atom-2" {
		t.Errorf("double bond class = %q", got)
	}

	label := kids[4]
	if label.Name != "text" || label.Value("class") != "atom-2" {
		t.Errorf("label = %s", label)
	}
	if label.Children[0].Text != "O" {
		t.Errorf("label text = %q, want O", label.Children[0].Text)
	}
	if fill, _ := label.Style().Get("fill"); fill != "#FF0000" {
		t.Errorf("oxygen fill = %q", fill)
	}
}

func TestDrawTrimsLabelledEnds(t *testing.T) {
	root, err := Draw(acetaldehyde(t), WithFontSize(10))
	if err != nil {
		t.Fatal(err)
	}
	// the C=O bond runs from (30,0) towards (30,30) and stops 6 short
	d := root.Elements()[2].Value("d")
	if !strings.HasSuffix(d, ",24.0") {
		t.Errorf("double bond path = %q, want it to end at y=24.0", d)
	}
	// the C-C bond is not trimmed
	if got := root.Elements()[1].Value("d"); got != "M 0.0,0.0 L 30.0,0.0" {
		t.Errorf("single bond path = %q", got)
	}
}

func TestDrawLabels(t *testing.T) {
	m := &molecule.Molecule{
		Atoms: []molecule.Atom{{Symbol: "C"}, {Symbol: "N", Charge: 1}, {Symbol: "C", Charge: -2}},
		Bonds: []molecule.Bond{{Begin: 0, End: 1}},
	}
	if err := m.SetCoords([]geom.Point{geom.Pt(0, 0), geom.Pt(30, 0), geom.Pt(60, 0)}); err != nil {
		t.Fatal(err)
	}
	root, err := Draw(m)
	if err != nil {
		t.Fatal(err)
	}
	var texts []string
	for _, e := range root.Find("text") {
		texts = append(texts, e.Children[0].Text)
	}
	if got := strings.Join(texts, " "); got != "N+ C2-" {
		t.Errorf("labels = %q, want %q", got, "N+ C2-")
	}
}

func TestDrawWithoutCoords(t *testing.T) {
	m := &molecule.Molecule{Atoms: []molecule.Atom{{Symbol: "C"}}}
	_, err := Draw(m)
	if !errors.Is(err, errors.ErrCodeInvalidMolecule) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidMolecule)
	}
}

func TestDrawInvalidBond(t *testing.T) {
	m := acetaldehyde(t)
	m.Bonds = append(m.Bonds, molecule.Bond{Begin: 0, End: 5})
	_, err := Draw(m)
	if !errors.Is(err, errors.ErrCodeInvalidMolecule) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidMolecule)
	}
}
