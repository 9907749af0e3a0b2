// Package depict draws a plain base diagram for a molecule with
// coordinates: bond lines and atom labels on a white background.
//
// The output follows the tagging convention the compositor relies on.
// Every bond line is a styled <path> with class "bond-<k> atom-<i>
// atom-<j>"; every label is a <text> with class "atom-<i>". Carbon atoms
// without charge are unlabelled, as in skeletal formulas, unless they
// have no bonds at all.
//
//	base, err := depict.Draw(mol)
//	if err != nil {
//	    return err
//	}
package depict

import (
	"fmt"
	"strconv"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/style"
	"github.com/matzehuels/xenopict/pkg/svg"
)

const (
	defaultFontSize  = 14.0
	defaultLineWidth = 2.0
	defaultMargin    = 20.0
	multiBondGap     = 4.0
	labelTrimRatio   = 0.6
)

var elementColors = map[string]string{
	"N":  "#0000FF",
	"O":  "#FF0000",
	"F":  "#33CCCC",
	"Cl": "#00CC00",
	"Br": "#7F4C19",
	"I":  "#A01EEF",
	"S":  "#CCCC00",
	"P":  "#FF7F00",
	"B":  "#FFB5B5",
}

// Option configures drawing.
type Option func(*drawer)

type drawer struct {
	fontSize  float64
	lineWidth float64
	margin    float64
}

// WithFontSize sets the atom label size in pixels.
func WithFontSize(px float64) Option { return func(d *drawer) { d.fontSize = px } }

// WithLineWidth sets the bond stroke width in pixels.
func WithLineWidth(px float64) Option { return func(d *drawer) { d.lineWidth = px } }

// WithMargin sets the space left around the atoms in the view box.
func WithMargin(m float64) Option { return func(d *drawer) { d.margin = m } }

// Draw renders m, which must be valid and have coordinates.
func Draw(m *molecule.Molecule, opts ...Option) (*svg.Element, error) {
	d := drawer{fontSize: defaultFontSize, lineWidth: defaultLineWidth, margin: defaultMargin}
	for _, opt := range opts {
		opt(&d)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	coords := m.Coords()
	if coords == nil {
		return nil, errors.New(errors.ErrCodeInvalidMolecule, "depict: molecule has no coordinates")
	}

	degree := make([]int, len(m.Atoms))
	for _, b := range m.Bonds {
		degree[b.Begin]++
		degree[b.End]++
	}
	labelled := make([]bool, len(m.Atoms))
	for i, a := range m.Atoms {
		labelled[i] = a.Symbol != "C" || a.Charge != 0 || degree[i] == 0
	}

	root := d.frame(coords)
	for k, b := range m.Bonds {
		for _, seg := range d.bondLines(coords, b, labelled) {
			root.Append(svg.New("path",
				"class", fmt.Sprintf("bond-%d atom-%d atom-%d", k, b.Begin, b.End),
				"d", "M "+pointStr(seg.A)+" L "+pointStr(seg.B),
				"style", d.bondStyle().String(),
			))
		}
	}
	for i, a := range m.Atoms {
		if !labelled[i] {
			continue
		}
		root.Append(d.label(i, a, coords[i]))
	}
	return root, nil
}

func (d drawer) frame(coords []geom.Point) *svg.Element {
	lo, hi := coords[0], coords[0]
	for _, p := range coords[1:] {
		lo = geom.Pt(min(lo.X, p.X), min(lo.Y, p.Y))
		hi = geom.Pt(max(hi.X, p.X), max(hi.Y, p.Y))
	}
	x, y := lo.X-d.margin, lo.Y-d.margin
	w, h := hi.X-lo.X+2*d.margin, hi.Y-lo.Y+2*d.margin

	root := svg.New("svg",
		"xmlns", svg.Namespace,
		"viewBox", fmt.Sprintf("%.1f %.1f %.1f %.1f", x, y, w, h),
		"width", fmt.Sprintf("%.1f", w),
		"height", fmt.Sprintf("%.1f", h),
	)
	root.Append(svg.New("rect",
		"style", "opacity:1.0;fill:#FFFFFF;stroke:none",
		"x", fmt.Sprintf("%.1f", x), "y", fmt.Sprintf("%.1f", y),
		"width", fmt.Sprintf("%.1f", w), "height", fmt.Sprintf("%.1f", h),
	))
	return root
}

func (d drawer) bondStyle() style.Style {
	return style.FromPairs(
		"fill", "none",
		"fill-rule", "evenodd",
		"stroke", "#000000",
		"stroke-width", strconv.FormatFloat(d.lineWidth, 'f', 1, 64)+"px",
		"stroke-linecap", "butt",
		"stroke-linejoin", "miter",
		"stroke-opacity", "1",
	)
}

// bondLines returns the strokes for one bond, trimmed at labelled ends.
func (d drawer) bondLines(coords []geom.Point, b molecule.Bond, labelled []bool) []geom.Segment {
	a, c := coords[b.Begin], coords[b.End]
	dir := c.Sub(a)
	l := dir.Len()
	if l == 0 {
		return nil
	}
	u := dir.Scale(1 / l)
	trim := d.fontSize * labelTrimRatio
	if labelled[b.Begin] {
		a = a.Add(u.Scale(min(trim, l/3)))
	}
	if labelled[b.End] {
		c = c.Sub(u.Scale(min(trim, l/3)))
	}

	n := geom.Pt(-u.Y, u.X)
	var offsets []float64
	switch b.BondOrder() {
	case 2:
		offsets = []float64{-multiBondGap / 2, multiBondGap / 2}
	case 3:
		offsets = []float64{-multiBondGap, 0, multiBondGap}
	default:
		offsets = []float64{0}
	}
	out := make([]geom.Segment, len(offsets))
	for i, o := range offsets {
		shift := n.Scale(o)
		out[i] = geom.Seg(a.Add(shift), c.Add(shift))
	}
	return out
}

func (d drawer) label(i int, a molecule.Atom, p geom.Point) *svg.Element {
	color, ok := elementColors[a.Symbol]
	if !ok {
		color = "#000000"
	}
	st := style.FromPairs(
		"font-size", strconv.FormatFloat(d.fontSize, 'f', -1, 64)+"px",
		"font-family", "sans-serif",
		"text-anchor", "middle",
		"dominant-baseline", "central",
		"fill", color,
	)
	e := svg.New("text",
		"class", fmt.Sprintf("atom-%d", i),
		"x", geom.FormatCoord(p.X, 1),
		"y", geom.FormatCoord(p.Y, 1),
	)
	e.SetStyle(st)
	return e.Append(svg.NewText(a.Symbol + chargeSuffix(a.Charge)))
}

func chargeSuffix(q int) string {
	switch {
	case q == 0:
		return ""
	case q == 1:
		return "+"
	case q == -1:
		return "-"
	case q > 0:
		return strconv.Itoa(q) + "+"
	default:
		return strconv.Itoa(-q) + "-"
	}
}

func pointStr(p geom.Point) string {
	return geom.FormatCoord(p.X, 1) + "," + geom.FormatCoord(p.Y, 1)
}
