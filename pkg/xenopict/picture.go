package xenopict

import (
	"math"
	"sync"

	"github.com/matzehuels/xenopict/pkg/colormap"
	"github.com/matzehuels/xenopict/pkg/depict"
	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/geom"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/plotdot"
	"github.com/matzehuels/xenopict/pkg/style"
	"github.com/matzehuels/xenopict/pkg/svg"
)

const (
	// DefaultScale is the diagram length of one unit of dot radius.
	DefaultScale = 20.0

	// DefaultPadding is the frame padding in units of Scale.
	DefaultPadding = 1.5

	// DefaultResolution is the number of segments per quarter circle used
	// when outlining substructures.
	DefaultResolution = 6

	// MarkScale is the outline distance of marks in units of Scale.
	MarkScale = 1.0
)

// Layer identifies one of the five fixed groups of a picture.
type Layer int

const (
	Shading Layer = iota
	MolHalo
	Lines
	Text
	Overlay
	numLayers
)

var layerNames = [numLayers]string{"shading", "mol_halo", "lines", "text", "overlay"}

// String returns the class name of the layer's group.
func (l Layer) String() string {
	if l < 0 || l >= numLayers {
		return "unknown"
	}
	return layerNames[l]
}

// Source is the diagram a picture is built on.
//
// Coords and Bonds drive all geometry. Base is the pre-rendered diagram;
// its root element's children are sorted into layers and its root
// attributes are kept. Molecule is optional and only reported back by
// [Picture.Molecule].
type Source struct {
	Coords   []geom.Point
	Bonds    [][2]int
	Base     *svg.Element
	Molecule *molecule.Molecule
}

// FromMolecule builds a source from a molecule with coordinates. The base
// diagram is parsed from m.SVG when present and drawn with depict
// otherwise.
func FromMolecule(m *molecule.Molecule, opts ...depict.Option) (Source, error) {
	if err := m.Validate(); err != nil {
		return Source{}, err
	}
	coords := m.Coords()
	if coords == nil {
		return Source{}, errors.New(errors.ErrCodeInvalidMolecule, "molecule has no coordinates")
	}
	var (
		base *svg.Element
		err  error
	)
	if m.SVG != "" {
		base, err = svg.ParseString(m.SVG)
		if err != nil {
			return Source{}, errors.Wrap(errors.ErrCodeInvalidMolecule, err, "read base diagram")
		}
	} else {
		base, err = depict.Draw(m, opts...)
		if err != nil {
			return Source{}, err
		}
	}
	return Source{Coords: coords, Bonds: m.BondPairs(), Base: base, Molecule: m}, nil
}

// BondShading is a per-bond shading channel. Begin[i] and End[i] are the
// atoms of the bond shaded with Values[i]; the pair need not be a bond of
// the source.
type BondShading struct {
	Begin  []int
	End    []int
	Values []float64
}

// Option configures a picture.
type Option func(*config)

type config struct {
	scale      float64
	resolution int
	diverging  bool
	cmap       colormap.Func
	enc        *plotdot.Encoder
}

// WithScale sets the diagram length of a unit dot radius. Non-positive
// values are ignored.
func WithScale(s float64) Option {
	return func(c *config) {
		if s > 0 && !math.IsInf(s, 0) {
			c.scale = s
		}
	}
}

// WithColormap sets the colour map. A nil map is ignored.
func WithColormap(fn colormap.Func) Option {
	return func(c *config) {
		if fn != nil {
			c.cmap = fn
		}
	}
}

// WithDiverging selects diverging (values in [-1, 1], the default) or
// sequential (values in [0, 1]) shading.
func WithDiverging(d bool) Option { return func(c *config) { c.diverging = d } }

// WithEncoder sets the dot encoder. A nil encoder is ignored.
func WithEncoder(enc *plotdot.Encoder) Option {
	return func(c *config) {
		if enc != nil {
			c.enc = enc
		}
	}
}

// WithResolution sets the number of segments per quarter circle used for
// substructure outlines. Values below 1 are ignored.
func WithResolution(n int) Option {
	return func(c *config) {
		if n >= 1 {
			c.resolution = n
		}
	}
}

var defaultColormap = sync.OnceValue(func() colormap.Func {
	fn, err := colormap.Default().Lookup(colormap.DefaultName)
	if err != nil {
		panic(err)
	}
	return fn
})

// markLayers are the two overlay groups holding marks. They are created
// on the first mark.
type markLayers struct {
	halo *svg.Element
	mark *svg.Element
}

// Picture is a molecule diagram with shading and marks.
type Picture struct {
	cfg    config
	coords []geom.Point
	bonds  [][2]int
	mol    *molecule.Molecule

	root   *svg.Element
	layers [numLayers]*svg.Element
	marks  *markLayers
	filter []int
	err    error
}

// New builds a picture from src and frames it around all atoms.
func New(src Source, opts ...Option) (*Picture, error) {
	cfg := config{
		scale:      DefaultScale,
		resolution: DefaultResolution,
		diverging:  true,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.cmap == nil {
		cfg.cmap = defaultColormap()
	}
	if cfg.enc == nil {
		cfg.enc = plotdot.NewEncoder()
	}

	if err := validateSource(src); err != nil {
		return nil, err
	}

	p := &Picture{
		cfg:    cfg,
		coords: append([]geom.Point(nil), src.Coords...),
		bonds:  append([][2]int(nil), src.Bonds...),
		mol:    src.Molecule,
	}
	p.importBase(src.Base)
	p.Reframe(DefaultPadding, nil)
	return p, nil
}

func validateSource(src Source) error {
	if len(src.Coords) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "source has no atoms")
	}
	for i, c := range src.Coords {
		if math.IsNaN(c.X) || math.IsNaN(c.Y) || math.IsInf(c.X, 0) || math.IsInf(c.Y, 0) {
			return errors.New(errors.ErrCodeInvalidInput, "atom %d has non-finite coordinates", i)
		}
	}
	for k, b := range src.Bonds {
		if b[0] < 0 || b[0] >= len(src.Coords) || b[1] < 0 || b[1] >= len(src.Coords) {
			return errors.New(errors.ErrCodeInvalidInput, "bond %d references a missing atom", k)
		}
	}
	if src.Base == nil {
		return errors.New(errors.ErrCodeInvalidInput, "source has no base diagram")
	}
	if src.Base.Name != "svg" {
		return errors.New(errors.ErrCodeInvalidInput, "base diagram root is <%s>, want <svg>", src.Base.Name)
	}
	return nil
}

// importBase copies the base root and sorts its children into layers.
// Background rectangles are dropped. Styled paths are bond strokes: their
// style moves to the lines group and the paths go to lines. Everything
// else goes to text.
func (p *Picture) importBase(base *svg.Element) {
	p.root = &svg.Element{Name: "svg"}
	for _, a := range base.Attrs {
		p.root.Set(a.Name, a.Value)
	}
	if _, ok := p.root.Get("xmlns"); !ok {
		p.root.Set("xmlns", svg.Namespace)
	}
	for l := range numLayers {
		p.layers[l] = svg.New("g", "class", l.String())
	}

	var lineStyle style.Style
	for _, c := range base.Elements() {
		c = c.Clone()
		switch {
		case c.Name == "rect":
			continue
		case c.Name == "path" && c.Value("style") != "":
			s := c.Style()
			c.Remove("style")
			c.Remove("fill")
			s.Delete("stroke-linecap")
			s.Delete("stroke-linejoin")
			if v, _ := s.Get("fill"); v == "none" {
				s.Delete("fill")
			}
			lineStyle = s
			p.layers[Lines].Append(c)
		default:
			p.layers[Text].Append(c)
		}
	}
	lineStyle.Set("stroke-linecap", "round")
	lineStyle.Set("stroke-linejoin", "round")
	lineStyle.Set("stroke-width", "1")
	p.layers[Lines].SetStyle(lineStyle)

	for l := range numLayers {
		p.root.Append(p.layers[l])
	}
}

// Err returns the first error recorded by an operation, if any.
func (p *Picture) Err() error { return p.err }

func (p *Picture) fail(err error) bool {
	if err == nil {
		return false
	}
	if p.err == nil {
		p.err = err
	}
	return true
}

// NumAtoms returns the number of atoms.
func (p *Picture) NumAtoms() int { return len(p.coords) }

// Coords returns a copy of the atom coordinates.
func (p *Picture) Coords() []geom.Point { return append([]geom.Point(nil), p.coords...) }

// Bonds returns a copy of the bond list.
func (p *Picture) Bonds() [][2]int { return append([][2]int(nil), p.bonds...) }

// Molecule returns the source molecule, or nil.
func (p *Picture) Molecule() *molecule.Molecule { return p.mol }

// Scale returns the diagram length of a unit dot radius.
func (p *Picture) Scale() float64 { return p.cfg.scale }

// Filtered returns the atoms of the last Filter, or nil.
func (p *Picture) Filtered() []int { return append([]int(nil), p.filter...) }

// Layer returns the elements of layer l. The slice is the picture's own;
// callers must not modify it.
func (p *Picture) Layer(l Layer) []*svg.Element { return p.layers[l].Children }

// Root returns the picture's root element.
func (p *Picture) Root() *svg.Element { return p.root }

// Copy returns a deep copy. The copy shares coordinates and bonds, which
// are never modified, and nothing else.
func (p *Picture) Copy() *Picture {
	c := *p
	c.root = p.root.Clone()
	for l, g := range c.root.Elements() {
		if l < int(numLayers) {
			c.layers[l] = g
		}
	}
	c.filter = append([]int(nil), p.filter...)
	if p.marks != nil {
		c.marks = findMarks(c.layers[Overlay])
	}
	return &c
}

func findMarks(overlay *svg.Element) *markLayers {
	m := &markLayers{}
	for _, g := range overlay.Elements() {
		switch {
		case g.HasClass("halo"):
			m.halo = g
		case g.HasClass("mark"):
			m.mark = g
		}
	}
	if m.halo == nil || m.mark == nil {
		panic("xenopict: overlay lost its mark groups")
	}
	return m
}
