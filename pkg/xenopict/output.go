package xenopict

import (
	"net/url"
	"strings"

	"github.com/matzehuels/xenopict/pkg/svg"
)

// SVG returns the picture as a standalone SVG document.
func (p *Picture) SVG() []byte { return p.root.Bytes() }

// String returns the SVG document as a string.
func (p *Picture) String() string { return p.root.String() }

// HTML returns an HTML fragment showing the picture centred on a white
// background. The SVG is inlined as a data URI.
func (p *Picture) HTML() string { return HTML(p.SVG()) }

// HTML wraps an SVG document in an <img> tag inside a white <div>.
func HTML(doc []byte) string {
	var b strings.Builder
	b.WriteString(`<div style="background:white;width:100%">`)
	b.WriteString(`<img style="display:block;max-width:100%;margin:auto" data-xenopict src="`)
	b.WriteString(svg.EscapeXML("data:image/svg+xml;utf8," + url.PathEscape(string(doc))))
	b.WriteString(`" /></div>`)
	return b.String()
}

// ShadedSVG shades atoms and bonds of src and returns the SVG document.
func ShadedSVG(src Source, atoms []float64, bonds *BondShading, opts ...Option) ([]byte, error) {
	p, err := New(src, opts...)
	if err != nil {
		return nil, err
	}
	if err := p.Shade(atoms, bonds).Err(); err != nil {
		return nil, err
	}
	return p.SVG(), nil
}
