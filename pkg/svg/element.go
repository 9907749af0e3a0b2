// Package svg is a small mutable SVG element tree.
//
// It covers what the compositor needs: building elements, tagging them
// with classes and inline styles, deep-cloning subtrees, parsing
// pre-rendered diagrams and writing compact markup. It is not a
// validating SVG implementation and keeps attributes in document order.
package svg

import (
	"bytes"
	"encoding/xml"
	"io"
	"slices"
	"strings"

	"github.com/matzehuels/xenopict/pkg/style"
)

// Namespace is the SVG namespace written on root elements.
const Namespace = "http://www.w3.org/2000/svg"

// Attr is a single attribute.
type Attr struct {
	Name  string
	Value string
}

// Element is an SVG element or, when Name is empty, a character data node
// holding Text.
type Element struct {
	Name     string
	Attrs    []Attr
	Children []*Element
	Text     string
}

// New creates an element with attributes given as name/value pairs.
// It panics if attrs has an odd length.
func New(name string, attrs ...string) *Element {
	if len(attrs)%2 != 0 {
		panic("svg: odd number of attribute arguments")
	}
	e := &Element{Name: name}
	for i := 0; i < len(attrs); i += 2 {
		e.Set(attrs[i], attrs[i+1])
	}
	return e
}

// NewText creates a character data node.
func NewText(s string) *Element { return &Element{Text: s} }

// IsText reports whether e is a character data node.
func (e *Element) IsText() bool { return e.Name == "" }

// Get returns the value of the named attribute and whether it is set.
func (e *Element) Get(name string) (string, bool) {
	if i := e.index(name); i >= 0 {
		return e.Attrs[i].Value, true
	}
	return "", false
}

// Value returns the named attribute or "".
func (e *Element) Value(name string) string {
	v, _ := e.Get(name)
	return v
}

// Set replaces an attribute in place or appends it, and returns e.
func (e *Element) Set(name, value string) *Element {
	if i := e.index(name); i >= 0 {
		e.Attrs[i].Value = value
		return e
	}
	e.Attrs = append(e.Attrs, Attr{Name: name, Value: value})
	return e
}

// Remove deletes the named attribute. It reports whether it was present.
func (e *Element) Remove(name string) bool {
	i := e.index(name)
	if i < 0 {
		return false
	}
	e.Attrs = slices.Delete(e.Attrs, i, i+1)
	return true
}

// Append adds children and returns e.
func (e *Element) Append(children ...*Element) *Element {
	e.Children = append(e.Children, children...)
	return e
}

// Elements returns the child elements, skipping character data.
func (e *Element) Elements() []*Element {
	var out []*Element
	for _, c := range e.Children {
		if !c.IsText() {
			out = append(out, c)
		}
	}
	return out
}

// Classes returns the whitespace-separated entries of the class attribute.
func (e *Element) Classes() []string {
	return strings.Fields(e.Value("class"))
}

// HasClass reports whether class is among e's classes.
func (e *Element) HasClass(class string) bool {
	return slices.Contains(e.Classes(), class)
}

// Style parses the inline style attribute.
func (e *Element) Style() style.Style {
	return style.Parse(e.Value("style"))
}

// SetStyle writes s as the inline style, removing the attribute when s is
// empty.
func (e *Element) SetStyle(s style.Style) *Element {
	if s.Len() == 0 {
		e.Remove("style")
		return e
	}
	return e.Set("style", s.String())
}

// Clone returns a deep copy of e.
func (e *Element) Clone() *Element {
	c := &Element{
		Name:  e.Name,
		Attrs: slices.Clone(e.Attrs),
		Text:  e.Text,
	}
	if len(e.Children) > 0 {
		c.Children = make([]*Element, len(e.Children))
		for i, ch := range e.Children {
			c.Children[i] = ch.Clone()
		}
	}
	return c
}

// CloneAll deep-copies every element in list.
func CloneAll(list []*Element) []*Element {
	if list == nil {
		return nil
	}
	out := make([]*Element, len(list))
	for i, e := range list {
		out[i] = e.Clone()
	}
	return out
}

// Walk calls fn for e and its descendant elements in document order.
// Returning false from fn skips that element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if e.IsText() || !fn(e) {
		return
	}
	for _, c := range e.Children {
		c.Walk(fn)
	}
}

// Find returns all descendant elements (including e) with the given name.
func (e *Element) Find(name string) []*Element {
	var out []*Element
	e.Walk(func(x *Element) bool {
		if x.Name == name {
			out = append(out, x)
		}
		return true
	})
	return out
}

// WriteTo writes compact markup for e and its subtree.
func (e *Element) WriteTo(w io.Writer) (int64, error) {
	var buf bytes.Buffer
	e.write(&buf)
	return buf.WriteTo(w)
}

// Bytes returns the markup for e.
func (e *Element) Bytes() []byte {
	var buf bytes.Buffer
	e.write(&buf)
	return buf.Bytes()
}

// String returns the markup for e.
func (e *Element) String() string { return string(e.Bytes()) }

func (e *Element) write(buf *bytes.Buffer) {
	if e.IsText() {
		buf.WriteString(EscapeXML(e.Text))
		return
	}
	buf.WriteByte('<')
	buf.WriteString(e.Name)
	for _, a := range e.Attrs {
		buf.WriteByte(' ')
		buf.WriteString(a.Name)
		buf.WriteString(`="`)
		buf.WriteString(EscapeXML(a.Value))
		buf.WriteByte('"')
	}
	if len(e.Children) == 0 {
		buf.WriteString("/>")
		return
	}
	buf.WriteByte('>')
	for _, c := range e.Children {
		c.write(buf)
	}
	buf.WriteString("</")
	buf.WriteString(e.Name)
	buf.WriteByte('>')
}

func (e *Element) index(name string) int {
	for i, a := range e.Attrs {
		if a.Name == name {
			return i
		}
	}
	return -1
}

// EscapeXML escapes s for use in text content and attribute values.
func EscapeXML(s string) string {
	var buf bytes.Buffer
	xml.EscapeText(&buf, []byte(s))
	return buf.String()
}
