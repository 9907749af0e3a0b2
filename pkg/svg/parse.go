package svg

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/xml"

	"github.com/matzehuels/xenopict/pkg/errors"
)

// Parse reads a document and returns its root element. Processing
// instructions, comments and the doctype are dropped; whitespace-only
// character data between elements is dropped as well. Entity references
// in attribute values and text are decoded.
func Parse(r io.Reader) (*Element, error) {
	l := xml.NewLexer(parse.NewInput(r))

	var (
		root  *Element
		stack []*Element
		open  *Element // start tag whose attributes are being read
		inPI  bool
	)
	for {
		tt, data := l.Next()
		switch tt {
		case xml.ErrorToken:
			if err := l.Err(); err != io.EOF {
				return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "parse svg")
			}
			if root == nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "parse svg: no root element")
			}
			if len(stack) > 0 {
				return nil, errors.New(errors.ErrCodeInvalidInput, "parse svg: unclosed <%s>", stack[len(stack)-1].Name)
			}
			return root, nil

		case xml.StartTagPIToken:
			inPI = true
		case xml.StartTagClosePIToken:
			inPI = false

		case xml.StartTagToken:
			e := &Element{Name: string(l.Text())}
			if len(stack) > 0 {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, e)
			} else if root != nil {
				return nil, errors.New(errors.ErrCodeInvalidInput, "parse svg: multiple root elements")
			} else {
				root = e
			}
			open = e

		case xml.AttributeToken:
			if inPI || open == nil {
				continue
			}
			open.Attrs = append(open.Attrs, Attr{
				Name:  string(l.Text()),
				Value: html.UnescapeString(unquote(l.AttrVal())),
			})

		case xml.StartTagCloseToken:
			stack = append(stack, open)
			open = nil

		case xml.StartTagCloseVoidToken:
			open = nil

		case xml.EndTagToken:
			name := string(l.Text())
			if len(stack) == 0 || stack[len(stack)-1].Name != name {
				return nil, errors.New(errors.ErrCodeInvalidInput, "parse svg: unexpected </%s>", name)
			}
			stack = stack[:len(stack)-1]

		case xml.TextToken, xml.CDATAToken:
			if len(stack) == 0 || len(bytes.TrimSpace(data)) == 0 {
				continue
			}
			text := string(data)
			if tt == xml.CDATAToken {
				text = strings.TrimSuffix(strings.TrimPrefix(text, "<![CDATA["), "]]>")
			} else {
				text = html.UnescapeString(text)
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, NewText(text))
		}
	}
}

// ParseString parses a document held in s.
func ParseString(s string) (*Element, error) {
	return Parse(strings.NewReader(s))
}

func unquote(b []byte) string {
	if n := len(b); n >= 2 && (b[0] == '"' || b[0] == '\'') && b[n-1] == b[0] {
		return string(b[1 : n-1])
	}
	return string(b)
}
