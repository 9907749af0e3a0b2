package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/xenopict/pkg/errors"
)

const doc = `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 10 10" width="10" height="10"><circle r="4" cx="5" cy="5" style="fill:rgb(255,0,0)"/></svg>`

func TestConvertSVG(t *testing.T) {
	out, err := Convert(context.Background(), []byte(doc), FormatSVG)
	if err != nil {
		t.Fatal(err)
	}
	if string(out) != doc {
		t.Errorf("svg output changed: %s", out)
	}
}

func TestConvertHTML(t *testing.T) {
	out, err := Convert(context.Background(), []byte(doc), FormatHTML)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(out), "<div") || !strings.Contains(string(out), "data:image/svg+xml;utf8,") {
		t.Errorf("html output = %s", out)
	}
}

func TestConvertUnknownFormat(t *testing.T) {
	_, err := Convert(context.Background(), []byte(doc), "gif")
	if !errors.Is(err, errors.ErrCodeInvalidFormat) {
		t.Errorf("error = %v, want %s", err, errors.ErrCodeInvalidFormat)
	}
}

func TestConvertRaster(t *testing.T) {
	tests := []struct {
		format string
		magic  []byte
	}{
		{FormatPNG, []byte("\x89PNG")},
		{FormatPDF, []byte("%PDF")},
	}
	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			out, err := Convert(context.Background(), []byte(doc), tt.format, WithPNGScale(1))
			if !Available() {
				if !errors.Is(err, errors.ErrCodeToolMissing) {
					t.Errorf("error without rsvg-convert = %v, want %s", err, errors.ErrCodeToolMissing)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if !bytes.HasPrefix(out, tt.magic) {
				t.Errorf("%s output starts with %q", tt.format, out[:min(8, len(out))])
			}
		})
	}
}

func TestContentType(t *testing.T) {
	tests := map[string]string{
		FormatSVG:  "image/svg+xml",
		FormatHTML: "text/html; charset=utf-8",
		FormatPNG:  "image/png",
		FormatPDF:  "application/pdf",
		"other":    "application/octet-stream",
	}
	for format, want := range tests {
		if got := ContentType(format); got != want {
			t.Errorf("ContentType(%q) = %q, want %q", format, got, want)
		}
	}
}
