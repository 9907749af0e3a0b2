package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/xenopict"
)

// Output formats.
const (
	FormatSVG  = "svg"
	FormatHTML = "html"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
)

// DefaultPNGScale renders PNGs at twice the picture's nominal size.
const DefaultPNGScale = 2.0

const rsvgConvert = "rsvg-convert"

// Option configures conversion.
type Option func(*converter)

type converter struct {
	pngScale float64
}

// WithPNGScale sets the PNG zoom factor. Non-positive values are ignored.
func WithPNGScale(s float64) Option {
	return func(c *converter) {
		if s > 0 {
			c.pngScale = s
		}
	}
}

// Convert turns an SVG document into format.
func Convert(ctx context.Context, svg []byte, format string, opts ...Option) ([]byte, error) {
	c := converter{pngScale: DefaultPNGScale}
	for _, opt := range opts {
		opt(&c)
	}
	switch format {
	case FormatSVG:
		return svg, nil
	case FormatHTML:
		return []byte(xenopict.HTML(svg)), nil
	case FormatPNG:
		return ToPNG(ctx, svg, c.pngScale)
	case FormatPDF:
		return ToPDF(ctx, svg)
	default:
		return nil, errors.ValidateFormat(format)
	}
}

// ContentType returns the MIME type of format.
func ContentType(format string) string {
	switch format {
	case FormatSVG:
		return "image/svg+xml"
	case FormatHTML:
		return "text/html; charset=utf-8"
	case FormatPNG:
		return "image/png"
	case FormatPDF:
		return "application/pdf"
	default:
		return "application/octet-stream"
	}
}

// ToPDF converts an SVG document to PDF.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return convert(ctx, svg, FormatPDF)
}

// ToPNG converts an SVG document to PNG, zoomed by scale.
func ToPNG(ctx context.Context, svg []byte, scale float64) ([]byte, error) {
	return convert(ctx, svg, FormatPNG, "-z", fmt.Sprintf("%.2f", scale))
}

// Available reports whether PNG and PDF conversion is possible.
func Available() bool {
	_, err := exec.LookPath(rsvgConvert)
	return err == nil
}

func convert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	if !Available() {
		return nil, errors.New(errors.ErrCodeToolMissing,
			"%s export requires librsvg. Install with:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin", format)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, rsvgConvert, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, stderr bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, errors.Wrap(errors.ErrCodeTimeout, ctx.Err(), "rsvg-convert interrupted")
		}
		return nil, errors.Wrap(errors.ErrCodeToolFailed, err,
			"rsvg-convert: %s", strings.TrimSpace(stderr.String()))
	}
	return out.Bytes(), nil
}
