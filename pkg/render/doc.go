// Package render converts finished SVG pictures to output formats.
//
// # Formats
//
//   - svg: the document as is
//   - html: an <img> with the SVG as a data URI, for embedding in pages
//   - png, pdf: rasterized or vector output via the external rsvg-convert
//     tool from librsvg
//
//	out, err := render.Convert(ctx, pic.SVG(), "png", render.WithPNGScale(2))
//
// PNG and PDF need rsvg-convert on PATH:
//
//	brew install librsvg       # macOS
//	apt install librsvg2-bin   # Debian, Ubuntu
//
// Without it those formats fail with a TOOL_MISSING error; svg and html
// always work.
package render
