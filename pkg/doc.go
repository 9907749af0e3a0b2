// Package pkg provides the core libraries for xenopict molecule shading.
//
// # Overview
//
// xenopict draws per-atom and per-bond values onto 2D molecule diagrams as
// shaded dots and filled substructure regions, with optional outlines that
// highlight atoms or substructures. The pkg directory is organized into
// three areas:
//
//  1. Geometry and drawing: [geom], [style], [svg], [colormap], [plotdot]
//  2. Molecules and pictures: [molecule], [layout], [depict], [xenopict]
//  3. Infrastructure: [pipeline], [render], [cache], [errors],
//     [observability], [buildinfo]
//
// # Architecture
//
// The typical data flow:
//
//	molecule JSON
//	      ↓
//	 [layout] package (generate 2D coordinates when missing)
//	      ↓
//	 [depict] package (base diagram with atom-<i> classes)
//	      ↓
//	 [xenopict] package (shade, mark, filter, reframe)
//	      ↓
//	 [render] package (SVG, HTML, PNG, PDF)
//
// # Quick Start
//
//	m, _ := molecule.ImportJSON("aspirin.json")
//	if _, err := layout.Ensure(ctx, m); err != nil {
//	    return err
//	}
//	src, _ := xenopict.FromMolecule(m)
//	pic, _ := xenopict.New(src)
//	pic.Shade(values, nil).MarkAtoms([]int{0, 3})
//	if err := pic.Err(); err != nil {
//	    return err
//	}
//	os.WriteFile("aspirin.svg", pic.SVG(), 0o644)
//
// The [pipeline] package wraps these steps with defaults, validation and
// caching, and is what the CLI and the HTTP server call.
//
// # Main Packages
//
// [geom] - Points, segments and the grown outline of their union, used for
// substructure shading and marks.
//
// [plotdot] - Encodes a value as a dot radius and colour position on a
// fixed number of levels.
//
// [colormap] - Named colour maps and the registry used to look them up.
//
// [svg] - A small mutable SVG element tree with a parser and serializer.
//
// [molecule] - Atoms, bonds and optional coordinates, with JSON import and
// export.
//
// [layout] - 2D coordinate generation with the Graphviz neato spring model.
//
// [xenopict] - The shaded picture and its chaining operations.
//
// [cache] - File, Redis and null caches shared by the CLI and the server.
//
// # Testing
//
//	go test ./pkg/...           # All tests
//	go test ./pkg/xenopict/...  # Specific package
//	go test -run Example ./...  # Examples only
//
// [geom]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/geom
// [style]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/style
// [svg]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/svg
// [colormap]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/colormap
// [plotdot]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/plotdot
// [molecule]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/molecule
// [layout]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/layout
// [depict]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/depict
// [xenopict]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/xenopict
// [pipeline]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/pipeline
// [render]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/render
// [cache]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/cache
// [errors]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/xenopict/pkg/buildinfo
package pkg
