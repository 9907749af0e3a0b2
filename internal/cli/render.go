package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xenopict/pkg/errors"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/pipeline"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output     string
	formats    string
	shading    string
	atoms      []float64
	marks      []string
	markAtoms  []int
	focus      []int
	halo       bool
	sequential bool
	noCache    bool
	padding    float64
	minRadius  float64
	opts       pipeline.Options

	// changed reports whether a flag was set on the command line.
	changed func(name string) bool
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	var ro renderOpts

	cmd := &cobra.Command{
		Use:   "render [molecule.json]",
		Short: "Shade a molecule and render it to SVG, HTML, PNG or PDF",
		Long: `Shade a molecule and render it to SVG, HTML, PNG or PDF.

The molecule is a JSON file with atoms and bonds. Atoms without coordinates
are laid out automatically. Shading comes from a JSON file (--shading) and
from flags; flags add to the file.

Examples:
  xenopict render caffeine.json --atoms 0.9,0.1,-0.4,...
  xenopict render caffeine.json -s shading.json -f svg,png
  xenopict render caffeine.json --mark 0,1,2 --focus 0,1,2,3 -o - > out.svg

PNG and PDF output require rsvg-convert (librsvg).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd.Context(), args[0], &ro)
		},
	}

	cmd.Flags().StringVarP(&ro.output, "output", "o", "", "output file, or - for stdout (default: <input>.<format>)")
	cmd.Flags().StringVarP(&ro.formats, "format", "f", "", "output format(s): svg (default), html, png, pdf (comma-separated)")
	cmd.Flags().BoolVar(&ro.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&ro.opts.Refresh, "refresh", false, "ignore cached results")

	// Shading
	cmd.Flags().StringVarP(&ro.shading, "shading", "s", "", "shading JSON file")
	cmd.Flags().Float64SliceVar(&ro.atoms, "atoms", nil, "per-atom values in [-1, 1] (comma-separated, one per atom)")
	cmd.Flags().StringArrayVar(&ro.marks, "mark", nil, "outline a substructure given as comma-separated atom indices (repeatable)")
	cmd.Flags().IntSliceVar(&ro.markAtoms, "mark-atoms", nil, "circle these atoms")
	cmd.Flags().IntSliceVar(&ro.focus, "focus", nil, "crop to these atoms")
	cmd.Flags().BoolVar(&ro.halo, "halo", false, "draw a white halo behind the molecule")

	// Picture
	cmd.Flags().StringVar(&ro.opts.Colormap, "colormap", "", "colour map (see 'xenopict colormaps')")
	cmd.Flags().BoolVar(&ro.sequential, "sequential", false, "values are in [0, 1] instead of [-1, 1]")
	cmd.Flags().Float64Var(&ro.opts.Scale, "scale", 0, fmt.Sprintf("diagram length of a unit dot radius (default %v)", pipeline.DefaultScale))
	cmd.Flags().Float64Var(&ro.padding, "padding", pipeline.DefaultPadding, "frame padding in units of scale")
	cmd.Flags().IntVar(&ro.opts.Resolution, "resolution", 0, fmt.Sprintf("outline segments per quarter circle (default %d)", pipeline.DefaultResolution))
	cmd.Flags().IntVar(&ro.opts.Levels, "levels", 0, fmt.Sprintf("dots per value (default %d)", pipeline.DefaultLevels))
	cmd.Flags().Float64Var(&ro.minRadius, "min-radius", pipeline.DefaultMinRadius, "smallest dot radius drawn")
	cmd.Flags().Float64Var(&ro.opts.PNGScale, "png-scale", 0, fmt.Sprintf("PNG zoom factor (default %v)", pipeline.DefaultPNGScale))

	// Layout
	cmd.Flags().Float64Var(&ro.opts.BondLength, "bond-length", 0, fmt.Sprintf("bond length of generated coordinates (default %v)", pipeline.DefaultBondLength))
	cmd.Flags().IntVar(&ro.opts.Seed, "seed", 0, "random seed for generated coordinates")
	ro.changed = cmd.Flags().Changed

	return cmd
}

// runRender loads the molecule and shading, runs the pipeline and writes
// one file per format.
func (c *CLI) runRender(ctx context.Context, input string, ro *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	mol, err := molecule.ImportJSON(input)
	if err != nil {
		return err
	}
	logger.Debug("loaded molecule", "file", input, "atoms", mol.NumAtoms(), "bonds", mol.NumBonds())

	sh, err := ro.buildShading()
	if err != nil {
		return err
	}

	opts := ro.pipelineOptions().Merge(c.Config.Options)
	opts.Logger = logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	if ro.output == "-" && len(opts.Formats) > 1 {
		return errors.New(errors.ErrCodeInvalidInput, "cannot write %d formats to stdout", len(opts.Formats))
	}

	runner, err := c.newRunner(ctx, ro.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	spinner.Start()
	result, err := runner.Execute(ctx, pipeline.Request{Molecule: mol, Shading: sh, Options: opts})
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ro.output == "-" {
		_, err := c.out.Write(result.Artifacts[opts.Formats[0]])
		return err
	}

	var written []string
	for _, format := range opts.Formats {
		path := outputPath(ro.output, input, format, len(opts.Formats) == 1)
		if err := os.WriteFile(path, result.Artifacts[format], 0o644); err != nil {
			return fmt.Errorf("write output %s: %w", path, err)
		}
		written = append(written, path)
	}
	prog.done("rendered", "input", input, "formats", opts.Formats)

	name := mol.Name
	if name == "" {
		name = input
	}
	printSuccess("Rendered %s", name)
	for _, path := range written {
		printFile(path)
	}
	printStats(result.Stats, result.CacheInfo)
	return nil
}

// pipelineOptions returns the options set on the command line.
func (ro *renderOpts) pipelineOptions() pipeline.Options {
	opts := ro.opts
	opts.Formats = parseFormats(ro.formats)
	if ro.sequential {
		diverging := false
		opts.Diverging = &diverging
	}
	if ro.changed != nil && ro.changed("padding") {
		opts.Padding = &ro.padding
	}
	if ro.changed != nil && ro.changed("min-radius") {
		opts.MinRadius = &ro.minRadius
	}
	opts.Halo = ro.halo
	return opts
}

// buildShading merges the shading file with shading flags. Flag values
// replace the file's atom values and focus and add to its marks.
func (ro *renderOpts) buildShading() (*pipeline.Shading, error) {
	sh := &pipeline.Shading{}
	if ro.shading != "" {
		var err error
		if sh, err = pipeline.ImportShadingJSON(ro.shading); err != nil {
			return nil, err
		}
	}
	if len(ro.atoms) > 0 {
		sh.Atoms = ro.atoms
	}
	for _, m := range ro.marks {
		atoms, err := parseIndices(m)
		if err != nil {
			return nil, err
		}
		sh.Mark = append(sh.Mark, atoms)
	}
	sh.MarkAtoms = append(sh.MarkAtoms, ro.markAtoms...)
	if len(ro.focus) > 0 {
		sh.Focus = ro.focus
	}
	if sh.IsEmpty() {
		return nil, nil
	}
	return sh, nil
}

// parseIndices parses "0,1, 2" into atom indices.
func parseIndices(s string) ([]int, error) {
	var out []int
	for _, f := range strings.Split(s, ",") {
		f = strings.TrimSpace(f)
		if f == "" {
			continue
		}
		i, err := strconv.Atoi(f)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "atom index %q", f)
		}
		out = append(out, i)
	}
	return out, nil
}
