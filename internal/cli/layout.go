package cli

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xenopict/pkg/layout"
	"github.com/matzehuels/xenopict/pkg/molecule"
	"github.com/matzehuels/xenopict/pkg/pipeline"
)

// layoutCommand creates the layout command for generating coordinates.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output  string
		noCache bool
		dot     bool
		opts    pipeline.Options
	)

	cmd := &cobra.Command{
		Use:   "layout [molecule.json]",
		Short: "Generate 2D atom coordinates for a molecule",
		Long: `Generate 2D atom coordinates for a molecule.

Coordinates are computed with Graphviz neato and scaled to the requested
bond length. The output is the molecule JSON with x and y set on every atom,
ready for 'render'. Molecules that already have coordinates are written
unchanged unless --refresh is given.

Results are cached locally for faster subsequent runs.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if dot {
				return c.writeDOT(args[0], opts.Merge(c.Config.Options))
			}
			return c.runLayout(cmd.Context(), args[0], opts.Merge(c.Config.Options), output, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.Refresh, "refresh", false, "regenerate coordinates even if present")
	cmd.Flags().BoolVar(&dot, "dot", false, "print the Graphviz input instead of laying out")
	cmd.Flags().Float64Var(&opts.BondLength, "bond-length", 0, fmt.Sprintf("bond length (default %v)", pipeline.DefaultBondLength))
	cmd.Flags().IntVar(&opts.Seed, "seed", 0, "random seed for the initial placement")

	return cmd
}

// runLayout loads the molecule, lays it out and writes the result.
func (c *CLI) runLayout(ctx context.Context, input string, opts pipeline.Options, output string, noCache bool) error {
	mol, err := molecule.ImportJSON(input)
	if err != nil {
		return err
	}
	if err := mol.Validate(); err != nil {
		return err
	}
	if opts.Refresh {
		for i := range mol.Atoms {
			mol.Atoms[i].X, mol.Atoms[i].Y = nil, nil
		}
	}

	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = loggerFromContext(ctx)
	spinner := newSpinnerWithContext(ctx, "Computing layout...")
	spinner.Start()
	out, generated, hit, err := runner.LayoutWithCacheInfo(ctx, mol, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("compute layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = strings.TrimSuffix(input, filepath.Ext(input)) + ".layout.json"
	}
	if err := molecule.ExportJSON(out, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	if generated {
		printSuccess("Layout complete")
	} else {
		printInfo("Molecule already has coordinates")
	}
	printFile(outputPath)
	printStats(pipeline.Stats{Atoms: out.NumAtoms(), Bonds: out.NumBonds(), CoordsGenerated: generated},
		pipeline.CacheInfo{LayoutHit: hit})
	printNewline()
	printNextStep("Render", appName+" render "+outputPath)
	return nil
}

// writeDOT prints the Graphviz graph used for layout.
func (c *CLI) writeDOT(input string, opts pipeline.Options) error {
	mol, err := molecule.ImportJSON(input)
	if err != nil {
		return err
	}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	_, err = io.WriteString(c.out, layout.ToDOT(mol, opts.Seed))
	return err
}
