package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/xenopict/pkg/buildinfo"
)

// RootCommand creates the root cobra command with all subcommands
// registered. The config file is loaded in PersistentPreRunE, before any
// subcommand runs.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "xenopict shades molecule diagrams with per-atom and per-bond values",
		Long: `xenopict overlays scalar values on 2D molecule diagrams as layered dot
shading, outlines substructures, and renders the result to SVG, HTML, PNG or PDF.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(c.configPath)
			if err != nil {
				return err
			}
			c.Config = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/xenopict/config.toml)")

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.colormapsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}
