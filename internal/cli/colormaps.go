package cli

import (
	"encoding/json"
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/xenopict/pkg/colormap"
)

const swatchWidth = 32

// colormapsCommand lists the registered colour maps.
func (c *CLI) colormapsCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "colormaps",
		Aliases: []string{"cmaps"},
		Short:   "List the available colour maps",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := colormap.Default()
			if asJSON {
				enc := json.NewEncoder(c.out)
				enc.SetIndent("", "  ")
				return enc.Encode(reg.Names())
			}

			nameStyle := lipgloss.NewStyle().Width(16)
			for _, name := range reg.Names() {
				fn, err := reg.Lookup(name)
				if err != nil {
					return err
				}
				label := nameStyle.Render(name)
				if name == c.defaultColormap() {
					label = nameStyle.Inherit(StyleHighlight).Render(name)
				}
				fmt.Fprintln(c.out, label+" "+swatch(fn, swatchWidth))
			}
			printNewline()
			printDetail("-1 on the left, +1 on the right; diverging maps are white at 0")
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print names as JSON")
	return cmd
}

// defaultColormap is the configured colour map, or the built-in default.
func (c *CLI) defaultColormap() string {
	if c.Config.Colormap != "" {
		return c.Config.Colormap
	}
	return colormap.DefaultName
}
