package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/mondrian/pkg/core/palette"
)

// palettesCommand creates the palettes command.
func (c *CLI) palettesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "palettes",
		Short: "List the built-in color palettes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return writePalettes(cmd.OutOrStdout())
		},
	}
}

// writePalettes writes a table of the built-in palettes to w.
func writePalettes(w io.Writer) error {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(StyleDim).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return StyleHeader
			}
			return StyleCell
		}).
		Headers("NAME", "COLORS", "WEIGHTS", "BACKGROUND")

	for _, name := range palette.Names() {
		p, ok := palette.Lookup(name)
		if !ok {
			continue
		}
		t.Row(paletteRow(p)...)
	}

	_, err := fmt.Fprintln(w, t.String())
	if err == nil {
		_, err = fmt.Fprintln(w, StyleDim.Render(fmt.Sprintf("Default: %s. Use --palette <name> or a [custom_palette] table in --config.", palette.Default)))
	}
	return err
}

func paletteRow(p palette.Palette) []string {
	colors := make([]string, len(p.Colors))
	for i, c := range p.Colors {
		colors[i] = swatch(c) + " " + c
	}
	weights := make([]string, len(p.Weights))
	for i, wt := range p.Weights {
		weights[i] = fmt.Sprintf("%g", wt)
	}
	name := string(p.Name)
	if p.Name == palette.Default {
		name += " *"
	}
	return []string{
		StyleHighlight.Render(name),
		strings.Join(colors, "\n"),
		strings.Join(weights, "\n"),
		swatch(p.Background) + " " + p.Background,
	}
}
