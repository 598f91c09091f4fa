package cli

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chromatic/pkg/config"
)

// algorithmsCommand lists the registered engines.
func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available coloring engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			names := algorithmNames()
			rows := make([][]string, len(names))
			for i, name := range names {
				rows[i] = []string{name, config.Descriptions[name]}
			}
			t := newTable("Algorithm", "Description").
				Rows(rows...).
				StyleFunc(func(row, col int) lipgloss.Style {
					switch {
					case row == -1:
						return tableHeadStyle.Padding(0, 1)
					case col == 0:
						return tableCellStyle.Foreground(colorCyan)
					}
					return tableCellStyle
				})
			fmt.Println(t.Render())
			return nil
		},
	}
}

func algorithmNames() []string {
	return config.Algorithms()
}
