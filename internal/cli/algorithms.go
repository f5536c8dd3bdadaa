package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplace/pkg/placement"
)

// algorithmsCommand creates the algorithms command.
func (c *CLI) algorithmsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "algorithms",
		Short: "List the available placement algorithms",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range placement.Names() {
				line := fmt.Sprintf("%-12s %s", name, StyleDim.Render(placement.Title(name)))
				if name == c.Config.Algorithm {
					line += " " + StyleTitle.Render("(default)")
				}
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
}
