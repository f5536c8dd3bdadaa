package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplace/pkg/metric"
	"github.com/matzehuels/gridplace/pkg/pipeline"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// lengthCommand creates the length command.
func (c *CLI) lengthCommand() *cobra.Command {
	var (
		edges bool
		quiet bool
	)

	cmd := &cobra.Command{
		Use:   "length [file]",
		Short: "Print the total weighted wire length of a placed schema",
		Long: `Length sums weight × Manhattan distance over every connected pair of the
schema's stored placement. Elements without a position are skipped.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := schema.ReadFile(args[0])
			if err != nil {
				return err
			}
			n, err := pipeline.NewRunner(nil, nil, c.Logger).Length(doc)
			if err != nil {
				return err
			}

			if quiet {
				fmt.Fprintln(cmd.OutOrStdout(), n)
				return nil
			}
			printKeyValue("Length", StyleNumber.Render(strconv.Itoa(n)))
			printKeyValue("Elements", strconv.Itoa(doc.Size()))
			printKeyValue("Placed", strconv.Itoa(len(doc.Placement)))
			if edges {
				printNewline()
				fmt.Println(renderEdges(doc))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&edges, "edges", false, "break the length down per connected pair")
	cmd.Flags().BoolVarP(&quiet, "quiet", "q", false, "print only the number")

	return cmd
}

// renderEdges draws one row per connected pair with its contribution.
func renderEdges(doc *schema.Schema) string {
	var rows [][]string
	for _, e := range metric.Edges(doc.Matrix) {
		contrib := "-"
		if l, ok := metric.PairLength(doc.Grid, doc.Matrix, doc.Placement, e.A, e.B); ok {
			contrib = strconv.Itoa(l)
		}
		rows = append(rows, []string{strconv.Itoa(e.A), strconv.Itoa(e.B), strconv.Itoa(e.Weight), contrib})
	}
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("a", "b", "weight", "length").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return styleHeader
			}
			return styleCell
		})
	return t.Render()
}
