package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplace/pkg/errors"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// newCommand creates the new command.
func (c *CLI) newCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "new <cols>x<rows>",
		Short: "Write an empty schema",
		Long: `New writes a schema with element i at position i and no connections, ready to
be edited and placed.`,
		Example: `  gridplace new 3x3 -o board.json
  gridplace new 4x2 > board.json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, rows, err := parseDims(args[0])
			if err != nil {
				return err
			}
			doc := schema.New(rows, cols)
			if err := writeSchema(cmd, doc, output); err != nil {
				return err
			}
			if output != "" && output != "-" {
				printSuccess("Created %d×%d schema", cols, rows)
				printFile(output)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")

	return cmd
}

// parseDims parses "<cols>x<rows>", e.g. "4x3" is four columns by three rows.
func parseDims(s string) (cols, rows int, err error) {
	cs, rs, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return 0, 0, errors.New(errors.ErrCodeInvalidGrid, "grid size %q must look like <cols>x<rows>", s)
	}
	cols, errC := strconv.Atoi(cs)
	rows, errR := strconv.Atoi(rs)
	if errC != nil || errR != nil || cols <= 0 || rows <= 0 {
		return 0, 0, errors.New(errors.ErrCodeInvalidGrid, "grid size %q needs positive integer dimensions", s)
	}
	return cols, rows, nil
}
