package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplace/pkg/pipeline"
	"github.com/matzehuels/gridplace/pkg/placement"
	"github.com/matzehuels/gridplace/pkg/schema"
)

// placeOptions holds the flags of the place command.
type placeOptions struct {
	algorithm  string
	directives string
	seed       uint64
	output     string
	noCache    bool
	refresh    bool
	showSteps  bool
	showGrid   bool
}

// placeCommand creates the place command.
func (c *CLI) placeCommand() *cobra.Command {
	opts := placeOptions{showGrid: true}

	cmd := &cobra.Command{
		Use:   "place [file]",
		Short: "Place the elements of a schema file on its grid",
		Long: `Place reads a schema (JSON or TOML), completes its placement and writes the
result as JSON. Directives pin elements to positions before placement starts;
they come from the file or from --directives, which replaces the file's own.

The sequential algorithm grows the placement outward from the directives and
needs at least one. The random algorithm shuffles the remaining elements.`,
		Example: `  gridplace place board.json
  gridplace place board.toml -d "1,5; 3,7" -o placed.json
  gridplace place board.json -a random --seed 7 --grid=false
  gridplace place board.json --refresh --steps`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlace(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.algorithm, "algorithm", "a", "", "placement algorithm: "+strings.Join(placement.Names(), ", ")+" (default from config)")
	cmd.Flags().StringVarP(&opts.directives, "directives", "d", "", `directives as "element,position; ..." (replaces the file's)`)
	cmd.Flags().Uint64Var(&opts.seed, "seed", 0, "random seed (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `output file, "-" for stdout (default <input>.placed.json)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable the placement cache")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "recompute even if a cached placement exists")
	cmd.Flags().BoolVar(&opts.showSteps, "steps", false, "print the sequential steps")
	cmd.Flags().BoolVar(&opts.showGrid, "grid", true, "print the placed grid")

	return cmd
}

func (c *CLI) runPlace(cmd *cobra.Command, input string, opts placeOptions) error {
	ctx := cmd.Context()

	doc, err := schema.ReadFile(input)
	if err != nil {
		return err
	}

	var directives []placement.Directive
	if cmd.Flags().Changed("directives") {
		if directives, err = placement.ParseDirectives(opts.directives, doc.Grid); err != nil {
			return err
		}
		if directives == nil {
			directives = []placement.Directive{}
		}
	}

	algorithm := opts.algorithm
	if algorithm == "" {
		algorithm = c.Config.Algorithm
	}
	seed := opts.seed
	if seed == 0 {
		seed = c.Config.Seed
	}

	var steps []placement.Step
	logSteps := stepLogger(c.Logger)
	observer := placement.ObserverFunc(func(s placement.Step) {
		steps = append(steps, s)
		logSteps.OnStep(s)
	})

	runner := c.newRunner(ctx, opts.noCache)
	defer runner.Close()

	spin := newSpinner(ctx, fmt.Sprintf("Placing %d elements...", doc.Size()))
	spin.Start()
	res, err := runner.Place(ctx, doc, pipeline.Options{
		Algorithm:  algorithm,
		Seed:       seed,
		Directives: directives,
		Refresh:    opts.refresh,
		Logger:     c.Logger,
		Observer:   observer,
	})
	spin.Stop()
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = placedPath(input)
	}
	if err := writeSchema(cmd, res.Schema, out); err != nil {
		return err
	}
	if out == "-" {
		return nil
	}

	printSuccess("Placed %s with %s", filepath.Base(input), placement.Title(res.Algorithm))
	printStats(res.Stats.Elements, res.Stats.Edges, res.Length, res.CacheHit)
	printFile(out)
	if opts.showGrid {
		printNewline()
		fmt.Println(renderGrid(res.Schema))
	}
	if opts.showSteps {
		printNewline()
		switch {
		case res.CacheHit:
			printWarning("Steps are not stored in the cache; rerun with --refresh to see them")
		case len(steps) == 0:
			printInfo("%s records no steps", placement.Title(res.Algorithm))
		default:
			fmt.Println(renderSteps(steps))
		}
	}
	printNewline()
	printNextStep("Measure it", "gridplace length "+out)
	return nil
}

// placedPath derives the default output path: board.json → board.placed.json.
func placedPath(input string) string {
	base := strings.TrimSuffix(input, filepath.Ext(input))
	return base + ".placed.json"
}

// writeSchema writes doc to path, or to stdout when path is "" or "-".
func writeSchema(cmd *cobra.Command, doc *schema.Schema, path string) error {
	if path == "" || path == "-" {
		return schema.Write(doc, cmd.OutOrStdout())
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return schema.WriteFile(doc, path)
}
