package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/io"
	"github.com/matzehuels/wordsphere/pkg/pipeline"
)

// layoutCommand creates the layout command for computing sphere positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output string
		radius float64
	)

	cmd := &cobra.Command{
		Use:   "layout [words.json]",
		Short: "Compute sphere positions from a words file",
		Long: `Compute sphere positions from a words file.

The layout command takes a words file (produced by 'analyze -o', or any JSON
array of {"word", "weight"} objects) and places every word on a Fibonacci
sphere, assigning its size and color from the normalized weight. The output is
a layout.json file (same format as 'render -f json') that can be rendered with
'visualize' or animated with 'view'.

Use "-" to read the words from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runLayout(cmd.Context(), args[0], output, radius)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json)")
	cmd.Flags().Float64Var(&radius, "radius", 0, "sphere radius (default from config)")

	return cmd
}

// runLayout loads the words, computes the layout, and writes output.
func (c *CLI) runLayout(ctx context.Context, input, output string, radius float64) error {
	logger := loggerFromContext(ctx)
	p := newProgress(logger)

	words, err := io.ImportJSON(input)
	if err != nil {
		return fmt.Errorf("load words %s: %w", input, err)
	}

	opts := c.layoutOptions(radius)
	snap, err := pipeline.Layout(words, opts)
	if err != nil {
		return fmt.Errorf("compute layout: %w", err)
	}
	p.done(fmt.Sprintf("Placed %d words", len(snap.Words)))

	if ctx.Err() != nil {
		return ctx.Err()
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", input) + ".layout.json"
	}
	if err := cloud.WriteSnapshotFile(snap, outputPath); err != nil {
		return fmt.Errorf("write output %s: %w", outputPath, err)
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(len(snap.Words), snap.Radius, false)
	printNewline()
	printNextStep("Render", "wordsphere visualize "+outputPath)

	return nil
}

// layoutOptions returns pipeline options carrying the configured layout
// parameters, with radius overriding the config when positive.
func (c *CLI) layoutOptions(radius float64) pipeline.Options {
	lo := c.Config.Layout
	if radius > 0 {
		lo.Radius = radius
	}
	return pipeline.Options{Layout: &lo, Logger: c.Logger}
}
