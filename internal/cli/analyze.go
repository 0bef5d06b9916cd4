package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	"github.com/matzehuels/wordsphere/pkg/io"
)

// analyzeCommand creates the analyze command for fetching keyword weights.
func (c *CLI) analyzeCommand() *cobra.Command {
	var (
		output  string
		refresh bool
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "analyze [url]",
		Short: "Fetch weighted keywords for an article",
		Long: `Fetch weighted keywords for an article.

The analyze command sends the article URL to the analysis service and prints
the returned keywords with their weights. Use -o to save them as a words file
that 'layout', 'render' and 'view' accept.

Analyses are cached; pass --refresh to ask the service again.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runAnalyze(cmd.Context(), args[0], output, refresh, noCache)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the words to this JSON file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached analysis")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

// runAnalyze calls the analysis service and prints or saves the result.
func (c *CLI) runAnalyze(ctx context.Context, url, output string, refresh, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Analyzing...")
	spinner.Start()

	words, err := runner.Analyze(ctx, url, refresh)
	if err != nil {
		spinner.StopWithError("Analysis failed")
		return fmt.Errorf("analyze %s: %w", url, err)
	}
	spinner.Stop()

	printSuccess("Analyzed %s", StyleLink.Render(url))
	if len(words) == 0 {
		printWarning("The service returned no keywords")
	} else {
		fmt.Fprintln(stdout, wordTable(words, -1))
	}

	if output == "" {
		return nil
	}
	if err := io.ExportJSON(words, output); err != nil {
		return fmt.Errorf("write output %s: %w", output, err)
	}
	printFile(output)
	printNewline()
	printNextStep("View", "wordsphere view "+output)
	return nil
}

// formatWeight formats a weight with four decimals.
func formatWeight(w float64) string {
	return strconv.FormatFloat(w, 'f', 4, 64)
}

// wordTable renders words and weights as a bordered table. highlight marks
// one row; pass -1 for none.
func wordTable(words []cloud.WordItem, highlight int) string {
	rows := make([][]string, len(words))
	for i, w := range words {
		rows[i] = []string{w.Word, formatWeight(w.Weight)}
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true).Padding(0, 1)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Keyword", "Weight").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			base := lipgloss.NewStyle().Padding(0, 1)
			if col == 1 {
				base = base.Foreground(colorCyan).Align(lipgloss.Right)
			} else {
				base = base.Foreground(colorWhite)
			}
			if row == highlight {
				return base.Bold(true).Foreground(colorGreen)
			}
			return base
		})

	return t.Render()
}
