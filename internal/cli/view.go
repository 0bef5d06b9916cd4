package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/cloud"
	wsio "github.com/matzehuels/wordsphere/pkg/io"
	"github.com/matzehuels/wordsphere/pkg/scene"
)

// viewCommand creates the interactive viewer command.
func (c *CLI) viewCommand() *cobra.Command {
	var (
		url     string
		logFile string
		noCache bool
		radius  float64
	)

	cmd := &cobra.Command{
		Use:   "view [words.json]",
		Short: "Animate the word cloud in the terminal",
		Long: `Animate the word cloud in the terminal.

The view command shows the words on a slowly rotating sphere. Each word spins
and bobs on its own while the camera orbits the cloud.

Controls:
  drag, arrows   orbit the camera (auto-rotation pauses while dragging)
  wheel, + / -   zoom
  k              toggle the keyword list
  a              re-analyze --url
  q              quit

Words come from a words file or, with --url, from the analysis service. Logs
are written to --log-file while the viewer owns the terminal.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if input != "" && url != "" {
				return fmt.Errorf("pass either a words file or --url, not both")
			}
			return c.runView(cmd.Context(), input, url, logFile, noCache, radius)
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "analyze this article")
	cmd.Flags().StringVar(&logFile, "log-file", "", "write logs here while the viewer runs (default: discard)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().Float64Var(&radius, "radius", 0, "sphere radius (default from config)")

	return cmd
}

// runView starts the bubbletea program.
func (c *CLI) runView(ctx context.Context, input, url, logFile string, noCache bool, radius float64) error {
	var words []cloud.WordItem
	if input != "" {
		var err error
		if words, err = wsio.ImportJSON(input); err != nil {
			return fmt.Errorf("load words %s: %w", input, err)
		}
	}

	restore, err := c.redirectLogs(logFile)
	if err != nil {
		return err
	}
	defer restore()

	opts := CloudModelOptions{
		URL:     url,
		Words:   words,
		Layout:  *c.layoutOptions(radius).Layout,
		FPS:     c.Config.View.FPS,
		Context: ctx,
		Scene: scene.New(
			scene.WithCamera(c.Config.View.Camera()),
			scene.WithAnimation(c.Config.View.Animation()),
		),
	}
	if url != "" {
		runner, err := c.newRunner(ctx, noCache)
		if err != nil {
			return fmt.Errorf("initialize runner: %w", err)
		}
		defer runner.Close()
		opts.Analyze = func(ctx context.Context, refresh bool) ([]cloud.WordItem, error) {
			return runner.Analyze(ctx, url, refresh)
		}
	}

	p := tea.NewProgram(NewCloudModel(opts),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	if _, err := p.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("viewer: %w", err)
	}
	return nil
}

// redirectLogs points the logger at path (or discards output) until the
// returned func is called.
func (c *CLI) redirectLogs(path string) (func(), error) {
	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
		closeFn = func() { f.Close() }
	}

	c.Logger.SetOutput(w)
	return func() {
		out := c.logOut
		if out == nil {
			out = os.Stderr
		}
		c.Logger.SetOutput(out)
		closeFn()
	}, nil
}
