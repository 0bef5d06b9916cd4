package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/io"
	"github.com/matzehuels/wordsphere/pkg/pipeline"
	"github.com/matzehuels/wordsphere/pkg/render"
)

// renderFlags holds the flags shared by render and visualize.
type renderFlags struct {
	formats string
	output  string
	noCache bool
}

// addRenderFlags registers output and camera flags on cmd.
func addRenderFlags(cmd *cobra.Command, f *renderFlags, opts *pipeline.Options) {
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&f.formats, "format", "f", "", "output format(s): svg (default), png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&f.noCache, "no-cache", false, "disable caching")

	cmd.Flags().Float64Var(&opts.Width, "width", opts.Width, "frame width")
	cmd.Flags().Float64Var(&opts.Height, "height", opts.Height, "frame height")
	cmd.Flags().Float64Var(&opts.Scale, "scale", opts.Scale, "PNG resolution multiplier")
	cmd.Flags().Float64Var(&opts.Azimuth, "azimuth", opts.Azimuth, "camera azimuth in radians")
	cmd.Flags().Float64Var(&opts.Polar, "polar", opts.Polar, "camera polar angle in radians (0 is the equator)")
	cmd.Flags().StringVar(&opts.Background, "background", opts.Background, "background color (default #020617)")
	cmd.Flags().StringVar(&opts.Title, "title", opts.Title, "document title")
}

// renderCommand creates the render command, the shortcut from words to output.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		flags   renderFlags
		url     string
		refresh bool
		radius  float64
	)
	opts := pipeline.Options{}
	opts.SetRenderDefaults()

	cmd := &cobra.Command{
		Use:   "render [words.json]",
		Short: "Render a word cloud snapshot from a words file or URL",
		Long: `Render a word cloud snapshot from a words file or URL.

The render command runs the whole pipeline: it reads the words (or analyzes
--url), computes the sphere layout and writes one file per requested format.
The camera sits at the viewer's starting position unless --azimuth or --polar
move it.

PNG and PDF output require rsvg-convert on PATH.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			formats, err := parseFormats(flags.formats)
			if err != nil {
				return err
			}
			opts.Formats = formats

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if (input == "") == (url == "") {
				return fmt.Errorf("pass either a words file or --url")
			}
			opts.URL = url
			opts.Refresh = refresh
			return c.runRender(cmd.Context(), input, opts, flags, radius)
		},
	}

	addRenderFlags(cmd, &flags, &opts)
	cmd.Flags().StringVar(&url, "url", "", "analyze this article instead of reading a words file")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the cached analysis")
	cmd.Flags().Float64Var(&radius, "radius", 0, "sphere radius (default from config)")

	return cmd
}

// runRender executes the pipeline and writes the artifacts.
func (c *CLI) runRender(ctx context.Context, input string, opts pipeline.Options, flags renderFlags, radius float64) error {
	if input != "" {
		words, err := io.ImportJSON(input)
		if err != nil {
			return fmt.Errorf("load words %s: %w", input, err)
		}
		opts.Words = words
	}
	opts.Layout = c.layoutOptions(radius).Layout
	warnConverter(opts.Formats)

	runner, err := c.newRunner(ctx, flags.noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	spinner := newSpinnerWithContext(ctx, "Rendering...")
	if opts.Words == nil {
		spinner.SetMessage("Analyzing...")
	}
	spinner.Start()

	if opts.Words == nil {
		words, err := runner.Analyze(ctx, opts.URL, opts.Refresh)
		if err != nil {
			spinner.StopWithError("Analysis failed")
			return fmt.Errorf("analyze %s: %w", opts.URL, err)
		}
		opts.Words = words
		spinner.SetMessage("Rendering...")
	}

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return fmt.Errorf("render: %w", err)
	}
	spinner.Stop()

	return writeArtifacts(artifactWriteParams{
		artifacts: result.Artifacts,
		formats:   opts.Formats,
		input:     input,
		output:    flags.output,
		words:     len(result.Snapshot.Words),
		radius:    result.Snapshot.Radius,
		cacheHit:  result.CacheInfo.RenderHit,
	})
}

// warnConverter prints a warning when a raster format is requested but
// rsvg-convert is missing.
func warnConverter(formats []string) {
	for _, f := range formats {
		if (f == pipeline.FormatPNG || f == pipeline.FormatPDF) && !render.ConverterAvailable() {
			printWarning("rsvg-convert not found; %s output will fail", f)
			return
		}
	}
}

// artifactWriteParams describes the files to write after rendering.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	input     string
	output    string
	words     int
	radius    float64
	cacheHit  bool
}

// writeArtifacts writes one file per format. A single format with -o writes
// exactly that path; otherwise files are named <base>.<format>, with JSON
// snapshots as <base>.layout.json so they never replace a words file.
func writeArtifacts(p artifactWriteParams) error {
	var paths []string
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			continue
		}
		path := basePath(p.output, p.input) + "." + format
		if format == pipeline.FormatJSON {
			path = basePath(p.output, p.input) + ".layout.json"
		}
		if len(p.formats) == 1 && p.output != "" {
			path = p.output
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
		paths = append(paths, path)
	}

	printSuccess("Rendered %d file(s)", len(paths))
	for _, path := range paths {
		printFile(path)
	}
	printStats(p.words, p.radius, p.cacheHit)
	return nil
}
