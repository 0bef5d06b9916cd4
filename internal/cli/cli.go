// Package cli implements the wordsphere command-line interface.
package cli

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/analysis"
	"github.com/matzehuels/wordsphere/pkg/buildinfo"
	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/config"
	"github.com/matzehuels/wordsphere/pkg/observability"
	"github.com/matzehuels/wordsphere/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
	Config config.Config

	logOut     io.Writer
	configPath string
	verbose    bool
}

// New creates a new CLI instance with a default logger and built-in config.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		logOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Wordsphere turns articles into spinning 3D word clouds",
		Long: `Wordsphere fetches the weighted keywords of an article, places them on a
sphere and renders the result as an animated terminal view, SVG, PNG, PDF
or JSON layout.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: ~/.config/wordsphere/config.toml)")

	// Register all subcommands
	root.AddCommand(c.analyzeCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.visualizeCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the config file and applies the log level before any command runs.
func (c *CLI) setup(cmd *cobra.Command, args []string) error {
	if c.verbose {
		c.SetLogLevel(LogDebug)
		observability.NewLogHooks(c.Logger).Install()
	}

	path, err := c.resolveConfigPath()
	if err != nil {
		return err
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)

	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	return nil
}

// resolveConfigPath returns --config when given, else the XDG default.
func (c *CLI) resolveConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	return config.DefaultPath()
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner backed by the analysis service and the
// configured cache.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	ch, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	keyer := c.newKeyer()
	client := analysis.NewClient(c.Config.Service.URL,
		analysis.WithTimeout(c.Config.Service.Timeout.Duration),
		analysis.WithCache(ch, keyer, c.Config.Cache.TTL.Duration),
	)
	c.Logger.Debug("analysis service", "client", client.String())
	return pipeline.NewRunner(client, ch, keyer, c.Logger), nil
}

// newKeyer returns the cache keyer, scoped by [cache] prefix when set.
func (c *CLI) newKeyer() cache.Keyer {
	if c.Config.Cache.Prefix != "" {
		return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.Config.Cache.Prefix)
	}
	return cache.NewDefaultKeyer()
}

// newCache opens the cache backend named in the config.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch c.Config.Cache.Backend {
	case config.BackendNone:
		return cache.NewNullCache(), nil
	case config.BackendRedis:
		return cache.NewRedisCache(ctx, c.Config.Cache.RedisURL)
	default:
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache directory unavailable, caching disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the file cache directory: [cache] dir from the config, or
// the XDG default (~/.cache/wordsphere/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return config.CacheDir()
}

// basePath derives the base output path from the output and input file paths.
// If output is empty, it strips the extension from input (stdin becomes
// "wordsphere"). If output carries a format extension, that is stripped too.
func basePath(output, input string) string {
	if output == "" {
		if input == "" || input == "-" {
			return appName
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// trimLayoutSuffix maps "cloud.layout.json" to "cloud.json" so rendered
// files sit next to the words file they came from.
func trimLayoutSuffix(path string) string {
	if base, ok := strings.CutSuffix(path, ".layout.json"); ok {
		return base + ".json"
	}
	return path
}

// parseFormats parses the --format flag. An empty value selects svg.
func parseFormats(s string) ([]string, error) {
	formats, err := pipeline.ParseFormats(s)
	if err != nil {
		return nil, err
	}
	if len(formats) == 0 {
		return []string{pipeline.FormatSVG}, nil
	}
	return formats, nil
}
