package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/wordsphere/pkg/cache"
	"github.com/matzehuels/wordsphere/pkg/config"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the analysis and render cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	var url string

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Clear cached analyses and rendered artifacts",
		Long: `Clear cached analyses and rendered artifacts.

With --url only the cached analysis for that article is removed; this works
for every backend. Without it the whole file cache directory is emptied.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if url != "" {
				return c.clearAnalysis(cmd.Context(), url)
			}
			return c.clearFileCache()
		},
	}

	cmd.Flags().StringVar(&url, "url", "", "only forget the analysis of this article")

	return cmd
}

// clearAnalysis deletes one analysis entry from the configured backend.
func (c *CLI) clearAnalysis(ctx context.Context, url string) error {
	ch, err := c.newCache(ctx, false)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer ch.Close()

	key := c.newKeyer().AnalysisKey(url)
	if err := ch.Delete(ctx, key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	printSuccess("Forgot analysis for %s", url)
	return nil
}

// clearFileCache removes every entry from the file cache directory.
func (c *CLI) clearFileCache() error {
	if c.Config.Cache.Backend != config.BackendFile {
		printWarning("Cache backend is %q; only the file cache can be cleared wholesale", c.Config.Cache.Backend)
		return nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		return fmt.Errorf("get cache dir: %w", err)
	}

	if _, err := os.Stat(dir); os.IsNotExist(err) {
		printInfo("Cache is empty")
		return nil
	}

	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	if err := fc.Clear(); err != nil {
		return fmt.Errorf("clear cache: %w", err)
	}

	printSuccess("Cleared cache")
	printDetail("Directory: %s", fc.Dir())
	return nil
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(stdout, dir)
			return nil
		},
	}
}
