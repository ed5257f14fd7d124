package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/fractal/pkg/cache"
	"github.com/matzehuels/fractal/pkg/config"
	"github.com/matzehuels/fractal/pkg/render"
	"github.com/matzehuels/fractal/pkg/render/nodelink"
	"github.com/matzehuels/fractal/pkg/tree"
)

// diagramTTL is how long a rendered diagram stays cached.
const diagramTTL = 7 * 24 * time.Hour

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the rendered diagram cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached diagrams",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fc, err := cache.NewFileCache(dir)
			if err != nil {
				return err
			}

			count, err := fc.Clear()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if count == 0 {
				printInfo(out, "Cache is empty")
				return nil
			}
			printSuccess(out, "Cleared %d cached diagrams", count)
			printFile(out, dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := config.CacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), dir)
			return nil
		},
	}
}

// openCache returns the diagram cache, or a NullCache when disabled or
// when the cache directory cannot be created.
func (c *CLI) openCache(disabled bool) cache.Cache {
	if disabled {
		return cache.NewNullCache()
	}
	dir, err := config.CacheDir()
	if err == nil {
		var fc *cache.FileCache
		if fc, err = cache.NewFileCache(dir); err == nil {
			return fc
		}
	}
	c.Logger.Warn("diagram cache disabled", "err", err)
	return cache.NewNullCache()
}

// diagramKey identifies a rendered diagram by everything that shapes it.
func diagramKey(t tree.Tree, f render.Format, opts nodelink.Options) string {
	return cache.DiagramKey(tree.Format(t), string(f), opts)
}
