package cli

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and prune the file cache",
		Long: `Inspect and prune the file cache of orderings, drawings and artifacts.

The subcommands act on the file backend only; badger and redis caches are
managed by their own tooling.`,
	}

	cmd.AddCommand(c.cacheStatsCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// fileCache opens the configured file cache directory.
func (c *CLI) fileCache() (*cache.FileCache, error) {
	cfg := c.Config.CacheOptions()
	if cfg.Backend != "" && cfg.Backend != cache.BackendFile {
		return nil, fmt.Errorf("cache backend is %q; these commands need the file backend", cfg.Backend)
	}
	dir := cfg.Dir
	if dir == "" {
		var err error
		if dir, err = cache.DefaultDir(); err != nil {
			return nil, fmt.Errorf("get cache dir: %w", err)
		}
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show the number and size of cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			st, err := fc.Stats()
			if err != nil {
				return err
			}
			c.printKeyValue("directory", fc.Dir())
			c.printKeyValue("entries", strconv.Itoa(st.Entries))
			c.printKeyValue("expired", strconv.Itoa(st.Expired))
			c.printKeyValue("size", humanize.Bytes(uint64(st.Bytes)))
			if len(st.ByPrefix) > 0 {
				rows := make([][]string, 0, len(st.ByPrefix))
				for _, prefix := range slices.Sorted(maps.Keys(st.ByPrefix)) {
					rows = append(rows, []string{prefix, strconv.Itoa(st.ByPrefix[prefix])})
				}
				c.printNewline()
				c.printTable([]string{"kind", "entries"}, rows)
			}
			return nil
		},
	}
}

func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			n, err := fc.Prune()
			if err != nil {
				return err
			}
			c.printSuccess("Removed %d expired entries", n)
			return nil
		},
	}
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			if err := fc.Clear(); err != nil {
				return err
			}
			c.printSuccess("Cache cleared")
			c.printDetail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			fc, err := c.fileCache()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, fc.Dir())
			return nil
		},
	}
}
