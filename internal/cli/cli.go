package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridraw/pkg/buildinfo"
	"github.com/matzehuels/gridraw/pkg/cache"
	"github.com/matzehuels/gridraw/pkg/config"
	"github.com/matzehuels/gridraw/pkg/pipeline"
	"github.com/matzehuels/gridraw/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "gridraw"

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

	// Config is loaded from --config before any command runs.
	Config config.Config

	configPath string
	noCache    bool
	out        io.Writer
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		out:    os.Stdout,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// SetOutput redirects command output, which defaults to stdout.
func (c *CLI) SetOutput(w io.Writer) { c.out = w }

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "gridraw draws maximal planar graphs on integer grids",
		Long: `gridraw computes canonical orderings of maximal planar graphs and places
their vertices on an integer grid with straight, non-crossing edges.

Three placement methods are available: the shift method (2n-4 by n-2 grid),
Algorithm A (visibility search) and Algorithm B (slack accumulation).`,
		Version:       buildinfo.Get().Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return c.loadConfig()
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "configuration file (TOML)")
	root.PersistentFlags().BoolVar(&c.noCache, "no-cache", false, "disable caching")

	root.AddCommand(c.generateCommand())
	root.AddCommand(c.orderCommand())
	root.AddCommand(c.drawCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.stepsCommand())
	root.AddCommand(c.batchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())
	registerValueCompletions(root)

	return root
}

func (c *CLI) loadConfig() error {
	if c.configPath == "" {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", c.configPath, "cache", cfg.Cache.Backend)
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner from the configuration. A store is
// attached when withStore is set and one is configured.
func (c *CLI) newRunner(ctx context.Context, keyer cache.Keyer, withStore bool) (*pipeline.Runner, error) {
	ch, err := c.openCache()
	if err != nil {
		return nil, err
	}
	runner := pipeline.NewRunner(ch, keyer, c.Logger)
	if !withStore {
		return runner, nil
	}
	if mc, ok := c.Config.MongoOptions(); ok {
		st, err := store.NewMongoStore(ctx, mc)
		if err != nil {
			_ = ch.Close()
			return nil, fmt.Errorf("open store: %w", err)
		}
		runner.Store = st
	}
	return runner, nil
}

func (c *CLI) openCache() (cache.Cache, error) {
	if c.noCache {
		return cache.NewNullCache(), nil
	}
	cfg := c.Config.CacheOptions()
	if cfg.Backend == cache.BackendBadger && cfg.Dir == "" {
		dir, err := cache.DefaultDir()
		if err != nil {
			return nil, err
		}
		cfg.Dir = filepath.Join(dir, "badger")
	}
	ch, err := cache.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	return ch, nil
}

// =============================================================================
// Paths
// =============================================================================

// absPath makes p absolute. Input paths pass through path validation,
// which rejects "..", so relative paths are resolved here first.
func absPath(p string) (string, error) {
	if p == "" || filepath.IsAbs(p) {
		return p, nil
	}
	return filepath.Abs(p)
}

// =============================================================================
// Options Helpers
// =============================================================================

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string, def ...string) []string {
	if s == "" {
		return def
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, f)
		}
	}
	return out
}

// outputBase derives the base path for artifacts: output without a known
// format extension, or the instance name.
func outputBase(output, name string) string {
	if output == "" {
		return name
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}
