// Package cli implements the gridplace command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/gridplace/pkg/buildinfo"
	"github.com/matzehuels/gridplace/pkg/cache"
	"github.com/matzehuels/gridplace/pkg/config"
	"github.com/matzehuels/gridplace/pkg/pipeline"
)

// appName is the application name used for directories and display.
const appName = config.AppName

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	// Config is loaded by the root command before any subcommand runs.
	Config config.Config

	configPath string
}

// New creates a CLI with a timestamped logger and the default configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
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
		Short: "gridplace places connected elements on a grid",
		Long: `gridplace assigns numbered elements to the cells of a rows × cols grid so that
strongly connected elements end up close together, minimizing the total
weighted Manhattan wire length of the schema.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.loadConfig() },
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/gridplace/config.toml)")

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.lengthCommand())
	root.AddCommand(c.newCommand())
	root.AddCommand(c.algorithmsCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads --config, or the default location if the flag is unset.
// Only an explicitly named file must exist.
func (c *CLI) loadConfig() error {
	if c.configPath != "" {
		cfg, err := config.LoadFile(c.configPath)
		if err != nil {
			return err
		}
		c.Config = cfg
		return nil
	}

	path, err := config.DefaultPath()
	if err != nil {
		return nil
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path, "cache", cfg.Cache.Backend)
	return nil
}

// newRunner creates a pipeline runner for CLI use. A configured key prefix
// scopes every cache key.
func (c *CLI) newRunner(ctx context.Context, noCache bool) *pipeline.Runner {
	var keyer cache.Keyer
	if prefix := c.Config.Cache.Prefix; prefix != "" {
		keyer = cache.NewScopedKeyer(nil, prefix)
	}
	r := pipeline.NewRunner(c.newCache(ctx, noCache), keyer, c.Logger)
	if c.Config.Cache.TTL > 0 {
		r.TTL = c.Config.Cache.TTL
	}
	return r
}

// newCache opens the configured cache backend. A backend that cannot be
// reached is reported and replaced by NullCache; caching never fails a run.
func (c *CLI) newCache(ctx context.Context, noCache bool) cache.Cache {
	cfg := c.Config.Cache
	if noCache || cfg.Backend == config.BackendNone {
		return cache.NewNullCache()
	}

	var (
		cc  cache.Cache
		err error
	)
	switch cfg.Backend {
	case config.BackendRedis:
		cc, err = cache.NewRedisCache(ctx, cfg.RedisURL)
	case config.BackendMongo:
		cc, err = cache.NewMongoCache(ctx, cfg.MongoURI, cfg.MongoDatabase, cfg.MongoCollection)
	default:
		var dir string
		if dir, err = c.cacheDir(); err == nil {
			cc, err = cache.NewFileCache(dir)
		}
	}
	if err != nil {
		c.Logger.Warn("cache disabled", "backend", cfg.Backend, "err", err)
		return cache.NewNullCache()
	}
	return cc
}

// cacheDir returns the file cache directory: the configured one, or the XDG
// standard location (~/.cache/gridplace/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config.Cache.Dir != "" {
		return c.Config.Cache.Dir, nil
	}
	return cacheDir()
}

func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
