package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/cache"
	"github.com/piwi3910/FilmCut/internal/model"
	"github.com/piwi3910/FilmCut/internal/project"
)

const appName = "filmcut"

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// CLI holds shared state for all commands.
type CLI struct {
	Logger     *log.Logger
	configPath string
	stdin      io.Reader
}

// New creates a new CLI instance logging to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		stdin:  os.Stdin,
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
		Short: "FilmCut lays out film pieces on a roll",
		Long: `FilmCut packs rectangular film pieces onto a roll of fixed width so that
as little roll length as possible is used, and reports the waste.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&c.configPath, "config", project.DefaultConfigPath(), "config file")

	root.AddCommand(c.packCommand())
	root.AddCommand(c.parseCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.rollsCommand())
	root.AddCommand(c.projectCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.cacheCommand())

	return root
}

func (c *CLI) loadConfig() (model.AppConfig, error) {
	return project.LoadAppConfig(c.configPath)
}

// rollCatalogPath keeps the catalog next to the config file.
func (c *CLI) rollCatalogPath() string {
	return filepath.Join(filepath.Dir(c.configPath), "rolls.json")
}

func (c *CLI) loadRolls() (model.RollCatalog, error) {
	return project.LoadRollCatalog(c.rollCatalogPath())
}

// newCache opens the configured result cache. Failing to open it is not
// fatal: packing simply runs uncached.
func (c *CLI) newCache(ctx context.Context, cfg model.AppConfig, noCache bool) cache.Cache {
	if noCache {
		return cache.NewNullCache()
	}
	dir, err := cacheDir()
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	store, err := cache.New(ctx, cfg, dir)
	if err != nil {
		c.Logger.Warn("cache disabled", "err", err)
		return cache.NewNullCache()
	}
	return store
}

// cacheDir returns the cache directory using XDG standard (~/.cache/filmcut/).
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
