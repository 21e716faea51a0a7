package cli

import (
	"github.com/spf13/cobra"

	"github.com/piwi3910/FilmCut/internal/api"
	"github.com/piwi3910/FilmCut/internal/cache"
)

// serveCommand creates the serve command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the packing API over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := c.loadConfig()
			if err != nil {
				return err
			}
			rolls, err := c.loadRolls()
			if err != nil {
				return err
			}
			if addr == "" {
				addr = cfg.ListenAddr
			}

			store := c.newCache(cmd.Context(), cfg, noCache)
			defer store.Close()
			c.Logger.Debug("cache ready", "backend", cfg.CacheBackend, "ttl", cache.TTL(cfg))

			srv := api.New(api.Config{
				Logger:        c.Logger,
				Cache:         store,
				CacheTTL:      cache.TTL(cfg),
				Defaults:      cfg.PackingOptions(),
				Rolls:         rolls,
				MaxConcurrent: cfg.MaxConcurrent,
			})
			return srv.ListenAndServe(cmd.Context(), addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (default from config)")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	return cmd
}
