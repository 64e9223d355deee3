package cli

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/gridkit/internal/server"
	"github.com/matzehuels/gridkit/pkg/cache"
)

func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr      string
		cacheSize int
		cacheTTL  time.Duration
		noCache   bool
		maxGrids  int
	)
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Long: `Serve exposes the layout operations and engine sessions over HTTP.
Responses of the pure operations are memoized in memory unless --no-cache
is set.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			var store cache.Cache = cache.NewMemoryCache(cacheSize)
			if noCache {
				store = cache.NewNullCache()
			}
			srv := server.New(
				server.WithCache(store, cacheTTL),
				server.WithLogger(logger),
				server.WithMaxGrids(maxGrids),
			)
			defer srv.Close()

			newPrinter(cmd.ErrOrStderr()).info("Listening on %s", StyleHighlight.Render(addr))
			return srv.Run(cmd.Context(), addr)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", server.DefaultAddr, "listen address")
	cmd.Flags().IntVar(&cacheSize, "cache-size", cache.DefaultMaxEntries, "maximum memoized responses")
	cmd.Flags().DurationVar(&cacheTTL, "cache-ttl", cache.DefaultTTL, "lifetime of memoized responses")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable response memoization")
	cmd.Flags().IntVar(&maxGrids, "max-grids", server.DefaultMaxGrids, "maximum live engine sessions")
	return cmd
}
