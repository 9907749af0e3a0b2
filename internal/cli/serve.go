package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/xenopict/internal/server"
	"github.com/matzehuels/xenopict/pkg/render"
)

// serveCommand creates the command running the HTTP API.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr     string
		redisURL string
		noCache  bool
		timeout  time.Duration
		maxBody  int64
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the rendering API over HTTP",
		Long: `Serve the rendering API over HTTP.

Endpoints:
  POST /v1/render?format=svg|html|png|pdf
  GET  /v1/colormaps
  GET  /healthz

Set --redis-url (or [cache] redis_url) to share the render cache between
instances; otherwise the local file cache is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if addr == "" {
				addr = c.Config.addr()
			}
			if redisURL != "" {
				c.Config.Cache.RedisURL = redisURL
			}
			return c.runServe(cmd.Context(), addr, noCache,
				server.WithTimeout(timeout),
				server.WithMaxBodySize(maxBody))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", fmt.Sprintf("listen address (default %s)", defaultAddr))
	cmd.Flags().StringVar(&redisURL, "redis-url", "", "Redis URL for the shared cache")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	cmd.Flags().DurationVar(&timeout, "timeout", server.DefaultTimeout, "per-request timeout")
	cmd.Flags().Int64Var(&maxBody, "max-body", server.DefaultMaxBodySize, "maximum request body size in bytes")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr string, noCache bool, opts ...server.Option) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	if !render.Available() {
		printWarning("rsvg-convert not found: png and pdf requests will fail")
	}

	opts = append([]server.Option{server.WithDefaults(c.Config.Options)}, opts...)
	srv := server.New(runner, c.Logger, opts...)

	backend := "file"
	switch {
	case noCache:
		backend = "disabled"
	case c.Config.Cache.RedisURL != "":
		backend = "redis " + redactURL(c.Config.Cache.RedisURL)
	}
	printInfo("Serving on %s", StyleLink.Render("http://"+displayAddr(addr)))
	printKeyValue("cache", backend)
	printKeyValue("colormap", c.defaultColormap())
	return srv.ListenAndServe(ctx, addr)
}

// displayAddr turns ":8080" into "localhost:8080".
func displayAddr(addr string) string {
	if len(addr) > 0 && addr[0] == ':' {
		return "localhost" + addr
	}
	return addr
}
