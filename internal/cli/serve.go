package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/cfgview/pkg/server"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the render API over HTTP",
		Long: `Serve the render API over HTTP.

  POST /api/v1/render?format=svg&function=name   compile result in, diagram out
  POST /api/v1/functions                         compile result in, names out
  GET  /api/v1/health

Render defaults come from the [render] section of the config file.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}

			runner, err := c.newRunner(ctx, noCache)
			if err != nil {
				return err
			}
			defer runner.Close()

			backend := c.Config.Cache.Backend
			if noCache {
				backend = BackendNone
			}
			opts := []server.Option{
				server.WithDefaults(c.Config.Render.Options()),
				server.WithCacheBackend(backend),
			}
			if c.Config.Server.MaxBody > 0 {
				opts = append(opts, server.WithMaxBody(c.Config.Server.MaxBody))
			}
			return server.New(runner, c.Logger, opts...).ListenAndServe(ctx, addr)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "localhost:8080", "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")
	return cmd
}
