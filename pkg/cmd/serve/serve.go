package serve

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/Azure/kvsample/pkg/cmd/options"
	"github.com/Azure/kvsample/pkg/logger"
	"github.com/Azure/kvsample/pkg/metrics"
	"github.com/Azure/kvsample/pkg/server"
)

type serveCmd struct {
	opts   *options.Options
	logger *logger.Logger
}

// NewServeCmd returns a new serve command
func NewServeCmd(l *logger.Logger) *cobra.Command {
	sc := &serveCmd{
		opts:   options.New(),
		logger: l,
	}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the secret fetch outcome over HTTP",
		Long:  "Run an HTTP server that fetches the configured Key Vault secret on every request to /api/secret",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return sc.opts.Complete(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return sc.run(ctx)
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	sc.opts.AddFlags(f)
	sc.opts.AddServerFlags(f)

	return cmd
}

func (sc *serveCmd) run(ctx context.Context) error {
	log := sc.logger.Get()

	metricsHandler, err := metrics.InitMetricsExporter(sc.opts.MetricsBackend)
	if err != nil {
		return errors.Wrap(err, "failed to initialize metrics exporter")
	}

	fetcher, err := sc.opts.NewFetcher(log.WithName("keyvault"))
	if err != nil {
		return errors.Wrap(err, "failed to create secret fetcher")
	}

	srv, err := server.NewServer(sc.opts.Port, fetcher, metricsHandler, log.WithName("server"))
	if err != nil {
		return errors.Wrap(err, "failed to create server")
	}

	log.WithName("setup").Info("starting server", "port", sc.opts.Port, "keyvault", fetcher.VaultName(), "secretName", fetcher.SecretName())
	return srv.Run(ctx)
}
