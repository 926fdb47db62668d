package get

import (
	"context"
	"encoding/json"
	"io"
	"time"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/Azure/kvsample/pkg/cmd/options"
	"github.com/Azure/kvsample/pkg/keyvault"
	"github.com/Azure/kvsample/pkg/logger"
)

const defaultTimeout = 30 * time.Second

type fetcher interface {
	FetchSecret(ctx context.Context) keyvault.Outcome
}

type getCmd struct {
	opts    *options.Options
	logger  *logger.Logger
	timeout time.Duration
}

// NewGetCmd returns a new get command
func NewGetCmd(l *logger.Logger) *cobra.Command {
	gc := &getCmd{
		opts:   options.New(),
		logger: l,
	}

	cmd := &cobra.Command{
		Use:   "get",
		Short: "Fetch the configured secret once",
		Long:  "Fetch the configured Key Vault secret once and print the outcome as JSON. Exits with a non-zero code when the fetch was not successful.",
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return gc.opts.Complete(cmd.Flags())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := gc.opts.NewFetcher(gc.logger.Get().WithName("keyvault"))
			if err != nil {
				return errors.Wrap(err, "failed to create secret fetcher")
			}
			log.Debugf("fetching secret %q from key vault %q", f.SecretName(), f.VaultName())
			return gc.run(cmd.Context(), f, cmd.OutOrStdout())
		},
		SilenceUsage: true,
	}

	f := cmd.Flags()
	gc.opts.AddFlags(f)
	f.DurationVar(&gc.timeout, "timeout", defaultTimeout, "Timeout for the secret fetch")

	return cmd
}

func (gc *getCmd) run(ctx context.Context, f fetcher, w io.Writer) error {
	if gc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, gc.timeout)
		defer cancel()
	}

	outcome := f.FetchSecret(ctx)
	log.Debugf("secret fetch finished with kind %s", outcome.Kind)

	out, err := json.MarshalIndent(outcome.View(), "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal outcome")
	}
	if _, err := w.Write(append(out, '\n')); err != nil {
		return errors.Wrap(err, "failed to write outcome")
	}

	if !outcome.Success {
		return errors.Errorf("failed to fetch secret: %s", outcome.Message)
	}
	return nil
}
