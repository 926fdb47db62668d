package cmd

import (
	"flag"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"k8s.io/klog/v2"

	"github.com/Azure/kvsample/pkg/cmd/get"
	"github.com/Azure/kvsample/pkg/cmd/probe"
	"github.com/Azure/kvsample/pkg/cmd/serve"
	"github.com/Azure/kvsample/pkg/cmd/version"
	"github.com/Azure/kvsample/pkg/logger"
)

const (
	rootName             = "kvsample"
	rootShortDescription = "kvsample fetches a secret from Azure Key Vault"
	rootLongDescription  = rootShortDescription + " using the ambient Azure identity."
)

var (
	debug bool
)

// NewRootCmd returns the root command for kvsample.
func NewRootCmd() *cobra.Command {
	logOpts := logger.New()

	cmd := &cobra.Command{
		Use:   rootName,
		Short: rootShortDescription,
		Long:  rootLongDescription,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if debug {
				log.SetLevel(log.DebugLevel)
			}
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Usage()
		},
	}

	p := cmd.PersistentFlags()
	p.BoolVar(&debug, "debug", false, "Enable debug logging")

	gfs := flag.NewFlagSet(rootName, flag.ContinueOnError)
	klog.InitFlags(gfs)
	logOpts.AddFlags(gfs)
	p.AddGoFlagSet(gfs)

	cmd.AddCommand(version.NewVersionCmd())
	cmd.AddCommand(serve.NewServeCmd(logOpts))
	cmd.AddCommand(get.NewGetCmd(logOpts))
	cmd.AddCommand(probe.NewProbeCmd())

	return cmd
}
