package probe

import (
	"github.com/spf13/cobra"

	"github.com/Azure/kvsample/pkg/server"
)

// NewProbeCmd returns a new probe command
func NewProbeCmd() *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run a readyz probe against a running server",
		Long:  "Run a readyz probe against a kvsample server listening on localhost. Used as a container lifecycle hook.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return server.Probe(port)
		},
		SilenceUsage: true,
	}

	cmd.Flags().IntVar(&port, "port", 8080, "Port the server listens on")

	return cmd
}
