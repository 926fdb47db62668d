package version

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Azure/kvsample/pkg/version"
)

// NewVersionCmd returns a new version command
func NewVersionCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Print the version of kvsample",
		Long:  "Print the version of kvsample",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeVersion(cmd.OutOrStdout(), jsonOutput)
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the build information as JSON")

	return cmd
}

func writeVersion(w io.Writer, jsonOutput bool) error {
	if jsonOutput {
		return version.PrintVersion(w)
	}
	_, err := fmt.Fprintln(w, getVersion())
	return err
}

func getVersion() string {
	return fmt.Sprintf("Version: %s\nGitCommit: %s", version.BuildVersion, version.Vcs)
}
