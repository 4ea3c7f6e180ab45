package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"cube-scanner/internal/version"
)

func newVersionCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintln(e.stdout, version.String("cubescan"))
		},
	}
}
