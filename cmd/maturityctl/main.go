// Command maturityctl validates assessment content and runs assessments
// from the command line, either offline or against a running server.
package main

import (
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "maturityctl",
		Version:       version,
		Short:         "Validate maturity assessment content and run assessments",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(newValidateCmd())
	root.AddCommand(newAssessCmd())
	root.AddCommand(newRemoteCmd())

	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
