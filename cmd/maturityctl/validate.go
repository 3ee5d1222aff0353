package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terra-clan/maturity-engine/internal/catalog"
)

func newValidateCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate an assessment content directory",
		Long: `Load and validate an assessment content directory.

Every configuration problem is listed, not only the first one.

Examples:
  maturityctl validate --dir content`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, err := catalog.ReadDir(dir)
			if err != nil {
				return err
			}

			c, err := catalog.New(content)
			if err != nil {
				var cfgErr *catalog.ConfigurationError
				if errors.As(err, &cfgErr) {
					for _, p := range cfgErr.Problems {
						fmt.Fprintf(cmd.ErrOrStderr(), "  - %s\n", p)
					}
				}
				return err
			}

			classification, pools, questions, pathways, levels := c.Stats()
			lo, hi := c.ClassificationRange()
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "catalog %s is valid\n", dir)
			fmt.Fprintf(out, "  classification questions: %d (scores %d..%d)\n", classification, lo, hi)
			fmt.Fprintf(out, "  question pools:           %d (%d questions)\n", pools, questions)
			fmt.Fprintf(out, "  pathways:                 %d\n", pathways)
			fmt.Fprintf(out, "  maturity levels:          %d\n", levels)
			return nil
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "content", "content directory")

	return cmd
}
