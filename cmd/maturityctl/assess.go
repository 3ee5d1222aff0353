package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/terra-clan/maturity-engine/internal/assessment"
	"github.com/terra-clan/maturity-engine/internal/catalog"
	"github.com/terra-clan/maturity-engine/internal/models"
)

func newAssessCmd() *cobra.Command {
	var (
		dir         string
		answersPath string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Run an assessment offline from an answer file",
		Long: `Run an assessment offline: resolve the pathway from the classification
answers, then score the answers against that pathway's question set.

Examples:
  maturityctl assess --answers answers.yaml
  maturityctl assess --dir content --answers answers.yaml --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readAnswerFile(answersPath)
			if err != nil {
				return err
			}

			c, err := catalog.Load(dir)
			if err != nil {
				return err
			}
			engine := assessment.NewEngine(c)

			var result *models.AssessmentResult
			if f.Pathway != "" {
				result, err = engine.ScoreByID(f.Answers, f.Pathway)
			} else {
				result, err = engine.Run(f.Classification, f.Answers)
			}
			if err != nil {
				return err
			}

			return writeResult(cmd, result, asJSON)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "content", "content directory")
	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML answer file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	cmd.MarkFlagRequired("answers")

	return cmd
}

func writeResult(cmd *cobra.Command, result *models.AssessmentResult, asJSON bool) error {
	if !asJSON {
		printResult(cmd.OutOrStdout(), result)
		return nil
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(result); err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}
	return nil
}
