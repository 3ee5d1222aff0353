package main

import (
	"time"

	"github.com/spf13/cobra"

	"github.com/terra-clan/maturity-engine/pkg/client"
)

func newRemoteCmd() *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "remote",
		Short: "Talk to a running maturity-engine server",
	}
	cmd.PersistentFlags().StringVar(&baseURL, "url", "http://localhost:8080", "server base URL")
	cmd.PersistentFlags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	newClient := func() *client.Client {
		return client.NewClient(baseURL, client.WithTimeout(timeout))
	}

	cmd.AddCommand(newRemoteScoreCmd(newClient))

	return cmd
}

func newRemoteScoreCmd(newClient func() *client.Client) *cobra.Command {
	var (
		answersPath string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Score an answer file on the server",
		Long: `Classify and score an answer file using the server's API.

Examples:
  maturityctl remote score --url http://localhost:8080 --answers answers.yaml`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := readAnswerFile(answersPath)
			if err != nil {
				return err
			}

			c := newClient()
			ctx := cmd.Context()

			pathwayID := f.Pathway
			if pathwayID == "" {
				classification, err := c.Classify(ctx, f.Classification)
				if err != nil {
					return err
				}
				pathwayID = classification.Pathway.ID
			}

			result, err := c.Score(ctx, pathwayID, f.Answers)
			if err != nil {
				return err
			}

			return writeResult(cmd, result, asJSON)
		},
	}

	cmd.Flags().StringVar(&answersPath, "answers", "", "YAML answer file")
	cmd.Flags().BoolVar(&asJSON, "json", false, "output in JSON format")
	cmd.MarkFlagRequired("answers")

	return cmd
}
