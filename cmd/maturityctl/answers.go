package main

import (
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// answerFile is the YAML input of assess and remote score:
//
//	classification: [1, 2, 2]
//	answers:
//	  infra-1: 3
//
// Pathway, when set, skips classification.
type answerFile struct {
	Classification []int          `yaml:"classification"`
	Pathway        string         `yaml:"pathway"`
	Answers        map[string]int `yaml:"answers"`
}

func readAnswerFile(path string) (*answerFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f answerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if f.Pathway == "" && len(f.Classification) == 0 {
		return nil, fmt.Errorf("%s: either classification or pathway is required", path)
	}
	if len(f.Answers) == 0 {
		return nil, fmt.Errorf("%s: no answers", path)
	}

	return &f, nil
}

// printResult writes a human-readable report
func printResult(w io.Writer, result *models.AssessmentResult) {
	fmt.Fprintf(w, "Pathway:  %s (%s)\n", result.Pathway.Name, result.Pathway.ID)
	fmt.Fprintf(w, "Overall:  %.1f\n", result.OverallDisplay)
	fmt.Fprintf(w, "Level:    %d - %s\n", result.Level.Tier, result.Level.Name)
	fmt.Fprintf(w, "Answered: %d of %d questions\n", result.Answered, result.Assembled)
	if result.Interpretation != nil {
		fmt.Fprintf(w, "\n%s\n", result.Interpretation.Summary)
	}

	fmt.Fprintln(w)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "DIMENSION\tSCORE\tQUESTIONS")
	for _, d := range result.Dimensions {
		fmt.Fprintf(tw, "%s\t%.1f\t%d\n", d.Dimension, d.Display, d.Count)
	}
	tw.Flush()
}
