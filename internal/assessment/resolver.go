package assessment

import (
	"fmt"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// TieBreak decides which pathway wins when several intervals contain the same score
type TieBreak int

const (
	// PreferLowerMinScore picks the pathway with the lowest MinScore;
	// equal MinScore falls back to catalog declaration order.
	PreferLowerMinScore TieBreak = iota
)

// TieBreakPolicy is the rule applied by Resolve. The validated catalog rejects
// overlapping intervals, so it only matters for content built without validation.
const TieBreakPolicy = PreferLowerMinScore

// Resolve selects the pathway for the given classification choices.
// choices[i] is the index of the option chosen for classification question i.
func (e *Engine) Resolve(choices []int) (models.Pathway, error) {
	c, err := e.Classify(choices)
	if err != nil {
		return models.Pathway{}, err
	}
	return c.Pathway, nil
}

// Classify is Resolve that also reports the computed classification score
func (e *Engine) Classify(choices []int) (models.Classification, error) {
	questions := e.catalog.ClassificationQuestions()
	if len(choices) != len(questions) {
		return models.Classification{}, &ClassificationError{
			Reason: fmt.Sprintf("expected %d answers, got %d", len(questions), len(choices)),
		}
	}

	score := 0
	var filters [][]string
	for i, q := range questions {
		opt, ok := q.Option(choices[i])
		if !ok {
			return models.Classification{}, &ClassificationError{
				QuestionID: q.ID,
				Reason:     fmt.Sprintf("option %d is not offered", choices[i]),
			}
		}
		score += opt.Score
		if len(opt.PathwayFilter) > 0 {
			filters = append(filters, opt.PathwayFilter)
		}
	}

	pathway, err := selectPathway(score, e.catalog.Pathways(), filters, TieBreakPolicy)
	if err != nil {
		return models.Classification{}, err
	}
	return models.Classification{Score: score, Pathway: pathway}, nil
}

// selectPathway finds the pathway whose interval contains score.
// Candidates must be allowed by every option filter. A score above every
// bounded maximum resolves to the top pathway.
func selectPathway(score int, pathways []models.Pathway, filters [][]string, policy TieBreak) (models.Pathway, error) {
	best := -1
	matched := false
	for i := range pathways {
		p := &pathways[i]
		if !p.Contains(score) {
			continue
		}
		matched = true
		if !allowedByFilters(p.ID, filters) {
			continue
		}
		if best < 0 || prefer(policy, p, &pathways[best]) {
			best = i
		}
	}

	if best < 0 && !matched && aboveAll(score, pathways) {
		best = topPathway(pathways)
		if best >= 0 && !allowedByFilters(pathways[best].ID, filters) {
			best = -1
			matched = true
		}
	}

	if best < 0 {
		reason := "no pathway covers this score"
		if matched {
			reason = "option pathway filters exclude every matching pathway"
		}
		return models.Pathway{}, &ClassificationError{Score: score, Reason: reason}
	}
	return pathways[best], nil
}

// prefer reports whether candidate beats current under policy
func prefer(policy TieBreak, candidate, current *models.Pathway) bool {
	switch policy {
	case PreferLowerMinScore:
		return candidate.MinScore < current.MinScore
	default:
		return false
	}
}

func allowedByFilters(pathwayID string, filters [][]string) bool {
	for _, filter := range filters {
		found := false
		for _, id := range filter {
			if id == pathwayID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func aboveAll(score int, pathways []models.Pathway) bool {
	if len(pathways) == 0 {
		return false
	}
	for _, p := range pathways {
		if p.MaxScore == nil || score <= *p.MaxScore {
			return false
		}
	}
	return true
}

// topPathway returns the index of the pathway with the highest MinScore
func topPathway(pathways []models.Pathway) int {
	top := -1
	for i, p := range pathways {
		if top < 0 || p.MinScore > pathways[top].MinScore {
			top = i
		}
	}
	return top
}
