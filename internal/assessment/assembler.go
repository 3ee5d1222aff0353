package assessment

import (
	"sort"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// Assemble returns the ordered questions a user must answer on pathway.
//
// The core pool is always included. Questions from the other pools are
// included when their inclusion rule admits the pathway (skip_for wins over
// required_for). Duplicate ids keep their first position. The result is
// grouped by dimension (groups in order of first appearance), keeping
// declaration order within each group.
func (e *Engine) Assemble(pathway models.Pathway) ([]models.Question, error) {
	p, err := e.pathway(pathway)
	if err != nil {
		return nil, err
	}
	return assemble(e.catalog.Pools(), p.ID), nil
}

// AssembleByID is Assemble for a pathway id
func (e *Engine) AssembleByID(pathwayID string) ([]models.Question, error) {
	p, ok := e.catalog.Pathway(pathwayID)
	if !ok {
		return nil, ErrPathwayNotFound
	}
	return e.Assemble(p)
}

func assemble(pools []models.QuestionPool, pathwayID string) []models.Question {
	seen := make(map[string]bool)
	var questions []models.Question

	add := func(q models.Question) {
		if seen[q.ID] {
			return
		}
		seen[q.ID] = true
		questions = append(questions, q)
	}

	// Core first, regardless of where it is declared
	for _, pool := range pools {
		if pool.ID != models.CorePoolID {
			continue
		}
		for _, q := range pool.Questions {
			add(q)
		}
	}

	for _, pool := range pools {
		if pool.ID == models.CorePoolID {
			continue
		}
		for _, q := range pool.Questions {
			if q.Admits(pathwayID) {
				add(q)
			}
		}
	}

	return groupByDimension(questions)
}

// groupByDimension stable-sorts questions by the first position of their dimension
func groupByDimension(questions []models.Question) []models.Question {
	rank := make(map[string]int)
	for _, q := range questions {
		if _, ok := rank[q.Dimension]; !ok {
			rank[q.Dimension] = len(rank)
		}
	}
	sort.SliceStable(questions, func(i, j int) bool {
		return rank[questions[i].Dimension] < rank[questions[j].Dimension]
	})
	return questions
}
