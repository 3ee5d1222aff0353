package assessment

import (
	"fmt"
	"math"
	"sort"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// DisplayPrecision is the number of decimals kept in Display fields
const DisplayPrecision = 1

// roundingEpsilon absorbs binary representation error so that exact halves
// such as 2.45 (stored as 2.4499999...) still round up.
const roundingEpsilon = 1e-9

// Score aggregates answers (question id -> chosen option index) for pathway.
//
// Every answered id must belong to the pathway's assembled question set and
// every index must be offered by its question; the first violation, in id
// order, is returned as a *ScoringError. Unanswered questions are left out of
// every mean rather than counted as zero.
func (e *Engine) Score(answers map[string]int, pathway models.Pathway) (*models.AssessmentResult, error) {
	p, err := e.pathway(pathway)
	if err != nil {
		return nil, err
	}

	questions := assemble(e.catalog.Pools(), p.ID)
	if err := validateAnswers(answers, questions, p.ID); err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, &ScoringError{Reason: "no answers provided"}
	}

	dimensions := aggregate(answers, questions)

	total := 0.0
	for _, d := range dimensions {
		total += d.Mean
	}
	overall := total / float64(len(dimensions))

	levels := e.catalog.MaturityLevels()
	tier := TierFor(overall, len(levels))
	level, _ := e.catalog.Level(tier)

	return &models.AssessmentResult{
		OverallScore:   overall,
		OverallDisplay: RoundHalfUp(overall, DisplayPrecision),
		Level:          level,
		Pathway:        p,
		Dimensions:     dimensions,
		Answered:       len(answers),
		Assembled:      len(questions),
		Completion:     float64(len(answers)) / float64(len(questions)),
		Interpretation: interpret(p, level),
	}, nil
}

// ScoreByID is Score for a pathway id
func (e *Engine) ScoreByID(answers map[string]int, pathwayID string) (*models.AssessmentResult, error) {
	p, ok := e.catalog.Pathway(pathwayID)
	if !ok {
		return nil, ErrPathwayNotFound
	}
	return e.Score(answers, p)
}

func validateAnswers(answers map[string]int, questions []models.Question, pathwayID string) error {
	index := make(map[string]*models.Question, len(questions))
	for i := range questions {
		index[questions[i].ID] = &questions[i]
	}

	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		q, ok := index[id]
		if !ok {
			return &ScoringError{
				QuestionID: id,
				Reason:     fmt.Sprintf("question is not part of the %q question set", pathwayID),
			}
		}
		if _, ok := q.Option(answers[id]); !ok {
			return &ScoringError{
				QuestionID: id,
				Reason:     fmt.Sprintf("option %d is not offered", answers[id]),
			}
		}
	}
	return nil
}

// aggregate computes per-dimension means in assembled order
func aggregate(answers map[string]int, questions []models.Question) []models.DimensionScore {
	type bucket struct {
		sum   int
		count int
	}

	var order []string
	buckets := make(map[string]*bucket)
	for i := range questions {
		q := &questions[i]
		idx, ok := answers[q.ID]
		if !ok {
			continue
		}
		b, ok := buckets[q.Dimension]
		if !ok {
			b = &bucket{}
			buckets[q.Dimension] = b
			order = append(order, q.Dimension)
		}
		b.sum += q.Options[idx].Score
		b.count++
	}

	dimensions := make([]models.DimensionScore, 0, len(order))
	for _, name := range order {
		b := buckets[name]
		mean := float64(b.sum) / float64(b.count)
		dimensions = append(dimensions, models.DimensionScore{
			Dimension: name,
			Mean:      mean,
			Display:   RoundHalfUp(mean, DisplayPrecision),
			Count:     b.count,
		})
	}
	return dimensions
}

// RoundHalfUp rounds x to places decimals, halves away from zero for positive x
func RoundHalfUp(x float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Floor(x*scale+0.5+roundingEpsilon) / scale
}

// TierFor maps an overall score onto tiers 1..levels using round-half-up
// (2.5 → 3, 2.49 → 2), clamped to the available tiers.
func TierFor(score float64, levels int) int {
	tier := int(RoundHalfUp(score, 0))
	if tier < 1 {
		tier = 1
	}
	if tier > levels {
		tier = levels
	}
	return tier
}

func interpret(p models.Pathway, level models.MaturityLevel) *models.Interpretation {
	if p.TargetTier <= 0 {
		return nil
	}

	in := &models.Interpretation{TargetTier: p.TargetTier}
	switch {
	case level.Tier < p.TargetTier:
		in.Relation = models.RelationBelow
		in.Summary = fmt.Sprintf("%s is below the tier %d benchmark for the %s pathway.", level.Name, p.TargetTier, p.Name)
	case level.Tier > p.TargetTier:
		in.Relation = models.RelationAhead
		in.Summary = fmt.Sprintf("%s is ahead of the tier %d benchmark for the %s pathway.", level.Name, p.TargetTier, p.Name)
	default:
		in.Relation = models.RelationOn
		in.Summary = fmt.Sprintf("%s matches the tier %d benchmark for the %s pathway.", level.Name, p.TargetTier, p.Name)
	}
	return in
}
