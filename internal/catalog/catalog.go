package catalog

import (
	"github.com/terra-clan/maturity-engine/internal/models"
)

// Content is the raw catalog data before validation
type Content struct {
	Classification []models.Question
	Pools          []models.QuestionPool // declaration order
	Pathways       []models.Pathway      // declaration order
	Levels         []models.MaturityLevel
}

// Catalog is the validated, read-only content registry.
// It is never mutated after New returns, so concurrent reads need no locking.
type Catalog struct {
	classification []models.Question
	pools          []models.QuestionPool
	pathways       []models.Pathway
	levels         []models.MaturityLevel // sorted by tier

	questions map[string]*models.Question // pool questions by id
	pathwayID map[string]int
	minSum    int
	maxSum    int
}

// New validates content and builds a Catalog.
// Any problem is reported as a *ConfigurationError.
func New(content Content) (*Catalog, error) {
	if err := validate(content); err != nil {
		return nil, err
	}

	c := &Catalog{
		classification: cloneQuestions(content.Classification),
		pathways:       clonePathways(content.Pathways),
		levels:         sortedLevels(content.Levels),
		questions:      make(map[string]*models.Question),
		pathwayID:      make(map[string]int, len(content.Pathways)),
	}

	c.pools = make([]models.QuestionPool, 0, len(content.Pools))
	for _, p := range content.Pools {
		c.pools = append(c.pools, models.QuestionPool{ID: p.ID, Questions: cloneQuestions(p.Questions)})
	}
	for i := range c.pools {
		for j := range c.pools[i].Questions {
			q := &c.pools[i].Questions[j]
			c.questions[q.ID] = q
		}
	}

	for i, p := range c.pathways {
		c.pathwayID[p.ID] = i
	}

	c.minSum, c.maxSum = classificationRange(c.classification)
	return c, nil
}

// ClassificationQuestions returns the ordered classification questions
func (c *Catalog) ClassificationQuestions() []models.Question {
	return cloneQuestions(c.classification)
}

// ClassificationRange returns the lowest and highest attainable classification scores
func (c *Catalog) ClassificationRange() (int, int) {
	return c.minSum, c.maxSum
}

// Pools returns the question pools in declaration order
func (c *Catalog) Pools() []models.QuestionPool {
	result := make([]models.QuestionPool, 0, len(c.pools))
	for _, p := range c.pools {
		result = append(result, models.QuestionPool{ID: p.ID, Questions: cloneQuestions(p.Questions)})
	}
	return result
}

// Question returns a pool question by id
func (c *Catalog) Question(id string) (models.Question, bool) {
	q, ok := c.questions[id]
	if !ok {
		return models.Question{}, false
	}
	return cloneQuestion(*q), true
}

// Pathways returns all pathways in declaration order
func (c *Catalog) Pathways() []models.Pathway {
	return clonePathways(c.pathways)
}

// Pathway returns a pathway by id
func (c *Catalog) Pathway(id string) (models.Pathway, bool) {
	i, ok := c.pathwayID[id]
	if !ok {
		return models.Pathway{}, false
	}
	return clonePathway(c.pathways[i]), true
}

// MaturityLevels returns the tiers in ascending order
func (c *Catalog) MaturityLevels() []models.MaturityLevel {
	result := make([]models.MaturityLevel, len(c.levels))
	copy(result, c.levels)
	return result
}

// Level returns the maturity level for tier
func (c *Catalog) Level(tier int) (models.MaturityLevel, bool) {
	if tier < 1 || tier > len(c.levels) {
		return models.MaturityLevel{}, false
	}
	return c.levels[tier-1], true
}

// Stats summarises catalog size for logging
func (c *Catalog) Stats() (classification, pools, questions, pathways, levels int) {
	return len(c.classification), len(c.pools), len(c.questions), len(c.pathways), len(c.levels)
}

// --- helpers ---

func classificationRange(questions []models.Question) (int, int) {
	minSum, maxSum := 0, 0
	for _, q := range questions {
		lo, hi := optionBounds(q.Options)
		minSum += lo
		maxSum += hi
	}
	return minSum, maxSum
}

func optionBounds(options []models.Option) (int, int) {
	if len(options) == 0 {
		return 0, 0
	}
	lo, hi := options[0].Score, options[0].Score
	for _, o := range options[1:] {
		if o.Score < lo {
			lo = o.Score
		}
		if o.Score > hi {
			hi = o.Score
		}
	}
	return lo, hi
}

func sortedLevels(levels []models.MaturityLevel) []models.MaturityLevel {
	// validate guarantees tiers 1..n without duplicates
	result := make([]models.MaturityLevel, len(levels))
	for _, l := range levels {
		result[l.Tier-1] = l
	}
	return result
}

func cloneQuestions(qs []models.Question) []models.Question {
	result := make([]models.Question, 0, len(qs))
	for _, q := range qs {
		result = append(result, cloneQuestion(q))
	}
	return result
}

func cloneQuestion(q models.Question) models.Question {
	out := q
	out.Options = make([]models.Option, 0, len(q.Options))
	for _, o := range q.Options {
		o.PathwayFilter = cloneStrings(o.PathwayFilter)
		out.Options = append(out.Options, o)
	}
	out.Inclusion = models.InclusionRule{
		RequiredFor: cloneStrings(q.Inclusion.RequiredFor),
		SkipFor:     cloneStrings(q.Inclusion.SkipFor),
	}
	return out
}

func clonePathways(ps []models.Pathway) []models.Pathway {
	result := make([]models.Pathway, 0, len(ps))
	for _, p := range ps {
		result = append(result, clonePathway(p))
	}
	return result
}

func clonePathway(p models.Pathway) models.Pathway {
	if p.MaxScore != nil {
		upper := *p.MaxScore
		p.MaxScore = &upper
	}
	return p
}

func cloneStrings(s []string) []string {
	if s == nil {
		return nil
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
