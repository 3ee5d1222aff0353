package models

// CorePoolID is the pool asked for every pathway unconditionally
const CorePoolID = "core"

// Option is one selectable answer to a question
type Option struct {
	Text  string `json:"text" yaml:"text"`
	Score int    `json:"score" yaml:"score"` // 1..5, higher = more mature

	// PathwayFilter restricts which pathways may be chosen when this option is
	// selected. Only classification options carry one.
	PathwayFilter []string `json:"pathwayFilter,omitempty" yaml:"pathway_filter"`
}

// InclusionRule decides whether a pool question is asked on a pathway.
// Exclusion wins: a pathway listed in SkipFor is never admitted, even if it
// also appears in RequiredFor.
type InclusionRule struct {
	RequiredFor []string `json:"requiredFor,omitempty" yaml:"required_for"`
	SkipFor     []string `json:"skipFor,omitempty" yaml:"skip_for"`
}

// Admits reports whether the rule lets a question through for pathwayID
func (r InclusionRule) Admits(pathwayID string) bool {
	if contains(r.SkipFor, pathwayID) {
		return false
	}
	if len(r.RequiredFor) > 0 && !contains(r.RequiredFor, pathwayID) {
		return false
	}
	return true
}

// IsZero reports whether the rule admits every pathway
func (r InclusionRule) IsZero() bool {
	return len(r.RequiredFor) == 0 && len(r.SkipFor) == 0
}

// Question is one assessment item
type Question struct {
	ID        string        `json:"id"`
	Dimension string        `json:"dimension"` // e.g. "Data Infrastructure"
	Prompt    string        `json:"prompt"`
	Options   []Option      `json:"options"`
	Inclusion InclusionRule `json:"inclusion"`
}

// Option returns the option at index, if offered
func (q *Question) Option(index int) (Option, bool) {
	if index < 0 || index >= len(q.Options) {
		return Option{}, false
	}
	return q.Options[index], true
}

// Admits reports whether the question is asked on the given pathway
func (q *Question) Admits(pathwayID string) bool {
	return q.Inclusion.Admits(pathwayID)
}

// QuestionPool is a named, ordered group of questions (e.g. "core", "governance")
type QuestionPool struct {
	ID        string     `json:"id"`
	Questions []Question `json:"questions"`
}

// Pathway is a track of the assessment selected by classification
type Pathway struct {
	ID          string `json:"id" yaml:"id"`
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	MinScore    int    `json:"minScore" yaml:"min_score"`
	MaxScore    *int   `json:"maxScore" yaml:"max_score"` // nil = "and above"
	TargetTier  int    `json:"targetTier,omitempty" yaml:"target_tier"`
}

// Bounded reports whether the pathway has an upper score bound
func (p *Pathway) Bounded() bool {
	return p.MaxScore != nil
}

// Contains reports whether score falls inside [MinScore, MaxScore]
func (p *Pathway) Contains(score int) bool {
	if score < p.MinScore {
		return false
	}
	return p.MaxScore == nil || score <= *p.MaxScore
}

// MaturityLevel maps an overall-score tier to report copy
type MaturityLevel struct {
	Tier        int    `json:"tier" yaml:"tier"` // 1..5
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
	Color       string `json:"color" yaml:"color"`
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
