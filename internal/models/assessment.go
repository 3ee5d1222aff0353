package models

// Relation of an overall tier to the pathway's target tier
type Relation string

const (
	RelationBelow Relation = "below_pathway"
	RelationOn    Relation = "on_pathway"
	RelationAhead Relation = "ahead_of_pathway"
)

// DimensionScore aggregates the answered questions of one dimension
type DimensionScore struct {
	Dimension string  `json:"dimension"`
	Mean      float64 `json:"mean"`    // unrounded, used for aggregation
	Display   float64 `json:"display"` // rounded for presentation
	Count     int     `json:"count"`   // contributing questions
}

// Interpretation places the result relative to the resolved pathway
type Interpretation struct {
	Relation   Relation `json:"relation"`
	TargetTier int      `json:"targetTier"`
	Summary    string   `json:"summary"`
}

// AssessmentResult is the final output of a completed (or partial) assessment
type AssessmentResult struct {
	OverallScore   float64          `json:"overallScore"`
	OverallDisplay float64          `json:"overallDisplay"`
	Level          MaturityLevel    `json:"level"`
	Pathway        Pathway          `json:"pathway"`
	Dimensions     []DimensionScore `json:"dimensions"`
	Answered       int              `json:"answered"`
	Assembled      int              `json:"assembled"`
	Completion     float64          `json:"completion"` // answered / assembled
	Interpretation *Interpretation  `json:"interpretation,omitempty"`
}

// Classification is the outcome of resolving the classification answers
type Classification struct {
	Score   int     `json:"score"`
	Pathway Pathway `json:"pathway"`
}

// ClassifyRequest is the body of POST /assessment/classify
type ClassifyRequest struct {
	Choices []int `json:"choices"`
}

// ScoreRequest is the body of POST /assessment/score
type ScoreRequest struct {
	PathwayID string         `json:"pathway_id"`
	Answers   map[string]int `json:"answers"` // question id -> option index
}
