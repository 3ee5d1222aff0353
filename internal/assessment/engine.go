// Package assessment implements the adaptive maturity assessment pipeline:
// classification → question set assembly → scoring.
//
// Every operation is a pure function of its arguments and the immutable catalog,
// so an Engine may be shared freely between goroutines.
package assessment

import (
	"github.com/terra-clan/maturity-engine/internal/catalog"
	"github.com/terra-clan/maturity-engine/internal/models"
)

// Engine runs assessments against a catalog
type Engine struct {
	catalog *catalog.Catalog
}

// NewEngine creates a new Engine
func NewEngine(c *catalog.Catalog) *Engine {
	return &Engine{catalog: c}
}

// Catalog returns the catalog the engine reads from
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Run executes the full pipeline: resolve the pathway from classification
// choices, then score answers against that pathway.
func (e *Engine) Run(choices []int, answers map[string]int) (*models.AssessmentResult, error) {
	pathway, err := e.Resolve(choices)
	if err != nil {
		return nil, err
	}
	return e.Score(answers, pathway)
}

// pathway looks up the catalog's copy of p so callers cannot smuggle in
// modified score bounds or target tiers.
func (e *Engine) pathway(p models.Pathway) (models.Pathway, error) {
	known, ok := e.catalog.Pathway(p.ID)
	if !ok {
		return models.Pathway{}, ErrPathwayNotFound
	}
	return known, nil
}
