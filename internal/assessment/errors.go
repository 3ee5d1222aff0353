package assessment

import (
	"errors"
	"fmt"
)

// Common errors
var (
	ErrPathwayNotFound = errors.New("pathway not found")
)

// ClassificationError reports classification answers that cannot select a pathway.
// With a valid catalog it only arises from malformed input.
type ClassificationError struct {
	QuestionID string // offending question, if any
	Score      int    // computed classification score, when reached
	Reason     string
}

func (e *ClassificationError) Error() string {
	if e.QuestionID != "" {
		return fmt.Sprintf("classification failed at %q: %s", e.QuestionID, e.Reason)
	}
	return fmt.Sprintf("classification failed (score %d): %s", e.Score, e.Reason)
}

// ScoringError reports an answer that does not belong to the assembled question set
// or selects an option the question does not offer.
type ScoringError struct {
	QuestionID string
	Reason     string
}

func (e *ScoringError) Error() string {
	if e.QuestionID == "" {
		return "scoring failed: " + e.Reason
	}
	return fmt.Sprintf("scoring failed at %q: %s", e.QuestionID, e.Reason)
}
