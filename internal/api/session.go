package api

import (
	"fmt"

	"github.com/terra-clan/maturity-engine/internal/assessment"
	"github.com/terra-clan/maturity-engine/internal/models"
)

// assessmentSession is the state of one interactive assessment. It is owned
// by a single connection goroutine and never shared.
type assessmentSession struct {
	engine         *assessment.Engine
	classification *models.Classification
	questions      []models.Question
	answers        map[string]int
}

func newAssessmentSession(engine *assessment.Engine) *assessmentSession {
	return &assessmentSession{
		engine:  engine,
		answers: make(map[string]int),
	}
}

// classify resolves the pathway. Answers that are not part of the new
// question set are dropped; the rest carry over.
func (s *assessmentSession) classify(choices []int) error {
	c, err := s.engine.Classify(choices)
	if err != nil {
		return err
	}

	questions, err := s.engine.Assemble(c.Pathway)
	if err != nil {
		return err
	}

	kept := make(map[string]int)
	for _, q := range questions {
		if idx, ok := s.answers[q.ID]; ok {
			kept[q.ID] = idx
		}
	}

	s.classification = &c
	s.questions = questions
	s.answers = kept
	return nil
}

// answer records the option chosen for a question of the current set
func (s *assessmentSession) answer(questionID string, option int) error {
	if s.classification == nil {
		return &assessment.ScoringError{QuestionID: questionID, Reason: "classification has not been completed"}
	}

	for i := range s.questions {
		q := &s.questions[i]
		if q.ID != questionID {
			continue
		}
		if _, ok := q.Option(option); !ok {
			return &assessment.ScoringError{
				QuestionID: questionID,
				Reason:     fmt.Sprintf("option %d is not offered", option),
			}
		}
		s.answers[questionID] = option
		return nil
	}

	return &assessment.ScoringError{
		QuestionID: questionID,
		Reason:     fmt.Sprintf("question is not part of the %q question set", s.classification.Pathway.ID),
	}
}

func (s *assessmentSession) clear(questionID string) {
	delete(s.answers, questionID)
}

func (s *assessmentSession) reset() {
	s.classification = nil
	s.questions = nil
	s.answers = make(map[string]int)
}

// state recomputes the result from the current answers
func (s *assessmentSession) state() (sessionState, error) {
	st := sessionState{
		Type:           "state",
		Classification: s.classification,
		Questions:      s.questions,
		Answers:        make(map[string]int, len(s.answers)),
	}
	for id, idx := range s.answers {
		st.Answers[id] = idx
	}

	if s.classification == nil || len(s.answers) == 0 {
		return st, nil
	}

	result, err := s.engine.Score(s.answers, s.classification.Pathway)
	if err != nil {
		return st, err
	}
	st.Result = result
	return st, nil
}

// sessionMessage is sent by the client
type sessionMessage struct {
	Type       string `json:"type"` // classify, answer, clear, reset
	Choices    []int  `json:"choices,omitempty"`
	QuestionID string `json:"question_id,omitempty"`
	Option     *int   `json:"option,omitempty"`
}

// sessionState is sent to the client after every accepted message
type sessionState struct {
	Type           string                   `json:"type"`
	SessionID      string                   `json:"session_id"`
	Classification *models.Classification   `json:"classification,omitempty"`
	Questions      []models.Question        `json:"questions,omitempty"`
	Answers        map[string]int           `json:"answers"`
	Result         *models.AssessmentResult `json:"result,omitempty"`
}

// sessionError is sent when a message is rejected; the session state is unchanged
type sessionError struct {
	Type    string `json:"type"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// apply dispatches one client message
func (s *assessmentSession) apply(msg sessionMessage) error {
	switch msg.Type {
	case "classify":
		return s.classify(msg.Choices)
	case "answer":
		if msg.Option == nil {
			return errMissingOption
		}
		return s.answer(msg.QuestionID, *msg.Option)
	case "clear":
		s.clear(msg.QuestionID)
		return nil
	case "reset":
		s.reset()
		return nil
	default:
		return fmt.Errorf("%w: %q", errUnknownMessage, msg.Type)
	}
}
