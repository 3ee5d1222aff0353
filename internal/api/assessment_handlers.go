package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/terra-clan/maturity-engine/internal/assessment"
	"github.com/terra-clan/maturity-engine/internal/models"
)

// QuestionSet is the assembled question list for a pathway
type QuestionSet struct {
	Pathway   models.Pathway    `json:"pathway"`
	Questions []models.Question `json:"questions"`
	Total     int               `json:"total"`
}

func (s *Server) handleClassify(w http.ResponseWriter, r *http.Request) {
	var req models.ClassifyRequest
	if err := decodeBody(r, classifySchemaLoader, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	classification, err := s.engine.Classify(req.Choices)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, classification)
}

func (s *Server) handleQuestions(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	pathway, ok := s.engine.Catalog().Pathway(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "pathway not found")
		return
	}

	questions, err := s.engine.Assemble(pathway)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, QuestionSet{
		Pathway:   pathway,
		Questions: questions,
		Total:     len(questions),
	})
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	var req models.ScoreRequest
	if err := decodeBody(r, scoreSchemaLoader, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	result, err := s.engine.ScoreByID(req.Answers, req.PathwayID)
	if err != nil {
		respondEngineError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

// respondEngineError maps assessment errors onto the error envelope
func respondEngineError(w http.ResponseWriter, err error) {
	var cerr *assessment.ClassificationError
	var serr *assessment.ScoringError

	switch {
	case errors.As(err, &cerr):
		slog.Warn("classification rejected", "question_id", cerr.QuestionID, "reason", cerr.Reason)
		respondError(w, http.StatusUnprocessableEntity, "classification_error", cerr.Error())
	case errors.As(err, &serr):
		slog.Warn("answers rejected", "question_id", serr.QuestionID, "reason", serr.Reason)
		respondError(w, http.StatusUnprocessableEntity, "scoring_error", serr.Error())
	case errors.Is(err, assessment.ErrPathwayNotFound):
		respondError(w, http.StatusNotFound, "not_found", "pathway not found")
	default:
		slog.Error("assessment failed", "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", "something went wrong, please retry the assessment")
	}
}
