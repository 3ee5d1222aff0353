package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Catalog handlers: read-only views of the assessment content

func (s *Server) handleClassificationQuestions(w http.ResponseWriter, r *http.Request) {
	questions := s.engine.Catalog().ClassificationQuestions()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"questions": questions,
		"total":     len(questions),
	})
}

func (s *Server) handleListPathways(w http.ResponseWriter, r *http.Request) {
	pathways := s.engine.Catalog().Pathways()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"pathways": pathways,
		"total":    len(pathways),
	})
}

func (s *Server) handleGetPathway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	pathway, ok := s.engine.Catalog().Pathway(id)
	if !ok {
		respondError(w, http.StatusNotFound, "not_found", "pathway not found")
		return
	}
	respondJSON(w, http.StatusOK, pathway)
}

func (s *Server) handleListLevels(w http.ResponseWriter, r *http.Request) {
	levels := s.engine.Catalog().MaturityLevels()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"levels": levels,
		"total":  len(levels),
	})
}
