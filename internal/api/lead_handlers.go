package api

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/terra-clan/maturity-engine/internal/leads"
	"github.com/terra-clan/maturity-engine/internal/models"
)

// --- Lead intake ---

func (s *Server) handleContact(w http.ResponseWriter, r *http.Request) {
	var req models.ContactRequest
	if err := decodeBody(r, contactSchemaLoader, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	lead, err := s.leads.SubmitContact(r.Context(), req, requestMetadata(r))
	if err != nil {
		respondLeadError(w, err, "failed to submit contact request")
		return
	}

	respondJSON(w, http.StatusCreated, models.LeadResponse{
		ID:      lead.ID,
		Message: "Thanks, we will be in touch shortly.",
	})
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	var req models.NewsletterRequest
	if err := decodeBody(r, newsletterSchemaLoader, &req); err != nil {
		respondDecodeError(w, err)
		return
	}

	lead, err := s.leads.Subscribe(r.Context(), req)
	if err != nil {
		respondLeadError(w, err, "failed to subscribe")
		return
	}

	respondJSON(w, http.StatusCreated, models.LeadResponse{
		ID:      lead.ID,
		Message: "You are subscribed.",
	})
}

func respondLeadError(w http.ResponseWriter, err error, message string) {
	var verr *leads.ValidationError

	switch {
	case errors.As(err, &verr):
		respondError(w, http.StatusBadRequest, "validation_error", verr.Error())
	case errors.Is(err, leads.ErrUnavailable):
		respondError(w, http.StatusServiceUnavailable, "unavailable", "this form is temporarily unavailable")
	default:
		slog.Error(message, "error", err)
		respondError(w, http.StatusInternalServerError, "internal_error", message)
	}
}
