// Package leads handles contact-form and newsletter intake.
package leads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// Field limits
const (
	MaxNameLength    = 255
	MaxMessageLength = 5000
)

// ErrUnavailable is returned when no repository is configured
var ErrUnavailable = errors.New("lead intake is not available")

// ValidationError describes a rejected request field
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Service validates and stores leads
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a lead service. A nil repository makes every call
// return ErrUnavailable.
func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Available reports whether leads can be stored
func (s *Service) Available() bool {
	return s.repo != nil
}

// SubmitContact validates and stores a contact request
func (s *Service) SubmitContact(ctx context.Context, req models.ContactRequest, metadata map[string]string) (*models.Lead, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}

	name := strings.TrimSpace(req.Name)
	if err := requireText("name", name, MaxNameLength); err != nil {
		return nil, err
	}
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	message := strings.TrimSpace(req.Message)
	if err := requireText("message", message, MaxMessageLength); err != nil {
		return nil, err
	}

	lead := &models.Lead{
		ID:        uuid.New().String(),
		Source:    models.SourceContact,
		Name:      name,
		Email:     email,
		Company:   strings.TrimSpace(req.Company),
		Service:   strings.TrimSpace(req.Service),
		Message:   message,
		Metadata:  metadata,
		CreatedAt: s.now().UTC(),
	}

	if err := s.repo.SaveContact(ctx, lead); err != nil {
		return nil, err
	}

	slog.Info("contact request received", "id", lead.ID, "service", lead.Service)

	return lead, nil
}

// Subscribe validates and stores a newsletter signup
func (s *Service) Subscribe(ctx context.Context, req models.NewsletterRequest) (*models.Lead, error) {
	if s.repo == nil {
		return nil, ErrUnavailable
	}

	email, err := normalizeEmail(req.Email)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	if len(name) > MaxNameLength {
		return nil, &ValidationError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
	}

	lead, err := s.repo.SaveSubscriber(ctx, &models.Lead{
		ID:        uuid.New().String(),
		Source:    models.SourceNewsletter,
		Name:      name,
		Email:     email,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	slog.Info("newsletter signup", "id", lead.ID)

	return lead, nil
}

// Ping checks the repository
func (s *Service) Ping(ctx context.Context) error {
	if s.repo == nil {
		return ErrUnavailable
	}
	return s.repo.Ping(ctx)
}

func requireText(field, value string, max int) error {
	if value == "" {
		return &ValidationError{Field: field, Message: "is required"}
	}
	if len(value) > max {
		return &ValidationError{Field: field, Message: fmt.Sprintf("must be at most %d characters", max)}
	}
	return nil
}

// normalizeEmail accepts a bare address and lower-cases it
func normalizeEmail(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", &ValidationError{Field: "email", Message: "is required"}
	}

	addr, err := mail.ParseAddress(raw)
	if err != nil || addr.Address != raw || !strings.Contains(addr.Address[strings.LastIndex(addr.Address, "@")+1:], ".") {
		return "", &ValidationError{Field: "email", Message: "is not a valid email address"}
	}

	return strings.ToLower(addr.Address), nil
}
