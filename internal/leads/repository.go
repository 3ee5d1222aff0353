package leads

import (
	"context"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// Repository defines the interface for lead persistence
type Repository interface {
	// SaveContact stores a contact-form submission
	SaveContact(ctx context.Context, lead *models.Lead) error

	// SaveSubscriber stores a newsletter signup. Signing up twice with the
	// same email returns the original record instead of creating a new one.
	SaveSubscriber(ctx context.Context, lead *models.Lead) (*models.Lead, error)

	// Health
	Ping(ctx context.Context) error
	Close() error
}
