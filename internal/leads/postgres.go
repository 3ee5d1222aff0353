package leads

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// PostgresRepository implements Repository using PostgreSQL
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// PostgresConfig holds PostgreSQL connection configuration
type PostgresConfig struct {
	DSN          string
	MaxOpenConns int32
	MaxIdleConns int32
	MaxLifetime  time.Duration
}

// NewPostgresRepository creates a new PostgreSQL repository
func NewPostgresRepository(ctx context.Context, cfg PostgresConfig) (*PostgresRepository, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to parse DSN: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		poolConfig.MaxConns = cfg.MaxOpenConns
	} else {
		poolConfig.MaxConns = 10
	}

	if cfg.MaxIdleConns > 0 {
		poolConfig.MinConns = cfg.MaxIdleConns
	}

	if cfg.MaxLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxLifetime
	} else {
		poolConfig.MaxConnLifetime = 30 * time.Minute
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Test connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresRepository{pool: pool}, nil
}

// Ping checks database connectivity
func (r *PostgresRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

// Close closes the database connection pool
func (r *PostgresRepository) Close() error {
	r.pool.Close()
	return nil
}

// SaveContact inserts a contact request
func (r *PostgresRepository) SaveContact(ctx context.Context, lead *models.Lead) error {
	metadataJSON, err := json.Marshal(lead.Metadata)
	if err != nil {
		return fmt.Errorf("failed to marshal metadata: %w", err)
	}

	query := `
		INSERT INTO contact_requests (id, name, email, company, service, message, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = r.pool.Exec(ctx, query,
		lead.ID,
		lead.Name,
		lead.Email,
		nullString(lead.Company),
		nullString(lead.Service),
		lead.Message,
		metadataJSON,
		lead.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save contact request: %w", err)
	}

	return nil
}

// SaveSubscriber inserts a newsletter subscriber, returning the existing row
// when the email is already subscribed
func (r *PostgresRepository) SaveSubscriber(ctx context.Context, lead *models.Lead) (*models.Lead, error) {
	query := `
		INSERT INTO newsletter_subscribers (id, email, name, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (email) DO UPDATE SET email = EXCLUDED.email
		RETURNING id, email, name, created_at
	`

	var saved models.Lead
	var name sql.NullString

	err := r.pool.QueryRow(ctx, query,
		lead.ID,
		lead.Email,
		nullString(lead.Name),
		lead.CreatedAt,
	).Scan(&saved.ID, &saved.Email, &name, &saved.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to save subscriber: %w", err)
	}

	saved.Source = models.SourceNewsletter
	saved.Name = name.String

	return &saved, nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
