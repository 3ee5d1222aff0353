package leads

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
)

const migrationsTable = "schema_migrations"

type migration struct {
	Name string
	SQL  string
}

// Migrate brings the lead tables up to date with the .sql files in dir.
// Files run in name order and each one commits together with its
// bookkeeping row.
func (r *PostgresRepository) Migrate(ctx context.Context, dir string) error {
	if _, err := r.pool.Exec(ctx, `CREATE TABLE IF NOT EXISTS `+migrationsTable+` (
		name VARCHAR(255) PRIMARY KEY,
		applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
	)`); err != nil {
		return fmt.Errorf("create %s: %w", migrationsTable, err)
	}

	rows, _ := r.pool.Query(ctx, `SELECT name FROM `+migrationsTable)
	names, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return fmt.Errorf("list applied migrations: %w", err)
	}
	applied := make(map[string]bool, len(names))
	for _, name := range names {
		applied[name] = true
	}

	pending, err := pendingMigrations(dir, applied)
	if err != nil {
		return err
	}
	if len(pending) == 0 {
		slog.Info("lead schema up to date", "applied", len(applied))
		return nil
	}

	for _, m := range pending {
		err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
			if _, err := tx.Exec(ctx, m.SQL); err != nil {
				return err
			}
			_, err := tx.Exec(ctx, `INSERT INTO `+migrationsTable+` (name) VALUES ($1)`, m.Name)
			return err
		})
		if err != nil {
			return fmt.Errorf("migration %s: %w", m.Name, err)
		}
		slog.Info("applied lead migration", "migration", m.Name)
	}

	return nil
}

// pendingMigrations reads the .sql files in dir that are not in applied,
// sorted by name
func pendingMigrations(dir string, applied map[string]bool) ([]migration, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read migrations directory: %w", err)
	}

	var pending []migration
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".sql" || applied[name] {
			continue
		}
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		if strings.TrimSpace(string(data)) == "" {
			return nil, fmt.Errorf("migration %s is empty", name)
		}
		pending = append(pending, migration{Name: name, SQL: string(data)})
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].Name < pending[j].Name })

	return pending, nil
}
