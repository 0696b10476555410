package store

import (
	"context"
	"errors"
	"fmt"
)

var schemaStatements = map[string][]string{
	driverLibsql: {
		`CREATE TABLE IF NOT EXISTS items (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			description TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_type ON items(type);`,
	},
	driverPostgres: {
		`CREATE TABLE IF NOT EXISTS items (
			id BIGSERIAL PRIMARY KEY,
			type TEXT NOT NULL,
			description TEXT NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_items_type ON items(type);`,
	},
}

// Migrate ensures the required database tables exist.
func (s *Store) Migrate(ctx context.Context) error {
	if s == nil || s.DB == nil {
		return errors.New("store is not initialized")
	}

	if ctx == nil {
		ctx = context.Background()
	}

	statements, ok := schemaStatements[s.driver]
	if !ok {
		return fmt.Errorf("no schema for store driver: %s", s.driver)
	}

	for _, stmt := range statements {
		if _, err := s.DB.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("store migration failed: %w", err)
		}
	}

	return nil
}
