package postgres

import (
	"context"
	"fmt"
)

// ══════════════════════════════════════════════════════════════════════════════
// MIGRATION 001: CREATE CURRICULUM OBJECTIVES
// ══════════════════════════════════════════════════════════════════════════════

const migration001Up = `
-- Migration: Create curriculum objectives table
-- Version: 001

CREATE TABLE IF NOT EXISTS curriculum_objectives (
    id BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    subject VARCHAR(30) NOT NULL,
    grade VARCHAR(2) NOT NULL,
    week SMALLINT NOT NULL,
    objective TEXT NOT NULL,
    created_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW(),

    CONSTRAINT uq_objective UNIQUE (subject, grade, week),
    CONSTRAINT valid_week CHECK (week >= 1 AND week <= 40),
    CONSTRAINT valid_grade CHECK (grade IN ('9', '10', '11', '12'))
);

CREATE INDEX IF NOT EXISTS idx_objectives_subject_grade
    ON curriculum_objectives(subject, grade);
`

// migrations lists all migrations in order.
var migrations = []struct {
	version int
	name    string
	up      string
}{
	{1, "create_curriculum_objectives", migration001Up},
}

// RunMigrations applies all pending migrations. Versions already recorded in
// schema_migrations are skipped.
func (c *Connection) RunMigrations(ctx context.Context) error {
	pool := c.Pool()

	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			name VARCHAR(100) NOT NULL,
			applied_at TIMESTAMP WITH TIME ZONE NOT NULL DEFAULT NOW()
		)`)
	if err != nil {
		return fmt.Errorf("%w: create schema_migrations: %v", ErrMigrationFailed, err)
	}

	for _, m := range migrations {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`,
			m.version,
		).Scan(&exists)
		if err != nil {
			return fmt.Errorf("%w: check version %d: %v", ErrMigrationFailed, m.version, err)
		}
		if exists {
			continue
		}

		if _, err := pool.Exec(ctx, m.up); err != nil {
			return fmt.Errorf("%w: apply %s: %v", ErrMigrationFailed, m.name, err)
		}
		if _, err := pool.Exec(ctx,
			`INSERT INTO schema_migrations (version, name) VALUES ($1, $2)`,
			m.version, m.name,
		); err != nil {
			return fmt.Errorf("%w: record %s: %v", ErrMigrationFailed, m.name, err)
		}
	}

	return nil
}
