package postgres

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
	"github.com/kayrademirkan/mebtg/internal/domain/shared"
	"github.com/kayrademirkan/mebtg/pkg/retry"
)

// CurriculumSource loads the objective table from PostgreSQL. It implements
// curriculum.Source; the read happens at startup and on scheduled refresh,
// never per request.
type CurriculumSource struct {
	conn         *Connection
	retrier      *retry.Retrier
	queryTimeout time.Duration
}

// NewCurriculumSource creates a source over an established connection.
// Transient load failures are retried with backoff, since Load runs at
// startup when the database may still be warming up. A queryTimeout of 0
// defaults to 30 seconds.
func NewCurriculumSource(conn *Connection, queryTimeout time.Duration) *CurriculumSource {
	if queryTimeout <= 0 {
		queryTimeout = 30 * time.Second
	}
	return &CurriculumSource{
		conn:         conn,
		queryTimeout: queryTimeout,
		retrier: retry.New(
			retry.WithMaxAttempts(3),
			retry.WithInitialDelay(500*time.Millisecond),
			retry.WithMaxDelay(5*time.Second),
		),
	}
}

// Load reads every objective row into a fresh immutable table.
func (s *CurriculumSource) Load(ctx context.Context) (*curriculum.Table, error) {
	var table *curriculum.Table

	err := s.retrier.Do(ctx, func(ctx context.Context) error {
		loaded, err := s.loadOnce(ctx)
		if err != nil {
			return err
		}
		table = loaded
		return nil
	})
	if err != nil {
		return nil, shared.WrapError("curriculum", "Load", shared.ErrDataUnavailable,
			"read objectives from postgres", err)
	}

	return table, nil
}

func (s *CurriculumSource) loadOnce(ctx context.Context) (*curriculum.Table, error) {
	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	rows, err := s.conn.Pool().Query(ctx,
		`SELECT subject, grade, week, objective
		   FROM curriculum_objectives
		  ORDER BY subject, grade, week`)
	if err != nil {
		return nil, fmt.Errorf("query objectives: %w", err)
	}
	defer rows.Close()

	raw := make(map[string]map[string]map[string]string)
	for rows.Next() {
		var (
			subject   string
			grade     string
			week      int
			objective string
		)
		if err := rows.Scan(&subject, &grade, &week, &objective); err != nil {
			return nil, retry.Permanent(shared.WrapError("curriculum", "Load",
				shared.ErrDataMalformed, "scan objective row", err))
		}

		addObjective(raw, subject, grade, week, objective)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate objectives: %w", err)
	}

	return curriculum.NewTable(raw), nil
}

// addObjective inserts one row into the nested shape curriculum.NewTable
// expects: subject → grade → week (as a string key) → objective.
func addObjective(raw map[string]map[string]map[string]string, subject, grade string, week int, objective string) {
	grades, ok := raw[subject]
	if !ok {
		grades = make(map[string]map[string]string)
		raw[subject] = grades
	}
	weeks, ok := grades[grade]
	if !ok {
		weeks = make(map[string]string)
		grades[grade] = weeks
	}
	weeks[strconv.Itoa(week)] = objective
}
