package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Evaluation is one row of the evaluation history log.
type Evaluation struct {
	// ID is a UUIDv7, so IDs sort by creation time.
	ID string

	// FormulaName is the stored formula that was evaluated, or empty for
	// ad-hoc expressions.
	FormulaName string

	// Expression is the substituted form that was sent to the evaluator.
	Expression string

	Result  float64
	Created time.Time
}

// WriteEvaluation appends a record to the evaluation history.
// Duplicate IDs are silently ignored (idempotent).
func (s *Store) WriteEvaluation(ctx context.Context, ev Evaluation) error {
	var name sql.NullString
	if ev.FormulaName != "" {
		name = sql.NullString{String: ev.FormulaName, Valid: true}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO evaluations (id, formula_name, expression, result, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		ev.ID,
		name,
		ev.Expression,
		ev.Result,
		formatTime(ev.Created),
	)
	if err != nil {
		return fmt.Errorf("write evaluation: %w", err)
	}

	return nil
}

// ListEvaluations returns the most recent history records, newest first.
// A limit <= 0 returns everything.
func (s *Store) ListEvaluations(ctx context.Context, limit int) ([]Evaluation, error) {
	query := `
		SELECT id, formula_name, expression, result, created_at
		FROM evaluations
		ORDER BY seq DESC
	`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}
	defer rows.Close()

	var evals []Evaluation
	for rows.Next() {
		var ev Evaluation
		var name sql.NullString
		var createdAt string

		if err := rows.Scan(&ev.ID, &name, &ev.Expression, &ev.Result, &createdAt); err != nil {
			return nil, fmt.Errorf("list evaluations: %w", err)
		}
		if name.Valid {
			ev.FormulaName = name.String
		}

		created, err := parseTime(createdAt)
		if err != nil {
			return nil, fmt.Errorf("list evaluations: %w", err)
		}
		ev.Created = created

		evals = append(evals, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list evaluations: %w", err)
	}

	return evals, nil
}
