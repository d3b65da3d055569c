package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/formulary/internal/formula"
)

// SaveFormula inserts a formula into the collection.
// Fails with *DuplicateNameError if a formula with the same name exists;
// the stored collection is unchanged in that case.
func (s *Store) SaveFormula(ctx context.Context, f formula.Formula) error {
	varsJSON, err := marshalVariables(f.Variables)
	if err != nil {
		return fmt.Errorf("save formula: %w", err)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO formulas (name, expression, variables, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO NOTHING
	`,
		f.Name,
		f.Expression,
		varsJSON,
		formatTime(f.Created),
	)
	if err != nil {
		return fmt.Errorf("save formula: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("save formula: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return &DuplicateNameError{Name: f.Name}
	}

	return nil
}

// ReplaceFormula inserts a formula, overwriting any existing formula with
// the same name. The seq (listing position) of a replaced formula is kept.
func (s *Store) ReplaceFormula(ctx context.Context, f formula.Formula) error {
	varsJSON, err := marshalVariables(f.Variables)
	if err != nil {
		return fmt.Errorf("replace formula: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO formulas (name, expression, variables, created_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			expression = excluded.expression,
			variables = excluded.variables,
			created_at = excluded.created_at
	`,
		f.Name,
		f.Expression,
		varsJSON,
		formatTime(f.Created),
	)
	if err != nil {
		return fmt.Errorf("replace formula: %w", err)
	}

	return nil
}

// GetFormula reads a single formula by name.
// Fails with *NotFoundError if the name does not exist.
func (s *Store) GetFormula(ctx context.Context, name string) (formula.Formula, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT name, expression, variables, created_at
		FROM formulas
		WHERE name = ?
	`, name)

	f, err := scanFormula(row)
	if errors.Is(err, sql.ErrNoRows) {
		return formula.Formula{}, &NotFoundError{Name: name}
	}
	if err != nil {
		return formula.Formula{}, fmt.Errorf("get formula %q: %w", name, err)
	}
	return f, nil
}

// GetFormulas returns the whole collection in insertion order (seq ASC).
func (s *Store) GetFormulas(ctx context.Context) ([]formula.Formula, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT name, expression, variables, created_at
		FROM formulas
		ORDER BY seq ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("get formulas: %w", err)
	}
	defer rows.Close()

	var formulas []formula.Formula
	for rows.Next() {
		f, err := scanFormula(rows)
		if err != nil {
			return nil, fmt.Errorf("get formulas: %w", err)
		}
		formulas = append(formulas, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get formulas: %w", err)
	}

	return formulas, nil
}

// DeleteFormula removes a formula by name.
// Fails with *NotFoundError if the name does not exist.
func (s *Store) DeleteFormula(ctx context.Context, name string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM formulas WHERE name = ?`, name)
	if err != nil {
		return fmt.Errorf("delete formula %q: %w", name, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete formula %q: rows affected: %w", name, err)
	}
	if rowsAffected == 0 {
		return &NotFoundError{Name: name}
	}

	return nil
}

// scanner covers both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanFormula(row scanner) (formula.Formula, error) {
	var f formula.Formula
	var varsJSON, createdAt string

	if err := row.Scan(&f.Name, &f.Expression, &varsJSON, &createdAt); err != nil {
		return formula.Formula{}, err
	}

	variables, err := unmarshalVariables(varsJSON)
	if err != nil {
		return formula.Formula{}, err
	}
	f.Variables = variables

	created, err := parseTime(createdAt)
	if err != nil {
		return formula.Formula{}, err
	}
	f.Created = created

	return f, nil
}
