package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// CreateBudget inserts a budget and fills in the generated id and timestamps.
func (r *SQLiteRepository) CreateBudget(ctx context.Context, b *core.Budget) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (user_id, category, title, amount_cents, spent_cents, percent_used, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		b.UserID, b.Category, b.Title, b.Amount.Cents, b.Spent.Cents, b.PercentUsed, now, now)
	if err != nil {
		return fmt.Errorf("create budget: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create budget id: %w", err)
	}
	b.ID = id
	b.CreatedAt = now
	b.UpdatedAt = now
	return nil
}

// GetBudget retrieves one budget owned by the given user.
func (r *SQLiteRepository) GetBudget(ctx context.Context, id, userID int64) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, category, title, amount_cents, spent_cents, percent_used, created_at, updated_at
		FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBudget(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

// ListBudgetsByUser returns the user's budgets in insertion order.
func (r *SQLiteRepository) ListBudgetsByUser(ctx context.Context, userID int64) ([]core.Budget, error) {
	return r.listBudgets(ctx, `
		SELECT id, user_id, category, title, amount_cents, spent_cents, percent_used, created_at, updated_at
		FROM budgets WHERE user_id = ? ORDER BY id`, userID)
}

// ListBudgetsByCategory returns the user's budgets for one category, for
// spent recalculation after an expense write.
func (r *SQLiteRepository) ListBudgetsByCategory(ctx context.Context, userID int64, category string) ([]core.Budget, error) {
	return r.listBudgets(ctx, `
		SELECT id, user_id, category, title, amount_cents, spent_cents, percent_used, created_at, updated_at
		FROM budgets WHERE user_id = ? AND category = ? ORDER BY id`, userID, category)
}

func (r *SQLiteRepository) listBudgets(ctx context.Context, query string, args ...any) ([]core.Budget, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, *b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	return out, nil
}

// UpdateBudget rewrites a budget's mutable fields.
func (r *SQLiteRepository) UpdateBudget(ctx context.Context, b *core.Budget) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets
		SET category = ?, title = ?, amount_cents = ?, spent_cents = ?, percent_used = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		b.Category, b.Title, b.Amount.Cents, b.Spent.Cents, b.PercentUsed, now, b.ID, b.UserID)
	if err != nil {
		return fmt.Errorf("update budget: %w", err)
	}
	if err := requireRow(res, "update budget"); err != nil {
		return err
	}
	b.UpdatedAt = now
	return nil
}

// UpdateBudgetSpent rewrites only the derived spent fields, used by the
// recalculation path.
func (r *SQLiteRepository) UpdateBudgetSpent(ctx context.Context, id int64, spent core.Money, percentUsed float64) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE budgets SET spent_cents = ?, percent_used = ?, updated_at = ? WHERE id = ?`,
		spent.Cents, percentUsed, time.Now().UTC(), id)
	if err != nil {
		return fmt.Errorf("update budget spent: %w", err)
	}
	return requireRow(res, "update budget spent")
}

// DeleteBudget removes a budget owned by the given user.
func (r *SQLiteRepository) DeleteBudget(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete budget: %w", err)
	}
	return requireRow(res, "delete budget")
}

func scanBudget(row rowScanner) (*core.Budget, error) {
	var b core.Budget
	err := row.Scan(&b.ID, &b.UserID, &b.Category, &b.Title, &b.Amount.Cents,
		&b.Spent.Cents, &b.PercentUsed, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &b, nil
}
