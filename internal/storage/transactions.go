package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// CreateTransaction inserts a transaction and fills in the generated id and
// timestamps.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, t *core.Transaction) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO transactions (user_id, kind, category, amount_cents, tx_date, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		t.UserID, string(t.Kind), t.Category, t.Amount.Cents,
		t.Date.Format(dateLayout), t.Notes, now, now)
	if err != nil {
		return fmt.Errorf("create transaction: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create transaction id: %w", err)
	}
	t.ID = id
	t.CreatedAt = now
	t.UpdatedAt = now
	return nil
}

// GetTransaction retrieves one transaction owned by the given user. A row
// owned by someone else reads as not found.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id, userID int64) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, kind, category, amount_cents, tx_date, notes, created_at, updated_at
		FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	t, err := scanTransaction(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return t, nil
}

// ListTransactionsByUser returns the user's transactions in insertion order.
func (r *SQLiteRepository) ListTransactionsByUser(ctx context.Context, userID int64) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, category, amount_cents, tx_date, notes, created_at, updated_at
		FROM transactions WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return out, nil
}

// ListAllTransactions returns every transaction across all users, in
// insertion order. Used by the periodic export.
func (r *SQLiteRepository) ListAllTransactions(ctx context.Context) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, kind, category, amount_cents, tx_date, notes, created_at, updated_at
		FROM transactions ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	return out, nil
}

// UpdateTransaction rewrites a transaction's mutable fields.
func (r *SQLiteRepository) UpdateTransaction(ctx context.Context, t *core.Transaction) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET kind = ?, category = ?, amount_cents = ?, tx_date = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		string(t.Kind), t.Category, t.Amount.Cents, t.Date.Format(dateLayout),
		t.Notes, now, t.ID, t.UserID)
	if err != nil {
		return fmt.Errorf("update transaction: %w", err)
	}
	if err := requireRow(res, "update transaction"); err != nil {
		return err
	}
	t.UpdatedAt = now
	return nil
}

// DeleteTransaction removes a transaction owned by the given user.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return requireRow(res, "delete transaction")
}

// SumExpensesByCategory totals the user's expense transactions for one
// category. This is the authoritative source for a budget's spent amount.
func (r *SQLiteRepository) SumExpensesByCategory(ctx context.Context, userID int64, category string) (int64, error) {
	var cents int64
	err := r.db.QueryRowContext(ctx, `
		SELECT COALESCE(SUM(amount_cents), 0)
		FROM transactions WHERE user_id = ? AND category = ? AND kind = 'expense'`,
		userID, category).Scan(&cents)
	if err != nil {
		return 0, fmt.Errorf("sum expenses by category: %w", err)
	}
	return cents, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTransaction(row rowScanner) (*core.Transaction, error) {
	var (
		t       core.Transaction
		kind    string
		dateStr string
	)
	err := row.Scan(&t.ID, &t.UserID, &kind, &t.Category, &t.Amount.Cents,
		&dateStr, &t.Notes, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	t.Kind = core.Kind(kind)
	parsed, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("parse tx date %q: %w", dateStr, err)
	}
	t.Date = core.Date{Time: parsed}
	return &t, nil
}
