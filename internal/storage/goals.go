package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"fintrack/internal/core"
)

// CreateGoal inserts a goal and fills in the generated id and timestamps.
func (r *SQLiteRepository) CreateGoal(ctx context.Context, g *core.Goal) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO goals (user_id, name, target_cents, current_cents, deadline, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.UserID, g.Name, g.Target.Cents, g.Current.Cents,
		g.Deadline.Format(dateLayout), string(g.Status), g.Notes, now, now)
	if err != nil {
		return fmt.Errorf("create goal: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create goal id: %w", err)
	}
	g.ID = id
	g.CreatedAt = now
	g.UpdatedAt = now
	return nil
}

// GetGoal retrieves one goal owned by the given user.
func (r *SQLiteRepository) GetGoal(ctx context.Context, id, userID int64) (*core.Goal, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, user_id, name, target_cents, current_cents, deadline, status, notes, created_at, updated_at
		FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get goal: %w", err)
	}
	return g, nil
}

// ListGoalsByUser returns the user's goals in insertion order.
func (r *SQLiteRepository) ListGoalsByUser(ctx context.Context, userID int64) ([]core.Goal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, user_id, name, target_cents, current_cents, deadline, status, notes, created_at, updated_at
		FROM goals WHERE user_id = ? ORDER BY id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	defer rows.Close()

	var out []core.Goal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan goal: %w", err)
		}
		out = append(out, *g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}
	return out, nil
}

// UpdateGoal rewrites a goal's mutable fields.
func (r *SQLiteRepository) UpdateGoal(ctx context.Context, g *core.Goal) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		UPDATE goals
		SET name = ?, target_cents = ?, current_cents = ?, deadline = ?, status = ?, notes = ?, updated_at = ?
		WHERE id = ? AND user_id = ?`,
		g.Name, g.Target.Cents, g.Current.Cents, g.Deadline.Format(dateLayout),
		string(g.Status), g.Notes, now, g.ID, g.UserID)
	if err != nil {
		return fmt.Errorf("update goal: %w", err)
	}
	if err := requireRow(res, "update goal"); err != nil {
		return err
	}
	g.UpdatedAt = now
	return nil
}

// DeleteGoal removes a goal owned by the given user.
func (r *SQLiteRepository) DeleteGoal(ctx context.Context, id, userID int64) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM goals WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete goal: %w", err)
	}
	return requireRow(res, "delete goal")
}

func scanGoal(row rowScanner) (*core.Goal, error) {
	var (
		g           core.Goal
		status      string
		deadlineStr string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &g.Target.Cents, &g.Current.Cents,
		&deadlineStr, &status, &g.Notes, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Status = core.GoalStatus(status)
	parsed, err := time.Parse(dateLayout, deadlineStr)
	if err != nil {
		return nil, fmt.Errorf("parse goal deadline %q: %w", deadlineStr, err)
	}
	g.Deadline = core.Date{Time: parsed}
	return &g, nil
}
