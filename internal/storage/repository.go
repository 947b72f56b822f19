// Package storage persists the domain entities in SQLite.
package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"fintrack/internal/core"

	_ "modernc.org/sqlite"
)

var (
	// ErrNotFound signals that no row matched the id (and owner) given.
	ErrNotFound = errors.New("record not found")
	// ErrDuplicate signals a uniqueness violation (username or email taken).
	ErrDuplicate = errors.New("duplicate record")
)

const dateLayout = "2006-01-02"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" && dbPath != ":memory:" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// A single connection avoids SQLITE_BUSY on concurrent writes and keeps
	// an in-memory database from splitting across pooled connections.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping reports whether the database is reachable. Used by readiness checks.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

// CreateUser inserts a new user. Uniqueness of username and email is
// enforced by the schema and surfaced as ErrDuplicate.
func (r *SQLiteRepository) CreateUser(ctx context.Context, user *core.User) error {
	now := time.Now().UTC()
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO users (username, email, password_hash, refresh_token, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		user.Username, user.Email, user.PasswordHash, user.RefreshToken, now, now)
	if err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("create user id: %w", err)
	}
	user.ID = id
	user.CreatedAt = now
	user.UpdatedAt = now
	return nil
}

// FindUserByEmail retrieves a user by email.
func (r *SQLiteRepository) FindUserByEmail(ctx context.Context, email string) (*core.User, error) {
	return r.findUser(ctx, "email = ?", email)
}

// FindUserByID retrieves a user by id.
func (r *SQLiteRepository) FindUserByID(ctx context.Context, id int64) (*core.User, error) {
	return r.findUser(ctx, "id = ?", id)
}

func (r *SQLiteRepository) findUser(ctx context.Context, where string, arg any) (*core.User, error) {
	user := &core.User{}
	err := r.db.QueryRowContext(ctx, `
		SELECT id, username, email, password_hash, refresh_token, created_at, updated_at
		FROM users WHERE `+where, arg).
		Scan(&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.RefreshToken, &user.CreatedAt, &user.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// UpdateRefreshToken replaces the stored refresh token; an empty token
// revokes it.
func (r *SQLiteRepository) UpdateRefreshToken(ctx context.Context, userID int64, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET refresh_token = ?, updated_at = ? WHERE id = ?`,
		token, time.Now().UTC(), userID)
	if err != nil {
		return fmt.Errorf("update refresh token: %w", err)
	}
	return requireRow(res, "update refresh token")
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// requireRow maps a zero-row update/delete to ErrNotFound.
func requireRow(res sql.Result, op string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
