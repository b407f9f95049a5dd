package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/rmoreira/quizforge/internal/dbx"
)

// tokenKey is the fixed name the access token is stored under.
const tokenKey = "access_token"

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Load(ctx context.Context) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM credentials WHERE key = ?`, tokenKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load credential: %w", err)
	}
	return value, nil
}

// Save replaces the stored token. The delete+insert runs in one transaction
// so a reader never observes a half-written credential.
func (r *SQLiteRepository) Save(ctx context.Context, token string) error {
	return dbx.WithTx(ctx, r.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, tokenKey); err != nil {
			return fmt.Errorf("failed to replace credential: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO credentials (key, value) VALUES (?, ?)`, tokenKey, token); err != nil {
			return fmt.Errorf("failed to save credential: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE key = ?`, tokenKey); err != nil {
		return fmt.Errorf("failed to delete credential: %w", err)
	}
	return nil
}
