package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS user_preferences (
    user_id    INTEGER NOT NULL,
    slot       TEXT    NOT NULL,
    value      TEXT    NOT NULL,
    updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (user_id, slot)
);
`

// SQLitePreferenceRepository stores the selected chapter ids in a local SQLite file.
type SQLitePreferenceRepository struct {
	db *sql.DB
}

// NewSQLitePreferenceRepository opens (or creates) the database at path.
func NewSQLitePreferenceRepository(path string) (*SQLitePreferenceRepository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create sqlite schema: %w", err)
	}

	return &SQLitePreferenceRepository{db: db}, nil
}

func (r *SQLitePreferenceRepository) Close() error {
	return r.db.Close()
}

func (r *SQLitePreferenceRepository) LoadSelected(ctx context.Context, userID int64) ([]int, error) {
	var raw string
	err := r.db.QueryRowContext(ctx,
		"SELECT value FROM user_preferences WHERE user_id = ? AND slot = ?",
		userID, SelectedChaptersSlot,
	).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrPreferenceNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load selected chapters: %w", err)
	}

	return decodeIDs([]byte(raw))
}

func (r *SQLitePreferenceRepository) SaveSelected(ctx context.Context, userID int64, ids []int) error {
	raw, err := encodeIDs(ids)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO user_preferences (user_id, slot, value, updated_at)
		VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT (user_id, slot) DO UPDATE
		SET value = excluded.value, updated_at = CURRENT_TIMESTAMP
	`, userID, SelectedChaptersSlot, string(raw))
	if err != nil {
		return fmt.Errorf("save selected chapters: %w", err)
	}

	return nil
}
