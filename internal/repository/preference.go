package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/aliskhannn/quran-fahras-bot/internal/infra/postgres"
)

// SelectedChaptersSlot is the preference slot holding the chosen chapter ids.
const SelectedChaptersSlot = "selected_chapters"

var ErrPreferenceNotFound = errors.New("preference not found")

// PreferenceRepository stores the selected chapter ids of each user in PostgreSQL.
type PreferenceRepository struct {
	db postgres.DBTX
}

// NewPreferenceRepository creates a new PreferenceRepository.
func NewPreferenceRepository(db postgres.DBTX) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

// LoadSelected returns the stored chapter ids of a user.
// Returns ErrPreferenceNotFound if nothing has been stored yet.
func (r *PreferenceRepository) LoadSelected(ctx context.Context, userID int64) ([]int, error) {
	query := `
        SELECT value
        FROM user_preferences
        WHERE user_id = $1 AND slot = $2
    `

	var raw []byte
	err := r.db.QueryRow(ctx, query, userID, SelectedChaptersSlot).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPreferenceNotFound
		}
		return nil, fmt.Errorf("load selected chapters: %w", err)
	}

	return decodeIDs(raw)
}

// SaveSelected replaces the stored chapter ids of a user.
func (r *PreferenceRepository) SaveSelected(ctx context.Context, userID int64, ids []int) error {
	raw, err := encodeIDs(ids)
	if err != nil {
		return err
	}

	query := `
        INSERT INTO user_preferences (user_id, slot, value, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (user_id, slot) DO UPDATE
        SET value = EXCLUDED.value, updated_at = NOW()
    `

	if _, err := r.db.Exec(ctx, query, userID, SelectedChaptersSlot, raw); err != nil {
		return fmt.Errorf("save selected chapters: %w", err)
	}

	return nil
}

func encodeIDs(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	raw, err := json.Marshal(ids)
	if err != nil {
		return nil, fmt.Errorf("encode chapter ids: %w", err)
	}
	return raw, nil
}

func decodeIDs(raw []byte) ([]int, error) {
	var ids []int
	if err := json.Unmarshal(raw, &ids); err != nil {
		return nil, fmt.Errorf("decode chapter ids: %w", err)
	}
	if ids == nil {
		ids = []int{}
	}
	return ids, nil
}
