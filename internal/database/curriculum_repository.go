package database

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
)

// CurriculumRepository reads and seeds a user's UserCurriculum row.
type CurriculumRepository struct {
	db *sql.DB
}

// NewCurriculumRepository creates a new curriculum repository.
func NewCurriculumRepository(db *sql.DB) *CurriculumRepository {
	return &CurriculumRepository{db: db}
}

// Get returns the user's curriculum row, or nil if placement hasn't run.
func (r *CurriculumRepository) Get(ctx context.Context, userID uuid.UUID) (*models.UserCurriculum, error) {
	var c models.UserCurriculum
	c.UserID = userID
	err := r.db.QueryRowContext(ctx, `
		SELECT language, level, created_at FROM user_curricula WHERE user_id = $1
	`, userID).Scan(&c.Language, &c.Level, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, coreerr.Storage("get curriculum", err)
	}
	return &c, nil
}

// Upsert seeds or replaces a user's curriculum row.
func (r *CurriculumRepository) Upsert(ctx context.Context, c models.UserCurriculum) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO user_curricula (user_id, language, level, created_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (user_id) DO UPDATE SET language = $2, level = $3
	`, c.UserID, c.Language, c.Level)
	if err != nil {
		return coreerr.Storage("upsert curriculum", err)
	}
	return nil
}
