package models

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// UserCurriculum pins a user to the language and starting level their
// Learn/Practice/Review sessions draw words from. It is seeded once, by
// the placement flow, and is otherwise out of scope for this package to
// mutate (curriculum re-assignment is rich curriculum logic, left to the
// caller).
type UserCurriculum struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Language  string    `json:"language" db:"language"`
	Level     int       `json:"level" db:"level"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// PlacementAnswer is one answer submitted during the placement quiz.
type PlacementAnswer struct {
	WordID  uuid.UUID `json:"word_id" binding:"required"`
	Correct bool      `json:"correct"`
}

// PlacementRequest carries every answer from a completed placement quiz.
type PlacementRequest struct {
	Language string            `json:"language" binding:"required"`
	Answers  []PlacementAnswer `json:"answers" binding:"required"`
}

// PlacementResult is the curriculum the placement quiz produced.
type PlacementResult struct {
	Language string `json:"language"`
	Level    int    `json:"level"`
}

// CurriculumRepository reads and seeds a user's UserCurriculum row.
type CurriculumRepository interface {
	Get(ctx context.Context, userID uuid.UUID) (*UserCurriculum, error)
	Upsert(ctx context.Context, c UserCurriculum) error
}
