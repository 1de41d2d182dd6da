package models

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/pool"
)

// WordProgress is the stored row backing one (user, word) pair. It carries
// more bookkeeping than the pure pool.Progress the scheduler operates on;
// ToPoolProgress/ApplyPoolProgress bridge the two.
type WordProgress struct {
	UserID            uuid.UUID   `json:"user_id" db:"user_id"`
	WordID            uuid.UUID   `json:"word_id" db:"word_id"`
	Pool              string      `json:"pool" db:"pool"` // "P0".."P6", "R1".."R5"
	ReviewStage       string      `json:"review_stage,omitempty" db:"review_stage"`
	NextAvailableTime *time.Time  `json:"next_available_time,omitempty" db:"next_available_time"`
	LearnedAt         *time.Time  `json:"learned_at,omitempty" db:"learned_at"`
	CorrectCount      int         `json:"correct_count" db:"correct_count"`
	IncorrectCount    int         `json:"incorrect_count" db:"incorrect_count"`
	CreatedAt         time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time   `json:"updated_at" db:"updated_at"`
}

// ToPoolProgress projects the stored row onto the scheduler's pure type.
func (w WordProgress) ToPoolProgress() pool.Progress {
	return pool.Progress{
		Pool:              ParsePool(w.Pool),
		ReviewStage:       pool.ReviewStage(w.ReviewStage),
		NextAvailableTime: w.NextAvailableTime,
		LearnedAt:         w.LearnedAt,
	}
}

// ApplyPoolProgress copies a scheduler result back onto the stored row,
// leaving the counters for the caller to bump.
func (w *WordProgress) ApplyPoolProgress(p pool.Progress) {
	w.Pool = p.Pool.String()
	w.ReviewStage = string(p.ReviewStage)
	w.NextAvailableTime = p.NextAvailableTime
	w.LearnedAt = p.LearnedAt
}

// ParsePool parses the compact "P3" / "R2" form stored in the database
// back into a pool.Pool. Panics on malformed input since it is only ever
// fed values this package itself wrote.
func ParsePool(s string) pool.Pool {
	if len(s) < 2 {
		panic("models: malformed pool string " + s)
	}
	level := int(s[1] - '0')
	if len(s) == 3 {
		level = level*10 + int(s[2]-'0')
	}
	switch s[0] {
	case 'P':
		return pool.P(level)
	case 'R':
		return pool.R(level)
	default:
		panic("models: malformed pool string " + s)
	}
}

// ProgressRepository persists and mutates WordProgress rows. The batch
// operations (CompleteLearn, SubmitAnswer, CompleteReview) lock every
// affected row inside a single transaction, in ascending word-id order, so
// concurrent submissions against the same user cannot interleave and a
// whole batch commits or rolls back together against one sampled now.
type ProgressRepository interface {
	GetProgress(ctx context.Context, userID, wordID uuid.UUID) (*WordProgress, error)
	ListByPool(ctx context.Context, userID uuid.UUID, pools []pool.Pool) ([]WordProgress, error)
	// CompleteLearn inserts a P1 row for each of wordIDs not already
	// present, returning the count actually inserted (idempotent per word).
	CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID, now time.Time) (int, error)
	// SubmitAnswer applies the scheduler transition for each answer whose
	// row is still eligible at now; ineligible rows come back with
	// SubmitResult.Skipped set and an unchanged pool/next_available_time.
	SubmitAnswer(ctx context.Context, userID uuid.UUID, answers []AnswerInput, now time.Time) ([]SubmitResult, error)
	// CompleteReview advances each listed R-pool row from display to
	// practice stage, returning the count actually advanced (idempotent per
	// word: a row already past display is skipped, not an error).
	CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID, now time.Time) (int, error)
	CountLearnedToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error)
	// CountPending counts rows in pool p whose next_available_time is still
	// in the future relative to now ("upcoming"), used for the P1
	// backpressure check.
	CountPending(ctx context.Context, userID uuid.UUID, p pool.Pool, now time.Time) (int, error)
	ResetWord(ctx context.Context, userID, wordID uuid.UUID) error
}
