package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

// ProgressRepository persists WordProgress rows and applies the pool
// state machine transactionally.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new progress repository.
func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

func scanProgress(row interface {
	Scan(dest ...interface{}) error
}, userID, wordID uuid.UUID) (*models.WordProgress, error) {
	p := &models.WordProgress{UserID: userID, WordID: wordID}
	err := row.Scan(
		&p.Pool, &p.ReviewStage, &p.NextAvailableTime, &p.LearnedAt,
		&p.CorrectCount, &p.IncorrectCount, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

// GetProgress returns the stored row for (userID, wordID), or nil if the
// word has never been learned (still implicitly P0).
func (r *ProgressRepository) GetProgress(ctx context.Context, userID, wordID uuid.UUID) (*models.WordProgress, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT pool, review_stage, next_available_time, learned_at, correct_count, incorrect_count, created_at, updated_at
		FROM word_progress
		WHERE user_id = $1 AND word_id = $2
	`, userID, wordID)

	p, err := scanProgress(row, userID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, coreerr.Storage("get progress", err)
	}
	return p, nil
}

// ListByPool returns every row the user has in any of the given pools.
func (r *ProgressRepository) ListByPool(ctx context.Context, userID uuid.UUID, pools []pool.Pool) ([]models.WordProgress, error) {
	if len(pools) == 0 {
		return nil, nil
	}
	names := make([]string, len(pools))
	args := make([]interface{}, 0, len(pools)+1)
	args = append(args, userID)
	for i, p := range pools {
		names[i] = fmt.Sprintf("$%d", i+2)
		args = append(args, p.String())
	}
	query := fmt.Sprintf(`
		SELECT word_id, pool, review_stage, next_available_time, learned_at, correct_count, incorrect_count, created_at, updated_at
		FROM word_progress
		WHERE user_id = $1 AND pool IN (%s)
	`, joinPlaceholders(names))

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, coreerr.Storage("list by pool", err)
	}
	defer rows.Close()

	var out []models.WordProgress
	for rows.Next() {
		var p models.WordProgress
		p.UserID = userID
		if err := rows.Scan(&p.WordID, &p.Pool, &p.ReviewStage, &p.NextAvailableTime,
			&p.LearnedAt, &p.CorrectCount, &p.IncorrectCount, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, coreerr.Storage("scan progress row", err)
		}
		out = append(out, p)
	}
	return out, nil
}

func joinPlaceholders(names []string) string {
	out := names[0]
	for _, n := range names[1:] {
		out += ", " + n
	}
	return out
}

// sortedWordIDs returns a copy of ids in ascending string order, so every
// batch operation locks rows in a fixed order and two overlapping batches
// can never deadlock against each other.
func sortedWordIDs(ids []uuid.UUID) []uuid.UUID {
	out := make([]uuid.UUID, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// CompleteLearn inserts the P1 row each listed word gets once Learn has
// shown it, all inside one transaction over one now. A word that already
// has a progress row is left untouched and not counted in the return
// value, making resubmission of the same batch idempotent.
func (r *ProgressRepository) CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID, now time.Time) (int, error) {
	if len(wordIDs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, coreerr.Storage("begin complete learn", err)
	}
	defer tx.Rollback()

	p := pool.CompleteLearn(now)
	row := models.WordProgress{UserID: userID}
	row.ApplyPoolProgress(p)

	moved := 0
	for _, wordID := range sortedWordIDs(wordIDs) {
		res, err := tx.ExecContext(ctx, `
			INSERT INTO word_progress (user_id, word_id, pool, review_stage, next_available_time, learned_at, correct_count, incorrect_count)
			VALUES ($1, $2, $3, $4, $5, $6, 0, 0)
			ON CONFLICT (user_id, word_id) DO NOTHING
		`, userID, wordID, row.Pool, row.ReviewStage, row.NextAvailableTime, row.LearnedAt)
		if err != nil {
			return 0, coreerr.Storage("insert learned word", err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			moved++
		}
	}
	if err := tx.Commit(); err != nil {
		return 0, coreerr.Storage("commit complete learn", err)
	}
	return moved, nil
}

// SubmitAnswer locks every listed row (in ascending word-id order) inside
// one transaction, re-checks eligibility against the shared now, and
// applies the scheduler transition only to rows still eligible. A row a
// concurrent request already consumed comes back Skipped with
// previous_pool == new_pool, so resubmitting a batch twice is a no-op.
func (r *ProgressRepository) SubmitAnswer(ctx context.Context, userID uuid.UUID, answers []models.AnswerInput, now time.Time) ([]models.SubmitResult, error) {
	if len(answers) == 0 {
		return nil, nil
	}

	byWord := make(map[uuid.UUID]bool, len(answers))
	order := make([]uuid.UUID, len(answers))
	for i, a := range answers {
		order[i] = a.WordID
		byWord[a.WordID] = a.Correct
	}

	tx, err := r.db.BeginTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted})
	if err != nil {
		return nil, coreerr.Storage("begin submit answer", err)
	}
	defer tx.Rollback()

	results := make(map[uuid.UUID]models.SubmitResult, len(answers))
	for _, wordID := range sortedWordIDs(order) {
		current, err := lockProgress(ctx, tx, userID, wordID)
		if err != nil {
			return nil, err
		}
		pp := current.ToPoolProgress()
		previousPool := current.Pool
		correct := byWord[wordID]

		if !pool.EligibleForPractice(pp, now) && !pool.EligibleForReviewTest(pp, now) {
			results[wordID] = models.SubmitResult{
				WordID:            wordID,
				PreviousPool:      previousPool,
				NewPool:           previousPool,
				NextAvailableTime: current.NextAvailableTime,
				Skipped:           true,
			}
			continue
		}

		next := pool.Transition(pp, correct, now)
		current.ApplyPoolProgress(next)
		if correct {
			current.CorrectCount++
		} else {
			current.IncorrectCount++
		}
		current.UpdatedAt = now

		if err := writeProgress(ctx, tx, current); err != nil {
			return nil, err
		}
		results[wordID] = models.SubmitResult{
			WordID:            wordID,
			PreviousPool:      previousPool,
			NewPool:           current.Pool,
			NextAvailableTime: current.NextAvailableTime,
		}
	}
	if err := tx.Commit(); err != nil {
		return nil, coreerr.Storage("commit submit answer", err)
	}

	out := make([]models.SubmitResult, len(order))
	for i, wordID := range order {
		out[i] = results[wordID]
	}
	return out, nil
}

// CompleteReview locks every listed row (in ascending word-id order) inside
// one transaction and advances each still in its display stage to the
// practice (test) stage. A row already past display, or not an R-pool row
// at all, is skipped rather than erroring, so re-marking an already-moved
// batch is a no-op.
func (r *ProgressRepository) CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID, now time.Time) (int, error) {
	if len(wordIDs) == 0 {
		return 0, nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, coreerr.Storage("begin complete review", err)
	}
	defer tx.Rollback()

	moved := 0
	for _, wordID := range sortedWordIDs(wordIDs) {
		current, err := lockProgress(ctx, tx, userID, wordID)
		if err != nil {
			return 0, err
		}
		pp := current.ToPoolProgress()
		if !pp.Pool.IsR() || current.ReviewStage != string(pool.StageDisplay) {
			continue
		}

		next := pool.CompleteReviewDisplay(pp, now)
		current.ApplyPoolProgress(next)
		current.UpdatedAt = now

		if err := writeProgress(ctx, tx, current); err != nil {
			return 0, err
		}
		moved++
	}
	if err := tx.Commit(); err != nil {
		return 0, coreerr.Storage("commit complete review", err)
	}
	return moved, nil
}

// lockProgress selects the row FOR UPDATE so two concurrent submissions
// against the same (user, word) pair serialize instead of racing.
func lockProgress(ctx context.Context, tx *sql.Tx, userID, wordID uuid.UUID) (*models.WordProgress, error) {
	row := tx.QueryRowContext(ctx, `
		SELECT pool, review_stage, next_available_time, learned_at, correct_count, incorrect_count, created_at, updated_at
		FROM word_progress
		WHERE user_id = $1 AND word_id = $2
		FOR UPDATE
	`, userID, wordID)

	p, err := scanProgress(row, userID, wordID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, coreerr.UnknownWord(wordID.String())
	}
	if err != nil {
		return nil, coreerr.Storage("lock progress row", err)
	}
	return p, nil
}

func writeProgress(ctx context.Context, tx *sql.Tx, p *models.WordProgress) error {
	_, err := tx.ExecContext(ctx, `
		UPDATE word_progress
		SET pool = $1, review_stage = $2, next_available_time = $3, learned_at = $4,
			correct_count = $5, incorrect_count = $6, updated_at = $7
		WHERE user_id = $8 AND word_id = $9
	`, p.Pool, p.ReviewStage, p.NextAvailableTime, p.LearnedAt,
		p.CorrectCount, p.IncorrectCount, p.UpdatedAt, p.UserID, p.WordID)
	if err != nil {
		return coreerr.Storage("write progress row", err)
	}
	return nil
}

// CountLearnedToday counts how many words the user moved P0->P1 on or
// after dayStart, for the daily Learn admission check.
func (r *ProgressRepository) CountLearnedToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM word_progress
		WHERE user_id = $1 AND learned_at >= $2
	`, userID, dayStart).Scan(&n)
	if err != nil {
		return 0, coreerr.Storage("count learned today", err)
	}
	return n, nil
}

// CountPending counts rows currently sitting in the given pool whose
// next_available_time is still in the future ("upcoming"), used for the P1
// backpressure check. A row already due but not yet practiced doesn't
// count against the cap.
func (r *ProgressRepository) CountPending(ctx context.Context, userID uuid.UUID, p pool.Pool, now time.Time) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM word_progress WHERE user_id = $1 AND pool = $2 AND next_available_time > $3
	`, userID, p.String(), now).Scan(&n)
	if err != nil {
		return 0, coreerr.Storage("count pending", err)
	}
	return n, nil
}

// ResetWord deletes a user's progress on a word, returning it to P0. Used
// by the admin reset operation.
func (r *ProgressRepository) ResetWord(ctx context.Context, userID, wordID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `
		DELETE FROM word_progress WHERE user_id = $1 AND word_id = $2
	`, userID, wordID)
	if err != nil {
		return coreerr.Storage("reset word", err)
	}
	return nil
}
