package assembler

import (
	"context"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

// StartLearn admits the user into a Learn session if the daily quota and
// the P1 backpressure threshold both allow it, then returns a batch of
// unlearned words with their reading_lv1 exercises.
func (a *Assembler) StartLearn(ctx context.Context, userID uuid.UUID) (*models.LearnSession, error) {
	c, err := a.curriculumFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := a.Clock()
	learnedToday, err := a.Progress.CountLearnedToday(ctx, userID, pool.DayBoundary(now))
	if err != nil {
		return nil, err
	}
	if learnedToday >= pool.DailyLearnLimit {
		return nil, coreerr.PreconditionUnmet(coreerr.ReasonDailyLimitReached, "daily learn limit reached (%d)", pool.DailyLearnLimit)
	}

	p1Count, err := a.Progress.CountPending(ctx, userID, pool.P(1), now)
	if err != nil {
		return nil, err
	}
	if p1Count >= pool.P1BackpressureThreshold {
		return nil, coreerr.PreconditionUnmet(coreerr.ReasonP1PoolFull, "too many words already waiting in P1 (%d)", p1Count)
	}

	remaining := pool.DailyLearnLimit - learnedToday
	limit := pool.LearnBatchSize
	if remaining < limit {
		limit = remaining
	}

	words, err := a.Catalog.NextUnlearnedWords(ctx, userID, c.Language, limit)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, coreerr.PreconditionUnmet(coreerr.ReasonNoWordsInP0, "no unlearned words remain for language %s", c.Language)
	}

	session := &models.LearnSession{Available: true, Words: words}
	for _, w := range words {
		ex, err := a.exerciseFor(ctx, c.Language, w, pool.ExerciseReadingLv1)
		if err != nil {
			return nil, err
		}
		session.Exercises = append(session.Exercises, ex)
	}
	return session, nil
}

// CompleteLearn records that a batch of words has been shown during
// Learn, moving each P0 -> P1 over a single sampled now. Words already
// learned are left untouched; the returned words_moved counts only rows
// actually inserted.
func (a *Assembler) CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (*models.LearnCompleteResponse, error) {
	now := a.Clock()
	wordsMoved, err := a.Progress.CompleteLearn(ctx, userID, wordIDs, now)
	if err != nil {
		return nil, err
	}
	todayLearned, err := a.Progress.CountLearnedToday(ctx, userID, pool.DayBoundary(now))
	if err != nil {
		return nil, err
	}
	return &models.LearnCompleteResponse{WordsMoved: wordsMoved, TodayLearned: todayLearned}, nil
}
