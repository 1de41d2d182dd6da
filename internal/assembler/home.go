package assembler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

var allPools = []pool.Pool{
	pool.P(0), pool.P(1), pool.P(2), pool.P(3), pool.P(4), pool.P(5), pool.P(6),
	pool.R(1), pool.R(2), pool.R(3), pool.R(4), pool.R(5),
}

// Home aggregates the counters and admission flags the home screen shows:
// today's learn count, how many words are ready for practice/review, a
// per-pool breakdown, and whether each of Learn/Practice/Review would
// currently admit the user.
func (a *Assembler) Home(ctx context.Context, userID uuid.UUID) (*models.HomeStats, error) {
	now := a.Clock()

	learnedToday, err := a.Progress.CountLearnedToday(ctx, userID, pool.DayBoundary(now))
	if err != nil {
		return nil, err
	}

	rows, err := a.Progress.ListByPool(ctx, userID, allPools)
	if err != nil {
		return nil, err
	}

	stats := &models.HomeStats{
		LearnedToday:    learnedToday,
		DailyLearnLimit: pool.DailyLearnLimit,
		PoolCounts:      make(map[string]int),
	}

	horizon := now.Add(24 * time.Hour)
	var p1Count int
	var nextAvailable *time.Time
	for _, row := range rows {
		stats.PoolCounts[row.Pool]++
		pp := row.ToPoolProgress()
		if pool.EligibleForPractice(pp, now) {
			stats.PracticeReady++
		}
		if pool.EligibleForReviewDisplay(pp, now) || pool.EligibleForReviewTest(pp, now) {
			stats.ReviewReady++
		}
		// Upcoming P1: the backpressure rule only counts rows not yet due,
		// not every row sitting in P1.
		if pp.Pool == pool.P(1) && row.NextAvailableTime != nil && row.NextAvailableTime.After(now) {
			p1Count++
		}
		if row.NextAvailableTime != nil && row.NextAvailableTime.After(now) && !row.NextAvailableTime.After(horizon) {
			stats.UpcomingIn24h++
		}
		if row.NextAvailableTime != nil && (nextAvailable == nil || row.NextAvailableTime.Before(*nextAvailable)) {
			nextAvailable = row.NextAvailableTime
		}
	}

	stats.CanLearn = learnedToday < pool.DailyLearnLimit && p1Count < pool.P1BackpressureThreshold
	if stats.CanLearn {
		// Learn also needs a placement and at least one word left in P0.
		c, err := a.Curriculum.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		stats.CanLearn = false
		if c != nil {
			next, err := a.Catalog.NextUnlearnedWords(ctx, userID, c.Language, 1)
			if err != nil {
				return nil, err
			}
			stats.CanLearn = len(next) > 0
		}
	}
	stats.CanPractice = stats.PracticeReady >= pool.PracticeMinEligible
	stats.CanReview = stats.ReviewReady >= pool.ReviewMinEligible

	if !stats.CanLearn && !stats.CanPractice && !stats.CanReview {
		stats.NextAvailableTime = nextAvailable
	}

	return stats, nil
}

// ResetWord clears a user's progress on a single word, returning it to
// the unlearned P0 state. Intended for admin/debug use.
func (a *Assembler) ResetWord(ctx context.Context, userID, wordID uuid.UUID) error {
	return a.Progress.ResetWord(ctx, userID, wordID)
}
