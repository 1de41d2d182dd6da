package pool

import "time"

// Batch sizes and thresholds governing session admission. Do not tune
// without updating the scheduler tests that pin these values.
const (
	// LearnBatchSize is the maximum number of P0 words offered per Learn session.
	LearnBatchSize = 5
	// PracticeBatchSize is the maximum number of exercises per Practice session.
	PracticeBatchSize = 5
	// PracticeMinEligible is the minimum eligible candidates required to offer Practice.
	PracticeMinEligible = 3
	// ReviewBatchSize is the maximum number of words per Review session.
	ReviewBatchSize = 5
	// ReviewMinEligible is the minimum eligible candidates required to offer Review.
	ReviewMinEligible = 3
	// ExerciseOptionCount is the number of options (1 correct + distractors) per exercise.
	ExerciseOptionCount = 4

	// DailyLearnLimit is the maximum number of words a user may learn per server-local day.
	DailyLearnLimit = 50
	// P1BackpressureThreshold is the maximum number of upcoming P1 rows before Learn is gated.
	P1BackpressureThreshold = 10
)

// Fixed per-pool waits before a word becomes eligible again.
const (
	WaitP1 = 10 * time.Minute
	WaitP2 = 20 * time.Hour
	WaitP3 = 44 * time.Hour
	WaitP4 = 68 * time.Hour
	WaitP5 = 164 * time.Hour

	// WaitRetry is the shared 10-minute retry used by a P1 wrong answer and
	// any R-pool re-entry.
	WaitRetry = 10 * time.Minute
	// WaitReviewDisplay is the display-to-practice wait inside an R pool.
	WaitReviewDisplay = 20 * time.Hour
)

var waitByPLevel = map[int]time.Duration{
	1: WaitP1,
	2: WaitP2,
	3: WaitP3,
	4: WaitP4,
	5: WaitP5,
}

// Wait returns the fixed time a word must spend in this pool before
// becoming eligible for its next activity. P0 and P6 have no wait (P0 is
// intake-only, P6 is terminal); R-pools wait depends on review_stage and is
// not a function of the pool alone, so callers use WaitRetry /
// WaitReviewDisplay directly for R-pool transitions.
func (p Pool) Wait() time.Duration {
	if p.Kind != KindP {
		return 0
	}
	return waitByPLevel[p.Level]
}
