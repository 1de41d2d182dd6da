package models

import (
	"time"

	"github.com/google/uuid"
)

// Option is one answer choice presented with an exercise.
type Option struct {
	WordID uuid.UUID `json:"word_id"`
	Text   string    `json:"text"`
}

// Exercise is a single question inside a Learn, Practice, or Review
// session, built from a Word plus a set of distractor Options.
type Exercise struct {
	WordID       uuid.UUID `json:"word_id"`
	Type         string    `json:"type"`
	Prompt       string    `json:"prompt"`
	AudioURL     *string   `json:"audio_url,omitempty"`
	ImageURL     *string   `json:"image_url,omitempty"`
	Options      []Option  `json:"options,omitempty"`
	CorrectIndex int       `json:"correct_index,omitempty"`
}

// AnswerInput is one submitted answer, shared by the practice and review
// submit paths since both transition a row through the same scheduler.
type AnswerInput struct {
	WordID  uuid.UUID
	Correct bool
}

// SubmitResult is one row's outcome from a submit_practice/submit_review
// batch. Skipped marks a row the batch found ineligible at transaction-start
// now (a raced resubmission); it is excluded from JSON since clients only
// care that previous_pool == new_pool, not why.
type SubmitResult struct {
	WordID            uuid.UUID  `json:"word_id"`
	PreviousPool      string     `json:"previous_pool"`
	NewPool           string     `json:"new_pool"`
	NextAvailableTime *time.Time `json:"next_available_time,omitempty"`
	Skipped           bool       `json:"-"`
}

// LearnSession is the response body for GET /api/v1/learn/start. A failed
// admission precondition sets Available=false and Reason instead of
// populating Words/Exercises.
type LearnSession struct {
	Available bool       `json:"available"`
	Reason    string     `json:"reason,omitempty"`
	Words     []Word     `json:"words,omitempty"`
	Exercises []Exercise `json:"exercises,omitempty"`
}

// LearnCompleteRequest marks a batch of words as shown during Learn.
type LearnCompleteRequest struct {
	WordIDs []uuid.UUID `json:"word_ids" binding:"required"`
}

// LearnCompleteResponse reports how many words actually moved P0 -> P1
// (submitting an already-learned word is a no-op and isn't counted) plus
// the day's running total.
type LearnCompleteResponse struct {
	WordsMoved   int `json:"words_moved"`
	TodayLearned int `json:"today_learned"`
}

// PracticeSession is the response body for GET /api/v1/practice/start.
// ExerciseOrder carries the pool-to-exercise-type mapping used, in the
// same order as Exercises.
type PracticeSession struct {
	Available     bool       `json:"available"`
	Reason        string     `json:"reason,omitempty"`
	Exercises     []Exercise `json:"exercises,omitempty"`
	ExerciseOrder []string   `json:"exercise_order,omitempty"`
}

// PracticeAnswer reports the result of one practice exercise.
type PracticeAnswer struct {
	WordID  uuid.UUID `json:"word_id" binding:"required"`
	Correct bool      `json:"correct"`
}

// PracticeSubmitRequest carries a batch of practice answers, applied as
// one transaction over a single sampled now.
type PracticeSubmitRequest struct {
	Answers []PracticeAnswer `json:"answers" binding:"required"`
}

// PracticeSubmitSummary aggregates a submit_practice batch.
type PracticeSubmitSummary struct {
	Correct   int `json:"correct"`
	Incorrect int `json:"incorrect"`
}

// PracticeSubmitResponse is the response body for POST /api/v1/practice/submit.
type PracticeSubmitResponse struct {
	Results []SubmitResult        `json:"results"`
	Summary PracticeSubmitSummary `json:"summary"`
}

// ReviewSession is the response body for GET /api/v1/review/start. Phase
// indicates whether the batch is in its display or test stage.
type ReviewSession struct {
	Available bool       `json:"available"`
	Reason    string     `json:"reason,omitempty"`
	Phase     string     `json:"phase,omitempty"`
	Words     []Word     `json:"words,omitempty"`     // phase == "display"
	Exercises []Exercise `json:"exercises,omitempty"` // phase == "test"
}

// ReviewCompleteRequest marks a batch of R-pool words as shown during a
// review display phase.
type ReviewCompleteRequest struct {
	WordIDs []uuid.UUID `json:"word_ids" binding:"required"`
}

// ReviewCompleteResponse reports how many words moved from display to
// practice stage, and when they'll next be eligible for their test.
type ReviewCompleteResponse struct {
	WordsCompleted   int        `json:"words_completed"`
	NextPracticeTime *time.Time `json:"next_practice_time,omitempty"`
}

// ReviewAnswer reports the result of one review test exercise.
type ReviewAnswer struct {
	WordID  uuid.UUID `json:"word_id" binding:"required"`
	Correct bool      `json:"correct"`
}

// ReviewSubmitRequest carries a batch of review test answers.
type ReviewSubmitRequest struct {
	Answers []ReviewAnswer `json:"answers" binding:"required"`
}

// ReviewSubmitSummary aggregates a submit_review batch. ReturnedToP counts
// rows whose new pool landed back in the P ladder.
type ReviewSubmitSummary struct {
	Correct     int `json:"correct"`
	Incorrect   int `json:"incorrect"`
	ReturnedToP int `json:"returned_to_p"`
}

// ReviewSubmitResponse is the response body for POST /api/v1/review/submit.
type ReviewSubmitResponse struct {
	Results []SubmitResult      `json:"results"`
	Summary ReviewSubmitSummary `json:"summary"`
}

// HomeStats is the response body for GET /api/v1/home.
type HomeStats struct {
	LearnedToday      int            `json:"learned_today"`
	DailyLearnLimit   int            `json:"daily_learn_limit"`
	PracticeReady     int            `json:"practice_ready"`
	ReviewReady       int            `json:"review_ready"`
	PoolCounts        map[string]int `json:"pool_counts"`
	UpcomingIn24h     int            `json:"upcoming_24h"`
	CanLearn          bool           `json:"can_learn"`
	CanPractice       bool           `json:"can_practice"`
	CanReview         bool           `json:"can_review"`
	NextAvailableTime *time.Time     `json:"next_available_time,omitempty"`
}
