package pool

import "time"

// ReviewStage is only meaningful while Pool is in the R ladder.
type ReviewStage string

const (
	StageNone     ReviewStage = ""
	StageDisplay  ReviewStage = "display"
	StagePractice ReviewStage = "practice"
)

// Progress is the scheduler's view of one WordProgress row: just enough
// state to decide eligibility and transitions. The storage layer maps its
// richer row (counters, timestamps for bookkeeping) onto this and back.
type Progress struct {
	Pool              Pool
	ReviewStage       ReviewStage
	NextAvailableTime *time.Time // nil only for P0 and P6
	LearnedAt         *time.Time // nil while still in P0
}

// NewP0 is the zero-value progress for a word with no row yet.
func NewP0() Progress {
	return Progress{Pool: P(0)}
}
