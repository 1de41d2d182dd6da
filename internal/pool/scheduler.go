package pool

import "time"

// EligibleForPractice reports whether a P-pool word is due for its next
// practice activity.
func EligibleForPractice(p Progress, now time.Time) bool {
	if !p.Pool.IsP() || p.Pool.Level < 1 || p.Pool.Level > 5 {
		return false
	}
	return p.NextAvailableTime != nil && !now.Before(*p.NextAvailableTime)
}

// EligibleForReviewDisplay reports whether an R-pool word is due to be
// re-shown (display phase).
func EligibleForReviewDisplay(p Progress, now time.Time) bool {
	if !p.Pool.IsR() || p.ReviewStage != StageDisplay {
		return false
	}
	return p.NextAvailableTime != nil && !now.Before(*p.NextAvailableTime)
}

// EligibleForReviewTest reports whether an R-pool word is due to be
// re-tested (practice phase).
func EligibleForReviewTest(p Progress, now time.Time) bool {
	if !p.Pool.IsR() || p.ReviewStage != StagePractice {
		return false
	}
	return p.NextAvailableTime != nil && !now.Before(*p.NextAvailableTime)
}

// at returns a pointer to t; helper for building Progress literals.
func at(t time.Time) *time.Time { return &t }

// Transition applies the state machine for a single submitted answer
// against a P-pool or R-pool row. now is sampled once per
// transaction by the caller and threaded in unchanged so a batch of
// answers against equal pools yields identical NextAvailableTime values.
func Transition(p Progress, correct bool, now time.Time) Progress {
	switch p.Pool.Kind {
	case KindP:
		return transitionP(p, correct, now)
	case KindR:
		return transitionR(p, correct, now)
	default:
		return p
	}
}

func transitionP(p Progress, correct bool, now time.Time) Progress {
	level := p.Pool.Level

	if correct {
		next := P(level + 1)
		out := Progress{Pool: next, LearnedAt: p.LearnedAt}
		if next.Level == 6 {
			out.NextAvailableTime = nil
		} else {
			out.NextAvailableTime = at(now.Add(next.Wait()))
		}
		return out
	}

	// Incorrect.
	if level == 1 {
		// P1 never demotes; it just retries.
		return Progress{
			Pool:              P(1),
			LearnedAt:         p.LearnedAt,
			NextAvailableTime: at(now.Add(WaitRetry)),
		}
	}

	// P_k, k>=2: demote to R_k.
	return Progress{
		Pool:              R(level),
		ReviewStage:       StageDisplay,
		LearnedAt:         p.LearnedAt,
		NextAvailableTime: at(now.Add(WaitRetry)),
	}
}

func transitionR(p Progress, correct bool, now time.Time) Progress {
	level := p.Pool.Level

	if correct {
		target := P(level)
		return Progress{
			Pool:              target,
			LearnedAt:         p.LearnedAt,
			NextAvailableTime: at(now.Add(target.Wait())),
		}
	}

	// Incorrect: stay in R_k, back to display phase.
	return Progress{
		Pool:              R(level),
		ReviewStage:       StageDisplay,
		LearnedAt:         p.LearnedAt,
		NextAvailableTime: at(now.Add(WaitRetry)),
	}
}

// CompleteReviewDisplay advances an R-pool row from the display phase to
// the practice (re-test) phase. Not a correctness-bearing transition.
func CompleteReviewDisplay(p Progress, now time.Time) Progress {
	return Progress{
		Pool:              p.Pool,
		ReviewStage:       StagePractice,
		LearnedAt:         p.LearnedAt,
		NextAvailableTime: at(now.Add(WaitReviewDisplay)),
	}
}

// CompleteLearn creates the progress row for a word moving P0 -> P1.
func CompleteLearn(now time.Time) Progress {
	return Progress{
		Pool:              P(1),
		LearnedAt:         at(now),
		NextAvailableTime: at(now.Add(WaitP1)),
	}
}
