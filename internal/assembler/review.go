package assembler

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

var rPools = []pool.Pool{pool.R(1), pool.R(2), pool.R(3), pool.R(4), pool.R(5)}

// StartReview admits the user into a Review session. It prefers the
// display phase (words due to be re-shown) over the test phase (words
// due to be re-tested); a user never sees both phases mixed in one
// session.
func (a *Assembler) StartReview(ctx context.Context, userID uuid.UUID) (*models.ReviewSession, error) {
	c, err := a.curriculumFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := a.Progress.ListByPool(ctx, userID, rPools)
	if err != nil {
		return nil, err
	}

	now := a.Clock()
	var display, test []models.WordProgress
	for _, row := range rows {
		pp := row.ToPoolProgress()
		if pool.EligibleForReviewDisplay(pp, now) {
			display = append(display, row)
		} else if pool.EligibleForReviewTest(pp, now) {
			test = append(test, row)
		}
	}

	if len(display) >= pool.ReviewMinEligible {
		return a.buildDisplaySession(ctx, display)
	}
	if len(test) >= pool.ReviewMinEligible {
		return a.buildTestSession(ctx, c.Language, test)
	}

	eligible := len(display)
	if len(test) > eligible {
		eligible = len(test)
	}
	return nil, coreerr.PreconditionUnmet(coreerr.ReasonNotEnoughWords, "only %d words eligible for review, need %d", eligible, pool.ReviewMinEligible)
}

func (a *Assembler) buildDisplaySession(ctx context.Context, rows []models.WordProgress) (*models.ReviewSession, error) {
	if len(rows) > pool.ReviewBatchSize {
		rows = rows[:pool.ReviewBatchSize]
	}
	ids := make([]uuid.UUID, len(rows))
	for i, row := range rows {
		ids[i] = row.WordID
	}
	words, err := a.Catalog.GetWords(ctx, ids)
	if err != nil {
		return nil, err
	}
	return &models.ReviewSession{Available: true, Phase: "display", Words: words}, nil
}

func (a *Assembler) buildTestSession(ctx context.Context, language string, rows []models.WordProgress) (*models.ReviewSession, error) {
	if len(rows) > pool.ReviewBatchSize {
		rows = rows[:pool.ReviewBatchSize]
	}
	ids := make([]uuid.UUID, len(rows))
	byID := make(map[uuid.UUID]models.WordProgress, len(rows))
	for i, row := range rows {
		ids[i] = row.WordID
		byID[row.WordID] = row
	}
	words, err := a.Catalog.GetWords(ctx, ids)
	if err != nil {
		return nil, err
	}

	session := &models.ReviewSession{Available: true, Phase: "test"}
	for _, w := range words {
		row := byID[w.ID]
		p := models.ParsePool(row.Pool)
		ex, err := a.exerciseFor(ctx, language, w, p.ExerciseType())
		if err != nil {
			return nil, err
		}
		session.Exercises = append(session.Exercises, ex)
	}
	return session, nil
}

// CompleteReview advances a batch of display-phase review words to the
// practice (re-test) phase over a single sampled now. A word already past
// display is a no-op and isn't counted in words_completed.
func (a *Assembler) CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID) (*models.ReviewCompleteResponse, error) {
	now := a.Clock()
	wordsCompleted, err := a.Progress.CompleteReview(ctx, userID, wordIDs, now)
	if err != nil {
		return nil, err
	}
	resp := &models.ReviewCompleteResponse{WordsCompleted: wordsCompleted}
	if wordsCompleted > 0 {
		t := now.Add(pool.WaitReviewDisplay)
		resp.NextPracticeTime = &t
	}
	return resp, nil
}

// SubmitReview applies a batch of review test answers inside a single
// transaction over one sampled now, transitioning rows back to their
// matching P pool on success or keeping them in R with a fresh display
// phase on failure.
func (a *Assembler) SubmitReview(ctx context.Context, userID uuid.UUID, answers []models.ReviewAnswer) (*models.ReviewSubmitResponse, error) {
	now := a.Clock()
	inputs := make([]models.AnswerInput, len(answers))
	for i, ans := range answers {
		inputs[i] = models.AnswerInput{WordID: ans.WordID, Correct: ans.Correct}
	}

	rows, err := a.Progress.SubmitAnswer(ctx, userID, inputs, now)
	if err != nil {
		return nil, err
	}

	resp := &models.ReviewSubmitResponse{Results: rows}
	for i, ans := range answers {
		row := rows[i]
		if row.Skipped {
			continue
		}
		if ans.Correct {
			resp.Summary.Correct++
		} else {
			resp.Summary.Incorrect++
		}
		if strings.HasPrefix(row.NewPool, "P") {
			resp.Summary.ReturnedToP++
		}
	}
	return resp, nil
}
