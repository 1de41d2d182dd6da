package assembler

import (
	"context"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

// StartPractice admits the user into a Practice session if at least
// PracticeMinEligible P-pool words are currently due, then returns up to
// PracticeBatchSize exercises.
func (a *Assembler) StartPractice(ctx context.Context, userID uuid.UUID) (*models.PracticeSession, error) {
	c, err := a.curriculumFor(ctx, userID)
	if err != nil {
		return nil, err
	}

	candidates, err := a.eligiblePracticeRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(candidates) < pool.PracticeMinEligible {
		return nil, coreerr.PreconditionUnmet(coreerr.ReasonNotEnoughWords, "only %d words eligible for practice, need %d", len(candidates), pool.PracticeMinEligible)
	}

	if len(candidates) > pool.PracticeBatchSize {
		candidates = candidates[:pool.PracticeBatchSize]
	}

	ids := make([]uuid.UUID, len(candidates))
	byID := make(map[uuid.UUID]models.WordProgress, len(candidates))
	for i, row := range candidates {
		ids[i] = row.WordID
		byID[row.WordID] = row
	}

	words, err := a.Catalog.GetWords(ctx, ids)
	if err != nil {
		return nil, err
	}

	session := &models.PracticeSession{Available: true}
	for _, w := range words {
		row := byID[w.ID]
		p := models.ParsePool(row.Pool)
		ex, err := a.exerciseFor(ctx, c.Language, w, p.ExerciseType())
		if err != nil {
			return nil, err
		}
		session.Exercises = append(session.Exercises, ex)
		session.ExerciseOrder = append(session.ExerciseOrder, string(p.ExerciseType()))
	}
	return session, nil
}

func (a *Assembler) eligiblePracticeRows(ctx context.Context, userID uuid.UUID) ([]models.WordProgress, error) {
	// Pull every P1..P5 row for the user and filter by eligibility here;
	// the pool package owns what "eligible" means so storage never has to
	// re-derive it.
	pools := []pool.Pool{pool.P(1), pool.P(2), pool.P(3), pool.P(4), pool.P(5)}
	rows, err := a.Progress.ListByPool(ctx, userID, pools)
	if err != nil {
		return nil, err
	}

	now := a.Clock()
	var eligible []models.WordProgress
	for _, row := range rows {
		if pool.EligibleForPractice(row.ToPoolProgress(), now) {
			eligible = append(eligible, row)
		}
	}
	return eligible, nil
}

// SubmitPractice applies a batch of practice answers inside a single
// transaction over one sampled now, transitioning every word still
// eligible and recording a no-op result for any the batch finds raced.
func (a *Assembler) SubmitPractice(ctx context.Context, userID uuid.UUID, answers []models.PracticeAnswer) (*models.PracticeSubmitResponse, error) {
	now := a.Clock()
	inputs := make([]models.AnswerInput, len(answers))
	for i, ans := range answers {
		inputs[i] = models.AnswerInput{WordID: ans.WordID, Correct: ans.Correct}
	}

	rows, err := a.Progress.SubmitAnswer(ctx, userID, inputs, now)
	if err != nil {
		return nil, err
	}

	resp := &models.PracticeSubmitResponse{Results: rows}
	for i, ans := range answers {
		if rows[i].Skipped {
			continue
		}
		if ans.Correct {
			resp.Summary.Correct++
		} else {
			resp.Summary.Incorrect++
		}
	}
	return resp, nil
}
