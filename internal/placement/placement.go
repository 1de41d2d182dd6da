// Package placement runs the one-time diagnostic quiz that seeds a new
// user's curriculum: which language they're studying and what starting
// level their Learn/Practice/Review sessions should draw from.
package placement

import (
	"context"

	"github.com/google/uuid"

	"vocabpool/internal/models"
)

// levelBoundaries maps a minimum score percentage to the level a user is
// placed into. Checked from highest to lowest; anything below the lowest
// boundary starts at level 1.
var levelBoundaries = []struct {
	minScore float64
	level    int
}{
	{minScore: 90, level: 4},
	{minScore: 70, level: 3},
	{minScore: 40, level: 2},
}

func levelFor(score float64) int {
	for _, b := range levelBoundaries {
		if score >= b.minScore {
			return b.level
		}
	}
	return 1
}

// Service scores a completed placement quiz and seeds the resulting
// curriculum.
type Service struct {
	curriculum models.CurriculumRepository
}

// NewService builds a placement Service.
func NewService(curriculum models.CurriculumRepository) *Service {
	return &Service{curriculum: curriculum}
}

// Submit scores req and upserts the user's curriculum, returning the
// level they were placed into.
func (s *Service) Submit(ctx context.Context, userID uuid.UUID, req models.PlacementRequest) (*models.PlacementResult, error) {
	total := len(req.Answers)
	correct := 0
	for _, a := range req.Answers {
		if a.Correct {
			correct++
		}
	}

	score := 0.0
	if total > 0 {
		score = float64(correct) / float64(total) * 100
	}
	level := levelFor(score)

	err := s.curriculum.Upsert(ctx, models.UserCurriculum{
		UserID:   userID,
		Language: req.Language,
		Level:    level,
	})
	if err != nil {
		return nil, err
	}

	return &models.PlacementResult{Language: req.Language, Level: level}, nil
}

// Quiz returns the words to show for a placement quiz in language, drawn
// from the given catalog sample. Kept deliberately simple: the caller
// supplies candidate words (e.g. a random sample spanning every level)
// and this just trims to size.
func Quiz(candidates []models.Word, size int) []models.Word {
	if len(candidates) <= size {
		return candidates
	}
	return candidates[:size]
}
