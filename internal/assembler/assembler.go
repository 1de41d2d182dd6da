// Package assembler builds Learn, Practice, and Review sessions from the
// word catalog and a user's pool progress, applying the admission rules
// and distractor sampling that turn raw progress rows into the exercises
// a client renders.
package assembler

import (
	"context"
	"math/rand"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/logging"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

var log = logging.Named("assembler")

// Assembler wires the catalog, progress, and curriculum repositories into
// the Learn/Practice/Review/Home operations.
type Assembler struct {
	Catalog    models.CatalogRepository
	Progress   models.ProgressRepository
	Curriculum models.CurriculumRepository
	Clock      func() time.Time
}

// New builds an Assembler. clock defaults to time.Now when nil.
func New(catalog models.CatalogRepository, progress models.ProgressRepository, curriculum models.CurriculumRepository, clock func() time.Time) *Assembler {
	if clock == nil {
		clock = time.Now
	}
	return &Assembler{Catalog: catalog, Progress: progress, Curriculum: curriculum, Clock: clock}
}

func (a *Assembler) curriculumFor(ctx context.Context, userID uuid.UUID) (*models.UserCurriculum, error) {
	c, err := a.Curriculum.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, coreerr.PreconditionUnmet(coreerr.ReasonPlacementRequired, "user %s has not completed placement", userID)
	}
	return c, nil
}

// shuffle permutes ws in place, the same Fisher-Yates shape the quiz
// feature used for shuffling answer choices.
func shuffle(ws []models.Word) {
	for i := len(ws) - 1; i > 0; i-- {
		j := rand.Intn(i + 1)
		ws[i], ws[j] = ws[j], ws[i]
	}
}

// buildExercise turns a target word plus distractors into a multiple
// choice Exercise, with options shuffled so the correct answer isn't
// always in the same slot.
func buildExercise(target models.Word, distractors []models.Word, exType pool.ExerciseType) models.Exercise {
	options := make([]models.Word, 0, len(distractors)+1)
	options = append(options, target)
	options = append(options, distractors...)
	shuffle(options)

	ex := models.Exercise{
		WordID:   target.ID,
		Type:     string(exType),
		Prompt:   target.Headword,
		AudioURL: target.AudioURL,
		ImageURL: target.ImageURL,
	}
	for i, o := range options {
		ex.Options = append(ex.Options, models.Option{WordID: o.ID, Text: o.Translation})
		if o.ID == target.ID {
			ex.CorrectIndex = i
		}
	}
	return ex
}

func (a *Assembler) exerciseFor(ctx context.Context, language string, w models.Word, exType pool.ExerciseType) (models.Exercise, error) {
	distractors, err := a.Catalog.RandomDistractors(ctx, language, w.ID, w.Level, pool.ExerciseOptionCount-1)
	if err != nil {
		return models.Exercise{}, err
	}
	return buildExercise(w, distractors, exType), nil
}
