package placement

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"vocabpool/internal/models"
)

type fakeCurriculum struct {
	got models.UserCurriculum
}

func (f *fakeCurriculum) Get(ctx context.Context, userID uuid.UUID) (*models.UserCurriculum, error) {
	return nil, nil
}

func (f *fakeCurriculum) Upsert(ctx context.Context, c models.UserCurriculum) error {
	f.got = c
	return nil
}

func TestSubmit_PlacesByScore(t *testing.T) {
	cases := []struct {
		name      string
		correct   int
		total     int
		wantLevel int
	}{
		{"all wrong", 0, 10, 1},
		{"half right", 5, 10, 2},
		{"mostly right", 8, 10, 3},
		{"near perfect", 10, 10, 4},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			cur := &fakeCurriculum{}
			svc := NewService(cur)

			var answers []models.PlacementAnswer
			for i := 0; i < c.total; i++ {
				answers = append(answers, models.PlacementAnswer{WordID: uuid.New(), Correct: i < c.correct})
			}

			userID := uuid.New()
			result, err := svc.Submit(context.Background(), userID, models.PlacementRequest{Language: "es", Answers: answers})
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Level != c.wantLevel {
				t.Fatalf("level = %d, want %d", result.Level, c.wantLevel)
			}
			if cur.got.Level != c.wantLevel || cur.got.UserID != userID {
				t.Fatalf("curriculum not upserted correctly: %+v", cur.got)
			}
		})
	}
}

func TestQuiz_TrimsToSize(t *testing.T) {
	var words []models.Word
	for i := 0; i < 20; i++ {
		words = append(words, models.Word{ID: uuid.New()})
	}
	got := Quiz(words, 5)
	if len(got) != 5 {
		t.Fatalf("got %d words, want 5", len(got))
	}
}
