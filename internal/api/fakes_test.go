package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

// fakeCatalog, fakeProgressStore and fakeCurriculum are in-memory stand-ins
// for the database-backed repositories, good enough to drive the assembler
// through the HTTP handlers without a real Postgres instance.

type fakeCatalog struct {
	words map[uuid.UUID]models.Word
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{words: make(map[uuid.UUID]models.Word)}
}

func (f *fakeCatalog) add(language string, level int, headword string) models.Word {
	w := models.Word{ID: uuid.New(), Language: language, Level: level, Headword: headword, Translation: headword + "-en"}
	f.words[w.ID] = w
	return w
}

func (f *fakeCatalog) GetWord(ctx context.Context, id uuid.UUID) (*models.Word, error) {
	w, ok := f.words[id]
	if !ok {
		return nil, coreerr.UnknownWord(id.String())
	}
	return &w, nil
}

func (f *fakeCatalog) GetWords(ctx context.Context, ids []uuid.UUID) ([]models.Word, error) {
	var out []models.Word
	for _, id := range ids {
		if w, ok := f.words[id]; ok {
			out = append(out, w)
		}
	}
	return out, nil
}

func (f *fakeCatalog) RandomDistractors(ctx context.Context, language string, excludeID uuid.UUID, level int, n int) ([]models.Word, error) {
	var out []models.Word
	for _, w := range f.words {
		if w.ID == excludeID || w.Language != language || w.Level != level {
			continue
		}
		out = append(out, w)
		if len(out) == n {
			break
		}
	}
	return out, nil
}

func (f *fakeCatalog) NextUnlearnedWords(ctx context.Context, userID uuid.UUID, language string, limit int) ([]models.Word, error) {
	var out []models.Word
	for _, w := range f.words {
		if w.Language == language {
			out = append(out, w)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

type fakeProgressStore struct {
	rows map[uuid.UUID]map[uuid.UUID]models.WordProgress
}

func newFakeProgressStore() *fakeProgressStore {
	return &fakeProgressStore{rows: make(map[uuid.UUID]map[uuid.UUID]models.WordProgress)}
}

func (f *fakeProgressStore) userRows(userID uuid.UUID) map[uuid.UUID]models.WordProgress {
	rows, ok := f.rows[userID]
	if !ok {
		rows = make(map[uuid.UUID]models.WordProgress)
		f.rows[userID] = rows
	}
	return rows
}

func (f *fakeProgressStore) GetProgress(ctx context.Context, userID, wordID uuid.UUID) (*models.WordProgress, error) {
	rows := f.userRows(userID)
	row, ok := rows[wordID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeProgressStore) ListByPool(ctx context.Context, userID uuid.UUID, pools []pool.Pool) ([]models.WordProgress, error) {
	want := make(map[string]bool, len(pools))
	for _, p := range pools {
		want[p.String()] = true
	}
	var out []models.WordProgress
	for _, row := range f.userRows(userID) {
		if want[row.Pool] {
			out = append(out, row)
		}
	}
	return out, nil
}

func (f *fakeProgressStore) CompleteLearn(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID, now time.Time) (int, error) {
	rows := f.userRows(userID)
	moved := 0
	for _, wordID := range wordIDs {
		if _, ok := rows[wordID]; ok {
			continue
		}
		row := models.WordProgress{UserID: userID, WordID: wordID}
		row.ApplyPoolProgress(pool.CompleteLearn(now))
		rows[wordID] = row
		moved++
	}
	return moved, nil
}

func (f *fakeProgressStore) SubmitAnswer(ctx context.Context, userID uuid.UUID, answers []models.AnswerInput, now time.Time) ([]models.SubmitResult, error) {
	rows := f.userRows(userID)
	out := make([]models.SubmitResult, len(answers))
	for i, ans := range answers {
		row, ok := rows[ans.WordID]
		if !ok {
			return nil, coreerr.UnknownWord(ans.WordID.String())
		}
		pp := row.ToPoolProgress()
		previousPool := row.Pool
		if !pool.EligibleForPractice(pp, now) && !pool.EligibleForReviewTest(pp, now) {
			out[i] = models.SubmitResult{
				WordID: ans.WordID, PreviousPool: previousPool, NewPool: previousPool,
				NextAvailableTime: row.NextAvailableTime, Skipped: true,
			}
			continue
		}
		next := pool.Transition(pp, ans.Correct, now)
		row.ApplyPoolProgress(next)
		rows[ans.WordID] = row
		out[i] = models.SubmitResult{
			WordID: ans.WordID, PreviousPool: previousPool, NewPool: row.Pool,
			NextAvailableTime: row.NextAvailableTime,
		}
	}
	return out, nil
}

func (f *fakeProgressStore) CompleteReview(ctx context.Context, userID uuid.UUID, wordIDs []uuid.UUID, now time.Time) (int, error) {
	rows := f.userRows(userID)
	moved := 0
	for _, wordID := range wordIDs {
		row, ok := rows[wordID]
		if !ok {
			continue
		}
		pp := row.ToPoolProgress()
		if !pp.Pool.IsR() || row.ReviewStage != string(pool.StageDisplay) {
			continue
		}
		next := pool.CompleteReviewDisplay(pp, now)
		row.ApplyPoolProgress(next)
		rows[wordID] = row
		moved++
	}
	return moved, nil
}

func (f *fakeProgressStore) CountLearnedToday(ctx context.Context, userID uuid.UUID, dayStart time.Time) (int, error) {
	n := 0
	for _, row := range f.userRows(userID) {
		if row.LearnedAt != nil && !row.LearnedAt.Before(dayStart) {
			n++
		}
	}
	return n, nil
}

func (f *fakeProgressStore) CountPending(ctx context.Context, userID uuid.UUID, p pool.Pool, now time.Time) (int, error) {
	n := 0
	for _, row := range f.userRows(userID) {
		if row.Pool == p.String() && row.NextAvailableTime != nil && row.NextAvailableTime.After(now) {
			n++
		}
	}
	return n, nil
}

func (f *fakeProgressStore) ResetWord(ctx context.Context, userID, wordID uuid.UUID) error {
	delete(f.userRows(userID), wordID)
	return nil
}

type fakeCurriculum struct {
	rows map[uuid.UUID]models.UserCurriculum
}

func newFakeCurriculum() *fakeCurriculum {
	return &fakeCurriculum{rows: make(map[uuid.UUID]models.UserCurriculum)}
}

func (f *fakeCurriculum) Get(ctx context.Context, userID uuid.UUID) (*models.UserCurriculum, error) {
	row, ok := f.rows[userID]
	if !ok {
		return nil, nil
	}
	return &row, nil
}

func (f *fakeCurriculum) Upsert(ctx context.Context, c models.UserCurriculum) error {
	f.rows[c.UserID] = c
	return nil
}

// withUser injects a user id into the gin context the way authMiddleware
// does, so handlers under test see the same context shape as production.
func withUser(userID uuid.UUID) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("user_id", userID)
		c.Next()
	}
}

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}
