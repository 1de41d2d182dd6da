package assembler

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/coreerr"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

// fakeCatalog and fakeProgressStore are in-memory stand-ins for the
// database-backed repositories, good enough to drive the assembler
// without a real Postgres instance.

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

func newTestAssembler(now time.Time) (*Assembler, *fakeCatalog, *fakeProgressStore, *fakeCurriculum) {
	cat := newFakeCatalog()
	prog := newFakeProgressStore()
	cur := newFakeCurriculum()
	a := New(cat, prog, cur, func() time.Time { return now })
	return a, cat, prog, cur
}

func TestStartLearn_RequiresPlacement(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, _, _, _ := newTestAssembler(now)

	_, err := a.StartLearn(context.Background(), uuid.New())
	if err == nil {
		t.Fatalf("expected error for missing curriculum")
	}
}

func TestStartLearn_ReturnsUnlearnedWords(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, cat, _, cur := newTestAssembler(now)

	userID := uuid.New()
	cur.rows[userID] = models.UserCurriculum{UserID: userID, Language: "es", Level: 1}
	for i := 0; i < 3; i++ {
		cat.add("es", 1, "word")
	}

	session, err := a.StartLearn(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Words) != 3 {
		t.Fatalf("got %d words, want 3", len(session.Words))
	}
}

func TestStartLearn_DailyLimitBlocks(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, cat, prog, cur := newTestAssembler(now)

	userID := uuid.New()
	cur.rows[userID] = models.UserCurriculum{UserID: userID, Language: "es", Level: 1}
	cat.add("es", 1, "word")

	rows := prog.userRows(userID)
	for i := 0; i < pool.DailyLearnLimit; i++ {
		rows[uuid.New()] = models.WordProgress{LearnedAt: &now, Pool: "P1"}
	}

	_, err := a.StartLearn(context.Background(), userID)
	if err == nil {
		t.Fatalf("expected daily limit error")
	}
	if _, ok := coreerr.As(err); !ok {
		t.Fatalf("expected coreerr, got %T", err)
	}
}

func TestStartPractice_RequiresMinimumEligible(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, cat, prog, cur := newTestAssembler(now)

	userID := uuid.New()
	cur.rows[userID] = models.UserCurriculum{UserID: userID, Language: "es", Level: 1}

	w := cat.add("es", 1, "gato")
	past := now.Add(-time.Minute)
	prog.userRows(userID)[w.ID] = models.WordProgress{
		WordID: w.ID, Pool: "P1", NextAvailableTime: &past,
	}

	_, err := a.StartPractice(context.Background(), userID)
	if err == nil {
		t.Fatalf("expected precondition error with only 1 eligible word")
	}
}

func TestStartPractice_BuildsExercises(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, cat, prog, cur := newTestAssembler(now)

	userID := uuid.New()
	cur.rows[userID] = models.UserCurriculum{UserID: userID, Language: "es", Level: 1}

	past := now.Add(-time.Minute)
	rows := prog.userRows(userID)
	for i := 0; i < pool.PracticeMinEligible; i++ {
		w := cat.add("es", 1, "word")
		rows[w.ID] = models.WordProgress{WordID: w.ID, Pool: "P1", NextAvailableTime: &past}
	}
	// a couple of distractor-only words at the same level/language
	cat.add("es", 1, "distractor-a")
	cat.add("es", 1, "distractor-b")

	session, err := a.StartPractice(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(session.Exercises) != pool.PracticeMinEligible {
		t.Fatalf("got %d exercises, want %d", len(session.Exercises), pool.PracticeMinEligible)
	}
	for _, ex := range session.Exercises {
		if ex.CorrectIndex < 0 || ex.CorrectIndex >= len(ex.Options) {
			t.Fatalf("correct index %d out of range for %d options", ex.CorrectIndex, len(ex.Options))
		}
	}
}

func TestSubmitPractice_AdvancesPool(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, cat, prog, _ := newTestAssembler(now)

	userID := uuid.New()
	w := cat.add("es", 1, "gato")
	past := now.Add(-time.Minute)
	prog.userRows(userID)[w.ID] = models.WordProgress{WordID: w.ID, Pool: "P1", NextAvailableTime: &past}

	resp, err := a.SubmitPractice(context.Background(), userID, []models.PracticeAnswer{{WordID: w.ID, Correct: true}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Results) != 1 || resp.Results[0].NewPool != "P2" {
		t.Fatalf("results = %+v, want one result with new_pool P2", resp.Results)
	}
}

func TestSubmitPractice_ResubmissionIsNoOp(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, cat, prog, _ := newTestAssembler(now)

	userID := uuid.New()
	w := cat.add("es", 1, "gato")
	past := now.Add(-time.Minute)
	prog.userRows(userID)[w.ID] = models.WordProgress{WordID: w.ID, Pool: "P1", NextAvailableTime: &past}

	answers := []models.PracticeAnswer{{WordID: w.ID, Correct: true}}
	first, err := a.SubmitPractice(context.Background(), userID, answers)
	if err != nil {
		t.Fatalf("unexpected error on first submit: %v", err)
	}
	if first.Results[0].NewPool != "P2" {
		t.Fatalf("first submit pool = %s, want P2", first.Results[0].NewPool)
	}

	second, err := a.SubmitPractice(context.Background(), userID, answers)
	if err != nil {
		t.Fatalf("unexpected error on resubmission: %v", err)
	}
	r := second.Results[0]
	if r.PreviousPool != r.NewPool {
		t.Fatalf("resubmission should be a no-op, got previous=%s new=%s", r.PreviousPool, r.NewPool)
	}
	if r.NewPool != "P2" {
		t.Fatalf("resubmission changed the word's pool to %s, want it to stay P2", r.NewPool)
	}
}

func TestHome_ReflectsCounts(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	a, _, prog, _ := newTestAssembler(now)

	userID := uuid.New()
	past := now.Add(-time.Minute)
	rows := prog.userRows(userID)
	rows[uuid.New()] = models.WordProgress{Pool: "P1", NextAvailableTime: &past, LearnedAt: &now}
	rows[uuid.New()] = models.WordProgress{Pool: "P2", NextAvailableTime: &past}
	rows[uuid.New()] = models.WordProgress{Pool: "R3", ReviewStage: "display", NextAvailableTime: &past}

	stats, err := a.Home(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.LearnedToday != 1 {
		t.Fatalf("learnedToday = %d, want 1", stats.LearnedToday)
	}
	if stats.PracticeReady != 2 {
		t.Fatalf("practiceReady = %d, want 2", stats.PracticeReady)
	}
	if stats.ReviewReady != 1 {
		t.Fatalf("reviewReady = %d, want 1", stats.ReviewReady)
	}
}
