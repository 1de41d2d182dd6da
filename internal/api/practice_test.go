package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/assembler"
	"vocabpool/internal/models"
	"vocabpool/internal/pool"
)

func TestPracticeStart_TooFewEligible(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cat := newFakeCatalog()
	prog := newFakeProgressStore()
	cur := newFakeCurriculum()
	asm := assembler.New(cat, prog, cur, func() time.Time { return now })
	handler := NewPracticeHandler(asm)

	userID := uuid.New()
	cur.rows[userID] = models.UserCurriculum{UserID: userID, Language: "es", Level: 1}
	wd := cat.add("es", 1, "gato")
	past := now.Add(-time.Minute)
	prog.userRows(userID)[wd.ID] = models.WordProgress{WordID: wd.ID, Pool: "P1", NextAvailableTime: &past}

	router := newTestRouter()
	router.Use(withUser(userID))
	router.GET("/practice/start", handler.Start)

	req := httptest.NewRequest(http.MethodGet, "/practice/start", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (a failed precondition is not a transport error)", w.Code)
	}

	var body struct {
		Available bool   `json:"available"`
		Reason    string `json:"reason"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Available {
		t.Fatalf("expected available=false with only one eligible word")
	}
	if body.Reason != "not_enough_words" {
		t.Fatalf("reason = %q, want not_enough_words", body.Reason)
	}
}

func TestPracticeSubmit_AdvancesPool(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cat := newFakeCatalog()
	prog := newFakeProgressStore()
	asm := assembler.New(cat, prog, newFakeCurriculum(), func() time.Time { return now })
	handler := NewPracticeHandler(asm)

	userID := uuid.New()
	wd := cat.add("es", 1, "gato")
	past := now.Add(-time.Minute)
	prog.userRows(userID)[wd.ID] = models.WordProgress{WordID: wd.ID, Pool: "P1", NextAvailableTime: &past}

	router := newTestRouter()
	router.Use(withUser(userID))
	router.POST("/practice/submit", handler.Submit)

	body, _ := json.Marshal(models.PracticeSubmitRequest{
		Answers: []models.PracticeAnswer{{WordID: wd.ID, Correct: true}},
	})
	req := httptest.NewRequest(http.MethodPost, "/practice/submit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp models.PracticeSubmitResponse
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Results) != 1 {
		t.Fatalf("got %d results, want 1", len(resp.Results))
	}
	if resp.Results[0].NewPool != pool.P(2).String() {
		t.Fatalf("pool = %s, want %s", resp.Results[0].NewPool, pool.P(2).String())
	}
	if resp.Summary.Correct != 1 || resp.Summary.Incorrect != 0 {
		t.Fatalf("summary = %+v, want correct=1 incorrect=0", resp.Summary)
	}
}

func TestPracticeSubmit_UnknownWord(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	asm := assembler.New(newFakeCatalog(), newFakeProgressStore(), newFakeCurriculum(), func() time.Time { return now })
	handler := NewPracticeHandler(asm)

	router := newTestRouter()
	router.Use(withUser(uuid.New()))
	router.POST("/practice/submit", handler.Submit)

	body, _ := json.Marshal(models.PracticeSubmitRequest{
		Answers: []models.PracticeAnswer{{WordID: uuid.New(), Correct: true}},
	})
	req := httptest.NewRequest(http.MethodPost, "/practice/submit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for unknown word progress", w.Code)
	}
}

func TestPracticeSubmit_ResubmissionIsNoOp(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cat := newFakeCatalog()
	prog := newFakeProgressStore()
	asm := assembler.New(cat, prog, newFakeCurriculum(), func() time.Time { return now })
	handler := NewPracticeHandler(asm)

	userID := uuid.New()
	wd := cat.add("es", 1, "gato")
	past := now.Add(-time.Minute)
	prog.userRows(userID)[wd.ID] = models.WordProgress{WordID: wd.ID, Pool: "P1", NextAvailableTime: &past}

	router := newTestRouter()
	router.Use(withUser(userID))
	router.POST("/practice/submit", handler.Submit)

	body, _ := json.Marshal(models.PracticeSubmitRequest{
		Answers: []models.PracticeAnswer{{WordID: wd.ID, Correct: true}},
	})

	req1 := httptest.NewRequest(http.MethodPost, "/practice/submit", bytes.NewBuffer(body))
	req1.Header.Set("Content-Type", "application/json")
	w1 := httptest.NewRecorder()
	router.ServeHTTP(w1, req1)

	var first models.PracticeSubmitResponse
	if err := json.Unmarshal(w1.Body.Bytes(), &first); err != nil {
		t.Fatalf("decode first response: %v", err)
	}
	if first.Results[0].NewPool != "P2" {
		t.Fatalf("first submit pool = %s, want P2", first.Results[0].NewPool)
	}

	req2 := httptest.NewRequest(http.MethodPost, "/practice/submit", bytes.NewBuffer(body))
	req2.Header.Set("Content-Type", "application/json")
	w2 := httptest.NewRecorder()
	router.ServeHTTP(w2, req2)

	var second models.PracticeSubmitResponse
	if err := json.Unmarshal(w2.Body.Bytes(), &second); err != nil {
		t.Fatalf("decode second response: %v", err)
	}
	r := second.Results[0]
	if r.PreviousPool != r.NewPool {
		t.Fatalf("resubmission should be a no-op, got previous=%s new=%s", r.PreviousPool, r.NewPool)
	}
}
