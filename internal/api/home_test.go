package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/assembler"
	"vocabpool/internal/models"
)

func TestHomeStats_ReflectsProgress(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	prog := newFakeProgressStore()
	asm := assembler.New(newFakeCatalog(), prog, newFakeCurriculum(), func() time.Time { return now })
	handler := NewHomeHandler(asm)

	userID := uuid.New()
	past := now.Add(-time.Minute)
	rows := prog.userRows(userID)
	rows[uuid.New()] = models.WordProgress{Pool: "P1", NextAvailableTime: &past, LearnedAt: &now}
	rows[uuid.New()] = models.WordProgress{Pool: "P2", NextAvailableTime: &past}

	router := newTestRouter()
	router.Use(withUser(userID))
	router.GET("/home", handler.Stats)

	req := httptest.NewRequest(http.MethodGet, "/home", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var stats models.HomeStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if stats.LearnedToday != 1 {
		t.Fatalf("learnedToday = %d, want 1", stats.LearnedToday)
	}
	if stats.PracticeReady != 2 {
		t.Fatalf("practiceReady = %d, want 2", stats.PracticeReady)
	}
}
