package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"

	"vocabpool/internal/models"
	"vocabpool/internal/placement"
)

func TestPlacementQuiz_MissingLanguage(t *testing.T) {
	cat := newFakeCatalog()
	svc := placement.NewService(newFakeCurriculum())
	handler := NewPlacementHandler(svc, cat)

	router := newTestRouter()
	router.Use(withUser(uuid.New()))
	router.GET("/placement/quiz", handler.Quiz)

	req := httptest.NewRequest(http.MethodGet, "/placement/quiz", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing language", w.Code)
	}
}

func TestPlacementQuiz_ReturnsCandidates(t *testing.T) {
	cat := newFakeCatalog()
	for i := 0; i < 5; i++ {
		cat.add("es", 1, "word")
	}
	svc := placement.NewService(newFakeCurriculum())
	handler := NewPlacementHandler(svc, cat)

	router := newTestRouter()
	router.Use(withUser(uuid.New()))
	router.GET("/placement/quiz", handler.Quiz)

	req := httptest.NewRequest(http.MethodGet, "/placement/quiz?language=es", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	var resp struct {
		Words []models.Word `json:"words"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Words) != 5 {
		t.Fatalf("got %d words, want 5", len(resp.Words))
	}
}

func TestPlacementSubmit_SeedsCurriculum(t *testing.T) {
	cur := newFakeCurriculum()
	svc := placement.NewService(cur)
	handler := NewPlacementHandler(svc, newFakeCatalog())

	userID := uuid.New()
	router := newTestRouter()
	router.Use(withUser(userID))
	router.POST("/placement/submit", handler.Submit)

	reqBody := models.PlacementRequest{
		Language: "es",
		Answers: []models.PlacementAnswer{
			{WordID: uuid.New(), Correct: true},
			{WordID: uuid.New(), Correct: true},
		},
	}
	body, _ := json.Marshal(reqBody)
	req := httptest.NewRequest(http.MethodPost, "/placement/submit", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}

	saved, err := cur.Get(req.Context(), userID)
	if err != nil || saved == nil {
		t.Fatalf("expected curriculum row saved, got %v, err %v", saved, err)
	}
	if saved.Language != "es" {
		t.Fatalf("language = %s, want es", saved.Language)
	}
}
