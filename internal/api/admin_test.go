package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/assembler"
	"vocabpool/internal/models"
)

func TestAdminResetWord_InvalidID(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	asm := assembler.New(newFakeCatalog(), newFakeProgressStore(), newFakeCurriculum(), func() time.Time { return now })
	handler := NewAdminHandler(asm)

	router := newTestRouter()
	router.Use(withUser(uuid.New()))
	router.POST("/admin/words/:id/reset", handler.ResetWord)

	req := httptest.NewRequest(http.MethodPost, "/admin/words/not-a-uuid/reset", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for invalid word id", w.Code)
	}
}

func TestAdminResetWord_ClearsProgress(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	cat := newFakeCatalog()
	prog := newFakeProgressStore()
	asm := assembler.New(cat, prog, newFakeCurriculum(), func() time.Time { return now })
	handler := NewAdminHandler(asm)

	userID := uuid.New()
	wd := cat.add("es", 1, "gato")
	prog.userRows(userID)[wd.ID] = models.WordProgress{WordID: wd.ID, Pool: "P3"}

	router := newTestRouter()
	router.Use(withUser(userID))
	router.POST("/admin/words/:id/reset", handler.ResetWord)

	req := httptest.NewRequest(http.MethodPost, "/admin/words/"+wd.ID.String()+"/reset", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body=%s", w.Code, w.Body.String())
	}
	row, _ := prog.GetProgress(req.Context(), userID, wd.ID)
	if row != nil {
		t.Fatalf("expected progress row cleared, got %+v", row)
	}
}
