package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"vocabpool/internal/tts"
)

func TestSpeechSpeak_Disabled(t *testing.T) {
	synth := tts.New(context.Background(), "", nil)
	handler := NewSpeechHandler(synth)

	router := newTestRouter()
	router.POST("/speech", handler.Speak)

	body, _ := json.Marshal(map[string]string{"text": "hola", "language": "es"})
	req := httptest.NewRequest(http.MethodPost, "/speech", bytes.NewBuffer(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 when speech synthesis is unconfigured", w.Code)
	}
}

func TestSpeechSpeak_MissingFields(t *testing.T) {
	synth := tts.New(context.Background(), "", nil)
	handler := NewSpeechHandler(synth)

	router := newTestRouter()
	router.POST("/speech", handler.Speak)

	req := httptest.NewRequest(http.MethodPost, "/speech", bytes.NewBufferString(`{}`))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 for missing text/language", w.Code)
	}
}
