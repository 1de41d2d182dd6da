package api

import (
	"bytes"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"vocabpool/internal/tts"
)

// SpeechHandler exposes on-demand pronunciation audio.
type SpeechHandler struct {
	synth *tts.Synthesizer
}

// NewSpeechHandler creates a new speech handler.
func NewSpeechHandler(synth *tts.Synthesizer) *SpeechHandler {
	return &SpeechHandler{synth: synth}
}

type speakRequest struct {
	Text     string `json:"text" binding:"required,max=500"`
	Language string `json:"language" binding:"required"`
}

// Speak handles POST /api/v1/speech
func (h *SpeechHandler) Speak(c *gin.Context) {
	var req speakRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request: text (max 500 chars) and language are required"})
		return
	}

	audio, err := h.synth.Speak(c.Request.Context(), req.Language, req.Text)
	var unsupported *tts.ErrUnsupportedLanguage
	switch {
	case err == nil:
		c.Header("Content-Type", "audio/mpeg")
		c.Header("Cache-Control", "public, max-age=86400")
		c.Status(http.StatusOK)
		io.Copy(c.Writer, bytes.NewReader(audio))
	case errors.Is(err, tts.ErrDisabled):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "speech synthesis not configured"})
	case errors.As(err, &unsupported):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported language: " + req.Language})
	default:
		log.Error().Err(err).Msg("speech synthesis failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "speech synthesis failed"})
	}
}
