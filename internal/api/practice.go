package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocabpool/internal/assembler"
	"vocabpool/internal/models"
)

// PracticeHandler exposes the Practice session endpoints.
type PracticeHandler struct {
	assembler *assembler.Assembler
}

// NewPracticeHandler creates a new Practice handler.
func NewPracticeHandler(a *assembler.Assembler) *PracticeHandler {
	return &PracticeHandler{assembler: a}
}

// Start handles GET /api/v1/practice/start
func (h *PracticeHandler) Start(c *gin.Context) {
	userID := userIDFromContext(c)

	session, err := h.assembler.StartPractice(c.Request.Context(), userID)
	respondSession(c, session, err)
}

// Submit handles POST /api/v1/practice/submit
func (h *PracticeHandler) Submit(c *gin.Context) {
	userID := userIDFromContext(c)

	var req models.PracticeSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resp, err := h.assembler.SubmitPractice(c.Request.Context(), userID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
