package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocabpool/internal/assembler"
	"vocabpool/internal/models"
)

// LearnHandler exposes the Learn session endpoints.
type LearnHandler struct {
	assembler *assembler.Assembler
}

// NewLearnHandler creates a new Learn handler.
func NewLearnHandler(a *assembler.Assembler) *LearnHandler {
	return &LearnHandler{assembler: a}
}

// Start handles GET /api/v1/learn/start
func (h *LearnHandler) Start(c *gin.Context) {
	userID := userIDFromContext(c)

	session, err := h.assembler.StartLearn(c.Request.Context(), userID)
	respondSession(c, session, err)
}

// Complete handles POST /api/v1/learn/complete
func (h *LearnHandler) Complete(c *gin.Context) {
	userID := userIDFromContext(c)

	var req models.LearnCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resp, err := h.assembler.CompleteLearn(c.Request.Context(), userID, req.WordIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
