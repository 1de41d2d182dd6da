package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocabpool/internal/assembler"
	"vocabpool/internal/models"
)

// ReviewHandler exposes the Review session endpoints.
type ReviewHandler struct {
	assembler *assembler.Assembler
}

// NewReviewHandler creates a new Review handler.
func NewReviewHandler(a *assembler.Assembler) *ReviewHandler {
	return &ReviewHandler{assembler: a}
}

// Start handles GET /api/v1/review/start
func (h *ReviewHandler) Start(c *gin.Context) {
	userID := userIDFromContext(c)

	session, err := h.assembler.StartReview(c.Request.Context(), userID)
	respondSession(c, session, err)
}

// Complete handles POST /api/v1/review/complete, advancing a batch of
// display-phase words to their test phase.
func (h *ReviewHandler) Complete(c *gin.Context) {
	userID := userIDFromContext(c)

	var req models.ReviewCompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resp, err := h.assembler.CompleteReview(c.Request.Context(), userID, req.WordIDs)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Submit handles POST /api/v1/review/submit
func (h *ReviewHandler) Submit(c *gin.Context) {
	userID := userIDFromContext(c)

	var req models.ReviewSubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	resp, err := h.assembler.SubmitReview(c.Request.Context(), userID, req.Answers)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
