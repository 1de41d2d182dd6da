package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocabpool/internal/assembler"
)

// AdminHandler exposes debug/support operations not reachable through the
// normal Learn/Practice/Review flow.
type AdminHandler struct {
	assembler *assembler.Assembler
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(a *assembler.Assembler) *AdminHandler {
	return &AdminHandler{assembler: a}
}

// ResetWord handles POST /api/v1/admin/words/:id/reset, returning a word to
// the unlearned P0 state for the authenticated user.
func (h *AdminHandler) ResetWord(c *gin.Context) {
	userID := userIDFromContext(c)

	wordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid word id"})
		return
	}

	if err := h.assembler.ResetWord(c.Request.Context(), userID, wordID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "word progress reset"})
}
