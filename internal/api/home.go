package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocabpool/internal/assembler"
)

// HomeHandler exposes the home-screen summary endpoint.
type HomeHandler struct {
	assembler *assembler.Assembler
}

// NewHomeHandler creates a new Home handler.
func NewHomeHandler(a *assembler.Assembler) *HomeHandler {
	return &HomeHandler{assembler: a}
}

// Stats handles GET /api/v1/home
func (h *HomeHandler) Stats(c *gin.Context) {
	userID := userIDFromContext(c)

	stats, err := h.assembler.Home(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}
