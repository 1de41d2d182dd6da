package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocabpool/internal/models"
	"vocabpool/internal/placement"
)

// placementQuizSize is how many words are sampled for the diagnostic
// quiz's candidate pool before placement.Quiz trims it.
const placementQuizSize = 15

// PlacementHandler exposes the diagnostic placement quiz.
type PlacementHandler struct {
	service *placement.Service
	catalog models.CatalogRepository
}

// NewPlacementHandler creates a new Placement handler.
func NewPlacementHandler(service *placement.Service, catalog models.CatalogRepository) *PlacementHandler {
	return &PlacementHandler{service: service, catalog: catalog}
}

// Quiz handles GET /api/v1/placement/quiz?language=es
func (h *PlacementHandler) Quiz(c *gin.Context) {
	language := c.Query("language")
	if language == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "language query parameter is required"})
		return
	}

	candidates, err := h.catalog.NextUnlearnedWords(c.Request.Context(), userIDFromContext(c), language, placementQuizSize)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"words": placement.Quiz(candidates, placementQuizSize)})
}

// Submit handles POST /api/v1/placement/submit
func (h *PlacementHandler) Submit(c *gin.Context) {
	userID := userIDFromContext(c)

	var req models.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	result, err := h.service.Submit(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
