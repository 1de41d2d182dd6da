package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocabpool/internal/database"
	"vocabpool/internal/tutor"
)

// ChatHandler exposes the tutor chat endpoints.
type ChatHandler struct {
	service  *tutor.Service
	chatRepo *database.ChatRepository
	client   *tutor.Client
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(service *tutor.Service, chatRepo *database.ChatRepository, client *tutor.Client) *ChatHandler {
	return &ChatHandler{service: service, chatRepo: chatRepo, client: client}
}

type chatRequest struct {
	Language       string     `json:"language" binding:"required"`
	Message        string     `json:"message" binding:"required"`
	ConversationID *uuid.UUID `json:"conversation_id,omitempty"`
}

// SendMessage handles POST /api/v1/chat/message
func (h *ChatHandler) SendMessage(c *gin.Context) {
	userID := userIDFromContext(c)

	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request data", "details": err.Error()})
		return
	}

	if !h.client.IsConfigured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "tutor chat is not available, AI_API_KEY is not configured"})
		return
	}

	resp, err := h.service.Reply(c.Request.Context(), userID, req.ConversationID, req.Language, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// GetHistory handles GET /api/v1/chat/history?conversation_id=...
func (h *ChatHandler) GetHistory(c *gin.Context) {
	userID := userIDFromContext(c)

	convIDStr := c.Query("conversation_id")
	if convIDStr != "" {
		convID, err := uuid.Parse(convIDStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid conversation_id"})
			return
		}

		limit, _ := strconv.Atoi(c.DefaultQuery("limit", "50"))
		messages, err := h.chatRepo.GetConversationMessages(userID, convID, limit)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"messages":        messages,
			"conversation_id": convID,
			"count":           len(messages),
		})
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	offset := (page - 1) * limit

	conversations, total, err := h.chatRepo.GetConversations(userID, limit, offset)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"conversations": conversations,
		"total":         total,
		"page":          page,
		"limit":         limit,
	})
}
