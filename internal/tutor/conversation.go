package tutor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"vocabpool/internal/models"
)

// ChatStore is the subset of the chat repository this package needs.
type ChatStore interface {
	SaveMessage(msg *models.ChatMessage) error
	GetRecentMessages(userID, conversationID uuid.UUID, limit int) ([]models.ChatMessage, error)
}

// contextWindow bounds how many prior turns are replayed to the model on
// each request.
const contextWindow = 20

// Service ties a tutor Client to chat persistence, turning a single user
// message into a stored exchange.
type Service struct {
	client *Client
	store  ChatStore
}

// NewService builds a tutor Service.
func NewService(client *Client, store ChatStore) *Service {
	return &Service{client: client, store: store}
}

// Reply appends the user's message to the conversation (creating one if
// conversationID is nil), asks the tutor for a response in language, and
// persists both turns.
func (s *Service) Reply(ctx context.Context, userID uuid.UUID, conversationID *uuid.UUID, language, content string) (*models.ChatResponse, error) {
	convID := uuid.New()
	if conversationID != nil {
		convID = *conversationID
	}

	now := time.Now()
	userMsg := &models.ChatMessage{
		ID: uuid.New(), UserID: userID, ConversationID: convID,
		Role: models.ChatRoleUser, Content: content, CreatedAt: now,
	}
	if err := s.store.SaveMessage(userMsg); err != nil {
		return nil, fmt.Errorf("save user message: %w", err)
	}

	history, err := s.store.GetRecentMessages(userID, convID, contextWindow)
	if err != nil {
		return nil, fmt.Errorf("load conversation history: %w", err)
	}

	messages := make([]Message, 0, len(history))
	for _, m := range history {
		messages = append(messages, Message{Role: string(m.Role), Content: m.Content})
	}

	reply, err := s.client.ChatCompletion(ctx, language, messages)
	if err != nil {
		return nil, err
	}

	assistantMsg := &models.ChatMessage{
		ID: uuid.New(), UserID: userID, ConversationID: convID,
		Role: models.ChatRoleAssistant, Content: reply.Content, CreatedAt: time.Now(),
	}
	if err := s.store.SaveMessage(assistantMsg); err != nil {
		return nil, fmt.Errorf("save assistant message: %w", err)
	}

	return &models.ChatResponse{
		Message:        reply.Content,
		ConversationID: convID,
		MessageID:      assistantMsg.ID,
	}, nil
}
