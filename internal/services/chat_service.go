package services

import (
	"context"
	"errors"
	"time"

	"github.com/markdave123-py/Convosum/internal/core"
	db "github.com/markdave123-py/Convosum/internal/core/database"
	"github.com/markdave123-py/Convosum/internal/models"
)

// ChatService composes the message store and the analysis gateway behind
// the operations the API exposes. Token verification has already
// happened by the time any of these run.
type ChatService struct {
	db       db.DbClient
	analysis *AnalysisService
}

func NewChatService(db db.DbClient, analysis *AnalysisService) *ChatService {
	return &ChatService{db: db, analysis: analysis}
}

// StoreMessage persists one message. A zero timestamp means the caller
// did not supply one and gets the server clock.
func (s *ChatService) StoreMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg == nil || msg.ConversationID == "" || msg.UserID == "" || msg.Message == "" {
		return errors.New("conversation_id, user_id and message are required")
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	return s.db.InsertChatMessage(ctx, msg)
}

// ConversationHistory returns every matching message of the
// conversation. An empty result is core.ErrNotFound.
func (s *ChatService) ConversationHistory(ctx context.Context, conversationID string, filter db.MessageFilter) ([]models.ChatMessage, error) {
	msgs, err := s.db.ListMessagesByConversation(ctx, conversationID, filter)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, core.ErrNotFound
	}
	return msgs, nil
}

// UserHistory returns one page of the user's messages across all
// conversations. page is 1-based; an empty page is core.ErrNotFound.
func (s *ChatService) UserHistory(ctx context.Context, userID string, page, limit int, filter db.MessageFilter) ([]models.ChatMessage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	msgs, err := s.db.ListMessagesByUser(ctx, userID, page, limit, filter)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, core.ErrNotFound
	}
	return msgs, nil
}

// DeleteConversation removes the conversation's messages; deleting an
// unknown conversation succeeds.
func (s *ChatService) DeleteConversation(ctx context.Context, conversationID string) error {
	return s.db.DeleteConversation(ctx, conversationID)
}

// Summarize fetches the conversation and asks the gateway for a summary.
// An empty conversation is core.ErrNotFound and never reaches the
// external collaborator.
func (s *ChatService) Summarize(ctx context.Context, conversationID string) (string, error) {
	texts, err := s.conversationTexts(ctx, conversationID)
	if err != nil {
		return "", err
	}
	return s.analysis.Summarize(ctx, texts)
}

// Insights is Summarize with a selectable instruction template.
func (s *ChatService) Insights(ctx context.Context, conversationID string, kind InsightKind) (string, error) {
	texts, err := s.conversationTexts(ctx, conversationID)
	if err != nil {
		return "", err
	}
	return s.analysis.Insights(ctx, texts, kind)
}

func (s *ChatService) conversationTexts(ctx context.Context, conversationID string) ([]string, error) {
	msgs, err := s.db.ListMessagesByConversation(ctx, conversationID, db.MessageFilter{})
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, core.ErrNotFound
	}
	texts := make([]string, 0, len(msgs))
	for _, m := range msgs {
		texts = append(texts, m.Message)
	}
	return texts, nil
}
