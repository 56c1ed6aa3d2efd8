package db

import (
	"context"

	"github.com/markdave123-py/Convosum/internal/models"
)

// DbClient defines all persistence operations your services will need.
// It abstracts Postgres so higher layers never depend on a specific DB.
//
// Both list operations return rows ordered by timestamp ascending. The
// ordering is deliberate: pagination over user history needs a stable
// order, and heap order is meaningless after deletes.
type DbClient interface {
	CreateUser(ctx context.Context, user *models.User) (err error)
	GetUserByUsername(ctx context.Context, username string) (user *models.User, err error)

	InsertChatMessage(ctx context.Context, msg *models.ChatMessage) error
	ListMessagesByConversation(ctx context.Context, conversationID string, filter MessageFilter) ([]models.ChatMessage, error)
	ListMessagesByUser(ctx context.Context, userID string, page, limit int, filter MessageFilter) ([]models.ChatMessage, error)
	DeleteConversation(ctx context.Context, conversationID string) error

	Close() error
}
