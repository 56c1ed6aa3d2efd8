package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/markdave123-py/Convosum/internal/config"
	"github.com/markdave123-py/Convosum/internal/core"
	"github.com/markdave123-py/Convosum/internal/models"
)

const uniqueViolation = "23505"

type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(ctx context.Context, cfg *config.Config) (DbClient, error) {
	if cfg == nil {
		return nil, fmt.Errorf("database client configuration is nil")
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is empty")
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	// Sensible pool settings for an API service; adjust as needed.
	db.SetMaxOpenConns(20)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(10 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping db: %w", err)
	}

	if err := EnsureBootstrapped(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("bootstrap: %w", err)
	}

	return &DatabaseClient{db: db}, nil
}

func (c *DatabaseClient) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Implementing the db interface for user

// CreateUser inserts the user relying on the unique index on username to
// reject duplicates, so two concurrent registrations cannot both succeed.
func (c *DatabaseClient) CreateUser(ctx context.Context, user *models.User) error {
	if user == nil {
		return errors.New("nil user")
	}
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const q = `
		INSERT INTO users (id, username, password_hash, created_at)
		VALUES ($1, $2, $3, COALESCE($4, now()))
	`
	_, err := c.db.ExecContext(ctx, q, user.ID, user.Username, user.PasswordHash, nullableTime(user.CreatedAt))
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return core.ErrDuplicateUsername
	}
	return err
}

func (c *DatabaseClient) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	const q = `
		SELECT id, username, password_hash, created_at
		FROM users WHERE username = $1
	`
	var u models.User
	err := c.db.QueryRowContext(ctx, q, username).Scan(&u.ID, &u.Username, &u.PasswordHash, &u.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// Implementing the db interface for chat messages

func (c *DatabaseClient) InsertChatMessage(ctx context.Context, msg *models.ChatMessage) error {
	if msg == nil {
		return errors.New("nil message")
	}
	if msg.ID == "" {
		msg.ID = uuid.NewString()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now().UTC()
	}
	const q = `
		INSERT INTO chat_messages (id, conversation_id, user_id, message, "timestamp")
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := c.db.ExecContext(ctx, q, msg.ID, msg.ConversationID, msg.UserID, msg.Message, msg.Timestamp)
	return err
}

func (c *DatabaseClient) ListMessagesByConversation(ctx context.Context, conversationID string, filter MessageFilter) ([]models.ChatMessage, error) {
	where, args := []string{"conversation_id = $1"}, []any{conversationID}
	where, args = filter.appendClauses(where, args)

	q := fmt.Sprintf(`
		SELECT id, conversation_id, user_id, message, "timestamp"
		FROM chat_messages
		WHERE %s
		ORDER BY "timestamp"`, strings.Join(where, " AND "))

	return c.queryMessages(ctx, q, args...)
}

func (c *DatabaseClient) ListMessagesByUser(ctx context.Context, userID string, page, limit int, filter MessageFilter) ([]models.ChatMessage, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	where, args := []string{"user_id = $1"}, []any{userID}
	where, args = filter.appendClauses(where, args)

	args = append(args, limit, (page-1)*limit)
	q := fmt.Sprintf(`
		SELECT id, conversation_id, user_id, message, "timestamp"
		FROM chat_messages
		WHERE %s
		ORDER BY "timestamp"
		LIMIT $%d OFFSET $%d`, strings.Join(where, " AND "), len(args)-1, len(args))

	return c.queryMessages(ctx, q, args...)
}

// DeleteConversation removes every message in the conversation. Deleting
// an unknown or already-empty conversation is a no-op.
func (c *DatabaseClient) DeleteConversation(ctx context.Context, conversationID string) error {
	_, err := c.db.ExecContext(ctx, `DELETE FROM chat_messages WHERE conversation_id = $1`, conversationID)
	return err
}

func (c *DatabaseClient) queryMessages(ctx context.Context, q string, args ...any) ([]models.ChatMessage, error) {
	rows, err := c.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChatMessage
	for rows.Next() {
		var m models.ChatMessage
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.UserID, &m.Message, &m.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func nullableTime(t time.Time) any {
	if t.IsZero() {
		return nil
	}
	return t
}
