package services

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/markdave123-py/Convosum/internal/core"
	db "github.com/markdave123-py/Convosum/internal/core/database"
	"github.com/markdave123-py/Convosum/internal/models"
)

// bcryptCost is deliberately above the library default to slow offline
// brute force against leaked hashes.
const bcryptCost = 12

type UserService struct {
	db db.DbClient
}

func NewUserService(db db.DbClient) *UserService {
	return &UserService{db: db}
}

// Register hashes the password and inserts the user. The storage layer's
// unique index decides duplicates, so there is no read-then-insert race:
// of two concurrent registrations with the same username exactly one wins
// and the other gets core.ErrDuplicateUsername.
func (s *UserService) Register(ctx context.Context, username, password string) (*models.User, error) {
	if username == "" || password == "" {
		return nil, errors.New("username and password are required")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.db.CreateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// VerifyCredentials returns the user when the password matches. Unknown
// usernames and wrong passwords fail with the same error so callers
// cannot enumerate registered usernames.
func (s *UserService) VerifyCredentials(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.db.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, core.ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, core.ErrInvalidCredentials
	}
	return user, nil
}
